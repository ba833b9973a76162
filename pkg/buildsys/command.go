package buildsys

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// words containing any of these need quoting
const shellMeta = " \t\n\"'`$\\|&;<>(){}[]*?#~!"

func quoteWord(value string) *syntax.Word {
	var wordPart syntax.WordPart

	switch {
	case value == "":
		wordPart = &syntax.SglQuoted{}
	case !strings.ContainsAny(value, shellMeta):
		wordPart = &syntax.Lit{Value: value}
	case !strings.Contains(value, "'"):
		wordPart = &syntax.SglQuoted{Value: value}
	default:
		// a single quote can't appear inside single quotes so we close the quote, emit it
		// double-quoted and reopen
		wordPart = &syntax.Lit{Value: "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"}
	}

	return &syntax.Word{Parts: []syntax.WordPart{wordPart}}
}

// Command assembles a shell command line from the given words. Each word is passed to the
// command as a single argument.
func Command(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}

	call := &syntax.CallExpr{
		Args: make([]*syntax.Word, len(parts)),
	}
	for idx, part := range parts {
		call.Args[idx] = quoteWord(part)
	}

	var buffer strings.Builder
	err := syntax.NewPrinter().Print(&buffer, &syntax.Stmt{Cmd: call})
	if err != nil {
		// strings.Builder never fails so this would be a printer bug
		panic(err)
	}

	return strings.TrimSpace(buffer.String())
}
