package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// splitFlags separates the flags known to fs from everything else. Unknown dash-prefixed words
// are kept as positional arguments so that the command can report them itself.
func splitFlags(fs *pflag.FlagSet, args []string) (flagArgs, positional []string) {
	for idx := 0; idx < len(args); idx++ {
		arg := args[idx]
		if arg == "--" {
			positional = append(positional, args[idx+1:]...)
			break
		}

		flag := lookupFlag(fs, arg)
		if flag == nil {
			positional = append(positional, arg)
			continue
		}

		flagArgs = append(flagArgs, arg)
		if flag.NoOptDefVal == "" && !strings.Contains(arg, "=") && idx+1 < len(args) {
			idx++
			flagArgs = append(flagArgs, args[idx])
		}
	}

	return flagArgs, positional
}

func lookupFlag(fs *pflag.FlagSet, arg string) *pflag.Flag {
	switch {
	case strings.HasPrefix(arg, "--") && len(arg) > 2:
		name := strings.SplitN(arg[2:], "=", 2)[0]
		return fs.Lookup(name)
	case strings.HasPrefix(arg, "-") && len(arg) == 2:
		return fs.ShorthandLookup(arg[1:])
	case strings.HasPrefix(arg, "-") && len(arg) > 2 && arg[2] == '=':
		return fs.ShorthandLookup(arg[1:2])
	}

	return nil
}

// parseOwnFlags is used by commands with DisableFlagParsing. It parses the flags cobra skipped
// and returns the remaining positional arguments.
func parseOwnFlags(cmd *cobra.Command, args []string) ([]string, error) {
	if !cmd.DisableFlagParsing {
		return args, nil
	}

	flagArgs, positional := splitFlags(cmd.Flags(), args)
	if err := cmd.Flags().Parse(flagArgs); err != nil {
		return nil, err
	}

	return positional, nil
}
