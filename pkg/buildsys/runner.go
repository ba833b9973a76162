package buildsys

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Runner executes a single shell command and reports the exit status of that command.
// A non-zero status is not an error; the error is reserved for commands that could not be run
// at all.
type Runner interface {
	Run(ctx context.Context, command string) (int, error)
}

// ShellRunner runs commands with the mvdan.cc/sh interpreter. External programs are looked up
// in $PATH just like a regular POSIX shell would.
type ShellRunner struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env is appended to the process environment.
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// DryRun only logs the commands.
	DryRun bool
}

var defaultExecHandler = interp.DefaultExecHandler(2 * time.Second)

func (r *ShellRunner) environ() expand.Environ {
	envVars := os.Environ()
	envVars = append(envVars, r.Env...)

	return expand.ListEnviron(envVars...)
}

func (r *ShellRunner) newInterpreter() (*interp.Runner, error) {
	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	opts := []interp.RunnerOption{
		interp.Env(r.environ()),
		interp.ExecHandler(defaultExecHandler),
		interp.StdIO(r.Stdin, stdout, stderr),
		interp.Params("-e"),
	}
	if r.Dir != "" {
		opts = append(opts, interp.Dir(r.Dir))
	}

	return interp.New(opts...)
}

// Run implements Runner
func (r *ShellRunner) Run(ctx context.Context, command string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	script, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return 0, eris.Wrapf(err, "failed to parse command %s", command)
	}

	runner, err := r.newInterpreter()
	if err != nil {
		return 0, eris.Wrap(err, "Failed to initialize runner")
	}

	printer := syntax.NewPrinter(
		syntax.Minify(true),
	)
	strBuffer := strings.Builder{}

	for _, stm := range script.Stmts {
		strBuffer.Reset()
		err = printer.Print(&strBuffer, stm)
		if err != nil {
			return 0, eris.Wrap(err, "failed to print command")
		}

		log := Log(ctx)
		log.Info().
			Str("dir", r.Dir).
			Bool("command", true).
			Bool("dry", r.DryRun).
			Msg(strBuffer.String())

		if r.DryRun {
			continue
		}

		err = runner.Run(ctx, stm)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}

		if err != nil {
			status, ok := interp.IsExitStatus(err)
			if !ok {
				return 0, eris.Wrapf(err, "failed to run %s", strBuffer.String())
			}

			log.Debug().Int("status", int(status)).Msgf("%s exited", strBuffer.String())
			return int(status), nil
		}

		if runner.Exited() {
			return 0, nil
		}
	}

	return 0, nil
}
