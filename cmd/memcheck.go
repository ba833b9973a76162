package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ngld/maze-tools/pkg/memcheck"
)

var memcheckCmd = &cobra.Command{
	Use:     "memcheck",
	Aliases: []string{"valgrind"},
	Short:   "Checks the built game for memory leaks",
	Long: `Runs valgrind with full leak checking against the executable in the build directory.
Nothing happens if the game hasn't been built, yet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		extraArgs, err := cfg.ValgrindArgs()
		if err != nil {
			return err
		}

		a := memcheck.New(newRunner())
		a.Valgrind = cfg.Valgrind.Binary
		a.Artifact = cfg.Valgrind.Artifact
		a.ExtraArgs = extraArgs
		a.Dir = workDir
		a.Stdout = os.Stdout

		status, err := a.Run(commandContext(cmd))
		return finish(status, err, cfg.PropagateExit)
	},
}

func init() {
	rootCmd.AddCommand(memcheckCmd)
}
