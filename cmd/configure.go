package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ngld/maze-tools/pkg/configure"
)

var configureCmd = &cobra.Command{
	Use:   "configure <debug|release>",
	Short: "Generates the CMake build directory",
	Long: `Runs cmake to (re)generate the build directory for a debug or release build.
Exactly one argument is accepted.`,
	Args: cobra.ArbitraryArgs,
	// the build mode is validated by the configure package, including words that look like flags
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, args = splitFlags(cmd.Flags(), args)
		if help, _ := cmd.Flags().GetBool("help"); help {
			return cmd.Help()
		}

		extraArgs, err := cfg.CMakeArgs()
		if err != nil {
			return err
		}

		c := configure.New(newRunner())
		c.CMake = cfg.CMake.Binary
		c.SourceDir = cfg.CMake.Source
		c.BuildDir = cfg.CMake.Build
		c.BuildTypeVar = cfg.CMake.BuildTypeVar
		c.Defines = cfg.CMake.Defines
		c.ExtraArgs = extraArgs

		status, err := c.Run(commandContext(cmd), args)
		return finish(status, err, cfg.PropagateExit)
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
}
