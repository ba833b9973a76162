package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ngld/maze-tools/pkg"
	"github.com/ngld/maze-tools/pkg/buildsys"
	"github.com/ngld/maze-tools/pkg/config"
)

// exitStatus carries the status of the external tool up to Execute
type exitStatus int

func (s exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(s))
}

var (
	cfg     *config.Config
	logger  zerolog.Logger
	workDir string
)

var rootCmd = &cobra.Command{
	Use:   "tool",
	Short: "Build tools for Maze",
	Long: `This command bundles the helpers used while developing Maze: configuring the CMake
build directory and checking the built game for memory leaks.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", config.DefaultFile, "config file to load if it exists")
	flags.BoolP("dry", "n", false, "dry run; only print the commands, don't execute anything")
	flags.String("root", "", "project root; commands run in this directory (defaults to the current directory)")
	flags.Bool("find-root", false, "use the outermost parent directory containing CMakeLists.txt as project root")
	flags.String("log-level", "", "log level (debug, info, warn, error, fatal)")
	flags.Bool("no-exit-status", false, "exit with status 0 even if the external tool failed")
}

func setup(cmd *cobra.Command, args []string) error {
	if _, err := parseOwnFlags(cmd, args); err != nil {
		return err
	}

	flags := cmd.Flags()
	cfgFile, err := flags.GetString("config")
	if err != nil {
		return err
	}

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	if flags.Changed("dry") {
		if cfg.DryRun, err = flags.GetBool("dry"); err != nil {
			return err
		}
	}

	if flags.Changed("root") {
		if cfg.Root, err = flags.GetString("root"); err != nil {
			return err
		}
	}

	if flags.Changed("find-root") {
		if cfg.FindRoot, err = flags.GetBool("find-root"); err != nil {
			return err
		}
	}

	if flags.Changed("no-exit-status") {
		noStatus, err := flags.GetBool("no-exit-status")
		if err != nil {
			return err
		}
		cfg.PropagateExit = !noStatus
	}

	level, err := flags.GetString("log-level")
	if err != nil {
		return err
	}
	if level != "" {
		if err = cfg.SetLogLevel(level); err != nil {
			return err
		}
	}

	if cfg.Log.JSON {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(NewConsoleWriter(os.Stderr))
	}
	logger = logger.Level(cfg.LogLevel())

	workDir, err = resolveWorkDir(cfg)
	if err != nil {
		return err
	}

	return nil
}

func resolveWorkDir(cfg *config.Config) (string, error) {
	dir := cfg.Root
	if !cfg.FindRoot {
		return dir, nil
	}

	if dir == "" {
		dir = "."
	}

	root, err := pkg.FindProjectRoot(dir)
	if err != nil {
		return "", err
	}

	return root, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return buildsys.WithLogger(ctx, &logger)
}

func newRunner() *buildsys.ShellRunner {
	return &buildsys.ShellRunner{
		Dir:    workDir,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		DryRun: cfg.DryRun,
	}
}

// finish turns the external tool's status into the command's result
func finish(status int, err error, propagate bool) error {
	if err != nil {
		return err
	}

	if status != 0 && propagate {
		return exitStatus(status)
	}

	return nil
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}

	if status, ok := err.(exitStatus); ok {
		return int(status)
	}

	pkg.PrintError(eris.ToString(err, os.Getenv(debugEnvVar) != ""))
	return 1
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	os.Exit(exitCode(err))
}
