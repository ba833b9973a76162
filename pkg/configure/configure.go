// Package configure generates the CMake build directory for the game.
package configure

import (
	"context"

	"github.com/ngld/maze-tools/pkg/buildsys"
)

// Default values match the layout of the game's repository.
const (
	DefaultCMake        = "cmake"
	DefaultSourceDir    = "."
	DefaultBuildDir     = "build"
	DefaultBuildTypeVar = "CMAKE_BUILD_TYPE"
)

// Configurator runs the CMake configure step
type Configurator struct {
	Runner    buildsys.Runner
	CMake     string
	SourceDir string
	BuildDir  string
	// BuildTypeVar is the cache variable receiving the build mode.
	BuildTypeVar string
	// Defines are additional cache entries in NAME[:TYPE]=VALUE form.
	Defines   []string
	ExtraArgs []string
}

// New returns a Configurator with the default tool and directories.
func New(runner buildsys.Runner) *Configurator {
	return &Configurator{
		Runner:       runner,
		CMake:        DefaultCMake,
		SourceDir:    DefaultSourceDir,
		BuildDir:     DefaultBuildDir,
		BuildTypeVar: DefaultBuildTypeVar,
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Command returns the shell command configuring the build directory for the given mode.
func (c *Configurator) Command(mode BuildMode) string {
	parts := []string{
		orDefault(c.CMake, DefaultCMake),
		"-S", orDefault(c.SourceDir, DefaultSourceDir),
		"-B", orDefault(c.BuildDir, DefaultBuildDir),
		"-D" + orDefault(c.BuildTypeVar, DefaultBuildTypeVar) + ":STRING=" + mode.String(),
	}

	for _, define := range c.Defines {
		parts = append(parts, "-D"+define)
	}
	parts = append(parts, c.ExtraArgs...)

	return buildsys.Command(parts...)
}

// Run validates args and runs CMake once. The returned status is CMake's exit status.
func (c *Configurator) Run(ctx context.Context, args []string) (int, error) {
	mode, err := ParseArgs(args)
	if err != nil {
		return 0, err
	}

	buildsys.Log(ctx).Debug().Str("mode", mode.String()).Msg("Configuring build directory")
	return c.Runner.Run(ctx, c.Command(mode))
}
