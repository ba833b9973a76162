// Package memcheck runs valgrind's leak checker against the built game executable.
package memcheck

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/ngld/maze-tools/pkg"
	"github.com/ngld/maze-tools/pkg/buildsys"
)

const (
	DefaultValgrind = "valgrind"
	DefaultArtifact = "build/Maze"
)

// ErrArtifactNotFound indicates that the executable hasn't been built, yet.
var ErrArtifactNotFound = eris.New("No executable found to analyse.")

// Analyzer checks the built executable for memory leaks
type Analyzer struct {
	Runner   buildsys.Runner
	Valgrind string
	// Dir is the directory a relative Artifact path is resolved against when checking for it.
	// The runner is expected to use the same working directory.
	Dir       string
	Artifact  string
	ExtraArgs []string
	Stdout    io.Writer
}

// New returns an Analyzer looking for build/Maze in the current directory.
func New(runner buildsys.Runner) *Analyzer {
	return &Analyzer{
		Runner:   runner,
		Valgrind: DefaultValgrind,
		Artifact: DefaultArtifact,
		Stdout:   os.Stdout,
	}
}

func (a *Analyzer) artifact() string {
	if a.Artifact == "" {
		return DefaultArtifact
	}
	return a.Artifact
}

// FindArtifact returns the path of the executable on disk or ErrArtifactNotFound.
func (a *Analyzer) FindArtifact() (string, error) {
	path := filepath.FromSlash(a.artifact())
	if !filepath.IsAbs(path) && a.Dir != "" {
		path = filepath.Join(a.Dir, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if eris.Is(err, os.ErrNotExist) {
			return "", eris.Wrapf(ErrArtifactNotFound, "missing %s", path)
		}
		return "", eris.Wrapf(err, "Failed to check %s", path)
	}

	if info.IsDir() {
		return "", eris.Wrapf(ErrArtifactNotFound, "%s is a directory", path)
	}

	return path, nil
}

// Command returns the valgrind invocation for the configured artifact.
func (a *Analyzer) Command() string {
	valgrind := a.Valgrind
	if valgrind == "" {
		valgrind = DefaultValgrind
	}

	parts := []string{valgrind, "--leak-check=full"}
	parts = append(parts, a.ExtraArgs...)
	parts = append(parts, a.artifact())

	return buildsys.Command(parts...)
}

// Run starts valgrind if the executable exists. A missing executable is reported on Stdout
// and isn't considered an error.
func (a *Analyzer) Run(ctx context.Context) (int, error) {
	path, err := a.FindArtifact()
	if err != nil {
		if !eris.Is(err, ErrArtifactNotFound) {
			return 0, err
		}

		buildsys.Log(ctx).Debug().Err(err).Msg("Skipping leak check")

		out := a.Stdout
		if out == nil {
			out = os.Stdout
		}
		_, err = fmt.Fprintln(out, pkg.Colors(out).Color("[yellow]"+ErrArtifactNotFound.Error()))
		return 0, eris.Wrap(err, "failed to write message")
	}

	buildsys.Log(ctx).Debug().Str("path", path).Msg("Checking executable for leaks")
	return a.Runner.Run(ctx, a.Command())
}
