package pkg

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mitchellh/colorstring"
	"github.com/rotisserie/eris"
	"golang.org/x/term"
)

// ProjectMarker identifies the root of the game's source tree
const ProjectMarker = "CMakeLists.txt"

// FindProjectRoot walks up from start until it finds a directory containing CMakeLists.txt.
// The outermost match wins so that nested CMake subprojects resolve to the top-level project.
func FindProjectRoot(start string) (string, error) {
	mypath, err := filepath.Abs(start)
	if err != nil {
		return "", eris.Wrapf(err, "Failed to resolve %s", start)
	}

	found := ""
	for {
		_, err := os.Stat(filepath.Join(mypath, ProjectMarker))
		if err == nil {
			found = mypath
		} else if !eris.Is(err, os.ErrNotExist) {
			return "", eris.Wrap(err, "Error ocurred while searching for project root")
		}

		nextPath := filepath.Dir(mypath)
		if mypath == nextPath {
			break
		}
		mypath = nextPath
	}

	if found == "" {
		return "", eris.Errorf("Project root not found (no %s in %s or its parents)", ProjectMarker, start)
	}
	return found, nil
}

// Colors returns a colorizer for w. Colour codes are stripped unless w is a terminal.
func Colors(w io.Writer) *colorstring.Colorize {
	file, ok := w.(*os.File)

	return &colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: !ok || !term.IsTerminal(int(file.Fd())),
		Reset:   true,
	}
}

func PrintError(msg string) {
	FprintError(os.Stderr, msg)
}

// FprintError is PrintError with a configurable destination
func FprintError(w io.Writer, msg string) {
	_, err := fmt.Fprintln(w, Colors(w).Color("[red][bold]  ->[reset] ")+msg)
	if err != nil {
		fmt.Fprintln(os.Stderr, msg)
	}
}
