package configure

import (
	"github.com/rotisserie/eris"
)

// BuildMode selects the CMake build type
type BuildMode int

const (
	Debug BuildMode = iota
	Release
)

var (
	// ErrMissingArgument is returned if the configure step didn't receive exactly one argument.
	ErrMissingArgument = eris.New("no arg provided")
	// ErrInvalidArgument is returned for arguments other than "debug" and "release".
	ErrInvalidArgument = eris.New("wrong arg")
)

// String returns the value CMake expects for CMAKE_BUILD_TYPE
func (m BuildMode) String() string {
	switch m {
	case Debug:
		return "Debug"
	case Release:
		return "Release"
	default:
		return "Unknown"
	}
}

// Arg returns the command line spelling of the mode
func (m BuildMode) Arg() string {
	switch m {
	case Debug:
		return "debug"
	case Release:
		return "release"
	default:
		return "unknown"
	}
}

// ParseBuildMode converts a command line argument into a BuildMode. Only the exact (lowercase)
// spellings are accepted.
func ParseBuildMode(arg string) (BuildMode, error) {
	switch arg {
	case "debug":
		return Debug, nil
	case "release":
		return Release, nil
	default:
		return Debug, eris.Wrapf(ErrInvalidArgument, "unknown build mode %q", arg)
	}
}

// ParseArgs expects exactly one argument naming the build mode.
func ParseArgs(args []string) (BuildMode, error) {
	if len(args) != 1 {
		return Debug, ErrMissingArgument
	}

	return ParseBuildMode(args[0])
}
