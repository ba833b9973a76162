package configure

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestParseBuildMode(t *testing.T) {
	mode, err := ParseBuildMode("debug")
	assert.NoError(t, err)
	assert.Equal(t, Debug, mode)
	assert.Equal(t, "Debug", mode.String())
	assert.Equal(t, "debug", mode.Arg())

	mode, err = ParseBuildMode("release")
	assert.NoError(t, err)
	assert.Equal(t, Release, mode)
	assert.Equal(t, "Release", mode.String())
	assert.Equal(t, "release", mode.Arg())
}

func TestParseBuildModeInvalid(t *testing.T) {
	_, err := ParseBuildMode("profile")
	assert.True(t, eris.Is(err, ErrInvalidArgument))
	assert.Contains(t, err.Error(), "profile")
}

func TestBuildModeUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", BuildMode(42).String())
}
