package configure

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	commands []string
	status   int
}

func (r *fakeRunner) Run(_ context.Context, command string) (int, error) {
	r.commands = append(r.commands, command)
	return r.status, nil
}

func TestConfigureDebug(t *testing.T) {
	runner := &fakeRunner{}
	status, err := New(runner).Run(context.Background(), []string{"debug"})
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, []string{"cmake -S . -B build -DCMAKE_BUILD_TYPE:STRING=Debug"}, runner.commands)
}

func TestConfigureRelease(t *testing.T) {
	runner := &fakeRunner{}
	_, err := New(runner).Run(context.Background(), []string{"release"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cmake -S . -B build -DCMAKE_BUILD_TYPE:STRING=Release"}, runner.commands)
}

func TestConfigureArgCount(t *testing.T) {
	for _, args := range [][]string{nil, {}, {"debug", "release"}, {"debug", "extra", "args"}} {
		runner := &fakeRunner{}
		_, err := New(runner).Run(context.Background(), args)
		assert.True(t, eris.Is(err, ErrMissingArgument), "args %v", args)
		assert.Empty(t, runner.commands)
	}
}

func TestConfigureInvalidArg(t *testing.T) {
	for _, arg := range []string{"Debug", "RELEASE", "", "relwithdebinfo", "debug "} {
		runner := &fakeRunner{}
		_, err := New(runner).Run(context.Background(), []string{arg})
		assert.True(t, eris.Is(err, ErrInvalidArgument), "arg %q", arg)
		assert.False(t, eris.Is(err, ErrMissingArgument))
		assert.Empty(t, runner.commands)
	}
}

func TestConfigurePropagatesStatus(t *testing.T) {
	runner := &fakeRunner{status: 2}
	status, err := New(runner).Run(context.Background(), []string{"debug"})
	assert.NoError(t, err)
	assert.Equal(t, 2, status)
}

func TestConfigureCustomCommand(t *testing.T) {
	c := New(nil)
	c.CMake = "cmake3"
	c.BuildDir = "out/release build"
	c.Defines = []string{"SDL2_INCLUDE_DIRS:FILEPATH=/usr/include/SDL2"}
	c.ExtraArgs = []string{"-G", "Ninja"}

	assert.Equal(t,
		"cmake3 -S . -B 'out/release build' -DCMAKE_BUILD_TYPE:STRING=Release "+
			"-DSDL2_INCLUDE_DIRS:FILEPATH=/usr/include/SDL2 -G Ninja",
		c.Command(Release))
}

func TestConfigureZeroValueUsesDefaults(t *testing.T) {
	c := &Configurator{}
	assert.Equal(t, "cmake -S . -B build -DCMAKE_BUILD_TYPE:STRING=Debug", c.Command(Debug))
}
