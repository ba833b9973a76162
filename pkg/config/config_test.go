package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), DefaultFile)
}

func TestDefaults(t *testing.T) {
	cfg, err := Load(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Root)
	assert.False(t, cfg.FindRoot)
	assert.False(t, cfg.DryRun)
	assert.True(t, cfg.PropagateExit)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel())
	assert.Equal(t, "cmake", cfg.CMake.Binary)
	assert.Equal(t, ".", cfg.CMake.Source)
	assert.Equal(t, "build", cfg.CMake.Build)
	assert.Equal(t, "CMAKE_BUILD_TYPE", cfg.CMake.BuildTypeVar)
	assert.Equal(t, "valgrind", cfg.Valgrind.Binary)
	assert.Equal(t, "build/Maze", cfg.Valgrind.Artifact)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MAZE_CMAKE_BINARY", "cmake3")
	t.Setenv("MAZE_LOG_LEVEL", "debug")

	cfg, err := Load(missingFile(t))
	require.NoError(t, err)
	assert.Equal(t, "cmake3", cfg.CMake.Binary)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel())
}

func TestUnrelatedEnvVars(t *testing.T) {
	t.Setenv("MAZE_FOO", "1")
	t.Setenv("MAZE_CMAKE_GENERATOR", "Ninja")

	cfg, err := Load(missingFile(t))
	require.NoError(t, err)
	assert.Equal(t, "cmake", cfg.CMake.Binary)
}

func TestFileOverrides(t *testing.T) {
	path := missingFile(t)
	data := `
[cmake]
build = "out"

[valgrind]
artifact = "out/Maze"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o660))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.CMake.Build)
	assert.Equal(t, "out/Maze", cfg.Valgrind.Artifact)
	assert.Equal(t, "cmake", cfg.CMake.Binary)
}

func validConfig() *Config {
	cfg := &Config{}
	cfg.Log.Level = "info"
	cfg.CMake.Binary = "cmake"
	cfg.CMake.Source = "."
	cfg.CMake.Build = "build"
	cfg.Valgrind.Binary = "valgrind"
	cfg.Valgrind.Artifact = "build/Maze"
	return cfg
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.Log.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.CMake.Build = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Valgrind.Args = `--log-file="unterminated`
	assert.Error(t, cfg.Validate())
}

func TestSetLogLevel(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.SetLogLevel("warn"))
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel())
	assert.Error(t, cfg.SetLogLevel("loud"))
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel())
}

func TestArgs(t *testing.T) {
	cfg := validConfig()
	cfg.CMake.Args = `-G "Unix Makefiles"`
	cfg.Valgrind.Args = "--track-origins=yes --show-leak-kinds=all"

	args, err := cfg.CMakeArgs()
	require.NoError(t, err)
	assert.Equal(t, []string{"-G", "Unix Makefiles"}, args)

	args, err = cfg.ValgrindArgs()
	require.NoError(t, err)
	assert.Equal(t, []string{"--track-origins=yes", "--show-leak-kinds=all"}, args)
}
