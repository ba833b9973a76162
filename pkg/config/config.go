package config

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigtoml"
	"github.com/google/shlex"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// DefaultFile is loaded from the working directory if it exists
const DefaultFile = "maze-tools.toml"

// Config describes all configuration options
type Config struct {
	Root          string `env:"ROOT" toml:"root" usage:"Project root (defaults to the current directory)"`
	FindRoot      bool   `env:"FIND_ROOT" toml:"find_root" default:"false" usage:"Search parent directories for CMakeLists.txt"`
	DryRun        bool   `env:"DRY_RUN" toml:"dry_run" default:"false" usage:"Only print the commands"`
	PropagateExit bool   `env:"PROPAGATE_EXIT" toml:"propagate_exit" default:"true" usage:"Exit with the status of the external tool"`
	Log           struct {
		Level string `env:"LEVEL" toml:"level" default:"info"`
		JSON  bool   `env:"JSON" toml:"json" default:"false" usage:"Output JSONND instead of pretty console messages"`
	} `env:"LOG" toml:"log"`
	CMake struct {
		Binary       string   `env:"BINARY" toml:"binary" default:"cmake"`
		Source       string   `env:"SOURCE" toml:"source" default:"."`
		Build        string   `env:"BUILD" toml:"build" default:"build"`
		BuildTypeVar string   `env:"BUILD_TYPE_VAR" toml:"build_type_var" default:"CMAKE_BUILD_TYPE"`
		Defines      []string `env:"DEFINES" toml:"defines" usage:"Additional cache entries (NAME:TYPE=VALUE)"`
		Args         string   `env:"ARGS" toml:"args" usage:"Extra arguments passed to cmake"`
	} `env:"CMAKE" toml:"cmake"`
	Valgrind struct {
		Binary   string `env:"BINARY" toml:"binary" default:"valgrind"`
		Artifact string `env:"ARTIFACT" toml:"artifact" default:"build/Maze"`
		Args     string `env:"ARGS" toml:"args" usage:"Extra arguments passed to valgrind"`
	} `env:"VALGRIND" toml:"valgrind"`
}

var logLevels = map[string]zerolog.Level{
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
	"fatal":   zerolog.FatalLevel,
}

// Loader initializes an empty config object and returns a new Loader for this object.
// Flags are handled by the CLI so aconfig only looks at defaults, the given files and
// MAZE_* environment variables.
func Loader(files ...string) (*Config, *aconfig.Loader) {
	if len(files) == 0 {
		files = []string{DefaultFile}
	}

	cfg := Config{}
	return &cfg, aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags: true,
		EnvPrefix: "MAZE",
		// MAZE_* is a common prefix, other tools' variables must not break loading
		AllowUnknownEnvs: true,
		Files:            files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".toml": aconfigtoml.New(),
		},
	})
}

// Load is a shortcut for Loader(files...) followed by Load() and Validate()
func Load(files ...string) (*Config, error) {
	cfg, loader := Loader(files...)
	if err := loader.Load(); err != nil {
		return nil, eris.Wrap(err, "Failed to load config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate verifies that all config fields have valid values
func (cfg *Config) Validate() error {
	_, ok := logLevels[cfg.Log.Level]
	if !ok {
		return eris.Errorf(`Invalid value for log.level: %s`, cfg.Log.Level)
	}

	required := map[string]string{
		"cmake.binary":      cfg.CMake.Binary,
		"cmake.source":      cfg.CMake.Source,
		"cmake.build":       cfg.CMake.Build,
		"valgrind.binary":   cfg.Valgrind.Binary,
		"valgrind.artifact": cfg.Valgrind.Artifact,
	}
	for name, value := range required {
		if value == "" {
			return eris.Errorf(`%s can't be empty`, name)
		}
	}

	if _, err := cfg.CMakeArgs(); err != nil {
		return err
	}

	if _, err := cfg.ValgrindArgs(); err != nil {
		return err
	}

	return nil
}

// LogLevel converts the .Log.Level field to a zerolog.Level
func (cfg *Config) LogLevel() zerolog.Level {
	return logLevels[cfg.Log.Level]
}

// SetLogLevel updates .Log.Level after checking the value
func (cfg *Config) SetLogLevel(level string) error {
	if _, ok := logLevels[level]; !ok {
		return eris.Errorf(`Invalid log level: %s`, level)
	}

	cfg.Log.Level = level
	return nil
}

// CMakeArgs splits .CMake.Args into words
func (cfg *Config) CMakeArgs() ([]string, error) {
	args, err := shlex.Split(cfg.CMake.Args)
	if err != nil {
		return nil, eris.Wrapf(err, `Invalid value for cmake.args: %s`, cfg.CMake.Args)
	}

	return args, nil
}

// ValgrindArgs splits .Valgrind.Args into words
func (cfg *Config) ValgrindArgs() ([]string, error) {
	args, err := shlex.Split(cfg.Valgrind.Args)
	if err != nil {
		return nil, eris.Wrapf(err, `Invalid value for valgrind.args: %s`, cfg.Valgrind.Args)
	}

	return args, nil
}
