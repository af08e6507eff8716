package toolchain

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config controls how the native module is compiled. The zero value works:
// the compiler is discovered from $CC and PATH, flags default to an
// optimized position-independent build, and the cache lives under the
// user cache directory.
type Config struct {
	// CC is the C compiler to invoke. Empty means discover one.
	CC string `yaml:"cc" validate:"omitempty"`
	// CFlags are extra flags appended after the defaults.
	CFlags []string `yaml:"cflags" validate:"dive,required"`
	// CacheDir overrides the artifact cache location. Created on first
	// build if it does not exist.
	CacheDir string `yaml:"cache_dir"`
	// Linkage selects the artifact kind. Only shared libraries can be
	// loaded at runtime, so that is both the default and the only
	// accepted value for now.
	Linkage string `yaml:"linkage" validate:"omitempty,oneof=shared"`
}

var validate = validator.New()

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks field constraints. A zero Config is always valid.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// linkage returns the effective linkage mode.
func (c Config) linkage() string {
	if c.Linkage == "" {
		return LinkageShared
	}
	return c.Linkage
}
