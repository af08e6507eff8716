// Package hostcall provides a native interoperability boundary: it compiles
// a separately built C module with the foreign toolchain, loads the
// resulting library, and exposes its operations as ordinary Go calls that
// cannot be invoked with an invariant violation the host can prevent.
package hostcall

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/hostcall/hostcall/internal/abi"
	"github.com/hostcall/hostcall/internal/ffi"
	"github.com/hostcall/hostcall/internal/toolchain"
)

//go:embed native/demo.c native/demo.h
var nativeSources embed.FS

// -----------------------------------------------------------------------------
// Type Aliases - These re-export types from internal packages
// -----------------------------------------------------------------------------

// Lib is a loaded native library. Its methods are the safe wrappers over
// the native operations.
type Lib = ffi.Lib

// Error represents a boundary operation error with structured information.
type Error = ffi.Error

// SymbolError is an artifact missing a symbol the contract requires.
type SymbolError = ffi.SymbolError

// Artifact is a compiled native library produced by the build step.
type Artifact = toolchain.Artifact

// Config controls how the native module is compiled.
type Config = toolchain.Config

// BuildError is a failed foreign toolchain invocation, carrying the
// compiler's diagnostic output verbatim.
type BuildError = toolchain.BuildError

// Common sentinel errors.
var (
	// ErrNullInput is the translated form of the native null sentinel.
	ErrNullInput = ffi.ErrNullInput

	// ErrInvalidInput marks host data that cannot cross the boundary as
	// a terminated buffer.
	ErrInvalidInput = ffi.ErrInvalidInput

	// ErrToolchainNotFound indicates no usable C compiler on PATH.
	// Use errors.Is(err, hostcall.ErrToolchainNotFound) to check and
	// skip tests in environments without a toolchain.
	ErrToolchainNotFound = toolchain.ErrToolchainNotFound
)

// ABIVersion is the boundary contract version carried by this package.
const ABIVersion = abi.Version

// ABICompatible reports whether a host built against contract version v
// can use this library.
func ABICompatible(v string) bool {
	return abi.Compatible(v)
}

// -----------------------------------------------------------------------------
// Options
// -----------------------------------------------------------------------------

// Option configures Open and Build.
type Option interface {
	IsOption()
}

type configFileOption struct{ path string }

func (configFileOption) IsOption() {}

// WithConfigFile loads toolchain settings from a YAML file. Explicit
// options given alongside it take precedence.
func WithConfigFile(path string) Option { return configFileOption{path} }

type ccOption struct{ cc string }

func (ccOption) IsOption() {}

// WithCC selects the C compiler instead of discovering one.
func WithCC(cc string) Option { return ccOption{cc} }

type cacheDirOption struct{ dir string }

func (cacheDirOption) IsOption() {}

// WithCacheDir overrides the artifact cache location.
func WithCacheDir(dir string) Option { return cacheDirOption{dir} }

type cflagsOption struct{ flags []string }

func (cflagsOption) IsOption() {}

// WithCFlags appends extra compiler flags.
func WithCFlags(flags ...string) Option { return cflagsOption{flags} }

type loggerOption struct{ log *zap.Logger }

func (loggerOption) IsOption() {}

// WithLogger attaches a logger to the build step.
func WithLogger(log *zap.Logger) Option { return loggerOption{log} }

// parseOptions folds options into a toolchain config and logger.
func parseOptions(opts []Option) (toolchain.Config, *zap.Logger, error) {
	var cfg toolchain.Config
	var log *zap.Logger

	// The config file is a base layer; apply it first regardless of
	// option order.
	for _, opt := range opts {
		if o, ok := opt.(configFileOption); ok {
			loaded, err := toolchain.LoadConfig(o.path)
			if err != nil {
				return cfg, nil, err
			}
			cfg = loaded
		}
	}

	for _, opt := range opts {
		switch o := opt.(type) {
		case configFileOption:
			// handled above
		case ccOption:
			cfg.CC = o.cc
		case cacheDirOption:
			cfg.CacheDir = o.dir
		case cflagsOption:
			cfg.CFlags = append(cfg.CFlags, o.flags...)
		case loggerOption:
			log = o.log
		default:
			return cfg, nil, fmt.Errorf("unknown option type %T", opt)
		}
	}

	return cfg, log, nil
}

// -----------------------------------------------------------------------------
// Top-level API
// -----------------------------------------------------------------------------

// NativeModule returns the build description of the embedded demo module.
func NativeModule() (toolchain.Module, error) {
	sources, err := fs.Sub(nativeSources, "native")
	if err != nil {
		return toolchain.Module{}, fmt.Errorf("embedded sources: %w", err)
	}
	return toolchain.Module{Name: "demo", Sources: sources}, nil
}

// Build compiles the native module (or reuses a cached artifact) without
// loading it.
func Build(ctx context.Context, opts ...Option) (*Artifact, error) {
	cfg, log, err := parseOptions(opts)
	if err != nil {
		return nil, err
	}

	mod, err := NativeModule()
	if err != nil {
		return nil, err
	}

	return toolchain.New(cfg, log).Build(ctx, mod)
}

// Open compiles the native module if needed and loads the resulting
// library, binding all contract symbols. This is the whole boundary in
// one call: build, locate, link, wrap.
func Open(ctx context.Context, opts ...Option) (*Lib, error) {
	art, err := Build(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return ffi.Open(art.Path)
}
