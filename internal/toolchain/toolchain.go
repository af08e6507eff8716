// Package toolchain invokes the foreign C toolchain to compile a native
// module into a shared library the host can load. Builds are synchronous,
// content-cached, and all-or-nothing: a failed compile surfaces the
// compiler's diagnostics verbatim and leaves no artifact behind that a
// host could mistakenly link against.
package toolchain

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Artifact is a compiled native library ready to be loaded. It is never
// mutated after creation; source changes produce a new artifact under a
// new cache key.
type Artifact struct {
	// Path is the absolute location of the library file.
	Path string
	// Linkage is the artifact kind (currently always shared).
	Linkage string
	// Key is the cache key the artifact was built under.
	Key string
	// Cached reports whether the artifact was reused without invoking
	// the compiler.
	Cached bool
}

// Toolchain compiles native modules according to a Config.
type Toolchain struct {
	cfg Config
	log *zap.Logger
}

// New creates a Toolchain. A nil logger disables logging.
func New(cfg Config, log *zap.Logger) *Toolchain {
	if log == nil {
		log = zap.NewNop()
	}
	return &Toolchain{cfg: cfg, log: log}
}

// compilerCandidates are tried in order when neither Config.CC nor $CC
// names a compiler.
var compilerCandidates = []string{"cc", "clang", "gcc"}

// FindCompiler resolves the C compiler to use: Config.CC, then $CC, then
// the usual names on PATH. Returns ErrToolchainNotFound if nothing works.
func (tc *Toolchain) FindCompiler() (string, error) {
	if tc.cfg.CC != "" {
		path, err := exec.LookPath(tc.cfg.CC)
		if err != nil {
			return "", fmt.Errorf("configured compiler %q: %w", tc.cfg.CC, ErrToolchainNotFound)
		}
		return path, nil
	}

	if cc := os.Getenv("CC"); cc != "" {
		if path, err := exec.LookPath(cc); err == nil {
			return path, nil
		}
	}

	for _, name := range compilerCandidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", ErrToolchainNotFound
}

// defaultFlags returns the baseline compile flags for the platform.
func defaultFlags() []string {
	flags := []string{"-shared", "-O2"}
	if runtime.GOOS != "windows" {
		flags = append(flags, "-fPIC")
	}
	return flags
}

// Build compiles the module and returns its artifact. If an artifact for
// the same sources, compiler, and flags already exists in the cache it is
// reused without invoking the compiler; correctness never depends on that,
// since the same inputs always rebuild to an identical artifact.
func (tc *Toolchain) Build(ctx context.Context, mod Module) (*Artifact, error) {
	compiler, err := tc.FindCompiler()
	if err != nil {
		return nil, err
	}

	flags := append(defaultFlags(), tc.cfg.CFlags...)

	key, err := mod.cacheKey(compiler, flags)
	if err != nil {
		return nil, err
	}

	root, err := cacheRoot(tc.cfg.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}

	outDir := filepath.Join(root, key)
	outPath := filepath.Join(outDir, mod.libraryName())

	if _, err := os.Stat(outPath); err == nil {
		tc.log.Debug("native artifact cache hit",
			zap.String("module", mod.Name),
			zap.String("path", outPath))
		return &Artifact{Path: outPath, Linkage: tc.cfg.linkage(), Key: key, Cached: true}, nil
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}

	srcDir, err := materializeSources(mod, outDir)
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(srcDir)

	sources, err := mod.sourceFiles()
	if err != nil {
		return nil, err
	}

	// Compile to a temp name and rename into place on success, so a
	// failed or interrupted build never leaves a half-written library
	// at the path the host looks for.
	tmpPath := outPath + ".tmp"
	defer os.Remove(tmpPath)

	args := append([]string{}, flags...)
	args = append(args, "-o", tmpPath)
	for _, src := range sources {
		args = append(args, filepath.Join(srcDir, filepath.FromSlash(src)))
	}

	tc.log.Info("compiling native module",
		zap.String("module", mod.Name),
		zap.String("cc", compiler),
		zap.Strings("flags", flags))

	start := time.Now()
	cmd := exec.CommandContext(ctx, compiler, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, &BuildError{Tool: compiler, Args: args, Output: out, Err: err}
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return nil, fmt.Errorf("install artifact: %w", err)
	}

	tc.log.Info("native module built",
		zap.String("module", mod.Name),
		zap.String("path", outPath),
		zap.Duration("elapsed", time.Since(start)))

	return &Artifact{Path: outPath, Linkage: tc.cfg.linkage(), Key: key, Cached: false}, nil
}

// materializeSources copies the module's source filesystem into a
// directory next to the artifact so the compiler can read it.
func materializeSources(mod Module, outDir string) (string, error) {
	srcDir, err := os.MkdirTemp(outDir, "src-")
	if err != nil {
		return "", fmt.Errorf("create source dir: %w", err)
	}

	err = fs.WalkDir(mod.Sources, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		dst := filepath.Join(srcDir, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(dst, 0755)
		}
		data, err := fs.ReadFile(mod.Sources, p)
		if err != nil {
			return err
		}
		return os.WriteFile(dst, data, 0644)
	})
	if err != nil {
		os.RemoveAll(srcDir)
		return "", fmt.Errorf("materialize sources: %w", err)
	}

	return srcDir, nil
}
