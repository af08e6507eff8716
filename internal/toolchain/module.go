package toolchain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path"
	"runtime"
	"strings"
)

// Linkage modes for a built artifact.
const (
	LinkageShared = "shared"
)

// Module describes a native module to compile: a name and a filesystem
// holding its C sources and headers. The filesystem is usually an embedded
// copy of the module's source tree, so builds work regardless of the host
// process's working directory.
type Module struct {
	// Name is the library base name. The artifact file name follows the
	// platform convention: lib<name>.so, lib<name>.dylib, or <name>.dll.
	Name string
	// Sources holds the .c and .h files. All .c files are compiled; all
	// files participate in the cache key.
	Sources fs.FS
}

// LibraryName returns the platform-conventional file name for the module's
// shared library on the given OS.
func LibraryName(name, goos string) string {
	switch goos {
	case "windows":
		return name + ".dll"
	case "darwin":
		return "lib" + name + ".dylib"
	default:
		return "lib" + name + ".so"
	}
}

// libraryName is LibraryName for the running platform.
func (m Module) libraryName() string {
	return LibraryName(m.Name, runtime.GOOS)
}

// sourceFiles returns the .c files to compile, in lexical order.
func (m Module) sourceFiles() ([]string, error) {
	var out []string
	err := fs.WalkDir(m.Sources, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if path.Ext(p) == ".c" {
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk sources: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("module %s has no .c sources", m.Name)
	}
	return out, nil
}

// cacheKey derives a content hash over everything that can change the
// artifact: source names and contents, the resolved compiler, the flags,
// and the target platform. Any change forces a rebuild; an unchanged key
// allows the cached artifact to be reused.
func (m Module) cacheKey(compiler string, flags []string) (string, error) {
	h := sha256.New()

	fmt.Fprintf(h, "name=%s\n", m.Name)
	fmt.Fprintf(h, "cc=%s\n", compiler)
	fmt.Fprintf(h, "flags=%s\n", strings.Join(flags, "\x00"))
	fmt.Fprintf(h, "target=%s/%s\n", runtime.GOOS, runtime.GOARCH)

	// fs.WalkDir visits in lexical order, so the hash is deterministic.
	err := fs.WalkDir(m.Sources, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(m.Sources, p)
		if err != nil {
			return err
		}
		fmt.Fprintf(h, "file=%s len=%d\n", p, len(data))
		h.Write(data)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("hash sources: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil))[:16], nil
}
