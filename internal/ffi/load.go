//go:build darwin || linux || freebsd || windows

package ffi

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"

	"github.com/hostcall/hostcall/internal/abi"
)

var (
	loadOnce sync.Once
	loadErr  error

	loadedPath string
)

// load opens the shared library and binds every symbol in the contract
// table. It runs once per process; the first error is sticky, matching
// the one-library lifecycle of the boundary.
func load(path string) error {
	loadOnce.Do(func() {
		handle, err := openLibrary(path)
		if err != nil {
			loadErr = fmt.Errorf("open native library %s: %w", path, err)
			return
		}

		// Resolve every contract symbol before registering any, so a bad
		// artifact fails atomically with the missing symbol named.
		for _, sym := range abi.Symbols() {
			if err := resolveSymbol(handle, sym); err != nil {
				loadErr = &SymbolError{Symbol: sym, Path: path, Err: err}
				return
			}
		}

		purego.RegisterLibFunc(&diagnosticPing, handle, abi.SymDiagnosticPing)
		purego.RegisterLibFunc(&transform, handle, abi.SymTransform)
		purego.RegisterLibFunc(&byteLength, handle, abi.SymByteLength)

		loadedPath = path
	})

	if loadErr != nil {
		return loadErr
	}
	if path != loadedPath {
		return fmt.Errorf("native library already loaded from %s", loadedPath)
	}
	return nil
}
