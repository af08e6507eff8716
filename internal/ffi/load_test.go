//go:build darwin || linux || freebsd || windows

package ffi

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/hostcall/hostcall/internal/toolchain"
)

// TestOpenRejectsLibraryMissingSymbols builds a real shared library that
// exports none of the contract symbols and verifies Open refuses it with
// the missing symbol named. This is the runtime-linkage analog of an
// unresolved-symbol link failure: it must happen at load, not at call.
func TestOpenRejectsLibraryMissingSymbols(t *testing.T) {
	tc := toolchain.New(toolchain.Config{CacheDir: t.TempDir()}, nil)
	if _, err := tc.FindCompiler(); err != nil {
		if errors.Is(err, toolchain.ErrToolchainNotFound) {
			t.Skip("Skipping: no C toolchain available")
		}
		t.Fatalf("FindCompiler() error = %v", err)
	}

	mod := toolchain.Module{
		Name: "wrong",
		Sources: fstest.MapFS{
			"wrong.c": {Data: []byte("int unrelated(int x) { return x; }\n")},
		},
	}

	art, err := tc.Build(context.Background(), mod)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	_, err = Open(art.Path)
	if err == nil {
		t.Fatal("Open() of a library without the contract symbols succeeded")
	}

	var symErr *SymbolError
	if !errors.As(err, &symErr) {
		t.Fatalf("Open() error = %v (%T), want *SymbolError", err, err)
	}
	if symErr.Symbol == "" {
		t.Error("SymbolError does not name the unresolved symbol")
	}
}
