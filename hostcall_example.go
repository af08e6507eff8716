//go:build ignore

// This file demonstrates every public API in the hostcall package.
// It is excluded from the build and serves as a reference and compile-time check.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hostcall/hostcall"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// =========================================================================
	// ABI contract version
	// =========================================================================
	fmt.Println("contract version:", hostcall.ABIVersion)
	_ = hostcall.ABICompatible("v1.0.0") // same major, minor not newer: true
	_ = hostcall.ABICompatible("v2.0.0") // major mismatch: false

	// =========================================================================
	// Build - compile the native module without loading it
	// =========================================================================
	art, err := hostcall.Build(ctx)
	if err != nil {
		if errors.Is(err, hostcall.ErrToolchainNotFound) {
			return fmt.Errorf("install a C compiler first: %w", err)
		}
		var buildErr *hostcall.BuildError
		if errors.As(err, &buildErr) {
			// Verbatim compiler diagnostics are in buildErr.Output.
			return fmt.Errorf("native build failed: %w", buildErr)
		}
		return err
	}
	fmt.Printf("artifact: %s (%s linkage, key %s, cached=%v)\n",
		art.Path, art.Linkage, art.Key, art.Cached)

	// =========================================================================
	// Open - build (or reuse the cache) and load in one call
	// =========================================================================
	log, _ := zap.NewDevelopment()
	lib, err := hostcall.Open(ctx,
		hostcall.WithLogger(log),              // build-step logging
		hostcall.WithCFlags("-Wall"),          // extra compiler flags
		// hostcall.WithCC("clang"),           // pin a compiler
		// hostcall.WithCacheDir("/tmp/hc"),   // relocate the cache
		// hostcall.WithConfigFile("hc.yaml"), // or load all of it from YAML
	)
	if err != nil {
		return err
	}
	_ = lib.Path()

	// =========================================================================
	// Boundary calls
	// =========================================================================
	lib.Ping() // native side prints a confirmation line

	result := lib.Transform(15) // 2*15 + 10 = 40, wrapping on overflow
	fmt.Println("transform(15) =", result)

	n, err := lib.StringLength("Olá, host!")
	if err != nil {
		return err
	}
	fmt.Println("byte length:", n) // 11: bytes, not runes

	// A nil buffer crosses as NULL and comes back as a typed error, never
	// as the raw sentinel.
	if _, err := lib.ByteLength(nil); errors.Is(err, hostcall.ErrNullInput) {
		fmt.Println("null input reported cleanly")
	}

	// Embedded NUL bytes cannot be represented in a terminated buffer.
	if _, err := lib.ByteLength([]byte("a\x00b")); errors.Is(err, hostcall.ErrInvalidInput) {
		fmt.Println("unrepresentable input rejected before the boundary")
	}

	return nil
}
