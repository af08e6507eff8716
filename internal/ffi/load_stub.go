//go:build !(darwin || linux || freebsd || windows)

package ffi

import (
	"errors"
	"runtime"
)

func load(path string) error {
	return errors.New("native library loading is not supported on " + runtime.GOOS)
}
