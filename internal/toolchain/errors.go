package toolchain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrToolchainNotFound indicates no usable C compiler was found on PATH.
// Callers that can work without the native module (and tests) should check
// for it with errors.Is and degrade or skip.
var ErrToolchainNotFound = errors.New("no C toolchain found")

// BuildError is a failed foreign toolchain invocation. Output holds the
// compiler's combined stdout/stderr verbatim; nothing is linked and no
// artifact is produced when this is returned.
type BuildError struct {
	Tool   string
	Args   []string
	Output []byte
	Err    error
}

func (e *BuildError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Tool, strings.Join(e.Args, " "), e.Err)
	if len(e.Output) > 0 {
		msg += "\n" + strings.TrimRight(string(e.Output), "\n")
	}
	return msg
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
