// Package ffi presents the native module's operations as ordinary Go
// calls. The wrappers here are the only place a raw pointer is ever
// constructed from host memory, and the only place the native sentinel
// return is translated into an error; callers never see -1.
package ffi

import (
	"bytes"
	"errors"
	"runtime"
)

var (
	// ErrNullInput is returned when byteLength is handed a null buffer.
	// This is the translated form of the native -1 sentinel.
	ErrNullInput = errors.New("null input buffer")

	// ErrInvalidInput is returned for host data that cannot be
	// represented as a NUL-terminated buffer (an embedded zero byte
	// would silently truncate at the boundary).
	ErrInvalidInput = errors.New("input not representable as a terminated buffer")
)

// Error represents a boundary operation error with structured information.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Lib is a loaded native library. All methods are synchronous and execute
// on the calling thread; no state is shared between calls.
type Lib struct {
	path string
}

// Open loads the shared library at path and binds the contract symbols.
// Only one library can be loaded per process.
func Open(path string) (*Lib, error) {
	if err := load(path); err != nil {
		return nil, err
	}
	return &Lib{path: path}, nil
}

// Path returns the location of the loaded library.
func (l *Lib) Path() string {
	return l.path
}

// Ping calls the native diagnostic function. It is a direct pass-through:
// no validation, no translated return. The native side prints a
// confirmation line; calling it repeatedly has no other observable effect.
func (l *Lib) Ping() {
	diagnosticPing()
}

// Transform forwards x to the native transform and returns the result.
// The operation is total over all 32-bit inputs (wrapping on overflow),
// so there is nothing to validate on either side of the call.
func (l *Lib) Transform(x int32) int32 {
	return transform(x)
}

// ByteLength returns the length the native side measures for buf. A nil
// buf crosses the boundary as a null pointer and comes back as
// ErrNullInput. A non-nil buf is copied into a transient NUL-terminated
// buffer owned by this call; the native side reads it during the call
// only and never retains it.
func (l *Lib) ByteLength(buf []byte) (int32, error) {
	if buf == nil {
		if n := byteLength(nil); n != -1 {
			// The contract reserves -1 for exactly this case.
			return 0, &Error{Op: "byteLength", Err: errors.New("sentinel violation: null input returned success")}
		}
		return 0, &Error{Op: "byteLength", Err: ErrNullInput}
	}

	if bytes.IndexByte(buf, 0) >= 0 {
		return 0, &Error{Op: "byteLength", Err: ErrInvalidInput}
	}

	// The terminated copy must stay reachable until the native call
	// returns; the native side cannot extend its lifetime.
	terminated := make([]byte, len(buf)+1)
	copy(terminated, buf)

	n := byteLength(&terminated[0])
	runtime.KeepAlive(terminated)

	return n, nil
}

// StringLength is ByteLength for a host string. A string can never be
// null, so the empty string measures as zero rather than ErrNullInput.
func (l *Lib) StringLength(s string) (int32, error) {
	buf := make([]byte, len(s))
	copy(buf, s)
	return l.ByteLength(buf)
}
