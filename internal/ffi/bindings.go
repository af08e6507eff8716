package ffi

import "fmt"

// Raw function variables, populated by load. The signatures mirror the
// native header exactly; nothing below the wrappers in this package may
// be called with an unchecked pointer.
var (
	diagnosticPing func()
	transform      func(int32) int32
	byteLength     func(*byte) int32
)

// SymbolError is an artifact that loaded but does not export a symbol the
// contract requires (typically a stale or foreign library).
type SymbolError struct {
	Symbol string
	Path   string
	Err    error
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("unresolved symbol %q in %s: %v", e.Symbol, e.Path, e.Err)
}

func (e *SymbolError) Unwrap() error {
	return e.Err
}
