// Package abi is the single source of truth for the contract between the
// host and the native module: the exported symbol names, their shapes, and
// the contract version. The raw bindings verify every symbol listed here
// resolves before registering any of them, so a stale or foreign library
// fails with a named unresolved symbol instead of a crash later.
package abi

import "golang.org/x/mod/semver"

// Version is the contract version. Same major plus a requested minor no
// newer than ours is compatible.
const Version = "v1.0.0"

// Type is the semantic type of a parameter or return value crossing the
// boundary. Representation must match on both sides exactly; there is no
// reconciliation at call time.
type Type int

const (
	// TypeVoid is the absence of a return value.
	TypeVoid Type = iota
	// TypeInt32 is a fixed-width 32-bit signed integer.
	TypeInt32
	// TypeBytePtr is a pointer to a NUL-terminated byte sequence, valid
	// only for the duration of the call and never retained by the callee.
	TypeBytePtr
)

func (t Type) String() string {
	switch t {
	case TypeVoid:
		return "void"
	case TypeInt32:
		return "int32"
	case TypeBytePtr:
		return "byte*"
	default:
		return "unknown"
	}
}

// Signature describes one exported native function.
type Signature struct {
	// Symbol is the exact exported name, free of mangling.
	Symbol string
	// Params are the parameter types in call order.
	Params []Type
	// Return is the return type.
	Return Type
	// Sentinel, when non-nil, is the reserved return value signaling
	// failure. It lies outside the function's legitimate output range.
	Sentinel *int32
}

// Exported symbol names.
const (
	SymDiagnosticPing = "diagnosticPing"
	SymTransform      = "transform"
	SymByteLength     = "byteLength"
)

var nullSentinel = int32p(-1)

// Table returns the full signature table for the demo module. The order
// matches the native header.
func Table() []Signature {
	return []Signature{
		{Symbol: SymDiagnosticPing, Return: TypeVoid},
		{Symbol: SymTransform, Params: []Type{TypeInt32}, Return: TypeInt32},
		{Symbol: SymByteLength, Params: []Type{TypeBytePtr}, Return: TypeInt32, Sentinel: nullSentinel},
	}
}

// Symbols returns just the exported symbol names, in table order.
func Symbols() []string {
	table := Table()
	syms := make([]string, len(table))
	for i, sig := range table {
		syms[i] = sig.Symbol
	}
	return syms
}

// Compatible reports whether a host built against contract version v can
// use this library: valid semver, same major, and v's minor not newer
// than ours.
func Compatible(v string) bool {
	if !semver.IsValid(v) {
		return false
	}
	if semver.Major(v) != semver.Major(Version) {
		return false
	}
	return semver.Compare(semver.MajorMinor(v), semver.MajorMinor(Version)) <= 0
}

func int32p(v int32) *int32 { return &v }
