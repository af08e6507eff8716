package ffi

import (
	"errors"
	"strings"
	"testing"
	"unsafe"
)

// installFakeBindings replaces the raw function variables with in-process
// implementations of the native contract, so wrapper semantics can be
// tested without a C toolchain. The fakes follow the native header
// exactly, including the -1 null sentinel and terminator scan.
func installFakeBindings(t *testing.T) *int {
	t.Helper()

	pings := new(int)

	origPing, origTransform, origByteLength := diagnosticPing, transform, byteLength
	t.Cleanup(func() {
		diagnosticPing, transform, byteLength = origPing, origTransform, origByteLength
	})

	diagnosticPing = func() { *pings++ }
	transform = func(x int32) int32 { return 2*x + 10 }
	byteLength = func(p *byte) int32 {
		if p == nil {
			return -1
		}
		n := int32(0)
		for *(*byte)(unsafe.Add(unsafe.Pointer(p), int(n))) != 0 {
			n++
		}
		return n
	}

	return pings
}

func TestPingPassThrough(t *testing.T) {
	pings := installFakeBindings(t)
	lib := &Lib{path: "fake"}

	lib.Ping()
	lib.Ping()
	lib.Ping()

	if *pings != 3 {
		t.Errorf("ping count = %d, want 3", *pings)
	}
}

func TestTransformForwardsVerbatim(t *testing.T) {
	installFakeBindings(t)
	lib := &Lib{path: "fake"}

	tests := []struct {
		in   int32
		want int32
	}{
		{0, 10},
		{15, 40},
		{-5, 0},
		{1<<31 - 1, 8}, // 2*(2^31-1)+10 wraps mod 2^32
		{-1 << 31, 10}, // 2*(-2^31) wraps to 0
	}

	for _, tt := range tests {
		if got := lib.Transform(tt.in); got != tt.want {
			t.Errorf("Transform(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestByteLengthNilIsNullInput(t *testing.T) {
	installFakeBindings(t)
	lib := &Lib{path: "fake"}

	_, err := lib.ByteLength(nil)
	if !errors.Is(err, ErrNullInput) {
		t.Fatalf("ByteLength(nil) error = %v, want ErrNullInput", err)
	}

	// The raw sentinel never reaches the caller.
	if strings.Contains(err.Error(), "-1") {
		t.Errorf("error message leaks the sentinel: %q", err)
	}
}

func TestByteLengthMeasuresBytes(t *testing.T) {
	installFakeBindings(t)
	lib := &Lib{path: "fake"}

	tests := []struct {
		in   []byte
		want int32
	}{
		{[]byte{}, 0},
		{[]byte("a"), 1},
		{[]byte("hello"), 5},
		{[]byte("Olá, host!"), 11}, // multibyte UTF-8 counts bytes, not runes
	}

	for _, tt := range tests {
		got, err := lib.ByteLength(tt.in)
		if err != nil {
			t.Fatalf("ByteLength(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ByteLength(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestByteLengthRejectsEmbeddedNUL(t *testing.T) {
	installFakeBindings(t)
	lib := &Lib{path: "fake"}

	_, err := lib.ByteLength([]byte("ab\x00cd"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("ByteLength with embedded NUL error = %v, want ErrInvalidInput", err)
	}
}

func TestStringLength(t *testing.T) {
	installFakeBindings(t)
	lib := &Lib{path: "fake"}

	n, err := lib.StringLength("")
	if err != nil {
		t.Fatalf(`StringLength("") error = %v`, err)
	}
	if n != 0 {
		t.Errorf(`StringLength("") = %d, want 0`, n)
	}

	n, err = lib.StringLength("Olá, host!")
	if err != nil {
		t.Fatalf("StringLength() error = %v", err)
	}
	if n != 11 {
		t.Errorf("StringLength() = %d, want 11", n)
	}
}

func TestByteLengthSentinelViolation(t *testing.T) {
	installFakeBindings(t)
	lib := &Lib{path: "fake"}

	// A native side that answers success for a null pointer is breaking
	// the contract; the wrapper must refuse to invent a result.
	byteLength = func(p *byte) int32 { return 0 }

	_, err := lib.ByteLength(nil)
	if err == nil {
		t.Fatal("ByteLength(nil) with broken native side returned no error")
	}
	if errors.Is(err, ErrNullInput) {
		t.Fatalf("ByteLength(nil) error = %v, want a sentinel violation, not ErrNullInput", err)
	}
}

func TestErrorFormat(t *testing.T) {
	err := &Error{Op: "byteLength", Err: ErrNullInput}
	if got, want := err.Error(), "byteLength: null input buffer"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrNullInput) {
		t.Error("Unwrap() does not reach ErrNullInput")
	}
}
