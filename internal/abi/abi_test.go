package abi

import "testing"

func TestTableCoversAllSymbols(t *testing.T) {
	table := Table()
	if len(table) != 3 {
		t.Fatalf("Table() length = %d, want 3", len(table))
	}

	byName := make(map[string]Signature)
	for _, sig := range table {
		byName[sig.Symbol] = sig
	}

	ping, ok := byName[SymDiagnosticPing]
	if !ok {
		t.Fatalf("table missing %s", SymDiagnosticPing)
	}
	if len(ping.Params) != 0 || ping.Return != TypeVoid || ping.Sentinel != nil {
		t.Errorf("%s signature = %+v, want no params, void return, no sentinel", SymDiagnosticPing, ping)
	}

	tr, ok := byName[SymTransform]
	if !ok {
		t.Fatalf("table missing %s", SymTransform)
	}
	if len(tr.Params) != 1 || tr.Params[0] != TypeInt32 || tr.Return != TypeInt32 {
		t.Errorf("%s signature = %+v, want (int32) int32", SymTransform, tr)
	}
	if tr.Sentinel != nil {
		t.Errorf("%s has a sentinel; the function is total", SymTransform)
	}

	bl, ok := byName[SymByteLength]
	if !ok {
		t.Fatalf("table missing %s", SymByteLength)
	}
	if len(bl.Params) != 1 || bl.Params[0] != TypeBytePtr || bl.Return != TypeInt32 {
		t.Errorf("%s signature = %+v, want (byte*) int32", SymByteLength, bl)
	}
	if bl.Sentinel == nil || *bl.Sentinel != -1 {
		t.Errorf("%s sentinel = %v, want -1", SymByteLength, bl.Sentinel)
	}
}

func TestSymbolsOrder(t *testing.T) {
	syms := Symbols()
	want := []string{SymDiagnosticPing, SymTransform, SymByteLength}
	if len(syms) != len(want) {
		t.Fatalf("Symbols() length = %d, want %d", len(syms), len(want))
	}
	for i := range want {
		if syms[i] != want[i] {
			t.Errorf("Symbols()[%d] = %q, want %q", i, syms[i], want[i])
		}
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		v    string
		want bool
	}{
		{"v1.0.0", true},
		{"v1.0.5", true},   // patch level does not matter
		{"v1.0", true},     // major.minor form accepted
		{"v1.1.0", false},  // newer minor than ours
		{"v2.0.0", false},  // different major
		{"v0.9.0", false},  // different major
		{"1.0.0", false},   // missing v prefix, not valid semver here
		{"garbage", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Compatible(tt.v); got != tt.want {
			t.Errorf("Compatible(%q) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
