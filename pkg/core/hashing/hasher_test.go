package hashing

import (
	"testing"
)

func TestImplementations(t *testing.T) {
	var _ Hasher = (*DoubleSHA256Hasher)(nil)
	var _ Hasher = (*Blake2bHasher)(nil)
}

func TestHashersDeterministic(t *testing.T) {
	input := []byte("hashlink test input")

	for _, h := range []Hasher{NewDoubleSHA256Hasher(), NewBlake2bHasher()} {
		t.Run(h.Algo(), func(t *testing.T) {
			d1 := h.Sum(input)
			d2 := h.Sum(input)
			if d1 != d2 {
				t.Errorf("same input produced different digests: %s vs %s", d1, d2)
			}
		})
	}
}

func TestHashersSensitiveToInput(t *testing.T) {
	a := []byte("header bytes a")
	b := []byte("header bytes b")

	for _, h := range []Hasher{NewDoubleSHA256Hasher(), NewBlake2bHasher()} {
		t.Run(h.Algo(), func(t *testing.T) {
			if h.Sum(a) == h.Sum(b) {
				t.Error("different inputs produced the same digest")
			}
		})
	}
}

func TestAlgorithmsDiverge(t *testing.T) {
	input := []byte("same input, different algorithms")
	sha := NewDoubleSHA256Hasher().Sum(input)
	blake := NewBlake2bHasher().Sum(input)
	if sha == blake {
		t.Error("dsha256 and blake2b should not agree on the same input")
	}
}

func TestNonZeroOutput(t *testing.T) {
	// The sentinel zero digest must not be producible by hashing ordinary
	// header bytes.
	for _, h := range []Hasher{NewDoubleSHA256Hasher(), NewBlake2bHasher()} {
		t.Run(h.Algo(), func(t *testing.T) {
			if h.Sum([]byte{}).IsZero() || h.Sum(make([]byte, 43)).IsZero() {
				t.Error("hasher produced the zero sentinel")
			}
		})
	}
}

func TestFactory(t *testing.T) {
	tests := []struct {
		algo    string
		wantErr bool
	}{
		{AlgoDoubleSHA256, false},
		{AlgoBlake2b, false},
		{"sha3", true},
		{"", true},
	}
	for _, tt := range tests {
		h, err := New(tt.algo)
		if tt.wantErr {
			if err == nil {
				t.Errorf("New(%q) should fail", tt.algo)
			}
			continue
		}
		if err != nil {
			t.Errorf("New(%q) failed: %v", tt.algo, err)
			continue
		}
		if h.Algo() != tt.algo {
			t.Errorf("New(%q).Algo() = %q", tt.algo, h.Algo())
		}
	}
}
