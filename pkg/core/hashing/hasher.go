package hashing

import (
	"fmt"

	"github.com/hashlink/hlkd/pkg/core/types"
)

// Supported hash algorithm names, as accepted by New and the config layer.
const (
	AlgoDoubleSHA256 = "dsha256"
	AlgoBlake2b      = "blake2b"
)

// Hasher is the injected hashing capability the header chain depends on.
// Implementations must be deterministic (same input, same output) and
// sensitive to every byte of the input, so any difference in the encoded
// linkage fields yields a different digest with overwhelming probability.
//
// Hashing is a pure computation with no failure mode, so Sum returns the
// digest directly. All implementations are safe for concurrent use.
type Hasher interface {
	// Sum computes the digest of the given encoded header bytes.
	Sum(encoded []byte) types.Digest

	// Algo returns the algorithm name, for logging and status reporting.
	Algo() string
}

// New returns the Hasher for the given algorithm name.
func New(algo string) (Hasher, error) {
	switch algo {
	case AlgoDoubleSHA256:
		return NewDoubleSHA256Hasher(), nil
	case AlgoBlake2b:
		return NewBlake2bHasher(), nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q", algo)
	}
}
