package hashing

import (
	"golang.org/x/crypto/blake2b"

	"github.com/hashlink/hlkd/pkg/core/types"
)

// Blake2bHasher implements Hasher using BLAKE2b-256. The header chain never
// inspects which algorithm produced a digest, so swapping this in exercises
// the substitutability of the hashing capability.
type Blake2bHasher struct{}

var _ Hasher = (*Blake2bHasher)(nil)

// NewBlake2bHasher returns a new Blake2bHasher.
func NewBlake2bHasher() *Blake2bHasher {
	return &Blake2bHasher{}
}

// Sum computes BLAKE2b-256 of the encoded header bytes.
func (h *Blake2bHasher) Sum(encoded []byte) types.Digest {
	return blake2b.Sum256(encoded)
}

// Algo returns "blake2b".
func (h *Blake2bHasher) Algo() string { return AlgoBlake2b }
