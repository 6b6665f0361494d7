package hashing

import (
	"crypto/sha256"

	"github.com/hashlink/hlkd/pkg/core/types"
)

// DoubleSHA256Hasher implements Hasher using double-SHA256.
// This is the default algorithm.
type DoubleSHA256Hasher struct{}

var _ Hasher = (*DoubleSHA256Hasher)(nil)

// NewDoubleSHA256Hasher returns a new DoubleSHA256Hasher.
func NewDoubleSHA256Hasher() *DoubleSHA256Hasher {
	return &DoubleSHA256Hasher{}
}

// Sum computes SHA256(SHA256(encoded)).
func (h *DoubleSHA256Hasher) Sum(encoded []byte) types.Digest {
	first := sha256.Sum256(encoded)
	return sha256.Sum256(first[:])
}

// Algo returns "dsha256".
func (h *DoubleSHA256Hasher) Algo() string { return AlgoDoubleSHA256 }
