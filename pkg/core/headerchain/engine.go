package headerchain

import (
	"github.com/hashlink/hlkd/pkg/core/hashing"
	"github.com/hashlink/hlkd/pkg/core/types"
)

// Engine derives and verifies hash-linked headers. It carries the injected
// hashing capability and no other state, so every method is a pure function
// of its inputs and safe for concurrent use.
type Engine struct {
	hasher hashing.Hasher
}

// NewEngine creates an Engine backed by the given hasher.
func NewEngine(hasher hashing.Hasher) *Engine {
	return &Engine{hasher: hasher}
}

// Hasher returns the injected hashing capability.
func (e *Engine) Hasher() hashing.Hasher {
	return e.hasher
}

// HeaderDigest computes the digest of a header over its deterministic
// encoding. This digest is what a child embeds as its parent field.
func (e *Engine) HeaderDigest(h types.Header) types.Digest {
	return e.hasher.Sum(h.Encode())
}

// Genesis returns the unique starting header: height 0, parent ZeroDigest,
// commitment placeholders at their unit value. Deterministic, never fails.
func (e *Engine) Genesis() types.Header {
	return types.Header{
		Parent: types.ZeroDigest,
		Height: 0,
	}
}

// ChildOf derives the valid successor of parent: height is parent.Height+1
// and the parent field is the digest of the parent header. The input is read,
// never mutated. The caller guarantees the parent itself is valid; ChildOf
// does not re-verify it.
//
// The commitment placeholders are unit values at this layer, so the child
// carries the same (empty) placeholders as every other header.
func (e *Engine) ChildOf(parent types.Header) types.Header {
	return types.Header{
		Parent: e.HeaderDigest(parent),
		Height: parent.Height + 1,
	}
}
