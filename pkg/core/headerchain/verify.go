package headerchain

import (
	"errors"
	"fmt"

	"github.com/hashlink/hlkd/pkg/core/types"
)

var (
	ErrParentMismatch = errors.New("header parent does not match digest of predecessor")
	ErrHeightGap      = errors.New("header height is not predecessor height + 1")
)

// Verify reports whether chain is a valid, gap-free, correctly hash-linked
// extension of trusted. The trusted header is assumed valid (it is genesis,
// or was verified by an earlier call); every header in chain is checked.
//
// An empty chain is trivially valid, which lets verification advance the
// trust frontier incrementally from any already-verified header. A broken
// chain is an ordinary input, not an error: the answer is strictly binary.
func (e *Engine) Verify(trusted types.Header, chain []types.Header) bool {
	return e.Check(trusted, chain) == nil
}

// Check is Verify with a reason: it returns nil when the chain extends
// trusted, or an error wrapping ErrParentMismatch or ErrHeightGap naming the
// first broken link. Verification stops at the first failure; a later correct
// link never heals an earlier broken one.
func (e *Engine) Check(trusted types.Header, chain []types.Header) error {
	prev := trusted
	for i := range chain {
		if err := e.checkLink(prev, chain[i]); err != nil {
			return fmt.Errorf("link %d (height %d): %w", i, chain[i].Height, err)
		}
		prev = chain[i]
	}
	return nil
}

// checkLink validates a single parent/child link: the child's height must be
// exactly one past the parent's, and the child's parent field must equal the
// digest of the parent header. Both checks are required; either failing
// invalidates the link.
func (e *Engine) checkLink(parent, child types.Header) error {
	if child.Height != parent.Height+1 {
		return ErrHeightGap
	}
	if child.Parent != e.HeaderDigest(parent) {
		return ErrParentMismatch
	}
	return nil
}
