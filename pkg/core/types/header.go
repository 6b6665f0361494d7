package types

import (
	"encoding/binary"
	"fmt"
)

// Placeholder is a tagged "not yet implemented" unit type for commitment
// fields this layer does not interpret. Later layers (transaction inclusion,
// state commitments, consensus metadata) extend the header by replacing these
// with real roots; keeping them structurally present fixes the encoded shape
// now.
type Placeholder struct{}

// placeholderTag is the reserved byte each Placeholder contributes to the
// header encoding.
const placeholderTag byte = 0x00

// Header is the minimal per-block record: linkage (parent digest, height) plus
// opaque commitment placeholders. Headers are immutable values; constructors
// never mutate an existing header.
type Header struct {
	Parent          Digest      `json:"parent"`
	Height          uint64      `json:"height"`
	ExtrinsicsRoot  Placeholder `json:"extrinsicsRoot"`
	StateRoot       Placeholder `json:"stateRoot"`
	ConsensusDigest Placeholder `json:"consensusDigest"`
}

// EncodedHeaderSize is the length of the deterministic header encoding.
const EncodedHeaderSize = 43

// Encode returns a deterministic 43-byte encoding of the header.
// Field order: Height(8) || Parent(32) || ExtrinsicsRoot(1) || StateRoot(1) ||
//
//	ConsensusDigest(1)
//
// Both linkage fields participate, so any change to height or parent changes
// the digest of the header.
func (h *Header) Encode() []byte {
	buf := make([]byte, EncodedHeaderSize)
	binary.BigEndian.PutUint64(buf[0:8], h.Height)
	copy(buf[8:40], h.Parent[:])
	buf[40] = placeholderTag
	buf[41] = placeholderTag
	buf[42] = placeholderTag
	return buf
}

// DecodeHeader parses the 43-byte encoding produced by Encode.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) != EncodedHeaderSize {
		return Header{}, fmt.Errorf("encoded header must be %d bytes, got %d", EncodedHeaderSize, len(buf))
	}
	var h Header
	h.Height = binary.BigEndian.Uint64(buf[0:8])
	copy(h.Parent[:], buf[8:40])
	return h, nil
}

// IsGenesis reports whether the header carries the genesis shape: height 0 and
// the ZeroDigest sentinel as parent.
func (h *Header) IsGenesis() bool {
	return h.Height == 0 && h.Parent.IsZero()
}
