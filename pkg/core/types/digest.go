package types

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DigestSize is the length of all header digests in bytes.
const DigestSize = 32

// Digest is the fixed-width output of the hashing primitive over a header's
// encoded fields.
type Digest [DigestSize]byte

// ZeroDigest is the documented "no parent" sentinel: the parent of the genesis
// header. No real header hashes to it with any realistic probability, so an
// explicit equality check against it identifies genesis.
var ZeroDigest Digest

// DigestFromBytes creates a Digest from a byte slice. Returns error if len != 32.
func DigestFromBytes(b []byte) (Digest, error) {
	if len(b) != DigestSize {
		return Digest{}, fmt.Errorf("digest must be %d bytes, got %d", DigestSize, len(b))
	}
	var d Digest
	copy(d[:], b)
	return d, nil
}

// DigestFromHex parses a hex-encoded string into a Digest.
func DigestFromHex(s string) (Digest, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Digest{}, fmt.Errorf("invalid hex: %w", err)
	}
	return DigestFromBytes(b)
}

// Bytes returns the digest as a byte slice.
func (d Digest) Bytes() []byte {
	return d[:]
}

// Hex returns the lowercase hex-encoded string.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// String implements fmt.Stringer.
func (d Digest) String() string {
	return d.Hex()
}

// IsZero returns true if the digest equals the ZeroDigest sentinel.
func (d Digest) IsZero() bool {
	return d == ZeroDigest
}

// MarshalText encodes the digest as lowercase hex for JSON and text formats.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.Hex()), nil
}

// UnmarshalText decodes a hex-encoded digest.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := DigestFromHex(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ComputeSHA256 computes SHA-256 of arbitrary data and returns it as a Digest.
func ComputeSHA256(data []byte) Digest {
	return sha256.Sum256(data)
}
