package eccwallet

import (
	"fmt"
	"strings"

	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/ripemd160"
)

// DigestSize is the length of a SHA-256 digest in bytes.
const DigestSize = sha256.Size

// Digest is the SHA-256 hash of a message. Digests, not messages, are what
// gets signed.
type Digest [DigestSize]byte

// Hash returns the SHA-256 digest of message. Empty input is fine.
func Hash(message []byte) Digest {
	return Digest(sha256.Sum256(message))
}

// DigestFromBytes converts a raw 32 byte hash into a Digest.
func DigestFromBytes(b []byte) (Digest, error) {
	var d Digest
	if len(b) != DigestSize {
		return d, fmt.Errorf("%w, got %d", ErrInvalidDigest, len(b))
	}
	copy(d[:], b)
	return d, nil
}

// Bytes returns a copy of the digest bytes.
func (d Digest) Bytes() []byte {
	b := make([]byte, DigestSize)
	copy(b, d[:])
	return b
}

// String renders the digest as lowercase hex, one %x per byte. Bytes below
// 0x10 are not zero padded, so the result may be shorter than 64 characters
// and is not meant to be decoded. Use EncodeHex(d.Bytes()) for the fixed
// width form.
func (d Digest) String() string {
	var sb strings.Builder
	sb.Grow(2 * DigestSize)
	for _, b := range d {
		fmt.Fprintf(&sb, "%x", b)
	}
	return sb.String()
}

// Hash256 returns SHA-256 applied twice, the hash Bitcoin uses for checksums.
func Hash256(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

// Hash160 returns the RIPEMD-160 of the SHA-256 of data, the 20 byte hash
// a Bitcoin address is built from.
func Hash160(data []byte) []byte {
	inner := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(inner[:])
	return h.Sum(nil)
}
