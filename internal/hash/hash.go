// Package hash computes content digests for build artifacts.
//
// The routing artifact records a SHA-256 digest of its encoded body so the
// edge runtime (and repeated builds) can tell whether the table changed.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hasher provides an abstraction for hashing operations.
type Hasher interface {
	// HashBytes computes the hash of data.
	HashBytes(data []byte) string
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashBytes computes the hex-encoded SHA-256 of data.
func (h *SHA256Hasher) HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FakeHasher implements Hasher with a fixed digest for testing.
type FakeHasher struct {
	Digest string
}

// NewFakeHasher creates a new FakeHasher returning digest.
func NewFakeHasher(digest string) *FakeHasher {
	return &FakeHasher{Digest: digest}
}

// HashBytes returns the fixed digest.
func (h *FakeHasher) HashBytes(data []byte) string {
	return h.Digest
}
