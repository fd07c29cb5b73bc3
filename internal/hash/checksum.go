// Package hash wraps the xxHash64 digest used to checksum frame payloads.
package hash

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 of data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest accumulates a checksum over several writes.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest returns an empty Digest.
func NewDigest() Digest {
	return Digest{d: xxhash.New()}
}

// Write adds p to the running checksum. It never fails.
func (d Digest) Write(p []byte) (int, error) {
	return d.d.Write(p)
}

// Sum64 returns the checksum of everything written so far.
func (d Digest) Sum64() uint64 {
	return d.d.Sum64()
}
