// Package hash provides the xxHash64 digests used to fingerprint datasets.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Digest accumulates an xxHash64 over a sequence of typed fields.
//
// Fields are written in a fixed binary layout so equal sequences always produce
// equal sums and field boundaries cannot be confused.
type Digest struct {
	d   *xxhash.Digest
	buf [8]byte
}

// NewDigest creates an empty digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// AddFloat64 writes the IEEE-754 bits of v.
func (d *Digest) AddFloat64(v float64) {
	binary.LittleEndian.PutUint64(d.buf[:], math.Float64bits(v))
	_, _ = d.d.Write(d.buf[:])
}

// AddString writes the length of s followed by its bytes.
func (d *Digest) AddString(s string) {
	binary.LittleEndian.PutUint64(d.buf[:], uint64(len(s)))
	_, _ = d.d.Write(d.buf[:])
	_, _ = d.d.WriteString(s)
}

// Sum64 returns the current hash.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}
