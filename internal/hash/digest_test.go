package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigest_Deterministic(t *testing.T) {
	sum := func() uint64 {
		d := NewDigest()
		d.AddFloat64(2)
		d.AddFloat64(20)
		d.AddString("Reference")
		return d.Sum64()
	}

	assert.Equal(t, sum(), sum())
}

func TestDigest_FieldBoundaries(t *testing.T) {
	a := NewDigest()
	a.AddString("ab")
	a.AddString("c")

	b := NewDigest()
	b.AddString("a")
	b.AddString("bc")

	assert.NotEqual(t, a.Sum64(), b.Sum64())
}

func TestDigest_OrderSensitive(t *testing.T) {
	a := NewDigest()
	a.AddFloat64(1)
	a.AddFloat64(2)

	b := NewDigest()
	b.AddFloat64(2)
	b.AddFloat64(1)

	assert.NotEqual(t, a.Sum64(), b.Sum64())
}
