package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/potency/assay"
)

func TestFingerprint(t *testing.T) {
	a := []assay.Observation{
		{Dose: 2, Response: 20, Group: assay.GroupReference},
		{Dose: 2, Response: 25, Group: assay.GroupTest},
	}
	b := []assay.Observation{a[1], a[0]}
	c := []assay.Observation{a[0], {Dose: 2, Response: 25, Group: assay.GroupReference}}

	require.Equal(t, Fingerprint(a), Fingerprint(append([]assay.Observation{}, a...)))
	require.NotEqual(t, Fingerprint(a), Fingerprint(b))
	require.NotEqual(t, Fingerprint(a), Fingerprint(c))

	hex := FingerprintHex(a)
	require.Len(t, hex, 16)
	require.Equal(t, hex, FingerprintHex(a))
}
