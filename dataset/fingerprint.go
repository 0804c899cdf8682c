package dataset

import (
	"fmt"

	"github.com/arloliu/potency/assay"
	"github.com/arloliu/potency/internal/hash"
)

// Fingerprint returns an order-sensitive xxHash64 of the observations.
//
// Equal datasets always share a fingerprint, so it serves as a dataset ID in reports
// and as an HTTP entity tag.
func Fingerprint(obs []assay.Observation) uint64 {
	d := hash.NewDigest()
	for _, o := range obs {
		d.AddFloat64(o.Dose)
		d.AddFloat64(o.Response)
		d.AddString(o.Group.String())
	}

	return d.Sum64()
}

// FingerprintHex returns Fingerprint as 16 lowercase hex digits.
func FingerprintHex(obs []assay.Observation) string {
	return fmt.Sprintf("%016x", Fingerprint(obs))
}
