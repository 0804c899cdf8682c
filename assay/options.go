package assay

import (
	"fmt"
	"math"

	"github.com/arloliu/potency/internal/options"
)

// DefaultSlopeTolerance is the absolute threshold below which a reference slope is
// treated as zero.
const DefaultSlopeTolerance = 1e-9

type config struct {
	slopeTolerance float64
}

func newConfig() *config {
	return &config{slopeTolerance: DefaultSlopeTolerance}
}

// Option configures Estimate.
type Option = options.Option[*config]

// WithSlopeTolerance sets the absolute tolerance on the reference slope.
//
// A reference slope with |slope| <= eps makes the relative potency undefined.
// Zero rejects only an exactly flat reference line. Negative or NaN values are rejected.
func WithSlopeTolerance(eps float64) Option {
	return options.New(func(c *config) error {
		if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
			return fmt.Errorf("slope tolerance must be a finite value >= 0, got %g", eps)
		}
		c.slopeTolerance = eps

		return nil
	})
}
