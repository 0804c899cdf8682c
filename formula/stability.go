package formula

import (
	"fmt"
	"math"

	"github.com/arloliu/potency/errs"
)

const (
	// ReleaseThreshold is the lowest releasable potency in percent.
	ReleaseThreshold = 70.0
	// StudyHorizonMonths is the length of the stability study.
	StudyHorizonMonths = 18.0
	// InitialPotency is the potency at time zero in percent.
	InitialPotency = 100.0
)

// StorageCondition is a storage temperature band.
type StorageCondition string

const (
	Refrigerated StorageCondition = "2-8C"
	Frozen       StorageCondition = "-20C"
	UltraFrozen  StorageCondition = "-80C"
)

// first-order decay constants per month
var decayRates = map[StorageCondition]float64{
	Refrigerated: 0.10,
	Frozen:       0.04,
	UltraFrozen:  0.01,
}

// StorageConditions lists the supported conditions, warmest first.
func StorageConditions() []StorageCondition {
	return []StorageCondition{Refrigerated, Frozen, UltraFrozen}
}

// ParseStorageCondition validates a condition label.
func ParseStorageCondition(label string) (StorageCondition, error) {
	c := StorageCondition(label)
	if _, ok := decayRates[c]; !ok {
		return "", errs.Validation(errs.ErrInvalidInput, "condition", "", 0,
			fmt.Sprintf("must be one of %v, got %q", StorageConditions(), label))
	}

	return c, nil
}

// DecayRate returns the first-order rate constant k in 1/month.
func (c StorageCondition) DecayRate() (float64, error) {
	k, ok := decayRates[c]
	if !ok {
		return 0, errs.Validation(errs.ErrInvalidInput, "condition", "", 0, fmt.Sprintf("unknown condition %q", c))
	}

	return k, nil
}

// PotencyAt returns InitialPotency * exp(-k * months).
func PotencyAt(c StorageCondition, months float64) (float64, error) {
	k, err := c.DecayRate()
	if err != nil {
		return 0, err
	}
	if math.IsNaN(months) || months < 0 {
		return 0, errs.Validation(errs.ErrInvalidInput, "months", "", 0, fmt.Sprintf("must be >= 0, got %g", months))
	}

	return InitialPotency * math.Exp(-k*months), nil
}

// CurvePoint is one sample of a stability curve.
type CurvePoint struct {
	Months  float64 `json:"months"`
	Potency float64 `json:"potency"`
}

// Curve samples the decay at points evenly spaced times in [0, horizon].
func Curve(c StorageCondition, horizon float64, points int) ([]CurvePoint, error) {
	if !(horizon > 0) || math.IsInf(horizon, 0) {
		return nil, errs.Validation(errs.ErrInvalidInput, "horizon", "", 0, fmt.Sprintf("must be > 0, got %g", horizon))
	}
	if points < 2 {
		return nil, errs.Validation(errs.ErrInvalidInput, "points", "", 0, fmt.Sprintf("must be >= 2, got %d", points))
	}
	k, err := c.DecayRate()
	if err != nil {
		return nil, err
	}

	curve := make([]CurvePoint, points)
	step := horizon / float64(points-1)
	for i := range curve {
		t := step * float64(i)
		if i == points-1 {
			t = horizon
		}
		curve[i] = CurvePoint{Months: t, Potency: InitialPotency * math.Exp(-k*t)}
	}

	return curve, nil
}

// ShelfLifeEstimate is the time until potency falls to ReleaseThreshold.
type ShelfLifeEstimate struct {
	Condition StorageCondition `json:"condition"`
	Months    float64          `json:"months"`
	// ExceedsHorizon is set when the threshold is not reached within StudyHorizonMonths.
	ExceedsHorizon bool `json:"exceeds_horizon"`
}

// String formats the estimate the way the stability dashboard reports it.
func (s ShelfLifeEstimate) String() string {
	if s.ExceedsHorizon {
		return fmt.Sprintf("Shelf life: >%g months (potency remains above %g%%)", StudyHorizonMonths, ReleaseThreshold)
	}

	return fmt.Sprintf("Estimated shelf life: %.1f months", s.Months)
}

// ShelfLife solves InitialPotency * exp(-k t) = ReleaseThreshold for t.
func ShelfLife(c StorageCondition) (ShelfLifeEstimate, error) {
	k, err := c.DecayRate()
	if err != nil {
		return ShelfLifeEstimate{}, err
	}

	months := math.Log(InitialPotency/ReleaseThreshold) / k

	return ShelfLifeEstimate{
		Condition:      c,
		Months:         months,
		ExceedsHorizon: months >= StudyHorizonMonths,
	}, nil
}
