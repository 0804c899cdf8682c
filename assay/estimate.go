package assay

import (
	"errors"
	"fmt"
	"math"

	"github.com/arloliu/potency/errs"
	"github.com/arloliu/potency/internal/options"
	"github.com/arloliu/potency/regression"
)

// Estimate fits both samples and derives the relative potency.
//
// Observations are partitioned by group with their relative order preserved. Input is
// validated row by row before anything is fitted, and the first violation is returned.
//
// Parameters:
//   - observations: Dataset containing both Reference and Test rows
//   - opts: Optional settings such as WithSlopeTolerance
//
// Returns:
//   - *Result: Both fits, RelativePotency (always > 0 and finite) and SlopeDifference
//   - error: *errs.ValidationError for malformed input, *errs.ComputationError when the
//     potency is mathematically undefined, or an errs.ErrInvalidOption wrapped error
func Estimate(observations []Observation, opts ...Option) (*Result, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if err := validate(observations); err != nil {
		return nil, err
	}

	refDose, refResp, testDose, testResp := partition(observations)

	if len(refDose) == 0 {
		return nil, errs.Validation(errs.ErrMissingGroup, "group", LabelReference, 0, "no rows")
	}
	if len(testDose) == 0 {
		return nil, errs.Validation(errs.ErrMissingGroup, "group", LabelTest, 0, "no rows")
	}
	if len(refDose) < 2 {
		return nil, insufficient(GroupReference, len(refDose))
	}
	if len(testDose) < 2 {
		return nil, insufficient(GroupTest, len(testDose))
	}

	ref, err := fitGroup(GroupReference, refDose, refResp)
	if err != nil {
		return nil, err
	}
	test, err := fitGroup(GroupTest, testDose, testResp)
	if err != nil {
		return nil, err
	}

	if math.Abs(ref.Slope) <= cfg.slopeTolerance {
		return nil, errs.Computation(errs.ErrUndefinedPotency,
			fmt.Sprintf("reference slope %g is within %g of zero", ref.Slope, cfg.slopeTolerance))
	}

	rp := RelativePotency(ref, test)
	switch {
	case math.IsNaN(rp):
		return nil, errs.Computation(errs.ErrUndefinedPotency, "log-dose shift is not a number")
	case math.IsInf(rp, 0):
		return nil, errs.Computation(errs.ErrUndefinedPotency, "potency overflows float64")
	case rp == 0:
		return nil, errs.Computation(errs.ErrUndefinedPotency, "potency underflows float64")
	}

	return &Result{
		Reference:       ref,
		Test:            test,
		RelativePotency: rp,
		SlopeDifference: math.Abs(ref.Slope - test.Slope),
	}, nil
}

// RelativePotency returns exp((test.Intercept - reference.Intercept) / reference.Slope).
//
// No checks are made; a zero reference slope yields ±Inf or NaN.
func RelativePotency(reference, test GroupFit) float64 {
	return math.Exp((test.Intercept - reference.Intercept) / reference.Slope)
}

func validate(observations []Observation) error {
	for i, o := range observations {
		row := i + 1
		switch {
		case math.IsNaN(o.Dose) || math.IsInf(o.Dose, 0):
			return errs.Validation(errs.ErrInvalidDose, "dose", "", row, fmt.Sprintf("must be finite, got %g", o.Dose))
		case o.Dose <= 0:
			return errs.Validation(errs.ErrInvalidDose, "dose", "", row, fmt.Sprintf("must be > 0, got %g", o.Dose))
		case math.IsNaN(o.Response) || math.IsInf(o.Response, 0):
			return errs.Validation(errs.ErrInvalidResponse, "response", "", row, fmt.Sprintf("must be finite, got %g", o.Response))
		case !o.Group.Valid():
			return errs.Validation(errs.ErrInvalidGroup, "group", "", row,
				fmt.Sprintf("must be %s or %s, got %s", LabelReference, LabelTest, o.Group))
		}
	}

	return nil
}

func partition(observations []Observation) (refDose, refResp, testDose, testResp []float64) {
	var nRef int
	for _, o := range observations {
		if o.Group == GroupReference {
			nRef++
		}
	}
	nTest := len(observations) - nRef

	refDose = make([]float64, 0, nRef)
	refResp = make([]float64, 0, nRef)
	testDose = make([]float64, 0, nTest)
	testResp = make([]float64, 0, nTest)

	for _, o := range observations {
		if o.Group == GroupReference {
			refDose = append(refDose, o.Dose)
			refResp = append(refResp, o.Response)
		} else {
			testDose = append(testDose, o.Dose)
			testResp = append(testResp, o.Response)
		}
	}

	return refDose, refResp, testDose, testResp
}

func fitGroup(g Group, doses, responses []float64) (GroupFit, error) {
	model, err := regression.FitLog10(doses, responses)
	if err != nil {
		if errors.Is(err, regression.ErrZeroVariance) {
			return GroupFit{}, errs.Validation(errs.ErrInsufficientData, "dose", g.String(), 0,
				"needs at least 2 distinct doses")
		}

		return GroupFit{}, fmt.Errorf("fit %s: %w", g, err)
	}

	fit := GroupFit{
		Group:     g,
		Slope:     model.Slope(),
		Intercept: model.Intercept(),
		RSquared:  model.RSquared,
		RMSE:      model.RMSE,
		N:         model.N,
		MinDose:   doses[0],
		MaxDose:   doses[0],
		Model:     model,
	}
	for _, d := range doses[1:] {
		fit.MinDose = math.Min(fit.MinDose, d)
		fit.MaxDose = math.Max(fit.MaxDose, d)
	}

	if math.IsNaN(fit.Slope) || math.IsInf(fit.Slope, 0) || math.IsNaN(fit.Intercept) || math.IsInf(fit.Intercept, 0) {
		return GroupFit{}, errs.Computation(errs.ErrUndefinedPotency,
			fmt.Sprintf("%s fit is not finite", g))
	}

	return fit, nil
}

func insufficient(g Group, n int) error {
	return errs.Validation(errs.ErrInsufficientData, "", g.String(), 0,
		fmt.Sprintf("need at least 2 rows, got %d", n))
}
