// Package formula implements the closed-form potency predictors used next to the
// parallel-line analysis: a design-of-experiments surface, a cytokine contribution
// model and first-order stability decay.
//
// All predictors are deterministic. Inputs are range-checked with struct tags and
// out-of-range values are reported as *errs.ValidationError wrapping errs.ErrInvalidInput.
package formula
