// Package regression provides closed-form least-squares line fitting for dose-response data.
//
// Two models are supported:
//
//   - Linear:  y = a + b * x
//   - Log10:   y = a + b * log10(x)
//
// The log10 model is the parallel-line bioassay model: responses are regressed against the
// base-10 logarithm of the dose (for cytotoxicity assays, the effector:target ratio).
//
// # Usage
//
//	model, err := regression.FitLog10(doses, responses)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(model.Formula)             // y = 0.00 + 66.44 * log10(x)
//	fmt.Println(model.Estimator.Estimate(8)) // fitted response at dose 8
//
// # Fitting
//
// Coefficients come from the centered normal equations:
//
//	b = Σ(x-x̄)(y-ȳ) / Σ(x-x̄)²
//	a = ȳ - b*x̄
//
// Centering keeps the slope accurate when x values are large relative to their spread.
// A fit needs at least two points with distinct x values; two points give an exact
// interpolation with zero residual.
//
// Every model carries its coefficient of determination (R²) and root mean square error so
// callers can judge the fit quality of each group in an assay.
package regression
