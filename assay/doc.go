// Package assay estimates the relative potency of a test sample against a reference
// standard by parallel-line analysis.
//
// Each sample's dose-response data is fitted with ordinary least squares on the
// log10-transformed dose:
//
//	response = intercept + slope * log10(dose)
//
// Assuming the two lines are parallel, the horizontal shift between them on the
// log-dose axis gives the relative potency:
//
//	RP = exp((test.Intercept - reference.Intercept) / reference.Slope)
//
// The shift is exponentiated with the natural exponential while the fit uses log10.
// Results therefore follow the conventions of the dashboards this package replaces and
// are not a textbook log10 potency ratio.
//
// The absolute slope difference between the two lines is reported as a diagnostic only.
// No statistical parallelism test is performed.
//
// # Usage
//
//	obs := []assay.Observation{
//	    {Dose: 2, Response: 20, Group: assay.GroupReference},
//	    {Dose: 4, Response: 40, Group: assay.GroupReference},
//	    {Dose: 2, Response: 25, Group: assay.GroupTest},
//	    {Dose: 4, Response: 45, Group: assay.GroupTest},
//	}
//	res, err := assay.Estimate(obs)
//	if err != nil {
//	    var ve *errs.ValidationError
//	    if errors.As(err, &ve) {
//	        // malformed input
//	    }
//	    return err
//	}
//	fmt.Printf("RP = %.3f\n", res.RelativePotency)
//
// Estimate has no shared mutable state and is safe to call from multiple goroutines.
package assay
