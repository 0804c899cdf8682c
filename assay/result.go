package assay

import "github.com/arloliu/potency/regression"

// GroupFit is the least squares line of one sample on log10(dose).
type GroupFit struct {
	Group     Group   `json:"group"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	RMSE      float64 `json:"rmse"`
	N         int     `json:"n"`
	MinDose   float64 `json:"min_dose"`
	MaxDose   float64 `json:"max_dose"`

	// Model is the underlying fit, usable for predictions and plotting.
	Model *regression.Model `json:"-"`
}

// Predict returns the fitted response at dose. Returns NaN for dose <= 0.
func (f GroupFit) Predict(dose float64) float64 {
	if f.Model == nil {
		return regression.NewLog10Estimator(f.Intercept, f.Slope).Estimate(dose)
	}

	return f.Model.Estimator.Estimate(dose)
}

// Result bundles both fits with the derived potency metrics.
type Result struct {
	Reference       GroupFit `json:"reference"`
	Test            GroupFit `json:"test"`
	RelativePotency float64  `json:"relative_potency"`
	SlopeDifference float64  `json:"slope_difference"`
}
