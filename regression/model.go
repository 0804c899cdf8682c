package regression

import "fmt"

// Model represents a fitted regression model with its statistics and estimator.
//
// Fields:
//   - Type: The model type (linear, log10)
//   - Coefficients: [a, b] where y = a + b * f(x)
//   - RSquared: Coefficient of determination (0-1 for least squares fits with an intercept)
//   - RMSE: Root mean square error of the residuals
//   - N: Number of points used in the fit
//   - Formula: Human-readable formula
//   - Estimator: Concrete estimator for predictions
type Model struct {
	Type         ModelType
	Coefficients []float64
	RSquared     float64
	RMSE         float64
	N            int
	Formula      string
	Estimator    Estimator
}

// Intercept returns the a coefficient.
func (m *Model) Intercept() float64 {
	if len(m.Coefficients) < 1 {
		return 0
	}

	return m.Coefficients[0]
}

// Slope returns the b coefficient.
func (m *Model) Slope() float64 {
	if len(m.Coefficients) < 2 {
		return 0
	}

	return m.Coefficients[1]
}

// String returns a string representation of the model.
func (m *Model) String() string {
	return fmt.Sprintf("Model{Type: %s, N: %d, R²: %.4f, RMSE: %.4f, Formula: %s}",
		m.Type, m.N, m.RSquared, m.RMSE, m.Formula)
}
