package regression

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// ModelType represents the type of regression model.
type ModelType int

const (
	// ModelTypeLinear represents the linear model: y = a + b * x
	ModelTypeLinear ModelType = iota
	// ModelTypeLog10 represents the log-linear model: y = a + b * log10(x)
	ModelTypeLog10
)

var modelTypeNames = map[ModelType]string{
	ModelTypeLinear: "linear",
	ModelTypeLog10:  "log10",
}

// String returns the string representation of the model type.
func (mt ModelType) String() string {
	if name, exists := modelTypeNames[mt]; exists {
		return name
	}

	return "unknown"
}

var modelTypeFromString = map[string]ModelType{
	"linear": ModelTypeLinear,
	"log10":  ModelTypeLog10,
}

// ModelTypeFromString returns the ModelType for a given string name.
// Returns ModelType(-1) for unknown names.
func ModelTypeFromString(name string) ModelType {
	if modelType, exists := modelTypeFromString[strings.ToLower(name)]; exists {
		return modelType
	}

	return ModelType(-1)
}

// Estimator defines the interface for fitted models.
type Estimator interface {
	// Estimate returns the fitted response at x.
	Estimate(x float64) float64
	// Type returns the model type.
	Type() ModelType
	// Coefficients returns a copy of the model coefficients [a, b].
	Coefficients() []float64
	// SetCoefficients replaces the coefficients; exactly 2 are required.
	SetCoefficients(coeffs []float64) error
}

// LinearEstimator implements the linear model: y = a + b * x
type LinearEstimator struct {
	a, b float64
}

// NewLinearEstimator creates a new linear estimator with the given coefficients.
func NewLinearEstimator(a, b float64) *LinearEstimator {
	return &LinearEstimator{a: a, b: b}
}

// Estimate calculates y = a + b * x.
func (l *LinearEstimator) Estimate(x float64) float64 {
	return l.a + l.b*x
}

// Type returns the model type.
func (l *LinearEstimator) Type() ModelType {
	return ModelTypeLinear
}

// Coefficients returns the model coefficients [a, b].
func (l *LinearEstimator) Coefficients() []float64 {
	return []float64{l.a, l.b}
}

// SetCoefficients updates the coefficients of the linear model.
func (l *LinearEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != 2 {
		return fmt.Errorf("linear model expects exactly 2 coefficients, got %d", len(coeffs))
	}
	l.a = coeffs[0]
	l.b = coeffs[1]

	return nil
}

// Log10Estimator implements the log-linear model: y = a + b * log10(x)
type Log10Estimator struct {
	a, b float64
}

// NewLog10Estimator creates a new log-linear estimator with the given coefficients.
func NewLog10Estimator(a, b float64) *Log10Estimator {
	return &Log10Estimator{a: a, b: b}
}

// Estimate calculates y = a + b * log10(x). Returns NaN for x <= 0.
func (l *Log10Estimator) Estimate(x float64) float64 {
	if x <= 0 {
		return math.NaN()
	}

	return l.a + l.b*math.Log10(x)
}

// Inverse returns the x at which the model predicts y. Returns NaN when the slope is zero.
func (l *Log10Estimator) Inverse(y float64) float64 {
	if l.b == 0 {
		return math.NaN()
	}

	return math.Pow(10, (y-l.a)/l.b)
}

// Type returns the model type.
func (l *Log10Estimator) Type() ModelType {
	return ModelTypeLog10
}

// Coefficients returns the model coefficients [a, b].
func (l *Log10Estimator) Coefficients() []float64 {
	return []float64{l.a, l.b}
}

// SetCoefficients updates the coefficients of the log-linear model.
func (l *Log10Estimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != 2 {
		return fmt.Errorf("log10 model expects exactly 2 coefficients, got %d", len(coeffs))
	}
	l.a = coeffs[0]
	l.b = coeffs[1]

	return nil
}

// NewEstimator creates a new estimator by name and coefficients.
//
// Parameters:
//   - name: The model name (case-insensitive): "linear" or "log10"
//   - coeffs: The model coefficients [a, b]
//
// Example:
//
//	est, err := NewEstimator("log10", []float64{0, 66.44})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y := est.Estimate(8)
func NewEstimator(name string, coeffs []float64) (Estimator, error) {
	var estimator Estimator
	switch ModelTypeFromString(name) {
	case ModelTypeLinear:
		estimator = NewLinearEstimator(0, 0)
	case ModelTypeLog10:
		estimator = NewLog10Estimator(0, 0)
	default:
		supported := make([]string, 0, len(modelTypeNames))
		for _, n := range modelTypeNames {
			supported = append(supported, n)
		}
		slices.Sort(supported)

		return nil, fmt.Errorf("unknown model type: %s. Supported types: %s", name, strings.Join(supported, ", "))
	}

	if err := estimator.SetCoefficients(coeffs); err != nil {
		return nil, err
	}

	return estimator, nil
}
