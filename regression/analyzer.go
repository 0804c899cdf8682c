package regression

import (
	"errors"
	"fmt"
	"math"

	"github.com/arloliu/potency/internal/pool"
)

var (
	// ErrMismatchedLengths indicates x and y slices of different lengths.
	ErrMismatchedLengths = errors.New("regression: mismatched data lengths")
	// ErrInsufficientPoints indicates fewer than two points.
	ErrInsufficientPoints = errors.New("regression: insufficient data points")
	// ErrZeroVariance indicates that every x value is identical, so no slope exists.
	ErrZeroVariance = errors.New("regression: x values have zero variance")
	// ErrNonPositiveX indicates an x value that cannot be log-transformed.
	ErrNonPositiveX = errors.New("regression: x values must be positive for log10 model")
	// ErrNonFinite indicates a NaN or infinite input value.
	ErrNonFinite = errors.New("regression: non-finite value")
)

// FitLine fits the linear model y = a + b * x by ordinary least squares.
//
// Parameters:
//   - x: Independent variable
//   - y: Dependent variable
//
// Returns:
//   - *Model: Fitted linear model
//   - error: ErrMismatchedLengths, ErrInsufficientPoints, ErrNonFinite or ErrZeroVariance
func FitLine(x, y []float64) (*Model, error) {
	if err := checkInputs(x, y); err != nil {
		return nil, err
	}

	a, b, err := leastSquares(x, y)
	if err != nil {
		return nil, err
	}

	predicted, cleanup := pool.GetFloat64Slice(len(x))
	defer cleanup()
	for i := range x {
		predicted[i] = a + b*x[i]
	}

	return &Model{
		Type:         ModelTypeLinear,
		Coefficients: []float64{a, b},
		RSquared:     calculateRSquared(y, predicted),
		RMSE:         calculateRMSE(y, predicted),
		N:            len(x),
		Formula:      fmt.Sprintf("y = %.2f + %.2f * x", a, b),
		Estimator:    NewLinearEstimator(a, b),
	}, nil
}

// FitLog10 fits the log-linear model y = a + b * log10(x) by ordinary least squares.
//
// This is the per-sample fit of a parallel-line bioassay: x is the dose and y the
// measured response.
//
// Parameters:
//   - x: Doses, all strictly positive
//   - y: Responses
//
// Returns:
//   - *Model: Fitted log10 model
//   - error: ErrMismatchedLengths, ErrInsufficientPoints, ErrNonFinite, ErrNonPositiveX
//     or ErrZeroVariance
func FitLog10(x, y []float64) (*Model, error) {
	if err := checkInputs(x, y); err != nil {
		return nil, err
	}

	logX, cleanup := pool.GetFloat64Slice(len(x))
	defer cleanup()
	for i, xi := range x {
		if xi <= 0 {
			return nil, fmt.Errorf("%w: x[%d] = %g", ErrNonPositiveX, i, xi)
		}
		logX[i] = math.Log10(xi)
	}

	a, b, err := leastSquares(logX, y)
	if err != nil {
		return nil, err
	}

	predicted, cleanupPred := pool.GetFloat64Slice(len(x))
	defer cleanupPred()
	for i := range logX {
		predicted[i] = a + b*logX[i]
	}

	return &Model{
		Type:         ModelTypeLog10,
		Coefficients: []float64{a, b},
		RSquared:     calculateRSquared(y, predicted),
		RMSE:         calculateRMSE(y, predicted),
		N:            len(x),
		Formula:      fmt.Sprintf("y = %.2f + %.2f * log10(x)", a, b),
		Estimator:    NewLog10Estimator(a, b),
	}, nil
}

func checkInputs(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d x vs %d y", ErrMismatchedLengths, len(x), len(y))
	}
	if len(x) < 2 {
		return fmt.Errorf("%w: %d", ErrInsufficientPoints, len(x))
	}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			return fmt.Errorf("%w: x[%d] = %g", ErrNonFinite, i, x[i])
		}
		if math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return fmt.Errorf("%w: y[%d] = %g", ErrNonFinite, i, y[i])
		}
	}

	return nil
}

// leastSquares returns the intercept a and slope b minimizing Σ(y - a - b*x)².
// Sums are centered on the means to avoid cancellation in Σx² - n*x̄².
func leastSquares(x, y []float64) (a, b float64, err error) {
	meanX := calculateMean(x)
	meanY := calculateMean(y)

	var sxx, sxy float64
	for i := range x {
		dx := x[i] - meanX
		sxx += dx * dx
		sxy += dx * (y[i] - meanY)
	}

	if sxx == 0 {
		return 0, 0, ErrZeroVariance
	}

	b = sxy / sxx
	a = meanY - b*meanX

	return a, b, nil
}

// calculateRSquared calculates the coefficient of determination (R²).
//
// Formula: R² = 1 - (SS_res / SS_tot)
//
// Returns 1 when every observed value is identical and the fit reproduces them exactly,
// and 0 when observed values are identical but the fit misses them.
func calculateRSquared(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	mean := calculateMean(observed)
	ssTot := 0.0
	ssRes := 0.0

	for i := range observed {
		ssTot += (observed[i] - mean) * (observed[i] - mean)
		ssRes += (observed[i] - predicted[i]) * (observed[i] - predicted[i])
	}

	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}

		return 0
	}

	return 1.0 - (ssRes / ssTot)
}

// calculateRMSE calculates the root mean square error: √(Σ(observed - predicted)² / n).
func calculateRMSE(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	sumSq := 0.0
	for i := range observed {
		diff := observed[i] - predicted[i]
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(observed)))
}

// calculateMean calculates the arithmetic mean (0 for an empty slice).
func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
