package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEstimatorImplementations(t *testing.T) {
	tests := []struct {
		name      string
		estimator Estimator
		x         float64
		expected  float64
	}{
		{"LinearEstimator", NewLinearEstimator(1, 2), 3, 7},
		{"Log10Estimator", NewLog10Estimator(5, 20), 100, 5 + 20*math.Log10(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expected, tt.estimator.Estimate(tt.x), 1e-10)
			require.Len(t, tt.estimator.Coefficients(), 2)
		})
	}
}

func TestLog10Estimator_Domain(t *testing.T) {
	est := NewLog10Estimator(1, 2)
	require.True(t, math.IsNaN(est.Estimate(0)))
	require.True(t, math.IsNaN(est.Estimate(-3)))
}

func TestLog10Estimator_Inverse(t *testing.T) {
	est := NewLog10Estimator(10, 20)
	x := est.Inverse(est.Estimate(42))
	require.InEpsilon(t, 42, x, 1e-12)

	flat := NewLog10Estimator(10, 0)
	require.True(t, math.IsNaN(flat.Inverse(10)))
}

func TestSetCoefficients(t *testing.T) {
	est := NewLinearEstimator(0, 0)
	require.NoError(t, est.SetCoefficients([]float64{4, 5}))
	require.Equal(t, []float64{4, 5}, est.Coefficients())
	require.Error(t, est.SetCoefficients([]float64{1}))

	logEst := NewLog10Estimator(0, 0)
	require.Error(t, logEst.SetCoefficients([]float64{1, 2, 3}))
}

func TestCoefficientsAreCopies(t *testing.T) {
	est := NewLog10Estimator(1, 2)
	c := est.Coefficients()
	c[0] = 99
	require.Equal(t, []float64{1, 2}, est.Coefficients())
}

func TestNewEstimator(t *testing.T) {
	est, err := NewEstimator("LOG10", []float64{0, 10})
	require.NoError(t, err)
	require.Equal(t, ModelTypeLog10, est.Type())
	require.InDelta(t, 20.0, est.Estimate(100), 1e-12)

	est, err = NewEstimator("linear", []float64{1, 1})
	require.NoError(t, err)
	require.Equal(t, ModelTypeLinear, est.Type())

	_, err = NewEstimator("power", []float64{1, 1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Supported types: linear, log10")

	_, err = NewEstimator("linear", []float64{1})
	require.Error(t, err)
}

func TestModelTypeString(t *testing.T) {
	require.Equal(t, "linear", ModelTypeLinear.String())
	require.Equal(t, "log10", ModelTypeLog10.String())
	require.Equal(t, "unknown", ModelType(999).String())
	require.Equal(t, ModelType(-1), ModelTypeFromString("cubic"))
}
