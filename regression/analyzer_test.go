package regression

import (
	"errors"
	"math"
	"testing"
)

// TestFitLine_ExactLine verifies that noise-free data reproduces the generating line.
func TestFitLine_ExactLine(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 3.5 - 1.25*xi
	}

	model, err := FitLine(x, y)
	if err != nil {
		t.Fatalf("FitLine failed: %v", err)
	}

	if math.Abs(model.Intercept()-3.5) > 1e-12 {
		t.Errorf("Intercept = %v, expected 3.5", model.Intercept())
	}
	if math.Abs(model.Slope()+1.25) > 1e-12 {
		t.Errorf("Slope = %v, expected -1.25", model.Slope())
	}
	if math.Abs(model.RSquared-1) > 1e-12 {
		t.Errorf("RSquared = %v, expected 1", model.RSquared)
	}
	if model.RMSE > 1e-12 {
		t.Errorf("RMSE = %v, expected 0", model.RMSE)
	}
	if model.N != len(x) {
		t.Errorf("N = %d, expected %d", model.N, len(x))
	}
	if model.Type != ModelTypeLinear {
		t.Errorf("Type = %s, expected linear", model.Type)
	}
}

// TestFitLine_MatchesNormalEquations compares the centered fit with the raw-sum formula.
func TestFitLine_MatchesNormalEquations(t *testing.T) {
	x := []float64{0.3, 0.6, 0.9, 1.2, 1.5, 1.8}
	y := []float64{12.1, 25.3, 33.0, 47.9, 55.2, 70.4}

	model, err := FitLine(x, y)
	if err != nil {
		t.Fatalf("FitLine failed: %v", err)
	}

	n := float64(len(x))
	var sx, sy, sxy, sx2 float64
	for i := range x {
		sx += x[i]
		sy += y[i]
		sxy += x[i] * y[i]
		sx2 += x[i] * x[i]
	}
	b := (n*sxy - sx*sy) / (n*sx2 - sx*sx)
	a := (sy - b*sx) / n

	if math.Abs(model.Slope()-b) > 1e-9*math.Abs(b) {
		t.Errorf("Slope = %v, expected %v", model.Slope(), b)
	}
	if math.Abs(model.Intercept()-a) > 1e-9*math.Max(1, math.Abs(a)) {
		t.Errorf("Intercept = %v, expected %v", model.Intercept(), a)
	}
	if model.RSquared <= 0.95 || model.RSquared > 1 {
		t.Errorf("RSquared = %v, expected a strong fit", model.RSquared)
	}
}

// TestFitLine_TwoPoints verifies exact interpolation through two points.
func TestFitLine_TwoPoints(t *testing.T) {
	model, err := FitLine([]float64{2, 6}, []float64{10, 30})
	if err != nil {
		t.Fatalf("FitLine failed: %v", err)
	}

	if math.Abs(model.Slope()-5) > 1e-12 || math.Abs(model.Intercept()) > 1e-12 {
		t.Errorf("got a=%v b=%v, expected a=0 b=5", model.Intercept(), model.Slope())
	}
	for _, x := range []float64{2, 6} {
		if got := model.Estimator.Estimate(x); math.Abs(got-5*x) > 1e-12 {
			t.Errorf("Estimate(%v) = %v, expected %v", x, got, 5*x)
		}
	}
	if model.RMSE > 1e-12 {
		t.Errorf("RMSE = %v, expected 0", model.RMSE)
	}
}

// TestFitLog10_Scenario verifies the log-linear fit on doubling doses.
func TestFitLog10_Scenario(t *testing.T) {
	doses := []float64{2, 4, 8, 16}
	responses := []float64{20, 40, 60, 80}

	model, err := FitLog10(doses, responses)
	if err != nil {
		t.Fatalf("FitLog10 failed: %v", err)
	}

	expectedSlope := 20 / math.Log10(2)
	if math.Abs(model.Slope()-expectedSlope) > 1e-9*expectedSlope {
		t.Errorf("Slope = %v, expected %v", model.Slope(), expectedSlope)
	}
	if math.Abs(model.Intercept()) > 1e-9 {
		t.Errorf("Intercept = %v, expected 0", model.Intercept())
	}
	if model.Type != ModelTypeLog10 {
		t.Errorf("Type = %s, expected log10", model.Type)
	}
}

func TestFitErrors(t *testing.T) {
	tests := []struct {
		name string
		fit  func(x, y []float64) (*Model, error)
		x, y []float64
		want error
	}{
		{"mismatched", FitLine, []float64{1, 2}, []float64{1}, ErrMismatchedLengths},
		{"single point", FitLine, []float64{1}, []float64{1}, ErrInsufficientPoints},
		{"empty", FitLog10, nil, nil, ErrInsufficientPoints},
		{"zero variance", FitLine, []float64{3, 3, 3}, []float64{1, 2, 3}, ErrZeroVariance},
		{"log zero variance", FitLog10, []float64{4, 4}, []float64{1, 2}, ErrZeroVariance},
		{"non-positive dose", FitLog10, []float64{1, 0}, []float64{1, 2}, ErrNonPositiveX},
		{"negative dose", FitLog10, []float64{-1, 2}, []float64{1, 2}, ErrNonPositiveX},
		{"NaN response", FitLine, []float64{1, 2}, []float64{math.NaN(), 2}, ErrNonFinite},
		{"Inf x", FitLog10, []float64{1, math.Inf(1)}, []float64{1, 2}, ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := tt.fit(tt.x, tt.y)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, expected %v", err, tt.want)
			}
			if model != nil {
				t.Errorf("expected nil model on error")
			}
		})
	}
}

func TestCalculateRSquared(t *testing.T) {
	if got := calculateRSquared([]float64{1, 2, 3}, []float64{1, 2, 3}); got != 1 {
		t.Errorf("perfect fit R² = %v, expected 1", got)
	}
	if got := calculateRSquared([]float64{1, 2, 3}, []float64{2, 2, 2}); got != 0 {
		t.Errorf("mean-only fit R² = %v, expected 0", got)
	}
	if got := calculateRSquared([]float64{5, 5}, []float64{5, 5}); got != 1 {
		t.Errorf("constant exact fit R² = %v, expected 1", got)
	}
	if got := calculateRSquared([]float64{5, 5}, []float64{4, 6}); got != 0 {
		t.Errorf("constant inexact fit R² = %v, expected 0", got)
	}
	if got := calculateRSquared(nil, nil); got != 0 {
		t.Errorf("empty R² = %v, expected 0", got)
	}
}

func TestCalculateRMSE(t *testing.T) {
	got := calculateRMSE([]float64{1, 2, 3, 4}, []float64{2, 3, 4, 5})
	if math.Abs(got-1) > 1e-12 {
		t.Errorf("RMSE = %v, expected 1", got)
	}
	if calculateRMSE(nil, nil) != 0 {
		t.Error("empty RMSE should be 0")
	}
}
