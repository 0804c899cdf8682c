package formula

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/potency/errs"
)

func TestPredictDOE(t *testing.T) {
	p, err := PredictDOE(DefaultDOEInputs())
	require.NoError(t, err)
	require.InDelta(t, 77.0, p, 1e-12)

	p, err = PredictDOE(DOEInputs{MOI: 2, CultureDays: 14, ActivationMarker: 90})
	require.NoError(t, err)
	require.InDelta(t, 113.6, p, 1e-9)

	p, err = PredictDOE(DOEInputs{MOI: 10, CultureDays: 7, ActivationMarker: 40})
	require.NoError(t, err)
	require.InDelta(t, 47.5, p, 1e-9)
}

func TestPredictDOE_OutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		in    DOEInputs
		field string
	}{
		{"MOI too high", DOEInputs{MOI: 11, CultureDays: 10, ActivationMarker: 65}, "moi"},
		{"days too low", DOEInputs{MOI: 5, CultureDays: 6, ActivationMarker: 65}, "culture_days"},
		{"marker too high", DOEInputs{MOI: 5, CultureDays: 10, ActivationMarker: 95}, "activation_marker"},
		{"NaN MOI", DOEInputs{MOI: math.NaN(), CultureDays: 10, ActivationMarker: 65}, "moi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PredictDOE(tt.in)
			require.ErrorIs(t, err, errs.ErrInvalidInput)

			var ve *errs.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestPredictCytokine(t *testing.T) {
	pred, err := PredictCytokine(DefaultCytokineInputs())
	require.NoError(t, err)
	require.InDelta(t, 2.4, pred.RawScore, 1e-12)
	require.Equal(t, CytokineMinPotency, pred.Potency)
	require.Len(t, pred.Contributions, 4)
	require.Equal(t, "IL-2", pred.Contributions[0].Name)
	require.InDelta(t, 0.8, pred.Contributions[0].Value, 1e-12)
	require.InDelta(t, 0.75, pred.Contributions[1].Value, 1e-12)
	require.InDelta(t, 0.6, pred.Contributions[2].Value, 1e-12)
	require.InDelta(t, 0.25, pred.Contributions[3].Value, 1e-12)

	_, err = PredictCytokine(CytokineInputs{IL2: 50, IFNg: 500, TNFa: 200, GMCSF: 100})
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "il2", ve.Field)
	require.Contains(t, err.Error(), "must be >= 100")
}

func TestClip(t *testing.T) {
	require.Equal(t, 20.0, clip(3, 20, 100))
	require.Equal(t, 100.0, clip(300, 20, 100))
	require.Equal(t, 55.5, clip(55.5, 20, 100))
}

func TestStability(t *testing.T) {
	p, err := PotencyAt(Refrigerated, 0)
	require.NoError(t, err)
	require.Equal(t, 100.0, p)

	p, err = PotencyAt(Frozen, 10)
	require.NoError(t, err)
	require.InDelta(t, 100*math.Exp(-0.4), p, 1e-12)

	_, err = PotencyAt(Frozen, -1)
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = PotencyAt(StorageCondition("room"), 1)
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestParseStorageCondition(t *testing.T) {
	for _, c := range StorageConditions() {
		parsed, err := ParseStorageCondition(string(c))
		require.NoError(t, err)
		require.Equal(t, c, parsed)
	}

	_, err := ParseStorageCondition("4C")
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestCurve(t *testing.T) {
	curve, err := Curve(UltraFrozen, 18, 100)
	require.NoError(t, err)
	require.Len(t, curve, 100)
	require.Equal(t, 0.0, curve[0].Months)
	require.Equal(t, 100.0, curve[0].Potency)
	require.Equal(t, 18.0, curve[99].Months)
	require.InDelta(t, 100*math.Exp(-0.18), curve[99].Potency, 1e-12)

	for i := 1; i < len(curve); i++ {
		require.Less(t, curve[i].Potency, curve[i-1].Potency)
	}

	_, err = Curve(UltraFrozen, 0, 10)
	require.ErrorIs(t, err, errs.ErrInvalidInput)
	_, err = Curve(UltraFrozen, 18, 1)
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestShelfLife(t *testing.T) {
	tests := []struct {
		cond    StorageCondition
		months  float64
		exceeds bool
	}{
		{Refrigerated, math.Log(100.0/70) / 0.10, false},
		{Frozen, math.Log(100.0/70) / 0.04, false},
		{UltraFrozen, math.Log(100.0/70) / 0.01, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.cond), func(t *testing.T) {
			est, err := ShelfLife(tt.cond)
			require.NoError(t, err)
			require.InDelta(t, tt.months, est.Months, 1e-12)
			require.Equal(t, tt.exceeds, est.ExceedsHorizon)

			p, err := PotencyAt(tt.cond, est.Months)
			require.NoError(t, err)
			require.InDelta(t, ReleaseThreshold, p, 1e-9)
		})
	}

	est, err := ShelfLife(Refrigerated)
	require.NoError(t, err)
	require.Equal(t, "Estimated shelf life: 3.6 months", est.String())

	est, err = ShelfLife(UltraFrozen)
	require.NoError(t, err)
	require.Equal(t, "Shelf life: >18 months (potency remains above 70%)", est.String())
}
