package formula

// DOE response surface bounds.
const (
	DOEMinPotency = 20.0
	DOEMaxPotency = 150.0
)

// DOEInputs are the process parameters of the design-of-experiments surface.
type DOEInputs struct {
	MOI              float64 `json:"moi" validate:"gte=2,lte=10"`
	CultureDays      float64 `json:"culture_days" validate:"gte=7,lte=14"`
	ActivationMarker float64 `json:"activation_marker" validate:"gte=40,lte=90"`
}

// DefaultDOEInputs returns the midpoint settings of the dashboard.
func DefaultDOEInputs() DOEInputs {
	return DOEInputs{MOI: 5, CultureDays: 10, ActivationMarker: 65}
}

// PredictDOE evaluates
//
//	0.5*MOI + 1.2*days + 0.8*AM - 0.05*MOI*days + 0.02*days*AM
//
// clipped to [DOEMinPotency, DOEMaxPotency].
func PredictDOE(in DOEInputs) (float64, error) {
	if err := check(in); err != nil {
		return 0, err
	}

	p := 0.5*in.MOI +
		1.2*in.CultureDays +
		0.8*in.ActivationMarker -
		0.05*in.MOI*in.CultureDays +
		0.02*in.CultureDays*in.ActivationMarker

	return clip(p, DOEMinPotency, DOEMaxPotency), nil
}
