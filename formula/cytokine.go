package formula

// Cytokine model bounds.
const (
	CytokineMinPotency = 20.0
	CytokineMaxPotency = 100.0
)

// Per pg/mL weights of each cytokine.
const (
	weightIL2   = 0.002
	weightIFNg  = 0.0015
	weightTNFa  = 0.003
	weightGMCSF = 0.0025
)

// CytokineInputs are secreted cytokine levels in pg/mL.
type CytokineInputs struct {
	IL2   float64 `json:"il2" validate:"gte=100,lte=800"`
	IFNg  float64 `json:"ifng" validate:"gte=150,lte=1000"`
	TNFa  float64 `json:"tnfa" validate:"gte=50,lte=400"`
	GMCSF float64 `json:"gmcsf" validate:"gte=30,lte=250"`
}

// DefaultCytokineInputs returns the dashboard defaults.
func DefaultCytokineInputs() CytokineInputs {
	return CytokineInputs{IL2: 400, IFNg: 500, TNFa: 200, GMCSF: 100}
}

// Contribution is the share of one cytokine in the raw score.
type Contribution struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CytokinePrediction is the clipped potency with the unclipped contributions.
type CytokinePrediction struct {
	Potency       float64        `json:"potency"`
	RawScore      float64        `json:"raw_score"`
	Contributions []Contribution `json:"contributions"`
}

// PredictCytokine sums the weighted cytokine levels and clips the sum to
// [CytokineMinPotency, CytokineMaxPotency].
func PredictCytokine(in CytokineInputs) (*CytokinePrediction, error) {
	if err := check(in); err != nil {
		return nil, err
	}

	contributions := []Contribution{
		{Name: "IL-2", Value: weightIL2 * in.IL2},
		{Name: "IFN-γ", Value: weightIFNg * in.IFNg},
		{Name: "TNF-α", Value: weightTNFa * in.TNFa},
		{Name: "GM-CSF", Value: weightGMCSF * in.GMCSF},
	}

	var raw float64
	for _, c := range contributions {
		raw += c.Value
	}

	return &CytokinePrediction{
		Potency:       clip(raw, CytokineMinPotency, CytokineMaxPotency),
		RawScore:      raw,
		Contributions: contributions,
	}, nil
}
