package report

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/arloliu/potency/assay"
	"github.com/arloliu/potency/formula"
	"github.com/arloliu/potency/format"
)

const (
	plotWidth  = 960
	plotHeight = 576
	fitSamples = 100
)

var groupColors = map[assay.Group]drawing.Color{
	assay.GroupReference: chart.ColorBlue,
	assay.GroupTest:      chart.ColorOrange,
}

// scatterStyle draws dots only.
func scatterStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: drawing.ColorTransparent,
		StrokeWidth: 0,
		DotWidth:    5,
		DotColor:    col,
	}
}

func dashedStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor:     col,
		StrokeWidth:     2,
		StrokeDashArray: []float64{6, 4},
	}
}

func rendererFor(img format.ImageFormat) (chart.RendererProvider, error) {
	switch img {
	case format.ImagePNG:
		return chart.PNG, nil
	case format.ImageSVG:
		return chart.SVG, nil
	default:
		return nil, fmt.Errorf("plot: unsupported image format %s", img)
	}
}

// PlotDoseResponse draws the observations on a log10 dose axis with the fitted line of
// each group over its dose range.
func PlotDoseResponse(w io.Writer, obs []assay.Observation, res *assay.Result, img format.ImageFormat) error {
	if res == nil {
		return fmt.Errorf("plot: nil result")
	}
	provider, err := rendererFor(img)
	if err != nil {
		return err
	}

	series := make([]chart.Series, 0, 4)
	for _, fit := range []assay.GroupFit{res.Reference, res.Test} {
		var xs, ys []float64
		for _, o := range obs {
			if o.Group == fit.Group && o.Dose > 0 {
				xs = append(xs, math.Log10(o.Dose))
				ys = append(ys, o.Response)
			}
		}
		col := groupColors[fit.Group]
		series = append(series, chart.ContinuousSeries{
			Name:    fit.Group.String(),
			Style:   scatterStyle(col),
			XValues: xs,
			YValues: ys,
		})

		lineX, lineY := fittedLine(fit)
		series = append(series, chart.ContinuousSeries{
			Name:    fit.Group.String() + " Fit",
			Style:   dashedStyle(col),
			XValues: lineX,
			YValues: lineY,
		})
	}

	ch := chart.Chart{
		Title:      fmt.Sprintf("Parallel-Line Analysis (RP = %.2f)", res.RelativePotency),
		Width:      plotWidth,
		Height:     plotHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "E:T Ratio (log scale)", Ticks: doseTicks(obs)},
		YAxis:      chart.YAxis{Name: "% Cytotoxicity / % Killing"},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(provider, w)
}

// fittedLine samples the fit evenly in log10(dose) between the group's dose bounds.
func fittedLine(fit assay.GroupFit) ([]float64, []float64) {
	lo, hi := math.Log10(fit.MinDose), math.Log10(fit.MaxDose)
	xs := make([]float64, fitSamples)
	ys := make([]float64, fitSamples)
	for i := range xs {
		x := lo + (hi-lo)*float64(i)/float64(fitSamples-1)
		xs[i] = x
		ys[i] = fit.Intercept + fit.Slope*x
	}

	return xs, ys
}

// doseTicks labels the distinct doses at their log10 position.
func doseTicks(obs []assay.Observation) []chart.Tick {
	doses := make([]float64, 0, len(obs))
	for _, o := range obs {
		if o.Dose > 0 {
			doses = append(doses, o.Dose)
		}
	}
	slices.Sort(doses)
	doses = slices.Compact(doses)

	ticks := make([]chart.Tick, len(doses))
	for i, d := range doses {
		ticks[i] = chart.Tick{Value: math.Log10(d), Label: strconv.FormatFloat(d, 'g', 4, 64)}
	}

	return ticks
}

// PlotStability draws the decay curve of a storage condition with the release threshold.
func PlotStability(w io.Writer, cond formula.StorageCondition, horizon float64, img format.ImageFormat) error {
	provider, err := rendererFor(img)
	if err != nil {
		return err
	}

	curve, err := formula.Curve(cond, horizon, fitSamples)
	if err != nil {
		return err
	}

	xs := make([]float64, len(curve))
	ys := make([]float64, len(curve))
	for i, p := range curve {
		xs[i] = p.Months
		ys[i] = p.Potency
	}

	ch := chart.Chart{
		Title:      "Predicted Potency Over Time",
		Width:      plotWidth,
		Height:     plotHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Time (Months)"},
		YAxis:      chart.YAxis{Name: "Potency (%)", Range: &chart.ContinuousRange{Min: 0, Max: formula.InitialPotency + 5}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Stability at " + string(cond),
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
				XValues: xs,
				YValues: ys,
			},
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("%g%% Release Threshold", formula.ReleaseThreshold),
				Style:   dashedStyle(chart.ColorRed),
				XValues: []float64{0, horizon},
				YValues: []float64{formula.ReleaseThreshold, formula.ReleaseThreshold},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(provider, w)
}

// PlotContributions draws one bar per cytokine contribution.
func PlotContributions(w io.Writer, pred *formula.CytokinePrediction, img format.ImageFormat) error {
	if pred == nil || len(pred.Contributions) == 0 {
		return fmt.Errorf("plot: no contributions")
	}
	provider, err := rendererFor(img)
	if err != nil {
		return err
	}

	bars := make([]chart.Value, len(pred.Contributions))
	for i, c := range pred.Contributions {
		bars[i] = chart.Value{Value: c.Value, Label: c.Name}
	}

	bc := chart.BarChart{
		Title:      "Cytokine Contributions to Potency",
		Width:      plotWidth,
		Height:     plotHeight,
		BarWidth:   80,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Bars:       bars,
	}

	return bc.Render(provider, w)
}
