package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/arloliu/potency/assay"
	"github.com/arloliu/potency/errs"
	"github.com/arloliu/potency/internal/options"
)

// Document is the JSON form of a dataset.
type Document struct {
	Observations []Record `json:"observations"`
}

// Record is one JSON row. Group is kept as text so unknown labels can be reported
// with their row.
type Record struct {
	Dose     *float64 `json:"dose"`
	Response *float64 `json:"response"`
	Group    string   `json:"group"`
}

// ReadJSON decodes {"observations":[{"dose":..,"response":..,"group":".."}]}.
//
// Validation matches Read, including WithIgnoreUnknownGroups; WithComma has no effect.
func ReadJSON(r io.Reader, opts ...Option) ([]assay.Observation, error) {
	cfg := newReadConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errs.Validation(errs.ErrInvalidInput, "", "", 0, fmt.Sprintf("decode json: %v", err))
	}

	obs := make([]assay.Observation, 0, len(doc.Observations))
	for i, rec := range doc.Observations {
		row := i + 1
		if rec.Dose == nil {
			return nil, errs.Validation(errs.ErrInvalidDose, "dose", "", row, "missing")
		}
		if rec.Response == nil {
			return nil, errs.Validation(errs.ErrInvalidResponse, "response", "", row, "missing")
		}

		if skipGroup(rec.Group, cfg) {
			continue
		}

		o, err := newObservation(*rec.Dose, *rec.Response, rec.Group, row)
		if err != nil {
			return nil, err
		}
		obs = append(obs, o)
	}

	return obs, nil
}

// NewDocument converts observations into their JSON form.
func NewDocument(obs []assay.Observation) Document {
	doc := Document{Observations: make([]Record, len(obs))}
	for i, o := range obs {
		dose, response := o.Dose, o.Response
		doc.Observations[i] = Record{Dose: &dose, Response: &response, Group: o.Group.String()}
	}

	return doc
}
