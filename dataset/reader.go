package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/potency/assay"
	"github.com/arloliu/potency/errs"
	"github.com/arloliu/potency/internal/options"
)

// Column aliases, compared case-insensitively after trimming spaces.
var (
	DoseColumns     = []string{"dose", "E_T_Ratio", "E:T Ratio", "et_ratio"}
	ResponseColumns = []string{"response", "Killing(%)", "killing", "% killing"}
	GroupColumns    = []string{"group", "Sample"}
)

type columns struct {
	dose, response, group int
}

// Read parses delimited text with a header row into observations.
//
// Rows keep their input order. Doses must be finite and positive, responses finite,
// and groups exactly "Reference" or "Test" unless WithIgnoreUnknownGroups is set.
//
// Parameters:
//   - r: Source of delimited text
//   - opts: WithComma, WithIgnoreUnknownGroups
//
// Returns:
//   - []assay.Observation: Parsed rows
//   - error: *errs.ValidationError for malformed input
func Read(r io.Reader, opts ...Option) ([]assay.Observation, error) {
	cfg := newReadConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.Comma = cfg.comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errs.Validation(errs.ErrInvalidHeader, "header", "", 0, "empty input")
	}
	if err != nil {
		return nil, parseError(err, 0)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	need := max(cols.dose, cols.response, cols.group) + 1
	var obs []assay.Observation
	for row := 1; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseError(err, row)
		}
		if len(record) < need {
			return nil, errs.Validation(errs.ErrInvalidInput, "", "", row,
				fmt.Sprintf("expected at least %d fields, got %d", need, len(record)))
		}

		o, skip, err := parseRow(record[cols.dose], record[cols.response], record[cols.group], row, cfg)
		if err != nil {
			return nil, err
		}
		if !skip {
			obs = append(obs, o)
		}
	}

	return obs, nil
}

func resolveColumns(header []string) (columns, error) {
	cols := columns{dose: -1, response: -1, group: -1}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		switch {
		case cols.dose < 0 && matches(name, DoseColumns):
			cols.dose = i
		case cols.response < 0 && matches(name, ResponseColumns):
			cols.response = i
		case cols.group < 0 && matches(name, GroupColumns):
			cols.group = i
		}
	}

	switch {
	case cols.dose < 0:
		return cols, missingColumn("dose", DoseColumns)
	case cols.response < 0:
		return cols, missingColumn("response", ResponseColumns)
	case cols.group < 0:
		return cols, missingColumn("group", GroupColumns)
	}

	return cols, nil
}

func matches(name string, aliases []string) bool {
	for _, alias := range aliases {
		if strings.EqualFold(name, alias) {
			return true
		}
	}

	return false
}

func missingColumn(field string, aliases []string) error {
	return errs.Validation(errs.ErrInvalidHeader, "header", "", 0,
		fmt.Sprintf("no %s column (accepted: %s)", field, strings.Join(aliases, ", ")))
}

func parseRow(doseText, responseText, groupText string, row int, cfg *readConfig) (assay.Observation, bool, error) {
	if skipGroup(groupText, cfg) {
		return assay.Observation{}, true, nil
	}

	dose, err := parseFloat(doseText)
	if err != nil {
		return assay.Observation{}, false, errs.Validation(errs.ErrInvalidDose, "dose", "", row,
			fmt.Sprintf("cannot parse %q", doseText))
	}
	response, err := parseFloat(responseText)
	if err != nil {
		return assay.Observation{}, false, errs.Validation(errs.ErrInvalidResponse, "response", "", row,
			fmt.Sprintf("cannot parse %q", responseText))
	}

	o, err := newObservation(dose, response, groupText, row)

	return o, false, err
}

func skipGroup(label string, cfg *readConfig) bool {
	if !cfg.ignoreUnknownGroups {
		return false
	}
	_, err := assay.ParseGroup(strings.TrimSpace(label))

	return err != nil
}

// newObservation applies the row checks shared by every input format.
func newObservation(dose, response float64, label string, row int) (assay.Observation, error) {
	if math.IsNaN(dose) || math.IsInf(dose, 0) || dose <= 0 {
		return assay.Observation{}, errs.Validation(errs.ErrInvalidDose, "dose", "", row,
			fmt.Sprintf("must be > 0 and finite, got %g", dose))
	}
	if math.IsNaN(response) || math.IsInf(response, 0) {
		return assay.Observation{}, errs.Validation(errs.ErrInvalidResponse, "response", "", row,
			fmt.Sprintf("must be finite, got %g", response))
	}

	label = strings.TrimSpace(label)
	group, err := assay.ParseGroup(label)
	if err != nil {
		return assay.Observation{}, errs.Validation(errs.ErrInvalidGroup, "group", "", row,
			fmt.Sprintf("must be %s or %s, got %q", assay.LabelReference, assay.LabelTest, label))
	}

	return assay.Observation{Dose: dose, Response: response, Group: group}, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseError(err error, row int) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return errs.Validation(errs.ErrInvalidInput, "", "", row, pe.Err.Error())
	}

	return fmt.Errorf("read dataset: %w", err)
}
