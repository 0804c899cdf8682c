package assay

import (
	"fmt"

	"github.com/arloliu/potency/errs"
)

// Group identifies the sample an observation belongs to.
type Group uint8

const (
	// GroupUnknown is the zero value and is never valid in a dataset.
	GroupUnknown Group = iota
	// GroupReference is the reference standard.
	GroupReference
	// GroupTest is the sample under test.
	GroupTest
)

const (
	// LabelReference is the exact label of the reference group.
	LabelReference = "Reference"
	// LabelTest is the exact label of the test group.
	LabelTest = "Test"
)

// String returns the group label.
func (g Group) String() string {
	switch g {
	case GroupReference:
		return LabelReference
	case GroupTest:
		return LabelTest
	default:
		return fmt.Sprintf("Group(%d)", uint8(g))
	}
}

// Valid reports whether g is Reference or Test.
func (g Group) Valid() bool {
	return g == GroupReference || g == GroupTest
}

// ParseGroup maps a label to a Group. Matching is case-sensitive.
func ParseGroup(label string) (Group, error) {
	switch label {
	case LabelReference:
		return GroupReference, nil
	case LabelTest:
		return GroupTest, nil
	default:
		return GroupUnknown, fmt.Errorf("%w: %q", errs.ErrInvalidGroup, label)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (g Group) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidGroup, g)
	}

	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Group) UnmarshalText(text []byte) error {
	parsed, err := ParseGroup(string(text))
	if err != nil {
		return err
	}
	*g = parsed

	return nil
}

// Observation is a single dose-response measurement.
type Observation struct {
	Dose     float64 `json:"dose"`
	Response float64 `json:"response"`
	Group    Group   `json:"group"`
}
