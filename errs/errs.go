// Package errs defines the sentinel errors and the error taxonomy shared by the potency packages.
//
// Errors fall into two kinds:
//
//   - Validation errors describe malformed or insufficient input. They are returned
//     before any computation proceeds and are wrapped in *ValidationError, which
//     records the offending field, group and row.
//   - Computation errors describe mathematically undefined results on otherwise valid
//     input. They are wrapped in *ComputationError. Retrying cannot help.
//
// Both wrappers unwrap to one of the sentinels below, so callers can match with errors.Is
// and extract details with errors.As.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDose indicates a dose that is zero, negative or not finite.
	ErrInvalidDose = errors.New("invalid dose")
	// ErrInvalidResponse indicates a response that is NaN or infinite.
	ErrInvalidResponse = errors.New("invalid response")
	// ErrInvalidGroup indicates a group label outside Reference and Test.
	ErrInvalidGroup = errors.New("invalid group")
	// ErrMissingGroup indicates a dataset without any rows for a required group.
	ErrMissingGroup = errors.New("missing group")
	// ErrInsufficientData indicates a group with too few points to fit a line.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrUndefinedPotency indicates that the relative potency cannot be computed.
	ErrUndefinedPotency = errors.New("undefined relative potency")

	// ErrInvalidHeader indicates a delimited input whose header lacks a required column.
	ErrInvalidHeader = errors.New("invalid header")
	// ErrInvalidInput indicates an out-of-range formula input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidOption indicates an option value that cannot be applied.
	ErrInvalidOption = errors.New("invalid option")
)

// Kind names returned by Kind.
const (
	KindValidation  = "validation"
	KindComputation = "computation"
	KindInternal    = "internal"
)

// ValidationError reports malformed or insufficient input.
//
// Row is 1-based and zero when the error is not tied to a single row.
// Group is empty when the error is not tied to a sample group.
type ValidationError struct {
	Field  string
	Group  string
	Row    int
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Err.Error())

	var parts []string
	if e.Field != "" {
		parts = append(parts, "field "+e.Field)
	}
	if e.Group != "" {
		parts = append(parts, "group "+e.Group)
	}
	if e.Row > 0 {
		parts = append(parts, fmt.Sprintf("row %d", e.Row))
	}
	if len(parts) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString(")")
	}
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}

	return sb.String()
}

// Unwrap returns the underlying sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ComputationError reports a mathematically undefined result.
type ComputationError struct {
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *ComputationError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}

	return e.Err.Error() + ": " + e.Detail
}

// Unwrap returns the underlying sentinel.
func (e *ComputationError) Unwrap() error {
	return e.Err
}

// Validation builds a *ValidationError wrapping err.
func Validation(err error, field, group string, row int, detail string) *ValidationError {
	return &ValidationError{Field: field, Group: group, Row: row, Detail: detail, Err: err}
}

// Computation builds a *ComputationError wrapping err.
func Computation(err error, detail string) *ComputationError {
	return &ComputationError{Detail: detail, Err: err}
}

// Kind classifies err as KindValidation, KindComputation or KindInternal.
func Kind(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}

	var ce *ComputationError
	if errors.As(err, &ce) {
		return KindComputation
	}

	return KindInternal
}
