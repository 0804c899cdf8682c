// Package report turns potency results into text, CSV and JSON reports, compressed
// exports and plots.
package report
