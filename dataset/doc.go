// Package dataset reads dose-response observations from delimited text and JSON.
//
// Delimited input must start with a header row. Columns are located by name,
// case-insensitively, so both generic headers and the assay plate reader export are
// accepted:
//
//	dose,response,group
//	E_T_Ratio,Killing(%),Sample
//
// Extra columns are ignored. Every error is an *errs.ValidationError naming the field
// and the 1-based data row (the header is not counted).
package dataset
