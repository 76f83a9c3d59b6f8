package converter

import "fmt"

// MissingFieldError reports a required column that is absent from the input
// table, or a required value that could not be interpreted. Structural errors
// like this abort the whole conversion; no partial output is produced.
type MissingFieldError struct {
	// Column is the required column header.
	Column string

	// Row is the 1-based data row number, or 0 when the column itself is
	// missing from the header.
	Row int

	// Reason describes what went wrong with the value, if anything.
	Reason string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("required column %q is missing from the input", e.Column)
	}
	if e.Reason != "" {
		return fmt.Sprintf("row %d: column %q: %s", e.Row, e.Column, e.Reason)
	}
	return fmt.Sprintf("row %d: required column %q is empty", e.Row, e.Column)
}
