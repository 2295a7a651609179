package models

import (
	"fmt"
	"strings"
)

// MissingFieldError is returned when a required song field is blank
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// InvalidInstrumentError is returned for instruments outside the vocabulary
type InvalidInstrumentError struct {
	Instrument string
	Allowed    []string
}

func (e *InvalidInstrumentError) Error() string {
	return fmt.Sprintf("unsupported instrument %q (allowed: %s)", e.Instrument, strings.Join(e.Allowed, ", "))
}
