package milesearch

import (
	"errors"
	"fmt"
	"strings"

	"milesearch-backend/lib/quasijson"
)

var (
	// ErrDataParse matches *quasijson.DataParseError, a variable in the data
	// script could not be located or decoded.
	ErrDataParse = quasijson.ErrDataParse
	// ErrInvalidAirport matches *InvalidAirportError.
	ErrInvalidAirport = errors.New("milesearch: invalid airport")
	// ErrStructure matches *StructuralError.
	ErrStructure = errors.New("milesearch: unexpected page structure")
)

// InvalidAirportError is returned before any request is made when a search
// names an airport that is not in the relevant catalog.
type InvalidAirportError struct {
	Code string
	// Suggestions holds the codes of the most similar airports in the catalog.
	Suggestions []string
}

func (e *InvalidAirportError) Error() string {
	msg := fmt.Sprintf("%q is invalid airport", e.Code)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *InvalidAirportError) Is(target error) bool {
	return target == ErrInvalidAirport
}

// StructuralError means a required element was missing from a page or could
// not be coerced, usually because the upstream layout changed.
type StructuralError struct {
	Step   string
	Reason string
	Err    error
}

func (e *StructuralError) Error() string {
	msg := fmt.Sprintf("milesearch: %s: %s", e.Step, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

func (e *StructuralError) Is(target error) bool {
	return target == ErrStructure
}

func structuralf(step string, err error, format string, args ...any) error {
	return &StructuralError{Step: step, Reason: fmt.Sprintf(format, args...), Err: err}
}
