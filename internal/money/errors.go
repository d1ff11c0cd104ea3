package money

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// ErrNoAmount reports that no positive monetary amount was found
var ErrNoAmount = eris.New("no positive amount found")

// ParseError is returned when a mention was detected but did not yield a
// positive reference value. Currency and Span are kept for diagnostics.
type ParseError struct {
	Currency string
	Span     string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("money: %q (%s): %v", e.Span, e.Currency, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
