package content

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every validation failure so callers can map
// the whole family to a single bad-request response.
var ErrValidation = errors.New("validation failed")

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
