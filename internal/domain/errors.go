package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation. Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrNotification marks a mail dispatch failure. It is never fatal to the
// operation that triggered the mail: the data is already committed when
// dispatch runs, so callers report it as a warning instead of rolling back.
var ErrNotification = errors.New("notification error")

// Date-range validation failures carry a specific reason so callers can tell
// which rule was broken. Both match errors.Is(err, ErrValidation).
var (
	// ErrStartInPast means the trip's start instant is before the current
	// instant at validation time. It is checked before ErrEndBeforeStart, so
	// a request breaking both rules reports this one.
	ErrStartInPast = fmt.Errorf("%w: trip start date is in the past", ErrValidation)

	// ErrEndBeforeStart means the trip's end instant is before its start.
	ErrEndBeforeStart = fmt.Errorf("%w: trip end date is before the start date", ErrValidation)
)
