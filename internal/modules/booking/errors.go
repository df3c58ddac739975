package booking

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrVenueNotFound   = errors.New("venue not found")
	ErrDateUnavailable = errors.New("venue is not available on this date")
	ErrBookingConflict = errors.New("booking already exists for this venue and date")
)
