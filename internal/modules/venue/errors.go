package venue

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrVenueNotFound  = errors.New("venue not found")
	ErrVenueNameTaken = errors.New("venue name already exists")
)
