package auth

import "errors"

var (
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrEmailAlreadyExists        = errors.New("email already exists")
	ErrAdminRegistrationDisabled = errors.New("admin registration is disabled")
	// ErrPasswordTooLong is bcrypt's 72-byte input limit.
	ErrPasswordTooLong = errors.New("password too long")
)
