package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUserAlreadyExists is returned when registering a username that is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown username and wrong password;
	// callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates a missing, malformed, tampered or expired token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnauthorized indicates a valid identity without rights on the resource.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports invalid or missing request input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
