package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")

	// ErrGoogleIDExists means another account is already linked to the Google subject.
	ErrGoogleIDExists = errors.New("google account already linked")
)
