package user

import "errors"

var (
	// ErrNotFound is returned when no user row exists for the given id.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when the login procedure rejects the
	// username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountLocked is returned when the login procedure reports a locked account.
	ErrAccountLocked = errors.New("account is locked")
	// ErrWeakPassword is returned when the registration procedure rejects the password.
	ErrWeakPassword = errors.New("password does not meet requirements")
	// ErrDuplicateAccount is returned when the username is already taken.
	ErrDuplicateAccount = errors.New("account already exists")
)

// Custom SQLSTATE codes raised by the auth stored procedures.
const (
	codeInvalidCredentials = "AU001"
	codeAccountLocked      = "AU002"
	codeWeakPassword       = "AU003"
)
