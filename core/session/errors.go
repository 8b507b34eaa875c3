package session

import "errors"

var (
	// ErrNotFound is returned by stores for any absent record. It subsumes
	// "never existed" and "expired"; the distinction is never exposed.
	ErrNotFound = errors.New("session not found")
	// ErrTokenGeneration is returned when drawing random token material fails.
	ErrTokenGeneration = errors.New("failed to generate token")
	// ErrSaveSession is returned when persisting a session fails. The token
	// is never returned to the caller in that case.
	ErrSaveSession = errors.New("failed to save session")
	// ErrDeleteSession is returned when removing a session from a store fails.
	ErrDeleteSession = errors.New("failed to delete session")
	// ErrUserLookup is returned when the user profile read at creation fails.
	ErrUserLookup = errors.New("failed to load user for session")
	// ErrNotInFuture is returned when a record's expiry is not in the future.
	ErrNotInFuture = errors.New("session expiry must be in the future")
)
