package entity

import "errors"

var (
	// Event errors
	ErrEventNotFound      = errors.New("event not found")
	ErrEventAlreadyExists = errors.New("event already exists")
	ErrMalformedRecord    = errors.New("malformed event record")

	// User errors
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyRegistered = errors.New("user already registered")

	// Source errors
	ErrSourceUnavailable = errors.New("event source unavailable")

	// General errors
	ErrInvalidInput  = errors.New("invalid input")
	ErrDatabaseError = errors.New("database error")
)
