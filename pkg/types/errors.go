package types

import "errors"

// Repository operation errors.
var (
	ErrNotFound       = errors.New("entity not found")
	ErrInvalidID      = errors.New("invalid entity id")
	ErrNotInitialized = errors.New("store not initialized")
	ErrUnknownTable   = errors.New("unknown table")
)

// Account operation errors.
var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenExpired       = errors.New("verification token expired")
	ErrTokenMismatch      = errors.New("verification token does not match")
)

// Config validation errors.
var (
	ErrDataDirEmpty     = errors.New("data directory must not be empty")
	ErrSnapshotKeyEmpty = errors.New("snapshot key must not be empty")
)
