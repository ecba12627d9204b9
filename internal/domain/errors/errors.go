package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrIndexConflict      = errors.New("index already exists with equivalent key pattern")
	ErrIndexNotFound      = errors.New("index not found")
	ErrUnknownMigration   = errors.New("unknown migration")
	ErrDuplicateMigration = errors.New("duplicate migration name")
	ErrLocked             = errors.New("migrations are locked by another runner")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSteps       = errors.New("steps must be positive")
)
