package service

import "errors"

// Error kinds surfaced to callers. Services wrap these with context via
// fmt.Errorf("...: %w", ...); the HTTP layer maps them with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrInvalidArgument = errors.New("invalid argument")
)
