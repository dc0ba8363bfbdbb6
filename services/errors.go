package services

import "errors"

// Common errors used by the services and the HTTP error mapping.
var (
	ErrValidationFailed = errors.New("validation failed")

	// ErrPlayerNotFound is returned when a match references an unregistered player.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrRosterInUse is returned when players are cleared while matches still reference them.
	ErrRosterInUse = errors.New("players are still referenced by matches; clear matches first")

	ErrSnapshotsDisabled = errors.New("standings snapshots are not configured")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
