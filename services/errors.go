package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map these to
// HTTP status codes; anything else is treated as a store failure.
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrJobNotFound           = errors.New("job not found")
	ErrApplicationNotFound   = errors.New("application not found")
	ErrJobNotOpen            = errors.New("job no longer open")
	ErrJobNotLocked          = errors.New("job has no accepted worker")
	ErrAlreadyApplied        = errors.New("already applied")
	ErrApplicationDecided    = errors.New("application already decided")
	ErrApplicationNotPending = errors.New("cannot cancel processed application")
	ErrNotificationNotFound  = errors.New("notification not found")
)
