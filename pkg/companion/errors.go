package companion

import "errors"

// Command failures. They are recoverable and leave the companion
// unchanged.
var (
	ErrInsufficientPoints = errors.New("insufficient skill points")
	ErrAlreadyUnlocked    = errors.New("skill already unlocked")
	ErrLocked             = errors.New("outfit locked")
	ErrUnknownSkill       = errors.New("unknown skill")
	ErrUnknownOutfit      = errors.New("unknown outfit")
)

// ErrNotFound is reported by FileStore.Load when no record exists yet.
var ErrNotFound = errors.New("companion record not found")
