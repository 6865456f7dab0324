package game

import "errors"

// Error families surfaced to the HTTP layer. Callers classify failures
// with errors.Is; specific messages are wrapped around these sentinels.
var (
	// ErrNotFound: no active room matches the given code, or a referenced
	// player is not in the roster.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState: the action is not permitted in the room's current
	// phase (e.g. joining a started game, starting with too few players).
	ErrInvalidState = errors.New("invalid state")

	// ErrValidation: malformed input (bad code length, unknown mode,
	// empty name).
	ErrValidation = errors.New("validation failed")

	// ErrDataIntegrity: an internal invariant was violated (empty word
	// bank, code space exhausted). Indicates a defect, not user error.
	ErrDataIntegrity = errors.New("data integrity violation")
)
