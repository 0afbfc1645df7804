package rating

import "errors"

// Sentinel kinds for engine errors.
var (
	// ErrUnrated signals that a player has no public rating: either
	// never seen by the run or still in the grace period.
	ErrUnrated = errors.New("player is unrated")

	// ErrFinalized signals a mutation after Finalize, or a second
	// Finalize.
	ErrFinalized = errors.New("run already finalized")
)
