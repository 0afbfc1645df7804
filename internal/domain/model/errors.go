package model

import "errors"

// Sentinel kinds for match validation. Callers use errors.Is.
var (
	ErrNoPlayers      = errors.New("match has no players")
	ErrSamePlayer     = errors.New("match pairs a player against themselves")
	ErrNegativeFactor = errors.New("match factor is negative")
	ErrNoTimestamp    = errors.New("match has no timestamp")
)
