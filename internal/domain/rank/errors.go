package rank

import "errors"

// Sentinel kinds for grade parsing.
var (
	ErrBadGrade = errors.New("unrecognized grade")
)
