// Package rank models the kyu/dan grade ladder and its mapping to
// numeric ratings used for grace-period seeding and protected floors.
package rank

import (
	"fmt"
	"strconv"
	"strings"
)

// Ladder bounds and rating anchors.
const (
	MaxKyu = 30 // weakest grade on the ladder
	MaxDan = 9

	// anchorShodan is the rating anchor of 1 dan; each dan adds 100
	// and each kyu subtracts 100 from it.
	anchorShodan = 2100

	// minAnchor clamps deep-kyu anchors so a grade never maps below it.
	minAnchor = 100
)

// Grade is a position on the kyu/dan ladder. Higher values are stronger.
// The zero value is Unknown: an unrated or foreign player whose grade
// has not been certified by any organization.
type Grade int

// Unknown is the grade of a player without a certified rank.
const Unknown Grade = 0

// Kyu returns the grade for an n-kyu player (n in 1..MaxKyu).
func Kyu(n int) Grade {
	return Grade(MaxKyu - n + 1)
}

// Dan returns the grade for an n-dan player (n in 1..MaxDan).
func Dan(n int) Grade {
	return Grade(MaxKyu + n)
}

// IsUnknown reports whether the grade is unset.
func (g Grade) IsUnknown() bool { return g <= Unknown }

// IsDan reports whether the grade is a dan grade.
func (g Grade) IsDan() bool { return g > Grade(MaxKyu) }

// Rating returns the numeric rating anchor for the grade.
// Unknown grades have no anchor and return 0.
func (g Grade) Rating() float64 {
	if g.IsUnknown() {
		return 0
	}
	r := anchorShodan + 100*(int(g)-MaxKyu-1)
	if r < minAnchor {
		r = minAnchor
	}
	return float64(r)
}

// Floor returns the protected-rating floor for the grade: the anchor
// minus the protection band. Unknown grades have no floor.
func (g Grade) Floor(band float64) float64 {
	if g.IsUnknown() {
		return 0
	}
	f := g.Rating() - band
	if f < minAnchor {
		f = minAnchor
	}
	return f
}

// String renders the grade in short form ("5k", "2d", "?").
func (g Grade) String() string {
	switch {
	case g.IsUnknown():
		return "?"
	case g.IsDan():
		return strconv.Itoa(int(g)-MaxKyu) + "d"
	default:
		return strconv.Itoa(MaxKyu-int(g)+1) + "k"
	}
}

// Parse reads a grade from its textual form. Accepted inputs are
// "5k", "5 kyu", "2d", "2 dan" (case-insensitive) and "?" for Unknown.
func Parse(s string) (Grade, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "" || t == "?" {
		return Unknown, nil
	}

	var dan bool
	switch {
	case strings.HasSuffix(t, "dan"):
		dan = true
		t = strings.TrimSuffix(t, "dan")
	case strings.HasSuffix(t, "d"):
		dan = true
		t = strings.TrimSuffix(t, "d")
	case strings.HasSuffix(t, "kyu"):
		t = strings.TrimSuffix(t, "kyu")
	case strings.HasSuffix(t, "k"):
		t = strings.TrimSuffix(t, "k")
	default:
		return Unknown, fmt.Errorf("%w: %q", ErrBadGrade, s)
	}

	n, err := strconv.Atoi(strings.TrimSpace(t))
	if err != nil {
		return Unknown, fmt.Errorf("%w: %q", ErrBadGrade, s)
	}
	if dan {
		if n < 1 || n > MaxDan {
			return Unknown, fmt.Errorf("%w: %q", ErrBadGrade, s)
		}
		return Dan(n), nil
	}
	if n < 1 || n > MaxKyu {
		return Unknown, fmt.Errorf("%w: %q", ErrBadGrade, s)
	}
	return Kyu(n), nil
}
