package components

import (
	"fmt"
	"strings"
)

// String returns the display name for a horizontal facing.
func (h Horizontal) String() string {
	if h == Left {
		return "left"
	}
	return "right"
}

// String returns the display name for a vertical facing.
func (v Vertical) String() string {
	if v == Up {
		return "up"
	}
	return "down"
}

// String returns the display name for a death cause.
func (c DeathCause) String() string {
	switch c {
	case CauseOldAge:
		return "old_age"
	case CauseStarvation:
		return "starvation"
	default:
		return "none"
	}
}

// ParseHorizontal accepts "left"/"right" (or "l"/"r"). Empty input means right.
func ParseHorizontal(s string) (Horizontal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "right", "r":
		return Right, nil
	case "left", "l":
		return Left, nil
	}
	return Right, fmt.Errorf("unknown horizontal direction %q", s)
}

// ParseVertical accepts "up"/"down" (or "u"/"d"). Empty input means down.
func ParseVertical(s string) (Vertical, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "down", "d":
		return Down, nil
	case "up", "u":
		return Up, nil
	}
	return Down, fmt.Errorf("unknown vertical direction %q", s)
}
