package generator

import (
	"errors"
	"fmt"
)

// ErrNoPlayers is returned when the player list is empty after trimming
// blanks and duplicates.
var ErrNoPlayers = errors.New("generator: no players")

// ErrNoChampions is returned when the loaded dataset carries no champions
var ErrNoChampions = errors.New("generator: no champions loaded")

// UnsupportedModeError reports a mode that resolves to no known map
type UnsupportedModeError struct {
	Mode string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("generator: unsupported mode %q", e.Mode)
}

// InsufficientSpellPoolError reports that fewer than two summoner spells
// are allowed in the requested mode.
type InsufficientSpellPoolError struct {
	Mode string
	Have int
}

func (e *InsufficientSpellPoolError) Error() string {
	return fmt.Sprintf("generator: only %d spells available for mode %s, need 2", e.Have, e.Mode)
}

// InsufficientItemPoolError reports that the constrained item draw could
// not reach the required count.
type InsufficientItemPoolError struct {
	MapID int
	Need  int
	Got   int
}

func (e *InsufficientItemPoolError) Error() string {
	return fmt.Sprintf("generator: item pool for map %d too small: need %d, got %d", e.MapID, e.Need, e.Got)
}

// InsufficientRuneDataError reports that fewer than two rune trees are loaded
type InsufficientRuneDataError struct {
	Have int
}

func (e *InsufficientRuneDataError) Error() string {
	return fmt.Sprintf("generator: need at least 2 rune trees, have %d", e.Have)
}
