package model

import (
	"errors"
	"time"
)

// MatchID uniquely identifies a persisted match
type MatchID string

// ErrMatchNotFound is returned by storage when no match has the ID
var ErrMatchNotFound = errors.New("match not found")

// MatchRecord is the persisted form of a match: the configuration, the
// seed that determinizes every bag draw, and the packed move log.
// Together these replay the match exactly, so nothing else about the
// game needs storing.
type MatchRecord struct {
	ID          MatchID
	PlayerNames []string
	// Seed drives the deterministic random source for bag draws
	Seed uint64
	// BoardLayout is the board's textual form at match creation
	BoardLayout string
	Rules       Rules
	// MoveLog is the packed move encoding from PackMoves
	MoveLog   string
	Winner    *int
	CreatedAt time.Time
	UpdatedAt time.Time
}
