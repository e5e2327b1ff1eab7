package model

import "time"

// BoardChangeAction describes what happened to a single square
type BoardChangeAction int

const (
	// ActionAdded: a tile was placed on the square
	ActionAdded BoardChangeAction = iota
	// ActionSwapped: the square's tile arrived via a swap move
	ActionSwapped
	// ActionDefeated: the square's tile or town lost a battle
	ActionDefeated
	// ActionTruncated: the tile was removed for losing dock connectivity
	ActionTruncated
	// ActionExploded: the tile was destroyed by an adjacent explosive
	ActionExploded
	// ActionVictorious: the square participated in a winning attack
	ActionVictorious
)

var boardChangeActionNames = map[BoardChangeAction]string{
	ActionAdded:      "added",
	ActionSwapped:    "swapped",
	ActionDefeated:   "defeated",
	ActionTruncated:  "truncated",
	ActionExploded:   "exploded",
	ActionVictorious: "victorious",
}

func (a BoardChangeAction) String() string {
	if name, ok := boardChangeActionNames[a]; ok {
		return name
	}
	return "unknown"
}

// BoardChange records one square mutation. Square holds the state of the
// square as it was when the change happened, so consumers can animate
// removals without re-deriving what was removed.
type BoardChange struct {
	Square     Square
	Coordinate Coordinate
	Action     BoardChangeAction
}

// HandChange records tiles leaving and entering a player's hand in one turn
type HandChange struct {
	Player  int
	Removed []rune
	Added   []rune
}

// TimeChange records a clock penalty applied at the end of a turn
type TimeChange struct {
	Player    int
	Penalties int // newly incurred whole-minute penalty units
	Remaining time.Duration
}

// BattleOutcome is the resolution of one word battle
type BattleOutcome int

const (
	OutcomeDefenderWins BattleOutcome = iota
	OutcomeAttackerWins
)

func (o BattleOutcome) String() string {
	if o == OutcomeAttackerWins {
		return "attacker wins"
	}
	return "defender wins"
}

// BattleWord is one combatant word as it was judged
type BattleWord struct {
	// Original is the word as read off the board, possibly containing
	// wildcard, alias or town characters
	Original string
	// Resolved is the canonical dictionary form, empty when invalid
	Resolved string
	Valid    bool
}

// BattleReport describes a single battle: every word on each side and
// the outcome. Losers indexes into Defenders when the attacker wins.
type BattleReport struct {
	Attackers []BattleWord
	Defenders []BattleWord
	Outcome   BattleOutcome
	Losers    []int
}

// Change is one element of the per-turn event list. Exactly one of the
// pointer fields is set.
type Change struct {
	Board  *BoardChange
	Hand   *HandChange
	Battle *BattleReport
	Time   *TimeChange
}

// BoardChanged wraps a board mutation as a Change
func BoardChanged(sq Square, c Coordinate, action BoardChangeAction) Change {
	return Change{Board: &BoardChange{Square: sq, Coordinate: c, Action: action}}
}

// HandChanged wraps a hand delta as a Change
func HandChanged(player int, removed, added []rune) Change {
	return Change{Hand: &HandChange{Player: player, Removed: removed, Added: added}}
}

// BattleFought wraps a battle report as a Change
func BattleFought(report BattleReport) Change {
	return Change{Battle: &report}
}

// TimePenalized wraps a clock penalty as a Change
func TimePenalized(player, penalties int, remaining time.Duration) Change {
	return Change{Time: &TimeChange{Player: player, Penalties: penalties, Remaining: remaining}}
}
