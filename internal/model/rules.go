package model

import "time"

// WinConditionKind selects how a game is won
type WinConditionKind int

const (
	// WinDestination: a player wins when every one of an opponent's towns
	// has been defeated
	WinDestination WinConditionKind = iota
	// WinElimination: a player wins when an opponent who has placed tiles
	// no longer has any tile on the board
	WinElimination
)

// WinCondition holds the win rule plus its parameters
type WinCondition struct {
	Kind WinConditionKind
	// TownDefense is the extra length an attacking word needs before it
	// can defeat a town. Only meaningful for WinDestination.
	TownDefense int
}

// SwapRuleKind selects which tile swaps are legal
type SwapRuleKind int

const (
	// SwapNone forbids swap moves entirely
	SwapNone SwapRuleKind = iota
	// SwapContiguous allows swapping only tiles connected to each other
	// through the player's own tiles
	SwapContiguous
	// SwapUniversal allows swapping any two of the player's tiles
	SwapUniversal
)

// SwapRule holds the swap rule plus its optional per-game limit
type SwapRule struct {
	Kind SwapRuleKind
	// Limit caps the number of swap moves a player may make in one game.
	// Zero means unlimited.
	Limit int
}

// Allows reports whether another swap is legal for a player who has
// already made swapsTaken swaps this game.
func (r SwapRule) Allows(swapsTaken int) error {
	if r.Kind == SwapNone {
		return ErrNoSwapping
	}
	if r.Limit > 0 && swapsTaken >= r.Limit {
		return ErrTooManySwaps
	}
	return nil
}

// TruncationRule selects whether disconnected tiles are removed
type TruncationRule int

const (
	// TruncateRoot removes tiles no longer connected to any of the
	// player's docks after each turn
	TruncateRoot TruncationRule = iota
	// TruncateNone leaves disconnected tiles in place
	TruncateNone
)

// Visibility selects how much of the board a player can see
type Visibility int

const (
	// VisibilityStandard shows the whole board to everyone
	VisibilityStandard Visibility = iota
	// VisibilityTileFog hides unseen opposing tiles, showing their squares
	// as plain land
	VisibilityTileFog
	// VisibilityLandFog hides unseen squares entirely
	VisibilityLandFog
)

// BattleRules parameterize word combat
type BattleRules struct {
	// LengthDelta is the defensive length bonus: a valid defending word
	// survives unless the longest attacking word is more than LengthDelta
	// letters longer than it.
	LengthDelta int
}

// Rules is the full game configuration
type Rules struct {
	// LetterDistribution holds the draw weight for each letter a-z
	LetterDistribution [26]int
	HandSize           int
	// AllottedTime is each player's total clock. Zero disables timing
	// penalties.
	AllottedTime time.Duration
	Battle       BattleRules
	WinCondition WinCondition
	Swapping     SwapRule
	Truncation   TruncationRule
	Visibility   Visibility
}

// DefaultRules returns the standard two-player configuration
func DefaultRules() Rules {
	return Rules{
		LetterDistribution: DefaultLetterDistribution(),
		HandSize:           7,
		AllottedTime:       25 * time.Minute,
		Battle:             BattleRules{LengthDelta: 2},
		WinCondition:       WinCondition{Kind: WinDestination, TownDefense: 0},
		Swapping:           SwapRule{Kind: SwapContiguous},
		Truncation:         TruncateRoot,
		Visibility:         VisibilityStandard,
	}
}

// DefaultLetterDistribution returns the standard english letter weighting
func DefaultLetterDistribution() [26]int {
	return [26]int{
		// a  b  c  d  e   f  g  h  i  j  k  l  m
		9, 2, 2, 4, 12, 2, 3, 2, 9, 1, 1, 4, 2,
		// n  o  p  q  r  s  t  u  v  w  x  y  z
		6, 8, 2, 1, 6, 4, 6, 4, 2, 2, 1, 2, 1,
	}
}
