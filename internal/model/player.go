package model

import (
	"sort"
	"time"
)

// Hand is a player's ordered sequence of tiles. Order matters for
// display but carries no rule meaning beyond membership.
type Hand []rune

// Has reports whether the hand contains the given tile
func (h Hand) Has(tile rune) bool {
	for _, t := range h {
		if t == tile {
			return true
		}
	}
	return false
}

// Remove takes one instance of the tile out of the hand, reporting
// whether it was present
func (h *Hand) Remove(tile rune) bool {
	for i, t := range *h {
		if t == tile {
			*h = append((*h)[:i], (*h)[i+1:]...)
			return true
		}
	}
	return false
}

// Add appends a tile to the hand
func (h *Hand) Add(tile rune) {
	*h = append(*h, tile)
}

// Distinct returns each unique tile in the hand, sorted
func (h Hand) Distinct() []rune {
	seen := make(map[rune]bool, len(h))
	var out []rune
	for _, t := range h {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns an independent copy of the hand
func (h Hand) Clone() Hand {
	out := make(Hand, len(h))
	copy(out, h)
	return out
}

func (h Hand) String() string {
	return string([]rune(h))
}

// Player is one participant's per-game bookkeeping: hand, clock and
// penalty state. The player's index into Game.Players is its identity
// everywhere else in the engine.
type Player struct {
	Name         string
	Index        int
	Hand         Hand
	HandCapacity int

	// Clock state. TurnStartsAt is nil outside the player's turn.
	AllottedTime  time.Duration
	TimeRemaining time.Duration
	TurnStartsAt  *time.Time

	PenaltiesIncurred int
	SwapCount         int
	// HasPlaced records that the player has ever had a tile on the
	// board, which is what makes losing every tile an elimination
	HasPlaced bool

	// SeenTiles accumulates every coordinate this player has ever had
	// visibility into, for the fog-of-war modes
	SeenTiles map[Coordinate]bool
}

// NewPlayer creates a player with a fresh hand drawn from the bag
func NewPlayer(name string, index int, bag *TileBag, handCapacity int, allotted time.Duration) *Player {
	hand := make(Hand, 0, handCapacity)
	for range handCapacity {
		hand.Add(bag.DrawTile())
	}
	return &Player{
		Name:          name,
		Index:         index,
		Hand:          hand,
		HandCapacity:  handCapacity,
		AllottedTime:  allotted,
		TimeRemaining: allotted,
		SeenTiles:     make(map[Coordinate]bool),
	}
}

// StartTurn arms the player's clock at the given instant
func (p *Player) StartTurn(now time.Time) {
	t := now
	p.TurnStartsAt = &t
}

// EndTurn stops the clock and deducts the elapsed turn duration,
// returning how long the turn took
func (p *Player) EndTurn(now time.Time) time.Duration {
	if p.TurnStartsAt == nil {
		return 0
	}
	elapsed := now.Sub(*p.TurnStartsAt)
	p.TimeRemaining -= elapsed
	p.TurnStartsAt = nil
	return elapsed
}

// RefillHand draws from the bag until the hand is back at capacity
func (p *Player) RefillHand(bag *TileBag) []rune {
	var drawn []rune
	for len(p.Hand) < p.HandCapacity {
		tile := bag.DrawTile()
		p.Hand.Add(tile)
		drawn = append(drawn, tile)
	}
	return drawn
}

// Clone returns a deep copy of the player for search simulation
func (p *Player) Clone() *Player {
	clone := *p
	clone.Hand = p.Hand.Clone()
	if p.TurnStartsAt != nil {
		t := *p.TurnStartsAt
		clone.TurnStartsAt = &t
	}
	clone.SeenTiles = make(map[Coordinate]bool, len(p.SeenTiles))
	for c := range p.SeenTiles {
		clone.SeenTiles[c] = true
	}
	return &clone
}
