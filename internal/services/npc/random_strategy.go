package npc

import (
	"errors"

	"github.com/TruncateGame/Truncate-sub000/internal/dependencies/random"
	"github.com/TruncateGame/Truncate-sub000/internal/model"
)

// ErrNoLegalMove is returned when a strategy finds nothing playable
var ErrNoLegalMove = errors.New("no legal move available")

// RandomStrategy plays a uniformly random legal placement. It exists
// as a baseline opponent and as the fuzz driver in tests.
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseMove picks a random legal placement for the next player
func (s *RandomStrategy) ChooseMove(game *model.Game) (model.Move, error) {
	player := game.NextPlayer
	candidates := candidatePlacements(game, player, game.Players[player].Hand)
	if len(candidates) == 0 {
		return nil, ErrNoLegalMove
	}
	return candidates[s.random.Intn(len(candidates))], nil
}
