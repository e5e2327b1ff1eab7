package npc

import (
	"log/slog"
	"math"
	"time"

	"github.com/TruncateGame/Truncate-sub000/internal/model"
	"github.com/TruncateGame/Truncate-sub000/internal/services/judge"
)

// AliasRune is the pseudo-tile the search substitutes for its own hand
// at the deepest ply: it stands for any one of the remaining distinct
// letters, resolved through the judge's alias mechanism.
const AliasRune = '&'

// Config tunes the minimax search
type Config struct {
	// Depth is the number of plies searched
	Depth int
	// Budget caps how many candidate moves are examined per ply.
	// Zero means unlimited.
	Budget int
	// Pruning disables alpha-beta cutoffs when false; only tests that
	// verify pruning changes nothing should turn it off
	Pruning bool
}

// DefaultConfig returns the standard search settings
func DefaultConfig() Config {
	return Config{Depth: 3, Budget: 0, Pruning: true}
}

// MinimaxStrategy chooses moves by minimax search with alpha-beta
// pruning over full game clones. Every simulated move goes through the
// same PlayTurn path as a real move, so the search can only ever
// explore legal continuations.
type MinimaxStrategy struct {
	judge  *judge.Service
	dict   model.Lookup
	config Config
	logger *slog.Logger
}

// Ensure MinimaxStrategy implements Strategy
var _ Strategy = (*MinimaxStrategy)(nil)

// NewMinimaxStrategy creates a minimax strategy judging with the given
// dictionary
func NewMinimaxStrategy(j *judge.Service, dict model.Lookup, config Config, logger *slog.Logger) *MinimaxStrategy {
	if config.Depth <= 0 {
		config.Depth = DefaultConfig().Depth
	}
	return &MinimaxStrategy{judge: j, dict: dict, config: config, logger: logger}
}

// ChooseMove searches for the best placement for the game's next
// player. The real game is never mutated; the search runs over clones.
func (s *MinimaxStrategy) ChooseMove(game *model.Game) (model.Move, error) {
	player := game.NextPlayer
	start := time.Now()

	prepared, searchJudge := s.prepare(game, player)
	score, move := s.search(prepared, searchJudge, player, s.config.Depth, math.Inf(-1), math.Inf(1))
	if move == nil {
		return nil, ErrNoLegalMove
	}

	s.logger.Debug("minimax move chosen",
		slog.Int("player", player),
		slog.Int("depth", s.config.Depth),
		slog.Float64("score", score),
		slog.String("move", model.MoveLog([]model.Move{move})),
		slog.Duration("took", time.Since(start)),
	)
	return move, nil
}

// prepare clones the game and abstracts the hands: the opponents hold a
// single wildcard (the search assumes they can always play the perfect
// letter), and the searcher's own deepest-ply hand will collapse to the
// alias tile registered here. Both are deliberate accuracy-for-speed
// trades that bound the branching factor.
func (s *MinimaxStrategy) prepare(game *model.Game, player int) (*model.Game, *judge.Service) {
	prepared := game.Clone()
	for _, p := range prepared.Players {
		if p.Index != player {
			p.Hand = model.Hand{model.WildcardRune}
			p.HandCapacity = 1
		}
	}
	aliasLetters := prepared.Players[player].Hand.Distinct()
	searchJudge := s.judge.WithAliases(map[rune][]rune{AliasRune: aliasLetters})
	return prepared, searchJudge
}

// search is the recursive minimax. It maximizes on the searcher's plies
// and minimizes on the opponents', and when pruning is on it cuts off
// once alpha meets beta. A pruning and a non-pruning search must agree
// on the chosen move for the same position.
func (s *MinimaxStrategy) search(game *model.Game, searchJudge *judge.Service, searcher, depth int, alpha, beta float64) (float64, model.Move) {
	if game.Winner != nil || depth == 0 {
		return evaluate(game, searchJudge, s.dict, searcher), nil
	}

	mover := game.NextPlayer
	maximizing := mover == searcher

	hand := game.Players[mover].Hand
	if maximizing && depth == 1 {
		// Deepest own ply: one alias tile stands in for the whole hand
		hand = model.Hand{AliasRune}
	}
	candidates := candidatePlacements(game, mover, hand)
	if s.config.Budget > 0 && len(candidates) > s.config.Budget {
		candidates = candidates[:s.config.Budget]
	}
	if len(candidates) == 0 {
		return evaluate(game, searchJudge, s.dict, searcher), nil
	}

	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	var bestMove model.Move

	for _, candidate := range candidates {
		branch, err := s.simulate(game, searchJudge, searcher, candidate, hand)
		if err != nil {
			continue
		}
		score, _ := s.search(branch, searchJudge, searcher, depth-1, alpha, beta)

		if maximizing {
			if score > best {
				best, bestMove = score, candidate
			}
			alpha = math.Max(alpha, best)
		} else {
			if score < best {
				best, bestMove = score, candidate
			}
			beta = math.Min(beta, best)
		}
		if s.config.Pruning && alpha >= beta {
			break
		}
	}

	if bestMove == nil {
		// Every candidate failed simulation; score the position as-is
		return evaluate(game, searchJudge, s.dict, searcher), nil
	}
	return best, bestMove
}

// simulate plays candidate on a clone with the mover holding hand. An
// opponent's hand is restored to the single wildcard afterwards, since
// the refill inside PlayTurn draws a concrete bag tile into their
// capacity-1 hand and deeper opponent plies must keep the abstraction
// from prepare.
func (s *MinimaxStrategy) simulate(game *model.Game, searchJudge *judge.Service, searcher int, candidate model.Move, hand model.Hand) (*model.Game, error) {
	mover := game.NextPlayer
	branch := game.Clone()
	branch.Players[mover].Hand = hand
	if _, err := branch.PlayTurn(candidate, searchJudge, s.dict, s.dict); err != nil {
		return nil, err
	}
	if mover != searcher {
		branch.Players[mover].Hand = model.Hand{model.WildcardRune}
	}
	return branch, nil
}
