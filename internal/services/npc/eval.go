package npc

import (
	"strings"

	"github.com/TruncateGame/Truncate-sub000/internal/model"
	"github.com/TruncateGame/Truncate-sub000/internal/services/judge"
)

// Static evaluation weights. The individual terms are each normalized
// to roughly [0, 1] before weighting so the weights read as relative
// importance.
const (
	weightWordQuality = 1.2
	weightFrontline   = 0.8
	weightProgress    = 0.6
	weightDefense     = 1.5

	// turnDecay nudges the searcher toward positions reached sooner
	turnDecay = 0.001

	// winScore dominates every positional term; subtracting the turn
	// count makes a faster win outrank a slower one, and the mirrored
	// loss term makes a slower loss outrank a faster one
	winScore = 1000.0

	// extensionsCeiling caps the dictionary extensibility metadata so a
	// single hyper-extensible word cannot dominate the word term
	extensionsCeiling = 300
)

// evaluate scores a position from the searcher's perspective. Wins and
// losses short-circuit every positional consideration.
func evaluate(game *model.Game, j *judge.Service, dict model.Lookup, searcher int) float64 {
	if game.Winner != nil {
		if *game.Winner == searcher {
			return winScore - float64(game.TurnCount)
		}
		return -winScore + float64(game.TurnCount)
	}

	opponent := (searcher + 1) % len(game.Players)

	score := weightWordQuality * wordQuality(game, j, dict, searcher)
	score += weightFrontline * (frontline(game, searcher) - frontline(game, opponent))
	score += weightProgress * (progress(game, searcher) - progress(game, opponent))
	score += weightDefense * defense(game, searcher, opponent)
	score -= turnDecay * float64(game.TurnCount)
	return score
}

// wordQuality blends the player's word lengths, validity fraction and
// dictionary extensibility into one term
func wordQuality(game *model.Game, j *judge.Service, dict model.Lookup, player int) float64 {
	words := playerWords(game.Board, player)
	if len(words) == 0 {
		return 0
	}

	var lengthBonus, validFraction, extensibility float64
	for _, word := range words {
		n := float64(len(word))
		lengthBonus += min(n, 5) / 5

		s, err := game.Board.WordString(word)
		if err != nil {
			continue
		}
		resolved, ok := j.ValidWord(s, dict)
		if !ok {
			continue
		}
		validFraction++
		if data, found := dict.Lookup(strings.ToLower(resolved)); found {
			extensibility += min(float64(data.Extensions), extensionsCeiling) / extensionsCeiling
		}
	}

	count := float64(len(words))
	return (lengthBonus/count + validFraction/count + extensibility/count) / 3
}

// playerWords collects the distinct multi-letter words a player has on
// the board
func playerWords(board *model.Board, player int) [][]model.Coordinate {
	seen := make(map[string]bool)
	var words [][]model.Coordinate
	for y, row := range board.Squares {
		for x, sq := range row {
			if sq.Kind != model.KindOccupied || sq.Player != player {
				continue
			}
			for _, word := range board.GetWords(model.Coordinate{X: x, Y: y}) {
				if len(word) < 2 {
					continue
				}
				key := wordCoordKey(word)
				if !seen[key] {
					seen[key] = true
					words = append(words, word)
				}
			}
		}
	}
	return words
}

func wordCoordKey(word []model.Coordinate) string {
	first, last := word[0], word[len(word)-1]
	return string(rune(first.X)) + string(rune(first.Y)) + string(rune(last.X)) + string(rune(last.Y))
}

// frontline is how far down the board the player's most advanced tile
// sits, normalized to [0, 1] in the player's reading direction
func frontline(game *model.Game, player int) float64 {
	board := game.Board
	h := board.Height()
	if h <= 1 {
		return 0
	}

	southward := player >= len(board.Orientations) || board.Orientations[player] == model.South
	best := -1
	for y, row := range board.Squares {
		for _, sq := range row {
			if sq.Kind != model.KindOccupied || sq.Player != player {
				continue
			}
			advance := y
			if !southward {
				advance = h - 1 - y
			}
			if advance > best {
				best = advance
			}
		}
	}
	if best < 0 {
		return 0
	}
	return float64(best) / float64(h-1)
}

// progress sums row-weighted tile counts: every tile contributes its
// normalized advance toward the enemy
func progress(game *model.Game, player int) float64 {
	board := game.Board
	h := board.Height()
	if h <= 1 {
		return 0
	}

	southward := player >= len(board.Orientations) || board.Orientations[player] == model.South
	total := 0.0
	for y, row := range board.Squares {
		for _, sq := range row {
			if sq.Kind != model.KindOccupied || sq.Player != player {
				continue
			}
			advance := y
			if !southward {
				advance = h - 1 - y
			}
			total += float64(advance) / float64(h-1)
		}
	}
	// A tenth per fully advanced tile keeps this comparable to the
	// other unit-scaled terms
	return total / 10
}

// defense measures how far the opponent's attack flood is from the
// player's nearest town, normalized so 1 is safe and 0 is under siege
func defense(game *model.Game, player, opponent int) float64 {
	board := game.Board
	var towns []model.Coordinate
	for _, c := range board.Towns {
		sq, err := board.Get(c)
		if err != nil {
			continue
		}
		if sq.Kind == model.KindTown && sq.Player == player && !sq.Defeated {
			towns = append(towns, c)
		}
	}
	if len(towns) == 0 {
		return 0
	}

	distances := board.FloodFillAttacks(opponent)
	horizon := float64(board.Width() + board.Height())
	nearest := horizon
	for _, town := range towns {
		d, ok := nearestApproach(board, distances, town)
		if !ok {
			continue
		}
		if fd := float64(d); fd < nearest {
			nearest = fd
		}
	}
	return min(nearest, horizon) / horizon
}

// nearestApproach finds the smallest attack distance on or orthogonally
// around a town: the attack flood halts next to defended squares, so
// the town itself may be unreached while its doorstep is.
func nearestApproach(board *model.Board, distances *model.BoardDistances, town model.Coordinate) (int, bool) {
	best := -1
	consider := func(c model.Coordinate) {
		if !board.Contains(c) {
			return
		}
		if d, ok := distances.Attackable(c); ok && (best < 0 || d < best) {
			best = d
		}
	}
	consider(town)
	for _, n := range town.Neighbors4() {
		consider(n)
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}
