package npc

import "github.com/TruncateGame/Truncate-sub000/internal/model"

// Strategy defines how a non-human player chooses its move
type Strategy interface {
	// ChooseMove picks a move for the game's next player. The game is
	// not mutated.
	ChooseMove(game *model.Game) (model.Move, error)
}

// candidatePlacements enumerates every legal (coordinate, tile)
// placement for the player: land squares bordering the player's
// territory, crossed with the distinct letters in their hand. Duplicate
// letters collapse to one candidate since playing either copy is the
// same move.
//
// Candidates come back in deterministic order (row-major, walking in
// the player's reading direction) so identical positions always
// explore identically and the chosen move is reproducible.
func candidatePlacements(game *model.Game, player int, hand model.Hand) []model.PlaceMove {
	board := game.Board
	var coords []model.Coordinate
	for y, row := range board.Squares {
		for x, sq := range row {
			if sq.Kind != model.KindLand {
				continue
			}
			c := model.Coordinate{X: x, Y: y}
			bordersOwn := false
			for _, n := range c.Neighbors4() {
				nsq, err := board.Get(n)
				if err != nil {
					continue
				}
				if (nsq.Kind == model.KindOccupied || nsq.Kind == model.KindDock) && nsq.Player == player {
					bordersOwn = true
					break
				}
			}
			if bordersOwn {
				coords = append(coords, c)
			}
		}
	}

	// Row-major scan already yields ascending order; players reading
	// northward walk the board from their own end instead
	if player < len(board.Orientations) && board.Orientations[player] == model.North {
		for i, j := 0, len(coords)-1; i < j; i, j = i+1, j-1 {
			coords[i], coords[j] = coords[j], coords[i]
		}
	}

	tiles := hand.Distinct()
	moves := make([]model.PlaceMove, 0, len(coords)*len(tiles))
	for _, c := range coords {
		for _, tile := range tiles {
			moves = append(moves, model.PlaceMove{Player: player, Tile: tile, Position: c})
		}
	}
	return moves
}
