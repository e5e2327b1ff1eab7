package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/TruncateGame/Truncate-sub000/internal/model"
)

const integrationBoard = `~~ ~~ |0 ~~ ~~
__ __ __ __ __
__ __ __ __ __
__ __ __ __ __
~~ ~~ |1 ~~ ~~`

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.Require().NoError(s.app.LoadTestDictionary())
}

// Test: a match played through the full stack, storage included
func (s *IntegrationSuite) TestMatchFlow() {
	s.app.MockRandom.QueueString("MATCHABCDEF1")

	record, _, err := s.app.MatchController.CreateMatch(s.ctx, []string{"Alice", "Bob"}, integrationBoard, model.DefaultRules())
	s.Require().NoError(err)

	// Alternate placements expanding each side's own territory. The
	// squares are chosen so neither placement ever borders the enemy,
	// keeping the flow independent of which letters the bag dealt.
	positions := []model.Coordinate{
		{X: 2, Y: 1}, // Alice, beside her dock
		{X: 2, Y: 3}, // Bob, beside his dock
		{X: 1, Y: 1}, // Alice, beside her first tile
		{X: 3, Y: 3}, // Bob, beside his first tile
	}

	for i, pos := range positions {
		_, game, err := s.app.MatchController.ResumeMatch(s.ctx, record.ID)
		s.Require().NoError(err)

		mover := game.NextPlayer
		s.Equal(i%2, mover)

		played, winner, err := s.app.MatchController.PlayTurn(s.ctx, record.ID, model.PlaceMove{
			Player:   mover,
			Tile:     game.Players[mover].Hand[0],
			Position: pos,
		})
		s.Require().NoError(err)
		s.Nil(winner)
		s.Equal(i+1, played.TurnCount)
	}

	// The stored log replays to the same position
	stored, err := s.app.MatchController.GetMatch(s.ctx, record.ID)
	s.Require().NoError(err)
	moves, err := model.UnpackMoves(stored.MoveLog, 2)
	s.Require().NoError(err)
	s.Len(moves, 4)

	_, final, err := s.app.MatchController.ResumeMatch(s.ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(4, final.TurnCount)
	s.Equal(0, final.NextPlayer)
	for i, pos := range positions {
		square, err := final.Board.Get(pos)
		s.Require().NoError(err)
		s.Equal(model.KindOccupied, square.Kind)
		s.Equal(i%2, square.Player)
	}

	// Hands stayed full after refills
	s.Len(final.Players[0].Hand, final.Rules.HandSize)
	s.Len(final.Players[1].Hand, final.Rules.HandSize)
}

// Test: the NPC strategies run over a stored match
func (s *IntegrationSuite) TestNpcPlaysStoredMatch() {
	s.app.MockRandom.QueueString("MATCHABCDEF2")

	record, _, err := s.app.MatchController.CreateMatch(s.ctx, []string{"Alice", "Bob"}, integrationBoard, model.DefaultRules())
	s.Require().NoError(err)

	game, move, winner, err := s.app.MatchController.PlayNpcTurn(s.ctx, record.ID, s.app.RandomStrategy())
	s.Require().NoError(err)
	s.Nil(winner)
	s.Equal(0, move.MovePlayer())
	s.Equal(1, game.NextPlayer)

	game, move, winner, err = s.app.MatchController.PlayNpcTurn(s.ctx, record.ID, s.app.MinimaxStrategy())
	s.Require().NoError(err)
	s.Nil(winner)
	s.Equal(1, move.MovePlayer())
	s.Equal(0, game.NextPlayer)
	s.Equal(2, game.TurnCount)
}
