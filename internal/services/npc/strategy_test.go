package npc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/TruncateGame/Truncate-sub000/internal/dependencies/mocks"
	"github.com/TruncateGame/Truncate-sub000/internal/model"
)

type StrategySuite struct {
	suite.Suite

	clock *mocks.MockClock
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategySuite))
}

func (s *StrategySuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
}

func (s *StrategySuite) newGame(boardText string, hands ...model.Hand) *model.Game {
	rules := model.DefaultRules()
	board := model.MustParseBoard(boardText)
	bag := model.NewTileBag(rules.LetterDistribution, mocks.NewMockRandom())
	game := model.NewGame(rules, board, s.clock, bag)
	game.AddPlayer("Alice")
	game.AddPlayer("Bob")
	for i, hand := range hands {
		game.Players[i].Hand = hand
	}
	game.Start()
	return game
}

func (s *StrategySuite) TestCandidatePlacementsBorderOwnTerritory() {
	game := s.newGame(`~~ |0 ~~
__ a0 __
__ __ __
~~ |1 ~~`, model.Hand{'c'}, model.Hand{'d'})

	moves := candidatePlacements(game, 0, game.Players[0].Hand)

	// Row-major order: the two flanks of the placed tile, then the
	// square below it
	s.Equal([]model.PlaceMove{
		{Player: 0, Tile: 'c', Position: model.Coordinate{X: 0, Y: 1}},
		{Player: 0, Tile: 'c', Position: model.Coordinate{X: 2, Y: 1}},
		{Player: 0, Tile: 'c', Position: model.Coordinate{X: 1, Y: 2}},
	}, moves)
}

func (s *StrategySuite) TestCandidatePlacementsNorthPlayerReversed() {
	game := s.newGame(`~~ |0 ~~
__ a0 __
__ z1 __
~~ |1 ~~`, model.Hand{'c'}, model.Hand{'d'})

	moves := candidatePlacements(game, 1, game.Players[1].Hand)

	// Bob reads the board from the south, so his scan runs backwards
	s.Equal([]model.PlaceMove{
		{Player: 1, Tile: 'd', Position: model.Coordinate{X: 2, Y: 2}},
		{Player: 1, Tile: 'd', Position: model.Coordinate{X: 0, Y: 2}},
	}, moves)
}

func (s *StrategySuite) TestCandidatePlacementsDistinctTiles() {
	game := s.newGame(`~~ |0 ~~
__ __ __
~~ |1 ~~`, model.Hand{'b', 'a', 'b'}, model.Hand{'d'})

	moves := candidatePlacements(game, 0, game.Players[0].Hand)

	// Duplicate letters collapse; distinct letters come sorted
	s.Equal([]model.PlaceMove{
		{Player: 0, Tile: 'a', Position: model.Coordinate{X: 1, Y: 1}},
		{Player: 0, Tile: 'b', Position: model.Coordinate{X: 1, Y: 1}},
	}, moves)
}

func (s *StrategySuite) TestRandomStrategyPicksQueuedCandidate() {
	game := s.newGame(`~~ |0 ~~
__ a0 __
__ __ __
~~ |1 ~~`, model.Hand{'c'}, model.Hand{'d'})

	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(2)
	strategy := NewRandomStrategy(rnd)

	move, err := strategy.ChooseMove(game)
	s.Require().NoError(err)
	s.Equal(model.PlaceMove{Player: 0, Tile: 'c', Position: model.Coordinate{X: 1, Y: 2}}, move)
}

func (s *StrategySuite) TestRandomStrategyNoLegalMove() {
	game := s.newGame(`~~ |0 ~~
~~ ~~ ~~
__ __ __
~~ |1 ~~`, model.Hand{'c'}, model.Hand{'d'})

	strategy := NewRandomStrategy(mocks.NewMockRandom())
	_, err := strategy.ChooseMove(game)
	s.ErrorIs(err, ErrNoLegalMove)
}
