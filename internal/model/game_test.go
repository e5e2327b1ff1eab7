package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/TruncateGame/Truncate-sub000/internal/dependencies/mocks"
	"github.com/TruncateGame/Truncate-sub000/internal/model"
	"github.com/TruncateGame/Truncate-sub000/internal/services/dictionary"
	"github.com/TruncateGame/Truncate-sub000/internal/services/judge"
)

type GameSuite struct {
	suite.Suite
	clock *mocks.MockClock
	judge *judge.Service
	dict  *dictionary.Dict
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameSuite))
}

func (s *GameSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.judge = judge.New()
	s.dict = dictionary.NewDict("test", map[string]model.WordData{
		"at":  {},
		"cat": {},
		"tap": {},
	})
}

// newGame builds a started two-player game over the given board with
// hand-picked hands, so every test controls exactly which tiles are in
// play.
func (s *GameSuite) newGame(boardText string, rules model.Rules, hands ...model.Hand) *model.Game {
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

func (s *GameSuite) play(game *model.Game, move model.Move) (*int, error) {
	return game.PlayTurn(move, s.judge, s.dict, s.dict)
}

// Turn flow

func (s *GameSuite) TestPlaceTurnFlow() {
	game := s.newGame(`~~ |0 ~~
__ __ __
~~ |1 ~~`, model.DefaultRules(), model.Hand{'c', 'a', 't'}, model.Hand{'d', 'o', 'g'})

	winner, err := s.play(game, model.PlaceMove{Player: 0, Tile: 'c', Position: model.Coordinate{X: 1, Y: 1}})
	s.Require().NoError(err)
	s.Nil(winner)

	s.Equal(1, game.TurnCount)
	s.Equal(1, game.NextPlayer)

	sq, err := game.Board.Get(model.Coordinate{X: 1, Y: 1})
	s.Require().NoError(err)
	s.Equal(model.KindOccupied, sq.Kind)
	s.Equal('c', sq.Tile)
	s.True(game.Players[0].HasPlaced)

	// The hand refills back to capacity from the bag
	s.Len(game.Players[0].Hand, game.Rules.HandSize)
	s.False(game.Players[0].Hand.Has('c'))

	// The change list records the placement and the draw
	s.Require().NotEmpty(game.RecentChanges)
	s.Equal(model.ActionAdded, game.RecentChanges[0].Board.Action)

	// The next player's clock is armed, the mover's is stopped
	s.Nil(game.Players[0].TurnStartsAt)
	s.NotNil(game.Players[1].TurnStartsAt)
}

func (s *GameSuite) TestPlayTurnChecks() {
	game := s.newGame(`~~ |0 ~~
__ __ __
~~ |1 ~~`, model.DefaultRules(), model.Hand{'c'}, model.Hand{'d'})

	_, err := s.play(game, model.PlaceMove{Player: 1, Tile: 'd', Position: model.Coordinate{X: 1, Y: 1}})
	s.ErrorIs(err, model.ErrWrongPlayer)

	_, err = s.play(game, model.PlaceMove{Player: 5, Tile: 'c', Position: model.Coordinate{X: 1, Y: 1}})
	s.ErrorIs(err, model.ErrNonExistentPlayer)
}

func (s *GameSuite) TestPlayTurnBeforeStart() {
	board := model.MustParseBoard("|0 __ |1")
	rules := model.DefaultRules()
	game := model.NewGame(rules, board, s.clock, model.NewTileBag(rules.LetterDistribution, mocks.NewMockRandom()))
	game.AddPlayer("Alice")
	game.AddPlayer("Bob")

	_, err := s.play(game, model.PlaceMove{Player: 0, Tile: 'c', Position: model.Coordinate{X: 1, Y: 0}})
	s.ErrorIs(err, model.ErrNotStarted)
}

func (s *GameSuite) TestFailedMoveLeavesGameUntouched() {
	game := s.newGame(`~~ |0 ~~
__ __ __
~~ |1 ~~`, model.DefaultRules(), model.Hand{'c'}, model.Hand{'d'})
	before := game.Board.String()

	// Tile not in hand
	_, err := s.play(game, model.PlaceMove{Player: 0, Tile: 'z', Position: model.Coordinate{X: 1, Y: 1}})
	s.ErrorIs(err, model.ErrPlayerDoesNotHaveTile)

	// Placement not adjacent to own territory
	_, err = s.play(game, model.PlaceMove{Player: 0, Tile: 'c', Position: model.Coordinate{X: 0, Y: 1}})
	s.ErrorIs(err, model.ErrNonAdjacentPlace)

	s.Equal(before, game.Board.String())
	s.Equal(0, game.TurnCount)
	s.Equal(0, game.NextPlayer)
	s.Equal(model.Hand{'c'}, game.Players[0].Hand)
}

// Battles

func (s *GameSuite) TestBattleAttackerWinsClearsWeakDefenders() {
	game := s.newGame(`|0 ~~ ~~
c0 ~~ ~~
a0 ~~ ~~
__ x1 q1
~~ ~~ |1`, model.DefaultRules(), model.Hand{'t'}, model.Hand{'d'})

	before := game.Bag.Remaining()
	winner, err := s.play(game, model.PlaceMove{Player: 0, Tile: 't', Position: model.Coordinate{X: 0, Y: 3}})
	s.Require().NoError(err)
	s.Nil(winner)

	// The invalid defending word is cleared off the board
	s.Equal(model.KindLand, game.Board.Squares[3][1].Kind)
	s.Equal(model.KindLand, game.Board.Squares[3][2].Kind)
	// Two defeated tiles went back in, seven came out for the refill
	s.Equal(before+2-7, game.Bag.Remaining())

	// The attacking word stands, marked valid
	s.Equal(model.KindOccupied, game.Board.Squares[3][0].Kind)
	s.Equal(model.ValidityValid, game.Board.Squares[1][0].Validity)
	s.Equal(model.ValidityValid, game.Board.Squares[3][0].Validity)

	report := findBattle(game.RecentChanges)
	s.Require().NotNil(report)
	s.Equal(model.OutcomeAttackerWins, report.Outcome)
	s.Equal("CAT", report.Attackers[0].Resolved)
}

func (s *GameSuite) TestBattleDefenderWinsClearsAttack() {
	game := s.newGame(`|0 ~~ ~~
z0 ~~ ~~
__ t1 a1
~~ ~~ |1`, model.DefaultRules(), model.Hand{'x'}, model.Hand{'d'})

	winner, err := s.play(game, model.PlaceMove{Player: 0, Tile: 'x', Position: model.Coordinate{X: 0, Y: 2}})
	s.Require().NoError(err)
	s.Nil(winner)

	// The invalid attacking word is destroyed wholesale
	s.Equal(model.KindLand, game.Board.Squares[1][0].Kind)
	s.Equal(model.KindLand, game.Board.Squares[2][0].Kind)
	// The valid defender stands
	s.Equal(model.KindOccupied, game.Board.Squares[2][1].Kind)
	s.Equal(model.KindOccupied, game.Board.Squares[2][2].Kind)

	report := findBattle(game.RecentChanges)
	s.Require().NotNil(report)
	s.Equal(model.OutcomeDefenderWins, report.Outcome)
}

func (s *GameSuite) TestTruncationAfterBattle() {
	// The chain z-x hangs off the attacking word; when the attack dies
	// the chain loses dock connectivity and is truncated
	game := s.newGame(`|0 ~~ ~~ ~~
q0 z0 x0 ~~
__ t1 a1 ~~
~~ ~~ |1 ~~`, model.DefaultRules(), model.Hand{'w'}, model.Hand{'d'})

	_, err := s.play(game, model.PlaceMove{Player: 0, Tile: 'w', Position: model.Coordinate{X: 0, Y: 2}})
	s.Require().NoError(err)

	// Attack word q-w died in battle; z and x lost their connection
	s.Equal(model.KindLand, game.Board.Squares[1][0].Kind)
	s.Equal(model.KindLand, game.Board.Squares[2][0].Kind)
	s.Equal(model.KindLand, game.Board.Squares[1][1].Kind)
	s.Equal(model.KindLand, game.Board.Squares[1][2].Kind)

	truncated := 0
	for _, change := range game.RecentChanges {
		if change.Board != nil && change.Board.Action == model.ActionTruncated {
			truncated++
		}
	}
	s.Equal(2, truncated)
}

func (s *GameSuite) TestExplosiveAttackClearsAdjacentTiles() {
	game := s.newGame(`|0 ~~ ~~
a0 ~~ ~~
__ x1 ~~
__ y1 ~~
~~ |1 ~~`, model.DefaultRules(), model.Hand{model.ExplosiveRune}, model.Hand{'d'})

	winner, err := s.play(game, model.PlaceMove{Player: 0, Tile: model.ExplosiveRune, Position: model.Coordinate{X: 0, Y: 2}})
	s.Require().NoError(err)
	s.Nil(winner)

	// The explosion destroys the adjacent enemy tile; y keeps its dock
	// connection and survives
	s.Equal(model.KindLand, game.Board.Squares[2][1].Kind)
	s.Equal(model.KindOccupied, game.Board.Squares[3][1].Kind)

	exploded := 0
	for _, change := range game.RecentChanges {
		if change.Board != nil && change.Board.Action == model.ActionExploded {
			exploded++
		}
	}
	s.Equal(1, exploded)

	battle := findBattle(game.RecentChanges)
	s.Require().NotNil(battle)
	s.Equal(model.OutcomeAttackerWins, battle.Outcome)
	s.Empty(battle.Losers)
}

// Swapping

func (s *GameSuite) TestSwapTurn() {
	game := s.newGame(`|0 ~~
c0 ~~
a0 ~~
~~ |1`, model.DefaultRules(), model.Hand{'t'}, model.Hand{'d'})

	winner, err := s.play(game, model.SwapMove{Player: 0, Positions: [2]model.Coordinate{{X: 0, Y: 1}, {X: 0, Y: 2}}})
	s.Require().NoError(err)
	s.Nil(winner)

	s.Equal('a', game.Board.Squares[1][0].Tile)
	s.Equal('c', game.Board.Squares[2][0].Tile)
	s.Equal(1, game.Players[0].SwapCount)
	s.Equal(1, game.NextPlayer)
}

func (s *GameSuite) TestSwapLimitPerGame() {
	rules := model.DefaultRules()
	rules.Swapping.Limit = 1
	game := s.newGame(`|0 ~~
c0 ~~
a0 __
~~ |1`, rules, model.Hand{'t'}, model.Hand{'d'})

	_, err := s.play(game, model.SwapMove{Player: 0, Positions: [2]model.Coordinate{{X: 0, Y: 1}, {X: 0, Y: 2}}})
	s.Require().NoError(err)

	// Bob takes a turn so it is Alice's move again
	_, err = s.play(game, model.PlaceMove{Player: 1, Tile: 'd', Position: model.Coordinate{X: 1, Y: 2}})
	s.Require().NoError(err)

	_, err = s.play(game, model.SwapMove{Player: 0, Positions: [2]model.Coordinate{{X: 0, Y: 1}, {X: 0, Y: 2}}})
	s.ErrorIs(err, model.ErrTooManySwaps)
}

// Time penalties

func (s *GameSuite) TestTimePenaltiesGrantWildcards() {
	rules := model.DefaultRules()
	rules.AllottedTime = time.Minute
	game := s.newGame(`~~ |0 ~~
__ __ __
~~ |1 ~~`, rules, model.Hand{'c'}, model.Hand{'d'})

	// Alice takes two and a half minutes over a one minute clock
	s.clock.Advance(150 * time.Second)
	_, err := s.play(game, model.PlaceMove{Player: 0, Tile: 'c', Position: model.Coordinate{X: 1, Y: 1}})
	s.Require().NoError(err)

	// 1.5 minutes over: one unit for going over, one per whole minute
	s.Equal(2, game.Players[0].PenaltiesIncurred)
	s.Equal(2, countTiles(game.Players[1].Hand, model.WildcardRune))

	var timeChange *model.TimeChange
	for _, change := range game.RecentChanges {
		if change.Time != nil {
			timeChange = change.Time
		}
	}
	s.Require().NotNil(timeChange)
	s.Equal(0, timeChange.Player)
	s.Equal(2, timeChange.Penalties)
}

func (s *GameSuite) TestTimePenaltiesAreMonotonic() {
	rules := model.DefaultRules()
	rules.AllottedTime = time.Minute
	game := s.newGame(`~~ |0 ~~
__ __ __
__ __ __
~~ |1 ~~`, rules, model.Hand{'c', 'a'}, model.Hand{'d', 'o'})

	s.clock.Advance(150 * time.Second)
	_, err := s.play(game, model.PlaceMove{Player: 0, Tile: 'c', Position: model.Coordinate{X: 1, Y: 1}})
	s.Require().NoError(err)
	s.Equal(2, game.Players[0].PenaltiesIncurred)

	_, err = s.play(game, model.PlaceMove{Player: 1, Tile: 'd', Position: model.Coordinate{X: 1, Y: 2}})
	s.Require().NoError(err)

	// Alice moves again instantly: no new whole minute elapsed, so no
	// new penalty units
	_, err = s.play(game, model.PlaceMove{Player: 0, Tile: 'a', Position: model.Coordinate{X: 0, Y: 1}})
	s.Require().NoError(err)
	s.Equal(2, game.Players[0].PenaltiesIncurred)
	s.Equal(2, countTiles(game.Players[1].Hand, model.WildcardRune))
}

// Winning

func (s *GameSuite) TestDestinationWin() {
	game := s.newGame(`|0 ~~
c0 ~~
a0 ~~
__ #1`, model.DefaultRules(), model.Hand{'t'}, model.Hand{'d'})

	winner, err := s.play(game, model.PlaceMove{Player: 0, Tile: 't', Position: model.Coordinate{X: 0, Y: 3}})
	s.Require().NoError(err)
	s.Require().NotNil(winner)
	s.Equal(0, *winner)
	s.Require().NotNil(game.Winner)

	// The town is defeated, not removed
	town, err := game.Board.Get(model.Coordinate{X: 1, Y: 3})
	s.Require().NoError(err)
	s.Equal(model.KindTown, town.Kind)
	s.True(town.Defeated)

	// The game freezes at the winning move
	s.Equal(0, game.NextPlayer)
	_, err = s.play(game, model.PlaceMove{Player: 0, Tile: 'a', Position: model.Coordinate{X: 0, Y: 3}})
	s.ErrorIs(err, model.ErrGameOver)
}

func (s *GameSuite) TestEliminationWin() {
	rules := model.DefaultRules()
	rules.WinCondition = model.WinCondition{Kind: model.WinElimination}
	game := s.newGame(`|0 ~~
a0 ~~
__ x1
~~ |1`, rules, model.Hand{'t'}, model.Hand{'d'})
	game.Players[1].HasPlaced = true

	winner, err := s.play(game, model.PlaceMove{Player: 0, Tile: 't', Position: model.Coordinate{X: 0, Y: 2}})
	s.Require().NoError(err)
	s.Require().NotNil(winner)
	s.Equal(0, *winner)
}

// Fog filtering

func (s *GameSuite) TestFilterToPlayerHidesUnseenTiles() {
	rules := model.DefaultRules()
	rules.Visibility = model.VisibilityTileFog
	game := s.newGame(`~~ |0 ~~
__ __ __
__ __ __
__ __ __
__ z1 __
~~ |1 ~~`, rules, model.Hand{'c'}, model.Hand{'d'})

	board, _, err := game.FilterToPlayer(0)
	s.Require().NoError(err)

	// The enemy tile is out of sight and rendered as plain land
	sq, err := board.Get(model.Coordinate{X: 1, Y: 4})
	s.Require().NoError(err)
	s.Equal(model.KindLand, sq.Kind)
}

func (s *GameSuite) TestFilterToPlayerRejectsUnknownPlayer() {
	game := s.newGame("|0 __ |1", model.DefaultRules(), model.Hand{'c'}, model.Hand{'d'})
	_, _, err := game.FilterToPlayer(7)
	s.ErrorIs(err, model.ErrNonExistentPlayer)
}

// Cloning

func (s *GameSuite) TestCloneIsIndependent() {
	game := s.newGame(`~~ |0 ~~
__ __ __
~~ |1 ~~`, model.DefaultRules(), model.Hand{'c', 'a'}, model.Hand{'d', 'o'})

	clone := game.Clone()
	_, err := clone.PlayTurn(model.PlaceMove{Player: 0, Tile: 'c', Position: model.Coordinate{X: 1, Y: 1}}, s.judge, s.dict, s.dict)
	s.Require().NoError(err)

	s.Equal(0, game.TurnCount)
	s.Equal(model.Hand{'c', 'a'}, game.Players[0].Hand)
	sq, err := game.Board.Get(model.Coordinate{X: 1, Y: 1})
	s.Require().NoError(err)
	s.Equal(model.KindLand, sq.Kind)
}

// helpers

func findBattle(changes []model.Change) *model.BattleReport {
	for _, change := range changes {
		if change.Battle != nil {
			return change.Battle
		}
	}
	return nil
}

func countTiles(hand model.Hand, tile rune) int {
	n := 0
	for _, t := range hand {
		if t == tile {
			n++
		}
	}
	return n
}
