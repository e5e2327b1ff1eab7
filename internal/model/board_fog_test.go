package model

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type BoardFogSuite struct {
	suite.Suite
}

func TestBoardFogSuite(t *testing.T) {
	suite.Run(t, new(BoardFogSuite))
}

func (s *BoardFogSuite) fogBoard() *Board {
	return MustParseBoard(`~~ ~~ |0 ~~ ~~
__ __ a0 __ __
__ __ __ __ __
__ __ __ __ __
__ __ z1 __ __
~~ ~~ |1 ~~ ~~`)
}

func (s *BoardFogSuite) TestVisibleCoordsCoversOwnTerritoryAndRings() {
	board := s.fogBoard()
	visible := board.VisibleCoords(0)

	s.True(visible[Coordinate{X: 2, Y: 0}]) // own dock
	s.True(visible[Coordinate{X: 2, Y: 1}]) // own tile
	s.True(visible[Coordinate{X: 2, Y: 2}]) // first ring
	s.True(visible[Coordinate{X: 2, Y: 3}]) // second ring
	s.False(visible[Coordinate{X: 2, Y: 4}]) // enemy tile beyond the rings
	s.False(visible[Coordinate{X: 2, Y: 5}]) // enemy dock
}

func (s *BoardFogSuite) TestVisibleCoordsRevealsTouchedEnemyWords() {
	board := MustParseBoard(`a0 x1 y1 z1 w1 v1 u1`)
	visible := board.VisibleCoords(0)

	// The rings only reach two squares out, but touching one tile of
	// the enemy word reveals all of it
	for x := 1; x <= 6; x++ {
		s.True(visible[Coordinate{X: x, Y: 0}], "x=%d", x)
	}
}

func (s *BoardFogSuite) TestFogOfWarStandardIsClone() {
	board := s.fogBoard()
	fogged := board.FogOfWar(0, VisibilityStandard, nil)
	s.Equal(board.String(), fogged.String())
}

func (s *BoardFogSuite) TestFogOfWarTileFogHidesTilesAsLand() {
	board := s.fogBoard()
	fogged := board.FogOfWar(0, VisibilityTileFog, nil)

	s.Equal(KindLand, fogged.Squares[4][2].Kind)
	// Terrain stays visible under tile fog
	s.Equal(KindDock, fogged.Squares[5][2].Kind)
	s.Equal(KindWater, fogged.Squares[5][0].Kind)
}

func (s *BoardFogSuite) TestFogOfWarLandFogHidesSquares() {
	board := s.fogBoard()
	fogged := board.FogOfWar(0, VisibilityLandFog, nil)

	s.Equal(KindFog, fogged.Squares[4][2].Kind)
	s.Equal(KindFog, fogged.Squares[5][2].Kind)
	// Own side is untouched
	s.Equal(KindDock, fogged.Squares[0][2].Kind)
	s.Equal(KindOccupied, fogged.Squares[1][2].Kind)
}

func (s *BoardFogSuite) TestFogOfWarHonorsSeenTiles() {
	board := s.fogBoard()
	seen := map[Coordinate]bool{{X: 2, Y: 4}: true}
	fogged := board.FogOfWar(0, VisibilityLandFog, seen)

	s.Equal(KindOccupied, fogged.Squares[4][2].Kind)
	s.Equal(KindFog, fogged.Squares[5][2].Kind)
}

func (s *BoardFogSuite) TestRedundantEdges() {
	board := MustParseBoard(`~~ ~~ ~~
~~ __ ~~
~~ a0 ~~
~~ ~~ ~~`)
	top, right, bottom, left := board.RedundantEdges()
	s.Equal(1, top)
	s.Equal(1, right)
	s.Equal(1, bottom)
	s.Equal(1, left)
}

func (s *BoardFogSuite) TestTrim() {
	board := MustParseBoard(`~~ ~~ ~~
~~ a0 ~~
~~ ~~ ~~`)
	trimmed := board.Trim()
	s.Equal("a0", trimmed.String())
}

func (s *BoardFogSuite) TestFogAndTrimCutsFoggedEdges() {
	board := s.fogBoard()
	served := board.FogAndTrim(1, VisibilityLandFog, nil)

	// Player 1 cannot see the two northernmost rows, which the fog
	// turns fully uninformative, so the served board drops them
	s.Equal(6-2, served.Height())
	s.Equal(board.Width(), served.Width())
	s.Equal(KindOccupied, served.Squares[2][2].Kind)
}

func (s *BoardFogSuite) TestCoordinateRemappingRoundTrip() {
	board := s.fogBoard()

	for _, c := range []Coordinate{{X: 2, Y: 2}, {X: 0, Y: 3}, {X: 4, Y: 5}} {
		mapped := board.MapGameCoordToPlayer(c, 1, VisibilityLandFog, nil)
		back := board.MapPlayerCoordToGame(mapped, 1, VisibilityLandFog, nil)
		s.Equal(c, back)
	}

	// The two fogged northern rows shift player 1's view up by two
	mapped := board.MapGameCoordToPlayer(Coordinate{X: 2, Y: 2}, 1, VisibilityLandFog, nil)
	s.Equal(Coordinate{X: 2, Y: 0}, mapped)
}

func (s *BoardFogSuite) TestRemappingIdentityWithoutFog() {
	board := s.fogBoard()
	c := Coordinate{X: 1, Y: 1}
	s.Equal(c, board.MapGameCoordToPlayer(c, 0, VisibilityStandard, nil))
	s.Equal(c, board.MapPlayerCoordToGame(c, 0, VisibilityStandard, nil))
}
