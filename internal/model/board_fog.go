package model

// Fog-of-war projection: computing what a player may see, producing a
// redacted copy of the board, and translating coordinates between the
// redacted board the player holds and the true board the game holds.

// VisibleCoords returns the set of coordinates the player can currently
// see: every square they own, two rings of neighbors around those, and
// the full extent of any opposing word one of those squares touches.
func (b *Board) VisibleCoords(player int) map[Coordinate]bool {
	visible := make(map[Coordinate]bool)
	for y, row := range b.Squares {
		for x, sq := range row {
			if sq.OwnedBy(player) {
				visible[Coordinate{X: x, Y: y}] = true
			}
		}
	}

	// Two rings of neighbors around owned territory
	for range 2 {
		ring := make([]Coordinate, 0, len(visible)*2)
		for c := range visible {
			for _, n := range c.Neighbors8() {
				if b.Contains(n) && !visible[n] {
					ring = append(ring, n)
				}
			}
		}
		for _, c := range ring {
			visible[c] = true
		}
	}

	// Touching one tile of an opposing word reveals the whole word
	extra := make([]Coordinate, 0)
	for c := range visible {
		sq := b.mustGet(c)
		if sq.Kind != KindOccupied || sq.Player == player {
			continue
		}
		for _, word := range b.GetWords(c) {
			extra = append(extra, word...)
		}
	}
	for _, c := range extra {
		visible[c] = true
	}
	return visible
}

// FogOfWar returns a redacted copy of the board for the player. Squares
// outside the visible set (which includes anything in seen, the
// player's accumulated visibility) are hidden per the visibility rule:
// TileFog hides opposing tiles as plain land, LandFog hides the square
// entirely. Standard visibility returns a plain clone.
func (b *Board) FogOfWar(player int, visibility Visibility, seen map[Coordinate]bool) *Board {
	fogged := b.Clone()
	if visibility == VisibilityStandard {
		return fogged
	}

	visible := b.VisibleCoords(player)
	for c := range seen {
		visible[c] = true
	}

	for y, row := range fogged.Squares {
		for x, sq := range row {
			if visible[Coordinate{X: x, Y: y}] {
				continue
			}
			switch visibility {
			case VisibilityTileFog:
				if sq.Kind == KindOccupied {
					fogged.Squares[y][x] = LandSquare()
				}
			case VisibilityLandFog:
				fogged.Squares[y][x] = FogSquare()
			}
		}
	}
	fogged.CacheSpecialSquares()
	return fogged
}

// RedundantEdges counts the contiguous rows and columns on each edge of
// the board that carry no information: squares that are all water or
// fog. These are what Trim removes, and what the coordinate remapping
// between true and redacted boards is computed from.
func (b *Board) RedundantEdges() (top, right, bottom, left int) {
	h, w := b.Height(), b.Width()

	rowRedundant := func(y int) bool {
		for _, sq := range b.Squares[y] {
			if sq.Kind != KindWater && sq.Kind != KindFog {
				return false
			}
		}
		return true
	}
	colRedundant := func(x int) bool {
		for y := range h {
			sq := b.Squares[y][x]
			if sq.Kind != KindWater && sq.Kind != KindFog {
				return false
			}
		}
		return true
	}

	for top < h && rowRedundant(top) {
		top++
	}
	for bottom < h-top && rowRedundant(h-1-bottom) {
		bottom++
	}
	for left < w && colRedundant(left) {
		left++
	}
	for right < w-left && colRedundant(w-1-right) {
		right++
	}
	return top, right, bottom, left
}

// Trim returns a copy of the board with its redundant edges removed
func (b *Board) Trim() *Board {
	top, right, bottom, left := b.RedundantEdges()
	return b.cut(top, right, bottom, left)
}

// FogAndTrim produces the board actually served to a fogged player:
// the redacted copy with every row and column the fog made fully
// uninformative cut away. Edges that were already redundant on the
// true board are kept, so the served board only ever shrinks by the
// amount the fog hid.
func (b *Board) FogAndTrim(player int, visibility Visibility, seen map[Coordinate]bool) *Board {
	fogged := b.FogOfWar(player, visibility, seen)
	top, right, bottom, left := b.fogOffsets(fogged)
	return fogged.cut(top, right, bottom, left)
}

// fogOffsets is the difference in redundant edge counts between the
// true board and a fogged copy of it: how much the fog shrank each
// edge. Every fogged player's submitted move is remapped through these
// counts, so the game-to-player and player-to-game translations must
// invert each other exactly.
func (b *Board) fogOffsets(fogged *Board) (top, right, bottom, left int) {
	fTop, fRight, fBottom, fLeft := fogged.RedundantEdges()
	gTop, gRight, gBottom, gLeft := b.RedundantEdges()
	return fTop - gTop, fRight - gRight, fBottom - gBottom, fLeft - gLeft
}

// MapGameCoordToPlayer translates a true-board coordinate into the
// coordinate space of the board FogAndTrim serves the player
func (b *Board) MapGameCoordToPlayer(c Coordinate, player int, visibility Visibility, seen map[Coordinate]bool) Coordinate {
	fogged := b.FogOfWar(player, visibility, seen)
	top, _, _, left := b.fogOffsets(fogged)
	return Coordinate{X: c.X - left, Y: c.Y - top}
}

// MapPlayerCoordToGame translates a coordinate submitted by a fogged
// player back into the true board's coordinate space
func (b *Board) MapPlayerCoordToGame(c Coordinate, player int, visibility Visibility, seen map[Coordinate]bool) Coordinate {
	fogged := b.FogOfWar(player, visibility, seen)
	top, _, _, left := b.fogOffsets(fogged)
	return Coordinate{X: c.X + left, Y: c.Y + top}
}

// cut removes the given number of rows and columns from each edge
func (b *Board) cut(top, right, bottom, left int) *Board {
	h, w := b.Height(), b.Width()
	if top < 0 {
		top = 0
	}
	if right < 0 {
		right = 0
	}
	if bottom < 0 {
		bottom = 0
	}
	if left < 0 {
		left = 0
	}
	if top+bottom >= h || left+right >= w {
		return b.Clone()
	}
	squares := make([][]Square, 0, h-top-bottom)
	for y := top; y < h-bottom; y++ {
		row := make([]Square, w-left-right)
		copy(row, b.Squares[y][left:w-right])
		squares = append(squares, row)
	}
	orientations := make([]Direction, len(b.Orientations))
	copy(orientations, b.Orientations)
	out := &Board{Squares: squares, Orientations: orientations}
	out.CacheSpecialSquares()
	return out
}
