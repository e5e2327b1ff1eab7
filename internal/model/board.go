package model

import (
	"fmt"
	"strings"
)

// Board owns the grid of squares for one game. Docks and Towns are
// derived caches of special-square positions; they are rebuilt by
// CacheSpecialSquares and must never be left stale after a mutation
// that adds or removes a special square.
//
// Orientations records each player's reading direction: the compass
// direction that player's words run in. It lives on the board, not the
// player, because it is a property of where the player's home edge is.
type Board struct {
	Squares      [][]Square
	Docks        []Coordinate
	Towns        []Coordinate
	Orientations []Direction
}

// DefaultOrientations is the standard two-player layout: player 0's
// home is the north edge so their words read southward, player 1 reads
// northward.
func DefaultOrientations() []Direction {
	return []Direction{South, North}
}

// ParseBoard builds a board from its textual form: rows separated by
// newlines, squares by whitespace, each square a two-character token as
// rendered by Square.String.
func ParseBoard(text string) (*Board, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	squares := make([][]Square, 0, len(lines))
	width := -1
	for y, line := range lines {
		tokens := strings.Fields(line)
		if width == -1 {
			width = len(tokens)
		} else if len(tokens) != width {
			return nil, fmt.Errorf("parse board: row %d has %d squares, want %d", y, len(tokens), width)
		}
		row := make([]Square, 0, len(tokens))
		for _, token := range tokens {
			sq, err := ParseSquare(token)
			if err != nil {
				return nil, fmt.Errorf("parse board: row %d: %w", y, err)
			}
			row = append(row, sq)
		}
		squares = append(squares, row)
	}
	if len(squares) == 0 || width == 0 {
		return nil, fmt.Errorf("parse board: empty board")
	}

	board := &Board{
		Squares:      squares,
		Orientations: DefaultOrientations(),
	}
	board.CacheSpecialSquares()
	return board, nil
}

// MustParseBoard is ParseBoard for board literals in code and tests
func MustParseBoard(text string) *Board {
	board, err := ParseBoard(text)
	if err != nil {
		panic(err)
	}
	return board
}

// String renders the board in the same format ParseBoard accepts
func (b *Board) String() string {
	var sb strings.Builder
	for y, row := range b.Squares {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x, sq := range row {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(sq.String())
		}
	}
	return sb.String()
}

// Width returns the number of columns
func (b *Board) Width() int {
	if len(b.Squares) == 0 {
		return 0
	}
	return len(b.Squares[0])
}

// Height returns the number of rows
func (b *Board) Height() int {
	return len(b.Squares)
}

// Contains reports whether the coordinate is inside the grid
func (b *Board) Contains(c Coordinate) bool {
	return c.Y >= 0 && c.Y < b.Height() && c.X >= 0 && c.X < b.Width()
}

// Get returns the square at the coordinate
func (b *Board) Get(c Coordinate) (Square, error) {
	if !b.Contains(c) {
		return Square{}, fmt.Errorf("%w: (%d, %d)", ErrOutsideBoard, c.X, c.Y)
	}
	return b.Squares[c.Y][c.X], nil
}

// mustGet is for coordinates the caller has already proven valid.
// Going out of bounds here is an engine bug, not a user error.
func (b *Board) mustGet(c Coordinate) Square {
	sq, err := b.Get(c)
	if err != nil {
		panic(fmt.Sprintf("coordinate (%d, %d) must be on the board", c.X, c.Y))
	}
	return sq
}

// Set replaces the square at the coordinate and refreshes the special
// square caches
func (b *Board) Set(c Coordinate, sq Square) error {
	if !b.Contains(c) {
		return fmt.Errorf("%w: (%d, %d)", ErrOutsideBoard, c.X, c.Y)
	}
	b.Squares[c.Y][c.X] = sq
	b.CacheSpecialSquares()
	return nil
}

// CacheSpecialSquares rebuilds the dock and town position caches from
// the grid
func (b *Board) CacheSpecialSquares() {
	b.Docks = b.Docks[:0]
	b.Towns = b.Towns[:0]
	for y, row := range b.Squares {
		for x, sq := range row {
			c := Coordinate{X: x, Y: y}
			switch sq.Kind {
			case KindDock:
				b.Docks = append(b.Docks, c)
			case KindTown:
				b.Towns = append(b.Towns, c)
			}
		}
	}
}

// neighbors4In returns the in-bounds orthogonal neighbors of c
func (b *Board) neighbors4In(c Coordinate) []Coordinate {
	out := make([]Coordinate, 0, 4)
	for _, n := range c.Neighbors4() {
		if b.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// PlaceTile puts a player's tile on a land square adjacent to that
// player's existing territory. It validates fully before mutating, so a
// failed placement leaves the board untouched.
func (b *Board) PlaceTile(c Coordinate, player int, tile rune) error {
	sq, err := b.Get(c)
	if err != nil {
		return err
	}
	switch sq.Kind {
	case KindOccupied:
		return fmt.Errorf("%w: (%d, %d)", ErrOccupiedPlace, c.X, c.Y)
	case KindLand:
	default:
		return fmt.Errorf("%w: (%d, %d)", ErrInvalidPosition, c.X, c.Y)
	}

	adjacent := false
	for _, n := range b.neighbors4In(c) {
		nsq := b.mustGet(n)
		if (nsq.Kind == KindOccupied || nsq.Kind == KindDock) && nsq.Player == player {
			adjacent = true
			break
		}
	}
	if !adjacent {
		return fmt.Errorf("%w: (%d, %d)", ErrNonAdjacentPlace, c.X, c.Y)
	}

	b.Squares[c.Y][c.X] = OccupiedSquare(player, tile)
	return nil
}

// SwapTiles exchanges the tiles on two squares the player owns. The
// rule parameter controls which swaps are topologically legal; the
// per-game swap count limit is the game's concern, not the board's.
func (b *Board) SwapTiles(from, to Coordinate, player int, rule SwapRule) error {
	if rule.Kind == SwapNone {
		return ErrNoSwapping
	}
	if from == to {
		return ErrSelfSwap
	}
	fromSq, err := b.Get(from)
	if err != nil {
		return err
	}
	toSq, err := b.Get(to)
	if err != nil {
		return err
	}
	if fromSq.Kind != KindOccupied || toSq.Kind != KindOccupied {
		return ErrUnoccupiedSwap
	}
	if fromSq.Player != player || toSq.Player != player {
		return ErrUnownedSwap
	}
	if fromSq.Tile == toSq.Tile {
		return ErrNoopSwap
	}
	if rule.Kind == SwapContiguous {
		reachable := b.DepthFirstSearch(from)
		if !reachable[to] {
			return ErrDisjointSwap
		}
	}

	b.Squares[from.Y][from.X].Tile = toSq.Tile
	b.Squares[from.Y][from.X].Validity = ValidityUnknown
	b.Squares[to.Y][to.X].Tile = fromSq.Tile
	b.Squares[to.Y][to.X].Validity = ValidityUnknown
	return nil
}

// ClearSquare removes an occupied square's tile, returning the square
// as it was
func (b *Board) ClearSquare(c Coordinate) (Square, error) {
	sq, err := b.Get(c)
	if err != nil {
		return Square{}, err
	}
	if sq.Kind != KindOccupied {
		return Square{}, fmt.Errorf("%w: (%d, %d)", ErrUnoccupiedSwap, c.X, c.Y)
	}
	b.Squares[c.Y][c.X] = LandSquare()
	return sq, nil
}

// GetWords returns the words running through a coordinate as coordinate
// lists, one per board axis. Letters are ordered by the owning player's
// orientation so the word reads correctly for its owner. A lone town
// square counts as a single-square word. Single-letter words are
// dropped unless nothing longer runs through the square.
func (b *Board) GetWords(c Coordinate) [][]Coordinate {
	sq, err := b.Get(c)
	if err != nil {
		return nil
	}
	if sq.Kind == KindTown {
		return [][]Coordinate{{c}}
	}
	if sq.Kind != KindOccupied {
		return nil
	}
	owner := sq.Player

	axis := func(back, fwd Direction) []Coordinate {
		start := c
		for {
			prev := start.Add(back)
			if !b.Contains(prev) {
				break
			}
			psq := b.mustGet(prev)
			if psq.Kind != KindOccupied || psq.Player != owner {
				break
			}
			start = prev
		}
		var word []Coordinate
		for cur := start; ; cur = cur.Add(fwd) {
			if !b.Contains(cur) {
				break
			}
			csq := b.mustGet(cur)
			if csq.Kind != KindOccupied || csq.Player != owner {
				break
			}
			word = append(word, cur)
		}
		return word
	}

	vertical := axis(North, South)
	horizontal := axis(West, East)
	if b.orientationFor(owner) == North {
		reverseCoords(vertical)
		reverseCoords(horizontal)
	}

	var words [][]Coordinate
	for _, word := range [][]Coordinate{vertical, horizontal} {
		if len(word) > 1 {
			words = append(words, word)
		}
	}
	if len(words) == 0 {
		// The tile alone is still a word for battle purposes
		words = [][]Coordinate{{c}}
	}
	return words
}

func (b *Board) orientationFor(player int) Direction {
	if player >= 0 && player < len(b.Orientations) {
		return b.Orientations[player]
	}
	return South
}

// WordString assembles the letters of a word. Towns contribute the town
// pseudo-letter.
func (b *Board) WordString(word []Coordinate) (string, error) {
	var sb strings.Builder
	for _, c := range word {
		sq, err := b.Get(c)
		if err != nil {
			return "", err
		}
		switch sq.Kind {
		case KindOccupied:
			sb.WriteRune(sq.Tile)
		case KindTown:
			sb.WriteRune(TownRune)
		default:
			return "", fmt.Errorf("%w: (%d, %d)", ErrEmptySquareInWord, c.X, c.Y)
		}
	}
	return sb.String(), nil
}

// WordStrings assembles each word in the list
func (b *Board) WordStrings(words [][]Coordinate) ([]string, error) {
	out := make([]string, 0, len(words))
	for _, word := range words {
		s, err := b.WordString(word)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// CollectCombatants gathers the words fighting over a newly placed
// tile: the attackers are the words through the placed coordinate, the
// defenders are every word or town belonging to another player that
// touches it orthogonally.
func (b *Board) CollectCombatants(placed Coordinate, player int) (attackers, defenders [][]Coordinate) {
	attackers = b.GetWords(placed)

	seen := make(map[string]bool)
	for _, n := range b.neighbors4In(placed) {
		nsq := b.mustGet(n)
		isEnemyTile := nsq.Kind == KindOccupied && nsq.Player != player
		isEnemyTown := nsq.Kind == KindTown && nsq.Player != player && !nsq.Defeated
		if !isEnemyTile && !isEnemyTown {
			continue
		}
		for _, word := range b.GetWords(n) {
			key := wordKey(word)
			if seen[key] {
				continue
			}
			seen[key] = true
			defenders = append(defenders, word)
		}
	}
	return attackers, defenders
}

// wordKey identifies a word by its endpoints for deduplication
func wordKey(word []Coordinate) string {
	first := word[0]
	last := word[len(word)-1]
	return fmt.Sprintf("%d.%d-%d.%d", first.X, first.Y, last.X, last.Y)
}

// Clone returns a structurally independent copy of the board
func (b *Board) Clone() *Board {
	squares := make([][]Square, len(b.Squares))
	for y, row := range b.Squares {
		squares[y] = make([]Square, len(row))
		copy(squares[y], row)
	}
	orientations := make([]Direction, len(b.Orientations))
	copy(orientations, b.Orientations)
	clone := &Board{Squares: squares, Orientations: orientations}
	clone.CacheSpecialSquares()
	return clone
}

func reverseCoords(coords []Coordinate) {
	for i, j := 0, len(coords)-1; i < j; i, j = i+1, j-1 {
		coords[i], coords[j] = coords[j], coords[i]
	}
}
