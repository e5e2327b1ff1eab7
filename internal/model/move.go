package model

import (
	"fmt"
	"strings"
)

// Move is a single submitted action: either placing a tile or swapping
// two tiles. Moves are immutable values; the only long-term storage is
// the packed move log produced by PackMoves.
type Move interface {
	// MovePlayer returns the index of the player making the move
	MovePlayer() int
}

// PlaceMove places one tile from the player's hand onto the board
type PlaceMove struct {
	Player   int
	Tile     rune
	Position Coordinate
}

// MovePlayer implements Move
func (m PlaceMove) MovePlayer() int { return m.Player }

func (m PlaceMove) String() string {
	return fmt.Sprintf("player %d places %c at (%d, %d)", m.Player, m.Tile, m.Position.X, m.Position.Y)
}

// SwapMove exchanges the tiles on two of the player's occupied squares
type SwapMove struct {
	Player    int
	Positions [2]Coordinate
}

// MovePlayer implements Move
func (m SwapMove) MovePlayer() int { return m.Player }

func (m SwapMove) String() string {
	return fmt.Sprintf("player %d swaps (%d, %d) and (%d, %d)",
		m.Player, m.Positions[0].X, m.Positions[0].Y, m.Positions[1].X, m.Positions[1].Y)
}

// PackMoves encodes a move sequence as a compact replayable string.
//
// The first character is the digit width used for coordinates, sized to
// the largest x or y in the sequence. Tokens are ';'-separated. A move
// by the expected player (turns rotate through playerCount) carries no
// player tag; a move by anyone else is prefixed with '!' and the player
// index. Placements are tile + zero-padded x + y; swaps are
// '<' from '/' to '>'.
//
// UnpackMoves(PackMoves(moves, n), n) reproduces the input exactly.
func PackMoves(moves []Move, playerCount int) string {
	if len(moves) == 0 {
		return ""
	}

	width := 1
	for _, move := range moves {
		for _, c := range moveCoordinates(move) {
			width = max(width, digitLen(c.X), digitLen(c.Y))
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d", width)
	expected := 0
	for _, move := range moves {
		sb.WriteByte(';')
		player := move.MovePlayer()
		if player != expected {
			fmt.Fprintf(&sb, "!%d", player)
		}
		switch m := move.(type) {
		case PlaceMove:
			fmt.Fprintf(&sb, "%c%0*d%0*d", m.Tile, width, m.Position.X, width, m.Position.Y)
		case SwapMove:
			fmt.Fprintf(&sb, "<%0*d%0*d/%0*d%0*d>",
				width, m.Positions[0].X, width, m.Positions[0].Y,
				width, m.Positions[1].X, width, m.Positions[1].Y)
		default:
			panic(fmt.Sprintf("unpackable move type %T", move))
		}
		expected = (player + 1) % playerCount
	}
	return sb.String()
}

// UnpackMoves decodes a string produced by PackMoves
func UnpackMoves(packed string, playerCount int) ([]Move, error) {
	if packed == "" {
		return nil, nil
	}
	if playerCount <= 0 {
		return nil, fmt.Errorf("unpack moves: player count %d", playerCount)
	}

	parts := strings.Split(packed, ";")
	if len(parts) < 2 {
		return nil, fmt.Errorf("unpack moves: truncated log %q", packed)
	}
	width := int(parts[0][0] - '0')
	if len(parts[0]) != 1 || width < 1 || width > 9 {
		return nil, fmt.Errorf("unpack moves: bad width prefix %q", parts[0])
	}

	parseCoord := func(token string) (Coordinate, error) {
		if len(token) != 2*width {
			return Coordinate{}, fmt.Errorf("unpack moves: bad coordinate %q", token)
		}
		var x, y int
		if _, err := fmt.Sscanf(token[:width], "%d", &x); err != nil {
			return Coordinate{}, fmt.Errorf("unpack moves: bad coordinate %q", token)
		}
		if _, err := fmt.Sscanf(token[width:], "%d", &y); err != nil {
			return Coordinate{}, fmt.Errorf("unpack moves: bad coordinate %q", token)
		}
		return Coordinate{X: x, Y: y}, nil
	}

	var moves []Move
	expected := 0
	for _, token := range parts[1:] {
		if token == "" {
			return nil, fmt.Errorf("unpack moves: empty token in %q", packed)
		}
		player := expected
		if token[0] == '!' {
			// Tiles are never digits and swaps open with '<', so every
			// digit after the '!' belongs to the player index
			end := 1
			for end < len(token) && token[end] >= '0' && token[end] <= '9' {
				end++
			}
			if end == 1 {
				return nil, fmt.Errorf("unpack moves: bad player tag in %q", token)
			}
			player = 0
			for _, d := range token[1:end] {
				player = player*10 + int(d-'0')
			}
			token = token[end:]
		}
		if player >= playerCount {
			return nil, fmt.Errorf("unpack moves: player %d out of range", player)
		}

		if strings.HasPrefix(token, "<") {
			body, ok := strings.CutSuffix(strings.TrimPrefix(token, "<"), ">")
			if !ok {
				return nil, fmt.Errorf("unpack moves: unterminated swap %q", token)
			}
			from, to, ok := strings.Cut(body, "/")
			if !ok {
				return nil, fmt.Errorf("unpack moves: bad swap %q", token)
			}
			fromCoord, err := parseCoord(from)
			if err != nil {
				return nil, err
			}
			toCoord, err := parseCoord(to)
			if err != nil {
				return nil, err
			}
			moves = append(moves, SwapMove{Player: player, Positions: [2]Coordinate{fromCoord, toCoord}})
		} else {
			runes := []rune(token)
			if len(runes) < 1 {
				return nil, fmt.Errorf("unpack moves: bad placement %q", token)
			}
			tile := runes[0]
			pos, err := parseCoord(string(runes[1:]))
			if err != nil {
				return nil, err
			}
			moves = append(moves, PlaceMove{Player: player, Tile: tile, Position: pos})
		}
		expected = (player + 1) % playerCount
	}
	return moves, nil
}

func moveCoordinates(move Move) []Coordinate {
	switch m := move.(type) {
	case PlaceMove:
		return []Coordinate{m.Position}
	case SwapMove:
		return []Coordinate{m.Positions[0], m.Positions[1]}
	default:
		return nil
	}
}

func digitLen(n int) int {
	if n < 10 {
		return 1
	}
	length := 0
	for n > 0 {
		length++
		n /= 10
	}
	return length
}
