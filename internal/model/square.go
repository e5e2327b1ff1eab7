package model

import (
	"fmt"
	"strings"
)

// Special tile runes used by the battle rules
const (
	// WildcardRune stands for any letter when judging a word
	WildcardRune = '*'
	// TownRune is the pseudo-letter a town contributes to a battle word
	TownRune = '#'
	// ExplosiveRune is the special tile that wins a battle outright and
	// destroys adjacent opposing tiles
	ExplosiveRune = '¤'
)

// Validity is the cached judgement of the words a tile participates in.
// It is derived state: it must be recomputed whenever neighboring tiles
// change and is never authoritative.
type Validity int

const (
	ValidityUnknown Validity = iota
	ValidityValid
	ValidityInvalid
	ValidityPartial // some words through the tile are valid, some are not
)

// SquareKind discriminates the square union
type SquareKind int

const (
	KindWater SquareKind = iota
	KindLand
	KindTown
	KindDock
	KindOccupied
	KindFog // visibility redaction, never present on the true board
)

// Square is one cell of the board grid. Kind selects which of the
// remaining fields are meaningful: Player for towns, docks and occupied
// squares; Tile and Validity for occupied squares; Defeated for towns.
type Square struct {
	Kind     SquareKind
	Player   int
	Tile     rune
	Defeated bool
	Validity Validity
}

// WaterSquare returns an impassable water square
func WaterSquare() Square {
	return Square{Kind: KindWater}
}

// LandSquare returns an empty playable square
func LandSquare() Square {
	return Square{Kind: KindLand}
}

// TownSquare returns a town belonging to the given player
func TownSquare(player int) Square {
	return Square{Kind: KindTown, Player: player}
}

// DockSquare returns a dock belonging to the given player
func DockSquare(player int) Square {
	return Square{Kind: KindDock, Player: player}
}

// OccupiedSquare returns a square holding the given player's tile
func OccupiedSquare(player int, tile rune) Square {
	return Square{Kind: KindOccupied, Player: player, Tile: tile}
}

// FogSquare returns a fully redacted square
func FogSquare() Square {
	return Square{Kind: KindFog}
}

// IsPlayable reports whether a tile may be placed here. Only land and
// already-occupied squares are playable; docks, towns and water never are.
func (s Square) IsPlayable() bool {
	return s.Kind == KindLand || s.Kind == KindOccupied
}

// OwnedBy reports whether the square belongs to the given player.
// Water, land and fog squares belong to nobody.
func (s Square) OwnedBy(player int) bool {
	switch s.Kind {
	case KindTown, KindDock, KindOccupied:
		return s.Player == player
	default:
		return false
	}
}

// String renders the square as its two-character board token
func (s Square) String() string {
	switch s.Kind {
	case KindWater:
		return "~~"
	case KindLand:
		return "__"
	case KindTown:
		if s.Defeated {
			return fmt.Sprintf("/%d", s.Player)
		}
		return fmt.Sprintf("#%d", s.Player)
	case KindDock:
		return fmt.Sprintf("|%d", s.Player)
	case KindOccupied:
		return fmt.Sprintf("%c%d", s.Tile, s.Player)
	case KindFog:
		return "??"
	default:
		return "!!"
	}
}

// ParseSquare parses a two-character board token
func ParseSquare(token string) (Square, error) {
	runes := []rune(token)
	if len(runes) != 2 {
		return Square{}, fmt.Errorf("square token %q: want 2 characters, got %d", token, len(runes))
	}
	switch {
	case token == "~~":
		return WaterSquare(), nil
	case token == "__":
		return LandSquare(), nil
	case token == "??":
		return FogSquare(), nil
	case runes[0] == '#' || runes[0] == '/' || runes[0] == '|':
		player := int(runes[1] - '0')
		if player < 0 || player > 9 {
			return Square{}, fmt.Errorf("square token %q: bad player digit", token)
		}
		switch runes[0] {
		case '#':
			return TownSquare(player), nil
		case '/':
			sq := TownSquare(player)
			sq.Defeated = true
			return sq, nil
		default:
			return DockSquare(player), nil
		}
	default:
		player := int(runes[1] - '0')
		if player < 0 || player > 9 {
			return Square{}, fmt.Errorf("square token %q: bad player digit", token)
		}
		tile := runes[0]
		if !strings.ContainsRune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ", tile) &&
			tile != WildcardRune && tile != ExplosiveRune {
			return Square{}, fmt.Errorf("square token %q: bad tile", token)
		}
		return OccupiedSquare(player, tile), nil
	}
}
