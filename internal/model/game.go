package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/TruncateGame/Truncate-sub000/internal/dependencies/clock"
)

// Game is the single source of truth for one match: the board, the
// players, the bag and the turn sequencing around them. It is a plain
// owned value graph with no internal locking; the minimax search clones
// whole games freely and mutates its clones in isolation.
type Game struct {
	Rules         Rules
	Players       []*Player
	Board         *Board
	Bag           *TileBag
	RecentChanges []Change
	NextPlayer    int
	Winner        *int
	StartedAt     *time.Time
	TurnCount     int

	clock clock.Clock
}

// NewGame creates a game over the given board. Players are added
// afterwards and the game begins when Start is called.
func NewGame(rules Rules, board *Board, clk clock.Clock, bag *TileBag) *Game {
	return &Game{
		Rules: rules,
		Board: board,
		Bag:   bag,
		clock: clk,
	}
}

// AddPlayer draws a fresh hand from the bag and seats the player
func (g *Game) AddPlayer(name string) *Player {
	player := NewPlayer(name, len(g.Players), g.Bag, g.Rules.HandSize, g.Rules.AllottedTime)
	g.Players = append(g.Players, player)
	return player
}

// Start records the start time and arms the first player's clock
func (g *Game) Start() {
	now := g.clock.Now()
	g.StartedAt = &now
	if len(g.Players) > 0 {
		g.Players[g.NextPlayer].StartTurn(now)
	}
	g.recordVisibility()
}

// Started reports whether Start has been called
func (g *Game) Started() bool {
	return g.StartedAt != nil
}

// PlayTurn validates and applies one move. On success it returns the
// winner if this move won the game. On failure the returned error
// describes why and the game (board, hands, clocks, turn index) is
// left exactly as it was.
func (g *Game) PlayTurn(move Move, judge Judge, attackerDict, defenderDict Lookup) (*int, error) {
	if g.Winner != nil {
		return nil, ErrGameOver
	}
	player := move.MovePlayer()
	if player < 0 || player >= len(g.Players) {
		return nil, fmt.Errorf("%w: %d", ErrNonExistentPlayer, player)
	}
	if player != g.NextPlayer {
		return nil, fmt.Errorf("%w: player %d moved on player %d's turn", ErrWrongPlayer, player, g.NextPlayer)
	}
	if g.StartedAt == nil || g.Players[player].TurnStartsAt == nil {
		return nil, ErrNotStarted
	}

	changes, err := g.makeMove(move, judge, attackerDict, defenderDict)
	if err != nil {
		return nil, err
	}
	g.TurnCount++

	if winner := judge.Winner(g); winner != nil {
		// The game freezes at the winning move: no turn advance, no
		// clock deduction
		g.Winner = winner
		g.RecentChanges = changes
		g.recordVisibility()
		return winner, nil
	}

	now := g.clock.Now()
	mover := g.Players[player]
	mover.EndTurn(now)
	changes = append(changes, g.applyTimePenalties(mover)...)

	g.NextPlayer = (player + 1) % len(g.Players)
	g.Players[g.NextPlayer].StartTurn(now)
	g.RecentChanges = changes
	g.recordVisibility()
	return nil, nil
}

// makeMove performs the board and hand mutations for a move. All
// user-triggerable failures are detected before the first mutation.
func (g *Game) makeMove(move Move, judge Judge, attackerDict, defenderDict Lookup) ([]Change, error) {
	switch m := move.(type) {
	case PlaceMove:
		return g.makePlace(m, judge, attackerDict, defenderDict)
	case SwapMove:
		return g.makeSwap(m, judge, attackerDict)
	default:
		panic(fmt.Sprintf("unknown move type %T", move))
	}
}

func (g *Game) makePlace(m PlaceMove, judge Judge, attackerDict, defenderDict Lookup) ([]Change, error) {
	player := g.Players[m.Player]
	if !player.Hand.Has(m.Tile) {
		return nil, fmt.Errorf("%w: %c", ErrPlayerDoesNotHaveTile, m.Tile)
	}
	if err := g.Board.PlaceTile(m.Position, m.Player, m.Tile); err != nil {
		return nil, err
	}

	player.Hand.Remove(m.Tile)
	player.HasPlaced = true
	changes := []Change{
		BoardChanged(g.Board.mustGet(m.Position), m.Position, ActionAdded),
	}

	attackers, defenders := g.Board.CollectCombatants(m.Position, m.Player)
	if len(attackers) > 0 && len(defenders) > 0 {
		attackerWords, err := g.Board.WordStrings(attackers)
		if err != nil {
			panic(fmt.Sprintf("attacker word just found must still be readable: %v", err))
		}
		defenderWords, err := g.Board.WordStrings(defenders)
		if err != nil {
			panic(fmt.Sprintf("defender word just found must still be readable: %v", err))
		}

		report := judge.Battle(attackerWords, defenderWords, g.Rules.Battle, g.Rules.WinCondition, attackerDict, defenderDict)
		if report != nil {
			changes = append(changes, g.applyBattle(*report, attackers, defenders, m)...)
		}
	}

	if g.Rules.Truncation == TruncateRoot {
		changes = append(changes, g.Board.Truncate(g.Bag)...)
	}

	drawn := player.RefillHand(g.Bag)
	changes = append(changes, HandChanged(m.Player, []rune{m.Tile}, drawn))

	g.updateValidity(judge, attackerDict)
	return changes, nil
}

// applyBattle mutates the board according to a battle outcome and
// returns the change records, battle report included
func (g *Game) applyBattle(report BattleReport, attackers, defenders [][]Coordinate, m PlaceMove) []Change {
	changes := []Change{BattleFought(report)}

	switch report.Outcome {
	case OutcomeDefenderWins:
		// The attack failed: every tile of every attacking word is lost
		for _, word := range attackers {
			for _, c := range word {
				sq, err := g.Board.ClearSquare(c)
				if err != nil {
					continue
				}
				g.Bag.ReturnTile(sq.Tile)
				changes = append(changes, BoardChanged(sq, c, ActionDefeated))
			}
		}

	case OutcomeAttackerWins:
		for _, loser := range report.Losers {
			for _, c := range defenders[loser] {
				sq := g.Board.mustGet(c)
				if sq.Kind == KindTown {
					g.Board.Squares[c.Y][c.X].Defeated = true
					changes = append(changes, BoardChanged(sq, c, ActionDefeated))
					continue
				}
				cleared, err := g.Board.ClearSquare(c)
				if err != nil {
					continue
				}
				g.Bag.ReturnTile(cleared.Tile)
				changes = append(changes, BoardChanged(cleared, c, ActionDefeated))
			}
		}

		// An explosive tile in a winning attack also destroys the
		// opposing tiles directly adjacent to the attack point
		if battleWordsContain(report.Attackers, ExplosiveRune) {
			for _, n := range g.Board.neighbors4In(m.Position) {
				sq := g.Board.mustGet(n)
				if sq.Kind != KindOccupied || sq.Player == m.Player {
					continue
				}
				cleared, err := g.Board.ClearSquare(n)
				if err != nil {
					continue
				}
				g.Bag.ReturnTile(cleared.Tile)
				changes = append(changes, BoardChanged(cleared, n, ActionExploded))
			}
		}

		for _, word := range attackers {
			for _, c := range word {
				if sq := g.Board.mustGet(c); sq.Kind == KindOccupied {
					changes = append(changes, BoardChanged(sq, c, ActionVictorious))
				}
			}
		}
	}
	return changes
}

// battleWordsContain reports whether any word on one side of a battle
// carries the given rune
func battleWordsContain(words []BattleWord, r rune) bool {
	for _, w := range words {
		if strings.ContainsRune(w.Original, r) {
			return true
		}
	}
	return false
}

func (g *Game) makeSwap(m SwapMove, judge Judge, dict Lookup) ([]Change, error) {
	player := g.Players[m.Player]
	if err := g.Rules.Swapping.Allows(player.SwapCount); err != nil {
		return nil, err
	}
	if err := g.Board.SwapTiles(m.Positions[0], m.Positions[1], m.Player, g.Rules.Swapping); err != nil {
		return nil, err
	}
	player.SwapCount++

	changes := []Change{
		BoardChanged(g.Board.mustGet(m.Positions[0]), m.Positions[0], ActionSwapped),
		BoardChanged(g.Board.mustGet(m.Positions[1]), m.Positions[1], ActionSwapped),
	}
	g.updateValidity(judge, dict)
	return changes, nil
}

// applyTimePenalties hands out penalty tiles when a player's clock has
// gone negative. Penalty units are whole minutes of overdraft and are
// monotonic: only units incurred since the last check are applied.
func (g *Game) applyTimePenalties(mover *Player) []Change {
	if g.Rules.AllottedTime <= 0 || mover.TimeRemaining >= 0 {
		return nil
	}
	units := 1 + int(-mover.TimeRemaining/time.Minute)
	delta := units - mover.PenaltiesIncurred
	if delta <= 0 {
		return nil
	}
	mover.PenaltiesIncurred = units

	changes := []Change{TimePenalized(mover.Index, delta, mover.TimeRemaining)}
	for _, other := range g.Players {
		if other.Index == mover.Index {
			continue
		}
		var added []rune
		for range delta {
			other.Hand.Add(WildcardRune)
			added = append(added, WildcardRune)
		}
		changes = append(changes, HandChanged(other.Index, nil, added))
	}
	return changes
}

// updateValidity recomputes the cached word-validity flag on every
// occupied square. The flag is purely presentational; it must track the
// words a tile currently participates in, not the words it was played
// into.
func (g *Game) updateValidity(judge Judge, dict Lookup) {
	for y, row := range g.Board.Squares {
		for x, sq := range row {
			if sq.Kind != KindOccupied {
				continue
			}
			c := Coordinate{X: x, Y: y}
			valid, invalid := 0, 0
			for _, word := range g.Board.GetWords(c) {
				s, err := g.Board.WordString(word)
				if err != nil {
					continue
				}
				if _, ok := judge.ValidWord(s, dict); ok {
					valid++
				} else {
					invalid++
				}
			}
			switch {
			case valid > 0 && invalid > 0:
				g.Board.Squares[y][x].Validity = ValidityPartial
			case valid > 0:
				g.Board.Squares[y][x].Validity = ValidityValid
			case invalid > 0:
				g.Board.Squares[y][x].Validity = ValidityInvalid
			default:
				g.Board.Squares[y][x].Validity = ValidityUnknown
			}
		}
	}
}

// recordVisibility accumulates what each player can currently see into
// their seen-tiles set. Only the fog modes need the history.
func (g *Game) recordVisibility() {
	if g.Rules.Visibility == VisibilityStandard {
		return
	}
	for _, player := range g.Players {
		for c := range g.Board.VisibleCoords(player.Index) {
			player.SeenTiles[c] = true
		}
	}
}

// FilterToPlayer produces the redacted board and change list a fogged
// player is allowed to see. The true board never reaches a fogged
// player; coordinates in the returned changes are remapped into the
// player's trimmed coordinate space.
func (g *Game) FilterToPlayer(player int) (*Board, []Change, error) {
	if player < 0 || player >= len(g.Players) {
		return nil, nil, fmt.Errorf("%w: %d", ErrNonExistentPlayer, player)
	}
	seen := g.Players[player].SeenTiles
	visibility := g.Rules.Visibility

	board := g.Board.FogAndTrim(player, visibility, seen)
	if visibility == VisibilityStandard {
		return board, g.RecentChanges, nil
	}

	visible := g.Board.VisibleCoords(player)
	for c := range seen {
		visible[c] = true
	}

	var changes []Change
	for _, change := range g.RecentChanges {
		switch {
		case change.Board != nil:
			if !visible[change.Board.Coordinate] {
				continue
			}
			remapped := *change.Board
			remapped.Coordinate = g.Board.MapGameCoordToPlayer(change.Board.Coordinate, player, visibility, seen)
			changes = append(changes, Change{Board: &remapped})
		case change.Hand != nil:
			if change.Hand.Player != player {
				continue
			}
			changes = append(changes, change)
		default:
			changes = append(changes, change)
		}
	}
	return board, changes, nil
}

// Clone deep-copies the game for search simulation. The clone shares
// the clock and the bag's random source but no mutable state.
func (g *Game) Clone() *Game {
	players := make([]*Player, len(g.Players))
	for i, p := range g.Players {
		players[i] = p.Clone()
	}
	clone := &Game{
		Rules:      g.Rules,
		Players:    players,
		Board:      g.Board.Clone(),
		Bag:        g.Bag.Clone(),
		NextPlayer: g.NextPlayer,
		TurnCount:  g.TurnCount,
		clock:      g.clock,
	}
	if g.Winner != nil {
		w := *g.Winner
		clone.Winner = &w
	}
	if g.StartedAt != nil {
		t := *g.StartedAt
		clone.StartedAt = &t
	}
	clone.RecentChanges = append([]Change(nil), g.RecentChanges...)
	return clone
}

// MoveLog renders a move sequence for logging
func MoveLog(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = fmt.Sprint(m)
	}
	return strings.Join(parts, "; ")
}
