package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/TruncateGame/Truncate-sub000/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

// PrintJSON outputs data as indented JSON
func (o *Output) PrintJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

// PrintGame renders a game position: the board grid, whose turn it is,
// and the mover's hand
func (o *Output) PrintGame(game *model.Game) {
	if o.format == "json" {
		o.PrintJSON(newGameView(game))
		return
	}

	fmt.Println(boardWithAxes(game.Board))
	if game.Winner != nil {
		fmt.Printf("Winner: %s (player %d) after %d turns\n",
			game.Players[*game.Winner].Name, *game.Winner, game.TurnCount)
		return
	}
	mover := game.Players[game.NextPlayer]
	fmt.Printf("Turn %d: %s (player %d) to move\n", game.TurnCount+1, mover.Name, game.NextPlayer)
	fmt.Printf("Hand: %s\n", mover.Hand.String())
}

// PrintChanges renders the change log of the last applied move
func (o *Output) PrintChanges(changes []model.Change) {
	if o.format == "json" {
		o.PrintJSON(changes)
		return
	}
	for _, change := range changes {
		switch {
		case change.Board != nil:
			fmt.Printf("  %s at (%d,%d): %s\n",
				actionName(change.Board.Action),
				change.Board.Coordinate.X, change.Board.Coordinate.Y,
				change.Board.Square)
		case change.Battle != nil:
			o.printBattle(change.Battle)
		case change.Hand != nil:
			if len(change.Hand.Added) > 0 {
				fmt.Printf("  player %d drew %s\n", change.Hand.Player, string(change.Hand.Added))
			}
		case change.Time != nil:
			fmt.Printf("  player %d incurred %d time penalties\n",
				change.Time.Player, change.Time.Penalties)
		}
	}
}

func (o *Output) printBattle(battle *model.BattleReport) {
	attackers := make([]string, 0, len(battle.Attackers))
	for _, w := range battle.Attackers {
		attackers = append(attackers, battleWordLabel(w))
	}
	defenders := make([]string, 0, len(battle.Defenders))
	for _, w := range battle.Defenders {
		defenders = append(defenders, battleWordLabel(w))
	}
	outcome := "defender holds"
	if battle.Outcome == model.OutcomeAttackerWins {
		outcome = "attacker wins"
	}
	fmt.Printf("  battle: %s vs %s: %s\n",
		strings.Join(attackers, "+"), strings.Join(defenders, "+"), outcome)
}

func battleWordLabel(w model.BattleWord) string {
	if w.Valid {
		return w.Resolved
	}
	return w.Original + "(x)"
}

func actionName(action model.BoardChangeAction) string {
	switch action {
	case model.ActionAdded:
		return "placed"
	case model.ActionSwapped:
		return "swapped"
	case model.ActionDefeated:
		return "defeated"
	case model.ActionTruncated:
		return "truncated"
	case model.ActionExploded:
		return "exploded"
	case model.ActionVictorious:
		return "victorious"
	default:
		return "changed"
	}
}

// boardWithAxes renders the board grid with coordinate gutters
func boardWithAxes(board *model.Board) string {
	var sb strings.Builder
	sb.WriteString("    ")
	for x := 0; x < board.Width(); x++ {
		fmt.Fprintf(&sb, "%2d ", x)
	}
	sb.WriteByte('\n')
	for y := 0; y < board.Height(); y++ {
		fmt.Fprintf(&sb, "%2d  ", y)
		for x := 0; x < board.Width(); x++ {
			square, _ := board.Get(model.Coordinate{X: x, Y: y})
			sb.WriteString(square.String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// gameView is the JSON shape of a game position
type gameView struct {
	Board      string   `json:"board"`
	NextPlayer int      `json:"next_player"`
	TurnCount  int      `json:"turn_count"`
	Winner     *int     `json:"winner,omitempty"`
	Players    []string `json:"players"`
	Hand       string   `json:"hand,omitempty"`
}

func newGameView(game *model.Game) gameView {
	names := make([]string, 0, len(game.Players))
	for _, p := range game.Players {
		names = append(names, p.Name)
	}
	view := gameView{
		Board:      game.Board.String(),
		NextPlayer: game.NextPlayer,
		TurnCount:  game.TurnCount,
		Winner:     game.Winner,
		Players:    names,
	}
	if game.Winner == nil && game.NextPlayer < len(game.Players) {
		view.Hand = game.Players[game.NextPlayer].Hand.String()
	}
	return view
}
