package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TruncateGame/Truncate-sub000/internal/model"
	"github.com/TruncateGame/Truncate-sub000/internal/services/npc"
)

func newPlayCmd() *cobra.Command {
	var boardFile string
	var playerName string
	var strategyName string
	var depth int

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play an interactive match against the NPC",
		Long: `play starts a match with you in seat 0 and the NPC in seat 1.

On your turn, enter one of:
  place <tile> <x> <y>   place a tile from your hand
  swap <x1> <y1> <x2> <y2>   swap two of your tiles
  board                  reprint the board
  quit                   abandon the match`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			if err := loadDictionary(cmd); err != nil {
				out.PrintError(err)
				return err
			}

			layout := DefaultBoardLayout
			if boardFile != "" {
				data, err := os.ReadFile(boardFile)
				if err != nil {
					out.PrintError(err)
					return err
				}
				layout = string(data)
			}

			if depth > 0 {
				app.NpcConfig.Depth = depth
			}
			strategy, err := strategyByName(strategyName)
			if err != nil {
				out.PrintError(err)
				return err
			}

			record, game, err := app.MatchController.CreateMatch(cmd.Context(), []string{playerName, "NPC"}, layout, model.DefaultRules())
			if err != nil {
				out.PrintError(err)
				return err
			}

			return runInteractiveMatch(cmd, out, record.ID, game, strategy)
		},
	}

	cmd.Flags().StringVar(&boardFile, "board", "", "Board layout file (defaults to the standard board)")
	cmd.Flags().StringVar(&playerName, "name", "You", "Your display name")
	cmd.Flags().StringVar(&strategyName, "strategy", "minimax", "NPC strategy: minimax, random")
	cmd.Flags().IntVar(&depth, "depth", 0, "Search depth override (0 uses the default)")

	return cmd
}

func runInteractiveMatch(cmd *cobra.Command, out *Output, id model.MatchID, game *model.Game, strategy npc.Strategy) error {
	scanner := bufio.NewScanner(os.Stdin)
	out.PrintGame(game)

	for game.Winner == nil {
		if game.NextPlayer == 0 {
			updated, quit, err := promptHumanMove(cmd, out, scanner, id, game)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			game = updated
		} else {
			updated, move, _, err := app.MatchController.PlayNpcTurn(cmd.Context(), id, strategy)
			if err != nil {
				out.PrintError(err)
				return err
			}
			out.PrintMessage(fmt.Sprintf("npc played %s", model.MoveLog([]model.Move{move})))
			out.PrintChanges(updated.RecentChanges)
			game = updated
		}
		out.PrintGame(game)
	}

	return nil
}

// promptHumanMove reads commands until one applies a legal move. It
// reports quit=true if the player abandoned the match or input ended.
func promptHumanMove(cmd *cobra.Command, out *Output, scanner *bufio.Scanner, id model.MatchID, game *model.Game) (*model.Game, bool, error) {
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return nil, true, scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var move model.Move
		var err error
		switch fields[0] {
		case "quit":
			return nil, true, nil
		case "board":
			out.PrintGame(game)
			continue
		case "place":
			if len(fields) != 4 {
				out.PrintMessage("usage: place <tile> <x> <y>")
				continue
			}
			move, err = parsePlace(game.NextPlayer, fields[1:])
		case "swap":
			if len(fields) != 5 {
				out.PrintMessage("usage: swap <x1> <y1> <x2> <y2>")
				continue
			}
			move, err = parseSwap(game.NextPlayer, fields[1:])
		default:
			out.PrintMessage("commands: place, swap, board, quit")
			continue
		}
		if err != nil {
			out.PrintError(err)
			continue
		}

		updated, _, err := app.MatchController.PlayTurn(cmd.Context(), id, move)
		if err != nil {
			// Illegal moves leave the game untouched; let the player retry
			out.PrintError(err)
			continue
		}
		out.PrintChanges(updated.RecentChanges)
		return updated, false, nil
	}
}

func strategyByName(name string) (npc.Strategy, error) {
	switch name {
	case "minimax":
		return app.MinimaxStrategy(), nil
	case "random":
		return app.RandomStrategy(), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q: want minimax or random", name)
	}
}
