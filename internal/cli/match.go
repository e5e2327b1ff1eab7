package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TruncateGame/Truncate-sub000/internal/model"
)

func newMatchCmd() *cobra.Command {
	matchCmd := &cobra.Command{
		Use:   "match",
		Short: "Create, inspect and play stored matches",
	}

	matchCmd.AddCommand(newMatchCreateCmd())
	matchCmd.AddCommand(newMatchListCmd())
	matchCmd.AddCommand(newMatchShowCmd())
	matchCmd.AddCommand(newMatchDeleteCmd())
	matchCmd.AddCommand(newMatchPlaceCmd())
	matchCmd.AddCommand(newMatchSwapCmd())
	matchCmd.AddCommand(newMatchNpcCmd())

	return matchCmd
}

func newMatchCreateCmd() *cobra.Command {
	var boardFile string
	var players []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new match",
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

			record, game, err := app.MatchController.CreateMatch(cmd.Context(), players, layout, model.DefaultRules())
			if err != nil {
				out.PrintError(err)
				return err
			}

			out.PrintMessage(fmt.Sprintf("created match %s", record.ID))
			out.PrintGame(game)
			return nil
		},
	}

	cmd.Flags().StringVar(&boardFile, "board", "", "Board layout file (defaults to the standard board)")
	cmd.Flags().StringSliceVar(&players, "players", []string{"Player 1", "Player 2"}, "Player names in seat order")

	return cmd
}

func newMatchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored match IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			ids, err := app.MatchController.ListMatches(cmd.Context())
			if err != nil {
				out.PrintError(err)
				return err
			}
			if cfg.Output == "json" {
				out.PrintJSON(ids)
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

func newMatchShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <match-id>",
		Short: "Show the current position of a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			if err := loadDictionary(cmd); err != nil {
				out.PrintError(err)
				return err
			}

			_, game, err := app.MatchController.ResumeMatch(cmd.Context(), model.MatchID(args[0]))
			if err != nil {
				out.PrintError(err)
				return err
			}
			out.PrintGame(game)
			return nil
		},
	}
}

func newMatchDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <match-id>",
		Short: "Delete a stored match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			if err := app.MatchController.DeleteMatch(cmd.Context(), model.MatchID(args[0])); err != nil {
				out.PrintError(err)
				return err
			}
			out.PrintMessage("deleted")
			return nil
		},
	}
}

func newMatchPlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place <match-id> <tile> <x> <y>",
		Short: "Place a tile from the mover's hand",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			if err := loadDictionary(cmd); err != nil {
				out.PrintError(err)
				return err
			}

			id := model.MatchID(args[0])
			_, game, err := app.MatchController.ResumeMatch(cmd.Context(), id)
			if err != nil {
				out.PrintError(err)
				return err
			}

			move, err := parsePlace(game.NextPlayer, args[1:])
			if err != nil {
				out.PrintError(err)
				return err
			}

			game, _, err = app.MatchController.PlayTurn(cmd.Context(), id, move)
			if err != nil {
				out.PrintError(err)
				return err
			}
			out.PrintChanges(game.RecentChanges)
			out.PrintGame(game)
			return nil
		},
	}
}

func newMatchSwapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "swap <match-id> <x1> <y1> <x2> <y2>",
		Short: "Swap two of the mover's tiles",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			if err := loadDictionary(cmd); err != nil {
				out.PrintError(err)
				return err
			}

			id := model.MatchID(args[0])
			_, game, err := app.MatchController.ResumeMatch(cmd.Context(), id)
			if err != nil {
				out.PrintError(err)
				return err
			}

			move, err := parseSwap(game.NextPlayer, args[1:])
			if err != nil {
				out.PrintError(err)
				return err
			}

			game, _, err = app.MatchController.PlayTurn(cmd.Context(), id, move)
			if err != nil {
				out.PrintError(err)
				return err
			}
			out.PrintChanges(game.RecentChanges)
			out.PrintGame(game)
			return nil
		},
	}
}

func newMatchNpcCmd() *cobra.Command {
	var strategyName string

	cmd := &cobra.Command{
		Use:   "npc <match-id>",
		Short: "Let the NPC play the next turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			if err := loadDictionary(cmd); err != nil {
				out.PrintError(err)
				return err
			}

			strategy, err := strategyByName(strategyName)
			if err != nil {
				out.PrintError(err)
				return err
			}

			game, move, _, err := app.MatchController.PlayNpcTurn(cmd.Context(), model.MatchID(args[0]), strategy)
			if err != nil {
				out.PrintError(err)
				return err
			}
			out.PrintMessage(fmt.Sprintf("npc played %s", model.MoveLog([]model.Move{move})))
			out.PrintChanges(game.RecentChanges)
			out.PrintGame(game)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyName, "strategy", "minimax", "NPC strategy: minimax, random")

	return cmd
}

func parsePlace(player int, args []string) (model.Move, error) {
	tile := []rune(strings.ToLower(args[0]))
	if len(tile) != 1 {
		return nil, fmt.Errorf("tile must be a single character, got %q", args[0])
	}
	x, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("bad x coordinate %q", args[1])
	}
	y, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, fmt.Errorf("bad y coordinate %q", args[2])
	}
	return model.PlaceMove{
		Player:   player,
		Tile:     tile[0],
		Position: model.Coordinate{X: x, Y: y},
	}, nil
}

func parseSwap(player int, args []string) (model.Move, error) {
	coords := make([]int, 4)
	for i, arg := range args[:4] {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("bad coordinate %q", arg)
		}
		coords[i] = v
	}
	return model.SwapMove{
		Player: player,
		Positions: [2]model.Coordinate{
			{X: coords[0], Y: coords[1]},
			{X: coords[2], Y: coords[3]},
		},
	}, nil
}
