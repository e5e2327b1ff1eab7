package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TruncateGame/Truncate-sub000/internal/dependencies/random"
	"github.com/TruncateGame/Truncate-sub000/internal/model"
)

func newReplayCmd() *cobra.Command {
	var showChanges bool

	cmd := &cobra.Command{
		Use:   "replay <match-id>",
		Short: "Replay a stored match move by move",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			if err := loadDictionary(cmd); err != nil {
				out.PrintError(err)
				return err
			}

			record, err := app.MatchController.GetMatch(cmd.Context(), model.MatchID(args[0]))
			if err != nil {
				out.PrintError(err)
				return err
			}

			if err := replayRecord(out, record, showChanges); err != nil {
				out.PrintError(err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showChanges, "changes", true, "Print the change log for each move")

	return cmd
}

// replayRecord rebuilds the match from its seed and walks the move log,
// printing the position after each move
func replayRecord(out *Output, record *model.MatchRecord, showChanges bool) error {
	board, err := model.ParseBoard(record.BoardLayout)
	if err != nil {
		return err
	}

	bag := model.NewTileBag(record.Rules.LetterDistribution, random.NewSeeded(record.Seed))
	game := model.NewGame(record.Rules, board, app.Clock, bag)
	for _, name := range record.PlayerNames {
		game.AddPlayer(name)
	}
	game.Start()

	moves, err := model.UnpackMoves(record.MoveLog, len(record.PlayerNames))
	if err != nil {
		return err
	}

	dict := app.DictionaryService.Dict()
	out.PrintMessage(fmt.Sprintf("match %s: %d moves", record.ID, len(moves)))
	out.PrintGame(game)

	for i, move := range moves {
		if _, err := game.PlayTurn(move, app.Judge, dict, dict); err != nil {
			return fmt.Errorf("move %d (%s): %w", i+1, model.MoveLog([]model.Move{move}), err)
		}
		out.PrintMessage(fmt.Sprintf("move %d: %s", i+1, model.MoveLog([]model.Move{move})))
		if showChanges {
			out.PrintChanges(game.RecentChanges)
		}
		out.PrintGame(game)
	}

	return nil
}
