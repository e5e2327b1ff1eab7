package match

import (
	"context"
	"errors"
	"log/slog"

	"github.com/TruncateGame/Truncate-sub000/internal/dependencies/clock"
	"github.com/TruncateGame/Truncate-sub000/internal/dependencies/random"
	"github.com/TruncateGame/Truncate-sub000/internal/model"
	"github.com/TruncateGame/Truncate-sub000/internal/services/dictionary"
	"github.com/TruncateGame/Truncate-sub000/internal/services/npc"
	"github.com/TruncateGame/Truncate-sub000/internal/storage"
)

const matchIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ErrDictionaryNotLoaded is returned when a match is created or played
// before a dictionary has been loaded
var ErrDictionaryNotLoaded = errors.New("dictionary not loaded")

// ErrNoPlayers is returned when a match is created with an empty seat list
var ErrNoPlayers = errors.New("match needs at least one player")

// Controller manages persisted matches. A match is stored as its seed
// plus its packed move log, so every read rebuilds the live game by
// replaying the log against a seeded bag.
type Controller struct {
	storage      storage.Storage
	judge        model.Judge
	dictionaries *dictionary.Service
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger
}

// NewController creates a match controller
func NewController(
	storage storage.Storage,
	judge model.Judge,
	dictionaries *dictionary.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		judge:        judge,
		dictionaries: dictionaries,
		clock:        clock,
		random:       random,
		logger:       logger,
	}
}

// CreateMatch starts a new match and persists its record
func (c *Controller) CreateMatch(ctx context.Context, playerNames []string, boardLayout string, rules model.Rules) (*model.MatchRecord, *model.Game, error) {
	if len(playerNames) == 0 {
		return nil, nil, ErrNoPlayers
	}
	if !c.dictionaries.IsLoaded() {
		return nil, nil, ErrDictionaryNotLoaded
	}

	if _, err := model.ParseBoard(boardLayout); err != nil {
		return nil, nil, err
	}

	now := c.clock.Now()
	record := &model.MatchRecord{
		ID:          model.MatchID(c.random.String(12, matchIDAlphabet)),
		PlayerNames: playerNames,
		Seed:        c.newSeed(),
		BoardLayout: boardLayout,
		Rules:       rules,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	game, _, err := c.replay(record)
	if err != nil {
		return nil, nil, err
	}

	if err := c.storage.SaveMatch(ctx, record); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_id", string(record.ID)),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}

	c.logger.Info("match created",
		slog.String("match_id", string(record.ID)),
		slog.Int("player_count", len(playerNames)),
		slog.Uint64("seed", record.Seed),
	)

	return record, game, nil
}

// GetMatch retrieves a match record by ID
func (c *Controller) GetMatch(ctx context.Context, id model.MatchID) (*model.MatchRecord, error) {
	return c.storage.GetMatch(ctx, id)
}

// ListMatches lists the IDs of all persisted matches
func (c *Controller) ListMatches(ctx context.Context) ([]model.MatchID, error) {
	return c.storage.ListMatches(ctx)
}

// DeleteMatch removes a match record
func (c *Controller) DeleteMatch(ctx context.Context, id model.MatchID) error {
	return c.storage.DeleteMatch(ctx, id)
}

// ResumeMatch rebuilds the live game for a stored match by replaying
// its move log
func (c *Controller) ResumeMatch(ctx context.Context, id model.MatchID) (*model.MatchRecord, *model.Game, error) {
	record, err := c.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	game, _, err := c.replay(record)
	if err != nil {
		return nil, nil, err
	}
	return record, game, nil
}

// PlayTurn applies one move to a stored match, appending it to the
// move log on success. It returns the updated game and the winner if
// this move ended the match.
func (c *Controller) PlayTurn(ctx context.Context, id model.MatchID, move model.Move) (*model.Game, *int, error) {
	if !c.dictionaries.IsLoaded() {
		return nil, nil, ErrDictionaryNotLoaded
	}

	record, err := c.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	game, moves, err := c.replay(record)
	if err != nil {
		return nil, nil, err
	}

	dict := c.dictionaries.Dict()
	winner, err := game.PlayTurn(move, c.judge, dict, dict)
	if err != nil {
		return nil, nil, err
	}

	moves = append(moves, move)
	record.MoveLog = model.PackMoves(moves, len(record.PlayerNames))
	record.Winner = winner
	record.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveMatch(ctx, record); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_id", string(record.ID)),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}

	if winner != nil {
		c.logger.Info("match won",
			slog.String("match_id", string(record.ID)),
			slog.Int("winner", *winner),
			slog.Int("turns", game.TurnCount),
		)
	}

	return game, winner, nil
}

// PlayNpcTurn asks the strategy for a move on the stored match's
// current position and applies it
func (c *Controller) PlayNpcTurn(ctx context.Context, id model.MatchID, strategy npc.Strategy) (*model.Game, model.Move, *int, error) {
	_, game, err := c.ResumeMatch(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}

	move, err := strategy.ChooseMove(game)
	if err != nil {
		return nil, nil, nil, err
	}

	game, winner, err := c.PlayTurn(ctx, id, move)
	if err != nil {
		return nil, nil, nil, err
	}
	return game, move, winner, nil
}

// Snapshot returns the fog-filtered board and changes one player is
// allowed to see
func (c *Controller) Snapshot(ctx context.Context, id model.MatchID, player int) (*model.Board, []model.Change, error) {
	_, game, err := c.ResumeMatch(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return game.FilterToPlayer(player)
}

// replay builds the live game for a record by seeding the bag and
// reapplying the move log. The returned move slice is the decoded log,
// ready for appending.
func (c *Controller) replay(record *model.MatchRecord) (*model.Game, []model.Move, error) {
	board, err := model.ParseBoard(record.BoardLayout)
	if err != nil {
		return nil, nil, err
	}

	bag := model.NewTileBag(record.Rules.LetterDistribution, random.NewSeeded(record.Seed))
	game := model.NewGame(record.Rules, board, c.clock, bag)
	for _, name := range record.PlayerNames {
		game.AddPlayer(name)
	}
	game.Start()

	moves, err := model.UnpackMoves(record.MoveLog, len(record.PlayerNames))
	if err != nil {
		return nil, nil, err
	}

	dict := c.dictionaries.Dict()
	for _, move := range moves {
		if _, err := game.PlayTurn(move, c.judge, dict, dict); err != nil {
			return nil, nil, err
		}
	}
	return game, moves, nil
}

func (c *Controller) newSeed() uint64 {
	hi := uint64(c.random.Intn(1 << 31))
	lo := uint64(c.random.Intn(1 << 31))
	return hi<<31 | lo
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateMatch(ctx context.Context, playerNames []string, boardLayout string, rules model.Rules) (*model.MatchRecord, *model.Game, error)
	GetMatch(ctx context.Context, id model.MatchID) (*model.MatchRecord, error)
	ListMatches(ctx context.Context) ([]model.MatchID, error)
	DeleteMatch(ctx context.Context, id model.MatchID) error
	ResumeMatch(ctx context.Context, id model.MatchID) (*model.MatchRecord, *model.Game, error)
	PlayTurn(ctx context.Context, id model.MatchID, move model.Move) (*model.Game, *int, error)
	PlayNpcTurn(ctx context.Context, id model.MatchID, strategy npc.Strategy) (*model.Game, model.Move, *int, error)
	Snapshot(ctx context.Context, id model.MatchID, player int) (*model.Board, []model.Change, error)
}

var _ ControllerInterface = (*Controller)(nil)
