package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/TruncateGame/Truncate-sub000/internal/dependencies/clock"
	"github.com/TruncateGame/Truncate-sub000/internal/dependencies/random"
	"github.com/TruncateGame/Truncate-sub000/internal/services/dictionary"
	"github.com/TruncateGame/Truncate-sub000/internal/services/judge"
	"github.com/TruncateGame/Truncate-sub000/internal/services/match"
	"github.com/TruncateGame/Truncate-sub000/internal/services/npc"
	"github.com/TruncateGame/Truncate-sub000/internal/storage"
	"github.com/TruncateGame/Truncate-sub000/internal/storage/memory"
	redisstorage "github.com/TruncateGame/Truncate-sub000/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService *dictionary.Service
	Judge             *judge.Service
	MatchController   *match.Controller

	// NPC configuration used when building strategies
	NpcConfig npc.Config

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// DictionaryPath is the path to the dictionary file (optional)
	// If empty, dictionary must be loaded manually
	DictionaryPath string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// NpcConfig tunes the adversarial search (optional)
	// If zero value, defaults to npc.DefaultConfig()
	NpcConfig npc.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	npcCfg := cfg.NpcConfig
	if npcCfg.Depth == 0 {
		npcCfg = npc.DefaultConfig()
	}

	app := newWithDependencies(store, clock.New(), random.New(), npcCfg, logger)

	if cfg.DictionaryPath != "" {
		ctx := context.Background()
		if err := app.DictionaryService.LoadFromFile(ctx, cfg.DictionaryPath); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, npcCfg npc.Config, logger *slog.Logger) *App {
	dictService := dictionary.New(store)
	judgeService := judge.New()
	matchController := match.NewController(store, judgeService, dictService, clk, rnd, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DictionaryService: dictService,
		Judge:             judgeService,
		MatchController:   matchController,
		NpcConfig:         npcCfg,
		logger:            logger,
	}
}

// MinimaxStrategy builds a search strategy over the loaded dictionary
func (a *App) MinimaxStrategy() *npc.MinimaxStrategy {
	return npc.NewMinimaxStrategy(a.Judge, a.DictionaryService.Dict(), a.NpcConfig, a.logger)
}

// RandomStrategy builds the baseline random strategy
func (a *App) RandomStrategy() *npc.RandomStrategy {
	return npc.NewRandomStrategy(a.Random)
}
