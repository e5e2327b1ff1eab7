package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/TruncateGame/Truncate-sub000/internal/factory"
	redisstorage "github.com/TruncateGame/Truncate-sub000/internal/storage/redis"
)

var (
	cfg *Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "truncate",
		Short: "CLI for the Truncate word-battle engine",
		Long: `truncate plays, stores and replays matches of the Truncate word-battle
game: place tiles to build words across the board, battle adjacent enemy
words, and truncate whatever gets cut off from its dock.

Matches persist as a seed plus a move log, so any match can be resumed
or replayed move by move.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
			if cfg.Verbose {
				logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				}))
			}

			factoryCfg := factory.Config{
				Logger:      logger,
				StorageType: cfg.StorageType,
			}
			if cfg.StorageType == factory.StorageTypeRedis {
				redisCfg := redisstorage.DefaultConfig()
				redisCfg.URL = cfg.RedisURL
				factoryCfg.RedisConfig = &redisCfg
			}

			var err error
			app, err = factory.New(factoryCfg)
			return err
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.DictionaryPath, "dictionary", cfg.DictionaryPath, "Dictionary file path (env: TRUNCATE_DICTIONARY)")
	rootCmd.PersistentFlags().StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Storage backend: memory, redis (env: TRUNCATE_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL (env: TRUNCATE_REDIS_URL)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newDictCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadDictionary loads the configured dictionary file into the app
func loadDictionary(cmd *cobra.Command) error {
	return app.DictionaryService.LoadFromFile(cmd.Context(), cfg.DictionaryPath)
}
