package storage

import (
	"context"

	"github.com/TruncateGame/Truncate-sub000/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Match operations
	SaveMatch(ctx context.Context, record *model.MatchRecord) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.MatchRecord, error)
	ListMatches(ctx context.Context) ([]model.MatchID, error)
	DeleteMatch(ctx context.Context, id model.MatchID) error

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}
