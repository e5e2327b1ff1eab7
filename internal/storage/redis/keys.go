package redis

import (
	"fmt"

	"github.com/TruncateGame/Truncate-sub000/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "truncate"

// matchKey returns the Redis key for a MatchRecord
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// matchIndexKey returns the Redis key for the SET of all match IDs
func matchIndexKey() string {
	return fmt.Sprintf("%s:idx:matches", keyPrefix)
}

// dictionaryKey returns the Redis key for the persisted word list
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}
