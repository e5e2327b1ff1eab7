package cli

import "os"

// DefaultBoardLayout is the board used when no layout file is given:
// two docked sides, two towns each, open land between.
const DefaultBoardLayout = `~~ ~~ ~~ ~~ |0 ~~ ~~ ~~ ~~
~~ __ __ #0 __ #0 __ __ ~~
~~ __ __ __ __ __ __ __ ~~
__ __ __ __ __ __ __ __ __
__ __ __ __ __ __ __ __ __
__ __ __ __ __ __ __ __ __
__ __ __ __ __ __ __ __ __
~~ __ __ __ __ __ __ __ ~~
~~ __ __ #1 __ #1 __ __ ~~
~~ ~~ ~~ ~~ |1 ~~ ~~ ~~ ~~`

// Config holds CLI configuration
type Config struct {
	DictionaryPath string
	StorageType    string
	RedisURL       string
	Output         string
	Verbose        bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		DictionaryPath: getEnvOrDefault("TRUNCATE_DICTIONARY", "data/words.txt"),
		StorageType:    getEnvOrDefault("TRUNCATE_STORAGE", "memory"),
		RedisURL:       os.Getenv("TRUNCATE_REDIS_URL"),
		Output:         "text",
		Verbose:        false,
	}
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
