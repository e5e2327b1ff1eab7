package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/TruncateGame/Truncate-sub000/internal/model"
	"github.com/TruncateGame/Truncate-sub000/internal/storage"
)

// Dict is an immutable dictionary snapshot handed into judging calls.
// It is safe to share across concurrent search branches.
type Dict struct {
	name  string
	words map[string]model.WordData
}

// Ensure Dict satisfies the engine's dictionary contract
var _ model.Lookup = (*Dict)(nil)

// NewDict builds a dictionary from word metadata
func NewDict(name string, words map[string]model.WordData) *Dict {
	return &Dict{name: name, words: words}
}

// Lookup returns the metadata for a word, case-insensitively
func (d *Dict) Lookup(word string) (model.WordData, bool) {
	data, ok := d.words[strings.ToLower(word)]
	return data, ok
}

// Name identifies the dictionary snapshot
func (d *Dict) Name() string {
	return d.name
}

// Len returns the number of words
func (d *Dict) Len() int {
	return len(d.words)
}

// Service loads dictionaries from files or storage and hands out
// immutable snapshots
type Service struct {
	storage storage.Storage

	mu     sync.RWMutex
	dict   *Dict
	loaded bool
}

// New creates a dictionary Service
func New(store storage.Storage) *Service {
	return &Service{
		storage: store,
		dict:    NewDict("empty", nil),
	}
}

// LoadFromStorage loads the persisted word list
func (s *Service) LoadFromStorage(ctx context.Context) error {
	lines, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	return s.loadLines("storage", lines)
}

// LoadFromFile loads a dictionary file and persists it to storage for
// future runs. Each line is a word optionally followed by extension
// count, relative frequency and an objectionable flag, whitespace
// separated.
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := s.storage.SaveDictionaryWords(ctx, lines); err != nil {
		return err
	}

	name := strings.TrimSuffix(path[strings.LastIndex(path, "/")+1:], ".txt")
	return s.loadLines(name, lines)
}

// LoadWords loads a plain word list with zeroed metadata (useful for tests)
func (s *Service) LoadWords(words []string) error {
	return s.loadLines("wordlist", words)
}

func (s *Service) loadLines(name string, lines []string) error {
	words := make(map[string]model.WordData, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		word := strings.ToLower(fields[0])
		var data model.WordData
		if len(fields) > 1 {
			ext, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				return fmt.Errorf("dictionary entry %q: bad extension count: %w", line, err)
			}
			data.Extensions = uint32(ext)
		}
		if len(fields) > 2 {
			freq, err := strconv.ParseFloat(fields[2], 32)
			if err != nil {
				return fmt.Errorf("dictionary entry %q: bad frequency: %w", line, err)
			}
			data.RelFreq = float32(freq)
		}
		if len(fields) > 3 {
			data.Objectionable = fields[3] == "1" || strings.EqualFold(fields[3], "true")
		}
		words[word] = data
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dict = NewDict(name, words)
	s.loaded = true
	return nil
}

// Dict returns the current dictionary snapshot
func (s *Service) Dict() *Dict {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dict
}

// IsLoaded reports whether a dictionary has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of loaded words
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dict.Len()
}
