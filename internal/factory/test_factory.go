package factory

import (
	"time"

	"github.com/TruncateGame/Truncate-sub000/internal/dependencies/mocks"
	"github.com/TruncateGame/Truncate-sub000/internal/services/npc"
	"github.com/TruncateGame/Truncate-sub000/internal/storage/memory"
	"github.com/TruncateGame/Truncate-sub000/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, npc.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestDictionary loads a small dictionary for testing
func (t *TestApp) LoadTestDictionary() error {
	words := []string{
		// 2-letter words
		"at", "be", "do", "go", "he", "if", "in", "is", "it", "me",
		"my", "no", "of", "on", "or", "so", "to", "up", "us", "we",
		// 3-letter words
		"ant", "bat", "cat", "cot", "dog", "eat", "fog", "gat", "hat",
		"oat", "rat", "tan", "tap", "tat", "ten", "tin", "ton", "top",
		// longer words
		"atom", "goat", "moat", "stat", "toast", "stoat",
	}
	return t.DictionaryService.LoadWords(words)
}
