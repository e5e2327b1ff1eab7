package model

// WordData is the dictionary metadata for one word
type WordData struct {
	// Extensions is how many longer words this word can grow into
	Extensions uint32
	// RelFreq is the word's relative frequency in the source corpus
	RelFreq float32
	// Objectionable marks words filtered out of polite play
	Objectionable bool
}

// Lookup is a read-only dictionary handle. Attacker and defender may
// legitimately consult different dictionaries in the same battle, so a
// handle is passed into every judging call rather than held globally.
type Lookup interface {
	// Lookup returns the metadata for a lowercase word
	Lookup(word string) (WordData, bool)
	// Name identifies the dictionary, e.g. for caching keyed per-dictionary
	Name() string
}

// Judge resolves word validity, battles and the win condition. The
// game invokes it after every move; implementations live outside the
// model so the dictionary machinery stays injectable.
type Judge interface {
	// ValidWord resolves a word (possibly containing wildcard, alias or
	// special runes) to its canonical uppercase form, or "" and false
	// when no resolution is valid
	ValidWord(word string, dict Lookup) (string, bool)

	// Battle resolves attacker words against defender words, or returns
	// nil when either side is empty
	Battle(attackers, defenders []string, rules BattleRules, win WinCondition, attackerDict, defenderDict Lookup) *BattleReport

	// Winner returns the index of the winning player, if the game has
	// been won
	Winner(game *Game) *int
}
