package judge

import (
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/TruncateGame/Truncate-sub000/internal/model"
)

// resolutionCacheSize bounds the word-resolution cache. Wildcard words
// fan out to 26 lookups per wildcard, and the search replays the same
// positions constantly, so the cache earns its keep quickly.
const resolutionCacheSize = 16384

type cacheEntry struct {
	resolved string
	ok       bool
}

// Service judges word validity, battles and the win condition. It is
// stateless apart from its resolution cache and alias table, so one
// instance serves a whole process; WithAliases derives per-search
// variants without copying the cache.
type Service struct {
	cache   *lru.Cache[string, cacheEntry]
	aliases map[rune][]rune
}

// Ensure Service implements the engine's judge contract
var _ model.Judge = (*Service)(nil)

// New creates a judge Service
func New() *Service {
	cache, err := lru.New[string, cacheEntry](resolutionCacheSize)
	if err != nil {
		panic(err)
	}
	return &Service{cache: cache}
}

// WithAliases returns a judge that additionally resolves each alias
// rune as any one of its letters. The returned judge shares the
// resolution cache; alias-bearing words are never cached because their
// meaning depends on the alias table.
func (s *Service) WithAliases(aliases map[rune][]rune) *Service {
	merged := make(map[rune][]rune, len(s.aliases)+len(aliases))
	for r, letters := range s.aliases {
		merged[r] = letters
	}
	for r, letters := range aliases {
		merged[r] = letters
	}
	return &Service{cache: s.cache, aliases: merged}
}

// ValidWord resolves a word to its canonical uppercase form, or returns
// false when no resolution is in the dictionary.
//
// Resolution order: an all-wildcard word is valid as-is; a word
// carrying a town or explosive marker is valid per the win-condition
// rules rather than the dictionary; alias runes try each of their
// letters, consuming each letter at most once within the word; a
// wildcard tries all twenty-six letters; anything else is a plain
// case-insensitive lookup.
func (s *Service) ValidWord(word string, dict model.Lookup) (string, bool) {
	if word == "" {
		return "", false
	}
	if isAllWildcards(word) {
		return strings.ToUpper(word), true
	}
	if strings.ContainsRune(word, model.TownRune) || strings.ContainsRune(word, model.ExplosiveRune) {
		return strings.ToUpper(word), true
	}

	cacheable := !s.containsAlias(word)
	var key string
	if cacheable {
		key = dict.Name() + "\x00" + word
		if entry, ok := s.cache.Get(key); ok {
			return entry.resolved, entry.ok
		}
	}

	resolved, ok := s.resolve([]rune(strings.ToLower(word)), 0, dict, make(map[rune]map[rune]bool))
	if cacheable {
		s.cache.Add(key, cacheEntry{resolved: resolved, ok: ok})
	}
	return resolved, ok
}

// resolve substitutes special runes left to right. consumed tracks, per
// alias rune, which of its letters this word has already spent.
func (s *Service) resolve(word []rune, from int, dict model.Lookup, consumed map[rune]map[rune]bool) (string, bool) {
	for i := from; i < len(word); i++ {
		r := word[i]
		if letters, isAlias := s.aliases[r]; isAlias {
			used := consumed[r]
			if used == nil {
				used = make(map[rune]bool)
				consumed[r] = used
			}
			for _, letter := range letters {
				if used[letter] {
					continue
				}
				used[letter] = true
				word[i] = letter
				if resolved, ok := s.resolve(word, i+1, dict, consumed); ok {
					word[i] = r
					used[letter] = false
					return resolved, true
				}
				used[letter] = false
			}
			word[i] = r
			return "", false
		}
		if r == model.WildcardRune {
			for letter := 'a'; letter <= 'z'; letter++ {
				word[i] = letter
				if resolved, ok := s.resolve(word, i+1, dict, consumed); ok {
					word[i] = model.WildcardRune
					return resolved, true
				}
			}
			word[i] = model.WildcardRune
			return "", false
		}
	}

	candidate := string(word)
	if _, ok := dict.Lookup(candidate); !ok {
		return "", false
	}
	return strings.ToUpper(candidate), true
}

func (s *Service) containsAlias(word string) bool {
	for _, r := range word {
		if _, ok := s.aliases[r]; ok {
			return true
		}
	}
	return false
}

func isAllWildcards(word string) bool {
	for _, r := range word {
		if r != model.WildcardRune {
			return false
		}
	}
	return true
}

// Battle resolves an attack. Returns nil when either side is empty,
// meaning no battle happened.
//
// The outcome logic: any invalid attacking word loses the battle
// outright; an explosive attacker wins outright; otherwise each
// defending word is weak when invalid or when the longest attacking
// word is more than LengthDelta letters longer than it, and each
// defending town is beatable when the longest attacking word exceeds
// the configured town defense. Standing words shield everything behind
// them: the attacker only wins while no defending word stands, or by
// picking off the weak defenders when at least one word is weak.
func (s *Service) Battle(attackers, defenders []string, rules model.BattleRules, win model.WinCondition, attackerDict, defenderDict model.Lookup) *model.BattleReport {
	if len(attackers) == 0 || len(defenders) == 0 {
		return nil
	}

	report := &model.BattleReport{
		Attackers: make([]model.BattleWord, 0, len(attackers)),
		Defenders: make([]model.BattleWord, 0, len(defenders)),
	}

	attackLen := 0
	attackersValid := true
	explosive := false
	for _, word := range attackers {
		resolved, ok := s.ValidWord(word, attackerDict)
		report.Attackers = append(report.Attackers, model.BattleWord{Original: word, Resolved: resolved, Valid: ok})
		if !ok {
			attackersValid = false
			continue
		}
		if strings.ContainsRune(word, model.ExplosiveRune) {
			explosive = true
		}
		if n := utf8.RuneCountInString(word); n > attackLen {
			attackLen = n
		}
	}

	if !attackersValid {
		report.Outcome = model.OutcomeDefenderWins
		for _, word := range defenders {
			resolved, ok := s.resolveDefender(word, defenderDict)
			report.Defenders = append(report.Defenders, model.BattleWord{Original: word, Resolved: resolved, Valid: ok})
		}
		return report
	}

	if explosive {
		// An explosive attack cannot be defended against; it claims no
		// defender words, the explosion itself does the clearing
		report.Outcome = model.OutcomeAttackerWins
		for _, word := range defenders {
			resolved, ok := s.resolveDefender(word, defenderDict)
			report.Defenders = append(report.Defenders, model.BattleWord{Original: word, Resolved: resolved, Valid: ok})
		}
		return report
	}

	var weakWords, beatableTowns []int
	hasWords := false
	for i, word := range defenders {
		if strings.ContainsRune(word, model.TownRune) {
			report.Defenders = append(report.Defenders, model.BattleWord{Original: word, Resolved: strings.ToUpper(word), Valid: true})
			if attackLen > win.TownDefense {
				beatableTowns = append(beatableTowns, i)
			}
			continue
		}
		hasWords = true
		resolved, ok := s.ValidWord(word, defenderDict)
		report.Defenders = append(report.Defenders, model.BattleWord{Original: word, Resolved: resolved, Valid: ok})
		if !ok || utf8.RuneCountInString(word)+rules.LengthDelta < attackLen {
			weakWords = append(weakWords, i)
		}
	}

	switch {
	case hasWords && len(weakWords) == 0:
		// At least one defending word stands, and standing words
		// shield the towns behind them
		report.Outcome = model.OutcomeDefenderWins
	case len(weakWords) > 0 || len(beatableTowns) > 0:
		report.Outcome = model.OutcomeAttackerWins
		report.Losers = append(append([]int{}, weakWords...), beatableTowns...)
	default:
		// Only unbeatable towns remain
		report.Outcome = model.OutcomeDefenderWins
	}
	return report
}

// resolveDefender resolves a defender for reporting even when the
// battle outcome is already decided
func (s *Service) resolveDefender(word string, dict model.Lookup) (string, bool) {
	if strings.ContainsRune(word, model.TownRune) {
		return strings.ToUpper(word), true
	}
	return s.ValidWord(word, dict)
}

// Winner returns the player who has won the game, or nil. Under the
// destination rule a player loses when every town they own is defeated;
// under elimination a player loses when they have placed tiles before
// but no longer hold any square.
func (s *Service) Winner(game *model.Game) *int {
	if len(game.Players) < 2 {
		return nil
	}

	defeated := make([]bool, len(game.Players))
	switch game.Rules.WinCondition.Kind {
	case model.WinDestination:
		towns := make([]int, len(game.Players))
		standing := make([]int, len(game.Players))
		for _, c := range game.Board.Towns {
			sq, err := game.Board.Get(c)
			if err != nil || sq.Kind != model.KindTown {
				continue
			}
			if sq.Player < 0 || sq.Player >= len(game.Players) {
				continue
			}
			towns[sq.Player]++
			if !sq.Defeated {
				standing[sq.Player]++
			}
		}
		for i := range defeated {
			defeated[i] = towns[i] > 0 && standing[i] == 0
		}

	case model.WinElimination:
		tiles := make([]int, len(game.Players))
		for _, row := range game.Board.Squares {
			for _, sq := range row {
				if sq.Kind == model.KindOccupied && sq.Player >= 0 && sq.Player < len(game.Players) {
					tiles[sq.Player]++
				}
			}
		}
		for i, player := range game.Players {
			defeated[i] = player.HasPlaced && tiles[i] == 0
		}
	}

	var survivor *int
	survivors := 0
	for i, d := range defeated {
		if !d {
			idx := i
			survivor = &idx
			survivors++
		}
	}
	if survivors == 1 {
		return survivor
	}
	return nil
}
