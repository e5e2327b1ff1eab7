package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/TruncateGame/Truncate-sub000/internal/model"
	"github.com/TruncateGame/Truncate-sub000/internal/storage/memory"
)

type StorageSuite struct {
	suite.Suite

	ctx     context.Context
	storage *memory.Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.ctx = context.Background()
	s.storage = memory.New()
}

func (s *StorageSuite) makeRecord(id model.MatchID) *model.MatchRecord {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.MatchRecord{
		ID:          id,
		PlayerNames: []string{"Alice", "Bob"},
		Seed:        42,
		BoardLayout: "~~ |0 ~~\n__ __ __\n~~ |1 ~~",
		Rules:       model.DefaultRules(),
		MoveLog:     "1;a11;!1b11",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *StorageSuite) TestSaveAndGetMatch() {
	record := s.makeRecord("MATCH1")
	s.Require().NoError(s.storage.SaveMatch(s.ctx, record))

	got, err := s.storage.GetMatch(s.ctx, "MATCH1")
	s.Require().NoError(err)
	s.Equal(record, got)
}

func (s *StorageSuite) TestGetMatchNotFound() {
	_, err := s.storage.GetMatch(s.ctx, "NOPE")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestSaveMatchCopies() {
	record := s.makeRecord("MATCH1")
	s.Require().NoError(s.storage.SaveMatch(s.ctx, record))

	// Mutating the caller's record must not reach the stored copy
	record.MoveLog = "1;z99"
	got, err := s.storage.GetMatch(s.ctx, "MATCH1")
	s.Require().NoError(err)
	s.Equal("1;a11;!1b11", got.MoveLog)
}

func (s *StorageSuite) TestOverwriteMatch() {
	record := s.makeRecord("MATCH1")
	s.Require().NoError(s.storage.SaveMatch(s.ctx, record))

	winner := 1
	record.Winner = &winner
	s.Require().NoError(s.storage.SaveMatch(s.ctx, record))

	got, err := s.storage.GetMatch(s.ctx, "MATCH1")
	s.Require().NoError(err)
	s.Require().NotNil(got.Winner)
	s.Equal(1, *got.Winner)
}

func (s *StorageSuite) TestListMatchesSorted() {
	for _, id := range []model.MatchID{"CHARLIE", "ALPHA", "BRAVO"} {
		s.Require().NoError(s.storage.SaveMatch(s.ctx, s.makeRecord(id)))
	}

	ids, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.MatchID{"ALPHA", "BRAVO", "CHARLIE"}, ids)
}

func (s *StorageSuite) TestDeleteMatch() {
	s.Require().NoError(s.storage.SaveMatch(s.ctx, s.makeRecord("MATCH1")))
	s.Require().NoError(s.storage.DeleteMatch(s.ctx, "MATCH1"))

	_, err := s.storage.GetMatch(s.ctx, "MATCH1")
	s.ErrorIs(err, model.ErrMatchNotFound)

	// Deleting again is a no-op
	s.NoError(s.storage.DeleteMatch(s.ctx, "MATCH1"))
}

func (s *StorageSuite) TestDictionaryWordsRoundTrip() {
	words, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Empty(words)

	saved := []string{"cat", "toast", "stoat"}
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, saved))

	words, err = s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Equal(saved, words)

	// The stored list is insulated from later mutation
	saved[0] = "mutated"
	words, err = s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Equal("cat", words[0])
}
