package reputation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/openrune/botcore/internal/errors"
	"github.com/openrune/botcore/internal/pkg/clock"
	"github.com/openrune/botcore/internal/repositories/reputation"
	"github.com/openrune/botcore/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    reputation.Repository
	clock   *clock.Fixed
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.clock = clock.NewFixed(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	repo, err := reputation.NewRedisRepository(&reputation.Config{
		Client: client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestGetUnknownPlayerIsNotFound() {
	_, err := s.repo.Get(s.ctx, reputation.GetInput{PlayerID: "stranger"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetRoundTrip() {
	record := reputation.NewRecord("player_123")
	record.Score = 60
	record.Flags.IsFriend = true
	record.Notes = []reputation.Note{{
		Timestamp: s.clock.Now(),
		Delta:     3,
		Reason:    "completed trade",
		NewScore:  60,
	}}

	saved, err := s.repo.Save(s.ctx, reputation.SaveInput{Record: record})
	s.Require().NoError(err)
	s.Equal(reputation.TierFriendly, saved.Record.Tier)
	s.Equal(s.clock.Now(), saved.Record.LastInteraction)

	got, err := s.repo.Get(s.ctx, reputation.GetInput{PlayerID: "player_123"})
	s.Require().NoError(err)
	s.Equal(60, got.Record.Score)
	s.Equal(reputation.TierFriendly, got.Record.Tier)
	s.True(got.Record.Flags.IsFriend)
	s.Len(got.Record.Notes, 1)
	s.Equal("completed trade", got.Record.Notes[0].Reason)
}

func (s *RedisRepositoryTestSuite) TestSaveClampsAndDerivesTier() {
	record := reputation.NewRecord("player_9")
	record.Score = 500
	// A stale tier must never survive a save.
	record.Tier = reputation.TierBlocked

	saved, err := s.repo.Save(s.ctx, reputation.SaveInput{Record: record})
	s.Require().NoError(err)
	s.Equal(100, saved.Record.Score)
	s.Equal(reputation.TierWhitelisted, saved.Record.Tier)
}

func (s *RedisRepositoryTestSuite) TestSaveValidatesInput() {
	_, err := s.repo.Save(s.ctx, reputation.SaveInput{Record: nil})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, reputation.SaveInput{Record: &reputation.Record{}})
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := reputation.NewInMemory()

	_, err := repo.Get(ctx, reputation.GetInput{PlayerID: "ghost"})
	if !errors.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	rec := reputation.NewRecord("player_55")
	rec.Score = -60
	out, err := repo.Save(ctx, reputation.SaveInput{Record: rec})
	if err != nil {
		t.Fatal(err)
	}
	if out.Record.Tier != reputation.TierBlocked {
		t.Fatalf("expected blocked tier, got %s", out.Record.Tier)
	}

	// Mutating the returned record must not leak into the store.
	out.Record.Score = 0
	got, err := repo.Get(ctx, reputation.GetInput{PlayerID: "player_55"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Record.Score != -60 {
		t.Fatalf("store mutated through returned pointer: %d", got.Record.Score)
	}
}
