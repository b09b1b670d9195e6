package cache

import (
	"testing"
	"time"

	"quiz-portal/internal/models"

	miniredis "github.com/alicebob/miniredis/v2"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return NewRedisCache(mr.Addr()), mr
}

func TestPaperQuestionsRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)

	questions := []models.Question{
		{ID: 1, PaperID: 3, Text: "What is 2 + 2?", OptionA: "3", OptionB: "4", OptionC: "5", OptionD: "6", CorrectOption: "B"},
		{ID: 2, PaperID: 3, Text: "Pick C", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectOption: "C"},
	}

	if err := c.SetPaperQuestions("physics", questions); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := c.GetPaperQuestions("physics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 || got[0].CorrectOption != "B" || got[1].Text != "Pick C" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLeaderboardSnapshotAndInvalidation(t *testing.T) {
	c, _ := newTestCache(t)

	entries := []models.RankedEntry{
		{Rank: 1, UserID: 1, FullName: "Alice", ScorePercentage: 95, CompletedAt: time.Now().UTC()},
		{Rank: 2, UserID: 2, FullName: "Bob", ScorePercentage: 95, CompletedAt: time.Now().UTC()},
	}

	if err := c.SetLeaderboard("physics", entries); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := c.GetLeaderboard("physics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 || got[0].FullName != "Alice" || got[1].Rank != 2 {
		t.Fatalf("snapshot mismatch: %+v", got)
	}

	if err := c.InvalidateLeaderboard("physics"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := c.GetLeaderboard("physics"); err == nil {
		t.Fatalf("expected miss after invalidation")
	}
}

func TestLeaderboardSnapshotExpires(t *testing.T) {
	c, mr := newTestCache(t)

	if err := c.SetLeaderboard("physics", []models.RankedEntry{{Rank: 1, UserID: 1}}); err != nil {
		t.Fatalf("set: %v", err)
	}

	mr.FastForward(leaderboardTTL + time.Second)

	if _, err := c.GetLeaderboard("physics"); err == nil {
		t.Fatalf("expected snapshot to expire")
	}
}

func TestMissReturnsError(t *testing.T) {
	c, _ := newTestCache(t)

	if _, err := c.GetPaperQuestions("nope"); err == nil {
		t.Fatalf("expected error on cache miss")
	}
}
