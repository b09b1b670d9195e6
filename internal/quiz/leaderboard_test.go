package quiz

import (
	"fmt"
	"testing"
	"time"

	"quiz-portal/internal/models"
)

func entry(userID uint, paper string, score float64, completedAt time.Time) models.LeaderboardEntry {
	return models.LeaderboardEntry{
		UserID:          userID,
		PaperName:       paper,
		ScorePercentage: score,
		CompletedAt:     completedAt,
	}
}

func TestRankLeaderboardDedupAndTieBreak(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	entries := []models.LeaderboardEntry{
		entry(1, "physics", 90, base.Add(1*time.Minute)),
		entry(1, "physics", 95, base.Add(2*time.Minute)),
		entry(2, "physics", 95, base.Add(3*time.Minute)),
	}

	ranked := RankLeaderboard(entries, "physics")

	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked entries, got %d", len(ranked))
	}
	// Both users are on 95%; u1 finished earlier so the tie goes to u1.
	if ranked[0].UserID != 1 || ranked[0].Rank != 1 {
		t.Fatalf("expected u1 first, got %+v", ranked[0])
	}
	if ranked[0].ScorePercentage != 95 {
		t.Fatalf("dedup must keep u1's latest attempt (95%%), got %v", ranked[0].ScorePercentage)
	}
	if ranked[1].UserID != 2 || ranked[1].Rank != 2 {
		t.Fatalf("expected u2 second, got %+v", ranked[1])
	}
}

func TestRankLeaderboardKeepsLatestNotBest(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	entries := []models.LeaderboardEntry{
		entry(1, "physics", 95, base),
		entry(1, "physics", 40, base.Add(time.Hour)), // a worse retake still wins
	}

	ranked := RankLeaderboard(entries, "physics")

	if len(ranked) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(ranked))
	}
	if ranked[0].ScorePercentage != 40 {
		t.Fatalf("expected latest attempt (40%%), got %v", ranked[0].ScorePercentage)
	}
}

func TestRankLeaderboardFiltersByPaper(t *testing.T) {
	base := time.Now()
	entries := []models.LeaderboardEntry{
		entry(1, "physics", 90, base),
		entry(2, "chemistry", 99, base),
	}

	ranked := RankLeaderboard(entries, "physics")

	if len(ranked) != 1 || ranked[0].UserID != 1 {
		t.Fatalf("expected only physics entries, got %+v", ranked)
	}
}

func TestRankLeaderboardTruncatesToTwenty(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var entries []models.LeaderboardEntry
	for i := 1; i <= 25; i++ {
		entries = append(entries, entry(uint(i), "physics", float64(i*4), base.Add(time.Duration(i)*time.Second)))
	}

	ranked := RankLeaderboard(entries, "physics")

	if len(ranked) != LeaderboardSize {
		t.Fatalf("expected %d entries, got %d", LeaderboardSize, len(ranked))
	}

	seen := make(map[uint]bool)
	for i, r := range ranked {
		if r.Rank != i+1 {
			t.Fatalf("rank at index %d is %d", i, r.Rank)
		}
		if seen[r.UserID] {
			t.Fatalf("duplicate user %d in ranked output", r.UserID)
		}
		seen[r.UserID] = true
		if i > 0 && ranked[i-1].ScorePercentage < r.ScorePercentage {
			t.Fatalf("scores not non-increasing at index %d", i)
		}
	}

	// The five lowest scorers fell off the board.
	for i := 1; i <= 5; i++ {
		if seen[uint(i)] {
			t.Fatalf("user %d should have been truncated", i)
		}
	}
}

func TestRankLeaderboardTimestampsComparedChronologically(t *testing.T) {
	// Completion times that would sort wrong as strings must still sort
	// right as times (e.g. different zones for the same instant order).
	utc := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	east := utc.Add(-time.Minute).In(time.FixedZone("UTC+5", 5*3600))

	entries := []models.LeaderboardEntry{
		entry(1, "physics", 80, utc),
		entry(2, "physics", 80, east), // earlier instant, "later looking" string
	}

	ranked := RankLeaderboard(entries, "physics")

	if ranked[0].UserID != 2 {
		t.Fatalf("expected the chronologically earlier finisher first, got %+v", ranked)
	}
}

func TestRankLeaderboardEmpty(t *testing.T) {
	if got := RankLeaderboard(nil, "physics"); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestRankLeaderboardManyRetakes(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var entries []models.LeaderboardEntry
	for i := 0; i < 10; i++ {
		entries = append(entries, entry(7, "physics", float64(10*i), base.Add(time.Duration(i)*time.Minute)))
	}

	ranked := RankLeaderboard(entries, "physics")

	if len(ranked) != 1 {
		t.Fatalf("expected a single row for the user, got %d", len(ranked))
	}
	if got := fmt.Sprintf("%.0f", ranked[0].ScorePercentage); got != "90" {
		t.Fatalf("expected the latest retake (90), got %s", got)
	}
}
