// internal/quiz/leaderboard.go
package quiz

import (
	"sort"

	"quiz-portal/internal/models"
)

// LeaderboardSize caps the ranked view at the top 20 users.
const LeaderboardSize = 20

// RankLeaderboard reduces the raw entry history for one paper into the
// ranked view. Per user only the latest attempt (max completed_at)
// survives; earlier retakes drop out entirely. Ties on score go to the
// earlier completion. Rank is the 1-based position in the result and is
// recomputed on every call.
func RankLeaderboard(entries []models.LeaderboardEntry, paperName string) []models.RankedEntry {
	latest := make(map[uint]models.LeaderboardEntry)
	for _, entry := range entries {
		if entry.PaperName != paperName {
			continue
		}
		current, ok := latest[entry.UserID]
		if !ok || entry.CompletedAt.After(current.CompletedAt) {
			latest[entry.UserID] = entry
		}
	}

	deduped := make([]models.LeaderboardEntry, 0, len(latest))
	for _, entry := range latest {
		deduped = append(deduped, entry)
	}

	sort.Slice(deduped, func(i, j int) bool {
		if deduped[i].ScorePercentage != deduped[j].ScorePercentage {
			return deduped[i].ScorePercentage > deduped[j].ScorePercentage
		}
		return deduped[i].CompletedAt.Before(deduped[j].CompletedAt)
	})

	if len(deduped) > LeaderboardSize {
		deduped = deduped[:LeaderboardSize]
	}

	ranked := make([]models.RankedEntry, len(deduped))
	for i, entry := range deduped {
		ranked[i] = models.RankedEntry{
			Rank:            i + 1,
			UserID:          entry.UserID,
			ScorePercentage: entry.ScorePercentage,
			TotalQuestions:  entry.TotalQuestions,
			TotalCorrect:    entry.TotalCorrect,
			TotalAttempted:  entry.TotalAttempted,
			CompletedAt:     entry.CompletedAt,
		}
	}
	return ranked
}
