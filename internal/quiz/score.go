// internal/quiz/score.go
package quiz

import (
	"math"

	"quiz-portal/internal/models"
)

// ComputeScore tallies a user's answers over the full question set of a
// paper. Pure, no I/O. An unanswered question counts toward the total but
// never toward attempted or correct. The percentage is over the total,
// rounded half away from zero to two decimals, and defined as 0 for an
// empty set.
func ComputeScore(questions []models.QuestionWithAnswer) models.ScoreSummary {
	summary := models.ScoreSummary{
		TotalQuestions: len(questions),
	}

	for _, q := range questions {
		if q.SelectedOption == nil {
			continue
		}
		summary.TotalAttempted++
		if *q.SelectedOption == q.CorrectOption {
			summary.TotalCorrect++
		}
	}

	if summary.TotalQuestions > 0 {
		pct := float64(summary.TotalCorrect) / float64(summary.TotalQuestions) * 100
		summary.ScorePercentage = math.Round(pct*100) / 100
	}

	return summary
}
