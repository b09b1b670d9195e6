// internal/models/dto.go
package models

import "time"

type QuestionDTO struct {
	ID            uint   `json:"id"`
	Text          string `json:"text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"correct_option,omitempty"` // stripped for takers
}

func (q Question) ToDTO(includeAnswer bool) QuestionDTO {
	dto := QuestionDTO{
		ID:      q.ID,
		Text:    q.Text,
		OptionA: q.OptionA,
		OptionB: q.OptionB,
		OptionC: q.OptionC,
		OptionD: q.OptionD,
	}
	if includeAnswer {
		dto.CorrectOption = q.CorrectOption
	}
	return dto
}

// QuestionWithAnswer is the scorer's read-only input: a question's correct
// option joined with the user's selection, if any.
type QuestionWithAnswer struct {
	QuestionID     uint    `json:"question_id"`
	CorrectOption  string  `json:"correct_option"`
	SelectedOption *string `json:"selected_option"`
}

type ScoreSummary struct {
	TotalQuestions  int     `json:"total_questions"`
	TotalAttempted  int     `json:"total_attempted"`
	TotalCorrect    int     `json:"total_correct"`
	ScorePercentage float64 `json:"score_percentage"`
}

// RankedEntry is one row of the leaderboard view. Rank is the 1-based
// position in the ranked output, recomputed on every view, never stored.
type RankedEntry struct {
	Rank            int       `json:"rank"`
	UserID          uint      `json:"user_id"`
	FullName        string    `json:"full_name"`
	ScorePercentage float64   `json:"score_percentage"`
	TotalQuestions  int       `json:"total_questions"`
	TotalCorrect    int       `json:"total_correct"`
	TotalAttempted  int       `json:"total_attempted"`
	CompletedAt     time.Time `json:"completed_at"`
}
