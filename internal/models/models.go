// internal/models/models.go
package models

import (
	"time"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Email     string    `json:"email" gorm:"unique;not null"`
	Password  string    `json:"-" gorm:"not null"`
}

// Profile holds the details a user fills in after registering. One row
// per user; the leaderboard view reads FullName from here.
type Profile struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	FullName    string    `json:"full_name" gorm:"not null"`
	Institution string    `json:"institution"`
}

type Paper struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Name        string     `json:"name" gorm:"unique;not null"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions,omitempty" gorm:"foreignKey:PaperID"`
}

// Question is a multiple-choice question with four fixed options. The
// correct answer is always one of A, B, C or D.
type Question struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	PaperID       uint      `json:"paper_id"`
	Text          string    `json:"text" gorm:"not null"`
	OptionA       string    `json:"option_a" gorm:"not null"`
	OptionB       string    `json:"option_b" gorm:"not null"`
	OptionC       string    `json:"option_c" gorm:"not null"`
	OptionD       string    `json:"option_d" gorm:"not null"`
	CorrectOption string    `json:"correct_option" gorm:"not null"`
}

// UserAnswer links a user and a question to a selected option. A nil
// SelectedOption means the question was never answered. Submitted flips
// to true once the paper is submitted and the answer is scored.
type UserAnswer struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UserID         uint      `json:"user_id" gorm:"uniqueIndex:idx_user_question;not null"`
	QuestionID     uint      `json:"question_id" gorm:"uniqueIndex:idx_user_question;not null"`
	PaperName      string    `json:"paper_name" gorm:"index;not null"`
	SelectedOption *string   `json:"selected_option"`
	Submitted      bool      `json:"submitted" gorm:"default:false"`
}

// LoginAttempt tracks failed sign-ins per email. One row per email,
// created lazily on the first attempt and never deleted.
type LoginAttempt struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Email          string     `json:"email" gorm:"unique;not null"`
	FailedAttempts int        `json:"failed_attempts" gorm:"not null;default:0"`
	LastAttemptAt  time.Time  `json:"last_attempt_at"`
	BlockedUntil   *time.Time `json:"blocked_until"`
}

// LeaderboardEntry is one completed quiz attempt. Rows are immutable:
// every submit inserts a new one, retakes included, so the full history
// is preserved.
type LeaderboardEntry struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	CreatedAt       time.Time `json:"created_at"`
	UserID          uint      `json:"user_id" gorm:"index;not null"`
	PaperName       string    `json:"paper_name" gorm:"index;not null"`
	ScorePercentage float64   `json:"score_percentage" gorm:"type:decimal(5,2);not null"`
	TotalQuestions  int       `json:"total_questions" gorm:"not null"`
	TotalCorrect    int       `json:"total_correct" gorm:"not null"`
	TotalAttempted  int       `json:"total_attempted" gorm:"not null"`
	CompletedAt     time.Time `json:"completed_at" gorm:"not null"`
}

func (LeaderboardEntry) TableName() string {
	return "leaderboard_entries"
}
