// internal/quiz/repository.go
package quiz

import (
	"log"

	"quiz-portal/internal/models"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreatePaper(paper *models.Paper) error {
	err := r.db.Create(paper).Error
	if err != nil {
		log.Printf("Error creating paper: %v", err)
		return err
	}
	log.Printf("Created paper %q with %d questions", paper.Name, len(paper.Questions))
	return nil
}

func (r *Repository) GetPapers() ([]models.Paper, error) {
	var papers []models.Paper
	err := r.db.Order("name asc").Find(&papers).Error
	if err != nil {
		log.Printf("Error listing papers: %v", err)
		return nil, err
	}
	return papers, nil
}

func (r *Repository) GetPaperByName(name string) (*models.Paper, error) {
	var paper models.Paper
	err := r.db.Where("name = ?", name).First(&paper).Error
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *Repository) GetPaperQuestions(paperName string) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.
		Joins("JOIN papers ON papers.id = questions.paper_id").
		Where("papers.name = ?", paperName).
		Order("questions.id asc").
		Find(&questions).Error
	if err != nil {
		log.Printf("Error getting questions for paper %s: %v", paperName, err)
		return nil, err
	}
	return questions, nil
}

func (r *Repository) GetQuestion(questionID uint) (*models.Question, error) {
	var question models.Question
	err := r.db.First(&question, questionID).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *Repository) GetPaperByID(paperID uint) (*models.Paper, error) {
	var paper models.Paper
	err := r.db.First(&paper, paperID).Error
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

// SaveAnswer upserts the user's selection for one question. The conflict
// target is the unique (user_id, question_id) pair; an answer that was
// already submitted is left untouched, reported by the false return.
func (r *Repository) SaveAnswer(answer *models.UserAnswer) (bool, error) {
	result := r.db.Exec(`
		INSERT INTO user_answers (user_id, question_id, paper_name, selected_option, submitted, created_at, updated_at)
		VALUES (?, ?, ?, ?, false, NOW(), NOW())
		ON CONFLICT (user_id, question_id) DO UPDATE SET
			selected_option = EXCLUDED.selected_option,
			updated_at = NOW()
		WHERE user_answers.submitted = false
	`, answer.UserID, answer.QuestionID, answer.PaperName, answer.SelectedOption)
	if result.Error != nil {
		log.Printf("Error saving answer for user %d question %d: %v", answer.UserID, answer.QuestionID, result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetQuestionsWithAnswers loads the full question set for a paper joined
// with the user's selections. Unanswered questions come back with a nil
// selected_option, which is exactly what the scorer expects.
func (r *Repository) GetQuestionsWithAnswers(userID uint, paperName string) ([]models.QuestionWithAnswer, error) {
	var rows []models.QuestionWithAnswer
	err := r.db.Raw(`
		SELECT q.id AS question_id, q.correct_option, ua.selected_option
		FROM questions q
		JOIN papers p ON p.id = q.paper_id
		LEFT JOIN user_answers ua ON ua.question_id = q.id AND ua.user_id = ?
		WHERE p.name = ?
		ORDER BY q.id
	`, userID, paperName).Scan(&rows).Error
	if err != nil {
		log.Printf("Error getting questions with answers for user %d paper %s: %v", userID, paperName, err)
		return nil, err
	}
	return rows, nil
}

func (r *Repository) MarkAnswersSubmitted(userID uint, paperName string) error {
	return r.db.Model(&models.UserAnswer{}).
		Where("user_id = ? AND paper_name = ?", userID, paperName).
		Update("submitted", true).Error
}

func (r *Repository) InsertLeaderboardEntry(entry *models.LeaderboardEntry) error {
	err := r.db.Create(entry).Error
	if err != nil {
		log.Printf("Error inserting leaderboard entry for user %d: %v", entry.UserID, err)
		return err
	}
	return nil
}

func (r *Repository) GetLeaderboardEntries(paperName string) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := r.db.Where("paper_name = ?", paperName).Find(&entries).Error
	if err != nil {
		log.Printf("Error getting leaderboard entries for paper %s: %v", paperName, err)
		return nil, err
	}
	return entries, nil
}

// ResetAnswers clears the user's selections and submission flags for one
// paper and reports how many rows were touched. Leaderboard rows are
// never part of a reset.
func (r *Repository) ResetAnswers(userID uint, paperName string) (int64, error) {
	result := r.db.Model(&models.UserAnswer{}).
		Where("user_id = ? AND paper_name = ?", userID, paperName).
		Updates(map[string]interface{}{
			"selected_option": nil,
			"submitted":       false,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *Repository) GetDisplayNames(userIDs []uint) (map[uint]string, error) {
	if len(userIDs) == 0 {
		return map[uint]string{}, nil
	}

	var rows []struct {
		UserID   uint
		FullName string
	}
	err := r.db.Raw(`
		SELECT u.id AS user_id, COALESCE(NULLIF(pr.full_name, ''), u.email) AS full_name
		FROM users u
		LEFT JOIN profiles pr ON pr.user_id = u.id
		WHERE u.id IN ?
	`, userIDs).Scan(&rows).Error
	if err != nil {
		log.Printf("Error resolving display names: %v", err)
		return nil, err
	}

	names := make(map[uint]string, len(rows))
	for _, row := range rows {
		names[row.UserID] = row.FullName
	}
	return names, nil
}
