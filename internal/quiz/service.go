// internal/quiz/service.go
package quiz

import (
	"errors"
	"log"
	"time"

	"quiz-portal/internal/models"
	"quiz-portal/pkg/cache"
	"quiz-portal/pkg/websocket"
)

// MaxPaperQuestions bounds how many questions one paper may hold.
const MaxPaperQuestions = 100

var (
	ErrPaperNotFound    = errors.New("paper not found")
	ErrInvalidOption    = errors.New("selected option must be one of A, B, C or D")
	ErrAlreadySubmitted = errors.New("answers already submitted for this paper")
	ErrTooManyQuestions = errors.New("a paper can hold at most 100 questions")
)

// Store is the persistence surface the quiz flows need. The gorm
// Repository implements it; tests swap in an in-memory fake.
type Store interface {
	CreatePaper(paper *models.Paper) error
	GetPapers() ([]models.Paper, error)
	GetPaperByName(name string) (*models.Paper, error)
	GetPaperQuestions(paperName string) ([]models.Question, error)
	GetQuestion(questionID uint) (*models.Question, error)
	GetPaperByID(paperID uint) (*models.Paper, error)
	SaveAnswer(answer *models.UserAnswer) (bool, error)
	GetQuestionsWithAnswers(userID uint, paperName string) ([]models.QuestionWithAnswer, error)
	MarkAnswersSubmitted(userID uint, paperName string) error
	InsertLeaderboardEntry(entry *models.LeaderboardEntry) error
	GetLeaderboardEntries(paperName string) ([]models.LeaderboardEntry, error)
	ResetAnswers(userID uint, paperName string) (int64, error)
	GetDisplayNames(userIDs []uint) (map[uint]string, error)
}

type Service struct {
	store Store
	cache *cache.RedisCache
	wsHub *websocket.Hub
}

func NewService(store Store, redisCache *cache.RedisCache, wsHub *websocket.Hub) *Service {
	return &Service{
		store: store,
		cache: redisCache,
		wsHub: wsHub,
	}
}

func (s *Service) CreatePaper(paper *models.Paper) error {
	if len(paper.Questions) > MaxPaperQuestions {
		return ErrTooManyQuestions
	}
	for _, q := range paper.Questions {
		if !validOption(q.CorrectOption) {
			return ErrInvalidOption
		}
	}
	if err := s.store.CreatePaper(paper); err != nil {
		return err
	}

	// A re-created paper must not keep serving its old question set for
	// the remainder of the cache TTL.
	if s.cache != nil {
		if err := s.cache.InvalidatePaperQuestions(paper.Name); err != nil {
			log.Printf("Error invalidating question cache for paper %s: %v", paper.Name, err)
		}
	}
	return nil
}

func (s *Service) GetPapers() ([]models.Paper, error) {
	return s.store.GetPapers()
}

// GetPaperQuestions returns a paper's questions with the correct options
// stripped, for quiz takers.
func (s *Service) GetPaperQuestions(paperName string) ([]models.QuestionDTO, error) {
	questions, err := s.cachedPaperQuestions(paperName)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrPaperNotFound
	}

	dtos := make([]models.QuestionDTO, len(questions))
	for i, q := range questions {
		dtos[i] = q.ToDTO(false)
	}
	return dtos, nil
}

func (s *Service) cachedPaperQuestions(paperName string) ([]models.Question, error) {
	if s.cache != nil {
		if questions, err := s.cache.GetPaperQuestions(paperName); err == nil {
			return questions, nil
		}
	}

	questions, err := s.store.GetPaperQuestions(paperName)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(questions) > 0 {
		if err := s.cache.SetPaperQuestions(paperName, questions); err != nil {
			log.Printf("Error caching questions for paper %s: %v", paperName, err)
		}
	}
	return questions, nil
}

// SaveAnswer records the user's selection for one question. Selections
// can be changed freely until the paper is submitted.
func (s *Service) SaveAnswer(userID, questionID uint, selectedOption string) error {
	if !validOption(selectedOption) {
		return ErrInvalidOption
	}

	question, err := s.store.GetQuestion(questionID)
	if err != nil {
		return ErrPaperNotFound
	}
	paper, err := s.store.GetPaperByID(question.PaperID)
	if err != nil {
		return ErrPaperNotFound
	}

	saved, err := s.store.SaveAnswer(&models.UserAnswer{
		UserID:         userID,
		QuestionID:     questionID,
		PaperName:      paper.Name,
		SelectedOption: &selectedOption,
	})
	if err != nil {
		return err
	}
	if !saved {
		return ErrAlreadySubmitted
	}
	return nil
}

// Submit finalizes the user's attempt at a paper: answers are marked
// submitted, the score is computed over the paper's full question set,
// and one new leaderboard row is inserted. The insert never replaces a
// prior entry; retakes pile up as history and the reducer picks the
// latest per user at view time.
func (s *Service) Submit(userID uint, paperName string) (*models.ScoreSummary, error) {
	questions, err := s.store.GetQuestionsWithAnswers(userID, paperName)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrPaperNotFound
	}

	if err := s.store.MarkAnswersSubmitted(userID, paperName); err != nil {
		return nil, err
	}

	summary := ComputeScore(questions)

	entry := &models.LeaderboardEntry{
		UserID:          userID,
		PaperName:       paperName,
		ScorePercentage: summary.ScorePercentage,
		TotalQuestions:  summary.TotalQuestions,
		TotalCorrect:    summary.TotalCorrect,
		TotalAttempted:  summary.TotalAttempted,
		CompletedAt:     time.Now(),
	}
	if err := s.store.InsertLeaderboardEntry(entry); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateLeaderboard(paperName); err != nil {
			log.Printf("Error invalidating leaderboard cache for %s: %v", paperName, err)
		}
	}

	if s.wsHub != nil {
		if ranked, err := s.buildLeaderboard(paperName); err == nil {
			s.wsHub.BroadcastLeaderboard(paperName, ranked)
		} else {
			log.Printf("Error building leaderboard for broadcast: %v", err)
		}
	}

	return &summary, nil
}

// GetLeaderboard returns the ranked top entries for a paper, serving a
// cached snapshot when one exists.
func (s *Service) GetLeaderboard(paperName string) ([]models.RankedEntry, error) {
	if s.cache != nil {
		if ranked, err := s.cache.GetLeaderboard(paperName); err == nil {
			return ranked, nil
		}
	}

	ranked, err := s.buildLeaderboard(paperName)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetLeaderboard(paperName, ranked); err != nil {
			log.Printf("Error caching leaderboard for %s: %v", paperName, err)
		}
	}
	return ranked, nil
}

func (s *Service) buildLeaderboard(paperName string) ([]models.RankedEntry, error) {
	entries, err := s.store.GetLeaderboardEntries(paperName)
	if err != nil {
		return nil, err
	}

	ranked := RankLeaderboard(entries, paperName)

	userIDs := make([]uint, len(ranked))
	for i, entry := range ranked {
		userIDs[i] = entry.UserID
	}
	names, err := s.store.GetDisplayNames(userIDs)
	if err != nil {
		log.Printf("Error resolving leaderboard names for %s: %v", paperName, err)
		return ranked, nil
	}
	for i := range ranked {
		ranked[i].FullName = names[ranked[i].UserID]
	}
	return ranked, nil
}

// ResetAnswers clears the user's selections for a paper so it can be
// retaken. Past leaderboard rows are untouched.
func (s *Service) ResetAnswers(userID uint, paperName string) (int64, error) {
	if _, err := s.store.GetPaperByName(paperName); err != nil {
		return 0, ErrPaperNotFound
	}
	return s.store.ResetAnswers(userID, paperName)
}

func validOption(option string) bool {
	switch option {
	case "A", "B", "C", "D":
		return true
	}
	return false
}
