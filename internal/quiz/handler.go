// internal/quiz/handler.go
package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"quiz-portal/internal/auth"
	"quiz-portal/internal/models"

	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type SaveAnswerRequest struct {
	QuestionID     uint   `json:"question_id"`
	SelectedOption string `json:"selected_option"`
}

func (h *Handler) CreatePaper(w http.ResponseWriter, r *http.Request) {
	var paper models.Paper
	if err := json.NewDecoder(r.Body).Decode(&paper); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.CreatePaper(&paper); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidOption) || errors.Is(err, ErrTooManyQuestions) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(paper)
}

func (h *Handler) GetPapers(w http.ResponseWriter, r *http.Request) {
	papers, err := h.service.GetPapers()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(papers)
}

func (h *Handler) GetPaperQuestions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	paperName := vars["paperName"]

	questions, err := h.service.GetPaperQuestions(paperName)
	if err != nil {
		if errors.Is(err, ErrPaperNotFound) {
			http.Error(w, "Paper not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(questions)
}

func (h *Handler) SaveAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req SaveAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.SaveAnswer(userID, req.QuestionID, req.SelectedOption); err != nil {
		switch {
		case errors.Is(err, ErrInvalidOption):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrPaperNotFound):
			http.Error(w, "Question not found", http.StatusNotFound)
		case errors.Is(err, ErrAlreadySubmitted):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "saved"})
}

func (h *Handler) SubmitPaper(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	paperName := vars["paperName"]
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := h.service.Submit(userID, paperName)
	if err != nil {
		if errors.Is(err, ErrPaperNotFound) {
			http.Error(w, "Paper not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(summary)
}

func (h *Handler) ResetAnswers(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	paperName := vars["paperName"]
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	count, err := h.service.ResetAnswers(userID, paperName)
	if err != nil {
		if errors.Is(err, ErrPaperNotFound) {
			http.Error(w, "Paper not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]int64{"reset_count": count})
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	paperName := vars["paperName"]

	leaderboard, err := h.service.GetLeaderboard(paperName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(leaderboard)
}
