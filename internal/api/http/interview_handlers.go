package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mockmate/mockmate/internal/auth"
	"github.com/mockmate/mockmate/internal/interview"

	"github.com/go-chi/chi/v5"
)

// writeError maps core error kinds onto status codes. Store failures
// surface as 500 untouched.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interview.ErrUnauthenticated):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, interview.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// POST /interviews  { "category_id": ..., "difficulty": ..., "question_count": 5 }
func StartInterviewHandler(svc *interview.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CategoryID    string `json:"category_id"`
			Difficulty    string `json:"difficulty"`
			QuestionCount int    `json:"question_count"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.CategoryID == "" {
			http.Error(w, "category_id required", http.StatusBadRequest)
			return
		}
		res, err := svc.StartInterview(r.Context(), auth.UserIDFromContext(r.Context()),
			req.CategoryID, req.Difficulty, req.QuestionCount)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// POST /interviews/{sessionID}/answers  { "question_id": ..., "user_answer": ... }
func SubmitAnswerHandler(svc *interview.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")
		var req struct {
			QuestionID string `json:"question_id"`
			UserAnswer string `json:"user_answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		res, err := svc.SubmitAnswer(r.Context(), auth.UserIDFromContext(r.Context()),
			sessionID, req.QuestionID, req.UserAnswer)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// POST /interviews/{sessionID}/complete
func CompleteInterviewHandler(svc *interview.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")
		res, err := svc.CompleteInterview(r.Context(), auth.UserIDFromContext(r.Context()), sessionID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// GET /interviews — caller's history, most recent first.
func HistoryHandler(svc *interview.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.History(r.Context(), auth.UserIDFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /interviews/{sessionID}
func SessionDetailHandler(svc *interview.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")
		d, err := svc.GetSessionDetail(r.Context(), auth.UserIDFromContext(r.Context()), sessionID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	}
}
