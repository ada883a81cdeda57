package http

import (
	"net/http"

	"github.com/mockmate/mockmate/internal/interview"
)

// GET /categories
func ListCategoriesHandler(store interview.QuestionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := store.ListCategories(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cats)
	}
}

// GET /questions?category_id=...&difficulty=...
// Sample answers are stripped; they are the scoring reference.
func ListQuestionsHandler(store interview.QuestionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := r.URL.Query().Get("category_id")
		if categoryID == "" {
			http.Error(w, "category_id required", http.StatusBadRequest)
			return
		}
		qs, err := store.FindQuestions(r.Context(), categoryID, r.URL.Query().Get("difficulty"))
		if err != nil {
			writeError(w, err)
			return
		}
		for i := range qs {
			qs[i].SampleAnswer = ""
		}
		writeJSON(w, http.StatusOK, qs)
	}
}
