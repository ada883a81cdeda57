package interview

import (
	"context"
	"errors"
)

var (
	// ErrUnauthenticated means no caller identity was supplied.
	ErrUnauthenticated = errors.New("not logged in")

	// ErrForbidden covers both a session owned by someone else and a
	// session that does not exist. Callers must not be able to tell the
	// two apart.
	ErrForbidden = errors.New("unauthorized access to this session")

	// ErrSessionNotFound is store-internal; the service folds it into
	// ErrForbidden before it reaches a caller.
	ErrSessionNotFound = errors.New("session not found")

	// ErrQuestionNotFound is tolerated on submission: scoring falls back
	// to the default result.
	ErrQuestionNotFound = errors.New("question not found")
)

// ErrCategoryNotFound is only surfaced by catalog reads; the session
// lifecycle tolerates unknown categories.
var ErrCategoryNotFound = errors.New("category not found")

// QuestionStore is read-only reference data.
type QuestionStore interface {
	GetQuestion(ctx context.Context, id string) (Question, error)
	GetCategory(ctx context.Context, id string) (Category, error)
	// FindQuestions returns all questions in a category, optionally
	// narrowed to one difficulty. An unknown category yields an empty
	// slice, not an error.
	FindQuestions(ctx context.Context, categoryID, difficulty string) ([]Question, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

// SessionStore owns all durable session state. Implementations provide
// per-statement atomicity only; the service does not assume transactions
// across calls.
type SessionStore interface {
	CreateSession(ctx context.Context, userID, categoryID string) (Session, error)
	GetSession(ctx context.Context, id string) (Session, error)
	InsertAnswer(ctx context.Context, a Answer) (Answer, error)
	CompleteSession(ctx context.Context, id string, score int) (Session, error)
	ListAnswers(ctx context.Context, sessionID string) ([]AnswerDetail, error)
	ListSessionsForUser(ctx context.Context, userID string) ([]SessionSummary, error)
}
