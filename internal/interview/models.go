package interview

import "time"

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Question struct {
	ID           string `json:"id"`
	CategoryID   string `json:"category_id"`
	QuestionText string `json:"question_text"`
	Difficulty   string `json:"difficulty"` // easy|medium|hard
	SampleAnswer string `json:"sample_answer,omitempty"`
}

// Session is one run of questions answered by one user in one category.
// CompletedAt and Score are both nil while in progress and both set once
// the session is completed.
type Session struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	CategoryID  string     `json:"category_id"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Score       *int       `json:"score,omitempty"`
}

func (s Session) Completed() bool { return s.CompletedAt != nil }

// Answer is an immutable record of one submitted answer.
type Answer struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	QuestionID string    `json:"question_id"`
	UserAnswer string    `json:"user_answer"`
	Rating     int       `json:"rating"` // 1..5
	Feedback   string    `json:"feedback"`
	CreatedAt  time.Time `json:"created_at"`
}

// AnswerDetail is an answer joined with its question's text and sample
// answer, as returned by completion and session-detail reads. Question
// fields are empty when the question no longer resolves.
type AnswerDetail struct {
	QuestionText string `json:"question_text"`
	UserAnswer   string `json:"user_answer"`
	Rating       int    `json:"rating"`
	Feedback     string `json:"feedback"`
	SampleAnswer string `json:"sample_answer"`
}

// SessionSummary is a history row: session metadata annotated with its
// category name and answer count.
type SessionSummary struct {
	ID                string     `json:"id"`
	CategoryID        string     `json:"category_id"`
	CategoryName      string     `json:"category_name"`
	CreatedAt         time.Time  `json:"created_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	Score             *int       `json:"score,omitempty"`
	QuestionsAnswered int        `json:"questions_answered"`
}
