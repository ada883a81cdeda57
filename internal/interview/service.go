package interview

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/mockmate/mockmate/internal/eventlog"
	"github.com/mockmate/mockmate/internal/scoring"
)

// DefaultQuestionCount is used when a start request does not say how
// many questions it wants.
const DefaultQuestionCount = 5

// Service orchestrates the interview session lifecycle. It is stateless
// between requests; all durable state lives in the injected stores.
type Service struct {
	questions QuestionStore
	sessions  SessionStore
	scorer    scoring.Scorer
	events    *eventlog.Repo
	rng       *rand.Rand
}

type ServiceOption func(*Service)

// WithScorer replaces the default keyword scorer.
func WithScorer(s scoring.Scorer) ServiceOption { return func(svc *Service) { svc.scorer = s } }

// WithEventLog records lifecycle events; appends are best-effort and
// never fail the operation that triggered them.
func WithEventLog(r *eventlog.Repo) ServiceOption { return func(svc *Service) { svc.events = r } }

// WithRand injects the randomness source used for question sampling.
func WithRand(rng *rand.Rand) ServiceOption { return func(svc *Service) { svc.rng = rng } }

func NewService(questions QuestionStore, sessions SessionStore, opts ...ServiceOption) *Service {
	svc := &Service{
		questions: questions,
		sessions:  sessions,
		scorer:    scoring.NewKeywordScorer(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, o := range opts {
		o(svc)
	}
	return svc
}

type StartResult struct {
	SessionID string     `json:"session_id"`
	Questions []Question `json:"questions"`
}

// StartInterview creates a session owned by userID and draws a random
// question set. An unknown category is not an error; the session simply
// starts with no questions.
func (s *Service) StartInterview(ctx context.Context, userID, categoryID, difficulty string, count int) (StartResult, error) {
	if userID == "" {
		return StartResult{}, ErrUnauthenticated
	}
	if count <= 0 {
		count = DefaultQuestionCount
	}

	sess, err := s.sessions.CreateSession(ctx, userID, categoryID)
	if err != nil {
		return StartResult{}, err
	}

	candidates, err := s.questions.FindQuestions(ctx, categoryID, difficulty)
	if err != nil {
		return StartResult{}, err
	}
	picked := sampleQuestions(s.rng, candidates, count)
	// sample answers are the scoring reference; don't hand them out
	// before the answer comes back
	for i := range picked {
		picked[i].SampleAnswer = ""
	}

	s.record(ctx, eventlog.TypeSessionStarted, sess.ID, map[string]any{
		"user_id": userID, "category_id": categoryID, "questions": len(picked),
	})
	return StartResult{SessionID: sess.ID, Questions: picked}, nil
}

type SubmitResult struct {
	Rating       int    `json:"rating"`
	Feedback     string `json:"feedback"`
	SampleAnswer string `json:"sample_answer"`
}

// SubmitAnswer scores and records one answer. The question id may
// reference any question, or none at all: a missing question falls back
// to the default rating with an empty sample answer.
func (s *Service) SubmitAnswer(ctx context.Context, userID, sessionID, questionID, answerText string) (SubmitResult, error) {
	if _, err := s.authorize(ctx, userID, sessionID); err != nil {
		return SubmitResult{}, err
	}

	var res scoring.Result
	var sample string
	q, err := s.questions.GetQuestion(ctx, questionID)
	switch {
	case err == nil:
		sample = q.SampleAnswer
		res = s.scorer.Score(q.SampleAnswer, answerText)
	case errors.Is(err, ErrQuestionNotFound):
		res = scoring.DefaultResult()
	default:
		return SubmitResult{}, err
	}

	if _, err := s.sessions.InsertAnswer(ctx, Answer{
		SessionID:  sessionID,
		QuestionID: questionID,
		UserAnswer: answerText,
		Rating:     res.Rating,
		Feedback:   res.Feedback,
	}); err != nil {
		return SubmitResult{}, err
	}

	s.record(ctx, eventlog.TypeAnswerSubmitted, sessionID, map[string]any{
		"question_id": questionID, "rating": res.Rating,
	})
	return SubmitResult{Rating: res.Rating, Feedback: res.Feedback, SampleAnswer: sample}, nil
}

type CompletionResult struct {
	Score   int            `json:"score"`
	Answers []AnswerDetail `json:"answers"`
}

// CompleteInterview freezes the session score as the rounded mean of all
// answer ratings (0 when nothing was answered). Completing an already
// completed session is idempotent: the frozen score is returned and
// nothing is recomputed.
func (s *Service) CompleteInterview(ctx context.Context, userID, sessionID string) (CompletionResult, error) {
	sess, err := s.authorize(ctx, userID, sessionID)
	if err != nil {
		return CompletionResult{}, err
	}

	answers, err := s.sessions.ListAnswers(ctx, sessionID)
	if err != nil {
		return CompletionResult{}, err
	}

	if sess.Completed() {
		return CompletionResult{Score: *sess.Score, Answers: answers}, nil
	}

	score := 0
	if len(answers) > 0 {
		sum := 0
		for _, a := range answers {
			sum += a.Rating
		}
		score = int(math.Round(float64(sum) / float64(len(answers))))
	}

	if _, err := s.sessions.CompleteSession(ctx, sessionID, score); err != nil {
		return CompletionResult{}, err
	}

	s.record(ctx, eventlog.TypeSessionCompleted, sessionID, map[string]any{
		"score": score, "answers": len(answers),
	})
	return CompletionResult{Score: score, Answers: answers}, nil
}

// History lists the caller's sessions, most recent first.
func (s *Service) History(ctx context.Context, userID string) ([]SessionSummary, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.sessions.ListSessionsForUser(ctx, userID)
}

type SessionDetail struct {
	Session      Session        `json:"session"`
	CategoryName string         `json:"category_name"`
	Answers      []AnswerDetail `json:"answers"`
}

// GetSessionDetail returns session metadata plus its full answer list.
func (s *Service) GetSessionDetail(ctx context.Context, userID, sessionID string) (SessionDetail, error) {
	sess, err := s.authorize(ctx, userID, sessionID)
	if err != nil {
		return SessionDetail{}, err
	}
	answers, err := s.sessions.ListAnswers(ctx, sessionID)
	if err != nil {
		return SessionDetail{}, err
	}
	d := SessionDetail{Session: sess, Answers: answers}
	if cat, err := s.questions.GetCategory(ctx, sess.CategoryID); err == nil {
		d.CategoryName = cat.Name
	} else if !errors.Is(err, ErrCategoryNotFound) {
		return SessionDetail{}, err
	}
	return d, nil
}

// authorize enforces the ownership invariant on session-scoped
// operations. A nonexistent session and a session owned by another user
// are indistinguishable to the caller.
func (s *Service) authorize(ctx context.Context, userID, sessionID string) (Session, error) {
	if userID == "" {
		return Session{}, ErrUnauthenticated
	}
	sess, err := s.sessions.GetSession(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return Session{}, ErrForbidden
	}
	if err != nil {
		return Session{}, err
	}
	if sess.UserID != userID {
		return Session{}, ErrForbidden
	}
	return sess, nil
}

func (s *Service) record(ctx context.Context, typ, key string, data map[string]any) {
	if s.events == nil {
		return
	}
	buf, _ := json.Marshal(data)
	_ = s.events.Append(ctx, eventlog.Event{Type: typ, Key: key, DataJSON: string(buf)})
}
