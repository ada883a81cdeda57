package interview

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuestionStore struct {
	questions  map[string]Question
	categories map[string]Category
}

func (f *fakeQuestionStore) GetQuestion(_ context.Context, id string) (Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return Question{}, ErrQuestionNotFound
	}
	return q, nil
}

func (f *fakeQuestionStore) GetCategory(_ context.Context, id string) (Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeQuestionStore) FindQuestions(_ context.Context, categoryID, difficulty string) ([]Question, error) {
	out := []Question{}
	for _, q := range f.questions {
		if q.CategoryID != categoryID {
			continue
		}
		if difficulty != "" && q.Difficulty != difficulty {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (f *fakeQuestionStore) ListCategories(_ context.Context) ([]Category, error) {
	out := []Category{}
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

type fakeSessionStore struct {
	sessions map[string]Session
	answers  map[string][]Answer
	nextID   int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]Session{}, answers: map[string][]Answer{}}
}

func (f *fakeSessionStore) CreateSession(_ context.Context, userID, categoryID string) (Session, error) {
	f.nextID++
	sess := Session{
		ID:         "sess-" + strconv.Itoa(f.nextID),
		UserID:     userID,
		CategoryID: categoryID,
		CreatedAt:  time.Now(),
	}
	f.sessions[sess.ID] = sess
	return sess, nil
}

func (f *fakeSessionStore) GetSession(_ context.Context, id string) (Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return sess, nil
}

func (f *fakeSessionStore) InsertAnswer(_ context.Context, a Answer) (Answer, error) {
	a.ID = "ans-" + strconv.Itoa(len(f.answers[a.SessionID])+1)
	f.answers[a.SessionID] = append(f.answers[a.SessionID], a)
	return a, nil
}

func (f *fakeSessionStore) CompleteSession(_ context.Context, id string, score int) (Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	now := time.Now()
	sess.CompletedAt = &now
	sess.Score = &score
	f.sessions[id] = sess
	return sess, nil
}

func (f *fakeSessionStore) ListAnswers(_ context.Context, sessionID string) ([]AnswerDetail, error) {
	out := []AnswerDetail{}
	for _, a := range f.answers[sessionID] {
		out = append(out, AnswerDetail{
			UserAnswer: a.UserAnswer,
			Rating:     a.Rating,
			Feedback:   a.Feedback,
		})
	}
	return out, nil
}

func (f *fakeSessionStore) ListSessionsForUser(_ context.Context, userID string) ([]SessionSummary, error) {
	out := []SessionSummary{}
	for _, sess := range f.sessions {
		if sess.UserID != userID {
			continue
		}
		out = append(out, SessionSummary{
			ID:                sess.ID,
			CategoryID:        sess.CategoryID,
			CreatedAt:         sess.CreatedAt,
			CompletedAt:       sess.CompletedAt,
			Score:             sess.Score,
			QuestionsAnswered: len(f.answers[sess.ID]),
		})
	}
	return out, nil
}

func newTestService(t *testing.T) (*Service, *fakeQuestionStore, *fakeSessionStore) {
	t.Helper()
	qs := &fakeQuestionStore{
		questions: map[string]Question{
			"q1": {ID: "q1", CategoryID: "cat1", Difficulty: "easy",
				QuestionText: "What is a goroutine?",
				SampleAnswer: "goroutines are lightweight threads managed by the go runtime scheduler"},
			"q2": {ID: "q2", CategoryID: "cat1", Difficulty: "easy",
				QuestionText: "What is a channel?",
				SampleAnswer: "channels are typed conduits used to communicate between goroutines safely"},
			"q3": {ID: "q3", CategoryID: "cat1", Difficulty: "hard",
				QuestionText: "Explain the memory model.",
				SampleAnswer: "the memory model defines when reads observe writes across goroutines"},
			"q4": {ID: "q4", CategoryID: "cat2", Difficulty: "easy",
				QuestionText: "What is CAP?",
				SampleAnswer: "consistency availability partition tolerance cannot all hold simultaneously"},
		},
		categories: map[string]Category{
			"cat1": {ID: "cat1", Name: "Go"},
			"cat2": {ID: "cat2", Name: "System Design"},
		},
	}
	ss := newFakeSessionStore()
	svc := NewService(qs, ss, WithRand(rand.New(rand.NewSource(1))))
	return svc, qs, ss
}

func longAnswer(s string) string {
	return s + strings.Repeat(" qwxzv", 25)
}

func TestStartInterview(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.StartInterview(ctx, "alice", "cat1", "easy", 2)
	require.NoError(t, err)
	assert.NotEmpty(t, res.SessionID)
	assert.Len(t, res.Questions, 2)
	for _, q := range res.Questions {
		assert.Equal(t, "cat1", q.CategoryID)
		assert.Equal(t, "easy", q.Difficulty)
		assert.Empty(t, q.SampleAnswer, "sample answers stay hidden at start")
	}
}

func TestStartInterviewUnauthenticated(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.StartInterview(context.Background(), "", "cat1", "", 5)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestStartInterviewUnknownCategory(t *testing.T) {
	svc, _, _ := newTestService(t)

	res, err := svc.StartInterview(context.Background(), "alice", "nope", "", 5)
	require.NoError(t, err)
	assert.NotEmpty(t, res.SessionID)
	assert.Empty(t, res.Questions)
}

func TestStartInterviewCapsAtAvailable(t *testing.T) {
	svc, _, _ := newTestService(t)

	res, err := svc.StartInterview(context.Background(), "alice", "cat1", "", 50)
	require.NoError(t, err)
	assert.Len(t, res.Questions, 3)
}

func TestSubmitAnswer(t *testing.T) {
	svc, qs, ss := newTestService(t)
	ctx := context.Background()

	start, err := svc.StartInterview(ctx, "alice", "cat1", "", 2)
	require.NoError(t, err)

	res, err := svc.SubmitAnswer(ctx, "alice", start.SessionID, "q1",
		longAnswer("goroutines are lightweight threads managed by the go runtime scheduler"))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Rating)
	assert.Equal(t, qs.questions["q1"].SampleAnswer, res.SampleAnswer)
	assert.Len(t, ss.answers[start.SessionID], 1)
}

func TestSubmitAnswerMissingQuestion(t *testing.T) {
	svc, _, ss := newTestService(t)
	ctx := context.Background()

	start, err := svc.StartInterview(ctx, "alice", "cat1", "", 1)
	require.NoError(t, err)

	res, err := svc.SubmitAnswer(ctx, "alice", start.SessionID, "no-such-question", "whatever")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Rating)
	assert.Equal(t, "", res.SampleAnswer)
	assert.NotEmpty(t, res.Feedback)
	assert.Len(t, ss.answers[start.SessionID], 1, "answer is still recorded")
}

func TestSubmitAnswerResubmissionAllowed(t *testing.T) {
	svc, _, ss := newTestService(t)
	ctx := context.Background()

	start, err := svc.StartInterview(ctx, "alice", "cat1", "", 1)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.SubmitAnswer(ctx, "alice", start.SessionID, "q1", "short answer")
		require.NoError(t, err)
	}
	assert.Len(t, ss.answers[start.SessionID], 3)
}

func TestOwnershipInvariant(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	start, err := svc.StartInterview(ctx, "alice", "cat1", "", 1)
	require.NoError(t, err)

	// Another user gets the same error on every session-scoped op.
	_, err = svc.SubmitAnswer(ctx, "bob", start.SessionID, "q1", "text")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CompleteInterview(ctx, "bob", start.SessionID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetSessionDetail(ctx, "bob", start.SessionID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestForbiddenHidesExistence(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	start, err := svc.StartInterview(ctx, "alice", "cat1", "", 1)
	require.NoError(t, err)

	_, unknownErr := svc.GetSessionDetail(ctx, "bob", "no-such-session")
	_, foreignErr := svc.GetSessionDetail(ctx, "bob", start.SessionID)

	// Unknown session and someone else's session must be identical.
	assert.ErrorIs(t, unknownErr, ErrForbidden)
	assert.ErrorIs(t, foreignErr, ErrForbidden)
	assert.Equal(t, unknownErr, foreignErr)
}

func TestCompleteInterviewNoAnswers(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	start, err := svc.StartInterview(ctx, "alice", "cat1", "", 1)
	require.NoError(t, err)

	res, err := svc.CompleteInterview(ctx, "alice", start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)
	assert.Empty(t, res.Answers)
}

func TestCompleteInterviewRoundsMean(t *testing.T) {
	svc, _, ss := newTestService(t)
	ctx := context.Background()

	start, err := svc.StartInterview(ctx, "alice", "cat1", "", 1)
	require.NoError(t, err)

	for _, rating := range []int{5, 4, 3} {
		_, err := ss.InsertAnswer(ctx, Answer{SessionID: start.SessionID, QuestionID: "q1", Rating: rating})
		require.NoError(t, err)
	}

	res, err := svc.CompleteInterview(ctx, "alice", start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Score, "round(mean(5,4,3)) = round(4.0)")
	assert.Len(t, res.Answers, 3)
}

func TestCompleteInterviewIdempotent(t *testing.T) {
	svc, _, ss := newTestService(t)
	ctx := context.Background()

	start, err := svc.StartInterview(ctx, "alice", "cat1", "", 1)
	require.NoError(t, err)
	_, err = ss.InsertAnswer(ctx, Answer{SessionID: start.SessionID, QuestionID: "q1", Rating: 5})
	require.NoError(t, err)

	first, err := svc.CompleteInterview(ctx, "alice", start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 5, first.Score)

	// A late answer must not shift the frozen score.
	_, err = ss.InsertAnswer(ctx, Answer{SessionID: start.SessionID, QuestionID: "q1", Rating: 1})
	require.NoError(t, err)

	second, err := svc.CompleteInterview(ctx, "alice", start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 5, second.Score)
}

func TestHistory(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.History(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	for i := 0; i < 3; i++ {
		_, err := svc.StartInterview(ctx, "alice", "cat1", "", 1)
		require.NoError(t, err)
	}
	_, err = svc.StartInterview(ctx, "bob", "cat2", "", 1)
	require.NoError(t, err)

	hist, err := svc.History(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, hist, 3)
}

func TestGetSessionDetail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	start, err := svc.StartInterview(ctx, "alice", "cat1", "", 1)
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(ctx, "alice", start.SessionID, "q1", "short")
	require.NoError(t, err)

	d, err := svc.GetSessionDetail(ctx, "alice", start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, start.SessionID, d.Session.ID)
	assert.Equal(t, "Go", d.CategoryName)
	assert.Len(t, d.Answers, 1)
}

func TestGetSessionDetailUnknownCategoryTolerated(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	start, err := svc.StartInterview(ctx, "alice", "ghost-category", "", 1)
	require.NoError(t, err)

	d, err := svc.GetSessionDetail(ctx, "alice", start.SessionID)
	require.NoError(t, err)
	assert.Empty(t, d.CategoryName)
}
