package interview

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SQLStore implements QuestionStore and SessionStore over database/sql.
// Works against both sqlite (modernc) and postgres (pgx stdlib); the
// schema lives in internal/db.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) GetQuestion(ctx context.Context, id string) (Question, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,category_id,question_text,difficulty,sample_answer FROM questions WHERE id=$1`, id)
	var q Question
	if err := row.Scan(&q.ID, &q.CategoryID, &q.QuestionText, &q.Difficulty, &q.SampleAnswer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, ErrQuestionNotFound
		}
		return Question{}, err
	}
	return q, nil
}

func (s *SQLStore) GetCategory(ctx context.Context, id string) (Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,name,description FROM categories WHERE id=$1`, id)
	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Category{}, ErrCategoryNotFound
		}
		return Category{}, err
	}
	return c, nil
}

func (s *SQLStore) FindQuestions(ctx context.Context, categoryID, difficulty string) ([]Question, error) {
	query := `SELECT id,category_id,question_text,difficulty,sample_answer FROM questions WHERE category_id=$1`
	args := []any{categoryID}
	if difficulty != "" {
		query += ` AND difficulty=$2`
		args = append(args, difficulty)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Question{}
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.CategoryID, &q.QuestionText, &q.Difficulty, &q.SampleAnswer); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,name,description FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) CreateSession(ctx context.Context, userID, categoryID string) (Session, error) {
	sess := Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		CategoryID: categoryID,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interview_sessions (id,user_id,category_id,created_at) VALUES ($1,$2,$3,$4)`,
		sess.ID, sess.UserID, sess.CategoryID, sess.CreatedAt.Unix())
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *SQLStore) GetSession(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,user_id,category_id,created_at,completed_at,score FROM interview_sessions WHERE id=$1`, id)
	var sess Session
	var created int64
	var completed sql.NullInt64
	var score sql.NullInt64
	if err := row.Scan(&sess.ID, &sess.UserID, &sess.CategoryID, &created, &completed, &score); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, err
	}
	sess.CreatedAt = time.Unix(created, 0).UTC()
	if completed.Valid {
		t := time.Unix(completed.Int64, 0).UTC()
		sess.CompletedAt = &t
	}
	if score.Valid {
		n := int(score.Int64)
		sess.Score = &n
	}
	return sess, nil
}

func (s *SQLStore) InsertAnswer(ctx context.Context, a Answer) (Answer, error) {
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()
	// nanosecond resolution keeps submission order stable for the
	// ListAnswers sort
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_answers (id,session_id,question_id,user_answer,rating,feedback,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.SessionID, a.QuestionID, a.UserAnswer, a.Rating, a.Feedback, a.CreatedAt.UnixNano())
	if err != nil {
		return Answer{}, err
	}
	return a, nil
}

func (s *SQLStore) CompleteSession(ctx context.Context, id string, score int) (Session, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE interview_sessions SET completed_at=$1, score=$2 WHERE id=$3`,
		time.Now().Unix(), score, id)
	if err != nil {
		return Session{}, err
	}
	return s.GetSession(ctx, id)
}

func (s *SQLStore) ListAnswers(ctx context.Context, sessionID string) ([]AnswerDetail, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			COALESCE(q.question_text, ''),
			ua.user_answer,
			ua.rating,
			ua.feedback,
			COALESCE(q.sample_answer, '')
		FROM user_answers ua
		LEFT JOIN questions q ON ua.question_id = q.id
		WHERE ua.session_id = $1
		ORDER BY ua.created_at, ua.id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []AnswerDetail{}
	for rows.Next() {
		var d AnswerDetail
		if err := rows.Scan(&d.QuestionText, &d.UserAnswer, &d.Rating, &d.Feedback, &d.SampleAnswer); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListSessionsForUser(ctx context.Context, userID string) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			ses.id,
			ses.category_id,
			COALESCE(c.name, ''),
			ses.created_at,
			ses.completed_at,
			ses.score,
			COUNT(ua.id)
		FROM interview_sessions ses
		LEFT JOIN categories c ON ses.category_id = c.id
		LEFT JOIN user_answers ua ON ses.id = ua.session_id
		WHERE ses.user_id = $1
		GROUP BY ses.id, ses.category_id, c.name, ses.created_at, ses.completed_at, ses.score
		ORDER BY ses.created_at DESC, ses.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []SessionSummary{}
	for rows.Next() {
		var sum SessionSummary
		var created int64
		var completed, score sql.NullInt64
		if err := rows.Scan(&sum.ID, &sum.CategoryID, &sum.CategoryName, &created, &completed, &score, &sum.QuestionsAnswered); err != nil {
			return nil, err
		}
		sum.CreatedAt = time.Unix(created, 0).UTC()
		if completed.Valid {
			t := time.Unix(completed.Int64, 0).UTC()
			sum.CompletedAt = &t
		}
		if score.Valid {
			n := int(score.Int64)
			sum.Score = &n
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
