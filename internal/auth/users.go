package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username or email already exists")
)

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (User, error) {
	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id,username,email,password_hash,created_at) VALUES ($1,$2,$3,$4,$5)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrDuplicateUser
		}
		return User{}, err
	}
	return u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id,username,email,password_hash,created_at FROM users WHERE username=$1`, username)
	var u User
	var created int64
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	u.CreatedAt = time.Unix(created, 0).UTC()
	return u, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // sqlite
		strings.Contains(msg, "duplicate key") // postgres
}
