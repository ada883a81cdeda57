package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// POST /auth/register  { "username": ..., "email": ..., "password": ... }
func RegisterHandler(repo *UserRepo, svc *AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Username == "" || req.Email == "" || req.Password == "" {
			http.Error(w, "username, email and password are required", http.StatusBadRequest)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "hash password", http.StatusInternalServerError)
			return
		}
		u, err := repo.Create(r.Context(), req.Username, req.Email, string(hash))
		if errors.Is(err, ErrDuplicateUser) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		tok, err := svc.IssueJWT(u.ID, u.Username)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(authResponse{Token: tok, UserID: u.ID, Username: u.Username})
	}
}

// POST /auth/login  { "username": ..., "password": ... }
func LoginHandler(repo *UserRepo, svc *AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		u, err := repo.GetByUsername(r.Context(), req.Username)
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "invalid username or password", http.StatusUnauthorized)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			http.Error(w, "invalid username or password", http.StatusUnauthorized)
			return
		}
		tok, err := svc.IssueJWT(u.ID, u.Username)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(authResponse{Token: tok, UserID: u.ID, Username: u.Username})
	}
}

// POST /auth/logout — tokens are stateless, nothing to revoke server-side.
func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}
