package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type AuthService struct{ hmac []byte }

func NewAuthService(secret string) *AuthService { return &AuthService{hmac: []byte(secret)} }

type Claims struct {
	Sub      string `json:"sub"` // user id
	Username string `json:"username"`
	jwt.RegisteredClaims
}

var errInvalidToken = errors.New("invalid token")

func (a *AuthService) IssueJWT(userID, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Sub:      userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "mockmate",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.hmac)
}

func (a *AuthService) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.hmac, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errInvalidToken
	}
	c, ok := token.Claims.(*Claims)
	if !ok || c.Sub == "" {
		return nil, errInvalidToken
	}
	return c, nil
}
