package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/isdelr/card-binder-be/internal/common"
)

// Claims defines the JWT claims structure.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserKey is the context key for the authenticated username.
type contextKey string

const UserKey = contextKey("sessionUser")

// GenerateToken creates a new signed token for a given username.
func GenerateToken(secret []byte, username string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates a token string, returning its claims.
func ValidateToken(secret []byte, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// SessionResolver yields the currently logged-in username, if any.
type SessionResolver interface {
	Current() (string, error)
}

// SessionMiddleware creates a middleware gating routes on the presence of a
// valid session. The resolved username is passed down via context.
func SessionMiddleware(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, err := sessions.Current()
			if err != nil {
				if errors.Is(err, common.ErrNoSession) {
					http.Error(w, "Not logged in", http.StatusUnauthorized)
					return
				}
				http.Error(w, "Could not resolve session", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the session username placed by SessionMiddleware.
func UserFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UserKey).(string)
	return username, ok
}
