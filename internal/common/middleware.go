package common

import (
	"context"
	"net/http"
	"strings"

	"vidtube/internal/dbmysql"
)

type contextKey string

const userContextKey contextKey = "current_user"

// UserLoader resolves a token subject to a live user record. Implemented by
// the user repository; secret columns never leave the store for this path.
type UserLoader interface {
	LoadUser(ctx context.Context, userID uint64) (*dbmysql.User, error)
}

// AuthMiddleware binds the acting identity to the request context. Required
// routes fail with Unauthorized; optional routes treat a missing or broken
// credential as anonymous.
type AuthMiddleware struct {
	tokens *TokenManager
	users  UserLoader
}

func NewAuthMiddleware(tokens *TokenManager, users UserLoader) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Require rejects the request unless a valid access credential resolves to a user.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolve(r)
		if err != nil {
			RespondError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// Optional resolves the identity when present and carries on anonymously
// otherwise. It never fails the request.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolve(r)
		if err == nil {
			r = r.WithContext(WithUser(r.Context(), user))
		}

		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) resolve(r *http.Request) (*dbmysql.User, error) {
	token := extractToken(r)
	if token == "" {
		return nil, Unauthorized("unauthorized request")
	}

	claims, err := m.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil, Unauthorized("invalid or expired access token")
	}

	user, err := m.users.LoadUser(r.Context(), claims.UserID)
	if err != nil {
		return nil, Unauthorized("invalid token access")
	}

	return user, nil
}

// extractToken prefers the accessToken cookie and falls back to the
// Authorization bearer header.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

// WithUser binds the acting user to the context.
func WithUser(ctx context.Context, user *dbmysql.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// CurrentUser returns the acting user bound by the auth middleware, if any.
func CurrentUser(ctx context.Context) (*dbmysql.User, bool) {
	user, ok := ctx.Value(userContextKey).(*dbmysql.User)
	return user, ok && user != nil
}
