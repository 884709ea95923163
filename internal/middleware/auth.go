package middleware

import (
	"context"
	"net/http"

	"github.com/kevish-is-building/Startup-co/internal/session"
)

// unexported, collision-proof context key
type sessionContextKeyType struct{}

var sessionKey = sessionContextKeyType{}

// SessionFromContext extracts the authenticated session from context.
func SessionFromContext(ctx context.Context) (*session.AuthSession, bool) {
	sess, ok := ctx.Value(sessionKey).(*session.AuthSession)
	return sess, ok
}

type AuthMiddleware struct {
	Sessions *session.Service
}

func NewAuthMiddleware(sessions *session.Service) *AuthMiddleware {
	return &AuthMiddleware{Sessions: sessions}
}

// RequireAuth guards API routes. Missing or dead credentials are a 401;
// only a store fault is a 500, and its detail stays server-side.
func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := session.TokenFromRequest(r)
		if tok == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sess, err := a.Sessions.Validate(r.Context(), tok)
		if err != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if sess == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
