package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"subtrack/src/util"

	"go.uber.org/zap"
)

type contextKey string

const subjectKey contextKey = "subject"

// ParseTokenFromRequest extracts and validates the bearer token, returning its subject.
func ParseTokenFromRequest(r *http.Request, secret string) (string, error) {
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		return "", fmt.Errorf("missing token")
	}

	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	claims, err := util.ParseToken(secret, tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// JWTAuthMiddleware rejects requests without a valid token. An empty secret
// disables authentication entirely.
func JWTAuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := ParseTokenFromRequest(r, secret)
			if err != nil {
				zap.L().Warn("rejected request", zap.String("path", r.URL.Path), zap.Error(err))
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext returns the token subject set by JWTAuthMiddleware.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok
}
