package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type contextKey string

const CallerKey contextKey = "caller"

const accessTokenCookie = "access_token"

// RequireCaller resolves the caller address from the access_token cookie or
// a bearer Authorization header and stores it under CallerKey.
func RequireCaller(verifier ports.TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				http.Error(w, "Unauthorized: missing access token", http.StatusUnauthorized)
				return
			}

			caller, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.WarnContext(r.Context(), "rejected access token", "error", err)
				http.Error(w, "Unauthorized: invalid access token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), CallerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	if cookie, err := r.Cookie(accessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func callerFromContext(ctx context.Context) (domain.Address, bool) {
	caller, ok := ctx.Value(CallerKey).(domain.Address)
	return caller, ok && caller != ""
}
