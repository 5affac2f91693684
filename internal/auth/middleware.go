package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spendwise/spendwise/internal/platform/httpx"
	"github.com/spendwise/spendwise/internal/shared"
)

// Middleware guards routes that require an authenticated caller.
type Middleware struct {
	logger  *slog.Logger
	service *Service
}

// NewMiddleware constructs the auth middleware.
func NewMiddleware(logger *slog.Logger, service *Service) Middleware {
	return Middleware{logger: logger, service: service}
}

// RequireUser extracts and verifies the Bearer token, resolves it to an
// account and attaches the identity to the request context. The wrapped
// handler is never reached on failure. A valid token whose account has
// since been deleted is rejected like any other invalid token.
func (m Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			httpx.Message(w, http.StatusUnauthorized, "no token")
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		userID, err := m.service.VerifyToken(token)
		if err != nil {
			httpx.Message(w, http.StatusUnauthorized, "invalid token")
			return
		}

		user, err := m.service.ResolveUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				httpx.Message(w, http.StatusUnauthorized, "invalid token")
				return
			}
			m.logger.Error("resolve token user", slog.Any("error", err))
			httpx.ServerError(w)
			return
		}

		identity := &shared.Identity{ID: user.ID, Username: user.Username, Email: user.Email}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithIdentity(r.Context(), identity)))
	})
}
