package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"

	"github.com/streamvault/watchlist-api/internal/auth"
)

// resolveIdentity parses a Bearer token into a caller identity on the
// request context. Requests without a valid token proceed as anonymous;
// individual operations decide whether that is acceptable.
func (s *Server) resolveIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if strings.HasPrefix(header, prefix) {
			token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
			if id, err := s.tokens.Resolve(token); err == nil {
				r = r.WithContext(auth.WithIdentity(r.Context(), id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// reviewRateLimiter throttles review creation and listing per caller
// identity, falling back to the client IP for anonymous requests. The
// threshold is a deployment parameter; a zero limit disables throttling.
func (s *Server) reviewRateLimiter() func(http.Handler) http.Handler {
	if s.cfg.ReviewRateLimit <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	keyFunc := func(r *http.Request) (string, error) {
		if id := auth.IdentityFrom(r.Context()); id != nil {
			return "user:" + id.UserID, nil
		}
		return httprate.KeyByIP(r)
	}

	limitHandler := func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Request limit exceeded, try again later")
	}

	return httprate.Limit(
		s.cfg.ReviewRateLimit,
		time.Duration(s.cfg.ReviewRateWindowSec)*time.Second,
		httprate.WithKeyFuncs(keyFunc),
		httprate.WithLimitHandler(limitHandler),
	)
}
