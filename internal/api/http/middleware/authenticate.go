package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/dtroode/userdir-server/internal/logger"
)

// openPaths are served without authentication.
var openPaths = []string{"/health", "/swagger"}

// Authenticate validates the bearer token on every request except the
// open paths. The token is compared in constant time against a single
// configured secret; an empty secret rejects everything.
type Authenticate struct {
	secret string
	logger *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(secret string, logger *logger.Logger) *Authenticate {
	return &Authenticate{secret: secret, logger: logger}
}

// Handle wraps next with the authentication check.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, p := range openPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		if !m.authorized(r) {
			m.logger.Debug("request rejected by auth gate", "path", r.URL.Path)
			w.Header().Set("WWW-Authenticate", "Bearer")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Unauthorized."}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Authenticate) authorized(r *http.Request) bool {
	if m.secret == "" {
		return false
	}

	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(token), []byte(m.secret)) == 1
}
