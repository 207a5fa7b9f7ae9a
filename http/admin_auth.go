package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// AdminAuthMiddleware guards operator routes with a static bearer token.
// With no token configured the routes are closed.
func AdminAuthMiddleware(token string, log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token == "" {
			writeError(w, log, http.StatusForbidden, "admin routes are disabled")
			return
		}

		presented, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || !secureCompare(strings.TrimSpace(presented), token) {
			log.Warn().
				Str("client", remoteHost(r)).
				Str("path", r.URL.Path).
				Msg("admin request rejected")
			w.Header().Set("WWW-Authenticate", `Bearer realm="dealdesk-admin"`)
			writeError(w, log, http.StatusUnauthorized, "invalid admin token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
