package server

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// corsMethods are the methods a preflight may be granted, in header order.
var corsMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
}

// requestLog carries what inner middleware learns about a request back to
// the access log line written by RequestLogging.
type requestLog struct {
	userID int
	login  string
}

type requestLogKey struct{}

// noteUser records the resolved user for the access log.
func noteUser(ctx context.Context, id int, login string) {
	if rl, ok := ctx.Value(requestLogKey{}).(*requestLog); ok {
		rl.userID, rl.login = id, login
	}
}

// APIKeyAuth returns middleware that guards score-mutating routes with the
// X-API-Key header.
func APIKeyAuth(apiKey string) func(http.Handler) http.Handler {
	want := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing API key"})
				return
			}
			if subtle.ConstantTimeCompare([]byte(key), want) != 1 {
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "invalid API key"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogging returns middleware that logs each request together with
// the user the identity middleware resolved for it.
func RequestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rl := &requestLog{}
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), requestLogKey{}, rl)))

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"bytes", sw.bytes,
				"duration", time.Since(start).String(),
			}
			if rl.login != "" {
				attrs = append(attrs, "user_id", rl.userID, "user", rl.login)
			}
			if sw.status >= http.StatusInternalServerError {
				log.Error("request", attrs...)
				return
			}
			log.Info("request", attrs...)
		})
	}
}

// CORS returns middleware that adds CORS headers and answers preflight
// requests with the methods routes actually registers for the path.
// Preflights for unknown paths get 404.
func CORS(routes chi.Routes) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")
			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			allowed := allowedMethods(routes, r.URL.Path)
			if len(allowed) == 0 {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "no route for " + r.URL.Path})
				return
			}
			w.Header().Set("Access-Control-Allow-Methods", strings.Join(append(allowed, http.MethodOptions), ", "))
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

func allowedMethods(routes chi.Routes, path string) []string {
	var allowed []string
	for _, m := range corsMethods {
		if routes.Match(chi.NewRouteContext(), m, path) {
			allowed = append(allowed, m)
		}
	}
	return allowed
}

// statusWriter wraps ResponseWriter to capture the status code and body size.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}
