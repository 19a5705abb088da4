package router

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mslima/blog-core-go/internal/account"
	"github.com/mslima/blog-core-go/internal/auth"
	"github.com/mslima/blog-core-go/internal/category"
	"github.com/mslima/blog-core-go/pkg/result"
	"github.com/mslima/blog-core-go/pkg/utilities"
)

// Route is one row of the explicit route table. The authorization gate
// consults RequireAuth/RequireRole before the handler ever runs.
type Route struct {
	Method      string
	Path        string
	Handler     http.HandlerFunc
	RequireAuth bool
	RequireRole string
}

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware returns a middleware that logs requests at debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			// ensure status is set
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
				"request_id", w.Header().Get("X-Request-Id"),
			)
		})
	}
}

// RequestIDMiddleware tags every response with a snowflake request ID unless
// the caller already supplied one.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = utilities.NewSnowflakeID()
			}
			w.Header().Set("X-Request-Id", id)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP security headers.
// It is intentionally simple and conservative so it works with most setups.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// Clickjacking protection
			w.Header().Set("X-Frame-Options", "DENY")

			// Referrer policy
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")

			// Permissions policy - tighten common features
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

			if w.Header().Get("Content-Security-Policy") == "" {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; object-src 'none'; base-uri 'self';")
			}

			// HSTS only over TLS
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Table builds the full route table for the API. Registration and login are
// the anonymous exceptions to token auth; image upload needs a valid token;
// the three demo routes exercise role-gated authorization.
func Table(accounts *account.Handler, categories *category.Handler) []Route {
	return []Route{
		{Method: http.MethodPost, Path: "/v1/accounts", Handler: accounts.Register},
		{Method: http.MethodPost, Path: "/v1/accounts/login", Handler: accounts.Login},
		{Method: http.MethodPost, Path: "/v1/accounts/upload-image", Handler: accounts.UploadImage, RequireAuth: true},

		{Method: http.MethodGet, Path: "/v1/categories", Handler: categories.List},
		{Method: http.MethodGet, Path: "/v1/categories/{id}", Handler: categories.Get},
		{Method: http.MethodPost, Path: "/v1/categories", Handler: categories.Create},
		{Method: http.MethodPut, Path: "/v1/categories/{id}", Handler: categories.Update},
		{Method: http.MethodDelete, Path: "/v1/categories/{id}", Handler: categories.Delete},

		{Method: http.MethodGet, Path: "/v1/user", Handler: whoami, RequireAuth: true, RequireRole: "user"},
		{Method: http.MethodGet, Path: "/v1/author", Handler: whoami, RequireAuth: true, RequireRole: "author"},
		{Method: http.MethodGet, Path: "/v1/admin", Handler: whoami, RequireAuth: true, RequireRole: "admin"},
	}
}

// whoami echoes the authenticated identity.
func whoami(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		result.WriteFail(w, http.StatusUnauthorized, auth.MsgBadCredentials)
		return
	}
	result.WriteOk(w, claims.Name)
}

// RegisterRoutes mounts the route table on a stdlib http.ServeMux, wiring the
// authorization gate in front of each guarded handler, then wraps the mux
// with the ambient middleware stack. Authentication always runs before
// authorization, which runs before any handler logic.
func RegisterRoutes(logger *zap.SugaredLogger, gate *auth.Gate, routes []Route) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	for _, rt := range routes {
		var h http.Handler = rt.Handler
		switch {
		case rt.RequireRole != "":
			h = gate.RequireRole(rt.RequireRole, h)
		case rt.RequireAuth:
			h = gate.Require(h)
		}
		mux.Handle(rt.Method+" "+rt.Path, h)
	}

	handler := RequestIDMiddleware()(SecurityHeadersMiddleware()(mux))
	return LoggingMiddleware(logger)(handler)
}
