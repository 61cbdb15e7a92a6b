package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// sessionKeyKey is the context key for the browsing session key.
const sessionKeyKey contextKey = "session_key"

// SessionCookie is the fallback cookie carrying the session key for
// browser clients that cannot set the header.
const SessionCookie = "storefront_session"

// SessionKeyFromHeader reads the X-Session-ID header, falling back to the
// session cookie, and stores the key in the request context. Session-scoped
// routes reject requests without it.
func SessionKeyFromHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(middleware.SessionHeader)
		if key == "" {
			if c, err := r.Cookie(SessionCookie); err == nil {
				key = c.Value
			}
		}
		if key == "" {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{
					Code:    "INVALID_INPUT",
					Message: middleware.SessionHeader + " header is required",
				},
			})
			return
		}
		ctx := context.WithValue(r.Context(), sessionKeyKey, key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionKeyFromContext extracts the session key from the request context.
func sessionKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(sessionKeyKey).(string)
	return key, ok && key != ""
}

// ContentTypeJSON enforces that requests with a body have
// Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{
						Code:    "UNSUPPORTED_MEDIA_TYPE",
						Message: "Content-Type must be application/json",
					},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
