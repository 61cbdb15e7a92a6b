package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/session"
	"github.com/utafrali/storefront/pkg/httputil"
)

// SessionHandler exposes the signed-in identity read from tokens issued by
// the external auth service.
type SessionHandler struct {
	manager *session.Manager
	logger  *slog.Logger
}

// NewSessionHandler creates a new session HTTP handler.
func NewSessionHandler(manager *session.Manager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{manager: manager, logger: logger}
}

// IdentityView is the JSON payload for the current identity.
type IdentityView struct {
	SignedIn bool              `json:"signed_in"`
	Identity *session.Identity `json:"identity,omitempty"`
}

// Get handles GET /api/v1/session
//
// Anonymous requests get signed_in=false rather than an error.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := h.manager.FromRequest(r)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: IdentityView{
		SignedIn: identity != nil,
		Identity: identity,
	}})
}

// SignOut handles POST /api/v1/session/signout
func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, session.SignOutCookie())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "signed_out"}})
}
