package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sirawit/asset-borrowing/internal/transport"
	"github.com/sirawit/asset-borrowing/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Sessions *SessionManager
}

func NewHandler(svc ServiceAPI, sessions *SessionManager) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Sessions:    sessions,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Service.Register(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("Register: account created", "user_id", user.ID, "username", user.Username)
	h.WriteJSON(w, http.StatusCreated, map[string]string{"message": "Register successful!"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	principal, err := h.Service.Login(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Sessions.Issue(w, principal); err != nil {
		h.Logger.Error("Login: failed to issue session", "error", err, "user_id", principal.ID)
		h.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    principal,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// Me reports the session state without erroring when no session exists.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Sessions.Read(r)
	if !ok {
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{"loggedIn": false})
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"loggedIn": true,
		"user":     principal,
	})
}

// SessionMiddleware rejects requests without a valid session cookie and puts
// the principal into the request context for downstream handlers.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := h.Sessions.Read(r)
		if !ok {
			h.WriteError(w, http.StatusUnauthorized, "Unauthorized: please login first")
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
	})
}
