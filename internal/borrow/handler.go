package borrow

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/sirawit/asset-borrowing/internal/auth"
	"github.com/sirawit/asset-borrowing/internal/transport"
	"github.com/sirawit/asset-borrowing/pkg/logger"
)

type ServiceAPI interface {
	Submit(principal *auth.Principal, dto SubmitBorrowDTO) (*Borrow, error)
	Decide(principal *auth.Principal, borrowID int64, dto DecideDTO) (*Borrow, error)
	History(principal *auth.Principal) ([]HistoryRecord, error)
	ActiveCheck(principal *auth.Principal) (*ActiveCheck, error)
	PendingQueue() ([]PendingRequest, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// SubmitBorrow handles POST /api/borrow.
func (h *Handler) SubmitBorrow(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "Unauthorized: please login first")
		return
	}

	var dto SubmitBorrowDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitBorrow: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.Submit(principal, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Borrow request submitted successfully",
		"id":      rec.ID,
	})
}

// DecideBorrow handles PATCH /api/borrow/{id}.
func (h *Handler) DecideBorrow(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "Unauthorized: please login first")
		return
	}

	idStr := chi.URLParam(r, "id")
	borrowID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("DecideBorrow: invalid borrow ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid borrow ID")
		return
	}

	var dto DecideDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("DecideBorrow: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.Decide(principal, borrowID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Borrow request " + rec.Status,
		"status":  rec.Status,
	})
}

// History handles GET /api/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "Unauthorized: please login first")
		return
	}

	records, err := h.Service.History(principal)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if records == nil {
		records = []HistoryRecord{}
	}

	h.WriteJSON(w, http.StatusOK, records)
}

// CheckRequests handles GET /api/borrow-requests/check.
func (h *Handler) CheckRequests(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "Unauthorized: please login first")
		return
	}

	check, err := h.Service.ActiveCheck(principal)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, check)
}

// PendingQueue handles GET /api/checkrequest, the unauthenticated triage view.
func (h *Handler) PendingQueue(w http.ResponseWriter, r *http.Request) {
	pending, err := h.Service.PendingQueue()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if pending == nil {
		pending = []PendingRequest{}
	}

	h.WriteJSON(w, http.StatusOK, pending)
}
