package asset

import (
	"log/slog"
	"net/http"

	"github.com/sirawit/asset-borrowing/internal/transport"
	"github.com/sirawit/asset-borrowing/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Repo Repository
}

func NewHandler(repo Repository) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Repo:        repo,
	}
}

// ListAssets handles GET /api/asset: an unfiltered projection of all assets.
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Repo.ListAssets()
	if err != nil {
		h.Logger.Error("ListAssets: query failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	h.WriteJSON(w, http.StatusOK, assets)
}

// Dashboard handles GET /api/dashboard: asset counts per status.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Repo.CountByStatus()
	if err != nil {
		h.Logger.Error("Dashboard: count query failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	h.WriteJSON(w, http.StatusOK, counts)
}
