package handlers

import (
	"net/http"

	"github.com/crucial707/asset-inventory/internal/repo"
)

type DashboardHandler struct {
	Repo *repo.DashboardRepo
}

// GetSummary computes the dashboard aggregation fresh on every call.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Repo.Summary(r.Context())
	if err != nil {
		StoreError(w, err, "dashboard")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
