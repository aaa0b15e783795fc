package handlers

import (
	"log"
	"net/http"

	"github.com/vadjik31/procto-bo/internal/entity"
)

// FunnelStatsHandler serves the per-stage lead counts the ops dashboard
// polls. Read-only.
type FunnelStatsHandler struct {
	Repo entity.LeadRepositoryInterface
}

type FunnelStatsResponse struct {
	OK     bool           `json:"ok"`
	Total  int            `json:"total"`
	Stages map[string]int `json:"stages"`
}

func NewFunnelStatsHandler(repo entity.LeadRepositoryInterface) *FunnelStatsHandler {
	return &FunnelStatsHandler{Repo: repo}
}

func (h *FunnelStatsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Repo.CountByStage(r.Context())
	if err != nil {
		log.Printf("❌ funnel stats: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"ok": false, "error": "store unavailable"})
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	writeJSON(w, http.StatusOK, FunnelStatsResponse{OK: true, Total: total, Stages: counts})
}
