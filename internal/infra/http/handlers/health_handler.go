package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/vadjik31/procto-bo/internal/config"
)

type HealthHandler struct {
	DB        *sql.DB
	Cfg       *config.Config
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db *sql.DB, cfg *config.Config) *HealthHandler {
	return &HealthHandler{DB: db, Cfg: cfg, StartTime: time.Now()}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if err := h.DB.Ping(); err != nil {
		deps["database"] = fmt.Sprintf("unhealthy: %v", err)
	} else {
		deps["database"] = "healthy"
	}

	if h.Cfg.InviteConfigured() {
		deps["skillspace"] = "configured"
	} else {
		deps["skillspace"] = "not configured"
	}
	deps["telegram"] = "configured" // startup fails without a token

	status := "healthy"
	code := http.StatusOK
	if deps["database"] != "healthy" {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:       status,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	})
}
