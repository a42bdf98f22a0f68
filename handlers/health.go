package handlers

import (
	"database/sql"
	"net/http"

	"github.com/akinalp/firmenportal/pkg"
	"github.com/akinalp/firmenportal/realtime"
)

// HealthHandler, liveness/readiness endpoint'i.
type HealthHandler struct {
	db  *sql.DB
	hub *realtime.Hub
}

// NewHealthHandler, constructor.
func NewHealthHandler(db *sql.DB, hub *realtime.Hub) *HealthHandler {
	return &HealthHandler{db: db, hub: hub}
}

// Check godoc
// GET /api/health
// DB erişilemiyorsa 503 döner — load balancer instance'ı devre dışı bırakır.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		pkg.ErrorWithMessage(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{
		"status":            "ok",
		"connected_clients": h.hub.ConnectedClients(),
	})
}
