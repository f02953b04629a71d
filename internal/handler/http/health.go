package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/handler/http/response"
)

// Pinger is satisfied by *database.DB.
type Pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler interface {
	Check(w http.ResponseWriter, r *http.Request)
}

type HealthHandlerImpl struct {
	db      Pinger
	timeout time.Duration
}

// Check implements HealthHandler.
func (h *HealthHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.Health(ctx); err != nil {
		slog.Error("Health check database error", "error", err)
		response.JSON(w, http.StatusServiceUnavailable, map[string]string{"db": "unavailable"})
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"db": "connected"})
}

func NewHealthHandler(db Pinger) HealthHandler {
	return &HealthHandlerImpl{db: db, timeout: 2 * time.Second}
}
