package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/accel-platform/pkg/response"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz godoc
// @Summary Liveness and database readiness
// @Tags health
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /healthz [get]
func (h *HealthHandler) Healthz(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: "database unavailable: " + err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "ok"})
}
