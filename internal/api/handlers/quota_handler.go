package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/accel-platform/internal/application"
	"github.com/linskybing/accel-platform/internal/domain/quota"
)

type QuotaHandler struct {
	ledger *application.QuotaLedger
}

func NewQuotaHandler(ledger *application.QuotaLedger) *QuotaHandler {
	return &QuotaHandler{ledger: ledger}
}

// GetProjectUsage godoc
// @Summary Quota usage snapshot of a project
// @Tags quotas
// @Produce json
// @Param project path string true "Project ID"
// @Success 200 {array} quota.Usage
// @Router /v1/quotas/{project} [get]
func (h *QuotaHandler) GetProjectUsage(c *gin.Context) {
	usages, err := h.ledger.Usage(c.Request.Context(), c.Param("project"))
	if err != nil {
		respondError(c, err)
		return
	}
	if usages == nil {
		usages = []quota.Usage{}
	}
	c.JSON(http.StatusOK, usages)
}
