package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/accel-platform/internal/application"
	"github.com/linskybing/accel-platform/internal/domain/arq"
	"github.com/linskybing/accel-platform/pkg/response"
)

type BindingHandler struct {
	svc *application.LifecycleService
}

func NewBindingHandler(svc *application.LifecycleService) *BindingHandler {
	return &BindingHandler{svc: svc}
}

// BindARQ godoc
// @Summary Bind an accelerator request
// @Description Runs the device handshake. A failed handshake is reported through state BindFailed.
// @Tags arq_bindings
// @Accept json
// @Produce json
// @Param body body arq.BindingsDTO true "Exactly one binding"
// @Success 200 {object} arq.ARQ
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /v1/arq_bindings [post]
func (h *BindingHandler) BindARQ(c *gin.Context) {
	var input arq.BindingsDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	b := input.Bindings[0]
	a, err := h.svc.BindRequest(c.Request.Context(), b.ARQUUID, b.HostName, b.DeviceRPUUID, b.InstanceUUID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// UnbindARQs godoc
// @Summary Unbind accelerator requests
// @Tags arq_bindings
// @Produce json
// @Param arqs query string true "Comma separated ARQ UUIDs"
// @Success 200 {array} arq.ARQ
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /v1/arq_bindings [delete]
func (h *BindingHandler) UnbindARQs(c *gin.Context) {
	ids := queryList(c, "arqs")
	if len(ids) == 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "at least one arq uuid is required"})
		return
	}

	out := make([]arq.ARQ, 0, len(ids))
	for _, id := range ids {
		a, err := h.svc.UnbindRequest(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		out = append(out, *a)
	}
	c.JSON(http.StatusOK, out)
}
