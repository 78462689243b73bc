package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/accel-platform/internal/application"
	"github.com/linskybing/accel-platform/internal/domain/arq"
	"github.com/linskybing/accel-platform/pkg/response"
)

type ARQHandler struct {
	svc *application.LifecycleService
}

func NewARQHandler(svc *application.LifecycleService) *ARQHandler {
	return &ARQHandler{svc: svc}
}

// CreateARQ godoc
// @Summary Create an accelerator request
// @Description Charges the project quota and stores the request in state Initial.
// @Tags accelerator_requests
// @Accept json
// @Produce json
// @Param body body arq.CreateARQDTO true "Request"
// @Success 201 {object} arq.ARQ
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Unknown device profile"
// @Failure 503 {object} response.ErrorResponse "Usage sync unavailable"
// @Router /v1/accelerator_requests [post]
func (h *ARQHandler) CreateARQ(c *gin.Context) {
	var input arq.CreateARQDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	a, err := h.svc.CreateRequest(c.Request.Context(), input.ProjectID, input.DeviceProfileName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// ListARQs godoc
// @Summary List accelerator requests
// @Tags accelerator_requests
// @Produce json
// @Param state query string false "Only \"resolved\" is recognized"
// @Param instance query string false "Instance UUID"
// @Success 200 {array} arq.ARQ
// @Failure 400 {object} response.ErrorResponse
// @Router /v1/accelerator_requests [get]
func (h *ARQHandler) ListARQs(c *gin.Context) {
	filter := arq.ListFilter{
		State:    c.Query("state"),
		Instance: c.Query("instance"),
	}
	arqs, err := h.svc.ListRequests(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if arqs == nil {
		arqs = []arq.ARQ{}
	}
	c.JSON(http.StatusOK, arqs)
}

// GetARQ godoc
// @Summary Get an accelerator request
// @Tags accelerator_requests
// @Produce json
// @Param uuid path string true "ARQ UUID"
// @Success 200 {object} arq.ARQ
// @Failure 404 {object} response.ErrorResponse
// @Router /v1/accelerator_requests/{uuid} [get]
func (h *ARQHandler) GetARQ(c *gin.Context) {
	a, err := h.svc.GetRequest(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DeleteARQ godoc
// @Summary Delete an accelerator request
// @Description Detaches a bound request and releases its quota.
// @Tags accelerator_requests
// @Param uuid path string true "ARQ UUID"
// @Success 200 {object} response.MessageResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /v1/accelerator_requests/{uuid} [delete]
func (h *ARQHandler) DeleteARQ(c *gin.Context) {
	if err := h.svc.DeleteRequest(c.Request.Context(), c.Param("uuid")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "accelerator request deleted"})
}

// DeleteARQs godoc
// @Summary Delete several accelerator requests
// @Tags accelerator_requests
// @Param arqs query string true "Comma separated ARQ UUIDs"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /v1/accelerator_requests [delete]
func (h *ARQHandler) DeleteARQs(c *gin.Context) {
	if err := h.svc.DeleteRequests(c.Request.Context(), queryList(c, "arqs")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "accelerator requests deleted"})
}
