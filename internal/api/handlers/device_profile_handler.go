package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/accel-platform/internal/application"
	"github.com/linskybing/accel-platform/internal/domain/deviceprofile"
	"github.com/linskybing/accel-platform/pkg/response"
)

type DeviceProfileHandler struct {
	svc *application.DeviceProfileService
}

func NewDeviceProfileHandler(svc *application.DeviceProfileService) *DeviceProfileHandler {
	return &DeviceProfileHandler{svc: svc}
}

// CreateDeviceProfile godoc
// @Summary Create a device profile
// @Tags device_profiles
// @Accept json
// @Produce json
// @Param body body deviceprofile.CreateDeviceProfileDTO true "Profile"
// @Success 201 {object} deviceprofile.DeviceProfile
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /v1/device_profiles [post]
func (h *DeviceProfileHandler) CreateDeviceProfile(c *gin.Context) {
	var input deviceprofile.CreateDeviceProfileDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	dp, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dp)
}

// ListDeviceProfiles godoc
// @Summary List device profiles
// @Tags device_profiles
// @Produce json
// @Success 200 {array} deviceprofile.DeviceProfile
// @Router /v1/device_profiles [get]
func (h *DeviceProfileHandler) ListDeviceProfiles(c *gin.Context) {
	profiles, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if profiles == nil {
		profiles = []deviceprofile.DeviceProfile{}
	}
	c.JSON(http.StatusOK, profiles)
}

// GetDeviceProfile godoc
// @Summary Get a device profile by uuid
// @Tags device_profiles
// @Produce json
// @Param uuid path string true "Profile UUID"
// @Success 200 {object} deviceprofile.DeviceProfile
// @Failure 404 {object} response.ErrorResponse
// @Router /v1/device_profiles/{uuid} [get]
func (h *DeviceProfileHandler) GetDeviceProfile(c *gin.Context) {
	dp, err := h.svc.GetByUUID(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dp)
}

// UpdateDeviceProfile godoc
// @Summary Rename a device profile or replace its document
// @Tags device_profiles
// @Accept json
// @Produce json
// @Param name path string true "Profile name"
// @Param body body deviceprofile.UpdateDeviceProfileDTO true "Changes"
// @Success 200 {object} deviceprofile.DeviceProfile
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /v1/device_profiles/{name} [patch]
func (h *DeviceProfileHandler) UpdateDeviceProfile(c *gin.Context) {
	var input deviceprofile.UpdateDeviceProfileDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	dp, err := h.svc.Update(c.Request.Context(), c.Param("name"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dp)
}

// DeleteDeviceProfile godoc
// @Summary Delete a device profile
// @Tags device_profiles
// @Param name path string true "Profile name"
// @Success 200 {object} response.MessageResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Profile still in use"
// @Router /v1/device_profiles/{name} [delete]
func (h *DeviceProfileHandler) DeleteDeviceProfile(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "device profile deleted"})
}
