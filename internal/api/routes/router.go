package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/accel-platform/internal/api/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handlers) {
	r.GET("/healthz", h.Health.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		profiles := v1.Group("/device_profiles")
		{
			profiles.POST("", h.DeviceProfile.CreateDeviceProfile)
			profiles.GET("", h.DeviceProfile.ListDeviceProfiles)
			profiles.GET("/:uuid", h.DeviceProfile.GetDeviceProfile)
			profiles.PATCH("/:name", h.DeviceProfile.UpdateDeviceProfile)
			profiles.DELETE("/:name", h.DeviceProfile.DeleteDeviceProfile)
		}

		arqs := v1.Group("/accelerator_requests")
		{
			arqs.POST("", h.ARQ.CreateARQ)
			arqs.GET("", h.ARQ.ListARQs)
			arqs.GET("/:uuid", h.ARQ.GetARQ)
			arqs.DELETE("", h.ARQ.DeleteARQs)
			arqs.DELETE("/:uuid", h.ARQ.DeleteARQ)
		}

		bindings := v1.Group("/arq_bindings")
		{
			bindings.POST("", h.Binding.BindARQ)
			bindings.DELETE("", h.Binding.UnbindARQs)
		}

		v1.GET("/quotas/:project", h.Quota.GetProjectUsage)
	}
}
