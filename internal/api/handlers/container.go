package handlers

import (
	"github.com/linskybing/accel-platform/internal/application"
)

type Handlers struct {
	DeviceProfile *DeviceProfileHandler
	ARQ           *ARQHandler
	Binding       *BindingHandler
	Quota         *QuotaHandler
	Health        *HealthHandler
}

func New(svc *application.Services, db Pinger) *Handlers {
	return &Handlers{
		DeviceProfile: NewDeviceProfileHandler(svc.DeviceProfile),
		ARQ:           NewARQHandler(svc.Lifecycle),
		Binding:       NewBindingHandler(svc.Lifecycle),
		Quota:         NewQuotaHandler(svc.Quota),
		Health:        NewHealthHandler(db),
	}
}
