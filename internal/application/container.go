package application

import (
	"github.com/linskybing/accel-platform/internal/agent"
	"github.com/linskybing/accel-platform/internal/repository"
)

type Services struct {
	DeviceProfile *DeviceProfileService
	Quota         *QuotaLedger
	ARQ           *ARQService
	Binding       *BindingCoordinator
	Lifecycle     *LifecycleService
}

func New(store repository.Store, deviceAgent agent.DeviceAgent, ledgerCfg LedgerConfig) *Services {
	profiles := NewDeviceProfileService(store)
	ledger := NewQuotaLedger(store, NewARQUsageCounter(store), ledgerCfg)
	arqs := NewARQService(store, profiles)
	binder := NewBindingCoordinator(store, arqs, deviceAgent)

	return &Services{
		DeviceProfile: profiles,
		Quota:         ledger,
		ARQ:           arqs,
		Binding:       binder,
		Lifecycle:     NewLifecycleService(profiles, ledger, arqs, binder),
	}
}
