package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
	"github.com/linskybing/accel-platform/internal/domain/arq"
	"github.com/linskybing/accel-platform/internal/domain/deviceprofile"
	log "github.com/sirupsen/logrus"
)

// LifecycleService composes the registry, ledger, request store and binding
// coordinator into the operations exposed to clients.
type LifecycleService struct {
	profiles *DeviceProfileService
	ledger   *QuotaLedger
	arqs     *ARQService
	binder   *BindingCoordinator
}

func NewLifecycleService(profiles *DeviceProfileService, ledger *QuotaLedger, arqs *ARQService, binder *BindingCoordinator) *LifecycleService {
	return &LifecycleService{
		profiles: profiles,
		ledger:   ledger,
		arqs:     arqs,
		binder:   binder,
	}
}

// CreateRequest charges the project for one request against the profile and
// persists the request in state Initial. Quota is rolled back if the
// request cannot be stored.
func (s *LifecycleService) CreateRequest(ctx context.Context, projectID, profileName string) (*arq.ARQ, error) {
	if profileName == "" {
		return nil, invalidArgument("device profile name is required")
	}
	if projectID == "" {
		return nil, invalidArgument("project id is required")
	}

	dp, err := s.profiles.GetByName(ctx, profileName)
	if err != nil {
		return nil, err
	}
	deltas, err := profileDeltas(dp)
	if err != nil {
		return nil, err
	}

	reservations, err := s.ledger.Reserve(ctx, projectID, deltas, ReserveOptions{})
	if err != nil {
		return nil, err
	}

	a, err := s.arqs.createForProfile(ctx, projectID, dp)
	if err != nil {
		if rbErr := s.ledger.Rollback(ctx, reservations, projectID); rbErr != nil {
			log.WithField("project", projectID).WithError(rbErr).Error("Failed to roll back quota after create failure")
		}
		return nil, err
	}

	if err := s.ledger.Commit(ctx, reservations, projectID); err != nil {
		log.WithFields(log.Fields{"arq": a.UUID, "project": projectID}).WithError(err).Error("Quota commit failed, removing request")
		if delErr := s.arqs.Delete(ctx, a.UUID); delErr != nil {
			log.WithField("arq", a.UUID).WithError(delErr).Error("Failed to remove request after commit failure")
		}
		if rbErr := s.ledger.Rollback(ctx, reservations, projectID); rbErr != nil {
			log.WithField("project", projectID).WithError(rbErr).Error("Failed to roll back quota after commit failure")
		}
		return nil, fmt.Errorf("commit quota for arq %s: %w", a.UUID, err)
	}
	return a, nil
}

func (s *LifecycleService) GetRequest(ctx context.Context, id string) (*arq.ARQ, error) {
	return s.arqs.Get(ctx, id)
}

func (s *LifecycleService) ListRequests(ctx context.Context, filter arq.ListFilter) ([]arq.ARQ, error) {
	return s.arqs.List(ctx, filter)
}

// DeleteRequest releases the quota of a request, removes it and detaches
// its device when it was bound at the time of removal.
func (s *LifecycleService) DeleteRequest(ctx context.Context, id string) error {
	a, err := s.arqs.Get(ctx, id)
	if err != nil {
		return err
	}

	dp := a.DeviceProfile
	if dp == nil {
		if dp, err = s.profiles.GetByID(ctx, a.DeviceProfileID); err != nil {
			return err
		}
	}
	deltas, err := profileDeltas(dp)
	if err != nil {
		return err
	}
	for kind, n := range deltas {
		deltas[kind] = -n
	}

	reservations, err := s.ledger.Reserve(ctx, a.ProjectID, deltas, ReserveOptions{})
	if err != nil {
		return err
	}

	if err := s.binder.Remove(ctx, id); err != nil {
		if rbErr := s.ledger.Rollback(ctx, reservations, a.ProjectID); rbErr != nil {
			log.WithField("project", a.ProjectID).WithError(rbErr).Error("Failed to roll back quota after delete failure")
		}
		return err
	}

	if err := s.ledger.Commit(ctx, reservations, a.ProjectID); err != nil {
		// The request is gone. The next usage resync corrects in_use.
		log.WithFields(log.Fields{"arq": id, "project": a.ProjectID}).WithError(err).Error("Quota commit failed after delete")
	}
	return nil
}

// DeleteRequests deletes each request in turn and stops at the first failure.
func (s *LifecycleService) DeleteRequests(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return invalidArgument("at least one arq uuid is required")
	}
	for _, id := range ids {
		if err := s.DeleteRequest(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *LifecycleService) BindRequest(ctx context.Context, id, hostName, deviceRPUUID, instanceUUID string) (*arq.ARQ, error) {
	return s.binder.Bind(ctx, id, hostName, deviceRPUUID, instanceUUID)
}

func (s *LifecycleService) UnbindRequest(ctx context.Context, id string) (*arq.ARQ, error) {
	return s.binder.Unbind(ctx, id)
}

func profileDeltas(dp *deviceprofile.DeviceProfile) (map[string]int, error) {
	deltas, err := dp.ResourceDeltas()
	if err != nil {
		if errors.Is(err, deviceprofile.ErrInvalidDocument) {
			return nil, fmt.Errorf("%v: %w", err, errdefs.ErrInvalidArgument)
		}
		return nil, err
	}
	return deltas, nil
}
