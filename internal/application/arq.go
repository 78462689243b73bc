package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
	"github.com/google/uuid"
	"github.com/linskybing/accel-platform/internal/domain/arq"
	"github.com/linskybing/accel-platform/internal/domain/attach"
	"github.com/linskybing/accel-platform/internal/domain/deviceprofile"
	"github.com/linskybing/accel-platform/internal/metrics"
	"github.com/linskybing/accel-platform/internal/repository"
	log "github.com/sirupsen/logrus"
)

// ARQService owns accelerator request records and their state transitions.
type ARQService struct {
	store    repository.Store
	profiles *DeviceProfileService
}

func NewARQService(store repository.Store, profiles *DeviceProfileService) *ARQService {
	return &ARQService{store: store, profiles: profiles}
}

// Create persists a new request in state Initial for the named profile.
func (s *ARQService) Create(ctx context.Context, projectID, profileName string) (*arq.ARQ, error) {
	if profileName == "" {
		return nil, invalidArgument("device profile name is required")
	}
	dp, err := s.profiles.GetByName(ctx, profileName)
	if err != nil {
		return nil, err
	}
	return s.createForProfile(ctx, projectID, dp)
}

func (s *ARQService) createForProfile(ctx context.Context, projectID string, dp *deviceprofile.DeviceProfile) (*arq.ARQ, error) {
	if projectID == "" {
		return nil, invalidArgument("project id is required")
	}

	a := &arq.ARQ{
		UUID:            uuid.NewString(),
		ProjectID:       projectID,
		DeviceProfileID: dp.ID,
		DeviceProfile:   dp,
		State:           arq.StateInitial,
	}
	if err := s.store.ARQs().Create(ctx, a); err != nil {
		return nil, repoError(err, entityARQ, a.UUID)
	}
	a.Hydrate()

	log.WithFields(log.Fields{
		"arq":            a.UUID,
		"project":        projectID,
		"device_profile": dp.Name,
	}).Info("Accelerator request created")
	return a, nil
}

func (s *ARQService) Get(ctx context.Context, id string) (*arq.ARQ, error) {
	if err := validateUUID(entityARQ, id); err != nil {
		return nil, err
	}
	a, err := s.store.ARQs().GetByUUID(ctx, id)
	if err != nil {
		return nil, repoError(err, entityARQ, id)
	}
	return a, nil
}

func (s *ARQService) List(ctx context.Context, filter arq.ListFilter) ([]arq.ARQ, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, errdefs.ErrInvalidArgument)
	}
	arqs, err := s.store.ARQs().List(ctx, filter)
	if err != nil {
		return nil, repoError(err, entityARQ, "list")
	}
	return arqs, nil
}

// Bind records a successful binding.
func (s *ARQService) Bind(ctx context.Context, id, hostName, deviceRPUUID, instanceUUID string, handle attach.Handle) (*arq.ARQ, error) {
	if err := validateBindArgs(id, hostName, deviceRPUUID, instanceUUID); err != nil {
		return nil, err
	}
	return s.inTx(ctx, id, func(a *arq.ARQ) (bool, error) {
		return true, a.Bind(hostName, deviceRPUUID, instanceUUID, handle)
	})
}

// MarkBindFailed records a failed bind attempt.
func (s *ARQService) MarkBindFailed(ctx context.Context, id string) (*arq.ARQ, error) {
	if err := validateUUID(entityARQ, id); err != nil {
		return nil, err
	}
	return s.inTx(ctx, id, func(a *arq.ARQ) (bool, error) {
		return true, a.MarkBindFailed()
	})
}

// Unbind clears the host and device of a request. An Unbound request is
// returned unchanged.
func (s *ARQService) Unbind(ctx context.Context, id string) (*arq.ARQ, error) {
	if err := validateUUID(entityARQ, id); err != nil {
		return nil, err
	}
	return s.inTx(ctx, id, func(a *arq.ARQ) (bool, error) {
		if a.State == arq.StateUnbound {
			return false, nil
		}
		return true, a.Unbind()
	})
}

// Delete removes the record. Quota is released by the caller.
func (s *ARQService) Delete(ctx context.Context, id string) error {
	if err := validateUUID(entityARQ, id); err != nil {
		return err
	}
	if err := s.store.ARQs().Delete(ctx, id); err != nil {
		return repoError(err, entityARQ, id)
	}
	log.WithField("arq", id).Info("Accelerator request deleted")
	return nil
}

func (s *ARQService) inTx(ctx context.Context, id string, fn func(a *arq.ARQ) (bool, error)) (*arq.ARQ, error) {
	var result *arq.ARQ
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		a, err := s.transition(ctx, tx, id, fn)
		if err != nil {
			return err
		}
		result = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// transition locks the request, applies fn and writes the outcome in one
// version-checked update. fn returning false leaves the row untouched.
func (s *ARQService) transition(ctx context.Context, tx repository.Store, id string, fn func(a *arq.ARQ) (bool, error)) (*arq.ARQ, error) {
	a, err := tx.ARQs().GetByUUIDForUpdate(ctx, id)
	if err != nil {
		return nil, repoError(err, entityARQ, id)
	}

	from := a.State
	changed, err := fn(a)
	if err != nil {
		return nil, stateError(err, id)
	}
	if !changed {
		return a, nil
	}
	if err := a.CheckBinding(); err != nil {
		return nil, fmt.Errorf("arq %s: %v: %w", id, err, errdefs.ErrInternal)
	}

	if err := tx.ARQs().UpdateBinding(ctx, a); err != nil {
		return nil, repoError(err, entityARQ, id)
	}

	metrics.RecordTransition(string(from), string(a.State))
	log.WithFields(log.Fields{
		"arq":      id,
		"from":     from,
		"state":    a.State,
		"host":     a.HostName,
		"instance": a.InstanceUUID,
	}).Info("Accelerator request state changed")
	return a, nil
}

func stateError(err error, id string) error {
	switch {
	case errors.Is(err, arq.ErrInvalidTransition):
		return fmt.Errorf("arq %s: %v: %w", id, err, errdefs.ErrConflict)
	case errors.Is(err, arq.ErrBindingMismatch):
		return fmt.Errorf("arq %s: %v: %w", id, err, errdefs.ErrInvalidArgument)
	case hasKind(err):
		return err
	default:
		return fmt.Errorf("arq %s: %v: %w", id, err, errdefs.ErrInvalidArgument)
	}
}

func validateBindArgs(id, hostName, deviceRPUUID, instanceUUID string) error {
	if err := validateUUID(entityARQ, id); err != nil {
		return err
	}
	switch {
	case hostName == "":
		return invalidArgument("host name is required")
	case deviceRPUUID == "":
		return invalidArgument("device rp uuid is required")
	case instanceUUID == "":
		return invalidArgument("instance uuid is required")
	}
	return nil
}
