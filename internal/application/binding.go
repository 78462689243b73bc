package application

import (
	"context"
	"fmt"
	"time"

	"github.com/containerd/errdefs"
	"github.com/linskybing/accel-platform/internal/agent"
	"github.com/linskybing/accel-platform/internal/domain/arq"
	"github.com/linskybing/accel-platform/internal/domain/attach"
	"github.com/linskybing/accel-platform/internal/metrics"
	"github.com/linskybing/accel-platform/internal/repository"
	log "github.com/sirupsen/logrus"
)

// BindingCoordinator attaches requests to a host, device and instance.
// The device handshake runs while the request row is locked, so two
// binders of the same request never interleave.
type BindingCoordinator struct {
	store repository.Store
	arqs  *ARQService
	agent agent.DeviceAgent
}

func NewBindingCoordinator(store repository.Store, arqs *ARQService, deviceAgent agent.DeviceAgent) *BindingCoordinator {
	if deviceAgent == nil {
		deviceAgent = agent.Noop{}
	}
	return &BindingCoordinator{store: store, arqs: arqs, agent: deviceAgent}
}

// Bind performs the device handshake and records the outcome. A failed
// handshake leaves the request in BindFailed and is not an error.
func (c *BindingCoordinator) Bind(ctx context.Context, id, hostName, deviceRPUUID, instanceUUID string) (*arq.ARQ, error) {
	if err := validateBindArgs(id, hostName, deviceRPUUID, instanceUUID); err != nil {
		return nil, err
	}

	start := time.Now()
	target := agent.BindTarget{
		ARQUUID:      id,
		HostName:     hostName,
		DeviceRPUUID: deviceRPUUID,
		InstanceUUID: instanceUUID,
	}
	var attached *attach.Handle
	var result *arq.ARQ

	err := c.store.Transaction(ctx, func(tx repository.Store) error {
		a, err := c.arqs.transition(ctx, tx, id, func(a *arq.ARQ) (bool, error) {
			if !a.State.CanTransitionTo(arq.StateBound) {
				return false, fmt.Errorf("arq %s: cannot bind from state %s: %w", id, a.State, errdefs.ErrConflict)
			}
			target.DeviceProfileName = a.DeviceProfileName

			handle, err := c.agent.Attach(ctx, target)
			if err != nil {
				log.WithFields(log.Fields{
					"arq":  id,
					"host": hostName,
					"rp":   deviceRPUUID,
				}).WithError(err).Warn("Device handshake failed")
				return true, a.MarkBindFailed()
			}
			attached = &handle
			return true, a.Bind(hostName, deviceRPUUID, instanceUUID, handle)
		})
		if err != nil {
			return err
		}
		result = a
		return nil
	})

	if err != nil && attached != nil {
		c.release(ctx, target, *attached)
	}

	outcome := metrics.ResultError
	if err == nil {
		outcome = string(result.State)
	}
	metrics.ObserveBind(time.Since(start), outcome)

	if err != nil {
		return nil, err
	}
	return result, nil
}

// Unbind detaches the device and clears host and device. The instance is
// kept. Unbinding an Unbound request is a no-op.
func (c *BindingCoordinator) Unbind(ctx context.Context, id string) (*arq.ARQ, error) {
	if err := validateUUID(entityARQ, id); err != nil {
		return nil, err
	}

	var result *arq.ARQ
	err := c.store.Transaction(ctx, func(tx repository.Store) error {
		a, err := c.arqs.transition(ctx, tx, id, func(a *arq.ARQ) (bool, error) {
			if a.State == arq.StateUnbound {
				return false, nil
			}
			if !a.State.CanTransitionTo(arq.StateUnbound) {
				return false, fmt.Errorf("arq %s: cannot unbind from state %s: %w", id, a.State, errdefs.ErrConflict)
			}
			if a.State == arq.StateBound {
				c.release(ctx, agent.BindTarget{
					ARQUUID:           id,
					DeviceProfileName: a.DeviceProfileName,
					HostName:          a.HostName,
					DeviceRPUUID:      a.DeviceRPUUID,
					InstanceUUID:      a.InstanceUUID,
				}, a.Handle())
			}
			return true, a.Unbind()
		})
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

// Remove deletes a request under its row lock and detaches the device it
// held, if any. A request locked by a concurrent binder yields Conflict.
func (c *BindingCoordinator) Remove(ctx context.Context, id string) error {
	if err := validateUUID(entityARQ, id); err != nil {
		return err
	}

	var target *agent.BindTarget
	var handle attach.Handle
	err := c.store.Transaction(ctx, func(tx repository.Store) error {
		a, err := tx.ARQs().GetByUUIDForUpdate(ctx, id)
		if err != nil {
			return repoError(err, entityARQ, id)
		}
		if a.State == arq.StateBound {
			target = &agent.BindTarget{
				ARQUUID:           id,
				DeviceProfileName: a.DeviceProfileName,
				HostName:          a.HostName,
				DeviceRPUUID:      a.DeviceRPUUID,
				InstanceUUID:      a.InstanceUUID,
			}
			handle = a.Handle()
		}
		if err := tx.ARQs().Delete(ctx, id); err != nil {
			return repoError(err, entityARQ, id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if target != nil {
		c.release(ctx, *target, handle)
	}
	log.WithField("arq", id).Info("Accelerator request deleted")
	return nil
}

// release detaches best effort. A failure only leaves a stale device
// assignment on the host and is logged.
func (c *BindingCoordinator) release(ctx context.Context, target agent.BindTarget, handle attach.Handle) {
	if err := c.agent.Detach(ctx, target, handle); err != nil {
		log.WithFields(log.Fields{
			"arq":  target.ARQUUID,
			"host": target.HostName,
			"rp":   target.DeviceRPUUID,
		}).WithError(err).Warn("Device detach failed")
	}
}
