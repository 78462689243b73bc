package agent

import (
	"context"
	"errors"

	"github.com/linskybing/accel-platform/internal/domain/attach"
)

var (
	ErrNoFreeDevice  = errors.New("no free device on resource provider")
	ErrUnknownDevice = errors.New("unknown device resource provider")
)

// BindTarget identifies where an accelerator request is being attached.
type BindTarget struct {
	ARQUUID           string
	DeviceProfileName string
	HostName          string
	DeviceRPUUID      string
	InstanceUUID      string
}

// DeviceAgent performs the device handshake on the compute host. Attach
// selects a concrete device on the target resource provider and returns
// the handle the instance uses to reach it.
type DeviceAgent interface {
	Attach(ctx context.Context, target BindTarget) (attach.Handle, error)
	Detach(ctx context.Context, target BindTarget, handle attach.Handle) error
}

// Noop accepts every handshake without programming any device.
type Noop struct{}

func (Noop) Attach(ctx context.Context, target BindTarget) (attach.Handle, error) {
	return attach.Handle{}, ctx.Err()
}

func (Noop) Detach(ctx context.Context, target BindTarget, handle attach.Handle) error {
	return ctx.Err()
}
