package arq

import (
	"errors"
	"fmt"

	"github.com/linskybing/accel-platform/internal/domain/attach"
	"gorm.io/datatypes"
)

var (
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrBindingMismatch   = errors.New("binding fields must be set together")
)

var transitions = map[State][]State{
	StateInitial:    {StateBound, StateBindFailed},
	StateBound:      {StateUnbound},
	StateUnbound:    {StateBound, StateBindFailed},
	StateBindFailed: {StateBound, StateBindFailed, StateUnbound},
}

func (s State) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s State) CanTransitionTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Resolved reports whether a bind outcome has been recorded.
func (s State) Resolved() bool {
	return s == StateBound || s == StateBindFailed
}

func (a *ARQ) transition(next State) error {
	if !a.State.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.State, next)
	}
	a.State = next
	return nil
}

// Bind records a successful binding.
func (a *ARQ) Bind(hostName, deviceRPUUID, instanceUUID string, handle attach.Handle) error {
	if hostName == "" || deviceRPUUID == "" || instanceUUID == "" {
		return ErrBindingMismatch
	}
	if err := handle.Validate(); err != nil {
		return err
	}
	if err := a.transition(StateBound); err != nil {
		return err
	}
	a.HostName = hostName
	a.DeviceRPUUID = deviceRPUUID
	a.InstanceUUID = instanceUUID
	a.AttachHandle = datatypes.NewJSONType(handle)
	return nil
}

// MarkBindFailed records a failed bind attempt and clears every binding field.
func (a *ARQ) MarkBindFailed() error {
	if err := a.transition(StateBindFailed); err != nil {
		return err
	}
	a.HostName = ""
	a.DeviceRPUUID = ""
	a.InstanceUUID = ""
	a.AttachHandle = datatypes.NewJSONType(attach.Handle{})
	return nil
}

// Unbind clears the host and device. The instance is kept for audit.
func (a *ARQ) Unbind() error {
	if err := a.transition(StateUnbound); err != nil {
		return err
	}
	a.HostName = ""
	a.DeviceRPUUID = ""
	a.AttachHandle = datatypes.NewJSONType(attach.Handle{})
	return nil
}

// CheckBinding verifies the binding fields agree with the state.
func (a *ARQ) CheckBinding() error {
	switch a.State {
	case StateBound:
		if a.HostName == "" || a.DeviceRPUUID == "" || a.InstanceUUID == "" {
			return ErrBindingMismatch
		}
	case StateUnbound:
		if a.HostName != "" || a.DeviceRPUUID != "" {
			return ErrBindingMismatch
		}
	default:
		if a.HostName != "" || a.DeviceRPUUID != "" || a.InstanceUUID != "" {
			return ErrBindingMismatch
		}
	}
	return nil
}

// Matches reports whether the request passes the filter.
func (f ListFilter) Matches(a *ARQ) bool {
	if f.State == StateFilterResolved && !a.State.Resolved() {
		return false
	}
	if f.Instance != "" && a.InstanceUUID != f.Instance {
		return false
	}
	return true
}

func (f ListFilter) Validate() error {
	if f.State != "" && f.State != StateFilterResolved {
		return fmt.Errorf("unsupported state filter %q, only %q is recognized", f.State, StateFilterResolved)
	}
	return nil
}
