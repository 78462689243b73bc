package application

import (
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
	"github.com/google/uuid"
	"github.com/linskybing/accel-platform/internal/repository"
)

const (
	entityDeviceProfile = "device profile"
	entityARQ           = "arq"
	entityQuota         = "quota"
)

// repoError gives a repository error an errdefs kind and entity context.
// Errors that already carry a kind pass through unchanged.
func repoError(err error, entity, id string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%s %s: %w", entity, id, errdefs.ErrNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%s %s: %w", entity, id, errdefs.ErrAlreadyExists)
	case errors.Is(err, repository.ErrReferenced):
		return fmt.Errorf("%s %s is still referenced: %w", entity, id, errdefs.ErrConflict)
	case errors.Is(err, repository.ErrLocked):
		return fmt.Errorf("%s %s is locked by a concurrent operation: %w", entity, id, errdefs.ErrConflict)
	case errors.Is(err, repository.ErrStale):
		return fmt.Errorf("%s %s was modified concurrently: %w", entity, id, errdefs.ErrConflict)
	case hasKind(err):
		return err
	default:
		return fmt.Errorf("%s %s: %w: %w", entity, id, errdefs.ErrInternal, err)
	}
}

func hasKind(err error) bool {
	return errdefs.IsNotFound(err) ||
		errdefs.IsAlreadyExists(err) ||
		errdefs.IsConflict(err) ||
		errdefs.IsInvalidArgument(err) ||
		errdefs.IsResourceExhausted(err) ||
		errdefs.IsUnavailable(err) ||
		errdefs.IsFailedPrecondition(err) ||
		errdefs.IsInternal(err) ||
		errdefs.IsCanceled(err) ||
		errdefs.IsDeadlineExceeded(err)
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), errdefs.ErrInvalidArgument)
}

func validateUUID(entity, id string) error {
	if id == "" {
		return invalidArgument("%s uuid is required", entity)
	}
	if _, err := uuid.Parse(id); err != nil {
		return invalidArgument("%s uuid %q is malformed", entity, id)
	}
	return nil
}
