package application

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"strconv"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/linskybing/accel-platform/internal/domain/deviceprofile"
	"github.com/linskybing/accel-platform/internal/repository"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
	"gorm.io/datatypes"
)

type DeviceProfileService struct {
	store repository.Store
}

func NewDeviceProfileService(store repository.Store) *DeviceProfileService {
	return &DeviceProfileService{store: store}
}

func (s *DeviceProfileService) Create(ctx context.Context, input deviceprofile.CreateDeviceProfileDTO) (*deviceprofile.DeviceProfile, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidArgument("device profile name is required")
	}
	if err := validateDocument(name, input.Document); err != nil {
		return nil, err
	}

	dp := &deviceprofile.DeviceProfile{
		Name:     name,
		Document: datatypes.JSON(input.Document),
	}
	if err := s.store.DeviceProfiles().Create(ctx, dp); err != nil {
		return nil, repoError(err, entityDeviceProfile, name)
	}

	log.WithFields(log.Fields{"device_profile": dp.Name, "uuid": dp.UUID}).Info("Device profile created")
	return dp, nil
}

func (s *DeviceProfileService) GetByName(ctx context.Context, name string) (*deviceprofile.DeviceProfile, error) {
	if name == "" {
		return nil, invalidArgument("device profile name is required")
	}
	dp, err := s.store.DeviceProfiles().GetByName(ctx, name)
	if err != nil {
		return nil, repoError(err, entityDeviceProfile, name)
	}
	return dp, nil
}

func (s *DeviceProfileService) GetByID(ctx context.Context, id uint) (*deviceprofile.DeviceProfile, error) {
	dp, err := s.store.DeviceProfiles().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entityDeviceProfile, strconv.FormatUint(uint64(id), 10))
	}
	return dp, nil
}

func (s *DeviceProfileService) GetByUUID(ctx context.Context, id string) (*deviceprofile.DeviceProfile, error) {
	if err := validateUUID(entityDeviceProfile, id); err != nil {
		return nil, err
	}
	dp, err := s.store.DeviceProfiles().GetByUUID(ctx, id)
	if err != nil {
		return nil, repoError(err, entityDeviceProfile, id)
	}
	return dp, nil
}

func (s *DeviceProfileService) List(ctx context.Context) ([]deviceprofile.DeviceProfile, error) {
	profiles, err := s.store.DeviceProfiles().List(ctx)
	if err != nil {
		return nil, repoError(err, entityDeviceProfile, "list")
	}
	return profiles, nil
}

// ResolveName maps a profile name to its id.
func (s *DeviceProfileService) ResolveName(ctx context.Context, name string) (uint, error) {
	dp, err := s.GetByName(ctx, name)
	if err != nil {
		return 0, err
	}
	return dp.ID, nil
}

func (s *DeviceProfileService) Update(ctx context.Context, name string, input deviceprofile.UpdateDeviceProfileDTO) (*deviceprofile.DeviceProfile, error) {
	var updated *deviceprofile.DeviceProfile
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		dp, err := tx.DeviceProfiles().GetByName(ctx, name)
		if err != nil {
			return repoError(err, entityDeviceProfile, name)
		}

		if input.Name != nil {
			newName := strings.TrimSpace(*input.Name)
			if newName == "" {
				return invalidArgument("device profile name must not be empty")
			}
			dp.Name = newName
		}
		if input.Document != nil {
			if err := validateDocument(dp.Name, input.Document); err != nil {
				return err
			}
			if err := s.checkChargeUnchanged(ctx, tx, dp, input.Document); err != nil {
				return err
			}
			dp.Document = datatypes.JSON(input.Document)
		}

		if err := tx.DeviceProfiles().Update(ctx, dp); err != nil {
			return repoError(err, entityDeviceProfile, dp.Name)
		}
		updated = dp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// checkChargeUnchanged rejects a document whose resource deltas differ from
// the stored ones while requests still reference the profile. Their quota
// was charged from the stored deltas and is released from the same ones.
func (s *DeviceProfileService) checkChargeUnchanged(ctx context.Context, tx repository.Store, dp *deviceprofile.DeviceProfile, doc []byte) error {
	current, err := dp.ResourceDeltas()
	if err == nil {
		next, err := (&deviceprofile.DeviceProfile{Name: dp.Name, Document: datatypes.JSON(doc)}).ResourceDeltas()
		if err == nil && maps.Equal(current, next) {
			return nil
		}
	}

	n, err := tx.ARQs().CountByProfile(ctx, dp.ID)
	if err != nil {
		return repoError(err, entityDeviceProfile, dp.Name)
	}
	if n > 0 {
		return fmt.Errorf("device profile %s: resource counts cannot change while %d requests reference it: %w", dp.Name, n, errdefs.ErrConflict)
	}
	return nil
}

// Delete removes a profile. It fails with Conflict while any request uses it.
func (s *DeviceProfileService) Delete(ctx context.Context, name string) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		dp, err := tx.DeviceProfiles().GetByName(ctx, name)
		if err != nil {
			return repoError(err, entityDeviceProfile, name)
		}
		if err := tx.DeviceProfiles().Delete(ctx, dp.ID); err != nil {
			return repoError(err, entityDeviceProfile, name)
		}
		log.WithField("device_profile", name).Info("Device profile deleted")
		return nil
	})
}

// LoadSeedFile reads the startup profile list.
func LoadSeedFile(path string) ([]deviceprofile.SeedEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read device profile seed file: %w", err)
	}
	var entries []deviceprofile.SeedEntry
	if err := yaml.UnmarshalStrict(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse device profile seed file: %w", err)
	}
	return entries, nil
}

// Seed creates the profiles that do not exist yet. Existing profiles are
// left untouched.
func (s *DeviceProfileService) Seed(ctx context.Context, entries []deviceprofile.SeedEntry) (int, error) {
	created := 0
	for _, entry := range entries {
		doc := entry.Document
		if strings.TrimSpace(doc) == "" {
			doc = "{}"
		}
		_, err := s.Create(ctx, deviceprofile.CreateDeviceProfileDTO{
			Name:     entry.Name,
			Document: []byte(doc),
		})
		switch {
		case err == nil:
			created++
		case errdefs.IsAlreadyExists(err):
			log.WithField("device_profile", entry.Name).Debug("Seed profile already present")
		default:
			return created, fmt.Errorf("seed device profile %q: %w", entry.Name, err)
		}
	}
	return created, nil
}

func validateDocument(name string, raw []byte) error {
	if len(raw) == 0 {
		return invalidArgument("device profile %s: document is required", name)
	}
	if err := deviceprofile.ValidateDocument(raw); err != nil {
		if errors.Is(err, deviceprofile.ErrInvalidDocument) {
			return fmt.Errorf("device profile %s: %v: %w", name, err, errdefs.ErrInvalidArgument)
		}
		return err
	}
	return nil
}
