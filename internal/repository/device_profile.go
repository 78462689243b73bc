package repository

import (
	"context"

	"github.com/linskybing/accel-platform/internal/domain/deviceprofile"
	"gorm.io/gorm"
)

type DeviceProfileRepo interface {
	Create(ctx context.Context, dp *deviceprofile.DeviceProfile) error
	GetByID(ctx context.Context, id uint) (*deviceprofile.DeviceProfile, error)
	GetByUUID(ctx context.Context, uuid string) (*deviceprofile.DeviceProfile, error)
	GetByName(ctx context.Context, name string) (*deviceprofile.DeviceProfile, error)
	List(ctx context.Context) ([]deviceprofile.DeviceProfile, error)
	Update(ctx context.Context, dp *deviceprofile.DeviceProfile) error
	Delete(ctx context.Context, id uint) error
	WithTx(tx *gorm.DB) DeviceProfileRepo
}

type DBDeviceProfileRepo struct {
	db *gorm.DB
}

func NewDeviceProfileRepo(db *gorm.DB) *DBDeviceProfileRepo {
	return &DBDeviceProfileRepo{
		db: db,
	}
}

func (r *DBDeviceProfileRepo) Create(ctx context.Context, dp *deviceprofile.DeviceProfile) error {
	return translate(r.db.WithContext(ctx).Create(dp).Error)
}

func (r *DBDeviceProfileRepo) GetByID(ctx context.Context, id uint) (*deviceprofile.DeviceProfile, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *DBDeviceProfileRepo) GetByUUID(ctx context.Context, uuid string) (*deviceprofile.DeviceProfile, error) {
	return r.first(ctx, "uuid = ?", uuid)
}

func (r *DBDeviceProfileRepo) GetByName(ctx context.Context, name string) (*deviceprofile.DeviceProfile, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *DBDeviceProfileRepo) first(ctx context.Context, query string, arg any) (*deviceprofile.DeviceProfile, error) {
	var dp deviceprofile.DeviceProfile
	if err := r.db.WithContext(ctx).Where(query, arg).First(&dp).Error; err != nil {
		return nil, translate(err)
	}
	return &dp, nil
}

func (r *DBDeviceProfileRepo) List(ctx context.Context) ([]deviceprofile.DeviceProfile, error) {
	var profiles []deviceprofile.DeviceProfile
	err := r.db.WithContext(ctx).Order("id").Find(&profiles).Error
	return profiles, translate(err)
}

// Update writes the mutable columns. Identity columns are never touched.
func (r *DBDeviceProfileRepo) Update(ctx context.Context, dp *deviceprofile.DeviceProfile) error {
	res := r.db.WithContext(ctx).
		Model(&deviceprofile.DeviceProfile{}).
		Where("id = ?", dp.ID).
		Updates(map[string]any{
			"name":     dp.Name,
			"document": dp.Document,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DBDeviceProfileRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&deviceprofile.DeviceProfile{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DBDeviceProfileRepo) WithTx(tx *gorm.DB) DeviceProfileRepo {
	if tx == nil {
		return r
	}
	return &DBDeviceProfileRepo{db: tx}
}
