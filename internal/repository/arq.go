package repository

import (
	"context"

	"github.com/linskybing/accel-platform/internal/domain/arq"
	"github.com/linskybing/accel-platform/internal/domain/deviceprofile"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ARQRepo interface {
	Create(ctx context.Context, a *arq.ARQ) error
	GetByUUID(ctx context.Context, uuid string) (*arq.ARQ, error)
	// GetByUUIDForUpdate locks the row with NOWAIT. A row held by another
	// transaction yields ErrLocked instead of blocking.
	GetByUUIDForUpdate(ctx context.Context, uuid string) (*arq.ARQ, error)
	List(ctx context.Context, filter arq.ListFilter) ([]arq.ARQ, error)
	ListByProject(ctx context.Context, projectID string) ([]arq.ARQ, error)
	CountByProfile(ctx context.Context, profileID uint) (int64, error)
	// UpdateBinding persists state and binding fields when the stored
	// version still matches a.Version, then bumps it.
	UpdateBinding(ctx context.Context, a *arq.ARQ) error
	Delete(ctx context.Context, uuid string) error
	WithTx(tx *gorm.DB) ARQRepo
}

type DBARQRepo struct {
	db *gorm.DB
}

func NewARQRepo(db *gorm.DB) *DBARQRepo {
	return &DBARQRepo{
		db: db,
	}
}

func (r *DBARQRepo) Create(ctx context.Context, a *arq.ARQ) error {
	if err := r.db.WithContext(ctx).Omit("DeviceProfile").Create(a).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *DBARQRepo) GetByUUID(ctx context.Context, uuid string) (*arq.ARQ, error) {
	var a arq.ARQ
	err := r.db.WithContext(ctx).
		Preload("DeviceProfile").
		Where("uuid = ?", uuid).
		First(&a).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *DBARQRepo) GetByUUIDForUpdate(ctx context.Context, uuid string) (*arq.ARQ, error) {
	var a arq.ARQ
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "NOWAIT"}).
		Where("uuid = ?", uuid).
		First(&a).Error
	if err != nil {
		return nil, translate(err)
	}

	// The profile is read separately so the lock covers the arqs row only.
	var dp deviceprofile.DeviceProfile
	if err := r.db.WithContext(ctx).First(&dp, a.DeviceProfileID).Error; err != nil {
		return nil, translate(err)
	}
	a.DeviceProfile = &dp
	a.Hydrate()
	return &a, nil
}

func (r *DBARQRepo) List(ctx context.Context, filter arq.ListFilter) ([]arq.ARQ, error) {
	q := r.db.WithContext(ctx).Preload("DeviceProfile")
	if filter.State == arq.StateFilterResolved {
		q = q.Where("state IN ?", []arq.State{arq.StateBound, arq.StateBindFailed})
	}
	if filter.Instance != "" {
		q = q.Where("instance_uuid = ?", filter.Instance)
	}

	var arqs []arq.ARQ
	err := q.Order("id").Find(&arqs).Error
	return arqs, translate(err)
}

func (r *DBARQRepo) ListByProject(ctx context.Context, projectID string) ([]arq.ARQ, error) {
	var arqs []arq.ARQ
	err := r.db.WithContext(ctx).
		Preload("DeviceProfile").
		Where("project_id = ?", projectID).
		Order("id").
		Find(&arqs).Error
	return arqs, translate(err)
}

func (r *DBARQRepo) CountByProfile(ctx context.Context, profileID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&arq.ARQ{}).
		Where("device_profile_id = ?", profileID).
		Count(&n).Error
	return n, translate(err)
}

func (r *DBARQRepo) UpdateBinding(ctx context.Context, a *arq.ARQ) error {
	res := r.db.WithContext(ctx).
		Model(&arq.ARQ{}).
		Where("uuid = ? AND version = ?", a.UUID, a.Version).
		Updates(map[string]any{
			"state":          a.State,
			"host_name":      a.HostName,
			"device_rp_uuid": a.DeviceRPUUID,
			"instance_uuid":  a.InstanceUUID,
			"attach_handle":  a.AttachHandle,
			"version":        gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStale
	}
	a.Version++
	return nil
}

func (r *DBARQRepo) Delete(ctx context.Context, uuid string) error {
	res := r.db.WithContext(ctx).Where("uuid = ?", uuid).Delete(&arq.ARQ{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DBARQRepo) WithTx(tx *gorm.DB) ARQRepo {
	if tx == nil {
		return r
	}
	return &DBARQRepo{
		db: tx,
	}
}
