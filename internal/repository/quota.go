package repository

import (
	"context"
	"time"

	"github.com/linskybing/accel-platform/internal/domain/quota"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuotaRepo interface {
	// EnsureUsage inserts u unless a row for its project and resource
	// already exists. It reports whether a row was created.
	EnsureUsage(ctx context.Context, u *quota.Usage) (bool, error)
	// GetUsagesForUpdate locks the usage rows in id order, keyed by resource.
	GetUsagesForUpdate(ctx context.Context, projectID string, resources []string) (map[string]*quota.Usage, error)
	ListUsages(ctx context.Context, projectID string) ([]quota.Usage, error)
	SaveUsage(ctx context.Context, u *quota.Usage) error
	CreateReservation(ctx context.Context, res *quota.Reservation) error
	ListReservations(ctx context.Context, uuids []string) ([]quota.Reservation, error)
	GetReservationsForUpdate(ctx context.Context, uuids []string) ([]quota.Reservation, error)
	ListExpiredReservations(ctx context.Context, before time.Time, limit int) ([]quota.Reservation, error)
	DeleteReservation(ctx context.Context, id uint) error
	WithTx(tx *gorm.DB) QuotaRepo
}

type DBQuotaRepo struct {
	db *gorm.DB
}

func NewQuotaRepo(db *gorm.DB) *DBQuotaRepo {
	return &DBQuotaRepo{
		db: db,
	}
}

func (r *DBQuotaRepo) EnsureUsage(ctx context.Context, u *quota.Usage) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "resource"}},
			DoNothing: true,
		}).
		Create(u)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *DBQuotaRepo) GetUsagesForUpdate(ctx context.Context, projectID string, resources []string) (map[string]*quota.Usage, error) {
	var rows []quota.Usage
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("project_id = ? AND resource IN ?", projectID, resources).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	usages := make(map[string]*quota.Usage, len(rows))
	for i := range rows {
		usages[rows[i].Resource] = &rows[i]
	}
	return usages, nil
}

func (r *DBQuotaRepo) ListUsages(ctx context.Context, projectID string) ([]quota.Usage, error) {
	var rows []quota.Usage
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("resource").
		Find(&rows).Error
	return rows, translate(err)
}

func (r *DBQuotaRepo) SaveUsage(ctx context.Context, u *quota.Usage) error {
	u.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).
		Model(&quota.Usage{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"in_use":        u.InUse,
			"reserved":      u.Reserved,
			"until_refresh": u.UntilRefresh,
			"updated_at":    u.UpdatedAt,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DBQuotaRepo) CreateReservation(ctx context.Context, res *quota.Reservation) error {
	return translate(r.db.WithContext(ctx).Omit("Usage").Create(res).Error)
}

func (r *DBQuotaRepo) ListReservations(ctx context.Context, uuids []string) ([]quota.Reservation, error) {
	var rows []quota.Reservation
	err := r.db.WithContext(ctx).
		Where("uuid IN ?", uuids).
		Order("id").
		Find(&rows).Error
	return rows, translate(err)
}

func (r *DBQuotaRepo) GetReservationsForUpdate(ctx context.Context, uuids []string) ([]quota.Reservation, error) {
	var rows []quota.Reservation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("uuid IN ?", uuids).
		Order("id").
		Find(&rows).Error
	return rows, translate(err)
}

func (r *DBQuotaRepo) ListExpiredReservations(ctx context.Context, before time.Time, limit int) ([]quota.Reservation, error) {
	var rows []quota.Reservation
	q := r.db.WithContext(ctx).
		Where("expire < ?", before).
		Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&rows).Error
	return rows, translate(err)
}

func (r *DBQuotaRepo) DeleteReservation(ctx context.Context, id uint) error {
	return translate(r.db.WithContext(ctx).Delete(&quota.Reservation{}, id).Error)
}

func (r *DBQuotaRepo) WithTx(tx *gorm.DB) QuotaRepo {
	if tx == nil {
		return r
	}
	return &DBQuotaRepo{
		db: tx,
	}
}
