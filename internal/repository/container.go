package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store is the persistence surface used by the services. Transaction runs
// fn against a Store bound to a single database transaction.
type Store interface {
	DeviceProfiles() DeviceProfileRepo
	ARQs() ARQRepo
	Quotas() QuotaRepo
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type Repos struct {
	DeviceProfile DeviceProfileRepo
	ARQ           ARQRepo
	Quota         QuotaRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		DeviceProfile: NewDeviceProfileRepo(db),
		ARQ:           NewARQRepo(db),
		Quota:         NewQuotaRepo(db),
		db:            db,
	}
}

func (r *Repos) DeviceProfiles() DeviceProfileRepo { return r.DeviceProfile }
func (r *Repos) ARQs() ARQRepo                     { return r.ARQ }
func (r *Repos) Quotas() QuotaRepo                 { return r.Quota }

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		DeviceProfile: r.DeviceProfile.WithTx(tx),
		ARQ:           r.ARQ.WithTx(tx),
		Quota:         r.Quota.WithTx(tx),
		db:            tx,
	}
}

func (r *Repos) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// Ping checks the database connection.
func (r *Repos) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
