package application

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/containerd/errdefs"
	"github.com/google/uuid"
	"github.com/linskybing/accel-platform/internal/domain/quota"
	"github.com/linskybing/accel-platform/internal/metrics"
	"github.com/linskybing/accel-platform/internal/repository"
	log "github.com/sirupsen/logrus"
)

const expireBatchSize = 500

// UsageCounter reports the actual consumption of a project. The result
// must include resource and may cover other kinds computed in the same pass.
type UsageCounter interface {
	ActualUsage(ctx context.Context, projectID, resource string) (map[string]int, error)
}

type LedgerConfig struct {
	ReservationExpire time.Duration
	UntilRefresh      int
	MaxAge            time.Duration
	SyncRetries       int
}

// ReserveOptions overrides the ledger defaults for one call. Zero fields
// fall back to the ledger configuration.
type ReserveOptions struct {
	Expire       time.Time
	UntilRefresh int
	MaxAge       time.Duration
}

type QuotaLedger struct {
	store repository.Store
	usage UsageCounter
	cfg   LedgerConfig

	now        func() time.Time
	newBackOff func() backoff.BackOff
}

func NewQuotaLedger(store repository.Store, usage UsageCounter, cfg LedgerConfig) *QuotaLedger {
	if cfg.ReservationExpire <= 0 {
		cfg.ReservationExpire = 24 * time.Hour
	}
	if cfg.SyncRetries < 0 {
		cfg.SyncRetries = 0
	}
	return &QuotaLedger{
		store: store,
		usage: usage,
		cfg:   cfg,
		now:   time.Now,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
	}
}

func (l *QuotaLedger) withDefaults(opts ReserveOptions) ReserveOptions {
	if opts.Expire.IsZero() {
		opts.Expire = l.now().Add(l.cfg.ReservationExpire)
	}
	if opts.UntilRefresh == 0 {
		opts.UntilRefresh = l.cfg.UntilRefresh
	}
	if opts.MaxAge == 0 {
		opts.MaxAge = l.cfg.MaxAge
	}
	return opts
}

// Reserve records pending deltas for a project and returns the reservation
// UUIDs. Stale usage rows are resynced from the UsageCounter first.
// Releases that would drive in_use below zero are logged, not rejected.
func (l *QuotaLedger) Reserve(ctx context.Context, projectID string, deltas map[string]int, opts ReserveOptions) (ids []string, err error) {
	if projectID == "" {
		return nil, invalidArgument("project id is required")
	}
	if len(deltas) == 0 {
		return nil, nil
	}
	defer func() { metrics.RecordReservation(err) }()

	opts = l.withDefaults(opts)
	resources := slices.Sorted(maps.Keys(deltas))
	var unders []string

	err = l.store.Transaction(ctx, func(tx repository.Store) error {
		ids, unders = nil, nil
		repo := tx.Quotas()

		usages, err := repo.GetUsagesForUpdate(ctx, projectID, resources)
		if err != nil {
			return repoError(err, entityQuota, projectID)
		}

		created := map[string]bool{}
		for _, r := range resources {
			if _, ok := usages[r]; ok {
				continue
			}
			ok, err := repo.EnsureUsage(ctx, quota.NewUsage(projectID, r, opts.UntilRefresh))
			if err != nil {
				return repoError(err, entityQuota, projectID+"/"+r)
			}
			created[r] = ok
		}
		if len(usages) < len(resources) {
			if usages, err = repo.GetUsagesForUpdate(ctx, projectID, resources); err != nil {
				return repoError(err, entityQuota, projectID)
			}
		}
		for _, r := range resources {
			if usages[r] == nil {
				return fmt.Errorf("quota %s/%s: usage row missing after create: %w", projectID, r, errdefs.ErrInternal)
			}
		}

		if err := l.refresh(ctx, projectID, resources, usages, created, opts); err != nil {
			return err
		}

		for _, r := range resources {
			u, delta := usages[r], deltas[r]
			res := &quota.Reservation{
				UUID:      uuid.NewString(),
				UsageID:   u.ID,
				ProjectID: projectID,
				Resource:  r,
				Delta:     delta,
				Expire:    opts.Expire,
			}
			if err := repo.CreateReservation(ctx, res); err != nil {
				return repoError(err, entityQuota, projectID+"/"+r)
			}
			ids = append(ids, res.UUID)

			if u.Underflows(delta) {
				unders = append(unders, r)
			}
			u.Hold(delta)
		}

		for _, r := range resources {
			if err := repo.SaveUsage(ctx, usages[r]); err != nil {
				return repoError(err, entityQuota, projectID+"/"+r)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(unders) > 0 {
		log.WithFields(log.Fields{
			"project":   projectID,
			"resources": unders,
			"deltas":    deltas,
		}).Warn("Quota release exceeds recorded usage")
	}
	return ids, nil
}

// refresh resyncs in_use for rows that are new or stale. A sync covering
// several kinds settles all of them at once.
func (l *QuotaLedger) refresh(ctx context.Context, projectID string, resources []string, usages map[string]*quota.Usage, created map[string]bool, opts ReserveOptions) error {
	now := l.now()
	pending := make(map[string]bool, len(resources))
	for _, r := range resources {
		pending[r] = true
	}

	for _, r := range resources {
		if !pending[r] {
			continue
		}
		u := usages[r]
		// TickRefresh consumes one until_refresh tick, saved with the row.
		if !created[r] && !u.TickRefresh(now, opts.MaxAge) {
			continue
		}

		actual, err := l.actualUsage(ctx, projectID, r)
		if err != nil {
			return err
		}
		if _, ok := actual[r]; !ok {
			actual[r] = 0
		}
		for kind, inUse := range actual {
			target, ok := usages[kind]
			if !ok || !pending[kind] {
				continue
			}
			target.Resync(inUse, opts.UntilRefresh)
			delete(pending, kind)
			metrics.RecordResync(kind)
			log.WithFields(log.Fields{"project": projectID, "resource": kind, "in_use": inUse}).Debug("Quota usage resynced")
		}
	}
	return nil
}

func (l *QuotaLedger) actualUsage(ctx context.Context, projectID, resource string) (map[string]int, error) {
	if l.usage == nil {
		return map[string]int{}, nil
	}

	var result map[string]int
	op := func() error {
		r, err := l.usage.ActualUsage(ctx, projectID, resource)
		if err != nil {
			if errdefs.IsInvalidArgument(err) || errdefs.IsNotFound(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = r
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(l.newBackOff(), uint64(l.cfg.SyncRetries)), ctx)
	notify := func(err error, wait time.Duration) {
		log.WithFields(log.Fields{"project": projectID, "resource": resource}).
			WithError(err).Warnf("Usage sync failed, retrying in %s", wait)
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		if hasKind(err) {
			return nil, err
		}
		return nil, fmt.Errorf("sync %s usage for project %s: %w: %w", resource, projectID, errdefs.ErrUnavailable, err)
	}
	if result == nil {
		result = map[string]int{}
	}
	return result, nil
}

// Commit folds reservations into in_use. Unknown or already settled ids are skipped.
func (l *QuotaLedger) Commit(ctx context.Context, reservationIDs []string, projectID string) error {
	return l.settle(ctx, "commit", reservationIDs, projectID, (*quota.Usage).Apply)
}

// Rollback discards reservations. Unknown or already settled ids are skipped.
func (l *QuotaLedger) Rollback(ctx context.Context, reservationIDs []string, projectID string) error {
	return l.settle(ctx, "rollback", reservationIDs, projectID, (*quota.Usage).Release)
}

func (l *QuotaLedger) settle(ctx context.Context, op string, reservationIDs []string, projectID string, apply func(*quota.Usage, int)) error {
	if len(reservationIDs) == 0 {
		return nil
	}

	return l.store.Transaction(ctx, func(tx repository.Store) error {
		repo := tx.Quotas()

		pending, err := repo.ListReservations(ctx, reservationIDs)
		if err != nil {
			return repoError(err, entityQuota, projectID)
		}

		// project -> resources, so usage rows are locked before reservations.
		kinds := map[string]map[string]bool{}
		for _, r := range pending {
			if projectID != "" && r.ProjectID != projectID {
				continue
			}
			if kinds[r.ProjectID] == nil {
				kinds[r.ProjectID] = map[string]bool{}
			}
			kinds[r.ProjectID][r.Resource] = true
		}
		if len(kinds) == 0 {
			return nil
		}

		usages := map[uint]*quota.Usage{}
		for _, project := range slices.Sorted(maps.Keys(kinds)) {
			locked, err := repo.GetUsagesForUpdate(ctx, project, slices.Sorted(maps.Keys(kinds[project])))
			if err != nil {
				return repoError(err, entityQuota, project)
			}
			for _, u := range locked {
				usages[u.ID] = u
			}
		}

		reservations, err := repo.GetReservationsForUpdate(ctx, reservationIDs)
		if err != nil {
			return repoError(err, entityQuota, projectID)
		}

		touched := map[uint]bool{}
		for _, r := range reservations {
			u, ok := usages[r.UsageID]
			if !ok {
				continue
			}
			apply(u, r.Delta)
			touched[u.ID] = true
			if err := repo.DeleteReservation(ctx, r.ID); err != nil {
				return repoError(err, entityQuota, r.UUID)
			}
		}

		for _, id := range slices.Sorted(maps.Keys(touched)) {
			u := usages[id]
			if err := repo.SaveUsage(ctx, u); err != nil {
				return repoError(err, entityQuota, u.ProjectID+"/"+u.Resource)
			}
		}

		log.WithFields(log.Fields{"project": projectID, "count": len(touched)}).Debugf("Quota %s applied", op)
		return nil
	})
}

// ExpireReservations rolls back every reservation past its expiry and
// returns how many were released.
func (l *QuotaLedger) ExpireReservations(ctx context.Context) (int, error) {
	expired, err := l.store.Quotas().ListExpiredReservations(ctx, l.now(), expireBatchSize)
	if err != nil {
		return 0, repoError(err, entityQuota, "expired")
	}

	byProject := map[string][]string{}
	for _, r := range expired {
		byProject[r.ProjectID] = append(byProject[r.ProjectID], r.UUID)
	}

	total := 0
	for _, project := range slices.Sorted(maps.Keys(byProject)) {
		ids := byProject[project]
		if err := l.Rollback(ctx, ids, project); err != nil {
			metrics.RecordExpired(total)
			return total, err
		}
		total += len(ids)
	}

	metrics.RecordExpired(total)
	if total > 0 {
		log.WithField("count", total).Info("Expired quota reservations rolled back")
	}
	return total, nil
}

// Usage returns the usage rows of a project.
func (l *QuotaLedger) Usage(ctx context.Context, projectID string) ([]quota.Usage, error) {
	if projectID == "" {
		return nil, invalidArgument("project id is required")
	}
	usages, err := l.store.Quotas().ListUsages(ctx, projectID)
	if err != nil {
		return nil, repoError(err, entityQuota, projectID)
	}
	return usages, nil
}
