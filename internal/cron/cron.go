package cron

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Expirer releases quota reservations whose expiry has passed.
type Expirer interface {
	ExpireReservations(ctx context.Context) (int, error)
}

// RunReservationSweeper expires stale reservations every interval until ctx
// is cancelled. The first sweep runs immediately.
func RunReservationSweeper(ctx context.Context, expirer Expirer, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	log.WithField("interval", interval).Info("Starting quota reservation sweeper")

	sweep(ctx, expirer)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Quota reservation sweeper stopped")
			return nil
		case <-ticker.C:
			sweep(ctx, expirer)
		}
	}
}

func sweep(ctx context.Context, expirer Expirer) {
	n, err := expirer.ExpireReservations(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.WithError(err).Error("Failed to expire quota reservations")
		return
	}
	if n > 0 {
		log.WithField("count", n).Info("Quota reservation sweep completed")
	}
}
