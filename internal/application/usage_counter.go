package application

import (
	"context"

	"github.com/linskybing/accel-platform/internal/repository"
	log "github.com/sirupsen/logrus"
)

// ARQUsageCounter derives actual usage from the live requests of a project.
// Every kind charged by those requests is reported in one pass.
type ARQUsageCounter struct {
	store repository.Store
}

func NewARQUsageCounter(store repository.Store) *ARQUsageCounter {
	return &ARQUsageCounter{store: store}
}

func (c *ARQUsageCounter) ActualUsage(ctx context.Context, projectID, resource string) (map[string]int, error) {
	arqs, err := c.store.ARQs().ListByProject(ctx, projectID)
	if err != nil {
		return nil, repoError(err, entityQuota, projectID)
	}

	totals := map[string]int{resource: 0}
	for i := range arqs {
		dp := arqs[i].DeviceProfile
		if dp == nil {
			continue
		}
		deltas, err := dp.ResourceDeltas()
		if err != nil {
			log.WithField("arq", arqs[i].UUID).WithError(err).Warn("Skipping request with unreadable profile")
			continue
		}
		for kind, n := range deltas {
			totals[kind] += n
		}
	}
	return totals, nil
}
