package marketintel

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule refreshes weekly, matching the cache staleness threshold.
const DefaultSchedule = "@weekly"

const refreshTimeout = 10 * time.Minute

// Scheduler triggers cache refreshes on a cron schedule, off the
// request-serving path. A tick that lands while a cycle is still running is
// skipped rather than queued.
type Scheduler struct {
	cron  *cron.Cron
	cache *Cache
}

func NewScheduler(cache *Cache, schedule string) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		ok, err := cache.Refresh(ctx)
		switch {
		case errors.Is(err, ErrRefreshRunning):
			log.Printf("scheduled refresh skipped: previous cycle still running")
		case err != nil:
			log.Printf("scheduled refresh aborted: %v", err)
		case !ok:
			log.Printf("scheduled refresh failed: provider unreachable")
		default:
			log.Printf("scheduled refresh completed")
		}
	})
	if err != nil {
		return nil, err
	}
	return &Scheduler{cron: c, cache: cache}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
