package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/taskhub/taskhub/internal/metrics"
	"github.com/taskhub/taskhub/internal/models"
	"github.com/taskhub/taskhub/internal/tasks"
)

// Lister is the slice of the repository the warmer reads from.
type Lister interface {
	List(ctx context.Context, limit int) ([]models.Task, error)
}

// Putter is the slice of the cache the warmer writes to.
type Putter interface {
	Put(ctx context.Context, task models.Task)
}

// warmTimeout bounds one full warm cycle.
const warmTimeout = 30 * time.Second

// Run starts a cron-driven cache warmer: at each tick it lists the current
// task snapshot from the repository and repopulates the cache, so cold reads
// after a restart or TTL expiry still hit. Blocks until ctx is canceled.
// cronSpec uses cron syntax or descriptors like "@every 5m".
func Run(ctx context.Context, repo Lister, cache Putter, cronSpec string) error {
	c := cron.New()

	warm := func() {
		ctx, cancel := context.WithTimeout(ctx, warmTimeout)
		defer cancel()

		list, err := repo.List(ctx, tasks.MaxListSize)
		if err != nil {
			slog.Warn("cache warm: list tasks failed", "error", err)
			metrics.RecordCacheWarm("error")
			return
		}

		for _, t := range list {
			cache.Put(ctx, t)
		}
		metrics.RecordCacheWarm("ok")
		slog.Debug("cache warm cycle complete", "tasks", len(list))
	}

	if _, err := c.AddFunc(cronSpec, warm); err != nil {
		return err
	}

	// Warm once at startup so the cache is useful immediately.
	warm()
	c.Start()

	<-ctx.Done()
	stopCtx := c.Stop()
	<-stopCtx.Done()
	return nil
}
