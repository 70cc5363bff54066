package worker

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/internal/service"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/logger"
)

type Syncer interface {
	AllRepositories(ctx context.Context) ([]models.Repository, error)
	SyncRepository(ctx context.Context, repo models.Repository, branch string, limit int) (*service.SyncResult, error)
}

// * SyncWorker periodically syncs every registered repository, at most
// * concurrency at a time, fetching up to limit commits each.
type SyncWorker struct {
	service     Syncer
	interval    time.Duration
	concurrency int
	limit       int
}

func NewSyncWorker(service Syncer, interval time.Duration, concurrency, limit int) *SyncWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &SyncWorker{
		service:     service,
		interval:    interval,
		concurrency: concurrency,
		limit:       limit,
	}
}

func (w *SyncWorker) Run(ctx context.Context) {
	w.syncAll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.syncAll(ctx)

		case <-ctx.Done():
			logger.Info("stopping sync worker")
			return
		}
	}
}

// * syncAll returns the number of repositories that failed to sync.
// * A failing repository never stops the others.
func (w *SyncWorker) syncAll(ctx context.Context) int {
	repos, err := w.service.AllRepositories(ctx)
	if err != nil {
		logger.Error("failed to list repositories: %v", err)
		return 0
	}

	var failed atomic.Int32

	g := new(errgroup.Group)
	g.SetLimit(w.concurrency)

	for _, repo := range repos {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			// * Empty branch means the repository's default branch
			if _, err := w.service.SyncRepository(ctx, repo, "", w.limit); err != nil {
				failed.Add(1)
				logger.Error("sync of %s failed: %v", repo.FullName, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	n := int(failed.Load())
	logger.Info("sync run finished: %d repositories, %d failed", len(repos), n)
	return n
}
