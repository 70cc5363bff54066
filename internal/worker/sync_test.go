package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/internal/service"
)

type fakeSyncer struct {
	repos    []models.Repository
	listErr  error
	failing  map[string]bool
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32

	mu     sync.Mutex
	synced []string
	limits []int
}

func (f *fakeSyncer) AllRepositories(ctx context.Context) ([]models.Repository, error) {
	return f.repos, f.listErr
}

func (f *fakeSyncer) SyncRepository(ctx context.Context, repo models.Repository, branch string, limit int) (*service.SyncResult, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.peak.Load()
		if n <= peak || f.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	time.Sleep(f.delay)

	f.mu.Lock()
	f.synced = append(f.synced, repo.FullName)
	f.limits = append(f.limits, limit)
	f.mu.Unlock()

	if f.failing[repo.FullName] {
		return nil, fmt.Errorf("upstream down")
	}
	return &service.SyncResult{Repository: repo.FullName}, nil
}

func repositories(n int) []models.Repository {
	repos := make([]models.Repository, 0, n)
	for i := 0; i < n; i++ {
		repos = append(repos, models.Repository{ID: int64(i + 1), FullName: fmt.Sprintf("acme/repo%d", i)})
	}
	return repos
}

func TestSyncAll_BoundedConcurrency(t *testing.T) {
	syncer := &fakeSyncer{repos: repositories(8), delay: 20 * time.Millisecond}
	w := NewSyncWorker(syncer, time.Hour, 3, 100)

	failed := w.syncAll(context.Background())

	assert.Zero(t, failed)
	assert.Len(t, syncer.synced, 8)
	assert.LessOrEqual(t, syncer.peak.Load(), int32(3))
	for _, limit := range syncer.limits {
		assert.Equal(t, 100, limit)
	}
}

func TestSyncAll_FailureDoesNotStopOthers(t *testing.T) {
	syncer := &fakeSyncer{
		repos:   repositories(4),
		failing: map[string]bool{"acme/repo1": true, "acme/repo3": true},
	}
	w := NewSyncWorker(syncer, time.Hour, 2, 10)

	failed := w.syncAll(context.Background())

	assert.Equal(t, 2, failed)
	assert.Len(t, syncer.synced, 4)
}

func TestSyncAll_ListError(t *testing.T) {
	syncer := &fakeSyncer{listErr: fmt.Errorf("db down")}
	w := NewSyncWorker(syncer, time.Hour, 0, 10)

	assert.Equal(t, 1, w.concurrency)
	assert.Zero(t, w.syncAll(context.Background()))
	assert.Empty(t, syncer.synced)
}

func TestRun_StopsOnCancel(t *testing.T) {
	syncer := &fakeSyncer{repos: repositories(1)}
	w := NewSyncWorker(syncer, 10*time.Millisecond, 1, 10)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		syncer.mu.Lock()
		defer syncer.mu.Unlock()
		return len(syncer.synced) >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
