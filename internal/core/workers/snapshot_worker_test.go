package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSnapshotter struct {
	mu    sync.Mutex
	calls []SnapshotJob
	fail    map[string]bool
	missing map[string]bool
	block   chan struct{}
}

func (f *fakeSnapshotter) Snapshot(ctx context.Context, brandID, department string, now time.Time) (*domain.WeeklySnapshot, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, SnapshotJob{BrandID: brandID, Department: department})
	if f.missing[brandID] {
		return nil, domain.ErrBrandNotFound
	}
	if f.fail[department] {
		return nil, errors.New("boom")
	}
	return &domain.WeeklySnapshot{BrandID: brandID, Department: department, WeekStart: domain.WeekStart(now)}, nil
}

func (f *fakeSnapshotter) called() []SnapshotJob {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SnapshotJob(nil), f.calls...)
}

type fakeBrands []*domain.Brand

func (b fakeBrands) List(ctx context.Context) ([]*domain.Brand, error) {
	return b, nil
}

func TestSnapshotWorker_ProcessesEnqueuedJobs(t *testing.T) {
	scores := &fakeSnapshotter{fail: map[string]bool{"hr": true}}
	w := NewSnapshotWorker(scores, nil, zap.NewNop(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	w.Enqueue("b1", "hr")
	w.Enqueue("b1", "sales")

	require.Eventually(t, func() bool { return len(scores.called()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []SnapshotJob{{"b1", "hr"}, {"b1", "sales"}}, scores.called(), "a failing job does not stop the loop")

	cancel()
	w.Wait()
}

func TestSnapshotWorker_DropsWhenQueueFull(t *testing.T) {
	scores := &fakeSnapshotter{}
	w := NewSnapshotWorker(scores, nil, zap.NewNop(), 0)

	for i := 0; i < cap(w.jobs)+25; i++ {
		w.Enqueue("b1", "sales")
	}
	assert.Len(t, w.jobs, cap(w.jobs))
}

func TestSnapshotWorker_Sweep(t *testing.T) {
	scores := &fakeSnapshotter{}
	brands := fakeBrands{{ID: "b1"}}
	w := NewSnapshotWorker(scores, brands, zap.NewNop(), 0)

	w.seen[SnapshotJob{BrandID: "b1", Department: "customer-success"}] = true
	w.seen[SnapshotJob{BrandID: "b2", Department: "sales"}] = true
	w.sweep(context.Background())

	calls := scores.called()
	assert.Len(t, calls, len(domain.KnownDepartments)+1)
	assert.Contains(t, calls, SnapshotJob{BrandID: "b1", Department: "customer-success"})
	assert.Contains(t, calls, SnapshotJob{BrandID: "b1", Department: domain.DeptLeadership})
	assert.NotContains(t, calls, SnapshotJob{BrandID: "b2", Department: "sales"}, "deleted brand is not swept")
	assert.NotContains(t, w.seen, SnapshotJob{BrandID: "b2", Department: "sales"})
	assert.Contains(t, w.seen, SnapshotJob{BrandID: "b1", Department: "customer-success"})
}

func TestSnapshotWorker_ForgetsBrandNotFound(t *testing.T) {
	scores := &fakeSnapshotter{missing: map[string]bool{"gone": true}}
	w := NewSnapshotWorker(scores, nil, zap.NewNop(), 0)

	w.seen[SnapshotJob{BrandID: "gone", Department: "sales"}] = true
	w.seen[SnapshotJob{BrandID: "gone", Department: "hr"}] = true
	w.seen[SnapshotJob{BrandID: "b1", Department: "sales"}] = true

	w.sweep(context.Background())
	assert.Len(t, scores.called(), 3)
	assert.Equal(t, map[SnapshotJob]bool{{BrandID: "b1", Department: "sales"}: true}, w.seen)

	w.sweep(context.Background())
	assert.Len(t, scores.called(), 4, "only the live brand is swept again")
}

func TestSnapshotWorker_StopsWhileBusy(t *testing.T) {
	scores := &fakeSnapshotter{block: make(chan struct{})}
	w := NewSnapshotWorker(scores, nil, zap.NewNop(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	w.Enqueue("b1", "sales")

	time.Sleep(10 * time.Millisecond)
	cancel()
	w.Wait()
}
