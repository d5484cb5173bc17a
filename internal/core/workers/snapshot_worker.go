package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"go.uber.org/zap"
)

type Snapshotter interface {
	Snapshot(ctx context.Context, brandID, department string, now time.Time) (*domain.WeeklySnapshot, error)
}

type BrandLister interface {
	List(ctx context.Context) ([]*domain.Brand, error)
}

type SnapshotJob struct {
	BrandID    string
	Department string
}

// SnapshotWorker keeps the weekly score history current. Writes to victory
// targets enqueue their department; an optional periodic sweep refreshes
// every brand's known departments so quiet weeks still get a row.
type SnapshotWorker struct {
	scores   Snapshotter
	brands   BrandLister
	log      *zap.Logger
	jobs     chan SnapshotJob
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	seen map[SnapshotJob]bool

	done chan struct{}
}

func NewSnapshotWorker(scores Snapshotter, brands BrandLister, log *zap.Logger, interval time.Duration) *SnapshotWorker {
	return &SnapshotWorker{
		scores:   scores,
		brands:   brands,
		log:      log.Named("snapshot_worker"),
		jobs:     make(chan SnapshotJob, 100),
		interval: interval,
		now:      time.Now,
		seen:     make(map[SnapshotJob]bool),
		done:     make(chan struct{}),
	}
}

func (w *SnapshotWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		w.log.Info("snapshot worker started", zap.Duration("sweep_interval", w.interval))

		var tick <-chan time.Time
		if w.interval > 0 {
			ticker := time.NewTicker(w.interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-tick:
				w.sweep(ctx)
			case <-ctx.Done():
				w.log.Info("snapshot worker shutting down")
				return
			}
		}
	}()
}

// Wait blocks until the worker goroutine has exited after its context was
// cancelled.
func (w *SnapshotWorker) Wait() {
	<-w.done
}

func (w *SnapshotWorker) Enqueue(brandID, department string) {
	job := SnapshotJob{BrandID: brandID, Department: department}

	w.mu.Lock()
	w.seen[job] = true
	w.mu.Unlock()

	select {
	case w.jobs <- job:
	default:
		w.log.Warn("snapshot queue full, dropping job",
			zap.String("brand_id", brandID), zap.String("department", department))
	}
}

func (w *SnapshotWorker) processJob(ctx context.Context, job SnapshotJob) {
	snap, err := w.scores.Snapshot(ctx, job.BrandID, job.Department, w.now())
	if errors.Is(err, domain.ErrBrandNotFound) {
		w.forget(job.BrandID)
		w.log.Debug("brand gone, dropping its departments", zap.String("brand_id", job.BrandID))
		return
	}
	if err != nil {
		w.log.Error("failed to snapshot department",
			zap.String("brand_id", job.BrandID), zap.String("department", job.Department), zap.Error(err))
		return
	}
	w.log.Debug("snapshot stored",
		zap.String("brand_id", snap.BrandID),
		zap.String("department", snap.Department),
		zap.Time("week_start", snap.WeekStart),
		zap.Int("average_score", snap.AverageScore))
}

func (w *SnapshotWorker) forget(brandID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for job := range w.seen {
		if job.BrandID == brandID {
			delete(w.seen, job)
		}
	}
}

// sweep snapshots every known department of every listed brand plus the
// departments seen since start. Seen departments of brands that are no
// longer listed are forgotten.
func (w *SnapshotWorker) sweep(ctx context.Context) {
	jobs := make(map[SnapshotJob]bool)

	var live map[string]bool
	if w.brands != nil {
		brands, err := w.brands.List(ctx)
		if err != nil {
			w.log.Error("sweep: failed to list brands", zap.Error(err))
		} else {
			live = make(map[string]bool, len(brands))
		}
		for _, b := range brands {
			live[b.ID] = true
			for _, d := range domain.KnownDepartments {
				jobs[SnapshotJob{BrandID: b.ID, Department: d.Code}] = true
			}
		}
	}

	w.mu.Lock()
	for job := range w.seen {
		if live != nil && !live[job.BrandID] {
			delete(w.seen, job)
			continue
		}
		jobs[job] = true
	}
	w.mu.Unlock()

	for job := range jobs {
		if ctx.Err() != nil {
			return
		}
		w.processJob(ctx, job)
	}
	w.log.Info("sweep complete", zap.Int("departments", len(jobs)))
}
