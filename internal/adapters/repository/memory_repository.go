package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

// memTable is a mutex-guarded map of rows that hands out copies, so callers
// never share memory with the store. Rows keep insertion order for listing.
type memTable[T any] struct {
	mu   sync.RWMutex
	rows map[string]*T
	seq  map[string]int
	next int

	notFound error
	conflict error

	key       func(*T) string
	deletedAt func(*T) **time.Time
	version   func(*T) *int
	clone     func(*T) *T
}

func newMemTable[T any](notFound error, key func(*T) string) *memTable[T] {
	return &memTable[T]{
		rows:     make(map[string]*T),
		seq:      make(map[string]int),
		notFound: notFound,
		key:      key,
		clone: func(v *T) *T {
			c := *v
			return &c
		},
	}
}

func (t *memTable[T]) live(v *T) bool {
	return t.deletedAt == nil || *t.deletedAt(v) == nil
}

func (t *memTable[T]) create(v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.key(v)
	if _, exists := t.rows[id]; exists {
		return fmt.Errorf("memory store: duplicate id %s", id)
	}
	if t.version != nil && *t.version(v) == 0 {
		*t.version(v) = 1
	}
	t.rows[id] = t.clone(v)
	t.next++
	t.seq[id] = t.next
	return nil
}

func (t *memTable[T]) get(id string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.rows[id]
	if !ok || !t.live(v) {
		return nil, t.notFound
	}
	return t.clone(v), nil
}

func (t *memTable[T]) find(match func(*T) bool) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, v := range t.rows {
		if t.live(v) && match(v) {
			return t.clone(v), true
		}
	}
	return nil, false
}

func (t *memTable[T]) list(match func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*T, 0)
	for _, v := range t.rows {
		if t.live(v) && (match == nil || match(v)) {
			out = append(out, t.clone(v))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return t.seq[t.key(out[i])] < t.seq[t.key(out[j])]
	})
	return out
}

// update replaces a live row. Versioned tables require the caller to hold
// the current version and bump it on success.
func (t *memTable[T]) update(v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.key(v)
	cur, ok := t.rows[id]
	if !ok || !t.live(cur) {
		return t.notFound
	}
	if t.version != nil {
		if *t.version(cur) != *t.version(v) {
			return t.conflict
		}
		*t.version(v)++
	}
	t.rows[id] = t.clone(v)
	return nil
}

// remove soft deletes when the row type carries a deleted_at field and
// drops the row otherwise.
func (t *memTable[T]) remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur, ok := t.rows[id]
	if !ok || !t.live(cur) {
		return t.notFound
	}
	if t.deletedAt == nil {
		delete(t.rows, id)
		delete(t.seq, id)
		return nil
	}
	now := time.Now().UTC()
	*t.deletedAt(cur) = &now
	if t.version != nil {
		*t.version(cur)++
	}
	return nil
}

// MemoryStore bundles in-memory implementations of every repository. It
// backs STORAGE=memory runs and the service tests.
type MemoryStore struct {
	VictoryTargets *InMemoryVictoryTargetRepository
	PowerMoves     *InMemoryPowerMoveRepository
	Tasks          *InMemoryTaskRepository
	Commitments    *InMemoryCommitmentRepository
	Clients        *InMemoryClientRepository
	Users          *InMemoryUserRepository
	Brands         *InMemoryBrandRepository
	Assignments    *InMemoryAssignmentRepository
	Snapshots      *InMemorySnapshotRepository
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		VictoryTargets: NewInMemoryVictoryTargetRepository(),
		PowerMoves:     NewInMemoryPowerMoveRepository(),
		Tasks:          NewInMemoryTaskRepository(),
		Commitments:    NewInMemoryCommitmentRepository(),
		Clients:        NewInMemoryClientRepository(),
		Users:          NewInMemoryUserRepository(),
		Brands:         NewInMemoryBrandRepository(),
		Assignments:    NewInMemoryAssignmentRepository(),
		Snapshots:      NewInMemorySnapshotRepository(),
	}
}

var (
	_ domain.VictoryTargetRepository = (*InMemoryVictoryTargetRepository)(nil)
	_ domain.PowerMoveRepository     = (*InMemoryPowerMoveRepository)(nil)
	_ domain.TaskRepository          = (*InMemoryTaskRepository)(nil)
	_ domain.CommitmentRepository    = (*InMemoryCommitmentRepository)(nil)
	_ domain.ClientRepository        = (*InMemoryClientRepository)(nil)
	_ domain.UserRepository          = (*InMemoryUserRepository)(nil)
	_ domain.BrandRepository         = (*InMemoryBrandRepository)(nil)
	_ domain.AssignmentRepository    = (*InMemoryAssignmentRepository)(nil)
	_ domain.SnapshotRepository      = (*InMemorySnapshotRepository)(nil)
)

type InMemoryVictoryTargetRepository struct {
	table *memTable[domain.VictoryTarget]
}

func NewInMemoryVictoryTargetRepository() *InMemoryVictoryTargetRepository {
	t := newMemTable(domain.ErrVictoryTargetNotFound, func(v *domain.VictoryTarget) string { return v.ID })
	t.conflict = domain.ErrVictoryTargetConflict
	t.deletedAt = func(v *domain.VictoryTarget) **time.Time { return &v.DeletedAt }
	t.version = func(v *domain.VictoryTarget) *int { return &v.Version }
	t.clone = func(v *domain.VictoryTarget) *domain.VictoryTarget {
		c := *v
		c.Quarters = append([]domain.QuarterTarget(nil), v.Quarters...)
		return &c
	}
	return &InMemoryVictoryTargetRepository{table: t}
}

func (r *InMemoryVictoryTargetRepository) Create(ctx context.Context, target *domain.VictoryTarget) error {
	return r.table.create(target)
}

func (r *InMemoryVictoryTargetRepository) GetByID(ctx context.Context, id string) (*domain.VictoryTarget, error) {
	return r.table.get(id)
}

func (r *InMemoryVictoryTargetRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.VictoryTarget, error) {
	return r.table.list(func(v *domain.VictoryTarget) bool {
		return filter.Matches(v.BrandID, v.Department, v.OwnerID)
	}), nil
}

func (r *InMemoryVictoryTargetRepository) Update(ctx context.Context, target *domain.VictoryTarget) error {
	return r.table.update(target)
}

func (r *InMemoryVictoryTargetRepository) Delete(ctx context.Context, id string) error {
	return r.table.remove(id)
}

type InMemoryPowerMoveRepository struct {
	table *memTable[domain.PowerMove]
}

func NewInMemoryPowerMoveRepository() *InMemoryPowerMoveRepository {
	t := newMemTable(domain.ErrPowerMoveNotFound, func(v *domain.PowerMove) string { return v.ID })
	t.conflict = domain.ErrPowerMoveConflict
	t.deletedAt = func(v *domain.PowerMove) **time.Time { return &v.DeletedAt }
	t.version = func(v *domain.PowerMove) *int { return &v.Version }
	return &InMemoryPowerMoveRepository{table: t}
}

func (r *InMemoryPowerMoveRepository) Create(ctx context.Context, move *domain.PowerMove) error {
	return r.table.create(move)
}

func (r *InMemoryPowerMoveRepository) GetByID(ctx context.Context, id string) (*domain.PowerMove, error) {
	return r.table.get(id)
}

func (r *InMemoryPowerMoveRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.PowerMove, error) {
	return r.table.list(func(v *domain.PowerMove) bool {
		return filter.Matches(v.BrandID, v.Department, v.OwnerID)
	}), nil
}

func (r *InMemoryPowerMoveRepository) Update(ctx context.Context, move *domain.PowerMove) error {
	return r.table.update(move)
}

func (r *InMemoryPowerMoveRepository) Delete(ctx context.Context, id string) error {
	return r.table.remove(id)
}

type InMemoryTaskRepository struct {
	table *memTable[domain.Task]
}

func NewInMemoryTaskRepository() *InMemoryTaskRepository {
	t := newMemTable(domain.ErrTaskNotFound, func(v *domain.Task) string { return v.ID })
	t.deletedAt = func(v *domain.Task) **time.Time { return &v.DeletedAt }
	return &InMemoryTaskRepository{table: t}
}

func (r *InMemoryTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.table.create(task)
}

func (r *InMemoryTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return r.table.get(id)
}

func (r *InMemoryTaskRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Task, error) {
	return r.table.list(func(v *domain.Task) bool {
		return filter.Matches(v.BrandID, v.Department, v.OwnerID)
	}), nil
}

func (r *InMemoryTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	return r.table.update(task)
}

func (r *InMemoryTaskRepository) Delete(ctx context.Context, id string) error {
	return r.table.remove(id)
}

type InMemoryCommitmentRepository struct {
	table *memTable[domain.Commitment]
}

func NewInMemoryCommitmentRepository() *InMemoryCommitmentRepository {
	t := newMemTable(domain.ErrCommitmentNotFound, func(v *domain.Commitment) string { return v.ID })
	t.deletedAt = func(v *domain.Commitment) **time.Time { return &v.DeletedAt }
	return &InMemoryCommitmentRepository{table: t}
}

func (r *InMemoryCommitmentRepository) Create(ctx context.Context, c *domain.Commitment) error {
	return r.table.create(c)
}

func (r *InMemoryCommitmentRepository) GetByID(ctx context.Context, id string) (*domain.Commitment, error) {
	return r.table.get(id)
}

func (r *InMemoryCommitmentRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Commitment, error) {
	return r.table.list(func(v *domain.Commitment) bool {
		return filter.Matches(v.BrandID, v.Department, v.OwnerID)
	}), nil
}

func (r *InMemoryCommitmentRepository) Update(ctx context.Context, c *domain.Commitment) error {
	return r.table.update(c)
}

func (r *InMemoryCommitmentRepository) Delete(ctx context.Context, id string) error {
	return r.table.remove(id)
}

type InMemoryClientRepository struct {
	table *memTable[domain.Client]
}

func NewInMemoryClientRepository() *InMemoryClientRepository {
	t := newMemTable(domain.ErrClientNotFound, func(v *domain.Client) string { return v.ID })
	t.deletedAt = func(v *domain.Client) **time.Time { return &v.DeletedAt }
	return &InMemoryClientRepository{table: t}
}

func (r *InMemoryClientRepository) Create(ctx context.Context, c *domain.Client) error {
	return r.table.create(c)
}

func (r *InMemoryClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	return r.table.get(id)
}

func (r *InMemoryClientRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Client, error) {
	return r.table.list(func(v *domain.Client) bool {
		return (filter.BrandID == "" || v.BrandID == filter.BrandID) &&
			(filter.OwnerID == "" || v.OwnerID == filter.OwnerID)
	}), nil
}

func (r *InMemoryClientRepository) Update(ctx context.Context, c *domain.Client) error {
	return r.table.update(c)
}

func (r *InMemoryClientRepository) Delete(ctx context.Context, id string) error {
	return r.table.remove(id)
}

type InMemoryUserRepository struct {
	table *memTable[domain.User]
	mu    sync.Mutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	t := newMemTable(domain.ErrUserNotFound, func(v *domain.User) string { return v.ID })
	t.deletedAt = func(v *domain.User) **time.Time { return &v.DeletedAt }
	return &InMemoryUserRepository{table: t}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.table.find(func(u *domain.User) bool { return u.Email == user.Email }); taken {
		return domain.ErrEmailAlreadyExists
	}
	return r.table.create(user)
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.table.get(id)
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := r.table.find(func(u *domain.User) bool { return u.Email == email })
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *InMemoryUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	return r.table.list(nil), nil
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.table.find(func(u *domain.User) bool { return u.Email == user.Email && u.ID != user.ID }); taken {
		return domain.ErrEmailAlreadyExists
	}
	return r.table.update(user)
}

func (r *InMemoryUserRepository) Delete(ctx context.Context, id string) error {
	return r.table.remove(id)
}

type InMemoryBrandRepository struct {
	table *memTable[domain.Brand]
	mu    sync.Mutex
}

func NewInMemoryBrandRepository() *InMemoryBrandRepository {
	t := newMemTable(domain.ErrBrandNotFound, func(v *domain.Brand) string { return v.ID })
	t.deletedAt = func(v *domain.Brand) **time.Time { return &v.DeletedAt }
	return &InMemoryBrandRepository{table: t}
}

func (r *InMemoryBrandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.table.find(func(b *domain.Brand) bool { return b.Slug == brand.Slug }); taken {
		return domain.ErrBrandSlugDuplicate
	}
	return r.table.create(brand)
}

func (r *InMemoryBrandRepository) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	return r.table.get(id)
}

func (r *InMemoryBrandRepository) List(ctx context.Context) ([]*domain.Brand, error) {
	return r.table.list(nil), nil
}

func (r *InMemoryBrandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.table.find(func(b *domain.Brand) bool { return b.Slug == brand.Slug && b.ID != brand.ID }); taken {
		return domain.ErrBrandSlugDuplicate
	}
	return r.table.update(brand)
}

func (r *InMemoryBrandRepository) Delete(ctx context.Context, id string) error {
	return r.table.remove(id)
}

type InMemoryAssignmentRepository struct {
	table *memTable[domain.DepartmentAssignment]
	mu    sync.Mutex
}

func NewInMemoryAssignmentRepository() *InMemoryAssignmentRepository {
	t := newMemTable(domain.ErrAssignmentNotFound, func(v *domain.DepartmentAssignment) string { return v.ID })
	return &InMemoryAssignmentRepository{table: t}
}

func (r *InMemoryAssignmentRepository) Create(ctx context.Context, a *domain.DepartmentAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, taken := r.table.find(func(o *domain.DepartmentAssignment) bool {
		return o.UserID == a.UserID && o.BrandID == a.BrandID && o.Department == a.Department
	})
	if taken {
		return domain.ErrAssignmentExists
	}
	return r.table.create(a)
}

func (r *InMemoryAssignmentRepository) GetByID(ctx context.Context, id string) (*domain.DepartmentAssignment, error) {
	return r.table.get(id)
}

func (r *InMemoryAssignmentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.DepartmentAssignment, error) {
	return r.table.list(func(a *domain.DepartmentAssignment) bool { return a.UserID == userID }), nil
}

func (r *InMemoryAssignmentRepository) ListByBrand(ctx context.Context, brandID string) ([]*domain.DepartmentAssignment, error) {
	return r.table.list(func(a *domain.DepartmentAssignment) bool { return a.BrandID == brandID }), nil
}

func (r *InMemoryAssignmentRepository) Update(ctx context.Context, a *domain.DepartmentAssignment) error {
	return r.table.update(a)
}

func (r *InMemoryAssignmentRepository) Delete(ctx context.Context, id string) error {
	return r.table.remove(id)
}

type InMemorySnapshotRepository struct {
	mu   sync.RWMutex
	rows map[string]*domain.WeeklySnapshot
}

func NewInMemorySnapshotRepository() *InMemorySnapshotRepository {
	return &InMemorySnapshotRepository{rows: make(map[string]*domain.WeeklySnapshot)}
}

func snapshotKey(brandID, department string, week time.Time) string {
	return brandID + "|" + department + "|" + week.UTC().Format("2006-01-02")
}

func (r *InMemorySnapshotRepository) Upsert(ctx context.Context, s *domain.WeeklySnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *s
	r.rows[snapshotKey(s.BrandID, s.Department, s.WeekStart)] = &c
	return nil
}

func (r *InMemorySnapshotRepository) ListRange(ctx context.Context, brandID, department string, from, to time.Time) ([]*domain.WeeklySnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.WeeklySnapshot, 0)
	for _, s := range r.rows {
		if s.BrandID != brandID || s.Department != department {
			continue
		}
		if s.WeekStart.Before(from) || !s.WeekStart.Before(to) {
			continue
		}
		c := *s
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart.Before(out[j].WeekStart) })
	return out, nil
}
