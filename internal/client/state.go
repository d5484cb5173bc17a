package client

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

// LocalState is a client-side copy of one filtered collection. Successful
// mutations are merged in place; a refused mutation means the copy may no
// longer match the server, so the whole list is fetched again.
type LocalState[T any] struct {
	mu       sync.RWMutex
	resource *Resource[T]
	filter   domain.ListFilter
	items    []T
	log      *zap.Logger
}

func NewLocalState[T any](resource *Resource[T], filter domain.ListFilter) *LocalState[T] {
	return &LocalState[T]{resource: resource, filter: filter, log: resource.c.log}
}

// Load replaces the local copy with the server's list.
func (s *LocalState[T]) Load(ctx context.Context) error {
	items, err := s.resource.List(ctx, s.filter)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Items returns a snapshot of the local copy.
func (s *LocalState[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Apply upserts an Ok value by id. On Err it re-syncs and returns the
// mutation's reason, joined with the re-sync error if that failed too.
func (s *LocalState[T]) Apply(ctx context.Context, r Result[T]) error {
	v, ok := r.Value()
	if !ok {
		return s.resync(ctx, r.Reason())
	}

	id := s.resource.idOf(v)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.resource.idOf(s.items[i]) == id {
			s.items[i] = v
			return nil
		}
	}
	s.items = append(s.items, v)
	return nil
}

// ApplyDelete removes the deleted id on Ok and re-syncs on Err.
func (s *LocalState[T]) ApplyDelete(ctx context.Context, r Result[string]) error {
	id, ok := r.Value()
	if !ok {
		return s.resync(ctx, r.Reason())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.resource.idOf(s.items[i]) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return nil
}

func (s *LocalState[T]) resync(ctx context.Context, reason error) error {
	s.log.Debug("mutation refused, reloading list", zap.String("resource", s.resource.plural), zap.Error(reason))
	if err := s.Load(ctx); err != nil {
		return errors.Join(reason, err)
	}
	return reason
}
