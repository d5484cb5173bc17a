package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ domain.VictoryTargetRepository = (*CachedVictoryTargetRepository)(nil)

const victoryTargetCacheTTL = 30 * time.Minute

// CachedVictoryTargetRepository keeps each brand's full target list in Redis.
// Dashboards read the list far more often than targets change, and every
// narrower filter is applied to the cached brand list in memory.
type CachedVictoryTargetRepository struct {
	next  domain.VictoryTargetRepository
	cache *redis.Client
	log   *zap.Logger
}

func NewCachedVictoryTargetRepository(next domain.VictoryTargetRepository, cache *redis.Client, log *zap.Logger) *CachedVictoryTargetRepository {
	return &CachedVictoryTargetRepository{
		next:  next,
		cache: cache,
		log:   log.Named("cache"),
	}
}

func (r *CachedVictoryTargetRepository) cacheKey(brandID string) string {
	return fmt.Sprintf("victory_targets:%s", brandID)
}

func (r *CachedVictoryTargetRepository) invalidate(ctx context.Context, brandID string) {
	if err := r.cache.Del(ctx, r.cacheKey(brandID)).Err(); err != nil {
		r.log.Warn("failed to invalidate brand targets", zap.String("brand_id", brandID), zap.Error(err))
	}
}

func (r *CachedVictoryTargetRepository) brandTargets(ctx context.Context, brandID string) ([]*domain.VictoryTarget, error) {
	key := r.cacheKey(brandID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var targets []*domain.VictoryTarget
		if err := json.Unmarshal([]byte(val), &targets); err == nil {
			return targets, nil
		}

		r.log.Warn("corrupted cache entry, cleaning up key", zap.String("brand_id", brandID))
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.log.Warn("redis read error", zap.Error(err))
	}

	targets, err := r.next.List(ctx, domain.ListFilter{BrandID: brandID})
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(targets); err == nil {
		if setErr := r.cache.Set(ctx, key, data, victoryTargetCacheTTL).Err(); setErr != nil {
			r.log.Warn("redis set error", zap.Error(setErr))
		}
	}

	return targets, nil
}

func (r *CachedVictoryTargetRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.VictoryTarget, error) {
	if filter.BrandID == "" {
		return r.next.List(ctx, filter)
	}

	all, err := r.brandTargets(ctx, filter.BrandID)
	if err != nil {
		return nil, err
	}

	targets := make([]*domain.VictoryTarget, 0, len(all))
	for _, t := range all {
		if filter.Matches(t.BrandID, t.Department, t.OwnerID) {
			targets = append(targets, t)
		}
	}
	return targets, nil
}

func (r *CachedVictoryTargetRepository) GetByID(ctx context.Context, id string) (*domain.VictoryTarget, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedVictoryTargetRepository) Create(ctx context.Context, target *domain.VictoryTarget) error {
	if err := r.next.Create(ctx, target); err != nil {
		return err
	}
	r.invalidate(ctx, target.BrandID)
	return nil
}

func (r *CachedVictoryTargetRepository) Update(ctx context.Context, target *domain.VictoryTarget) error {
	if err := r.next.Update(ctx, target); err != nil {
		return err
	}
	r.invalidate(ctx, target.BrandID)
	return nil
}

func (r *CachedVictoryTargetRepository) Delete(ctx context.Context, id string) error {
	target, err := r.next.GetByID(ctx, id)
	if err == nil && target != nil {
		defer r.invalidate(ctx, target.BrandID)
	}

	return r.next.Delete(ctx, id)
}
