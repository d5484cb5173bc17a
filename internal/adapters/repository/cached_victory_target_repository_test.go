package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) *redis.Client {
	_ = godotenv.Load("../../../.env")

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", getEnv("REDIS_HOST", "localhost"), getEnv("REDIS_PORT", "6379")),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       2,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("Skipping integration test (Redis down): %v", err)
	}

	rdb.FlushDB(ctx)
	return rdb
}

func TestCachedVictoryTargetRepository_Integration(t *testing.T) {
	rdb := setupTestRedis(t)
	defer rdb.Close()

	ctx := context.Background()
	backing := NewInMemoryVictoryTargetRepository()
	repo := NewCachedVictoryTargetRepository(backing, rdb, zap.NewNop())

	vt, _ := domain.NewVictoryTarget("brand-1", "sales", "Pipeline", 200, 50, "", "u1", nil)
	require.NoError(t, repo.Create(ctx, vt))

	t.Run("Miss populates the brand key", func(t *testing.T) {
		list, err := repo.List(ctx, domain.ListFilter{BrandID: "brand-1", Department: "sales"})
		require.NoError(t, err)
		require.Len(t, list, 1)

		n, err := rdb.Exists(ctx, "victory_targets:brand-1").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("Hit is filtered in memory", func(t *testing.T) {
		list, err := repo.List(ctx, domain.ListFilter{BrandID: "brand-1", Department: "marketing"})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Writes invalidate", func(t *testing.T) {
		vt.Achieved = 150
		require.NoError(t, repo.Update(ctx, vt))

		n, _ := rdb.Exists(ctx, "victory_targets:brand-1").Result()
		assert.Equal(t, int64(0), n)

		list, err := repo.List(ctx, domain.ListFilter{BrandID: "brand-1"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, 150.0, list[0].Achieved)
	})

	t.Run("Corrupted entry falls back to the store", func(t *testing.T) {
		require.NoError(t, rdb.Set(ctx, "victory_targets:brand-1", "{not json", 0).Err())

		list, err := repo.List(ctx, domain.ListFilter{BrandID: "brand-1"})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("Delete invalidates", func(t *testing.T) {
		_, _ = repo.List(ctx, domain.ListFilter{BrandID: "brand-1"})
		require.NoError(t, repo.Delete(ctx, vt.ID))

		list, err := repo.List(ctx, domain.ListFilter{BrandID: "brand-1"})
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
