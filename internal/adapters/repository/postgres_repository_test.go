package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupTestDB(t *testing.T) *sqlx.DB {
	_ = godotenv.Load("../../../.env")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "bpr_user"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "bpr_db"),
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}

	schema, err := os.ReadFile("../../../migrations/001_init.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err, "Failed to apply schema")

	cleanup(t, db)
	return db
}

func cleanup(t *testing.T, db *sqlx.DB) {
	_, err := db.Exec(`TRUNCATE TABLE weekly_snapshots, clients, commitments, tasks, power_moves,
		victory_targets, department_assignments, brands, users CASCADE`)
	require.NoError(t, err, "Failed to clean up database")
}

func seedBrand(t *testing.T, ctx context.Context, db *sqlx.DB) *domain.Brand {
	brand, err := domain.NewBrand("Integration Brand "+uuid.NewString()[:8], "")
	require.NoError(t, err)
	require.NoError(t, NewPostgresBrandRepository(db).Create(ctx, brand))
	return brand
}

func TestPostgresVictoryTargetRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	defer cleanup(t, db)

	ctx := context.Background()
	repo := NewPostgresVictoryTargetRepository(db)
	brand := seedBrand(t, ctx, db)

	vt, err := domain.NewVictoryTarget(brand.ID, "sales", "Quarterly revenue", 1000, 250, "EUR", "u1",
		[]domain.QuarterTarget{{Quarter: domain.Q2, Target: 250, Achieved: 100}, {Quarter: domain.Q1, Target: 250, Achieved: 150}})
	require.NoError(t, err)

	t.Run("Create and Get", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, vt))

		fetched, err := repo.GetByID(ctx, vt.ID)
		require.NoError(t, err)
		assert.Equal(t, "Quarterly revenue", fetched.Title)
		assert.Equal(t, 1, fetched.Version)
		require.Len(t, fetched.Quarters, 2)
		assert.Equal(t, domain.Q1, fetched.Quarters[0].Quarter)
	})

	t.Run("List by department set", func(t *testing.T) {
		other, _ := domain.NewVictoryTarget(brand.ID, "marketing", "MQLs", 50, 5, "", "u2", nil)
		require.NoError(t, repo.Create(ctx, other))

		list, err := repo.List(ctx, domain.ListFilter{BrandID: brand.ID, Departments: []string{"sales", "hr"}})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, vt.ID, list[0].ID)

		empty, err := repo.List(ctx, domain.ListFilter{BrandID: brand.ID, Departments: []string{}})
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("Optimistic Locking: Prevent Overwrite", func(t *testing.T) {
		a, err := repo.GetByID(ctx, vt.ID)
		require.NoError(t, err)
		b, err := repo.GetByID(ctx, vt.ID)
		require.NoError(t, err)

		a.Achieved = 700
		require.NoError(t, repo.Update(ctx, a))
		assert.Equal(t, 2, a.Version)

		b.Achieved = 1
		assert.ErrorIs(t, repo.Update(ctx, b), domain.ErrVictoryTargetConflict)
	})

	t.Run("Soft Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, vt.ID))

		_, err := repo.GetByID(ctx, vt.ID)
		assert.ErrorIs(t, err, domain.ErrVictoryTargetNotFound)

		var count int
		require.NoError(t, db.QueryRow("SELECT count(*) FROM victory_targets WHERE id=$1 AND deleted_at IS NOT NULL", vt.ID).Scan(&count))
		assert.Equal(t, 1, count)

		ghost := &domain.VictoryTarget{ID: uuid.NewString(), Title: "ghost", Version: 1}
		assert.ErrorIs(t, repo.Update(ctx, ghost), domain.ErrVictoryTargetNotFound)
	})
}

func TestPostgresPowerMoveAndWorkRepositories_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	defer cleanup(t, db)

	ctx := context.Background()
	brand := seedBrand(t, ctx, db)

	moves := NewPostgresPowerMoveRepository(db)
	pm, err := domain.NewPowerMove(brand.ID, "sales", "Discovery calls", domain.FrequencyWeekly, 5, "u1", nil)
	require.NoError(t, err)
	require.NoError(t, moves.Create(ctx, pm))

	require.NoError(t, pm.Increment(3))
	require.NoError(t, moves.Update(ctx, pm))
	stored, err := moves.GetByID(ctx, pm.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Progress)
	assert.Equal(t, domain.FrequencyWeekly, stored.Frequency)

	tasks := NewPostgresTaskRepository(db)
	due := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	task, err := domain.NewTask(brand.ID, "sales", "Prepare pitch deck", "u1", &due, "")
	require.NoError(t, err)
	require.NoError(t, tasks.Create(ctx, task))
	require.NoError(t, task.Update(task.Title, "u2", nil, domain.TaskDone))
	require.NoError(t, tasks.Update(ctx, task))
	gotTask, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskDone, gotTask.Status)
	assert.Nil(t, gotTask.DueDate)

	commitments := NewPostgresCommitmentRepository(db)
	c, err := domain.NewCommitment(brand.ID, "sales", "u1", "Send 5 proposals", "friday", &pm.ID, nil, time.Now())
	require.NoError(t, err)
	require.NoError(t, commitments.Create(ctx, c))
	c.Toggle()
	require.NoError(t, commitments.Update(ctx, c))
	list, err := commitments.List(ctx, domain.ListFilter{BrandID: brand.ID, OwnerID: "u1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Completed)
	require.NotNil(t, list[0].PowerMoveID)
	assert.Equal(t, pm.ID, *list[0].PowerMoveID)

	clients := NewPostgresClientRepository(db)
	cl, err := domain.NewClient(brand.ID, "Globex", "ops@globex.test", "", "Globex Corp", "", "u1")
	require.NoError(t, err)
	require.NoError(t, clients.Create(ctx, cl))
	require.NoError(t, clients.Delete(ctx, cl.ID))
	assert.ErrorIs(t, clients.Delete(ctx, cl.ID), domain.ErrClientNotFound)
}

func TestPostgresIdentityRepositories_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	defer cleanup(t, db)

	ctx := context.Background()
	users := NewPostgresUserRepository(db)
	brands := NewPostgresBrandRepository(db)
	assignments := NewPostgresAssignmentRepository(db)

	u, err := domain.NewUser(uuid.NewString(), "lead@bpr.test", "Team Lead")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, u))

	dup, _ := domain.NewUser(uuid.NewString(), "lead@bpr.test", "Someone Else")
	assert.ErrorIs(t, users.Create(ctx, dup), domain.ErrEmailAlreadyExists)

	byEmail, err := users.GetByEmail(ctx, "lead@bpr.test")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	brand := seedBrand(t, ctx, db)
	same, _ := domain.NewBrand(brand.Name, brand.Slug)
	assert.ErrorIs(t, brands.Create(ctx, same), domain.ErrBrandSlugDuplicate)

	a, _ := domain.NewDepartmentAssignment(u.ID, brand.ID, "sales", domain.PermissionMember)
	require.NoError(t, assignments.Create(ctx, a))
	again, _ := domain.NewDepartmentAssignment(u.ID, brand.ID, "sales", domain.PermissionView)
	assert.ErrorIs(t, assignments.Create(ctx, again), domain.ErrAssignmentExists)

	orphan, _ := domain.NewDepartmentAssignment(u.ID, uuid.NewString(), "sales", domain.PermissionView)
	assert.ErrorIs(t, assignments.Create(ctx, orphan), domain.ErrBrandNotFound)

	require.NoError(t, users.Delete(ctx, u.ID))
	left, err := assignments.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, left, "deleting a user drops their assignments")
}

func TestPostgresSnapshotRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	defer cleanup(t, db)

	ctx := context.Background()
	repo := NewPostgresSnapshotRepository(db)
	brand := seedBrand(t, ctx, db)

	week := domain.WeekStart(time.Date(2024, time.June, 12, 15, 0, 0, 0, time.UTC))
	snap := &domain.WeeklySnapshot{BrandID: brand.ID, Department: "sales", WeekStart: week, AverageScore: 40, Status: domain.StatusBehind, UpdatedAt: time.Now().UTC()}
	require.NoError(t, repo.Upsert(ctx, snap))

	snap.AverageScore = 75
	snap.Status = domain.StatusOnTrack
	require.NoError(t, repo.Upsert(ctx, snap))

	list, err := repo.ListRange(ctx, brand.ID, "sales", week, week.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 75, list[0].AverageScore)
	assert.Equal(t, domain.StatusOnTrack, list[0].Status)
}
