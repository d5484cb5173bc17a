package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	adapterHTTP "github.com/bpr-hq/bpr-dashboard/internal/adapters/handler/http"
	"github.com/bpr-hq/bpr-dashboard/internal/adapters/repository"
	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/bpr-hq/bpr-dashboard/internal/core/services"
)

const (
	testSecret = "handler-test-secret"
	testIssuer = "bpr-dashboard"
)

// testServer wires the full router over the in-memory store with one brand
// and four users:
//
//	admin:    global admin
//	member:   member on sales, view on marketing
//	viewer:   view on sales
//	outsider: no assignments
type testServer struct {
	t      *testing.T
	router *gin.Engine
	store  *repository.MemoryStore
	brand  *domain.Brand
	tokens map[string]string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	log := zap.NewNop()

	store := repository.NewMemoryStore()
	brand, err := domain.NewBrand("Acme Retail", "")
	require.NoError(t, err)
	require.NoError(t, store.Brands.Create(ctx, brand))

	s := &testServer{t: t, store: store, brand: brand, tokens: map[string]string{}}

	for _, u := range []struct {
		id, email string
		admin     bool
	}{
		{"admin", "admin@acme.test", true},
		{"member", "member@acme.test", false},
		{"viewer", "viewer@acme.test", false},
		{"outsider", "outsider@acme.test", false},
	} {
		user, err := domain.NewUser(u.id, u.email, u.id)
		require.NoError(t, err)
		user.IsAdmin = u.admin
		require.NoError(t, store.Users.Create(ctx, user))

		token, err := services.SignToken([]byte(testSecret), testIssuer, u.id, time.Hour)
		require.NoError(t, err)
		s.tokens[u.id] = token
	}

	s.grant("member", domain.DeptSales, domain.PermissionMember)
	s.grant("member", domain.DeptMarketing, domain.PermissionView)
	s.grant("viewer", domain.DeptSales, domain.PermissionView)

	access := services.NewAccessService(store.Assignments)
	scores := services.NewScoreService(store.VictoryTargets, store.PowerMoves, store.Tasks, store.Commitments,
		store.Snapshots, access, domain.DefaultScoreOptions())

	s.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		VictoryTargetHandler: adapterHTTP.NewVictoryTargetHandler(services.NewVictoryTargetService(store.VictoryTargets, access, nil), log),
		PowerMoveHandler:     adapterHTTP.NewPowerMoveHandler(services.NewPowerMoveService(store.PowerMoves, access), log),
		TaskHandler:          adapterHTTP.NewTaskHandler(services.NewTaskService(store.Tasks, access), log),
		CommitmentHandler:    adapterHTTP.NewCommitmentHandler(services.NewCommitmentService(store.Commitments, access), log),
		ClientHandler:        adapterHTTP.NewClientHandler(services.NewClientService(store.Clients, access), log),
		UserHandler:          adapterHTTP.NewUserHandler(services.NewUserService(store.Users), log),
		BrandHandler:         adapterHTTP.NewBrandHandler(services.NewBrandService(store.Brands, access), log),
		AssignmentHandler:    adapterHTTP.NewAssignmentHandler(services.NewAssignmentService(store.Assignments, store.Brands, store.Users, access), log),
		DashboardHandler:     adapterHTTP.NewDashboardHandler(scores, log),
		TokenService:         services.NewTokenService(testSecret, testIssuer, time.Hour, store.Users),
		Logger:               log,
		StartTime:            time.Now(),
	})
	return s
}

func (s *testServer) grant(userID, dept string, perm domain.Permission) {
	s.t.Helper()
	a, err := domain.NewDepartmentAssignment(userID, s.brand.ID, dept, perm)
	require.NoError(s.t, err)
	require.NoError(s.t, s.store.Assignments.Create(context.Background(), a))
}

// do sends a request as user (empty for anonymous) scoped to the test brand.
func (s *testServer) do(user, method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, "/api/v1"+path, reader)
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Brand-ID", s.brand.ID)
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+s.tokens[user])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder, key string) T {
	t.Helper()
	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	raw, ok := envelope[key]
	require.True(t, ok, "missing %q in %s", key, w.Body.String())

	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[string](t, w, "error")
}
