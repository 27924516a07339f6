package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard-io/taskboard/internal/models"
	"github.com/taskboard-io/taskboard/internal/services"
)

// stubTaskService records the filter the guard hands to the task listing.
type stubTaskService struct {
	lastFilter services.ListTasksFilter
}

func (s *stubTaskService) List(_ context.Context, filter services.ListTasksFilter) ([]models.Task, error) {
	s.lastFilter = filter
	return []models.Task{}, nil
}

func (s *stubTaskService) Create(context.Context, services.CreateTaskParams) (*models.Task, error) {
	return nil, nil
}

func (s *stubTaskService) Update(context.Context, services.UpdateTaskParams) (*models.Task, error) {
	return nil, nil
}

func (s *stubTaskService) UpdateStatus(context.Context, int64, models.TaskStatus) (*models.Task, error) {
	return nil, nil
}

func (s *stubTaskService) Complete(context.Context, int64, string) (*models.Task, error) {
	return nil, nil
}

func (s *stubTaskService) Delete(context.Context, int64) error {
	return nil
}

type guardFixture struct {
	tokens services.TokenService
	tasks  *stubTaskService
	router *gin.Engine
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := services.NewTokenService("taskboard", []byte("test-signing-key"), time.Hour)
	tasks := &stubTaskService{}
	handler := New(zerolog.Nop(), tokens, nil, nil, nil, nil, tasks, nil, nil)

	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }

	router := gin.New()
	router.GET("/tasks", handler.HandleAuthMiddleware, handler.HandleGetTasks)
	router.GET("/any", handler.HandleAuthMiddleware, RequireTier(), ok)
	router.GET("/admin-only",
		handler.HandleAuthMiddleware,
		RequireTier(models.TierAdmin),
		ok)
	router.GET("/managers",
		handler.HandleAuthMiddleware,
		RequireTier(models.TierAdmin, models.TierProjectManager),
		ok)

	return &guardFixture{tokens: tokens, tasks: tasks, router: router}
}

func (fx *guardFixture) request(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)
	return w
}

func (fx *guardFixture) tokenFor(t *testing.T, id int64, role string) string {
	t.Helper()
	token, err := fx.tokens.Issue(&models.User{ID: id, Username: "caller", RoleName: role})
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_RejectsAnonymousCallers(t *testing.T) {
	fx := newGuardFixture(t)

	t.Run("missing header", func(t *testing.T) {
		w := fx.request(t, "/any", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/any", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		fx.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := fx.request(t, "/any", "not.a.token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := services.NewTokenService("taskboard", []byte("test-signing-key"), -time.Hour)
		token, err := expired.Issue(&models.User{ID: 1, Username: "caller"})
		require.NoError(t, err)

		w := fx.request(t, "/any", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireTier_EnforcesAllowList(t *testing.T) {
	fx := newGuardFixture(t)

	admin := fx.tokenFor(t, 1, models.RoleNameAdmin)
	manager := fx.tokenFor(t, 2, models.RoleNameProjectManager)
	employee := fx.tokenFor(t, 3, models.RoleNameEmployee)
	custom := fx.tokenFor(t, 4, "Support")

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"empty allow-list admits employee", "/any", employee, http.StatusNoContent},
		{"empty allow-list admits custom role", "/any", custom, http.StatusNoContent},
		{"admin passes admin-only", "/admin-only", admin, http.StatusNoContent},
		{"manager refused admin-only", "/admin-only", manager, http.StatusForbidden},
		{"employee refused admin-only", "/admin-only", employee, http.StatusForbidden},
		{"custom role refused admin-only", "/admin-only", custom, http.StatusForbidden},
		{"admin passes manager list", "/managers", admin, http.StatusNoContent},
		{"manager passes manager list", "/managers", manager, http.StatusNoContent},
		{"employee refused manager list", "/managers", employee, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := fx.request(t, tt.path, tt.token)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestGetTasks_OwnershipNarrowing(t *testing.T) {
	fx := newGuardFixture(t)

	t.Run("employee sees only own tasks", func(t *testing.T) {
		w := fx.request(t, "/tasks?projectId=5", fx.tokenFor(t, 3, models.RoleNameEmployee))
		require.Equal(t, http.StatusOK, w.Code)

		filter := fx.tasks.lastFilter
		require.NotNil(t, filter.AssignedUserID)
		assert.Equal(t, int64(3), *filter.AssignedUserID)
		require.NotNil(t, filter.ProjectID)
		assert.Equal(t, int64(5), *filter.ProjectID)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		w := fx.request(t, "/tasks", fx.tokenFor(t, 1, models.RoleNameAdmin))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, fx.tasks.lastFilter.AssignedUserID)
	})

	t.Run("custom role is not narrowed", func(t *testing.T) {
		w := fx.request(t, "/tasks", fx.tokenFor(t, 4, "Support"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, fx.tasks.lastFilter.AssignedUserID)
	})

	t.Run("bad project id", func(t *testing.T) {
		w := fx.request(t, "/tasks?projectId=abc", fx.tokenFor(t, 3, models.RoleNameEmployee))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
