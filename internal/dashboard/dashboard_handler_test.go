package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-leavedesk/internal/dashboard"
	"go-leavedesk/internal/ledger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeDashboardService struct {
	employeeStatsFn func(ctx context.Context, actorID string) (dashboard.EmployeeStatsResponse, error)
	managerStatsFn  func(ctx context.Context) (dashboard.ManagerStatsResponse, error)
}

func (f *fakeDashboardService) EmployeeStats(ctx context.Context, actorID string) (dashboard.EmployeeStatsResponse, error) {
	return f.employeeStatsFn(ctx, actorID)
}

func (f *fakeDashboardService) ManagerStats(ctx context.Context) (dashboard.ManagerStatsResponse, error) {
	return f.managerStatsFn(ctx)
}

func TestDashboardHandler_EmployeeStats(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()
		svc := &fakeDashboardService{
			employeeStatsFn: func(ctx context.Context, aid string) (dashboard.EmployeeStatsResponse, error) {
				assert.Equal(t, actorID, aid)
				return dashboard.EmployeeStatsResponse{
					TotalRequests:    6,
					PendingRequests:  1,
					ApprovedRequests: 4,
					RejectedRequests: 1,
					LeaveBalance:     ledger.BalanceSummary{Sick: 5, Casual: 8, Vacation: 12},
				}, nil
			},
		}

		h := dashboard.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/employee", nil)
		c.Set("user_id", actorID)

		h.EmployeeStats(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got dashboard.EmployeeStatsResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Equal(t, int64(6), got.TotalRequests)
		assert.Equal(t, 12, got.LeaveBalance.Vacation)
	})

	t.Run("negative service error", func(t *testing.T) {
		svc := &fakeDashboardService{
			employeeStatsFn: func(ctx context.Context, aid string) (dashboard.EmployeeStatsResponse, error) {
				return dashboard.EmployeeStatsResponse{}, errors.New("db error")
			},
		}

		h := dashboard.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/employee", nil)
		c.Set("user_id", uuid.New().String())

		h.EmployeeStats(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	})
}

func TestDashboardHandler_ManagerStats(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeDashboardService{
			managerStatsFn: func(ctx context.Context) (dashboard.ManagerStatsResponse, error) {
				return dashboard.ManagerStatsResponse{
					TotalEmployees:  9,
					TotalRequests:   20,
					PendingRequests: 3,
				}, nil
			},
		}

		h := dashboard.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/manager", nil)

		h.ManagerStats(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got dashboard.ManagerStatsResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Equal(t, int64(9), got.TotalEmployees)
		assert.Equal(t, int64(20), got.TotalRequests)
	})

	t.Run("negative service error", func(t *testing.T) {
		svc := &fakeDashboardService{
			managerStatsFn: func(ctx context.Context) (dashboard.ManagerStatsResponse, error) {
				return dashboard.ManagerStatsResponse{}, errors.New("db error")
			},
		}

		h := dashboard.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/manager", nil)

		h.ManagerStats(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	})
}
