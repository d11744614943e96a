package calculate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roi-engine/http-server/response"
	"roi-engine/internal/service"
	"roi-engine/internal/service/roi"
	"roi-engine/internal/storage"
)

type MockROICalculator struct {
	mock.Mock
}

func (m *MockROICalculator) Calculate(ctx context.Context, orgID string, horizon int) (service.Outcome, error) {
	args := m.Called(ctx, orgID, horizon)
	return args.Get(0).(service.Outcome), args.Error(1)
}

func (m *MockROICalculator) CalculateInput(ctx context.Context, orgID string, data storage.InputData, horizon int) (service.Outcome, error) {
	args := m.Called(ctx, orgID, data, horizon)
	return args.Get(0).(service.Outcome), args.Error(1)
}

func newRouter(calc ROICalculator) http.Handler {
	log := slog.New(slog.DiscardHandler)
	r := chi.NewRouter()
	r.Post("/api/roi/calculate", CalculateROI(log, calc))
	r.Get("/api/roi/{orgID}", GetROI(log, calc))
	return r
}

func TestCalculateROI_Success(t *testing.T) {
	calc := new(MockROICalculator)
	calc.On("CalculateInput", mock.Anything, "org-1", mock.AnythingOfType("storage.InputData"), 24).
		Return(service.Outcome{Fresh: true, Results: roi.ROIResults{OrgID: "org-1", RunID: "run-1", NetAnnualSavings: 1500}}, nil)

	body := `{"org_id":"org-1","time_horizon_months":24,"input":{"processes":[{"id":"p1","selected":true}]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/roi/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	newRouter(calc).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, response.StatusOK, resp.Status)
	assert.True(t, resp.Fresh)
	assert.Equal(t, "run-1", resp.Results.RunID)
	assert.Equal(t, 1500.0, resp.Results.NetAnnualSavings)

	data := calc.Calls[0].Arguments.Get(2).(storage.InputData)
	require.Len(t, data.Processes, 1)
	assert.Equal(t, "p1", data.Processes[0].ID)
	calc.AssertExpectations(t)
}

func TestCalculateROI_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"org_id":`},
		{"missing org", `{"input":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := new(MockROICalculator)
			req := httptest.NewRequest(http.MethodPost, "/api/roi/calculate", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			newRouter(calc).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			calc.AssertNotCalled(t, "CalculateInput", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCalculateROI_InvalidInput(t *testing.T) {
	calc := new(MockROICalculator)
	calc.On("CalculateInput", mock.Anything, "org-1", mock.Anything, 0).
		Return(service.Outcome{}, fmt.Errorf("wrap: %w: unknown task volume unit", roi.ErrInvalidInput))

	req := httptest.NewRequest(http.MethodPost, "/api/roi/calculate", strings.NewReader(`{"org_id":"org-1"}`))
	rr := httptest.NewRecorder()

	newRouter(calc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetROI_Blocked(t *testing.T) {
	calc := new(MockROICalculator)
	blocked := roi.BlockedResults("org-1", []string{"cost classification is not loaded"})
	calc.On("Calculate", mock.Anything, "org-1", 0).Return(service.Outcome{Fresh: true, Results: blocked}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/roi/org-1", nil)
	rr := httptest.NewRecorder()

	newRouter(calc).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp response.Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, response.StatusBlocked, resp.Status)
	assert.Equal(t, response.BlockedMessage, resp.Message)
	assert.Equal(t, []string{"cost classification is not loaded"}, resp.Blockers)
}

func TestGetROI_DebouncedWithoutCache(t *testing.T) {
	calc := new(MockROICalculator)
	calc.On("Calculate", mock.Anything, "org-1", 0).Return(service.Outcome{Empty: true}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/roi/org-1", nil)
	rr := httptest.NewRecorder()

	newRouter(calc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestGetROI_StaleResult(t *testing.T) {
	calc := new(MockROICalculator)
	calc.On("Calculate", mock.Anything, "org-1", 0).
		Return(service.Outcome{Results: roi.ROIResults{OrgID: "org-1", RunID: "old"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/roi/org-1", nil)
	rr := httptest.NewRecorder()

	newRouter(calc).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.False(t, resp.Fresh)
	assert.Equal(t, "old", resp.Results.RunID)
}

func TestGetROI_InternalError(t *testing.T) {
	calc := new(MockROICalculator)
	calc.On("Calculate", mock.Anything, "org-1", 0).Return(service.Outcome{}, errors.New("db down"))

	req := httptest.NewRequest(http.MethodGet, "/api/roi/org-1", nil)
	rr := httptest.NewRecorder()

	newRouter(calc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
