package cashflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roi-engine/internal/service"
	"roi-engine/internal/service/roi"
)

type MockCashflowProvider struct {
	mock.Mock
}

func (m *MockCashflowProvider) Calculate(ctx context.Context, orgID string, horizon int) (service.Outcome, error) {
	args := m.Called(ctx, orgID, horizon)
	return args.Get(0).(service.Outcome), args.Error(1)
}

func serve(p CashflowProvider, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/roi/{orgID}/cashflow", GetCashflow(slog.New(slog.DiscardHandler), p))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestGetCashflow_Success(t *testing.T) {
	p := new(MockCashflowProvider)
	p.On("Calculate", mock.Anything, "org-1", 120).Return(service.Outcome{Fresh: true, Results: roi.ROIResults{
		TimeHorizonMonths:   120,
		PaybackPeriodMonths: 4,
		Cashflow:            []roi.CashflowData{{Month: 0, CumulativeCost: 1000, NetCashflow: -1000}},
	}}, nil)

	rr := serve(p, "/api/roi/org-1/cashflow?months=500")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 120, resp.TimeHorizonMonths)
	assert.Equal(t, 4.0, resp.PaybackPeriodMonths)
	require.Len(t, resp.Cashflow, 1)
	assert.Equal(t, -1000.0, resp.Cashflow[0].NetCashflow)
	p.AssertExpectations(t)
}

func TestGetCashflow_BadMonths(t *testing.T) {
	p := new(MockCashflowProvider)

	rr := serve(p, "/api/roi/org-1/cashflow?months=abc")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	p.AssertNotCalled(t, "Calculate", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetCashflow_Blocked(t *testing.T) {
	p := new(MockCashflowProvider)
	p.On("Calculate", mock.Anything, "org-1", 0).
		Return(service.Outcome{Fresh: true, Results: roi.BlockedResults("org-1", []string{"input data is not ready"})}, nil)

	rr := serve(p, "/api/roi/org-1/cashflow")

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestGetCashflow_InvalidStoredInput(t *testing.T) {
	p := new(MockCashflowProvider)
	p.On("Calculate", mock.Anything, "org-1", 0).
		Return(service.Outcome{}, fmt.Errorf("service.ROIService.Calculate: %w: process p1: unknown frequency unit", roi.ErrInvalidInput))

	rr := serve(p, "/api/roi/org-1/cashflow")

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Contains(t, resp["message"], "unknown frequency unit")
}

func TestGetCashflow_InternalError(t *testing.T) {
	p := new(MockCashflowProvider)
	p.On("Calculate", mock.Anything, "org-1", 0).Return(service.Outcome{}, errors.New("db down"))

	rr := serve(p, "/api/roi/org-1/cashflow")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
