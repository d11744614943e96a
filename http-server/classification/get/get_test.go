package get

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

	"roi-engine/internal/storage"
)

type MockClassificationProvider struct {
	mock.Mock
}

func (m *MockClassificationProvider) GetClassification(ctx context.Context, orgID string) (*storage.CostClassification, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.CostClassification), args.Error(1)
}

func serve(p ClassificationProvider) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/classification/{orgID}", GetClassification(slog.New(slog.DiscardHandler), p))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/classification/org-1", nil))
	return rr
}

func TestGetClassification_Success(t *testing.T) {
	p := new(MockClassificationProvider)
	p.On("GetClassification", mock.Anything, "org-1").Return(&storage.CostClassification{
		OrgID:     "org-1",
		HardCosts: []string{"laborCosts"},
		SoftCosts: []string{},
	}, nil)

	rr := serve(p)

	require.Equal(t, http.StatusOK, rr.Code)
	var got storage.CostClassification
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, []string{"laborCosts"}, got.HardCosts)
	p.AssertExpectations(t)
}

func TestGetClassification_NotFound(t *testing.T) {
	p := new(MockClassificationProvider)
	p.On("GetClassification", mock.Anything, "org-1").
		Return(nil, fmt.Errorf("service: %w", storage.ErrClassificationNotFound))

	assert.Equal(t, http.StatusNotFound, serve(p).Code)
}

func TestGetClassification_Error(t *testing.T) {
	p := new(MockClassificationProvider)
	p.On("GetClassification", mock.Anything, "org-1").Return(nil, errors.New("db down"))

	assert.Equal(t, http.StatusInternalServerError, serve(p).Code)
}
