package save

import (
	"context"
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

	"roi-engine/internal/service"
	"roi-engine/internal/storage"
)

type MockClassificationSaver struct {
	mock.Mock
}

func (m *MockClassificationSaver) SaveClassification(ctx context.Context, c storage.CostClassification) error {
	return m.Called(ctx, c).Error(0)
}

func serve(s ClassificationSaver, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Put("/api/admin/classification/{orgID}", SaveClassification(slog.New(slog.DiscardHandler), s))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/admin/classification/org-1", strings.NewReader(body)))
	return rr
}

func TestSaveClassification_Success(t *testing.T) {
	s := new(MockClassificationSaver)
	s.On("SaveClassification", mock.Anything, storage.CostClassification{
		OrgID:     "org-1",
		HardCosts: []string{"laborCosts"},
		SoftCosts: []string{},
	}).Return(nil)

	rr := serve(s, `{"hard_costs":["laborCosts"],"soft_costs":[]}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	s.AssertExpectations(t)
}

func TestSaveClassification_MissingListPassedAsNil(t *testing.T) {
	s := new(MockClassificationSaver)
	s.On("SaveClassification", mock.Anything, mock.MatchedBy(func(c storage.CostClassification) bool {
		return c.SoftCosts == nil
	})).Return(fmt.Errorf("save: %w: soft_costs is not an array", service.ErrValidation))

	rr := serve(s, `{"hard_costs":["laborCosts"]}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "soft_costs")
}

func TestSaveClassification_InvalidJSON(t *testing.T) {
	s := new(MockClassificationSaver)

	assert.Equal(t, http.StatusBadRequest, serve(s, `[`).Code)
	s.AssertNotCalled(t, "SaveClassification", mock.Anything, mock.Anything)
}

func TestSaveClassification_StoreError(t *testing.T) {
	s := new(MockClassificationSaver)
	s.On("SaveClassification", mock.Anything, mock.Anything).Return(errors.New("db down"))

	assert.Equal(t, http.StatusInternalServerError, serve(s, `{"hard_costs":[],"soft_costs":[]}`).Code)
}
