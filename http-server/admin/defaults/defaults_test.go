package defaults

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"roi-engine/internal/storage"
)

type MockDefaultsSaver struct {
	mock.Mock
}

func (m *MockDefaultsSaver) SaveGlobalDefaults(ctx context.Context, orgID string, d storage.GlobalDefaults) error {
	return m.Called(ctx, orgID, d).Error(0)
}

func serve(s DefaultsSaver, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Put("/api/admin/defaults/{orgID}", SaveDefaults(slog.New(slog.DiscardHandler), s))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/admin/defaults/org-1", strings.NewReader(body)))
	return rr
}

func TestSaveDefaults_Success(t *testing.T) {
	s := new(MockDefaultsSaver)
	s.On("SaveGlobalDefaults", mock.Anything, "org-1", mock.MatchedBy(func(d storage.GlobalDefaults) bool {
		return d.AverageHourlyWage == 42 && d.Financial.DiscountRate == 8
	})).Return(nil)

	rr := serve(s, `{"average_hourly_wage":42,"financial":{"discount_rate":8}}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	s.AssertExpectations(t)
}

func TestSaveDefaults_Error(t *testing.T) {
	s := new(MockDefaultsSaver)
	s.On("SaveGlobalDefaults", mock.Anything, "org-1", mock.Anything).Return(errors.New("db down"))

	assert.Equal(t, http.StatusInternalServerError, serve(s, `{}`).Code)
}
