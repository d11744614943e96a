package processes

import (
	"context"
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

type MockProcessSaver struct {
	mock.Mock
}

func (m *MockProcessSaver) SaveProcess(ctx context.Context, orgID string, p storage.Process) error {
	return m.Called(ctx, orgID, p).Error(0)
}

func serve(s ProcessSaver, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Post("/api/admin/processes/{orgID}", SaveProcess(slog.New(slog.DiscardHandler), s))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/admin/processes/org-1", strings.NewReader(body)))
	return rr
}

func TestSaveProcess_Created(t *testing.T) {
	s := new(MockProcessSaver)
	s.On("SaveProcess", mock.Anything, "org-1", mock.MatchedBy(func(p storage.Process) bool {
		c := p.Implementation.AutomationCoverage
		return p.ID == "p1" && c != nil && *c == 60
	})).Return(nil)

	rr := serve(s, `{"id":"p1","name":"Invoices","implementation_costs":{"automation_coverage":60}}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	s.AssertExpectations(t)
}

func TestSaveProcess_Validation(t *testing.T) {
	s := new(MockProcessSaver)
	s.On("SaveProcess", mock.Anything, "org-1", mock.Anything).
		Return(fmt.Errorf("save: %w: unknown task volume unit", service.ErrValidation))

	assert.Equal(t, http.StatusBadRequest, serve(s, `{"id":"p1","task_volume_unit":"fortnight"}`).Code)
}
