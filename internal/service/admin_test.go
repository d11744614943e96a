package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roi-engine/internal/constants"
	"roi-engine/internal/storage"
)

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(orgID string) {
	m.Called(orgID)
}

func TestSaveClassification(t *testing.T) {
	tests := []struct {
		name    string
		c       storage.CostClassification
		wantErr bool
	}{
		{"valid", storage.CostClassification{OrgID: "org-1", HardCosts: []string{constants.LaborCosts}, SoftCosts: []string{}}, false},
		{"empty lists", storage.CostClassification{OrgID: "org-1", HardCosts: []string{}, SoftCosts: []string{}}, false},
		{"missing org", storage.CostClassification{HardCosts: []string{}, SoftCosts: []string{}}, true},
		{"nil soft costs", storage.CostClassification{OrgID: "org-1", HardCosts: []string{}}, true},
		{"overlap", storage.CostClassification{OrgID: "org-1", HardCosts: []string{constants.DowntimeCosts}, SoftCosts: []string{constants.DowntimeCosts}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := new(MockStorage)
			inv := new(MockInvalidator)
			if !tt.wantErr {
				st.On("SaveCostClassification", mock.Anything, tt.c).Return(nil)
				inv.On("Invalidate", tt.c.OrgID).Return()
			}
			svc := NewAdminService(nil, st, inv)

			err := svc.SaveClassification(context.Background(), tt.c)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				st.AssertNotCalled(t, "SaveCostClassification", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			st.AssertExpectations(t)
			inv.AssertExpectations(t)
		})
	}
}

func TestSaveProcess_RejectsUnknownUnits(t *testing.T) {
	st := new(MockStorage)
	svc := NewAdminService(nil, st, nil)

	p := newProcess("p1", true)
	p.TaskVolumeUnit = "fortnight"

	err := svc.SaveProcess(context.Background(), "org-1", p)

	assert.ErrorIs(t, err, ErrValidation)
	st.AssertNotCalled(t, "SaveProcess", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveProcess_RejectsCoverageOutOfRange(t *testing.T) {
	svc := NewAdminService(nil, new(MockStorage), nil)

	p := newProcess("p1", true)
	p.Implementation.AutomationCoverage = ptr(120)

	assert.ErrorIs(t, svc.SaveProcess(context.Background(), "org-1", p), ErrValidation)
}

func TestSaveProcess_Persists(t *testing.T) {
	st := new(MockStorage)
	inv := new(MockInvalidator)
	p := newProcess("p1", true)
	st.On("SaveProcess", mock.Anything, "org-1", p).Return(nil)
	inv.On("Invalidate", "org-1").Return()

	err := NewAdminService(nil, st, inv).SaveProcess(context.Background(), "org-1", p)

	require.NoError(t, err)
	st.AssertExpectations(t)
	inv.AssertExpectations(t)
}

func TestSaveGlobalDefaults_BusinessHours(t *testing.T) {
	svc := NewAdminService(nil, new(MockStorage), nil)

	err := svc.SaveGlobalDefaults(context.Background(), "org-1", storage.GlobalDefaults{BusinessHoursStart: 18, BusinessHoursEnd: 9})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetClassification_NotFound(t *testing.T) {
	st := new(MockStorage)
	st.On("GetCostClassification", mock.Anything, "org-1").Return(nil, storage.ErrClassificationNotFound)

	_, err := NewAdminService(nil, st, nil).GetClassification(context.Background(), "org-1")

	assert.ErrorIs(t, err, storage.ErrClassificationNotFound)
}
