package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roi-engine/internal/storage"
)

func TestInputData_RoundTrip(t *testing.T) {
	s := &Storage{db: testDB}
	ctx := context.Background()
	cleanupOrg(t, "test-org-input")

	_, err := s.GetGlobalDefaults(ctx, "test-org-input")
	require.ErrorIs(t, err, storage.ErrInputNotFound)

	risk := 4.0
	d := storage.GlobalDefaults{
		AverageHourlyWage: 45,
		Financial:         storage.FinancialAssumptions{DiscountRate: 8, GlobalRiskOverride: &risk},
	}
	require.NoError(t, s.SaveGlobalDefaults(ctx, "test-org-input", d))

	require.NoError(t, s.SaveGroup(ctx, "test-org-input", storage.Group{ID: "g1", Name: "Finance"}))
	require.NoError(t, s.SaveGroup(ctx, "test-org-input", storage.Group{ID: "g1", Name: "Finance Ops"}))

	coverage := 70.0
	p := storage.Process{
		ID:             "p1",
		Name:           "Invoice matching",
		Group:          "g1",
		Selected:       true,
		TaskVolume:     400,
		TaskVolumeUnit: "week",
		Implementation: storage.Implementation{AutomationCoverage: &coverage, ImplementationTimelineWeeks: 6},
	}
	require.NoError(t, s.SaveProcess(ctx, "test-org-input", p))
	p.Name = "Invoice matching v2"
	require.NoError(t, s.SaveProcess(ctx, "test-org-input", p))

	gotDefaults, err := s.GetGlobalDefaults(ctx, "test-org-input")
	require.NoError(t, err)
	assert.Equal(t, 45.0, gotDefaults.AverageHourlyWage)
	require.NotNil(t, gotDefaults.Financial.GlobalRiskOverride)
	assert.Equal(t, 4.0, *gotDefaults.Financial.GlobalRiskOverride)

	groups, err := s.GetGroups(ctx, "test-org-input")
	require.NoError(t, err)
	assert.Equal(t, []storage.Group{{ID: "g1", Name: "Finance Ops"}}, groups)

	processes, err := s.GetProcesses(ctx, "test-org-input")
	require.NoError(t, err)
	require.Len(t, processes, 1)
	assert.Equal(t, "Invoice matching v2", processes[0].Name)
	assert.Equal(t, 6.0, processes[0].Implementation.ImplementationTimelineWeeks)
	require.NotNil(t, processes[0].Implementation.AutomationCoverage)
	assert.Equal(t, 70.0, *processes[0].Implementation.AutomationCoverage)
	assert.Nil(t, processes[0].Implementation.SoftwareCost)
}

func TestGetProcesses_EmptyOrg(t *testing.T) {
	s := &Storage{db: testDB}

	processes, err := s.GetProcesses(context.Background(), "test-org-empty")

	require.NoError(t, err)
	assert.NotNil(t, processes)
	assert.Empty(t, processes)
}
