package roi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roi-engine/internal/constants"
	"roi-engine/internal/storage"
)

// storedProcess saves $2000 a month at full coverage.
func storedProcess(id, group string, selected bool) storage.Process {
	return storage.Process{
		ID:                id,
		Name:              "Process " + id,
		Group:             group,
		Selected:          selected,
		AverageHourlyWage: 50,
		TaskVolume:        40,
		TaskVolumeUnit:    "month",
		TimePerTask:       60,
		TimeUnit:          "minutes",
		Implementation: storage.Implementation{
			AutomationCoverage: ptr(100),
			UpfrontCosts:       10000,
		},
	}
}

func portfolio(t *testing.T, in storage.InputData, horizon int) ROIResults {
	t.Helper()
	cls := mustClassification(t, []string{constants.LaborCosts}, []string{})
	res, err := NewCalculator(nil).ComputePortfolio(in, cls, PortfolioOptions{OrgID: "org-1", TimeHorizonMonths: horizon})
	require.NoError(t, err)
	return res
}

func TestClampTimeHorizon(t *testing.T) {
	assert.Equal(t, 36, ClampTimeHorizon(0))
	assert.Equal(t, 12, ClampTimeHorizon(5))
	assert.Equal(t, 12, ClampTimeHorizon(-3))
	assert.Equal(t, 60, ClampTimeHorizon(60))
	assert.Equal(t, 120, ClampTimeHorizon(500))
}

func TestComputePortfolio_Aggregates(t *testing.T) {
	in := storage.InputData{
		Processes: []storage.Process{
			storedProcess("a", "finance", true),
			storedProcess("b", "finance", true),
			storedProcess("c", "ops", false),
		},
		Groups: []storage.Group{{ID: "finance", Name: "Finance"}, {ID: "ops", Name: "Operations"}},
	}

	res := portfolio(t, in, 12)

	assert.False(t, res.Blocked)
	assert.Equal(t, "org-1", res.OrgID)
	assert.Equal(t, 3, res.TotalProcesses)
	assert.Equal(t, 2, res.SelectedProcesses)
	assert.Len(t, res.ProcessResults, 3)
	assert.InDelta(t, 48000, res.GrossAnnualSavings, 1e-9)
	assert.InDelta(t, 48000, res.NetAnnualSavings, 1e-9)
	assert.InDelta(t, 48000, res.HardDollarSavings, 1e-9)
	assert.InDelta(t, 20000, res.TotalImplementationCost, 1e-9)

	require.Len(t, res.Groups, 2)
	assert.Equal(t, GroupSummary{GroupID: "finance", Name: "Finance", SelectedProcesses: 2, NetAnnualSavings: 48000, HardDollarSavings: 48000}, res.Groups[0])
	assert.Equal(t, GroupSummary{GroupID: "ops", Name: "Operations"}, res.Groups[1])
}

func TestComputePortfolio_CashFlows(t *testing.T) {
	in := storage.InputData{Processes: []storage.Process{storedProcess("a", "", true)}}

	res := portfolio(t, in, 12)

	require.Len(t, res.CashFlows, 13)
	assert.Equal(t, -10000.0, res.CashFlows[0])
	for m := 1; m <= 12; m++ {
		assert.InDelta(t, 2000, res.CashFlows[m], 1e-9)
	}

	require.Len(t, res.Cashflow, 13)
	assert.Equal(t, CashflowData{Month: 0, CumulativeCost: 10000, NetCashflow: -10000}, res.Cashflow[0])
	assert.InDelta(t, 24000, res.Cashflow[12].CumulativeSavings, 1e-9)
	assert.InDelta(t, 14000, res.Cashflow[12].NetCashflow, 1e-9)

	assert.Equal(t, 5.0, res.PaybackPeriodMonths)
	assert.InDelta(t, 140, res.ROIPercentage, 1e-9)
	assert.InDelta(t, 14000, res.NPV, 1e-9)
	assert.True(t, res.IRRConverged)
	assert.Greater(t, res.IRR, 0.0)
}

func TestComputePortfolio_DiscountingAndInflation(t *testing.T) {
	in := storage.InputData{
		Processes: []storage.Process{storedProcess("a", "", true)},
		GlobalDefaults: storage.GlobalDefaults{
			Financial: storage.FinancialAssumptions{DiscountRate: 12, InflationRate: 3, TaxRate: 25},
		},
	}

	res := portfolio(t, in, 24)

	assert.Less(t, res.NPV, 38000.0)
	assert.Greater(t, res.CashFlows[24], res.CashFlows[1])
	require.Len(t, res.EBITDAByYear, 2)
	assert.InDelta(t, 18000, res.EBITDAByYear[0].EBITDA, 1e-9)
	assert.InDelta(t, 18540, res.EBITDAByYear[1].EBITDA, 1e-9)
}

func TestComputePortfolio_HorizonClamped(t *testing.T) {
	in := storage.InputData{Processes: []storage.Process{storedProcess("a", "", true)}}

	res := portfolio(t, in, 0)
	assert.Equal(t, 36, res.TimeHorizonMonths)
	assert.Len(t, res.CashFlows, 37)
	assert.Len(t, res.EBITDAByYear, 3)

	res = portfolio(t, in, 240)
	assert.Equal(t, 120, res.TimeHorizonMonths)
	assert.Len(t, res.CashFlows, 121)
}

func TestComputePortfolio_NeverPaysBack(t *testing.T) {
	p := storedProcess("a", "", true)
	p.Implementation.SoftwareCost = ptr(5000)
	in := storage.InputData{Processes: []storage.Process{p}}

	res := portfolio(t, in, 12)

	assert.Equal(t, 999.0, res.PaybackPeriodMonths)
	assert.Less(t, res.ROIPercentage, 0.0)
}

func TestComputePortfolio_Sensitivity(t *testing.T) {
	p := storedProcess("a", "", true)
	p.Implementation.AutomationCoverage = ptr(80)
	in := storage.InputData{Processes: []storage.Process{p}}

	res := portfolio(t, in, 12)

	assert.InDelta(t, res.ROIPercentage, res.Sensitivity.Likely, 1e-9)
	assert.InDelta(t, res.ROIPercentage*0.8, res.Sensitivity.Conservative, 1e-9)
	assert.InDelta(t, res.ROIPercentage*1.2, res.Sensitivity.Optimistic, 1e-9)
}

func TestComputePortfolio_EmptySelection(t *testing.T) {
	in := storage.InputData{Processes: []storage.Process{storedProcess("a", "", false)}}

	res := portfolio(t, in, 12)

	assert.Equal(t, 0, res.SelectedProcesses)
	assert.Equal(t, 0.0, res.NetAnnualSavings)
	assert.Equal(t, 0.0, res.ROIPercentage)
	assert.Equal(t, Sensitivity{}, res.Sensitivity)
	assert.Equal(t, 0.0, res.PaybackPeriodMonths)
}

func TestComputePortfolio_InvalidClassification(t *testing.T) {
	in := storage.InputData{Processes: []storage.Process{storedProcess("a", "", true)}}

	res, err := NewCalculator(nil).ComputePortfolio(in, Classification{}, PortfolioOptions{OrgID: "org-1"})
	require.NoError(t, err)

	assert.True(t, res.Blocked)
	assert.NotEmpty(t, res.Blockers)
	assert.Equal(t, 0.0, res.NetAnnualSavings)
	assert.Empty(t, res.ProcessResults)
	assert.Empty(t, res.CashFlows)
}

func TestComputePortfolio_InvalidInput(t *testing.T) {
	p := storedProcess("a", "", true)
	p.TaskVolumeUnit = "fortnight"

	_, err := NewCalculator(nil).ComputePortfolio(storage.InputData{Processes: []storage.Process{p}},
		mustClassification(t, []string{}, []string{}), PortfolioOptions{OrgID: "org-1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestComputePortfolio_DoesNotMutateInput(t *testing.T) {
	in := storage.InputData{Processes: []storage.Process{storedProcess("a", "g", true), storedProcess("b", "g", false)}}
	before := storedProcess("a", "g", true)

	first := portfolio(t, in, 24)
	second := portfolio(t, in, 24)

	assert.Equal(t, first, second)
	assert.Equal(t, before, in.Processes[0])
}
