package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roi-engine/internal/constants"
	"roi-engine/internal/service/roi"
	"roi-engine/internal/storage"
)

func validRequest() Request {
	return Request{
		OrgID:                "org-1",
		ClassificationLoaded: true,
		Classification: &storage.CostClassification{
			OrgID:     "org-1",
			HardCosts: []string{constants.LaborCosts},
			SoftCosts: []string{constants.DowntimeCosts},
		},
		DataReady: true,
	}
}

func TestCheck_Allows(t *testing.T) {
	g := New(nil)

	cls, d := g.Check(validRequest())

	assert.True(t, d.Allow)
	assert.Empty(t, d.Blockers)
	assert.NoError(t, d.Err())
	assert.True(t, cls.Valid())
	assert.True(t, cls.IsHard(constants.LaborCosts))
}

func TestCheck_AllowsEmptyLists(t *testing.T) {
	req := validRequest()
	req.Classification.HardCosts = []string{}
	req.Classification.SoftCosts = []string{}

	cls, d := New(nil).Check(req)

	assert.True(t, d.Allow)
	assert.True(t, cls.Valid())
}

func TestCheck_Blocks(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		blocker string
	}{
		{"missing org", func(r *Request) { r.OrgID = " " }, "organization id is missing"},
		{"not loaded", func(r *Request) { r.ClassificationLoaded = false }, "cost classification is not loaded"},
		{"nil classification", func(r *Request) { r.Classification = nil }, "cost classification: classification is missing"},
		{"nil hard costs", func(r *Request) { r.Classification.HardCosts = nil }, "cost classification: hard_costs is not an array"},
		{"nil soft costs", func(r *Request) { r.Classification.SoftCosts = nil }, "cost classification: soft_costs is not an array"},
		{"overlap", func(r *Request) { r.Classification.SoftCosts = []string{constants.LaborCosts} },
			"cost classification: keys classified as both hard and soft: laborCosts"},
		{"other org", func(r *Request) { r.Classification.OrgID = "org-2" }, "cost classification belongs to organization org-2"},
		{"data not ready", func(r *Request) { r.DataReady = false }, "input data is not ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			cls, d := New(nil).Check(req)

			assert.False(t, d.Allow)
			assert.Contains(t, d.Blockers, tt.blocker)
			assert.ErrorIs(t, d.Err(), ErrBlocked)
			assert.False(t, cls.Valid())
		})
	}
}

func TestCheck_NamesEveryBlocker(t *testing.T) {
	_, d := New(nil).Check(Request{})

	require.False(t, d.Allow)
	assert.Len(t, d.Blockers, 4)
}

func TestBlockedClassification_YieldsZeroResult(t *testing.T) {
	cls, d := New(nil).Check(Request{OrgID: "org-1", DataReady: true})
	require.False(t, d.Allow)

	calc := roi.NewCalculator(nil)
	res, err := calc.ComputePortfolio(storage.InputData{
		Processes: []storage.Process{{ID: "p1", Selected: true, TaskVolume: 1000, TimePerTask: 30, AverageHourlyWage: 40}},
	}, cls, roi.PortfolioOptions{OrgID: "org-1"})

	require.NoError(t, err)
	assert.True(t, res.Blocked)
	assert.Zero(t, res.NetAnnualSavings)
	assert.Zero(t, res.HardDollarSavings)
	assert.Zero(t, res.SoftDollarSavings)
	assert.Empty(t, res.ProcessResults)
}
