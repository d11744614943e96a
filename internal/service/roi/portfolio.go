package roi

import (
	"fmt"
	"log/slog"
	"math"

	"roi-engine/internal/storage"
)

const (
	DefaultTimeHorizonMonths = 36
	MinTimeHorizonMonths     = 12
	MaxTimeHorizonMonths     = 120

	sensitivitySpread = 0.2
)

// PortfolioOptions parameterize one portfolio run.
type PortfolioOptions struct {
	OrgID             string
	TimeHorizonMonths int
}

// ClampTimeHorizon maps zero to the default and bounds the rest to 12..120.
func ClampTimeHorizon(months int) int {
	switch {
	case months == 0:
		return DefaultTimeHorizonMonths
	case months < MinTimeHorizonMonths:
		return MinTimeHorizonMonths
	case months > MaxTimeHorizonMonths:
		return MaxTimeHorizonMonths
	default:
		return months
	}
}

// ComputePortfolio runs every process through ComputeProcessROI and
// aggregates the selected ones. Input data is read, never modified.
func (c *Calculator) ComputePortfolio(in storage.InputData, cls Classification, opts PortfolioOptions) (ROIResults, error) {
	const op = "roi.ComputePortfolio"

	if !cls.Valid() {
		c.log.Error("portfolio calculation reached without a validated cost classification",
			slog.String("op", op),
			slog.String("org_id", opts.OrgID),
		)
		return BlockedResults(opts.OrgID, []string{"cost classification not validated"}), nil
	}

	horizon := ClampTimeHorizon(opts.TimeHorizonMonths)
	a := NormalizeDefaults(in.GlobalDefaults)

	out := ROIResults{
		OrgID:             opts.OrgID,
		TimeHorizonMonths: horizon,
		TotalProcesses:    len(in.Processes),
		ProcessResults:    make([]ProcessROIResult, 0, len(in.Processes)),
	}

	var coverageSum float64
	for _, p := range in.Processes {
		pi, err := Normalize(p, a)
		if err != nil {
			return ROIResults{}, fmt.Errorf("%s: %w", op, err)
		}

		r, err := c.ComputeProcessROI(pi, a, cls)
		if err != nil {
			return ROIResults{}, fmt.Errorf("%s: %w", op, err)
		}
		out.ProcessResults = append(out.ProcessResults, r)

		if !pi.Selected {
			continue
		}
		out.SelectedProcesses++
		coverageSum += pi.Coverage * 100
		out.accumulate(r)
	}

	out.Groups = groupSummaries(in.Groups, out.ProcessResults)

	out.CashFlows = cashFlowVector(out.NetAnnualSavings/monthsPerYear, out.MonthlySoftwareCost, out.TotalImplementationCost, a.InflationRate, horizon)
	out.Cashflow = cashflowSeries(out.NetAnnualSavings/monthsPerYear, out.MonthlySoftwareCost, out.TotalImplementationCost, a.InflationRate, horizon)

	out.NPV = NPV(a.DiscountRate/100/monthsPerYear, out.CashFlows)
	if irr, ok := IRR(out.CashFlows); ok {
		out.IRR = irr * monthsPerYear
		out.IRRConverged = true
	}
	out.ROIPercentage = roiPercentage(out.CashFlows)
	out.PaybackPeriodMonths = portfolioPayback(out.CashFlows)
	out.EBITDAByYear = ebitdaByYear(out.NetAnnualSavings-out.MonthlySoftwareCost*monthsPerYear, a.InflationRate, a.TaxRate, horizon)

	var avgCoverage float64
	if out.SelectedProcesses > 0 {
		avgCoverage = coverageSum / float64(out.SelectedProcesses)
	}
	out.Sensitivity = sensitivity(out.ROIPercentage, avgCoverage)

	c.log.Debug("portfolio calculated",
		slog.String("op", op),
		slog.String("org_id", opts.OrgID),
		slog.Int("selected", out.SelectedProcesses),
		slog.Float64("net_annual_savings", out.NetAnnualSavings),
	)

	return out, nil
}

func (out *ROIResults) accumulate(r ProcessROIResult) {
	out.GrossAnnualSavings += r.GrossAnnualSavings
	out.NetAnnualSavings += r.NetAnnualSavings
	out.MonthlyTimeSaved += r.MonthlyTimeSaved
	out.AnnualTimeSavings += r.AnnualTimeSavings
	out.FTEsFreed += r.FTEsFreed
	out.PeakSeasonSavings += r.PeakSeasonSavings
	out.OvertimeSavings += r.OvertimeSavings
	out.SLAValue += r.SLAValue
	out.ErrorReductionSavings += r.ErrorReductionSavings
	out.ComplianceRiskReduction += r.ComplianceRiskReduction
	out.RevenueUplift += r.RevenueUplift
	out.PromptPaymentBenefit += r.PromptPaymentBenefit
	out.SystemIntegrationCosts += r.SystemIntegrationCosts
	out.HardDollarSavings += r.HardDollarSavings
	out.SoftDollarSavings += r.SoftDollarSavings
	out.TotalImplementationCost += r.TotalImplementationCost
	out.MonthlySoftwareCost += r.MonthlySoftwareCost
	out.InternalCostSavings.add(r.InternalCostSavings)
	out.OngoingCosts.add(r.OngoingCosts)
}

// cashFlowVector builds months 0..horizon: upfront costs at month 0, then
// inflated monthly net savings less software.
func cashFlowVector(monthlyNet, monthlySoftware, upfront, inflation float64, horizon int) []float64 {
	flows := make([]float64, horizon+1)
	flows[0] = -upfront
	for m := 1; m <= horizon; m++ {
		flows[m] = (monthlyNet - monthlySoftware) * inflationFactor(inflation, m)
	}
	return flows
}

func cashflowSeries(monthlyNet, monthlySoftware, upfront, inflation float64, horizon int) []CashflowData {
	series := make([]CashflowData, 0, horizon+1)
	series = append(series, CashflowData{Month: 0, CumulativeCost: upfront, NetCashflow: -upfront})

	savings, cost := 0.0, upfront
	for m := 1; m <= horizon; m++ {
		f := inflationFactor(inflation, m)
		savings += monthlyNet * f
		cost += monthlySoftware * f
		series = append(series, CashflowData{
			Month:             m,
			CumulativeSavings: savings,
			CumulativeCost:    cost,
			NetCashflow:       savings - cost,
		})
	}
	return series
}

func inflationFactor(inflation float64, month int) float64 {
	return math.Pow(1+inflation/100, float64(month)/monthsPerYear)
}

// roiPercentage is the return of the projected inflows over the upfront outlay.
func roiPercentage(flows []float64) float64 {
	if len(flows) == 0 || flows[0] >= 0 {
		return 0
	}
	upfront := -flows[0]
	var inflows float64
	for _, f := range flows[1:] {
		inflows += f
	}
	return (inflows - upfront) / upfront * 100
}

// portfolioPayback is the first month at which cumulative cash flow is non-negative.
func portfolioPayback(flows []float64) float64 {
	var cumulative float64
	for m, f := range flows {
		cumulative += f
		if cumulative >= 0 {
			return float64(m)
		}
	}
	return paybackNeverMonth
}

func ebitdaByYear(base, inflation, taxRate float64, horizon int) []YearlyEBITDA {
	years := int(math.Ceil(float64(horizon) / monthsPerYear))
	out := make([]YearlyEBITDA, 0, years)
	for y := 1; y <= years; y++ {
		out = append(out, YearlyEBITDA{
			Year:   y,
			EBITDA: base * math.Pow(1+inflation/100, float64(y-1)) * (1 - taxRate/100),
		})
	}
	return out
}

// sensitivity scales ROI linearly by coverage moved ±20% around the average.
// It is not a full recomputation.
func sensitivity(roi, avgCoverage float64) Sensitivity {
	s := Sensitivity{Conservative: roi, Likely: roi, Optimistic: roi}
	if avgCoverage <= 0 {
		return s
	}
	conservative := avgCoverage * (1 - sensitivitySpread)
	optimistic := math.Min(avgCoverage*(1+sensitivitySpread), 100)
	s.Conservative = roi * conservative / avgCoverage
	s.Optimistic = roi * optimistic / avgCoverage
	return s
}

func groupSummaries(groups []storage.Group, results []ProcessROIResult) []GroupSummary {
	out := make([]GroupSummary, 0, len(groups))
	index := make(map[string]int, len(groups))
	for _, g := range groups {
		index[g.ID] = len(out)
		out = append(out, GroupSummary{GroupID: g.ID, Name: g.Name})
	}

	for _, r := range results {
		if !r.Selected || r.Group == "" {
			continue
		}
		i, ok := index[r.Group]
		if !ok {
			i = len(out)
			index[r.Group] = i
			out = append(out, GroupSummary{GroupID: r.Group, Name: r.Group})
		}
		out[i].SelectedProcesses++
		out[i].NetAnnualSavings += r.NetAnnualSavings
		out[i].HardDollarSavings += r.HardDollarSavings
		out[i].SoftDollarSavings += r.SoftDollarSavings
	}
	return out
}
