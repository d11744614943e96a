package roi

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"roi-engine/internal/constants"
)

var ErrCalculation = errors.New("calculation failed")

// Calculator runs the per-process and portfolio computations. It holds no
// state besides its logger; every call is a pure function of its arguments.
type Calculator struct {
	log *slog.Logger
}

func NewCalculator(log *slog.Logger) *Calculator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Calculator{log: log}
}

// ComputeProcessROI calculates savings, payback and the hard/soft split for
// one process. An invalid classification yields a blocked all-zero result,
// an unselected process an all-zero one.
func (c *Calculator) ComputeProcessROI(p ProcessInput, a Assumptions, cls Classification) (ProcessROIResult, error) {
	const op = "roi.ComputeProcessROI"

	res := ProcessROIResult{ProcessID: p.ID, Name: p.Name, Group: p.Group, Selected: p.Selected}

	if !cls.Valid() {
		c.log.Error("calculation reached without a validated cost classification",
			slog.String("op", op),
			slog.String("process_id", p.ID),
		)
		res.Blocked = true
		return res, nil
	}
	if !p.Selected {
		return res, nil
	}

	coverage := p.Coverage
	fullyLoaded := p.HourlyWage * (1 + a.OverheadRate)
	monthlyHours := p.MonthlyTasks * p.MinutesPerTask / minutesPerHour
	annualTasks := p.MonthlyTasks * monthsPerYear

	res.FullyLoadedRate = fullyLoaded
	res.MonthlyTimeSaved = monthlyHours * coverage
	res.AnnualTimeSavings = res.MonthlyTimeSaved * monthsPerYear

	res.CurrentAnnualCost = monthlyHours * fullyLoaded * monthsPerYear
	res.NewAnnualCost = monthlyHours*(1-coverage)*fullyLoaded*monthsPerYear + p.SoftwareCost*monthsPerYear

	res.EffectiveRate = fullyLoaded * rateMultiplier(p)
	baseMonthlySavings := res.MonthlyTimeSaved * res.EffectiveRate
	res.GrossAnnualSavings, res.PeakSeasonSavings = annualLaborSavings(baseMonthlySavings, p)

	res.OvertimeSavings = overtimeSavings(p, a, fullyLoaded, res.MonthlyTimeSaved)
	res.SLAValue = slaValue(p.SLA)
	res.ErrorReductionSavings = errorReductionSavings(p, res.CurrentAnnualCost, annualTasks)
	res.ComplianceRiskReduction = complianceRiskReduction(p.Compliance, coverage)
	if p.Revenue != nil {
		res.RevenueUplift = p.Revenue.AnnualProcessRevenue * p.Revenue.UpliftPercentage / 100 * coverage
	}
	if p.PromptPayment != nil {
		res.PromptPaymentBenefit = p.PromptPayment.AnnualInvoiceVolume * p.PromptPayment.DiscountPercentage / 100 * coverage
	}
	res.SystemIntegrationCosts = p.APILicensing + p.ITSupportHours*(1-coverage)*monthsPerYear*p.ITHourlyRate

	res.FTEsFreed = p.FTECount
	if res.FTEsFreed <= 0 {
		res.FTEsFreed = res.AnnualTimeSavings / workHoursPerYear
	}

	res.InternalCostSavings = internalCostSavings(res.CurrentAnnualCost, p.InternalCosts, coverage, cls)

	res.LaborSplit = cls.Split(constants.LaborCosts, res.GrossAnnualSavings)
	res.OvertimeSplit = cls.Split(constants.OvertimePremiums, res.OvertimeSavings)
	res.SLASplit = cls.splitSLA(res.SLAValue)
	res.ErrorSplit = cls.Split(constants.ErrorRemediationCosts, res.ErrorReductionSavings)
	res.PromptPaymentSplit = cls.splitPromptPayment(res.PromptPaymentBenefit)

	res.HardDollarSavings = res.LaborSplit.Hard + res.OvertimeSplit.Hard + res.SLASplit.Hard +
		res.ErrorSplit.Hard + res.PromptPaymentSplit.Hard + res.InternalCostSavings.HardTotal -
		res.SystemIntegrationCosts
	res.SoftDollarSavings = res.LaborSplit.Soft + res.OvertimeSplit.Soft + res.SLASplit.Soft +
		res.ErrorSplit.Soft + res.PromptPaymentSplit.Soft + res.RevenueUplift +
		res.ComplianceRiskReduction + res.InternalCostSavings.SoftTotal

	// System integration costs reduce hard savings only, not the top-line figure.
	res.NetAnnualSavings = res.GrossAnnualSavings + res.ErrorReductionSavings + res.ComplianceRiskReduction +
		res.RevenueUplift + res.PromptPaymentBenefit + res.InternalCostSavings.Total

	res.TotalImplementationCost = p.UpfrontCosts + p.TrainingCosts + p.ConsultingCosts
	res.MonthlySoftwareCost = p.SoftwareCost
	res.PaybackPeriodMonths = paybackMonths(res.TotalImplementationCost, res.NetAnnualSavings, p.SoftwareCost)

	res.OngoingCosts = ongoingCosts(res.CurrentAnnualCost, p, coverage)

	redeployShare, eliminateShare := p.Utilization.shares()
	res.RedeployedCapacityValue = res.AnnualTimeSavings * redeployShare * fullyLoaded * p.RedeploymentValue / 100
	res.EliminatedFTEs = res.FTEsFreed * eliminateShare
	res.AttritionCostAvoidance = res.EliminatedFTEs * p.HourlyWage * workHoursPerYear *
		a.TurnoverRate / 100 * a.ReplacementCost / 100

	if err := checkFinite(res); err != nil {
		return ProcessROIResult{}, fmt.Errorf("%s: process %s: %w", op, p.ID, err)
	}

	return res, nil
}

// rateMultiplier stacks the off-hours overtime multiplier and the cyclical
// peak multiplier.
func rateMultiplier(p ProcessInput) float64 {
	m := 1.0
	if p.OffHours {
		m *= p.OvertimeMultiplier
	}
	if p.Cycle.Type != CycleNone {
		m *= p.Cycle.Multiplier
	}
	return m
}

// annualLaborSavings applies the seasonal split for seasonal processes.
func annualLaborSavings(baseMonthly float64, p ProcessInput) (gross, peak float64) {
	if !p.Seasonal || p.PeakMonths == 0 {
		return baseMonthly * monthsPerYear, 0
	}

	peakMonthly := baseMonthly * p.PeakMultiplier
	offPeak := float64(monthsPerYear - p.PeakMonths)
	gross = offPeak*baseMonthly + float64(p.PeakMonths)*peakMonthly
	peak = (peakMonthly - baseMonthly) * float64(p.PeakMonths)
	return gross, peak
}

func overtimeSavings(p ProcessInput, a Assumptions, fullyLoaded, monthlyTimeSaved float64) float64 {
	premium := fullyLoaded*a.OvertimeMultiplier - fullyLoaded
	annual := monthlyTimeSaved * premium * monthsPerYear

	var v float64
	if p.OffHours {
		v += annual
	}
	if p.Cycle.Type == CycleHourly && len(p.Cycle.PeakHours) > 0 {
		after := 0
		for _, h := range p.Cycle.PeakHours {
			if h < a.BusinessHoursStart || h >= a.BusinessHoursEnd {
				after++
			}
		}
		v += annual * float64(after) / float64(len(p.Cycle.PeakHours))
	}
	return v
}

func slaValue(s *SLA) float64 {
	if s == nil {
		return 0
	}
	return s.CostOfMissing * s.MissesPerMonth * s.Unit.AnnualizationFactor()
}

func errorReductionSavings(p ProcessInput, currentProcessCost, annualTasks float64) float64 {
	if p.Rework == nil || annualTasks <= 0 {
		return 0
	}
	costPerError := p.Rework.perError(currentProcessCost, annualTasks)
	return annualTasks * (p.ErrorRate / 100) * costPerError * p.Coverage
}

func complianceRiskReduction(c *Compliance, coverage float64) float64 {
	if c == nil || c.Fine == nil {
		return 0
	}
	return c.Fine.baseFine() * c.Probability * coverage
}

// internalCostSavings computes the twelve categories, their group totals and
// the hard/soft totals. Base cost keys contribute nothing here.
func internalCostSavings(currentProcessCost float64, pcts map[string]float64, coverage float64, cls Classification) InternalCostSavings {
	var s InternalCostSavings

	for _, key := range constants.CostKeys {
		group, ok := constants.InternalCostGroup[key]
		if !ok {
			continue
		}

		v := currentProcessCost * pcts[key] / 100 * coverage
		s.setCategory(key, v)

		switch group {
		case constants.GroupLaborWorkforce:
			s.LaborWorkforceTotal += v
		case constants.GroupITOperations:
			s.ITOperationsTotal += v
		case constants.GroupComplianceRisk:
			s.ComplianceRiskTotal += v
		case constants.GroupOpportunityCosts:
			s.OpportunityCostsTotal += v
		}

		split := cls.Split(key, v)
		s.HardTotal += split.Hard
		s.SoftTotal += split.Soft
	}

	s.Total = s.LaborWorkforceTotal + s.ITOperationsTotal + s.ComplianceRiskTotal + s.OpportunityCostsTotal
	return s
}

func paybackMonths(implementationCost, annualSavings, monthlySoftware float64) float64 {
	monthlyNet := annualSavings/monthsPerYear - monthlySoftware
	if monthlyNet <= 0 {
		return paybackNeverMonth
	}
	return implementationCost / monthlyNet
}

func ongoingCosts(currentProcessCost float64, p ProcessInput, coverage float64) OngoingCosts {
	residual := 1 - coverage
	o := OngoingCosts{
		Training:      currentProcessCost * p.InternalCosts[constants.TrainingOnboardingCosts] / 100 * residual,
		Overtime:      currentProcessCost * p.InternalCosts[constants.OvertimePremiums] / 100 * residual,
		ShadowSystems: currentProcessCost * p.InternalCosts[constants.ShadowSystemsCosts] / 100 * residual,
		ITSupport:     p.ITSupportHours * residual * monthsPerYear * p.ITHourlyRate,
	}
	o.Total = o.Training + o.Overtime + o.ShadowSystems + o.ITSupport
	return o
}

func checkFinite(r ProcessROIResult) error {
	values := map[string]float64{
		"gross_annual_savings": r.GrossAnnualSavings,
		"net_annual_savings":   r.NetAnnualSavings,
		"hard_dollar_savings":  r.HardDollarSavings,
		"soft_dollar_savings":  r.SoftDollarSavings,
		"payback_period":       r.PaybackPeriodMonths,
		"ftes_freed":           r.FTEsFreed,
	}
	for name, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrCalculation, name)
		}
	}
	return nil
}
