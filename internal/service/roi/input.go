package roi

import (
	"errors"
	"fmt"
	"strings"

	"roi-engine/internal/constants"
	"roi-engine/internal/storage"
)

var ErrInvalidInput = errors.New("invalid process input")

const (
	defaultOvertimeMultiplier = 1.5
	defaultCyclicalMultiplier = 1.5
	defaultBusinessHoursStart = 9
	defaultBusinessHoursEnd   = 17
	defaultCostTarget         = 100000
	defaultTimeTargetMonths   = 6
)

// CycleType is the shape of a cyclical workload.
type CycleType string

const (
	CycleNone    CycleType = "none"
	CycleHourly  CycleType = "hourly"
	CycleDaily   CycleType = "daily"
	CycleWeekly  CycleType = "weekly"
	CycleMonthly CycleType = "monthly"
)

type Cycle struct {
	Type       CycleType
	PeakHours  []int
	Multiplier float64
}

// SLACostUnit is the unit a missed-SLA cost is quoted in.
type SLACostUnit string

const (
	SLAPerMinute SLACostUnit = "per-minute"
	SLAPerHour   SLACostUnit = "per-hour"
	SLAPerDay    SLACostUnit = "per-day"
	SLAPerWeek   SLACostUnit = "per-week"
	SLAPerMonth  SLACostUnit = "per-month"
	SLAPerYear   SLACostUnit = "per-year"
)

var slaAnnualization = map[SLACostUnit]float64{
	SLAPerMinute: 8760,
	SLAPerHour:   365,
	SLAPerDay:    365,
	SLAPerWeek:   12,
	SLAPerMonth:  1,
	SLAPerYear:   1,
}

// AnnualizationFactor returns the fixed multiplier for the unit.
func (u SLACostUnit) AnnualizationFactor() float64 {
	return slaAnnualization[u]
}

type SLA struct {
	CostOfMissing  float64
	MissesPerMonth float64
	Unit           SLACostUnit
}

// FineStructure is the shape of a compliance fine.
type FineStructure interface {
	baseFine() float64
}

type DailyFine struct{ Amount, Days float64 }
type PerIncidentFine struct{ Amount, IncidentsPerYear float64 }
type PerRecordFine struct{ Amount, Records float64 }
type PercentRevenueFine struct{ Percentage, AnnualRevenue float64 }

// FlatPenalty is the pre-fine-structure annual exposure. It ignores probability.
type FlatPenalty struct{ AnnualRisk float64 }

func (f DailyFine) baseFine() float64          { return f.Amount * f.Days }
func (f PerIncidentFine) baseFine() float64    { return f.Amount * f.IncidentsPerYear }
func (f PerRecordFine) baseFine() float64      { return f.Amount * f.Records }
func (f PercentRevenueFine) baseFine() float64 { return f.AnnualRevenue * f.Percentage / 100 }
func (f FlatPenalty) baseFine() float64        { return f.AnnualRisk }

type Compliance struct {
	Fine FineStructure
	// Probability is a fraction in [0,1].
	Probability float64
}

// ReworkCost prices a single error.
type ReworkCost interface {
	perError(currentProcessCost, annualTasks float64) float64
}

// ReworkPercentage prices an error as a share of the per-task process cost.
type ReworkPercentage struct{ Percentage float64 }

// ReworkFixed is the legacy fixed dollar cost per error.
type ReworkFixed struct{ PerError float64 }

func (r ReworkPercentage) perError(currentProcessCost, annualTasks float64) float64 {
	if annualTasks <= 0 {
		return 0
	}
	return currentProcessCost / annualTasks * r.Percentage / 100
}

func (r ReworkFixed) perError(float64, float64) float64 {
	return r.PerError
}

// UtilizationImpact says what happens to the hours automation frees.
type UtilizationImpact string

const (
	UtilizationRedeployed UtilizationImpact = "redeployed"
	UtilizationEliminated UtilizationImpact = "eliminated"
	UtilizationMixed      UtilizationImpact = "mixed"
)

func (u UtilizationImpact) shares() (redeployed, eliminated float64) {
	switch u {
	case UtilizationEliminated:
		return 0, 1
	case UtilizationMixed:
		return 0.5, 0.5
	default:
		return 1, 0
	}
}

type PromptPayment struct {
	DiscountPercentage  float64
	AnnualInvoiceVolume float64
}

type Revenue struct {
	UpliftPercentage     float64
	AnnualProcessRevenue float64
}

// ProcessInput is the canonical form the calculator works on.
type ProcessInput struct {
	ID       string
	Name     string
	Group    string
	Selected bool

	HourlyWage     float64
	MonthlyTasks   float64
	MinutesPerTask float64
	FTECount       float64

	Seasonal       bool
	PeakMonths     int
	PeakMultiplier float64

	OffHours           bool
	OvertimeMultiplier float64
	Cycle              Cycle

	SLA *SLA

	// Coverage is the automated share of task volume as a fraction in [0,1].
	Coverage        float64
	SoftwareCost    float64
	TimelineWeeks   float64
	UpfrontCosts    float64
	TrainingCosts   float64
	ConsultingCosts float64
	StartPeriod     int
	APILicensing    float64
	ITSupportHours  float64
	ITHourlyRate    float64

	ErrorRate float64
	Rework    ReworkCost

	Compliance    *Compliance
	Revenue       *Revenue
	PromptPayment *PromptPayment

	// InternalCosts holds percentages keyed by cost key.
	InternalCosts map[string]float64

	Utilization       UtilizationImpact
	RedeploymentValue float64

	Complexity *storage.ComplexityInput
}

// Assumptions is the canonical form of GlobalDefaults.
type Assumptions struct {
	HourlyWage         float64
	OverheadRate       float64
	OvertimeMultiplier float64
	BusinessHoursStart int
	BusinessHoursEnd   int

	DefaultCoverage      float64
	DefaultSoftwareCost  float64
	DefaultTimelineWeeks float64

	DiscountRate      float64 // percent
	InflationRate     float64 // percent
	ProjectionYears   int
	TaxRate           float64 // percent
	RiskPremiumFactor float64
	RiskOverride      *float64

	TurnoverRate    float64 // percent
	ReplacementCost float64 // percent of salary

	CostTarget       float64
	TimeTargetMonths float64
}

// NormalizeDefaults fills fallbacks into the global defaults.
func NormalizeDefaults(g storage.GlobalDefaults) Assumptions {
	o := g.Overhead
	a := Assumptions{
		HourlyWage:           g.AverageHourlyWage,
		OverheadRate:         (o.Benefits + o.PayrollTax + o.PTO + o.Training + o.GA) / 100,
		OvertimeMultiplier:   g.OvertimeMultiplier,
		BusinessHoursStart:   g.BusinessHoursStart,
		BusinessHoursEnd:     g.BusinessHoursEnd,
		DefaultCoverage:      g.ImplementationDefaults.AutomationCoverage,
		DefaultSoftwareCost:  g.ImplementationDefaults.SoftwareCost,
		DefaultTimelineWeeks: g.ImplementationDefaults.TimelineWeeks,
		DiscountRate:         g.Financial.DiscountRate,
		InflationRate:        g.Financial.InflationRate,
		ProjectionYears:      g.Financial.ProjectionYears,
		TaxRate:              g.Financial.TaxRate,
		RiskPremiumFactor:    g.Financial.RiskPremiumFactor,
		RiskOverride:         g.Financial.GlobalRiskOverride,
		TurnoverRate:         g.Attrition.TurnoverRate,
		ReplacementCost:      g.Attrition.ReplacementCost,
		CostTarget:           g.EffortAnchors.CostTarget,
		TimeTargetMonths:     g.EffortAnchors.TimeTargetMonths,
	}

	if a.OvertimeMultiplier <= 0 {
		a.OvertimeMultiplier = defaultOvertimeMultiplier
	}
	if a.BusinessHoursStart == 0 && a.BusinessHoursEnd == 0 {
		a.BusinessHoursStart = defaultBusinessHoursStart
		a.BusinessHoursEnd = defaultBusinessHoursEnd
	}
	if a.CostTarget <= 0 {
		a.CostTarget = defaultCostTarget
	}
	if a.TimeTargetMonths <= 0 {
		a.TimeTargetMonths = defaultTimeTargetMonths
	}

	return a
}

// Normalize maps a stored process onto the canonical input. Legacy fields
// are resolved here and nowhere else.
func Normalize(p storage.Process, a Assumptions) (ProcessInput, error) {
	monthlyTasks, err := MonthlyTaskVolume(p.TaskVolume, p.TaskVolumeUnit)
	if err != nil {
		return ProcessInput{}, fmt.Errorf("%w: process %s: %v", ErrInvalidInput, p.ID, err)
	}
	minutes, err := MinutesPerTask(p.TimePerTask, p.TimeUnit)
	if err != nil {
		return ProcessInput{}, fmt.Errorf("%w: process %s: %v", ErrInvalidInput, p.ID, err)
	}

	in := ProcessInput{
		ID:             p.ID,
		Name:           p.Name,
		Group:          p.Group,
		Selected:       p.Selected,
		HourlyWage:     effectiveWage(p, a),
		MonthlyTasks:   monthlyTasks,
		MinutesPerTask: minutes,
		FTECount:       p.FTECount,

		Seasonal:       strings.EqualFold(p.TaskType, "seasonal"),
		PeakMonths:     countPeakMonths(p.SeasonalPattern.PeakMonths),
		PeakMultiplier: p.SeasonalPattern.PeakMultiplier,

		OffHours:           strings.EqualFold(p.TimeOfDay, "off-hours"),
		OvertimeMultiplier: p.OvertimeMultiplier,

		Coverage:        clamp(orDefault(p.Implementation.AutomationCoverage, a.DefaultCoverage), 0, 100) / 100,
		SoftwareCost:    orDefault(p.Implementation.SoftwareCost, a.DefaultSoftwareCost),
		TimelineWeeks:   timelineWeeks(p.Implementation, a),
		UpfrontCosts:    p.Implementation.UpfrontCosts,
		TrainingCosts:   p.Implementation.TrainingCosts,
		ConsultingCosts: p.Implementation.ConsultingCosts,
		StartPeriod:     p.Implementation.StartPeriod,
		APILicensing:    p.Implementation.APILicensing,
		ITSupportHours:  p.Implementation.ITSupportHours,
		ITHourlyRate:    p.Implementation.ITHourlyRate,

		ErrorRate: p.ErrorCosts.ErrorRate,
		Rework:    reworkCost(p.ErrorCosts),

		InternalCosts: internalCostPercentages(p.InternalCosts),

		RedeploymentValue: p.Utilization.RedeploymentValue,
		Complexity:        p.Complexity,
	}

	if in.OvertimeMultiplier <= 0 {
		in.OvertimeMultiplier = a.OvertimeMultiplier
	}
	if in.PeakMultiplier <= 0 {
		in.PeakMultiplier = 1
	}

	if in.Cycle, err = cycle(p.CyclicalPattern); err != nil {
		return ProcessInput{}, fmt.Errorf("%w: process %s: %v", ErrInvalidInput, p.ID, err)
	}
	if in.SLA, err = sla(p.SLA); err != nil {
		return ProcessInput{}, fmt.Errorf("%w: process %s: %v", ErrInvalidInput, p.ID, err)
	}
	if in.Compliance, err = compliance(p.ComplianceRisk); err != nil {
		return ProcessInput{}, fmt.Errorf("%w: process %s: %v", ErrInvalidInput, p.ID, err)
	}
	if in.Utilization, err = utilization(p.Utilization.Type); err != nil {
		return ProcessInput{}, fmt.Errorf("%w: process %s: %v", ErrInvalidInput, p.ID, err)
	}

	r := p.RevenueImpact
	if r.Enabled {
		in.Revenue = &Revenue{UpliftPercentage: r.UpliftPercentage, AnnualProcessRevenue: r.AnnualProcessRevenue}
	}
	pp := r.PromptPaymentDiscount
	if r.Enabled && pp.DiscountPercentage > 0 && pp.AnnualInvoiceVolume > 0 && pp.PaymentTermsDays > 0 {
		in.PromptPayment = &PromptPayment{DiscountPercentage: pp.DiscountPercentage, AnnualInvoiceVolume: pp.AnnualInvoiceVolume}
	}

	return in, nil
}

func effectiveWage(p storage.Process, a Assumptions) float64 {
	if p.SalaryMode {
		return p.AnnualSalary / workHoursPerYear
	}
	if p.AverageHourlyWage > 0 {
		return p.AverageHourlyWage
	}
	return a.HourlyWage
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func timelineWeeks(impl storage.Implementation, a Assumptions) float64 {
	weeks := impl.ImplementationTimelineWeeks
	if weeks <= 0 {
		weeks = impl.ImplementationTimelineMonths
	}
	if weeks <= 0 {
		weeks = a.DefaultTimelineWeeks
	}
	if weeks < 1 {
		weeks = 1
	}
	return weeks
}

func countPeakMonths(months []int) int {
	seen := make(map[int]bool, len(months))
	for _, m := range months {
		if m >= 1 && m <= 12 {
			seen[m] = true
		}
	}
	return len(seen)
}

func reworkCost(e storage.ErrorCosts) ReworkCost {
	if e.ReworkCostPercentage > 0 {
		return ReworkPercentage{Percentage: e.ReworkCostPercentage}
	}
	return ReworkFixed{PerError: e.ReworkCostPerError}
}

func internalCostPercentages(c storage.InternalCosts) map[string]float64 {
	return map[string]float64{
		constants.TrainingOnboardingCosts: c.TrainingOnboarding,
		constants.OvertimePremiums:        c.OvertimePremiums,
		constants.ShadowSystemsCosts:      c.ShadowSystems,
		constants.SoftwareLicensing:       c.SoftwareLicensing,
		constants.InfrastructureCosts:     c.Infrastructure,
		constants.ITSupportMaintenance:    c.ITSupportMaintenance,
		constants.ErrorRemediationCosts:   c.ErrorRemediation,
		constants.AuditComplianceCosts:    c.AuditCompliance,
		constants.DowntimeCosts:           c.Downtime,
		constants.DecisionDelayCosts:      c.DecisionDelays,
		constants.CustomerImpactCosts:     c.CustomerImpact,
		constants.MissedOpportunityCosts:  c.MissedOpportunities,
	}
}

func cycle(c storage.CyclicalPattern) (Cycle, error) {
	out := Cycle{Type: CycleType(strings.ToLower(c.Type)), Multiplier: c.Multiplier}
	switch out.Type {
	case "", CycleNone:
		return Cycle{Type: CycleNone, Multiplier: 1}, nil
	case CycleHourly:
		out.PeakHours = c.PeakHours
	case CycleDaily, CycleWeekly, CycleMonthly:
	default:
		return Cycle{}, fmt.Errorf("unknown cyclical pattern %q", c.Type)
	}
	if out.Multiplier <= 0 {
		out.Multiplier = defaultCyclicalMultiplier
	}
	return out, nil
}

func sla(s storage.SLARequirements) (*SLA, error) {
	if !s.Enabled {
		return nil, nil
	}
	unit := SLACostUnit(strings.ToLower(s.CostUnit))
	if _, ok := slaAnnualization[unit]; !ok {
		return nil, fmt.Errorf("unknown SLA cost unit %q", s.CostUnit)
	}
	return &SLA{CostOfMissing: s.CostOfMissing, MissesPerMonth: s.MissesPerMonth, Unit: unit}, nil
}

func compliance(c storage.ComplianceRisk) (*Compliance, error) {
	if !c.Enabled {
		return nil, nil
	}
	if c.FineType != "" {
		out := &Compliance{Probability: clamp(c.ProbabilityOfOccurrence, 0, 100) / 100}
		switch strings.ToLower(c.FineType) {
		case "daily":
			out.Fine = DailyFine{Amount: c.DailyFineAmount, Days: c.DaysOutOfCompliance}
		case "per-incident":
			out.Fine = PerIncidentFine{Amount: c.PerIncidentFine, IncidentsPerYear: c.IncidentsPerYear}
		case "per-record":
			out.Fine = PerRecordFine{Amount: c.PerRecordFine, Records: c.RecordsAtRisk}
		case "percent-revenue", "percentage-revenue":
			out.Fine = PercentRevenueFine{Percentage: c.RevenuePercentage, AnnualRevenue: c.AnnualRevenue}
		default:
			return nil, fmt.Errorf("unknown fine type %q", c.FineType)
		}
		return out, nil
	}

	if c.AnnualPenaltyRisk > 0 {
		return &Compliance{Fine: FlatPenalty{AnnualRisk: c.AnnualPenaltyRisk}, Probability: 1}, nil
	}

	return nil, nil
}

func utilization(t string) (UtilizationImpact, error) {
	switch u := UtilizationImpact(strings.ToLower(t)); u {
	case "":
		return UtilizationRedeployed, nil
	case UtilizationRedeployed, UtilizationEliminated, UtilizationMixed:
		return u, nil
	default:
		return "", fmt.Errorf("unknown utilization impact %q", t)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
