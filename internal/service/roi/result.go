package roi

import "roi-engine/internal/constants"

// InternalCostSavings breaks internal-cost savings down by category and group.
type InternalCostSavings struct {
	TrainingOnboarding float64 `json:"training_onboarding"`
	OvertimePremiums   float64 `json:"overtime_premiums"`
	ShadowSystems      float64 `json:"shadow_systems"`

	SoftwareLicensing    float64 `json:"software_licensing"`
	Infrastructure       float64 `json:"infrastructure"`
	ITSupportMaintenance float64 `json:"it_support_maintenance"`

	ErrorRemediation float64 `json:"error_remediation"`
	AuditCompliance  float64 `json:"audit_compliance"`
	Downtime         float64 `json:"downtime"`

	DecisionDelays      float64 `json:"decision_delays"`
	CustomerImpact      float64 `json:"customer_impact"`
	MissedOpportunities float64 `json:"missed_opportunities"`

	LaborWorkforceTotal   float64 `json:"labor_workforce_total"`
	ITOperationsTotal     float64 `json:"it_operations_total"`
	ComplianceRiskTotal   float64 `json:"compliance_risk_total"`
	OpportunityCostsTotal float64 `json:"opportunity_costs_total"`

	Total     float64 `json:"total"`
	HardTotal float64 `json:"hard_total"`
	SoftTotal float64 `json:"soft_total"`
}

// Category returns the savings for a cost key. Base cost keys and unknown
// keys carry no internal savings.
func (s InternalCostSavings) Category(key string) float64 {
	switch key {
	case constants.TrainingOnboardingCosts:
		return s.TrainingOnboarding
	case constants.OvertimePremiums:
		return s.OvertimePremiums
	case constants.ShadowSystemsCosts:
		return s.ShadowSystems
	case constants.SoftwareLicensing:
		return s.SoftwareLicensing
	case constants.InfrastructureCosts:
		return s.Infrastructure
	case constants.ITSupportMaintenance:
		return s.ITSupportMaintenance
	case constants.ErrorRemediationCosts:
		return s.ErrorRemediation
	case constants.AuditComplianceCosts:
		return s.AuditCompliance
	case constants.DowntimeCosts:
		return s.Downtime
	case constants.DecisionDelayCosts:
		return s.DecisionDelays
	case constants.CustomerImpactCosts:
		return s.CustomerImpact
	case constants.MissedOpportunityCosts:
		return s.MissedOpportunities
	default:
		return 0
	}
}

func (s *InternalCostSavings) setCategory(key string, v float64) {
	switch key {
	case constants.TrainingOnboardingCosts:
		s.TrainingOnboarding = v
	case constants.OvertimePremiums:
		s.OvertimePremiums = v
	case constants.ShadowSystemsCosts:
		s.ShadowSystems = v
	case constants.SoftwareLicensing:
		s.SoftwareLicensing = v
	case constants.InfrastructureCosts:
		s.Infrastructure = v
	case constants.ITSupportMaintenance:
		s.ITSupportMaintenance = v
	case constants.ErrorRemediationCosts:
		s.ErrorRemediation = v
	case constants.AuditComplianceCosts:
		s.AuditCompliance = v
	case constants.DowntimeCosts:
		s.Downtime = v
	case constants.DecisionDelayCosts:
		s.DecisionDelays = v
	case constants.CustomerImpactCosts:
		s.CustomerImpact = v
	case constants.MissedOpportunityCosts:
		s.MissedOpportunities = v
	}
}

func (s *InternalCostSavings) add(o InternalCostSavings) {
	for key := range constants.InternalCostGroup {
		s.setCategory(key, s.Category(key)+o.Category(key))
	}
	s.LaborWorkforceTotal += o.LaborWorkforceTotal
	s.ITOperationsTotal += o.ITOperationsTotal
	s.ComplianceRiskTotal += o.ComplianceRiskTotal
	s.OpportunityCostsTotal += o.OpportunityCostsTotal
	s.Total += o.Total
	s.HardTotal += o.HardTotal
	s.SoftTotal += o.SoftTotal
}

// OngoingCosts are residual costs automation does not remove. They are
// reported for transparency and never netted into savings.
type OngoingCosts struct {
	Training      float64 `json:"training"`
	Overtime      float64 `json:"overtime"`
	ShadowSystems float64 `json:"shadow_systems"`
	ITSupport     float64 `json:"it_support"`
	Total         float64 `json:"total"`
}

func (o *OngoingCosts) add(other OngoingCosts) {
	o.Training += other.Training
	o.Overtime += other.Overtime
	o.ShadowSystems += other.ShadowSystems
	o.ITSupport += other.ITSupport
	o.Total += other.Total
}

// ProcessROIResult is the calculated outcome for one process.
type ProcessROIResult struct {
	ProcessID string `json:"process_id"`
	Name      string `json:"name"`
	Group     string `json:"group"`
	Selected  bool   `json:"selected"`
	Blocked   bool   `json:"blocked,omitempty"`

	FullyLoadedRate   float64 `json:"fully_loaded_rate"`
	EffectiveRate     float64 `json:"effective_rate"`
	CurrentAnnualCost float64 `json:"current_annual_cost"`
	NewAnnualCost     float64 `json:"new_annual_cost"`

	MonthlyTimeSaved  float64 `json:"monthly_time_saved"`
	AnnualTimeSavings float64 `json:"annual_time_savings"`
	FTEsFreed         float64 `json:"ftes_freed"`

	GrossAnnualSavings      float64 `json:"gross_annual_savings"`
	PeakSeasonSavings       float64 `json:"peak_season_savings"`
	OvertimeSavings         float64 `json:"overtime_savings"`
	SLAValue                float64 `json:"sla_value"`
	ErrorReductionSavings   float64 `json:"error_reduction_savings"`
	ComplianceRiskReduction float64 `json:"compliance_risk_reduction"`
	RevenueUplift           float64 `json:"revenue_uplift"`
	PromptPaymentBenefit    float64 `json:"prompt_payment_benefit"`
	SystemIntegrationCosts  float64 `json:"system_integration_costs"`
	NetAnnualSavings        float64 `json:"net_annual_savings"`

	InternalCostSavings InternalCostSavings `json:"internal_cost_savings"`

	LaborSplit         Split `json:"labor_split"`
	OvertimeSplit      Split `json:"overtime_split"`
	SLASplit           Split `json:"sla_split"`
	ErrorSplit         Split `json:"error_split"`
	PromptPaymentSplit Split `json:"prompt_payment_split"`

	HardDollarSavings float64 `json:"hard_dollar_savings"`
	SoftDollarSavings float64 `json:"soft_dollar_savings"`

	TotalImplementationCost float64 `json:"total_implementation_cost"`
	MonthlySoftwareCost     float64 `json:"monthly_software_cost"`
	PaybackPeriodMonths     float64 `json:"payback_period_months"`

	OngoingCosts OngoingCosts `json:"ongoing_costs"`

	RedeployedCapacityValue float64 `json:"redeployed_capacity_value"`
	EliminatedFTEs          float64 `json:"eliminated_ftes"`
	AttritionCostAvoidance  float64 `json:"attrition_cost_avoidance"`
}

// CashflowData is one month of the projection.
type CashflowData struct {
	Month             int     `json:"month"`
	CumulativeSavings float64 `json:"cumulative_savings"`
	CumulativeCost    float64 `json:"cumulative_cost"`
	NetCashflow       float64 `json:"net_cashflow"`
}

type YearlyEBITDA struct {
	Year   int     `json:"year"`
	EBITDA float64 `json:"ebitda"`
}

// Sensitivity holds ROI percentages under scaled automation coverage.
type Sensitivity struct {
	Conservative float64 `json:"conservative"`
	Likely       float64 `json:"likely"`
	Optimistic   float64 `json:"optimistic"`
}

type GroupSummary struct {
	GroupID           string  `json:"group_id"`
	Name              string  `json:"name"`
	SelectedProcesses int     `json:"selected_processes"`
	NetAnnualSavings  float64 `json:"net_annual_savings"`
	HardDollarSavings float64 `json:"hard_dollar_savings"`
	SoftDollarSavings float64 `json:"soft_dollar_savings"`
}

// ROIResults is the portfolio aggregate. It is rebuilt on every call.
type ROIResults struct {
	RunID    string   `json:"run_id,omitempty"`
	OrgID    string   `json:"org_id"`
	Blocked  bool     `json:"blocked"`
	Blockers []string `json:"blockers,omitempty"`

	TimeHorizonMonths int `json:"time_horizon_months"`
	TotalProcesses    int `json:"total_processes"`
	SelectedProcesses int `json:"selected_processes"`

	GrossAnnualSavings      float64 `json:"gross_annual_savings"`
	NetAnnualSavings        float64 `json:"net_annual_savings"`
	MonthlyTimeSaved        float64 `json:"monthly_time_saved"`
	AnnualTimeSavings       float64 `json:"annual_time_savings"`
	FTEsFreed               float64 `json:"ftes_freed"`
	PeakSeasonSavings       float64 `json:"peak_season_savings"`
	OvertimeSavings         float64 `json:"overtime_savings"`
	SLAValue                float64 `json:"sla_value"`
	ErrorReductionSavings   float64 `json:"error_reduction_savings"`
	ComplianceRiskReduction float64 `json:"compliance_risk_reduction"`
	RevenueUplift           float64 `json:"revenue_uplift"`
	PromptPaymentBenefit    float64 `json:"prompt_payment_benefit"`
	SystemIntegrationCosts  float64 `json:"system_integration_costs"`
	HardDollarSavings       float64 `json:"hard_dollar_savings"`
	SoftDollarSavings       float64 `json:"soft_dollar_savings"`

	InternalCostSavings InternalCostSavings `json:"internal_cost_savings"`
	OngoingCosts        OngoingCosts        `json:"ongoing_costs"`

	TotalImplementationCost float64 `json:"total_implementation_cost"`
	MonthlySoftwareCost     float64 `json:"monthly_software_cost"`

	ROIPercentage       float64        `json:"roi_percentage"`
	NPV                 float64        `json:"npv"`
	IRR                 float64        `json:"irr"`
	IRRConverged        bool           `json:"irr_converged"`
	PaybackPeriodMonths float64        `json:"payback_period_months"`
	EBITDAByYear        []YearlyEBITDA `json:"ebitda_by_year"`
	Sensitivity         Sensitivity    `json:"sensitivity"`

	CashFlows []float64      `json:"cash_flows"`
	Cashflow  []CashflowData `json:"cashflow"`

	Groups         []GroupSummary     `json:"groups"`
	ProcessResults []ProcessROIResult `json:"process_results"`
}

// BlockedResults is the all-zero sentinel returned when a calculation is not
// allowed to run.
func BlockedResults(orgID string, blockers []string) ROIResults {
	return ROIResults{
		OrgID:          orgID,
		Blocked:        true,
		Blockers:       blockers,
		EBITDAByYear:   []YearlyEBITDA{},
		CashFlows:      []float64{},
		Cashflow:       []CashflowData{},
		Groups:         []GroupSummary{},
		ProcessResults: []ProcessROIResult{},
	}
}
