package storage

// Process is a manual workflow considered for automation, in the shape it is
// stored and received from clients. Legacy fields are kept here only; the
// engine works on a normalized copy.
type Process struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Group    string `json:"group" yaml:"group"`
	Selected bool   `json:"selected" yaml:"selected"`

	SalaryMode        bool    `json:"salary_mode" yaml:"salary_mode"`
	AverageHourlyWage float64 `json:"average_hourly_wage" yaml:"average_hourly_wage"`
	AnnualSalary      float64 `json:"annual_salary" yaml:"annual_salary"`

	TaskVolume     float64 `json:"task_volume" yaml:"task_volume"`
	TaskVolumeUnit string  `json:"task_volume_unit" yaml:"task_volume_unit"` // day, week, month, quarter, year
	TimePerTask    float64 `json:"time_per_task" yaml:"time_per_task"`
	TimeUnit       string  `json:"time_unit" yaml:"time_unit"` // minutes, hours
	FTECount       float64 `json:"fte_count" yaml:"fte_count"`

	TaskType           string  `json:"task_type" yaml:"task_type"`     // batch, real-time, seasonal
	TimeOfDay          string  `json:"time_of_day" yaml:"time_of_day"` // business-hours, off-hours, mixed
	OvertimeMultiplier float64 `json:"overtime_multiplier" yaml:"overtime_multiplier"`

	SeasonalPattern SeasonalPattern  `json:"seasonal_pattern" yaml:"seasonal_pattern"`
	CyclicalPattern CyclicalPattern  `json:"cyclical_pattern" yaml:"cyclical_pattern"`
	SLA             SLARequirements  `json:"sla_requirements" yaml:"sla_requirements"`
	Implementation  Implementation   `json:"implementation_costs" yaml:"implementation_costs"`
	ErrorCosts      ErrorCosts       `json:"error_costs" yaml:"error_costs"`
	ComplianceRisk  ComplianceRisk   `json:"compliance_risk" yaml:"compliance_risk"`
	RevenueImpact   RevenueImpact    `json:"revenue_impact" yaml:"revenue_impact"`
	InternalCosts   InternalCosts    `json:"internal_costs" yaml:"internal_costs"`
	Utilization     Utilization      `json:"utilization_impact" yaml:"utilization_impact"`
	Complexity      *ComplexityInput `json:"complexity_metrics,omitempty" yaml:"complexity_metrics,omitempty"`
}

type SeasonalPattern struct {
	PeakMonths     []int   `json:"peak_months" yaml:"peak_months"`
	PeakMultiplier float64 `json:"peak_multiplier" yaml:"peak_multiplier"`
}

type CyclicalPattern struct {
	Type       string  `json:"type" yaml:"type"` // none, hourly, daily, weekly, monthly
	PeakHours  []int   `json:"peak_hours" yaml:"peak_hours"`
	PeakDays   []int   `json:"peak_days" yaml:"peak_days"`
	PeakDates  []int   `json:"peak_dates" yaml:"peak_dates"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

type SLARequirements struct {
	Enabled        bool    `json:"enabled" yaml:"enabled"`
	Target         float64 `json:"target" yaml:"target"`
	CostOfMissing  float64 `json:"cost_of_missing" yaml:"cost_of_missing"`
	CostUnit       string  `json:"cost_unit" yaml:"cost_unit"` // per-minute, per-hour, per-day, per-week, per-month, per-year
	MissesPerMonth float64 `json:"misses_per_month" yaml:"misses_per_month"`
}

type Implementation struct {
	// SoftwareCost and AutomationCoverage fall back to the implementation
	// defaults when nil. An explicit zero is kept.
	SoftwareCost                 *float64 `json:"software_cost,omitempty" yaml:"software_cost,omitempty"` // monthly
	AutomationCoverage           *float64 `json:"automation_coverage,omitempty" yaml:"automation_coverage,omitempty"`
	// ImplementationTimelineMonths holds weeks despite its name. Kept for
	// stored payloads; ImplementationTimelineWeeks wins when both are set.
	ImplementationTimelineMonths float64  `json:"implementation_timeline_months,omitempty" yaml:"implementation_timeline_months,omitempty"`
	ImplementationTimelineWeeks  float64  `json:"implementation_timeline_weeks" yaml:"implementation_timeline_weeks"`
	UpfrontCosts                 float64  `json:"upfront_costs" yaml:"upfront_costs"`
	TrainingCosts                float64  `json:"training_costs" yaml:"training_costs"`
	ConsultingCosts              float64  `json:"consulting_costs" yaml:"consulting_costs"`
	StartPeriod                  int      `json:"start_period" yaml:"start_period"`
	APILicensing                 float64  `json:"api_licensing" yaml:"api_licensing"`       // annual
	ITSupportHours               float64  `json:"it_support_hours" yaml:"it_support_hours"` // monthly
	ITHourlyRate                 float64  `json:"it_hourly_rate" yaml:"it_hourly_rate"`
}

type ErrorCosts struct {
	ErrorRate float64 `json:"error_rate" yaml:"error_rate"`
	// Deprecated: fixed dollars per error, superseded by ReworkCostPercentage.
	ReworkCostPerError   float64 `json:"rework_cost_per_error,omitempty" yaml:"rework_cost_per_error,omitempty"`
	ReworkCostPercentage float64 `json:"rework_cost_percentage" yaml:"rework_cost_percentage"`
}

type ComplianceRisk struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	FineType string `json:"fine_type" yaml:"fine_type"` // daily, per-incident, per-record, percent-revenue

	DailyFineAmount     float64 `json:"daily_fine_amount" yaml:"daily_fine_amount"`
	DaysOutOfCompliance float64 `json:"days_out_of_compliance" yaml:"days_out_of_compliance"`
	PerIncidentFine     float64 `json:"per_incident_fine" yaml:"per_incident_fine"`
	IncidentsPerYear    float64 `json:"incidents_per_year" yaml:"incidents_per_year"`
	PerRecordFine       float64 `json:"per_record_fine" yaml:"per_record_fine"`
	RecordsAtRisk       float64 `json:"records_at_risk" yaml:"records_at_risk"`
	RevenuePercentage   float64 `json:"revenue_percentage" yaml:"revenue_percentage"`
	AnnualRevenue       float64 `json:"annual_revenue" yaml:"annual_revenue"`

	ProbabilityOfOccurrence float64 `json:"probability_of_occurrence" yaml:"probability_of_occurrence"`

	// Deprecated: flat annual exposure used before fine structures existed.
	AnnualPenaltyRisk float64 `json:"annual_penalty_risk,omitempty" yaml:"annual_penalty_risk,omitempty"`
}

type RevenueImpact struct {
	Enabled              bool    `json:"enabled" yaml:"enabled"`
	UpliftPercentage     float64 `json:"uplift_percentage" yaml:"uplift_percentage"`
	AnnualProcessRevenue float64 `json:"annual_process_revenue" yaml:"annual_process_revenue"`

	PromptPaymentDiscount PromptPaymentDiscount `json:"prompt_payment_discount" yaml:"prompt_payment_discount"`
}

type PromptPaymentDiscount struct {
	DiscountPercentage  float64 `json:"discount_percentage" yaml:"discount_percentage"`
	AnnualInvoiceVolume float64 `json:"annual_invoice_volume" yaml:"annual_invoice_volume"`
	PaymentTermsDays    float64 `json:"payment_terms_days" yaml:"payment_terms_days"`
}

// InternalCosts are percentages of the current process cost.
type InternalCosts struct {
	TrainingOnboarding float64 `json:"training_onboarding" yaml:"training_onboarding"`
	OvertimePremiums   float64 `json:"overtime_premiums" yaml:"overtime_premiums"`
	ShadowSystems      float64 `json:"shadow_systems" yaml:"shadow_systems"`

	SoftwareLicensing    float64 `json:"software_licensing" yaml:"software_licensing"`
	Infrastructure       float64 `json:"infrastructure" yaml:"infrastructure"`
	ITSupportMaintenance float64 `json:"it_support_maintenance" yaml:"it_support_maintenance"`

	ErrorRemediation float64 `json:"error_remediation" yaml:"error_remediation"`
	AuditCompliance  float64 `json:"audit_compliance" yaml:"audit_compliance"`
	Downtime         float64 `json:"downtime" yaml:"downtime"`

	DecisionDelays      float64 `json:"decision_delays" yaml:"decision_delays"`
	CustomerImpact      float64 `json:"customer_impact" yaml:"customer_impact"`
	MissedOpportunities float64 `json:"missed_opportunities" yaml:"missed_opportunities"`
}

type Utilization struct {
	Type              string  `json:"type" yaml:"type"` // redeployed, eliminated, mixed
	RedeploymentValue float64 `json:"redeployment_value" yaml:"redeployment_value"`
}

// ComplexityInput carries optional workflow metrics for prioritization.
type ComplexityInput struct {
	InputsCount       int      `json:"inputs_count" yaml:"inputs_count"`
	StepsCount        int      `json:"steps_count" yaml:"steps_count"`
	DependenciesCount int      `json:"dependencies_count" yaml:"dependencies_count"`
	InputsScore       *float64 `json:"inputs_score,omitempty" yaml:"inputs_score,omitempty"`
	StepsScore        *float64 `json:"steps_score,omitempty" yaml:"steps_score,omitempty"`
	DependenciesScore *float64 `json:"dependencies_score,omitempty" yaml:"dependencies_score,omitempty"`
	ComplexityIndex   *float64 `json:"complexity_index,omitempty" yaml:"complexity_index,omitempty"`
	RiskCategory      string   `json:"risk_category,omitempty" yaml:"risk_category,omitempty"`
	RiskValue         float64  `json:"risk_value,omitempty" yaml:"risk_value,omitempty"`

	Budget                float64 `json:"budget,omitempty" yaml:"budget,omitempty"`
	EstimateAtCompletion  float64 `json:"estimate_at_completion,omitempty" yaml:"estimate_at_completion,omitempty"`
	ExpectedMonetaryValue float64 `json:"expected_monetary_value,omitempty" yaml:"expected_monetary_value,omitempty"`
}
