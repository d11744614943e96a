package storage

// GlobalDefaults are organization-wide fallbacks and financial assumptions.
type GlobalDefaults struct {
	AverageHourlyWage  float64 `json:"average_hourly_wage" yaml:"average_hourly_wage"`
	OvertimeMultiplier float64 `json:"overtime_multiplier" yaml:"overtime_multiplier"`

	Overhead OverheadBreakdown `json:"overhead" yaml:"overhead"`

	ImplementationDefaults ImplementationDefaults `json:"implementation_defaults" yaml:"implementation_defaults"`
	Financial              FinancialAssumptions   `json:"financial" yaml:"financial"`
	Attrition              AttritionCosts         `json:"attrition" yaml:"attrition"`
	EffortAnchors          EffortAnchors          `json:"effort_anchors" yaml:"effort_anchors"`

	BusinessHoursStart int `json:"business_hours_start" yaml:"business_hours_start"`
	BusinessHoursEnd   int `json:"business_hours_end" yaml:"business_hours_end"`
}

// OverheadBreakdown percentages sum to the effective overhead rate.
type OverheadBreakdown struct {
	Benefits   float64 `json:"benefits" yaml:"benefits"`
	PayrollTax float64 `json:"payroll_tax" yaml:"payroll_tax"`
	PTO        float64 `json:"pto" yaml:"pto"`
	Training   float64 `json:"training" yaml:"training"`
	GA         float64 `json:"g_and_a" yaml:"g_and_a"`
}

type ImplementationDefaults struct {
	SoftwareCost       float64 `json:"software_cost" yaml:"software_cost"`
	AutomationCoverage float64 `json:"automation_coverage" yaml:"automation_coverage"`
	TimelineWeeks      float64 `json:"timeline_weeks" yaml:"timeline_weeks"`
}

type FinancialAssumptions struct {
	DiscountRate       float64  `json:"discount_rate" yaml:"discount_rate"`
	InflationRate      float64  `json:"inflation_rate" yaml:"inflation_rate"`
	ProjectionYears    int      `json:"projection_years" yaml:"projection_years"`
	TaxRate            float64  `json:"tax_rate" yaml:"tax_rate"`
	RiskPremiumFactor  float64  `json:"risk_premium_factor" yaml:"risk_premium_factor"`
	GlobalRiskOverride *float64 `json:"global_risk_override,omitempty" yaml:"global_risk_override,omitempty"`
}

type AttritionCosts struct {
	TurnoverRate    float64 `json:"turnover_rate" yaml:"turnover_rate"`
	ReplacementCost float64 `json:"replacement_cost" yaml:"replacement_cost"` // % of salary
}

// EffortAnchors are absolute targets for the implementation effort score.
type EffortAnchors struct {
	CostTarget       float64 `json:"cost_target" yaml:"cost_target"`
	TimeTargetMonths float64 `json:"time_target_months" yaml:"time_target_months"`
}
