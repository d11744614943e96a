package scoring

import "math"

const (
	prudenceHaircut = 0.05
	roiRiskPenalty  = 0.5

	effortCostWeight       = 0.5
	effortTimeWeight       = 0.3
	effortComplexityWeight = 0.2
	effortFactorCeiling    = 1.2

	weeksPerMonth = 4.33

	quadrantROIThreshold    = 0.5
	quadrantEffortThreshold = 0.4

	scoreROICap = 3.0
)

// Quadrant is the ROI-versus-effort bucket used by prioritization views.
type Quadrant string

const (
	QuickWin     Quadrant = "Quick Win"
	StrategicBet Quadrant = "Strategic Bet"
	NiceToHave   Quadrant = "Nice to Have"
	Deprioritize Quadrant = "Deprioritize"
)

// Input carries every parameter of the CFO scoring model. Rates are fractions;
// ComplexityIndex and GlobalRiskOverride are on a 0-10 scale.
type Input struct {
	InitialCost        float64   `json:"initial_cost"`
	SavingsByYear      []float64 `json:"savings_by_year"`
	StartYear          int       `json:"start_year"`
	DiscountRate       float64   `json:"discount_rate"`
	ComplexityIndex    float64   `json:"complexity_index"`
	Budget             float64   `json:"budget"`
	EAC                float64   `json:"eac"`
	EMV                float64   `json:"emv"`
	RiskPremiumFactor  float64   `json:"risk_premium_factor"`
	EstimatedCost      float64   `json:"estimated_cost"`
	EstimatedTimeWeeks float64   `json:"estimated_time_weeks"`
	CostTarget         float64   `json:"cost_target"`
	TimeTargetMonths   float64   `json:"time_target_months"`
	GlobalRiskOverride *float64  `json:"global_risk_override,omitempty"`
}

// Components is the output of the scoring model.
type Components struct {
	EffectiveRisk        float64  `json:"effective_risk"`
	AdjustedDiscountRate float64  `json:"adjusted_discount_rate"`
	RiskAdjustedNPV      float64  `json:"risk_adjusted_npv"`
	RawROI               float64  `json:"raw_roi"`
	RiskAdjustedROI      float64  `json:"risk_adjusted_roi"`
	ExecutionHealth      float64  `json:"execution_health"`
	RiskFactor           float64  `json:"risk_factor"`
	CostFactor           float64  `json:"cost_factor"`
	TimeFactor           float64  `json:"time_factor"`
	ComplexityFactor     float64  `json:"complexity_factor"`
	ImplementationEffort float64  `json:"implementation_effort"`
	CFOScoreRaw          float64  `json:"cfo_score_raw"`
	CFOScore             float64  `json:"cfo_score"`
	Quadrant             Quadrant `json:"quadrant"`
}

// Compute runs the risk-adjusted scoring model.
//
// FORMULA:
//
//	r_adj = r + premium × risk/10
//	NPV_a = (Σ_{y≥start} S_y / (1 + r_adj)^y − C) × (1 − 0.05 × risk/10)
//	ROI_a = NPV_a / max(C, 1) × (1 − 0.5 × risk/10)
//
// Risk is applied twice: through the discount rate and through the ROI haircut.
func Compute(in Input) Components {
	var c Components

	c.EffectiveRisk = in.ComplexityIndex
	if in.GlobalRiskOverride != nil {
		c.EffectiveRisk = *in.GlobalRiskOverride
	}
	risk := c.EffectiveRisk / 10

	c.AdjustedDiscountRate = in.DiscountRate + in.RiskPremiumFactor*risk

	startYear := in.StartYear
	if startYear < 1 {
		startYear = 1
	}
	var npv float64
	for i, s := range in.SavingsByYear {
		year := i + 1
		if year < startYear {
			continue
		}
		npv += s / math.Pow(1+c.AdjustedDiscountRate, float64(year))
	}
	npv -= in.InitialCost
	c.RiskAdjustedNPV = npv * (1 - prudenceHaircut*risk)

	c.RawROI = c.RiskAdjustedNPV / math.Max(in.InitialCost, 1)
	c.RiskAdjustedROI = c.RawROI * (1 - roiRiskPenalty*risk)

	c.ExecutionHealth = clamp01(1 - (in.EAC-in.Budget)/math.Max(in.Budget, 1))
	c.RiskFactor = clamp01(1 - in.EMV/math.Max(in.InitialCost, 1))

	c.CostFactor, c.TimeFactor, c.ComplexityFactor, c.ImplementationEffort = implementationEffort(in, c.EffectiveRisk)

	c.Quadrant = QuadrantFor(c.RiskAdjustedROI, c.ImplementationEffort)

	c.CFOScoreRaw = 0.5*math.Min(c.RiskAdjustedROI, scoreROICap)/scoreROICap + 0.3*c.ExecutionHealth + 0.2*c.RiskFactor
	c.CFOScore = 10 * c.CFOScoreRaw

	return c
}

// implementationEffort scores effort against absolute cost and time anchors.
// Estimated time arrives in weeks and is converted with the fixed 4.33.
func implementationEffort(in Input, effectiveRisk float64) (cost, time, complexity, effort float64) {
	if in.CostTarget > 0 {
		cost = clamp(in.EstimatedCost/in.CostTarget, 0, effortFactorCeiling)
	}
	if in.TimeTargetMonths > 0 {
		time = clamp(in.EstimatedTimeWeeks/weeksPerMonth/in.TimeTargetMonths, 0, effortFactorCeiling)
	}
	complexity = clamp01(effectiveRisk / 10)

	effort = clamp01(effortCostWeight*cost + effortTimeWeight*time + effortComplexityWeight*complexity)
	return cost, time, complexity, effort
}

// QuadrantFor applies the fixed 2x2 matrix. Both thresholds are inclusive.
func QuadrantFor(roiA, effort float64) Quadrant {
	highROI := roiA >= quadrantROIThreshold
	lowEffort := effort <= quadrantEffortThreshold
	switch {
	case highROI && lowEffort:
		return QuickWin
	case highROI:
		return StrategicBet
	case lowEffort:
		return NiceToHave
	default:
		return Deprioritize
	}
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
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
