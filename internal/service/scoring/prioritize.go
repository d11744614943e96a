package scoring

import (
	"fmt"
	"math"

	"roi-engine/internal/service/roi"
	"roi-engine/internal/storage"
)

const defaultScoringYears = 3

// Prioritization is the scoring view of one process.
type Prioritization struct {
	ProcessID      string         `json:"process_id"`
	Name           string         `json:"name"`
	Group          string         `json:"group"`
	Complexity     Complexity     `json:"complexity"`
	Components     Components     `json:"components"`
	CostToValue    float64        `json:"cost_to_value"`
	RiskToValue    float64        `json:"risk_to_value"`
	MatrixQuadrant MatrixQuadrant `json:"matrix_quadrant"`
}

// InputFor builds the scoring model input from a process and its ROI result.
// Budget and EAC fall back to the implementation cost; EMV falls back to zero.
func InputFor(p roi.ProcessInput, r roi.ProcessROIResult, a roi.Assumptions, cx Complexity) Input {
	years := a.ProjectionYears
	if years <= 0 {
		years = defaultScoringYears
	}

	annual := r.NetAnnualSavings - r.MonthlySoftwareCost*12
	savings := make([]float64, years)
	for y := range savings {
		savings[y] = annual * math.Pow(1+a.InflationRate/100, float64(y))
	}

	in := Input{
		InitialCost:        r.TotalImplementationCost,
		SavingsByYear:      savings,
		StartYear:          p.StartPeriod/12 + 1,
		DiscountRate:       a.DiscountRate / 100,
		ComplexityIndex:    cx.Index,
		Budget:             r.TotalImplementationCost,
		RiskPremiumFactor:  a.RiskPremiumFactor,
		EstimatedCost:      r.TotalImplementationCost,
		EstimatedTimeWeeks: p.TimelineWeeks,
		CostTarget:         a.CostTarget,
		TimeTargetMonths:   a.TimeTargetMonths,
		GlobalRiskOverride: a.RiskOverride,
	}
	if m := p.Complexity; m != nil {
		if m.Budget > 0 {
			in.Budget = m.Budget
		}
		in.EMV = m.ExpectedMonetaryValue
		in.EAC = m.EstimateAtCompletion
	}
	if in.EAC <= 0 {
		in.EAC = in.Budget
	}

	return in
}

// ForProcess scores a single process and places it on both matrices.
func ForProcess(p roi.ProcessInput, r roi.ProcessROIResult, a roi.Assumptions) Prioritization {
	cx := ComplexityFromMetrics(p.Complexity)
	c := Compute(InputFor(p, r, a, cx))

	value := math.Max(r.NetAnnualSavings, 1)
	costToValue := r.TotalImplementationCost / value
	riskToValue := c.EffectiveRisk / 10

	return Prioritization{
		ProcessID:      p.ID,
		Name:           p.Name,
		Group:          p.Group,
		Complexity:     cx,
		Components:     c,
		CostToValue:    costToValue,
		RiskToValue:    riskToValue,
		MatrixQuadrant: MatrixQuadrantFor(c.CFOScore, costToValue, riskToValue),
	}
}

// ForPortfolio scores every selected process of a calculated portfolio,
// in the order the results list them.
func ForPortfolio(data storage.InputData, res roi.ROIResults) ([]Prioritization, error) {
	const op = "service.scoring.ForPortfolio"

	out := make([]Prioritization, 0, len(res.ProcessResults))
	if res.Blocked {
		return out, nil
	}

	a := roi.NormalizeDefaults(data.GlobalDefaults)
	byID := make(map[string]storage.Process, len(data.Processes))
	for _, p := range data.Processes {
		byID[p.ID] = p
	}

	for _, r := range res.ProcessResults {
		if !r.Selected {
			continue
		}
		p, ok := byID[r.ProcessID]
		if !ok {
			return nil, fmt.Errorf("%s: %w: %s", op, storage.ErrProcessNotFound, r.ProcessID)
		}
		in, err := roi.Normalize(p, a)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, ForProcess(in, r, a))
	}

	return out, nil
}
