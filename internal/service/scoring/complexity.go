package scoring

import (
	"math"
	"strings"

	"roi-engine/internal/storage"
)

// Raw counts at or above these caps score a full 10.
const (
	inputsCap       = 20
	stepsCap        = 50
	dependenciesCap = 10

	inputsWeight       = 0.3
	stepsWeight        = 0.4
	dependenciesWeight = 0.3

	// unknownComplexity is used when a process carries no metrics at all.
	unknownComplexity = 5
)

type RiskCategory string

const (
	RiskLow    RiskCategory = "Low"
	RiskMedium RiskCategory = "Medium"
	RiskHigh   RiskCategory = "High"
)

// Complexity is the workflow complexity of a process on a 0-10 scale.
type Complexity struct {
	InputsScore       float64      `json:"inputs_score"`
	StepsScore        float64      `json:"steps_score"`
	DependenciesScore float64      `json:"dependencies_score"`
	Index             float64      `json:"complexity_index"`
	Category          RiskCategory `json:"risk_category"`
	RiskValue         float64      `json:"risk_value"`
}

// ComplexityFromMetrics derives the complexity index. Explicit normalized
// scores override raw counts and an explicit index overrides both.
func ComplexityFromMetrics(m *storage.ComplexityInput) Complexity {
	if m == nil {
		return withCategory(Complexity{Index: unknownComplexity})
	}

	c := Complexity{
		InputsScore:       normalizeCount(m.InputsCount, inputsCap),
		StepsScore:        normalizeCount(m.StepsCount, stepsCap),
		DependenciesScore: normalizeCount(m.DependenciesCount, dependenciesCap),
	}
	if m.InputsScore != nil {
		c.InputsScore = clamp(*m.InputsScore, 0, 10)
	}
	if m.StepsScore != nil {
		c.StepsScore = clamp(*m.StepsScore, 0, 10)
	}
	if m.DependenciesScore != nil {
		c.DependenciesScore = clamp(*m.DependenciesScore, 0, 10)
	}

	c.Index = inputsWeight*c.InputsScore + stepsWeight*c.StepsScore + dependenciesWeight*c.DependenciesScore
	if m.ComplexityIndex != nil {
		c.Index = clamp(*m.ComplexityIndex, 0, 10)
	}

	c = withCategory(c)
	if m.RiskCategory != "" {
		if cat, ok := parseCategory(m.RiskCategory); ok {
			c.Category = cat
			c.RiskValue = categoryValue(cat)
		}
	}
	if m.RiskValue > 0 {
		c.RiskValue = m.RiskValue
	}

	return c
}

// CategoryForIndex buckets an index: <4 Low, <7 Medium, otherwise High.
func CategoryForIndex(index float64) RiskCategory {
	switch {
	case index < 4:
		return RiskLow
	case index < 7:
		return RiskMedium
	default:
		return RiskHigh
	}
}

func withCategory(c Complexity) Complexity {
	c.Category = CategoryForIndex(c.Index)
	c.RiskValue = categoryValue(c.Category)
	return c
}

func categoryValue(cat RiskCategory) float64 {
	switch cat {
	case RiskLow:
		return 2
	case RiskMedium:
		return 5
	default:
		return 8
	}
}

func parseCategory(s string) (RiskCategory, bool) {
	switch strings.ToLower(s) {
	case "low":
		return RiskLow, true
	case "medium":
		return RiskMedium, true
	case "high":
		return RiskHigh, true
	}
	return "", false
}

func normalizeCount(count, limit int) float64 {
	if count <= 0 {
		return 0
	}
	return math.Min(10, 10*float64(count)/float64(limit))
}
