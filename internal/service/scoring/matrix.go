package scoring

// MatrixQuadrant is the score-based bucket used by the portfolio matrix view.
// It is independent of Quadrant.
type MatrixQuadrant string

const (
	MatrixQuickWins    MatrixQuadrant = "Quick Wins"
	MatrixBigHitters   MatrixQuadrant = "Big Hitters"
	MatrixNiceToHaves  MatrixQuadrant = "Nice to Haves"
	MatrixDeprioritize MatrixQuadrant = "Deprioritize"
)

const (
	quickWinsScore   = 7.5
	bigHittersScore  = 6.0
	niceToHavesScore = 4.5

	maxCostToValue = 1.0
	maxRiskToValue = 0.75
)

// MatrixQuadrantFor buckets a normalized CFO score. Below Quick Wins, a cost
// or risk burden above its ceiling forces Deprioritize.
func MatrixQuadrantFor(score, costToValue, riskToValue float64) MatrixQuadrant {
	if score >= quickWinsScore {
		return MatrixQuickWins
	}
	if costToValue > maxCostToValue || riskToValue > maxRiskToValue {
		return MatrixDeprioritize
	}
	switch {
	case score >= bigHittersScore:
		return MatrixBigHitters
	case score >= niceToHavesScore:
		return MatrixNiceToHaves
	default:
		return MatrixDeprioritize
	}
}
