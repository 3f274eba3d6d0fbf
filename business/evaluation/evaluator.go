package evaluation

import (
	"motoMatch/domain"
)

const (
	scoreMin = 0.0
	scoreMax = 5.0

	// scale applied to brand affinity weights: weight 1.0 contributes as
	// much as an in-budget price hit.
	brandAffinityScale = 2.0
)

// accumulator collects additive rule deltas plus one reason per fired rule,
// in firing order.
type accumulator struct {
	score   float64
	reasons []string
}

func (a *accumulator) add(delta float64, reason string) {
	a.score += delta
	a.reasons = append(a.reasons, reason)
}

// Evaluate scores one (profile, moto) pair. It is pure and total: missing
// optional fields on either side skip their rule group instead of failing,
// and the final score saturates into [0,5].
//
// Rule groups run in fixed order (experience/power, use/style, price/budget,
// numeric ranges, brand affinity) so the reason list is reproducible.
func Evaluate(profile domain.RiderProfile, moto domain.Moto) domain.EvaluationResult {
	acc := &accumulator{reasons: []string{}}

	scoreExperiencePower(acc, profile, moto)
	scoreUseStyle(acc, profile, moto)
	scorePriceBudget(acc, profile, moto)
	scoreRanges(acc, profile, moto)
	scoreBrandAffinity(acc, profile, moto)

	return domain.EvaluationResult{
		Score:   clamp(acc.score),
		Reasons: acc.reasons,
	}
}

func clamp(v float64) float64 {
	if v < scoreMin {
		return scoreMin
	}
	if v > scoreMax {
		return scoreMax
	}
	return v
}
