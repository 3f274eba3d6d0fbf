package evaluation

import (
	"fmt"
	"strings"

	"motoMatch/domain"
)

// Rule group A: experience level vs engine power.
// Band boundaries are inclusive and checked in table order, so a power
// sitting on two bands resolves to the first (stricter) one.
func scoreExperiencePower(acc *accumulator, profile domain.RiderProfile, moto domain.Moto) {
	if profile.Experience == "" || moto.Power == nil {
		return
	}
	p := *moto.Power

	switch profile.Experience {
	case domain.ExperienceNovice:
		switch {
		case p <= 50:
			acc.add(3, fmt.Sprintf("potencia de %.0f CV adecuada para principiantes", p))
		case p <= 80:
			acc.add(1, fmt.Sprintf("potencia de %.0f CV aceptable con precaución para un principiante", p))
		default:
			acc.add(-2, fmt.Sprintf("potencia de %.0f CV excesiva para principiantes", p))
		}
	case domain.ExperienceIntermediate:
		switch {
		case p >= 50 && p <= 100:
			acc.add(3, fmt.Sprintf("potencia de %.0f CV ideal para nivel intermedio", p))
		case p > 100 && p <= 150:
			acc.add(1, fmt.Sprintf("potencia de %.0f CV adecuada para un intermedio avanzado", p))
		case p < 50:
			acc.add(-1, fmt.Sprintf("potencia de %.0f CV insuficiente para nivel intermedio", p))
		default:
			acc.add(-0.5, fmt.Sprintf("potencia de %.0f CV alta para nivel intermedio", p))
		}
	case domain.ExperienceExpert:
		switch {
		case p >= 100:
			acc.add(3, fmt.Sprintf("potencia de %.0f CV adecuada para expertos", p))
		case p >= 70:
			acc.add(1, fmt.Sprintf("potencia de %.0f CV aceptable para un experto", p))
		default:
			acc.add(-1, fmt.Sprintf("potencia de %.0f CV baja para su nivel de experiencia", p))
		}
	}
}

// Rule group B: intended use vs moto style. An unknown style contributes
// nothing, same as a missing one.
func scoreUseStyle(acc *accumulator, profile domain.RiderProfile, moto domain.Moto) {
	if profile.IntendedUse == "" || moto.Style == "" || moto.Style == domain.StyleUnknown {
		return
	}
	style := moto.Style

	switch profile.IntendedUse {
	case domain.UseUrban:
		switch style {
		case domain.StyleNaked, domain.StyleScooter:
			acc.add(3, fmt.Sprintf("estilo %s ideal para uso urbano", style))
		case domain.StyleSport, domain.StyleCustom:
			acc.add(1, fmt.Sprintf("estilo %s aceptable para uso urbano", style))
		default:
			acc.add(-0.5, fmt.Sprintf("estilo %s poco adecuado para uso urbano", style))
		}
	case domain.UseRoad:
		switch style {
		case domain.StyleSport, domain.StyleTouring:
			acc.add(3, fmt.Sprintf("estilo %s ideal para carretera", style))
		case domain.StyleNaked, domain.StyleAdventure:
			acc.add(1, fmt.Sprintf("estilo %s aceptable para carretera", style))
		default:
			acc.add(-0.5, fmt.Sprintf("estilo %s poco adecuado para carretera", style))
		}
	case domain.UseOffroad:
		switch style {
		case domain.StyleEnduro, domain.StyleCross, domain.StyleAdventure:
			acc.add(3, fmt.Sprintf("estilo %s ideal para uso offroad", style))
		case domain.StyleTrail:
			acc.add(1, fmt.Sprintf("estilo %s aceptable para uso offroad", style))
		default:
			acc.add(-1, fmt.Sprintf("estilo %s poco adecuado para uso offroad", style))
		}
	}
}

// Rule group C: price against declared budget, with a 10% tolerance band.
func scorePriceBudget(acc *accumulator, profile domain.RiderProfile, moto domain.Moto) {
	if profile.Budget == nil || moto.Price == nil {
		return
	}
	budget := *profile.Budget
	price := *moto.Price

	switch {
	case price <= budget:
		acc.add(2, fmt.Sprintf("precio de %.0f dentro del presupuesto", price))
	case price <= budget*1.1:
		acc.add(0.5, fmt.Sprintf("precio de %.0f ligeramente por encima del presupuesto", price))
	default:
		if budget > 0 {
			diff := (price - budget) / budget * 100
			acc.add(-1, fmt.Sprintf("el precio excede el presupuesto en %.1f%%", diff))
		} else {
			acc.add(-1, "el precio excede el presupuesto")
		}
	}
}

// Rule group D: quantitative slider ranges, one independent check per field.
func scoreRanges(acc *accumulator, profile domain.RiderProfile, moto domain.Moto) {
	scoreRange(acc, "potencia", "CV", moto.Power, profile.PowerMin, profile.PowerMax)
	scoreRange(acc, "cilindrada", "cc", moto.Displacement, profile.DisplacementMin, profile.DisplacementMax)
	scoreRange(acc, "peso", "kg", moto.Weight, profile.WeightMin, profile.WeightMax)
}

func scoreRange(acc *accumulator, field, unit string, value, min, max *float64) {
	if value == nil || (min == nil && max == nil) {
		return
	}
	v := *value

	inRange := (min == nil || v >= *min) && (max == nil || v <= *max)
	if inRange {
		acc.add(1.5, fmt.Sprintf("%s de %.0f %s dentro del rango solicitado", field, v, unit))
		return
	}

	// near miss: within 10% of the violated bound
	nearLow := min != nil && v < *min && v >= *min*0.9
	nearHigh := max != nil && v > *max && v <= *max*1.1
	if nearLow || nearHigh {
		acc.add(0.5, fmt.Sprintf("%s de %.0f %s cerca del rango solicitado", field, v, unit))
		return
	}

	acc.add(-1, fmt.Sprintf("%s de %.0f %s fuera del rango solicitado", field, v, unit))
}

// Rule group E: declared brand affinities, matched case-insensitively.
func scoreBrandAffinity(acc *accumulator, profile domain.RiderProfile, moto domain.Moto) {
	if len(profile.BrandWeights) == 0 || moto.Brand == "" {
		return
	}
	brand := strings.ToLower(moto.Brand)
	weight, ok := profile.BrandWeights[brand]
	if !ok {
		return
	}
	acc.add(weight*brandAffinityScale, fmt.Sprintf("afinidad con la marca %s (%.2f)", brand, weight))
}
