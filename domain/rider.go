package domain

type ExperienceLevel string

const (
	ExperienceNovice       ExperienceLevel = "novice"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceExpert       ExperienceLevel = "expert"
)

type IntendedUse string

const (
	UseUrban   IntendedUse = "urban"
	UseRoad    IntendedUse = "road"
	UseOffroad IntendedUse = "offroad"
)

// RiderProfile holds everything a rider has declared about themselves.
// Every criterion is optional: an empty field simply means the matching
// rule groups are skipped during evaluation.
type RiderProfile struct {
	UserID string `json:"user_id"`

	Experience  ExperienceLevel `json:"experience,omitempty"`
	IntendedUse IntendedUse     `json:"intended_use,omitempty"`
	Budget      *float64        `json:"budget,omitempty"`

	PowerMin        *float64 `json:"power_min,omitempty"`
	PowerMax        *float64 `json:"power_max,omitempty"`
	DisplacementMin *float64 `json:"displacement_min,omitempty"`
	DisplacementMax *float64 `json:"displacement_max,omitempty"`
	WeightMin       *float64 `json:"weight_min,omitempty"`
	WeightMax       *float64 `json:"weight_max,omitempty"`

	// brand (lowercased) -> affinity weight in [0,1]
	BrandWeights map[string]float64 `json:"brand_weights,omitempty"`
}

// HasCriteria reports whether at least one scoring criterion is declared.
func (p RiderProfile) HasCriteria() bool {
	if p.Experience != "" || p.IntendedUse != "" || p.Budget != nil {
		return true
	}
	if p.PowerMin != nil || p.PowerMax != nil ||
		p.DisplacementMin != nil || p.DisplacementMax != nil ||
		p.WeightMin != nil || p.WeightMax != nil {
		return true
	}
	return len(p.BrandWeights) > 0
}
