package domain

import "time"

// EvaluationResult is the transient outcome of scoring one (profile, moto)
// pair. Score is already clamped to [0,5]; Reasons keeps the order the
// rules fired in.
type EvaluationResult struct {
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// RankedMoto is one entry of the selector output.
type RankedMoto struct {
	MotoID  string   `json:"moto_id"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// IdealAssignment is the persisted IDEAL relationship between a rider and
// exactly one moto. A rider has at most one assignment at any time; writing
// a new one supersedes the previous one atomically.
type IdealAssignment struct {
	MotoID    string    `json:"moto_id"`
	Score     float64   `json:"score"`
	Reasons   []string  `json:"reasons"`
	CreatedAt time.Time `json:"created_at"`
}
