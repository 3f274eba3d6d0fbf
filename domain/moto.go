package domain

import (
	"strings"
	"time"
)

// CREATE TABLE public.motos (
//     id            TEXT PRIMARY KEY,
//     brand         TEXT NOT NULL,
//     model         TEXT NOT NULL,
//     style         TEXT NOT NULL DEFAULT 'unknown',
//     power         NUMERIC,
//     price         NUMERIC,
//     displacement  NUMERIC,
//     weight        NUMERIC,
//     year          INT,
//     created_at    TIMESTAMPTZ DEFAULT NOW()
// );

type MotoStyle string

const (
	StyleNaked     MotoStyle = "naked"
	StyleSport     MotoStyle = "sport"
	StyleTouring   MotoStyle = "touring"
	StyleAdventure MotoStyle = "adventure"
	StyleCruiser   MotoStyle = "cruiser"
	StyleScooter   MotoStyle = "scooter"
	StyleEnduro    MotoStyle = "enduro"
	StyleCross     MotoStyle = "cross"
	StyleTrail     MotoStyle = "trail"
	StyleCustom    MotoStyle = "custom"
	StyleUnknown   MotoStyle = "unknown"
)

// ParseMotoStyle maps free-form catalog input onto a known style.
// Anything unrecognized becomes StyleUnknown, never an error.
func ParseMotoStyle(s string) MotoStyle {
	switch MotoStyle(strings.ToLower(strings.TrimSpace(s))) {
	case StyleNaked, StyleSport, StyleTouring, StyleAdventure, StyleCruiser,
		StyleScooter, StyleEnduro, StyleCross, StyleTrail, StyleCustom:
		return MotoStyle(strings.ToLower(strings.TrimSpace(s)))
	default:
		return StyleUnknown
	}
}

type Moto struct {
	ID           string    `gorm:"column:id;primaryKey" json:"moto_id"`
	Brand        string    `gorm:"column:brand;not null" json:"brand"`
	Model        string    `gorm:"column:model;not null" json:"model"`
	Style        MotoStyle `gorm:"column:style;not null;default:unknown" json:"style"`
	Power        *float64  `gorm:"column:power;type:numeric" json:"power,omitempty"`
	Price        *float64  `gorm:"column:price;type:numeric" json:"price,omitempty"`
	Displacement *float64  `gorm:"column:displacement;type:numeric" json:"displacement,omitempty"`
	Weight       *float64  `gorm:"column:weight;type:numeric" json:"weight,omitempty"`
	Year         *int      `gorm:"column:year" json:"year,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Moto) TableName() string {
	return "motos"
}
