package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Activity is a recorded run, used as recent-history context for analysis.
type Activity struct {
	bun.BaseModel `bun:"table:activities,alias:act"`

	ID           string    `bun:"id,pk,type:uuid" json:"id"`
	AthleteID    string    `bun:"athlete_id,notnull,type:uuid" json:"userId"`
	Date         time.Time `bun:"date,notnull" json:"date"`
	ActivityType string    `bun:"activity_type,notnull" json:"type"`
	Distance     float64   `bun:"distance" json:"distance"`
	Duration     string    `bun:"duration" json:"duration"`
	Pace         string    `bun:"pace" json:"pace"`
	AvgHeartRate *int      `bun:"avg_heart_rate" json:"avgHeartRate"`
	Notes        string    `bun:"notes" json:"notes"`
	Source       string    `bun:"source,notnull,default:'manual'" json:"source"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
