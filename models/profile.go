package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Profile describes an athlete's current fitness and training preferences.
// It is read-only input to plan generation.
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:prf"`

	AthleteID     string    `bun:"athlete_id,pk,type:uuid" json:"athleteId"`
	Experience    string    `bun:"experience,notnull" json:"experience"`
	CurrentPace   string    `bun:"current_pace,notnull" json:"currentPace"`
	TargetPace    string    `bun:"target_pace" json:"targetPace"`
	WeeklyMileage float64   `bun:"weekly_mileage,notnull" json:"weeklyMileage"`
	Age           int       `bun:"age" json:"age"`
	Gender        string    `bun:"gender" json:"gender"`
	InjuryHistory string    `bun:"injury_history" json:"injuryHistory"`
	PreferredDays []string  `bun:"preferred_days,array" json:"preferredDays"`
	PreferredTime string    `bun:"preferred_time" json:"preferredTime"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// Preferences are the per-request knobs sent with a plan generation request.
type Preferences struct {
	TrainingDays  int    `json:"trainingDays" validate:"gte=0,lte=7"`
	PreferredTime string `json:"preferredTime"`
	InjuryHistory string `json:"injuryHistory"`
}
