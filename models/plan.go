package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Phase is the training block a plan is currently in.
type Phase string

const (
	PhaseBase  Phase = "base"
	PhaseBuild Phase = "build"
	PhasePeak  Phase = "peak"
	PhaseTaper Phase = "taper"
)

// Phases lists every phase in training order.
var Phases = []Phase{PhaseBase, PhaseBuild, PhasePeak, PhaseTaper}

// ParsePhase normalises s and reports whether it names a known phase.
func ParsePhase(s string) (Phase, bool) {
	p := Phase(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Phases {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// Plan is a generated multi-week schedule for one race. PlanData keeps the
// generated payload verbatim.
type Plan struct {
	bun.BaseModel `bun:"table:plans,alias:pl"`

	ID         string          `bun:"id,pk,type:uuid" json:"id"`
	AthleteID  string          `bun:"athlete_id,notnull,type:uuid" json:"userId"`
	RaceID     string          `bun:"race_id,notnull,type:uuid" json:"raceId"`
	StartDate  time.Time       `bun:"start_date,notnull" json:"startDate"`
	RaceDate   time.Time       `bun:"race_date,notnull,type:date" json:"raceDate"`
	TotalWeeks int             `bun:"total_weeks,notnull" json:"totalWeeks"`
	Phase      Phase           `bun:"phase,notnull" json:"phase"`
	PlanData   json.RawMessage `bun:"plan_data,notnull,type:jsonb" json:"planData"`
	CreatedAt  time.Time       `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`

	Race     *Race      `bun:"rel:belongs-to,join:race_id=id" json:"race,omitempty"`
	Workouts []*Workout `bun:"rel:has-many,join:id=plan_id" json:"workouts,omitempty"`
}
