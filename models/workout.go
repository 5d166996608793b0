package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Segment is one ordered part of a structured workout.
type Segment struct {
	Type     string  `json:"type" validate:"required"`
	Distance float64 `json:"distance" validate:"gte=0"`
	Pace     string  `json:"pace"`
}

// Workout is a scheduled session inside a plan. (PlanID, WeekNumber, DayOfWeek)
// is unique and Sequence records generation order across the whole plan.
type Workout struct {
	bun.BaseModel `bun:"table:workouts,alias:w"`

	ID          string    `bun:"id,pk,type:uuid" json:"id"`
	PlanID      string    `bun:"plan_id,notnull,type:uuid" json:"trainingPlanId"`
	WeekNumber  int       `bun:"week_number,notnull" json:"weekNumber"`
	DayOfWeek   string    `bun:"day_of_week,notnull" json:"dayOfWeek"`
	Sequence    int       `bun:"sequence,notnull" json:"sequence"`
	WorkoutType string    `bun:"workout_type,notnull" json:"workoutType"`
	Distance    float64   `bun:"distance" json:"distance"`
	Pace        string    `bun:"pace" json:"pace"`
	Description string    `bun:"description" json:"description"`
	Segments    []Segment `bun:"segments,type:jsonb" json:"segments"`

	Completed      bool       `bun:"completed,notnull,default:false" json:"completed"`
	CompletedAt    *time.Time `bun:"completed_at" json:"completedAt"`
	ActualDistance *float64   `bun:"actual_distance" json:"actualDistance"`
	ActualPace     *string    `bun:"actual_pace" json:"actualPace"`
	ActualDuration *string    `bun:"actual_duration" json:"actualDuration"`
	Notes          *string    `bun:"notes" json:"notes"`

	Plan *Plan `bun:"rel:belongs-to,join:plan_id=id" json:"-"`
}
