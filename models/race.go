package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Race is a target event a plan builds towards.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	ID            string    `bun:"id,pk,type:uuid" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Distance      string    `bun:"distance,notnull" json:"distance"`
	Date          time.Time `bun:"date,notnull,type:date" json:"date"`
	GoalTime      string    `bun:"goal_time" json:"goalTime"`
	CourseType    string    `bun:"course_type" json:"courseType"`
	ElevationGain float64   `bun:"elevation_gain" json:"elevationGain"`
	WeatherNotes  string    `bun:"weather_notes" json:"weatherNotes"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
