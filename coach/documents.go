package coach

import (
	"encoding/json"
	"strings"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
)

// PlanDocument is a generated training plan. Raw holds the response body
// exactly as decoded and is what gets persisted as plan data.
type PlanDocument struct {
	PlanOverview PlanOverview `json:"planOverview"`
	WeeklyPlans  []WeekPlan   `json:"weeklyPlans" validate:"required,min=1,dive"`

	Raw json.RawMessage `json:"-"`
}

type PlanOverview struct {
	TotalWeeks int    `json:"totalWeeks" validate:"gt=0"`
	Phases     Phases `json:"phases"`
}

type Phases struct {
	Base  PhaseSummary `json:"base"`
	Build PhaseSummary `json:"build"`
	Peak  PhaseSummary `json:"peak"`
	Taper PhaseSummary `json:"taper"`
}

// Weeks sums the week counts of all four phases.
func (p Phases) Weeks() int {
	return p.Base.Weeks + p.Build.Weeks + p.Peak.Weeks + p.Taper.Weeks
}

type PhaseSummary struct {
	Weeks       int    `json:"weeks" validate:"gte=0"`
	Description string `json:"description"`
}

type WeekPlan struct {
	Week         int              `json:"week" validate:"gt=0"`
	Phase        string           `json:"phase" validate:"required"`
	TotalMileage float64          `json:"totalMileage" validate:"gte=0"`
	Workouts     []PlannedWorkout `json:"workouts" validate:"dive"`
}

// ActiveWorkouts counts the non-rest entries of the week.
func (w WeekPlan) ActiveWorkouts() int {
	n := 0
	for _, wo := range w.Workouts {
		if !wo.IsRest() {
			n++
		}
	}
	return n
}

type PlannedWorkout struct {
	Day         string           `json:"day" validate:"required"`
	Type        string           `json:"type" validate:"required"`
	Distance    float64          `json:"distance" validate:"gte=0"`
	Pace        string           `json:"pace"`
	Description string           `json:"description"`
	Segments    []models.Segment `json:"segments" validate:"dive"`
}

// IsRest reports whether the entry is a rest day rather than a session.
func (w PlannedWorkout) IsRest() bool {
	switch strings.ToLower(strings.TrimSpace(w.Type)) {
	case "rest", "rest day", "off", "day off":
		return true
	}
	return false
}

// WorkoutAnalysis is generated feedback on a completed workout.
type WorkoutAnalysis struct {
	Analysis struct {
		Performance     string   `json:"performance" validate:"required"`
		PaceAnalysis    string   `json:"paceAnalysis" validate:"required"`
		EffortLevel     string   `json:"effortLevel"`
		Recommendations []string `json:"recommendations"`
	} `json:"analysis"`
	Insights struct {
		Trends       string `json:"trends"`
		Improvements string `json:"improvements"`
		NextSteps    string `json:"nextSteps"`
	} `json:"insights"`
	Motivation struct {
		Message      string   `json:"message" validate:"required"`
		Achievements []string `json:"achievements"`
	} `json:"motivation"`
}

// RaceStrategy is a generated pacing, nutrition and mental plan for race day.
type RaceStrategy struct {
	Strategy struct {
		Pacing struct {
			StartPace  string `json:"startPace"`
			TargetPace string `json:"targetPace" validate:"required"`
			FinishPace string `json:"finishPace"`
			Notes      string `json:"notes"`
		} `json:"pacing"`
		Nutrition struct {
			PreRace    string `json:"preRace"`
			DuringRace string `json:"duringRace"`
			Hydration  string `json:"hydration"`
		} `json:"nutrition"`
		Mental struct {
			KeyPoints  []string `json:"keyPoints"`
			Motivation string   `json:"motivation"`
		} `json:"mental"`
	} `json:"strategy"`
	CourseStrategy struct {
		Hills   string `json:"hills"`
		Weather string `json:"weather"`
		Crowds  string `json:"crowds"`
	} `json:"courseStrategy"`
}
