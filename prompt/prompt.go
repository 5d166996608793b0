// Package prompt renders the instruction documents sent to the generation
// backend. Rendering is pure: the same input always yields the same text.
package prompt

import (
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
)

// System personas sent alongside each prompt.
const (
	PlanSystem     = "You are an expert running coach with 20+ years of experience. Generate detailed, personalized training plans that are safe, progressive, and effective."
	AnalysisSystem = "You are a supportive running coach. Analyze workouts and provide encouraging, actionable feedback."
	StrategySystem = "You are an expert race strategist. Create detailed, personalized race plans that maximize performance while staying safe."
)

const unspecified = "not specified"

var (
	//go:embed templates/*.tmpl
	templateFS embed.FS

	//go:embed schemas/plan.json
	PlanSchema string
	//go:embed schemas/analysis.json
	AnalysisSchema string
	//go:embed schemas/strategy.json
	StrategySchema string

	templates = template.Must(template.New("prompt").Funcs(template.FuncMap{
		"text":    text,
		"num":     num,
		"date":    date,
		"list":    list,
		"optnum":  optnum,
		"opttext": opttext,
		"deref":   func(p *int) int { return *p },
	}).ParseFS(templateFS, "templates/*.tmpl"))
)

// PlanInput is everything a plan prompt is rendered from. Today is supplied
// by the caller so rendering never reads the clock.
type PlanInput struct {
	Profile     models.Profile
	Race        models.Race
	Preferences models.Preferences
	Today       time.Time
}

// AnalysisInput carries a completed workout, its owner's profile and their
// most recent activities, newest first.
type AnalysisInput struct {
	Workout models.Workout
	Profile models.Profile
	Recent  []models.Activity
}

// StrategyInput carries a race, the runner's profile and completed workouts.
type StrategyInput struct {
	Race    models.Race
	Profile models.Profile
	History []models.Workout
}

// Plan renders the plan generation prompt.
func Plan(in PlanInput) (string, error) {
	return render("plan.tmpl", struct {
		PlanInput
		Schema string
	}{in, PlanSchema})
}

// Analysis renders the workout analysis prompt.
func Analysis(in AnalysisInput) (string, error) {
	return render("analysis.tmpl", struct {
		AnalysisInput
		Schema string
	}{in, AnalysisSchema})
}

// RaceStrategy renders the race strategy prompt.
func RaceStrategy(in StrategyInput) (string, error) {
	return render("strategy.tmpl", struct {
		StrategyInput
		Schema string
	}{in, StrategySchema})
}

func render(name string, data any) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("prompt: render %s: %w", name, err)
	}
	return b.String(), nil
}

func text(s string) string {
	if strings.TrimSpace(s) == "" {
		return unspecified
	}
	return s
}

// num uses the shortest representation that round-trips, so 20 renders as "20"
// and 13.1 as "13.1".
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func date(t time.Time) string {
	if t.IsZero() {
		return unspecified
	}
	return t.UTC().Format(time.DateOnly)
}

func list(items []string) string {
	if len(items) == 0 {
		return unspecified
	}
	return strings.Join(items, ", ")
}

func optnum(f *float64) string {
	if f == nil {
		return "not recorded"
	}
	return num(*f)
}

func opttext(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "not recorded"
	}
	return *s
}
