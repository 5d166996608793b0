package coach

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// stripFences removes a surrounding markdown code fence, with or without a
// language tag, which models tend to add even when asked not to.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// decode strips fences, unmarshals into v and runs struct validation.
// It returns the body that was decoded.
func decode(raw string, v any) (string, error) {
	body := stripFences(raw)
	if body == "" {
		return "", errors.New("empty response")
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return "", fmt.Errorf("schema: %w", err)
	}
	return body, nil
}

// checkPlan enforces the cross-field rules of a plan. Week phases are
// normalised to lower case in place. trainingDays <= 0 skips the per-week count.
func checkPlan(doc *PlanDocument, trainingDays int) error {
	ov := doc.PlanOverview
	if sum := ov.Phases.Weeks(); ov.TotalWeeks != sum {
		return fmt.Errorf("totalWeeks %d does not match phase weeks %d", ov.TotalWeeks, sum)
	}
	if len(doc.WeeklyPlans) != ov.TotalWeeks {
		return fmt.Errorf("totalWeeks %d but %d weekly plans", ov.TotalWeeks, len(doc.WeeklyPlans))
	}

	for i := range doc.WeeklyPlans {
		w := &doc.WeeklyPlans[i]
		if w.Week != i+1 {
			return fmt.Errorf("weeklyPlans[%d]: expected week %d, got %d", i, i+1, w.Week)
		}
		phase, ok := models.ParsePhase(w.Phase)
		if !ok {
			return fmt.Errorf("week %d: unknown phase %q", w.Week, w.Phase)
		}
		w.Phase = string(phase)

		days := make(map[string]struct{}, len(w.Workouts))
		for _, wo := range w.Workouts {
			day := strings.ToLower(strings.TrimSpace(wo.Day))
			if _, dup := days[day]; dup {
				return fmt.Errorf("week %d: day %q scheduled twice", w.Week, wo.Day)
			}
			days[day] = struct{}{}
		}

		if trainingDays > 0 {
			if n := w.ActiveWorkouts(); n != trainingDays {
				return fmt.Errorf("week %d: %d training days, expected %d", w.Week, n, trainingDays)
			}
		}
	}
	return nil
}
