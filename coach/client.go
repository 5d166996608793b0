package coach

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/archive"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/prompt"
)

// DefaultTimeout bounds a single backend call when Options.Timeout is unset.
const DefaultTimeout = 45 * time.Second

const archiveTimeout = 5 * time.Second

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	Timeout  time.Duration
	Archiver archive.Archiver
	Logger   *zap.Logger
	Now      func() time.Time
}

// Client generates plans, workout analyses and race strategies. It performs
// no persistence and never retries.
type Client struct {
	backend  Backend
	timeout  time.Duration
	archiver archive.Archiver
	log      *zap.Logger
	now      func() time.Time
}

// New creates a Client over backend.
func New(backend Backend, opts Options) *Client {
	c := &Client{
		backend:  backend,
		timeout:  opts.Timeout,
		archiver: opts.Archiver,
		log:      opts.Logger,
		now:      opts.Now,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.archiver == nil {
		c.archiver = archive.Nop{}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// GeneratePlan asks the backend for a plan and validates it. Backend failures
// are GenerationUnavailable; undecodable or inconsistent plans are
// GenerationMalformed.
func (c *Client) GeneratePlan(ctx context.Context, profile models.Profile, race models.Race, prefs models.Preferences) (*PlanDocument, error) {
	text, err := prompt.Plan(prompt.PlanInput{
		Profile:     profile,
		Race:        race,
		Preferences: prefs,
		Today:       c.now(),
	})
	if err != nil {
		return nil, err
	}

	raw, err := c.complete(ctx, PurposePlan, prompt.PlanSystem, text)
	if err != nil {
		return nil, err
	}

	doc := &PlanDocument{}
	body, err := decode(raw, doc)
	if err == nil {
		err = checkPlan(doc, prefs.TrainingDays)
	}
	if err != nil {
		return nil, c.malformed(PurposePlan, err)
	}
	doc.Raw = json.RawMessage(body)

	generationRequests.WithLabelValues(string(PurposePlan), outcomeOK).Inc()
	return doc, nil
}

// AnalyzeWorkout asks the backend for feedback on a completed workout.
func (c *Client) AnalyzeWorkout(ctx context.Context, workout models.Workout, profile models.Profile, recent []models.Activity) (*WorkoutAnalysis, error) {
	text, err := prompt.Analysis(prompt.AnalysisInput{Workout: workout, Profile: profile, Recent: recent})
	if err != nil {
		return nil, err
	}

	raw, err := c.complete(ctx, PurposeAnalysis, prompt.AnalysisSystem, text)
	if err != nil {
		return nil, err
	}

	out := &WorkoutAnalysis{}
	if _, err := decode(raw, out); err != nil {
		return nil, c.malformed(PurposeAnalysis, err)
	}
	generationRequests.WithLabelValues(string(PurposeAnalysis), outcomeOK).Inc()
	return out, nil
}

// RaceStrategy asks the backend for a race day plan informed by completed workouts.
func (c *Client) RaceStrategy(ctx context.Context, race models.Race, profile models.Profile, history []models.Workout) (*RaceStrategy, error) {
	text, err := prompt.RaceStrategy(prompt.StrategyInput{Race: race, Profile: profile, History: history})
	if err != nil {
		return nil, err
	}

	raw, err := c.complete(ctx, PurposeStrategy, prompt.StrategySystem, text)
	if err != nil {
		return nil, err
	}

	out := &RaceStrategy{}
	if _, err := decode(raw, out); err != nil {
		return nil, c.malformed(PurposeStrategy, err)
	}
	generationRequests.WithLabelValues(string(PurposeStrategy), outcomeOK).Inc()
	return out, nil
}

func (c *Client) complete(ctx context.Context, purpose Purpose, system, userPrompt string) (string, error) {
	params := samplingFor[purpose]
	req := Request{
		Purpose:     purpose,
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: userPrompt}},
		Temperature: params.temperature,
		MaxTokens:   params.maxTokens,
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	raw, err := c.backend.Complete(callCtx, req)
	elapsed := time.Since(started)
	generationDuration.WithLabelValues(string(purpose)).Observe(elapsed.Seconds())

	c.archive(ctx, archive.Transcript{
		ID:         uuid.NewString(),
		Purpose:    string(purpose),
		System:     system,
		Prompt:     userPrompt,
		Response:   raw,
		Error:      errString(err),
		StartedAt:  started,
		DurationMS: elapsed.Milliseconds(),
	})

	if err != nil {
		generationRequests.WithLabelValues(string(purpose), outcomeUnavailable).Inc()
		c.log.Warn("generation backend failed",
			zap.String("purpose", string(purpose)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return "", apperr.Unavailable(string(purpose), err)
	}

	c.log.Debug("generation backend replied",
		zap.String("purpose", string(purpose)),
		zap.Duration("elapsed", elapsed),
		zap.Int("bytes", len(raw)),
	)
	return raw, nil
}

func (c *Client) malformed(purpose Purpose, err error) error {
	generationRequests.WithLabelValues(string(purpose), outcomeMalformed).Inc()
	c.log.Warn("generation response rejected", zap.String("purpose", string(purpose)), zap.Error(err))
	return apperr.Malformed(string(purpose), err)
}

// archive hands the transcript to the archiver. Failures are logged only.
func (c *Client) archive(ctx context.Context, t archive.Transcript) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	defer cancel()
	if err := c.archiver.Put(ctx, t); err != nil {
		c.log.Warn("archive transcript failed", zap.String("key", t.Key()), zap.Error(err))
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
