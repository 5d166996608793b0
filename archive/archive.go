// Package archive stores generation transcripts for audit and prompt replay.
package archive

import (
	"context"
	"fmt"
	"time"
)

// Transcript is one prompt/response exchange with the generation backend.
type Transcript struct {
	ID         string    `json:"id"`
	Purpose    string    `json:"purpose"`
	System     string    `json:"system"`
	Prompt     string    `json:"prompt"`
	Response   string    `json:"response,omitempty"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	DurationMS int64     `json:"durationMs"`
}

// Key is the object key a transcript is written under.
func (t Transcript) Key() string {
	return fmt.Sprintf("transcripts/%s/%s/%s.json", t.Purpose, t.StartedAt.UTC().Format(time.DateOnly), t.ID)
}

// Archiver persists transcripts.
type Archiver interface {
	Put(ctx context.Context, t Transcript) error
}

// Nop discards transcripts.
type Nop struct{}

func (Nop) Put(context.Context, Transcript) error { return nil }
