// Package coach talks to the generation backend: it renders prompts, sends
// them with fixed sampling settings, and decodes and validates the replies.
package coach

import "context"

// Purpose identifies which document a request asks for.
type Purpose string

const (
	PurposePlan     Purpose = "plan"
	PurposeAnalysis Purpose = "analysis"
	PurposeStrategy Purpose = "strategy"
)

// Role tags a message in the conversation sent to the backend.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Request is one completion call. The backend is expected to return JSON text.
type Request struct {
	Purpose     Purpose
	System      string
	Messages    []Message
	Temperature float32
	MaxTokens   int32
}

// Backend produces free text for a request.
type Backend interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, req Request) (string, error)

func (f BackendFunc) Complete(ctx context.Context, req Request) (string, error) { return f(ctx, req) }

type sampling struct {
	temperature float32
	maxTokens   int32
}

var samplingFor = map[Purpose]sampling{
	PurposePlan:     {temperature: 0.7, maxTokens: 4000},
	PurposeAnalysis: {temperature: 0.8, maxTokens: 1000},
	PurposeStrategy: {temperature: 0.6, maxTokens: 2000},
}
