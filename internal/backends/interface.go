package backends

import "context"

// Backend is the contract for an LLM generation backend. Implementations
// take a system instruction and a user prompt and return the raw response
// text; all parsing and validation happens downstream.
type Backend interface {
	GetName() string
	SupportsJSONMode() bool
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
