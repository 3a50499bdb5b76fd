package driven

import "context"

// LLMService is the text-generation backend behind the page pipeline.
// The system prompt travels separately from the user prompt so backends
// can cache the large static instruction block across repeated calls
// with the same intent.
//
// Implementations may include:
//   - Anthropic (Claude)
//   - OpenAI (GPT-4o family)
//
// Implementations must be safe for concurrent use: the calling layer
// dispatches the chat reply and the page generation as two concurrent
// completions over the same client.
type LLMService interface {
	// Complete produces one completion for the given prompts.
	// It fails on transport failure, a non-text response, or empty
	// content; failures wrap domain.ErrTransport.
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompletionOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// CompletionOptions configures one completion call.
type CompletionOptions struct {
	// MaxTokens bounds the output length.
	MaxTokens int

	// Temperature controls randomness. Page generation uses a moderate
	// value favouring content variety over determinism.
	Temperature float64

	// CacheSystemPrompt hints the backend to cache the system prompt.
	CacheSystemPrompt bool
}
