package domain

// KnowledgeDocument is an externally supplied knowledge snippet. The core
// treats it as opaque context: only Content (truncated) and SimilarityScore
// reach the generation prompt.
type KnowledgeDocument struct {
	ID              string   `json:"id"`
	Content         string   `json:"content"`
	SimilarityScore float64  `json:"similarity_score"`
	Tags            []string `json:"tags,omitempty"`
}

// ChatTurn is one prior message of the conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PageContext describes what the visitor was looking at when they asked.
type PageContext struct {
	Context string `json:"context"`
	Source  string `json:"source"`
	Text    string `json:"text"`
}

// PageGenerationRequest is the orchestrator's sole input. All fields other
// than UserMessage and PageType are optional signals.
type PageGenerationRequest struct {
	// UserMessage is the raw visitor message.
	UserMessage string

	// PageType is the kind of page the caller wants.
	PageType PageType

	// Persona is a bag of numeric scores from the upstream persona
	// detector. Consumed as-is; never produced here.
	Persona map[string]float64

	// KnowledgeDocuments are pre-fetched snippets. When empty and a
	// knowledge service is configured, the orchestrator fetches its own.
	KnowledgeDocuments []KnowledgeDocument

	// ConversationHistory is prior chat context, oldest first.
	ConversationHistory []ChatTurn

	// PageContext is the click/interaction context, if any.
	PageContext *PageContext

	// InteractionSource names the UI element that triggered the request.
	InteractionSource string

	// PrecomputedIntent skips classification when set.
	PrecomputedIntent *UserIntent

	// SessionID keys content memory. Empty disables memory.
	SessionID string
}

// GenerationResult is the orchestrator's sole output type. No error ever
// crosses the orchestrator boundary: every failure mode collapses into
// this structure. Partial success is not representable.
type GenerationResult struct {
	// Success reports whether Page holds a fully valid document.
	Success bool

	// Page is the validated, sanitized document. Nil unless Success.
	Page *PageDocument

	// Error names the terminal cause when Success is false.
	Error string

	// RetryCount is the number of retries consumed (not total attempts).
	RetryCount int

	// GenerationTimeMs is wall-clock time for the whole pipeline.
	GenerationTimeMs int64
}
