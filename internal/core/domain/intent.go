package domain

const unknownDescription = "Unknown"

// UserIntent is the classified communicative purpose of a visitor message.
type UserIntent string

// Available intents. Declaration order is significant: when two intents
// score identically during classification, the one declared first wins.
// AllIntents preserves this order and is the single source of truth for it.
const (
	// IntentProductInquiry is a general "what is this product" question.
	IntentProductInquiry UserIntent = "product_inquiry"

	// IntentFeatureQuestion asks about a specific capability.
	IntentFeatureQuestion UserIntent = "feature_question"

	// IntentComparison asks how the product stacks up against alternatives.
	IntentComparison UserIntent = "comparison"

	// IntentStatsROI asks for numbers: pricing, return, performance.
	IntentStatsROI UserIntent = "stats_roi"

	// IntentImplementation asks how to adopt, integrate or migrate.
	IntentImplementation UserIntent = "implementation"

	// IntentUseCase describes the visitor's own scenario. This is the most
	// tolerant intent and the fallback when classification is not confident.
	IntentUseCase UserIntent = "use_case"

	// IntentOffTopic is everything unrelated to the product.
	IntentOffTopic UserIntent = "off_topic"
)

// AllIntents lists every intent in tie-break priority order.
var AllIntents = []UserIntent{
	IntentProductInquiry,
	IntentFeatureQuestion,
	IntentComparison,
	IntentStatsROI,
	IntentImplementation,
	IntentUseCase,
	IntentOffTopic,
}

// IsValid returns true if the intent is recognised.
func (i UserIntent) IsValid() bool {
	switch i {
	case IntentProductInquiry, IntentFeatureQuestion, IntentComparison,
		IntentStatsROI, IntentImplementation, IntentUseCase, IntentOffTopic:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (i UserIntent) String() string {
	return string(i)
}

// Description returns a human-readable description of the intent.
func (i UserIntent) Description() string {
	switch i {
	case IntentProductInquiry:
		return "General product inquiry"
	case IntentFeatureQuestion:
		return "Question about a specific feature"
	case IntentComparison:
		return "Comparison against alternatives"
	case IntentStatsROI:
		return "Statistics, pricing or ROI"
	case IntentImplementation:
		return "Implementation and onboarding"
	case IntentUseCase:
		return "Visitor-specific use case"
	case IntentOffTopic:
		return "Unrelated to the product"
	default:
		return unknownDescription
	}
}

// IntentClassification is the classifier's verdict for one message.
// It is created fresh per request and never mutated.
type IntentClassification struct {
	// Intent is the winning intent.
	Intent UserIntent `json:"intent"`

	// Confidence is in [0,1]. It reflects how dominant the winning
	// intent's score was relative to the total signal mass.
	Confidence float64 `json:"confidence"`

	// MatchedPatterns lists the pattern identifiers that contributed to
	// the winning intent's score, in check order. Empty only when
	// classification fell back to a heuristic rule.
	MatchedPatterns []string `json:"matched_patterns,omitempty"`

	// Reasoning is a human-readable explanation of the verdict.
	Reasoning string `json:"reasoning"`
}
