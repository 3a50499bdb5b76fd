package driving

import (
	"context"

	"github.com/custodia-labs/pageforge/internal/core/domain"
)

// PageGenerator turns a page generation request into a validated page
// document. It never returns an error: every failure mode collapses into
// the GenerationResult.
type PageGenerator interface {
	// Generate runs the full pipeline for one request. Safe to call
	// concurrently, including alongside unrelated completions sharing
	// the same LLM client.
	Generate(ctx context.Context, req domain.PageGenerationRequest) domain.GenerationResult

	// GenerateBatch runs one independent pipeline per request, fanned out
	// concurrently, and returns results in input order.
	GenerateBatch(ctx context.Context, reqs []domain.PageGenerationRequest) []domain.GenerationResult
}

// IntentClassifier classifies visitor messages. Exposed as a driving port
// so callers can precompute intents or inspect classification directly.
type IntentClassifier interface {
	// Classify is deterministic and total: it always returns a result.
	Classify(message string) domain.IntentClassification

	// IsConfident reports whether the result clears the per-intent
	// confidence threshold.
	IsConfident(result domain.IntentClassification) bool

	// EffectiveIntent returns the result's intent, remapped to use_case
	// when the result is not confident.
	EffectiveIntent(result domain.IntentClassification) domain.UserIntent
}
