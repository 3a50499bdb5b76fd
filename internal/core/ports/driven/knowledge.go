package driven

import (
	"context"

	"github.com/custodia-labs/pageforge/internal/core/domain"
)

// KnowledgeService looks up knowledge snippets relevant to a query.
// This is an optional service - when nil, prompts are built without
// knowledge grounding.
type KnowledgeService interface {
	// TopKRelevant returns up to k documents ordered by relevance.
	TopKRelevant(ctx context.Context, query string, k int) ([]domain.KnowledgeDocument, error)
}
