package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/pageforge/internal/core/domain"
	"github.com/custodia-labs/pageforge/internal/core/ports/driven"
)

// Ensure KnowledgeService implements the interface.
var _ driven.KnowledgeService = (*KnowledgeService)(nil)

// KnowledgeService scores stored documents against a query by keyword
// overlap. It stands in for a real retrieval backend and is primarily
// used by tests and local runs where no vector store is available.
type KnowledgeService struct {
	mu   sync.RWMutex
	docs []domain.KnowledgeDocument
}

// NewKnowledgeService creates a knowledge service seeded with the given
// documents. Documents may be added later with Add.
func NewKnowledgeService(docs []domain.KnowledgeDocument) *KnowledgeService {
	return &KnowledgeService{
		docs: append([]domain.KnowledgeDocument(nil), docs...),
	}
}

// Add stores a document for later retrieval.
func (s *KnowledgeService) Add(doc domain.KnowledgeDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
}

// TopKRelevant returns up to k documents ordered by descending overlap
// score. Documents with no term overlap are omitted.
func (s *KnowledgeService) TopKRelevant(_ context.Context, query string, k int) ([]domain.KnowledgeDocument, error) {
	if k <= 0 || strings.TrimSpace(query) == "" {
		return nil, nil
	}

	queryTerms := tokenize(query)
	if len(queryTerms) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	scored := make([]domain.KnowledgeDocument, 0, len(s.docs))
	for _, doc := range s.docs {
		score := overlapScore(queryTerms, doc)
		if score <= 0 {
			continue
		}
		doc.SimilarityScore = score
		scored = append(scored, doc)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].SimilarityScore > scored[j].SimilarityScore
	})
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// overlapScore is the fraction of query terms found in the document's
// content or tags, in [0, 1].
func overlapScore(queryTerms map[string]bool, doc domain.KnowledgeDocument) float64 {
	content := strings.ToLower(doc.Content)
	tags := make(map[string]bool, len(doc.Tags))
	for _, t := range doc.Tags {
		tags[strings.ToLower(t)] = true
	}

	matched := 0
	for term := range queryTerms {
		if tags[term] || strings.Contains(content, term) {
			matched++
		}
	}
	return float64(matched) / float64(len(queryTerms))
}

// tokenize lowercases and splits on non-letter/digit runes, dropping
// terms too short to carry signal.
func tokenize(s string) map[string]bool {
	terms := make(map[string]bool)
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	for _, f := range fields {
		if len(f) >= 3 {
			terms[f] = true
		}
	}
	return terms
}
