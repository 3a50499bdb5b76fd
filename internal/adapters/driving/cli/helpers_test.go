package cli

import (
	"context"

	"github.com/custodia-labs/pageforge/internal/core/domain"
	"github.com/custodia-labs/pageforge/internal/core/ports/driving"
	"github.com/custodia-labs/pageforge/internal/core/services"
)

// mockGenerator returns a canned result without touching any backend.
type mockGenerator struct {
	result   domain.GenerationResult
	lastReq  domain.PageGenerationRequest
	requests []domain.PageGenerationRequest
}

var _ driving.PageGenerator = (*mockGenerator)(nil)

func (m *mockGenerator) Generate(_ context.Context, req domain.PageGenerationRequest) domain.GenerationResult {
	m.lastReq = req
	m.requests = append(m.requests, req)
	return m.result
}

func (m *mockGenerator) GenerateBatch(ctx context.Context, reqs []domain.PageGenerationRequest) []domain.GenerationResult {
	results := make([]domain.GenerationResult, len(reqs))
	for i, req := range reqs {
		results[i] = m.Generate(ctx, req)
	}
	return results
}

func successResult() domain.GenerationResult {
	return domain.GenerationResult{
		Success: true,
		Page: &domain.PageDocument{
			Type:        domain.PageProductOverview,
			Title:       "Distribution Without The Spreadsheets",
			Description: "How independent craft producers run wholesale and taproom sales from one place.",
			Sections: []domain.Section{
				&domain.HeroSection{
					Headline:  "Solve Your Distribution Challenges Today",
					CTAButton: &domain.CTAButton{Text: "Book a demo"},
					Layout:    &domain.SectionLayout{RequestedHeightPercent: 35},
				},
				&domain.CTASection{
					Headline:   "Start your first route this week",
					ButtonText: "Get started",
					Layout:     &domain.SectionLayout{RequestedHeightPercent: 25},
				},
			},
		},
		RetryCount:       1,
		GenerationTimeMs: 12,
	}
}

// setupTestServices wires a mock generator and a real classifier into the
// package-level command services, returning the mock and a cleanup func.
func setupTestServices() (*mockGenerator, func()) {
	gen := &mockGenerator{result: successResult()}
	SetServices(gen, services.NewClassifier(nil), nil)
	return gen, func() {
		SetServices(nil, nil, nil)
	}
}
