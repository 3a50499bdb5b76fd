package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pageforge/internal/core/domain"
	"github.com/custodia-labs/pageforge/internal/core/ports/driven"
)

// mockLLM implements driven.LLMService for testing. Responses are scripted
// per call; after the script runs out the last entry repeats.
type mockLLM struct {
	mu            sync.Mutex
	responses     []string
	errs          []error
	calls         int
	systemPrompts []string
	userPrompts   []string
	respond       func(system, user string) (string, error)
}

func (m *mockLLM) Complete(_ context.Context, systemPrompt, userPrompt string, _ driven.CompletionOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.systemPrompts = append(m.systemPrompts, systemPrompt)
	m.userPrompts = append(m.userPrompts, userPrompt)
	i := m.calls
	m.calls++

	if m.respond != nil {
		return m.respond(systemPrompt, userPrompt)
	}
	if i < len(m.errs) && m.errs[i] != nil {
		return "", m.errs[i]
	}
	if i < len(m.responses) {
		return m.responses[i], nil
	}
	return m.responses[len(m.responses)-1], nil
}

func (m *mockLLM) ModelName() string             { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error  { return nil }
func (m *mockLLM) Close() error                  { return nil }

func (m *mockLLM) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// freeFormConfig disables the template-fill fast path so tests exercise
// the retry loop directly.
func freeFormConfig() *mockConfigStore {
	return &mockConfigStore{values: map[string]any{
		"generation.template_fill": false,
	}}
}

func newTestGenerator(llm driven.LLMService, memory driven.ContentMemory, cfg driven.ConfigStore) *GeneratorService {
	classifier := NewClassifier(nil)
	prompts := NewPromptBuilder(memory, nil)
	return NewGeneratorService(llm, classifier, prompts, memory, nil, cfg)
}

func validDocJSON(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(validPage())
	require.NoError(t, err)
	return string(data)
}

func invalidDocJSON(t *testing.T) string {
	t.Helper()
	doc := validPage()
	doc.Sections[0].(*domain.HeroSection).Headline = "Hi"
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(data)
}

func TestGenerateWithoutBackendFails(t *testing.T) {
	s := newTestGenerator(nil, nil, nil)

	result := s.Generate(context.Background(), baseRequest())

	assert.False(t, result.Success)
	assert.Nil(t, result.Page)
	assert.Equal(t, domain.ErrLLMUnavailable.Error(), result.Error)
}

func TestGenerateSucceedsFirstAttempt(t *testing.T) {
	llm := &mockLLM{responses: []string{validDocJSON(t)}}
	s := newTestGenerator(llm, nil, freeFormConfig())

	result := s.Generate(context.Background(), baseRequest())

	require.True(t, result.Success, result.Error)
	require.NotNil(t, result.Page)
	assert.Equal(t, 0, result.RetryCount)
	assert.Empty(t, result.Error)
	assert.Equal(t, 1, llm.callCount())
	assert.GreaterOrEqual(t, result.GenerationTimeMs, int64(0))
}

func TestGenerateRetriesWithCorrectiveFeedback(t *testing.T) {
	llm := &mockLLM{responses: []string{invalidDocJSON(t), validDocJSON(t)}}
	s := newTestGenerator(llm, nil, freeFormConfig())

	result := s.Generate(context.Background(), baseRequest())

	require.True(t, result.Success, result.Error)
	assert.Equal(t, 1, result.RetryCount)
	require.Equal(t, 2, llm.callCount())

	// The retry prompt carries the previous attempt's violations.
	assert.NotContains(t, llm.userPrompts[0], "rejected for these reasons")
	assert.Contains(t, llm.userPrompts[1], "rejected for these reasons")
	assert.Contains(t, llm.userPrompts[1], "sections[0].headline")
}

func TestGenerateExhaustsRetryBudget(t *testing.T) {
	llm := &mockLLM{responses: []string{invalidDocJSON(t)}}
	s := newTestGenerator(llm, nil, freeFormConfig())

	result := s.Generate(context.Background(), baseRequest())

	assert.False(t, result.Success)
	assert.Nil(t, result.Page)
	assert.Equal(t, DefaultMaxRetries, result.RetryCount)
	// Budget of 2 retries means 3 attempts in total.
	assert.Equal(t, DefaultMaxRetries+1, llm.callCount())
	assert.Contains(t, result.Error, "sections[0].headline")
}

func TestGenerateParseFailureFeedback(t *testing.T) {
	llm := &mockLLM{responses: []string{"I'm sorry, I can't produce JSON today.", validDocJSON(t)}}
	s := newTestGenerator(llm, nil, freeFormConfig())

	result := s.Generate(context.Background(), baseRequest())

	require.True(t, result.Success, result.Error)
	assert.Equal(t, 1, result.RetryCount)
	assert.Contains(t, llm.userPrompts[1], "not parseable JSON")
}

func TestGenerateTransportErrorRetriesWithoutFeedback(t *testing.T) {
	llm := &mockLLM{
		errs:      []error{errors.New("connection reset")},
		responses: []string{"", validDocJSON(t)},
	}
	s := newTestGenerator(llm, nil, freeFormConfig())

	result := s.Generate(context.Background(), baseRequest())

	require.True(t, result.Success, result.Error)
	assert.Equal(t, 1, result.RetryCount)
	// Transport failures carry no corrective feedback into the retry.
	assert.NotContains(t, llm.userPrompts[1], "rejected for these reasons")
}

func TestGeneratePrecomputedIntentSkipsClassification(t *testing.T) {
	llm := &mockLLM{responses: []string{validDocJSON(t)}}
	s := newTestGenerator(llm, nil, freeFormConfig())

	intent := domain.IntentComparison
	req := baseRequest()
	req.UserMessage = "tell me about the brewline platform" // classifies as product_inquiry
	req.PrecomputedIntent = &intent

	result := s.Generate(context.Background(), req)

	require.True(t, result.Success, result.Error)
	assert.Contains(t, llm.systemPrompts[0], "VISITOR INTENT: comparison")
	assert.Contains(t, llm.systemPrompts[0], string(domain.SectionComparisonTable))
}

func TestGenerateInvalidPrecomputedIntentFallsBackToClassifier(t *testing.T) {
	llm := &mockLLM{responses: []string{validDocJSON(t)}}
	s := newTestGenerator(llm, nil, freeFormConfig())

	bogus := domain.UserIntent("made_up")
	req := baseRequest()
	req.PrecomputedIntent = &bogus

	result := s.Generate(context.Background(), req)

	require.True(t, result.Success, result.Error)
	assert.Contains(t, llm.systemPrompts[0], "VISITOR INTENT: product_inquiry")
}

func TestGenerateTracksContentMemory(t *testing.T) {
	llm := &mockLLM{responses: []string{validDocJSON(t)}}
	memory := &mockContentMemory{}
	s := newTestGenerator(llm, memory, freeFormConfig())

	req := baseRequest()
	req.SessionID = "sess-42"

	result := s.Generate(context.Background(), req)

	require.True(t, result.Success, result.Error)
	require.Equal(t, []string{"sess-42"}, memory.trackedSessions)
	assert.Equal(t, "Solve Your Distribution Challenges Today", memory.trackedHeadline)
	assert.Equal(t, []string{"Route planning", "Live inventory"}, memory.trackedTitles)
}

func TestGenerateNoSessionSkipsMemory(t *testing.T) {
	llm := &mockLLM{responses: []string{validDocJSON(t)}}
	memory := &mockContentMemory{}
	s := newTestGenerator(llm, memory, freeFormConfig())

	result := s.Generate(context.Background(), baseRequest())

	require.True(t, result.Success, result.Error)
	assert.Empty(t, memory.trackedSessions)
}

func TestGenerateBatchPreservesInputOrder(t *testing.T) {
	valid := validDocJSON(t)
	llm := &mockLLM{respond: func(_, user string) (string, error) {
		// The middle request is sabotaged; its slot must fail while the
		// surrounding slots succeed.
		if strings.Contains(user, "sabotage") {
			return "no json here", nil
		}
		return valid, nil
	}}
	s := newTestGenerator(llm, nil, freeFormConfig())

	reqs := []domain.PageGenerationRequest{
		{UserMessage: "tell me about brewline", PageType: domain.PageProductOverview},
		{UserMessage: "sabotage", PageType: domain.PageProductOverview},
		{UserMessage: "i run a small brewery", PageType: domain.PageSolutionBrief},
	}

	results := s.GenerateBatch(context.Background(), reqs)

	require.Len(t, results, 3)
	assert.True(t, results[0].Success, results[0].Error)
	assert.False(t, results[1].Success)
	assert.True(t, results[2].Success, results[2].Error)
}

func TestGenerateSanitizesAcceptedDocument(t *testing.T) {
	// Validation ignores layout heights entirely; the sanitizer clamps
	// them on the accepted document.
	doc := validPage()
	doc.Sections[0].(*domain.HeroSection).Layout.RequestedHeightPercent = 150
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	llm := &mockLLM{responses: []string{string(data)}}
	s := newTestGenerator(llm, nil, freeFormConfig())

	result := s.Generate(context.Background(), baseRequest())

	require.True(t, result.Success, result.Error)
	hint := result.Page.Sections[0].LayoutHint()
	require.NotNil(t, hint)
	assert.InDelta(t, float64(domain.HeightPercentMax), hint.RequestedHeightPercent, 0.001)
}

func TestGenerateTemplateFillFastPath(t *testing.T) {
	content := `{
		"title": "Distribution Without The Spreadsheets",
		"description": "How independent craft producers run wholesale, self-distribution and taproom sales from one place.",
		"sections": [
			{"headline": "Solve Your Distribution Challenges Today", "subheadline": "One platform for orders, routes and invoices."},
			{"features": [
				{"title": "Route planning", "description": "Plan delivery runs around keg returns and standing orders."},
				{"title": "Live inventory", "description": "Taproom and warehouse stock reconciled as orders land."}
			]},
			{"headline": "Start your first route this week", "buttonText": "Get started"}
		]
	}`
	llm := &mockLLM{responses: []string{content}}
	s := newTestGenerator(llm, nil, nil) // template fill on by default

	result := s.Generate(context.Background(), baseRequest())

	require.True(t, result.Success, result.Error)
	assert.Equal(t, 0, result.RetryCount)
	assert.Equal(t, 1, llm.callCount(), "fast path uses a single call")

	// Section tags and heights come from the plan, not the response.
	plan := StrategyFor(domain.IntentProductInquiry)
	require.Len(t, result.Page.Sections, len(plan.Sections))
	for i, spec := range plan.Sections {
		assert.Equal(t, spec.Type, result.Page.Sections[i].Kind(), "section %d", i)
		hint := result.Page.Sections[i].LayoutHint()
		require.NotNil(t, hint, "section %d", i)
		assert.InDelta(t, float64(spec.HeightPercent), hint.RequestedHeightPercent, 0.001, "section %d", i)
	}
}

func TestGenerateTemplateFillDeclinesSilently(t *testing.T) {
	llm := &mockLLM{responses: []string{"not json at all", validDocJSON(t)}}
	s := newTestGenerator(llm, nil, nil)

	result := s.Generate(context.Background(), baseRequest())

	// The failed fast-path attempt does not count against the retry
	// budget; the free-form loop starts fresh.
	require.True(t, result.Success, result.Error)
	assert.Equal(t, 0, result.RetryCount)
	assert.Equal(t, 2, llm.callCount())
}

func TestGenerateConfigOverridesRetryBudget(t *testing.T) {
	cfg := &mockConfigStore{values: map[string]any{
		"generation.template_fill": false,
		"generation.max_retries":   1,
	}}
	llm := &mockLLM{responses: []string{invalidDocJSON(t)}}
	s := newTestGenerator(llm, nil, cfg)

	result := s.Generate(context.Background(), baseRequest())

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.RetryCount)
	assert.Equal(t, 2, llm.callCount())
}
