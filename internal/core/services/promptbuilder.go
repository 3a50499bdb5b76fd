package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/pageforge/internal/core/domain"
	"github.com/custodia-labs/pageforge/internal/core/ports/driven"
	"github.com/custodia-labs/pageforge/internal/logger"
)

// Ensure PromptBuilder can receive custom prompt templates.
var _ driven.PromptStoreAware = (*PromptBuilder)(nil)

// Prompt budget constants. The prompt budget is a hard design constraint:
// fewer, shorter signals keep generation latency low, so snippets and
// persona descriptions are truncated rather than included whole.
const (
	maxKnowledgeSnippets  = 2
	knowledgeSnippetChars = 150
	maxPersonaSignals     = 3
	maxHistoryTurns       = 3
	historyTurnChars      = 160
	pageContextChars      = 200

	// heightTolerance is how far (in percentage points) the generator may
	// deviate from each section's height target.
	heightTolerance = 5
)

// defaultSystemFrame opens the system prompt when no PromptStore overrides it.
const defaultSystemFrame = `You are the page-generation engine for %s, a craft-beverage distribution platform.
You write marketing page documents as structured JSON. You never invent product claims
beyond what the briefing below supports, and you write for busy beverage operators.`

// defaultOutputContract is the machine-checkable output format block.
const defaultOutputContract = `OUTPUT FORMAT - FOLLOW EXACTLY:
- Respond with a single JSON object and nothing else.
- No prose before or after the JSON. No markdown. No code fences.
- Produce EXACTLY the sections listed in the plan, in EXACTLY that order, with EXACTLY those "type" values.
- Every section must include "layout" with "requestedHeightPercent".
- Each requestedHeightPercent may deviate at most 5 percentage points from its target, and the page total must land between 95 and 105.`

// defaultCorrectiveFrame introduces validator feedback on a retry.
const defaultCorrectiveFrame = `Your previous response was rejected for these reasons:
%s
Produce a corrected JSON document that fixes every listed problem. Keep everything that was not flagged.`

// sectionSchemaHints spells out each section variant's JSON shape with its
// structural bounds, in the exact wire format the parser expects.
var sectionSchemaHints = map[domain.SectionType]string{
	domain.SectionHero: `{"type":"hero","headline":"(required, 10-100 chars)","subheadline":"(optional, 20-150 chars)","ctaButton":{"text":"(2-30 chars)","href":"(optional)"},"layout":{"requestedHeightPercent":N}}`,
	domain.SectionFeatureGrid: `{"type":"feature_grid","features":[{"title":"(5-50 chars)","description":"(10-200 chars)","icon":"(optional)"}],"layout":{"requestedHeightPercent":N}} - 1 to 6 features`,
	domain.SectionMetrics: `{"type":"metrics","metrics":[{"value":"(1-20 chars)","label":"(3-60 chars)","description":"(optional, 10-150 chars)"}],"layout":{"requestedHeightPercent":N}} - 1 to 4 metrics`,
	domain.SectionComparisonTable: `{"type":"comparison_table","columns":["(2-40 chars)"],"rows":[{"feature":"(3-60 chars)","values":["(1-80 chars)"]}],"layout":{"requestedHeightPercent":N}} - 2 to 3 columns, 2 to 6 rows, one value per column`,
	domain.SectionSteps: `{"type":"steps","steps":[{"title":"(5-60 chars)","description":"(10-200 chars)"}],"layout":{"requestedHeightPercent":N}} - 2 to 6 steps`,
	domain.SectionCTA: `{"type":"cta","headline":"(required, 10-80 chars)","buttonText":"(required, 2-30 chars)","subtext":"(optional, 10-150 chars)","layout":{"requestedHeightPercent":N}}`,
	domain.SectionFAQ: `{"type":"faq","items":[{"question":"(5-150 chars)","answer":"(10-300 chars)"}],"layout":{"requestedHeightPercent":N}} - 1 to 8 items`,
	domain.SectionSingleScreen: `{"type":"single_screen","insights":["(10-150 chars)"],"stats":[{"value":"(1-20 chars)","label":"(3-60 chars)"}],"howItWorks":[{"title":"(5-60 chars)","description":"(10-200 chars)"}],"ctas":[{"text":"(2-30 chars)","action":"(optional)"}],"layout":{"requestedHeightPercent":N}} - 3-4 insights, 2-3 stats, 3-5 howItWorks, 1-3 ctas`,
}

// PromptBuilder renders the system and user prompts for one generation
// attempt. String assembly is deterministic for fixed inputs; the only
// external lookup is the advisory content-memory warning.
type PromptBuilder struct {
	productName string
	memory      driven.ContentMemory
	promptStore driven.PromptStore
}

// NewPromptBuilder creates a prompt builder. The memory port is optional;
// when nil, no repetition warnings are injected.
func NewPromptBuilder(memory driven.ContentMemory, cfg driven.ConfigStore) *PromptBuilder {
	b := &PromptBuilder{
		productName: DefaultProductName,
		memory:      memory,
	}
	if cfg != nil {
		if name := cfg.GetString(driven.ConfigProductName); name != "" {
			b.productName = name
		}
	}
	return b
}

// SetPromptStore sets the prompt store for loading customisable prompt
// blocks. If not set, the builder uses hardcoded default blocks.
func (b *PromptBuilder) SetPromptStore(store driven.PromptStore) {
	b.promptStore = store
}

// BuildSystemPrompt renders the static instruction block: role, page plan,
// content guidelines and the output contract. It varies only with intent
// and page type, which is what makes backend-side prompt caching effective.
func (b *PromptBuilder) BuildSystemPrompt(
	req domain.PageGenerationRequest,
	strategy domain.LayoutStrategy,
	classification domain.IntentClassification,
) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(b.loadPrompt(driven.PromptSystemFrame, defaultSystemFrame), b.productName))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("VISITOR INTENT: %s (%s)\n", classification.Intent, classification.Intent.Description()))
	sb.WriteString(fmt.Sprintf("PAGE TYPE: %s\n\n", req.PageType))

	sb.WriteString(fmt.Sprintf("PAGE PLAN (%s layout, %s density): %s\n",
		strategy.Mode, strategy.ContentDensity, strategy.Strategy))
	sb.WriteString(fmt.Sprintf("Produce exactly %d sections, in this order:\n", len(strategy.Sections)))
	for i, spec := range strategy.Sections {
		sb.WriteString(fmt.Sprintf("%d. type=%q, height target %d%% (stay within ±%d points), focus: %s\n",
			i+1, spec.Type, spec.HeightPercent, heightTolerance, spec.ContentFocus))
	}
	sb.WriteString("\n")

	g := GuidelinesFor(classification.Intent)
	sb.WriteString("CONTENT GUIDELINES:\n")
	sb.WriteString(fmt.Sprintf("- Headline: %d-%d chars, %s.\n", g.HeadlineMinLen, g.HeadlineMaxLen, g.HeadlineTone))
	sb.WriteString(fmt.Sprintf("- Subheadline: at most %d chars, %s.\n", g.SubheadlineMaxLen, g.SubheadlineTone))
	sb.WriteString(fmt.Sprintf("- At most %d features; feature descriptions %d-%d chars.\n",
		g.MaxFeatures, g.FeatureDescMinLen, g.FeatureDescMaxLen))
	if len(g.ExampleHeadlines) > 0 {
		sb.WriteString("- Headlines in this register:\n")
		for _, ex := range g.ExampleHeadlines {
			sb.WriteString(fmt.Sprintf("  * %s\n", ex))
		}
	}
	sb.WriteString("\n")

	sb.WriteString("DOCUMENT SHAPE:\n")
	sb.WriteString(fmt.Sprintf(`{"type":%q,"title":"(10-100 chars)","description":"(50-300 chars)","sections":[...]}`, req.PageType))
	sb.WriteString("\nSection shapes:\n")
	for _, spec := range strategy.Sections {
		if hint, ok := sectionSchemaHints[spec.Type]; ok {
			sb.WriteString("- " + hint + "\n")
		}
	}
	sb.WriteString("\n")

	sb.WriteString(b.loadPrompt(driven.PromptOutputContract, defaultOutputContract))
	return sb.String()
}

// BuildUserPrompt renders the per-request block: the visitor message plus
// truncated context signals, the memory warning, and - on retries - the
// corrective feedback describing why the previous attempt was rejected.
func (b *PromptBuilder) BuildUserPrompt(
	ctx context.Context,
	req domain.PageGenerationRequest,
	strategy domain.LayoutStrategy,
	feedback string,
) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Visitor message: %q\n", strings.TrimSpace(req.UserMessage)))

	if req.InteractionSource != "" {
		sb.WriteString(fmt.Sprintf("Triggered from: %s\n", req.InteractionSource))
	}
	if req.PageContext != nil && req.PageContext.Text != "" {
		sb.WriteString(fmt.Sprintf("Visitor was looking at (%s): %s\n",
			req.PageContext.Source, truncate(req.PageContext.Text, pageContextChars)))
	}

	if turns := tailTurns(req.ConversationHistory, maxHistoryTurns); len(turns) > 0 {
		sb.WriteString("Recent conversation:\n")
		for _, t := range turns {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", t.Role, truncate(t.Content, historyTurnChars)))
		}
	}

	if snippets := topSnippets(req.KnowledgeDocuments, maxKnowledgeSnippets); len(snippets) > 0 {
		sb.WriteString("Relevant knowledge:\n")
		for _, d := range snippets {
			sb.WriteString(fmt.Sprintf("  [%.0f%% match] %s\n",
				d.SimilarityScore*100, truncate(d.Content, knowledgeSnippetChars)))
		}
	}

	if signals := topPersonaSignals(req.Persona, maxPersonaSignals); signals != "" {
		sb.WriteString("Visitor profile signals: " + signals + "\n")
	}

	if warning := b.memoryWarning(ctx, req.SessionID); warning != "" {
		sb.WriteString("\n" + warning + "\n")
	}

	if feedback != "" {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf(b.loadPrompt(driven.PromptCorrectiveFrame, defaultCorrectiveFrame), feedback))
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\nGenerate the %d-section %s page now.", len(strategy.Sections), req.PageType))
	return sb.String()
}

// memoryWarning fetches the advisory repetition warning. Memory failures
// are logged and swallowed: the warning is a mitigation, not a guarantee.
func (b *PromptBuilder) memoryWarning(ctx context.Context, sessionID string) string {
	if b.memory == nil || sessionID == "" {
		return ""
	}
	warning, err := b.memory.Warning(ctx, sessionID)
	if err != nil {
		logger.Warn("content memory read failed for session %s: %v", sessionID, err)
		return ""
	}
	return warning
}

// loadPrompt loads a prompt block from the store, falling back to the
// default if unavailable.
func (b *PromptBuilder) loadPrompt(name, fallback string) string {
	if b.promptStore == nil {
		return fallback
	}
	prompt, err := b.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// truncate clips s to at most n bytes, appending an ellipsis when anything
// was cut. Cuts land on rune boundaries so the prompt stays valid UTF-8.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:runeBoundary(s, n)]
	}
	return strings.TrimSpace(s[:runeBoundary(s, n-3)]) + "..."
}

// tailTurns returns the last n conversation turns, oldest first.
func tailTurns(history []domain.ChatTurn, n int) []domain.ChatTurn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// topSnippets returns up to k documents ordered by similarity, best first.
func topSnippets(docs []domain.KnowledgeDocument, k int) []domain.KnowledgeDocument {
	if len(docs) == 0 {
		return nil
	}
	sorted := append([]domain.KnowledgeDocument(nil), docs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SimilarityScore > sorted[j].SimilarityScore
	})
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}

// topPersonaSignals renders the strongest persona scores as a short
// comma-separated summary, strongest first.
func topPersonaSignals(persona map[string]float64, k int) string {
	if len(persona) == 0 {
		return ""
	}
	type signal struct {
		name  string
		score float64
	}
	signals := make([]signal, 0, len(persona))
	for name, score := range persona {
		signals = append(signals, signal{name, score})
	}
	sort.Slice(signals, func(i, j int) bool {
		if signals[i].score == signals[j].score {
			return signals[i].name < signals[j].name
		}
		return signals[i].score > signals[j].score
	})
	if len(signals) > k {
		signals = signals[:k]
	}
	parts := make([]string, 0, len(signals))
	for _, s := range signals {
		parts = append(parts, fmt.Sprintf("%s (%.2f)", s.name, s.score))
	}
	return strings.Join(parts, ", ")
}
