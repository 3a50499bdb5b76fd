package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/pageforge/internal/core/domain"
	"github.com/custodia-labs/pageforge/internal/core/ports/driven"
	"github.com/custodia-labs/pageforge/internal/logger"
)

// templateFillMaxTokens bounds the fast path's output. The structural
// scaffolding is pre-built, so the backend only produces content fields
// and the budget can be much tighter than free-form generation.
const templateFillMaxTokens = 1024

// templateFieldHints are content-only shapes: no "type", no "layout" -
// both are pre-built from the strategy and slotted in after decoding.
var templateFieldHints = map[domain.SectionType]string{
	domain.SectionHero:            `{"headline":"(10-100 chars)","subheadline":"(optional, 20-150 chars)","ctaButton":{"text":"(2-30 chars)"}}`,
	domain.SectionFeatureGrid:     `{"features":[{"title":"(5-50 chars)","description":"(10-200 chars)"}]} with 1-6 features`,
	domain.SectionMetrics:         `{"metrics":[{"value":"(1-20 chars)","label":"(3-60 chars)"}]} with 1-4 metrics`,
	domain.SectionComparisonTable: `{"columns":["(2-40 chars)"],"rows":[{"feature":"(3-60 chars)","values":["(1-80 chars)"]}]} with 2-3 columns, 2-6 rows, one value per column`,
	domain.SectionSteps:           `{"steps":[{"title":"(5-60 chars)","description":"(10-200 chars)"}]} with 2-6 steps`,
	domain.SectionCTA:             `{"headline":"(10-80 chars)","buttonText":"(2-30 chars)","subtext":"(optional, 10-150 chars)"}`,
	domain.SectionFAQ:             `{"items":[{"question":"(5-150 chars)","answer":"(10-300 chars)"}]} with 1-8 items`,
	domain.SectionSingleScreen:    `{"insights":["(10-150 chars)"],"stats":[{"value":"(1-20 chars)","label":"(3-60 chars)"}],"howItWorks":[{"title":"(5-60 chars)","description":"(10-200 chars)"}],"ctas":[{"text":"(2-30 chars)"}]} with 3-4 insights, 2-3 stats, 3-5 howItWorks, 1-3 ctas`,
}

// BuildTemplateFillSystemPrompt renders the compact fast-path instruction
// block: the structure is fixed, the backend writes content only.
func (b *PromptBuilder) BuildTemplateFillSystemPrompt(
	req domain.PageGenerationRequest,
	strategy domain.LayoutStrategy,
	classification domain.IntentClassification,
) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(b.loadPrompt(driven.PromptSystemFrame, defaultSystemFrame), b.productName))
	sb.WriteString("\n\n")
	sb.WriteString("The page structure is already decided. You only write content.\n")
	sb.WriteString(fmt.Sprintf("VISITOR INTENT: %s\nPAGE TYPE: %s\n\n", classification.Intent, req.PageType))

	sb.WriteString(fmt.Sprintf("Respond with one JSON object: {\"title\":\"(10-100 chars)\",\"description\":\"(50-300 chars)\",\"sections\":[...]} containing exactly %d section objects, in this order:\n", len(strategy.Sections)))
	for i, spec := range strategy.Sections {
		hint := templateFieldHints[spec.Type]
		sb.WriteString(fmt.Sprintf("%d. %s content, focus: %s. Shape: %s\n", i+1, spec.Type, spec.ContentFocus, hint))
	}
	sb.WriteString("\n")

	g := GuidelinesFor(classification.Intent)
	sb.WriteString(fmt.Sprintf("Headline register (%s), for example:\n", g.HeadlineTone))
	for _, ex := range g.ExampleHeadlines {
		sb.WriteString("  * " + ex + "\n")
	}
	sb.WriteString("\nRespond with the JSON object only. No prose, no code fences, no \"type\" or \"layout\" keys.")
	return sb.String()
}

// tryTemplateFill attempts the fast path: one generation call against a
// pre-built section skeleton, its own parse and validate, no retries. Any
// failure declines silently and the caller falls through to the free-form
// loop.
func (s *GeneratorService) tryTemplateFill(
	ctx context.Context,
	req domain.PageGenerationRequest,
	strategy domain.LayoutStrategy,
	classification domain.IntentClassification,
) (*domain.PageDocument, bool) {
	systemPrompt := s.prompts.BuildTemplateFillSystemPrompt(req, strategy, classification)
	userPrompt := s.prompts.BuildUserPrompt(ctx, req, strategy, "")

	raw, err := s.llm.Complete(ctx, systemPrompt, userPrompt, driven.CompletionOptions{
		MaxTokens:         templateFillMaxTokens,
		Temperature:       s.temperature,
		CacheSystemPrompt: true,
	})
	if err != nil {
		logger.Debug("template-fill: generation call failed: %v", err)
		return nil, false
	}

	doc, err := assembleFromTemplate(raw, req.PageType, strategy)
	if err != nil {
		logger.Debug("template-fill: %v", err)
		return nil, false
	}

	if violations := ValidatePage(doc); len(violations) > 0 {
		logger.Debug("template-fill: %d validation violations", len(violations))
		return nil, false
	}
	return doc, true
}

// assembleFromTemplate decodes the content-only response and slots each
// content object into its pre-built section: the planned type and the
// planned height become the section's tag and layout hint.
func assembleFromTemplate(rawText string, pageType domain.PageType, strategy domain.LayoutStrategy) (*domain.PageDocument, error) {
	trimmed := stripCodeFence(strings.TrimSpace(rawText))
	payload, ok := findJSONObject(trimmed)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in template-fill response", domain.ErrParse)
	}

	var wire struct {
		Title       string            `json:"title"`
		Description string            `json:"description"`
		Sections    []json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if len(wire.Sections) != len(strategy.Sections) {
		return nil, fmt.Errorf("%w: got %d content objects, plan has %d sections",
			domain.ErrParse, len(wire.Sections), len(strategy.Sections))
	}

	doc := &domain.PageDocument{
		Type:        pageType,
		Title:       wire.Title,
		Description: wire.Description,
	}
	for i, raw := range wire.Sections {
		spec := strategy.Sections[i]
		section, err := decodeTemplateSection(spec.Type, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: section %d: %v", domain.ErrParse, i, err)
		}
		applyLayout(section, spec.HeightPercent)
		doc.Sections = append(doc.Sections, section)
	}
	return doc, nil
}

// decodeTemplateSection decodes one content-only object into the variant
// the plan dictates for that slot.
func decodeTemplateSection(t domain.SectionType, raw json.RawMessage) (domain.Section, error) {
	var s domain.Section
	switch t {
	case domain.SectionHero:
		s = &domain.HeroSection{}
	case domain.SectionFeatureGrid:
		s = &domain.FeatureGridSection{}
	case domain.SectionMetrics:
		s = &domain.MetricsSection{}
	case domain.SectionComparisonTable:
		s = &domain.ComparisonTableSection{}
	case domain.SectionSteps:
		s = &domain.StepsSection{}
	case domain.SectionCTA:
		s = &domain.CTASection{}
	case domain.SectionFAQ:
		s = &domain.FAQSection{}
	case domain.SectionSingleScreen:
		s = &domain.SingleScreenSection{}
	default:
		return nil, fmt.Errorf("plan contains unknown section type %q", t)
	}
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, err
	}
	return s, nil
}

// applyLayout stamps the plan's height target onto the section.
func applyLayout(section domain.Section, heightPercent int) {
	layout := &domain.SectionLayout{RequestedHeightPercent: float64(heightPercent)}
	switch s := section.(type) {
	case *domain.HeroSection:
		s.Layout = layout
	case *domain.FeatureGridSection:
		s.Layout = layout
	case *domain.MetricsSection:
		s.Layout = layout
	case *domain.ComparisonTableSection:
		s.Layout = layout
	case *domain.StepsSection:
		s.Layout = layout
	case *domain.CTASection:
		s.Layout = layout
	case *domain.FAQSection:
		s.Layout = layout
	case *domain.SingleScreenSection:
		s.Layout = layout
	}
}
