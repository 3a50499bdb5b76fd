package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/pageforge/internal/core/domain"
	"github.com/custodia-labs/pageforge/internal/core/ports/driven"
	"github.com/custodia-labs/pageforge/internal/core/ports/driving"
	"github.com/custodia-labs/pageforge/internal/logger"
)

// Ensure GeneratorService implements the interface.
var _ driving.PageGenerator = (*GeneratorService)(nil)

// Default generation parameters, overridable via ConfigStore.
const (
	// DefaultMaxRetries is the retry budget: up to 1+DefaultMaxRetries
	// total attempts per request.
	DefaultMaxRetries = 2

	// DefaultMaxTokens bounds free-form generation output.
	DefaultMaxTokens = 2048

	// DefaultTemperature favours content variety over determinism.
	DefaultTemperature = 0.7

	// knowledgeFetchK is how many snippets the orchestrator fetches when
	// the request carries none.
	knowledgeFetchK = 2
)

// GeneratorService is the top-level pipeline: classify, plan, prompt,
// generate, parse, validate, then accept, retry or fail. No error ever
// crosses its boundary - every path resolves to a GenerationResult.
type GeneratorService struct {
	llm        driven.LLMService
	classifier *Classifier
	prompts    *PromptBuilder
	memory     driven.ContentMemory
	knowledge  driven.KnowledgeService

	maxRetries   int
	maxTokens    int
	temperature  float64
	templateFill bool
}

// NewGeneratorService creates the orchestrator. The llm service is
// required; memory, knowledge and cfg may be nil. The caller owns the LLM
// client's lifecycle (creation, credentials, disposal).
func NewGeneratorService(
	llm driven.LLMService,
	classifier *Classifier,
	prompts *PromptBuilder,
	memory driven.ContentMemory,
	knowledge driven.KnowledgeService,
	cfg driven.ConfigStore,
) *GeneratorService {
	s := &GeneratorService{
		llm:          llm,
		classifier:   classifier,
		prompts:      prompts,
		memory:       memory,
		knowledge:    knowledge,
		maxRetries:   DefaultMaxRetries,
		maxTokens:    DefaultMaxTokens,
		temperature:  DefaultTemperature,
		templateFill: true,
	}
	if cfg != nil {
		if v := cfg.GetInt(driven.ConfigMaxRetries); v > 0 {
			s.maxRetries = v
		}
		if v := cfg.GetInt(driven.ConfigLLMMaxTokens); v > 0 {
			s.maxTokens = v
		}
		if v := cfg.GetFloat(driven.ConfigLLMTemperature); v > 0 {
			s.temperature = v
		}
		if _, ok := cfg.Get(driven.ConfigTemplateFill); ok {
			s.templateFill = cfg.GetBool(driven.ConfigTemplateFill)
		}
	}
	return s
}

// Generate runs the full pipeline for one request. Safe for concurrent use:
// the only shared mutable state is content memory, which serializes its own
// writes.
func (s *GeneratorService) Generate(ctx context.Context, req domain.PageGenerationRequest) domain.GenerationResult {
	start := time.Now()
	requestID := uuid.NewString()

	logger.Section("Page Generation")
	logger.Debug("request %s: page_type=%s session=%q message=%q",
		requestID, req.PageType, req.SessionID, req.UserMessage)

	if s.llm == nil {
		return s.fail(start, 0, domain.ErrLLMUnavailable.Error())
	}

	classification := s.resolveIntent(req)
	strategy := StrategyFor(classification.Intent)
	logger.Info("request %s: intent=%s confidence=%.2f plan=%d sections (%s)",
		requestID, classification.Intent, classification.Confidence,
		len(strategy.Sections), strategy.Mode)

	s.hydrateKnowledge(ctx, &req)

	// Fast path: pre-built structure, generation supplies content only.
	if s.templateFill {
		if page, ok := s.tryTemplateFill(ctx, req, strategy, classification); ok {
			logger.Info("request %s: template-fill accepted", requestID)
			return s.accept(ctx, req, page, start, 0)
		}
		logger.Debug("request %s: template-fill declined, falling through to free-form loop", requestID)
	}

	// Free-form loop with corrective feedback. Retries are strictly
	// sequential: each retry's prompt depends on the previous failure.
	var lastErr error
	feedback := ""
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			logger.Debug("request %s: retry %d/%d after: %v", requestID, attempt, s.maxRetries, lastErr)
		}

		systemPrompt := s.prompts.BuildSystemPrompt(req, strategy, classification)
		userPrompt := s.prompts.BuildUserPrompt(ctx, req, strategy, feedback)

		raw, err := s.llm.Complete(ctx, systemPrompt, userPrompt, driven.CompletionOptions{
			MaxTokens:         s.maxTokens,
			Temperature:       s.temperature,
			CacheSystemPrompt: true,
		})
		if err != nil {
			// Transport failures re-attempt without new feedback.
			lastErr = err
			logger.Warn("request %s: generation call failed: %v", requestID, err)
			continue
		}

		doc, err := ParsePage(raw)
		if err != nil {
			lastErr = err
			feedback = "The previous output was not parseable JSON (" + err.Error() +
				"). Respond with a single raw JSON object and nothing else."
			logger.Warn("request %s: parse failed: %v", requestID, err)
			continue
		}

		if violations := ValidatePage(doc); len(violations) > 0 {
			lastErr = &domain.ValidationError{Violations: violations}
			feedback = strings.Join(violations, "\n")
			logger.Warn("request %s: %d validation violations", requestID, len(violations))
			continue
		}

		return s.accept(ctx, req, doc, start, attempt)
	}

	return s.fail(start, s.maxRetries, errorText(lastErr))
}

// GenerateBatch fans out one independent pipeline per request and joins
// them, returning results in input order.
func (s *GeneratorService) GenerateBatch(ctx context.Context, reqs []domain.PageGenerationRequest) []domain.GenerationResult {
	results := make([]domain.GenerationResult, len(reqs))
	var wg sync.WaitGroup
	for i := range reqs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Generate(ctx, reqs[i])
		}(i)
	}
	wg.Wait()
	return results
}

// resolveIntent uses the precomputed intent when the caller supplied a
// valid one, otherwise classifies and remaps below-threshold results to
// use_case.
func (s *GeneratorService) resolveIntent(req domain.PageGenerationRequest) domain.IntentClassification {
	if req.PrecomputedIntent != nil && req.PrecomputedIntent.IsValid() {
		return domain.IntentClassification{
			Intent:     *req.PrecomputedIntent,
			Confidence: 1.0,
			Reasoning:  "intent precomputed by caller",
		}
	}
	result := s.classifier.Classify(req.UserMessage)
	if effective := s.classifier.EffectiveIntent(result); effective != result.Intent {
		result.Reasoning += "; below threshold, remapped to " + effective.String()
		result.Intent = effective
	}
	return result
}

// hydrateKnowledge fetches snippets when the request carries none and a
// knowledge service is configured. Lookup failures are advisory.
func (s *GeneratorService) hydrateKnowledge(ctx context.Context, req *domain.PageGenerationRequest) {
	if s.knowledge == nil || len(req.KnowledgeDocuments) > 0 {
		return
	}
	docs, err := s.knowledge.TopKRelevant(ctx, req.UserMessage, knowledgeFetchK)
	if err != nil {
		logger.Warn("knowledge lookup failed: %v", err)
		return
	}
	req.KnowledgeDocuments = docs
}

// accept runs the sanitizer as a final pass, records content memory and
// assembles the success result.
func (s *GeneratorService) accept(
	ctx context.Context,
	req domain.PageGenerationRequest,
	doc *domain.PageDocument,
	start time.Time,
	retryCount int,
) domain.GenerationResult {
	SanitizePage(doc)
	s.trackContent(ctx, req.SessionID, doc)
	return domain.GenerationResult{
		Success:          true,
		Page:             doc,
		RetryCount:       retryCount,
		GenerationTimeMs: time.Since(start).Milliseconds(),
	}
}

func (s *GeneratorService) fail(start time.Time, retryCount int, errText string) domain.GenerationResult {
	return domain.GenerationResult{
		Success:          false,
		Error:            errText,
		RetryCount:       retryCount,
		GenerationTimeMs: time.Since(start).Milliseconds(),
	}
}

// trackContent records the accepted headline and feature titles so later
// generations in the session can be steered away from repeating them.
func (s *GeneratorService) trackContent(ctx context.Context, sessionID string, doc *domain.PageDocument) {
	if s.memory == nil || sessionID == "" {
		return
	}
	headline := ""
	var featureTitles []string
	for _, section := range doc.Sections {
		switch sec := section.(type) {
		case *domain.HeroSection:
			if headline == "" {
				headline = sec.Headline
			}
		case *domain.FeatureGridSection:
			for _, f := range sec.Features {
				featureTitles = append(featureTitles, f.Title)
			}
		}
	}
	if headline == "" && len(featureTitles) == 0 {
		return
	}
	if err := s.memory.Track(ctx, sessionID, headline, featureTitles); err != nil {
		logger.Warn("content memory write failed for session %s: %v", sessionID, err)
	}
}

func errorText(err error) string {
	if err == nil {
		return "generation failed"
	}
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return strings.Join(vErr.Violations, "; ")
	}
	return err.Error()
}
