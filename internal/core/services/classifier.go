package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/pageforge/internal/core/domain"
	"github.com/custodia-labs/pageforge/internal/core/ports/driven"
	"github.com/custodia-labs/pageforge/internal/core/ports/driving"
	"github.com/custodia-labs/pageforge/internal/logger"
)

// Ensure Classifier implements the interface.
var _ driving.IntentClassifier = (*Classifier)(nil)

// DefaultProductName is the marketed product's name, used by the short-message
// fallback heuristic. Overridable via the classifier.product_name config key.
const DefaultProductName = "BrewLine"

// fallbackConfidence is assigned whenever no pattern matched at all and a
// heuristic rule picked the intent. It sits below every threshold except
// use_case's, so for strategy selection each fallback resolves to use_case
// via EffectiveIntent; the heuristic intents survive only on the surfaces
// that report Classify's raw verdict.
const fallbackConfidence = 0.3

// dominanceFactor scales the confidence formula: the winning intent must
// command at least 60% of total signal mass to reach confidence 1.0. Note
// the known sensitivity to sparse scoring - a single low-scoring intent that
// is the only nonzero one yields confidence 1.0. That behaviour is relied on
// downstream and pinned by tests; do not "fix" it here.
const dominanceFactor = 0.6

// defaultThresholds are the per-intent confidence minimums used by
// IsConfident. off_topic demands near-certainty before a page is degraded;
// use_case tolerates almost anything, which is what makes it the safe
// fallback intent.
var defaultThresholds = map[domain.UserIntent]float64{
	domain.IntentProductInquiry:  0.35,
	domain.IntentFeatureQuestion: 0.40,
	domain.IntentComparison:      0.50,
	domain.IntentStatsROI:        0.50,
	domain.IntentImplementation:  0.45,
	domain.IntentUseCase:         0.30,
	domain.IntentOffTopic:        0.80,
}

// Classifier maps a raw visitor message to an intent with a confidence
// score. Classification is a deterministic, pure function of the message
// and the static pattern table.
type Classifier struct {
	productName string
	thresholds  map[domain.UserIntent]float64
}

// NewClassifier creates a classifier. The config store is optional; when
// nil, compiled-in defaults apply.
func NewClassifier(cfg driven.ConfigStore) *Classifier {
	c := &Classifier{
		productName: DefaultProductName,
		thresholds:  make(map[domain.UserIntent]float64, len(defaultThresholds)),
	}
	for intent, t := range defaultThresholds {
		c.thresholds[intent] = t
	}
	if cfg != nil {
		if name := cfg.GetString(driven.ConfigProductName); name != "" {
			c.productName = name
		}
		for _, intent := range domain.AllIntents {
			key := driven.ConfigThresholdPrefix + intent.String()
			if v := cfg.GetFloat(key); v > 0 {
				c.thresholds[intent] = v
			}
		}
	}
	return c
}

// Classify scores the message against every intent's pattern table and
// returns the strictly highest scorer. Ties resolve to the intent declared
// first in domain.AllIntents. It always returns a result.
func (c *Classifier) Classify(message string) domain.IntentClassification {
	normalized := strings.ToLower(strings.TrimSpace(message))

	var (
		best        domain.UserIntent
		bestScore   int
		bestMatches []string
		total       int
	)

	for _, intent := range domain.AllIntents {
		score, matches := scoreIntent(normalized, patternTable[intent])
		total += score
		// Strict > keeps the first-declared intent on ties.
		if score > bestScore {
			best = intent
			bestScore = score
			bestMatches = matches
		}
	}

	if total == 0 {
		return c.fallback(message, normalized)
	}

	confidence := float64(bestScore) / (float64(total) * dominanceFactor)
	if confidence > 1.0 {
		confidence = 1.0
	}

	result := domain.IntentClassification{
		Intent:          best,
		Confidence:      confidence,
		MatchedPatterns: bestMatches,
		Reasoning: fmt.Sprintf("%d of %d signal points from %d matched patterns",
			bestScore, total, len(bestMatches)),
	}
	logger.Debug("classify: intent=%s score=%d/%d confidence=%.2f patterns=%v",
		best, bestScore, total, confidence, bestMatches)
	return result
}

// fallback applies the zero-score heuristics. A whitespace-only message has
// zero words, which satisfies the "< 10 words" branch only if it also
// contains a question mark; otherwise it lands on the generic-query rule.
func (c *Classifier) fallback(message, normalized string) domain.IntentClassification {
	trimmed := strings.TrimSpace(message)

	intent := domain.IntentUseCase
	reason := "no patterns matched; generic query rule"
	switch {
	case len(trimmed) < 20 && strings.Contains(normalized, strings.ToLower(c.productName)):
		intent = domain.IntentProductInquiry
		reason = "no patterns matched; short message names the product"
	case strings.Contains(trimmed, "?") && len(strings.Fields(trimmed)) < 10:
		intent = domain.IntentFeatureQuestion
		reason = "no patterns matched; short question rule"
	}

	logger.Debug("classify: fallback intent=%s (%s)", intent, reason)
	return domain.IntentClassification{
		Intent:          intent,
		Confidence:      fallbackConfidence,
		MatchedPatterns: nil,
		Reasoning:       reason,
	}
}

// IsConfident reports whether the result clears its intent's threshold.
func (c *Classifier) IsConfident(result domain.IntentClassification) bool {
	threshold, ok := c.thresholds[result.Intent]
	if !ok {
		threshold = defaultThresholds[domain.IntentUseCase]
	}
	return result.Confidence >= threshold
}

// EffectiveIntent remaps a below-threshold result to use_case, the most
// tolerant intent.
func (c *Classifier) EffectiveIntent(result domain.IntentClassification) domain.UserIntent {
	if c.IsConfident(result) {
		return result.Intent
	}
	logger.Debug("classify: %s below threshold (%.2f), remapping to %s",
		result.Intent, result.Confidence, domain.IntentUseCase)
	return domain.IntentUseCase
}

// scoreIntent sums the weighted pattern hits for one intent and returns the
// score plus the matched pattern identifiers in check order: keywords, then
// phrases, then regex questions.
func scoreIntent(normalized string, p intentPatterns) (int, []string) {
	score := 0
	var matches []string

	for _, kw := range p.keywords {
		if strings.Contains(normalized, kw) {
			score += keywordWeight
			matches = append(matches, "keyword:"+kw)
		}
	}
	for _, ph := range p.phrases {
		if strings.Contains(normalized, ph) {
			score += phraseWeight
			matches = append(matches, "phrase:"+ph)
		}
	}
	for i, re := range p.questions {
		if re.MatchString(normalized) {
			score += questionWeight
			matches = append(matches, fmt.Sprintf("pattern:%d", i))
		}
	}
	return score, matches
}
