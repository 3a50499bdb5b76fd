package services

import (
	"regexp"

	"github.com/custodia-labs/pageforge/internal/core/domain"
)

// Pattern family weights. A single regex hit outweighs a phrase, which
// outweighs a bare keyword; dominant signals should come from the most
// specific family.
const (
	keywordWeight  = 1
	phraseWeight   = 3
	questionWeight = 5
)

// intentPatterns holds the three pattern families for one intent. All
// matching is case-insensitive over the trimmed, lower-cased message, so
// the tables below are written in lower case.
type intentPatterns struct {
	keywords  []string
	phrases   []string
	questions []*regexp.Regexp
}

// patternTable is the static classification table. Iteration always follows
// domain.AllIntents so that ties resolve to the first-declared intent.
var patternTable = map[domain.UserIntent]intentPatterns{
	domain.IntentProductInquiry: {
		keywords: []string{
			"brewline", "product", "platform", "overview", "about",
			"offer", "service", "solution",
		},
		phrases: []string{
			"what is brewline", "tell me about", "what do you do",
			"what does it do", "learn more about", "give me an overview",
		},
		questions: []*regexp.Regexp{
			regexp.MustCompile(`^what (is|does) `),
			regexp.MustCompile(`what (do|does) (you|it|this) (offer|provide|do)`),
		},
	},
	domain.IntentFeatureQuestion: {
		keywords: []string{
			"feature", "integration", "api", "dashboard", "reporting",
			"inventory", "tracking", "automation", "capability", "alerts",
		},
		phrases: []string{
			"does it support", "can it handle", "is there a",
			"how does the", "does it integrate", "does it connect",
		},
		questions: []*regexp.Regexp{
			regexp.MustCompile(`^(does|can|is there|how does) `),
			regexp.MustCompile(`(support|integrate|connect) .*\?`),
		},
	},
	domain.IntentComparison: {
		keywords: []string{
			"compare", "comparison", "versus", "alternative", "competitor",
			"difference", "instead", "switch",
		},
		phrases: []string{
			"compare to", "compared to", "how does it stack",
			"different from", "better than", "why choose", "switching from",
		},
		questions: []*regexp.Regexp{
			regexp.MustCompile(`\bvs\.?\b`),
			regexp.MustCompile(`how (is|does) .* (different|better)`),
			regexp.MustCompile(`why .* (over|instead of) `),
		},
	},
	domain.IntentStatsROI: {
		keywords: []string{
			"roi", "cost", "price", "pricing", "savings", "revenue",
			"metrics", "numbers", "statistics", "growth",
		},
		phrases: []string{
			"return on investment", "how much does", "what does it cost",
			"pay for itself", "time saved", "by the numbers",
		},
		questions: []*regexp.Regexp{
			regexp.MustCompile(`how much `),
			regexp.MustCompile(`what .*(cost|price)`),
			regexp.MustCompile(`(save|grow) .*(money|revenue|time)`),
		},
	},
	domain.IntentImplementation: {
		keywords: []string{
			"setup", "install", "onboarding", "implementation", "migrate",
			"migration", "deploy", "rollout", "configure", "training",
		},
		phrases: []string{
			"how do i get started", "how long does it take", "set it up",
			"roll it out", "switch over", "go live",
		},
		questions: []*regexp.Regexp{
			regexp.MustCompile(`how (do|can|long) .*(start|set ?up|implement|migrate)`),
			regexp.MustCompile(`what .*(involved|required) .*(setup|onboarding)`),
		},
	},
	domain.IntentUseCase: {
		keywords: []string{
			"brewery", "taproom", "distributor", "wholesale", "retailer",
			"my business", "our team", "workflow", "cidery", "winery",
		},
		phrases: []string{
			"would this work for", "we are a", "i run a", "for my",
			"in our case", "our situation",
		},
		questions: []*regexp.Regexp{
			regexp.MustCompile(`(would|could|will) (this|it) work`),
			regexp.MustCompile(`fit (for|into) (my|our)`),
		},
	},
	domain.IntentOffTopic: {
		keywords: []string{
			"weather", "joke", "recipe", "sports", "movie", "politics",
			"lottery", "horoscope",
		},
		phrases: []string{
			"tell me a joke", "what time is it", "ignore previous",
			"who are you really",
		},
		questions: []*regexp.Regexp{
			regexp.MustCompile(`(write|sing) me a (poem|song)`),
			regexp.MustCompile(`what('s| is) the weather`),
		},
	},
}
