package domain

// Field and array bounds for every section variant. The schema validator
// enforces these and the content sanitizer clips to the maxima, so the two
// must agree; keeping them in one place makes that a compile-time fact.
//
// Every maximum strictly exceeds its minimum. The sanitizer relies on this:
// clipping a string to its maximum can never push it below its minimum.
const (
	// Document level.
	TitleMinLen       = 10
	TitleMaxLen       = 100
	DescriptionMinLen = 50
	DescriptionMaxLen = 300

	// Hero.
	HeroHeadlineMinLen    = 10
	HeroHeadlineMaxLen    = 100
	HeroSubheadlineMinLen = 20
	HeroSubheadlineMaxLen = 150

	// CTA buttons (hero ctaButton, cta section button, single_screen ctas).
	CTATextMinLen = 2
	CTATextMaxLen = 30

	// Feature grid.
	FeatureCountMin   = 1
	FeatureCountMax   = 6
	FeatureTitleMinLen = 5
	FeatureTitleMaxLen = 50
	FeatureDescMinLen  = 10
	FeatureDescMaxLen  = 200

	// Metrics.
	MetricCountMin    = 1
	MetricCountMax    = 4
	MetricValueMinLen = 1
	MetricValueMaxLen = 20
	MetricLabelMinLen = 3
	MetricLabelMaxLen = 60
	MetricDescMinLen  = 10
	MetricDescMaxLen  = 150

	// Comparison table.
	ComparisonColumnCountMin = 2
	ComparisonColumnCountMax = 3
	ComparisonColumnMinLen   = 2
	ComparisonColumnMaxLen   = 40
	ComparisonRowCountMin    = 2
	ComparisonRowCountMax    = 6
	ComparisonFeatureMinLen  = 3
	ComparisonFeatureMaxLen  = 60
	ComparisonValueMinLen    = 1
	ComparisonValueMaxLen    = 80

	// Steps.
	StepCountMin    = 2
	StepCountMax    = 6
	StepTitleMinLen = 5
	StepTitleMaxLen = 60
	StepDescMinLen  = 10
	StepDescMaxLen  = 200

	// CTA section.
	CTAHeadlineMinLen = 10
	CTAHeadlineMaxLen = 80
	CTASubtextMinLen  = 10
	CTASubtextMaxLen  = 150

	// FAQ.
	FAQCountMin       = 1
	FAQCountMax       = 8
	FAQQuestionMinLen = 5
	FAQQuestionMaxLen = 150
	FAQAnswerMinLen   = 10
	FAQAnswerMaxLen   = 300

	// Single screen.
	InsightCountMin    = 3
	InsightCountMax    = 4
	InsightMinLen      = 10
	InsightMaxLen      = 150
	ScreenStatCountMin = 2
	ScreenStatCountMax = 3
	HowItWorksCountMin = 3
	HowItWorksCountMax = 5
	ScreenCTACountMin  = 1
	ScreenCTACountMax  = 3

	// Layout hints.
	HeightPercentMin = 15
	HeightPercentMax = 100
)
