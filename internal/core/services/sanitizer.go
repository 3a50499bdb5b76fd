package services

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/pageforge/internal/core/domain"
)

// SanitizePage clips every string field to its documented maximum (with an
// ellipsis when anything was cut), truncates bounded arrays to their maxima
// and clamps layout height hints into range. It never fails, is idempotent,
// and runs unconditionally after parsing as a defence against backends that
// ignore length instructions.
//
// Clipping to a maximum can never push a field below its minimum because
// every maximum in domain/bounds.go strictly exceeds its minimum plus the
// ellipsis; the sanitizer test asserts that configuration fact.
func SanitizePage(doc *domain.PageDocument) *domain.PageDocument {
	if doc == nil {
		return nil
	}

	doc.Title = clip(doc.Title, domain.TitleMaxLen)
	doc.Description = clip(doc.Description, domain.DescriptionMaxLen)

	for _, section := range doc.Sections {
		sanitizeSection(section)
	}
	return doc
}

func sanitizeSection(section domain.Section) {
	switch s := section.(type) {
	case *domain.HeroSection:
		s.Headline = clip(s.Headline, domain.HeroHeadlineMaxLen)
		s.Subheadline = clip(s.Subheadline, domain.HeroSubheadlineMaxLen)
		if s.CTAButton != nil {
			s.CTAButton.Text = clip(s.CTAButton.Text, domain.CTATextMaxLen)
		}
		clampLayout(s.Layout)

	case *domain.FeatureGridSection:
		if len(s.Features) > domain.FeatureCountMax {
			s.Features = s.Features[:domain.FeatureCountMax]
		}
		for i := range s.Features {
			s.Features[i].Title = clip(s.Features[i].Title, domain.FeatureTitleMaxLen)
			s.Features[i].Description = clip(s.Features[i].Description, domain.FeatureDescMaxLen)
		}
		clampLayout(s.Layout)

	case *domain.MetricsSection:
		if len(s.Metrics) > domain.MetricCountMax {
			s.Metrics = s.Metrics[:domain.MetricCountMax]
		}
		for i := range s.Metrics {
			s.Metrics[i].Value = clip(s.Metrics[i].Value, domain.MetricValueMaxLen)
			s.Metrics[i].Label = clip(s.Metrics[i].Label, domain.MetricLabelMaxLen)
			s.Metrics[i].Description = clip(s.Metrics[i].Description, domain.MetricDescMaxLen)
		}
		clampLayout(s.Layout)

	case *domain.ComparisonTableSection:
		if len(s.Columns) > domain.ComparisonColumnCountMax {
			s.Columns = s.Columns[:domain.ComparisonColumnCountMax]
		}
		for i := range s.Columns {
			s.Columns[i] = clip(s.Columns[i], domain.ComparisonColumnMaxLen)
		}
		if len(s.Rows) > domain.ComparisonRowCountMax {
			s.Rows = s.Rows[:domain.ComparisonRowCountMax]
		}
		for i := range s.Rows {
			s.Rows[i].Feature = clip(s.Rows[i].Feature, domain.ComparisonFeatureMaxLen)
			if len(s.Rows[i].Values) > len(s.Columns) {
				s.Rows[i].Values = s.Rows[i].Values[:len(s.Columns)]
			}
			for j := range s.Rows[i].Values {
				s.Rows[i].Values[j] = clip(s.Rows[i].Values[j], domain.ComparisonValueMaxLen)
			}
		}
		clampLayout(s.Layout)

	case *domain.StepsSection:
		if len(s.Steps) > domain.StepCountMax {
			s.Steps = s.Steps[:domain.StepCountMax]
		}
		sanitizeSteps(s.Steps)
		clampLayout(s.Layout)

	case *domain.CTASection:
		s.Headline = clip(s.Headline, domain.CTAHeadlineMaxLen)
		s.ButtonText = clip(s.ButtonText, domain.CTATextMaxLen)
		s.Subtext = clip(s.Subtext, domain.CTASubtextMaxLen)
		clampLayout(s.Layout)

	case *domain.FAQSection:
		if len(s.Items) > domain.FAQCountMax {
			s.Items = s.Items[:domain.FAQCountMax]
		}
		for i := range s.Items {
			s.Items[i].Question = clip(s.Items[i].Question, domain.FAQQuestionMaxLen)
			s.Items[i].Answer = clip(s.Items[i].Answer, domain.FAQAnswerMaxLen)
		}
		clampLayout(s.Layout)

	case *domain.SingleScreenSection:
		if len(s.Insights) > domain.InsightCountMax {
			s.Insights = s.Insights[:domain.InsightCountMax]
		}
		for i := range s.Insights {
			s.Insights[i] = clip(s.Insights[i], domain.InsightMaxLen)
		}
		if len(s.Stats) > domain.ScreenStatCountMax {
			s.Stats = s.Stats[:domain.ScreenStatCountMax]
		}
		for i := range s.Stats {
			s.Stats[i].Value = clip(s.Stats[i].Value, domain.MetricValueMaxLen)
			s.Stats[i].Label = clip(s.Stats[i].Label, domain.MetricLabelMaxLen)
		}
		if len(s.HowItWorks) > domain.HowItWorksCountMax {
			s.HowItWorks = s.HowItWorks[:domain.HowItWorksCountMax]
		}
		sanitizeSteps(s.HowItWorks)
		if len(s.CTAs) > domain.ScreenCTACountMax {
			s.CTAs = s.CTAs[:domain.ScreenCTACountMax]
		}
		for i := range s.CTAs {
			s.CTAs[i].Text = clip(s.CTAs[i].Text, domain.CTATextMaxLen)
		}
		clampLayout(s.Layout)

	case *domain.UnknownSection:
		// Left untouched; the validator reports it.
	}
}

func sanitizeSteps(steps []domain.Step) {
	for i := range steps {
		steps[i].Title = clip(steps[i].Title, domain.StepTitleMaxLen)
		steps[i].Description = clip(steps[i].Description, domain.StepDescMaxLen)
	}
}

// clampLayout pulls a declared height hint back into its documented range.
// A zero hint means "unset" and is left alone so the renderer's equal-share
// fallback still triggers.
func clampLayout(layout *domain.SectionLayout) {
	if layout == nil || layout.RequestedHeightPercent == 0 {
		return
	}
	if layout.RequestedHeightPercent < domain.HeightPercentMin {
		layout.RequestedHeightPercent = domain.HeightPercentMin
	}
	if layout.RequestedHeightPercent > domain.HeightPercentMax {
		layout.RequestedHeightPercent = domain.HeightPercentMax
	}
}

// clip shortens s to at most max bytes, appending an ellipsis when anything
// was cut. Cuts land on rune boundaries so the output stays valid UTF-8.
// Clipping is stable: applying it twice equals once.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:runeBoundary(s, max)]
	}
	return strings.TrimSpace(s[:runeBoundary(s, max-3)]) + "..."
}

// runeBoundary backs cut up to the nearest rune start at or before it.
func runeBoundary(s string, cut int) int {
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return cut
}
