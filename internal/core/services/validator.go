package services

import (
	"fmt"

	"github.com/custodia-labs/pageforge/internal/core/domain"
)

// ValidatePage checks a parsed document against the per-section structural
// rules and returns the list of violations; empty means acceptable. It is
// pure and total: malformed input produces violations, never a panic. A
// completely absent type/title/description or missing/empty sections
// short-circuits to a single violation and skips per-section checks.
func ValidatePage(doc *domain.PageDocument) []string {
	if doc == nil {
		return []string{"document is missing"}
	}
	if doc.Type == "" {
		return []string{"document type is missing"}
	}
	if doc.Title == "" {
		return []string{"document title is missing"}
	}
	if doc.Description == "" {
		return []string{"document description is missing"}
	}
	if len(doc.Sections) == 0 {
		return []string{"document has no sections"}
	}

	v := &violations{}
	if !doc.Type.IsValid() {
		v.addf("type: unknown page type %q", doc.Type)
	}
	v.str("title", doc.Title, domain.TitleMinLen, domain.TitleMaxLen)
	v.str("description", doc.Description, domain.DescriptionMinLen, domain.DescriptionMaxLen)

	for i, section := range doc.Sections {
		validateSection(v, i, section)
	}
	return v.items
}

// validateSection dispatches on the union tag.
func validateSection(v *violations, i int, section domain.Section) {
	at := func(field string) string { return fmt.Sprintf("sections[%d].%s", i, field) }

	switch s := section.(type) {
	case *domain.HeroSection:
		v.str(at("headline"), s.Headline, domain.HeroHeadlineMinLen, domain.HeroHeadlineMaxLen)
		v.optStr(at("subheadline"), s.Subheadline, domain.HeroSubheadlineMinLen, domain.HeroSubheadlineMaxLen)
		if s.CTAButton != nil {
			v.str(at("ctaButton.text"), s.CTAButton.Text, domain.CTATextMinLen, domain.CTATextMaxLen)
		}

	case *domain.FeatureGridSection:
		v.count(at("features"), len(s.Features), domain.FeatureCountMin, domain.FeatureCountMax)
		for j, f := range s.Features {
			v.str(at(fmt.Sprintf("features[%d].title", j)), f.Title, domain.FeatureTitleMinLen, domain.FeatureTitleMaxLen)
			v.str(at(fmt.Sprintf("features[%d].description", j)), f.Description, domain.FeatureDescMinLen, domain.FeatureDescMaxLen)
		}

	case *domain.MetricsSection:
		v.count(at("metrics"), len(s.Metrics), domain.MetricCountMin, domain.MetricCountMax)
		for j, m := range s.Metrics {
			v.str(at(fmt.Sprintf("metrics[%d].value", j)), m.Value, domain.MetricValueMinLen, domain.MetricValueMaxLen)
			v.str(at(fmt.Sprintf("metrics[%d].label", j)), m.Label, domain.MetricLabelMinLen, domain.MetricLabelMaxLen)
			v.optStr(at(fmt.Sprintf("metrics[%d].description", j)), m.Description, domain.MetricDescMinLen, domain.MetricDescMaxLen)
		}

	case *domain.ComparisonTableSection:
		v.count(at("columns"), len(s.Columns), domain.ComparisonColumnCountMin, domain.ComparisonColumnCountMax)
		for j, col := range s.Columns {
			v.str(at(fmt.Sprintf("columns[%d]", j)), col, domain.ComparisonColumnMinLen, domain.ComparisonColumnMaxLen)
		}
		v.count(at("rows"), len(s.Rows), domain.ComparisonRowCountMin, domain.ComparisonRowCountMax)
		for j, row := range s.Rows {
			v.str(at(fmt.Sprintf("rows[%d].feature", j)), row.Feature, domain.ComparisonFeatureMinLen, domain.ComparisonFeatureMaxLen)
			if len(row.Values) != len(s.Columns) {
				v.addf("%s: has %d values, want one per column (%d)",
					at(fmt.Sprintf("rows[%d].values", j)), len(row.Values), len(s.Columns))
			}
			for k, val := range row.Values {
				v.str(at(fmt.Sprintf("rows[%d].values[%d]", j, k)), val, domain.ComparisonValueMinLen, domain.ComparisonValueMaxLen)
			}
		}

	case *domain.StepsSection:
		v.count(at("steps"), len(s.Steps), domain.StepCountMin, domain.StepCountMax)
		for j, step := range s.Steps {
			v.str(at(fmt.Sprintf("steps[%d].title", j)), step.Title, domain.StepTitleMinLen, domain.StepTitleMaxLen)
			v.str(at(fmt.Sprintf("steps[%d].description", j)), step.Description, domain.StepDescMinLen, domain.StepDescMaxLen)
		}

	case *domain.CTASection:
		v.str(at("headline"), s.Headline, domain.CTAHeadlineMinLen, domain.CTAHeadlineMaxLen)
		v.str(at("buttonText"), s.ButtonText, domain.CTATextMinLen, domain.CTATextMaxLen)
		v.optStr(at("subtext"), s.Subtext, domain.CTASubtextMinLen, domain.CTASubtextMaxLen)

	case *domain.FAQSection:
		v.count(at("items"), len(s.Items), domain.FAQCountMin, domain.FAQCountMax)
		for j, item := range s.Items {
			v.str(at(fmt.Sprintf("items[%d].question", j)), item.Question, domain.FAQQuestionMinLen, domain.FAQQuestionMaxLen)
			v.str(at(fmt.Sprintf("items[%d].answer", j)), item.Answer, domain.FAQAnswerMinLen, domain.FAQAnswerMaxLen)
		}

	case *domain.SingleScreenSection:
		v.count(at("insights"), len(s.Insights), domain.InsightCountMin, domain.InsightCountMax)
		for j, insight := range s.Insights {
			v.str(at(fmt.Sprintf("insights[%d]", j)), insight, domain.InsightMinLen, domain.InsightMaxLen)
		}
		v.count(at("stats"), len(s.Stats), domain.ScreenStatCountMin, domain.ScreenStatCountMax)
		for j, stat := range s.Stats {
			v.str(at(fmt.Sprintf("stats[%d].value", j)), stat.Value, domain.MetricValueMinLen, domain.MetricValueMaxLen)
			v.str(at(fmt.Sprintf("stats[%d].label", j)), stat.Label, domain.MetricLabelMinLen, domain.MetricLabelMaxLen)
		}
		v.count(at("howItWorks"), len(s.HowItWorks), domain.HowItWorksCountMin, domain.HowItWorksCountMax)
		for j, step := range s.HowItWorks {
			v.str(at(fmt.Sprintf("howItWorks[%d].title", j)), step.Title, domain.StepTitleMinLen, domain.StepTitleMaxLen)
			v.str(at(fmt.Sprintf("howItWorks[%d].description", j)), step.Description, domain.StepDescMinLen, domain.StepDescMaxLen)
		}
		v.count(at("ctas"), len(s.CTAs), domain.ScreenCTACountMin, domain.ScreenCTACountMax)
		for j, cta := range s.CTAs {
			v.str(at(fmt.Sprintf("ctas[%d].text", j)), cta.Text, domain.CTATextMinLen, domain.CTATextMaxLen)
		}

	case *domain.UnknownSection:
		v.addf("sections[%d]: unknown section type %q", i, s.Type)

	default:
		v.addf("sections[%d]: unsupported section value", i)
	}
}

// violations accumulates human-readable violation strings.
type violations struct {
	items []string
}

func (v *violations) addf(format string, args ...any) {
	v.items = append(v.items, fmt.Sprintf(format, args...))
}

// str checks a required string field's length bounds.
func (v *violations) str(field, val string, min, max int) {
	switch {
	case val == "":
		v.addf("%s: required field is empty", field)
	case len(val) < min:
		v.addf("%s: %d chars, minimum is %d", field, len(val), min)
	case len(val) > max:
		v.addf("%s: %d chars, maximum is %d", field, len(val), max)
	}
}

// optStr checks an optional string field; empty is fine.
func (v *violations) optStr(field, val string, min, max int) {
	if val == "" {
		return
	}
	v.str(field, val, min, max)
}

// count checks an array length bound.
func (v *violations) count(field string, n, min, max int) {
	switch {
	case n < min:
		v.addf("%s: %d entries, minimum is %d", field, n, min)
	case n > max:
		v.addf("%s: %d entries, maximum is %d", field, n, max)
	}
}
