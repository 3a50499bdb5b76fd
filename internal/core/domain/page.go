package domain

import (
	"encoding/json"
	"fmt"
)

// PageType identifies what kind of marketing page a document is.
// PageType and UserIntent are related but distinct axes: PageType is the
// page's purpose, UserIntent drives which section sequence fills it.
type PageType string

// Available page types.
const (
	PageProductOverview     PageType = "product_overview"
	PageFeatureDeepDive     PageType = "feature_deep_dive"
	PageComparison          PageType = "comparison_page"
	PageROIReport           PageType = "roi_report"
	PageImplementationGuide PageType = "implementation_guide"
	PageSolutionBrief       PageType = "solution_brief"
)

// IsValid returns true if the page type is recognised.
func (p PageType) IsValid() bool {
	switch p {
	case PageProductOverview, PageFeatureDeepDive, PageComparison,
		PageROIReport, PageImplementationGuide, PageSolutionBrief:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p PageType) String() string {
	return string(p)
}

// SectionType identifies one of the eight renderable section kinds.
type SectionType string

// Available section types.
const (
	SectionHero            SectionType = "hero"
	SectionFeatureGrid     SectionType = "feature_grid"
	SectionMetrics         SectionType = "metrics"
	SectionComparisonTable SectionType = "comparison_table"
	SectionSteps           SectionType = "steps"
	SectionCTA             SectionType = "cta"
	SectionFAQ             SectionType = "faq"
	SectionSingleScreen    SectionType = "single_screen"
)

// IsValid returns true if the section type is recognised.
func (t SectionType) IsValid() bool {
	switch t {
	case SectionHero, SectionFeatureGrid, SectionMetrics, SectionComparisonTable,
		SectionSteps, SectionCTA, SectionFAQ, SectionSingleScreen:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SectionType) String() string {
	return string(t)
}

// SectionLayout is the generator's declared height intent for a section.
// It is produced by this core and consumed by rendering. Absence of
// RequestedHeightPercent triggers equal-share distribution in the renderer.
type SectionLayout struct {
	RequestedHeightPercent float64 `json:"requestedHeightPercent,omitempty"`
	Size                   string  `json:"size,omitempty"`
	VisualWeight           string  `json:"visualWeight,omitempty"`
}

// Section is a closed tagged union over the eight section kinds.
// The JSON wire shape is flat: the variant's fields sit next to the
// "type" discriminator, e.g. {"type":"hero","headline":"..."}.
//
// An unrecognised tag decodes into UnknownSection rather than failing,
// so that the schema validator (not the parser) reports it.
type Section interface {
	// Kind returns the discriminator tag.
	Kind() SectionType

	// LayoutHint returns the declared layout, or nil.
	LayoutHint() *SectionLayout
}

// CTAButton is a clickable call-to-action.
type CTAButton struct {
	Text string `json:"text"`
	Href string `json:"href,omitempty"`
}

// HeroSection is the page-opening banner.
type HeroSection struct {
	Headline    string         `json:"headline"`
	Subheadline string         `json:"subheadline,omitempty"`
	CTAButton   *CTAButton     `json:"ctaButton,omitempty"`
	Layout      *SectionLayout `json:"layout,omitempty"`
}

// Feature is one cell of a feature grid.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// FeatureGridSection presents 1-6 product features.
type FeatureGridSection struct {
	Features []Feature      `json:"features"`
	Layout   *SectionLayout `json:"layout,omitempty"`
}

// Metric is one headline number.
type Metric struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// MetricsSection presents 1-4 headline numbers.
type MetricsSection struct {
	Metrics []Metric       `json:"metrics"`
	Layout  *SectionLayout `json:"layout,omitempty"`
}

// ComparisonRow is one feature row of a comparison table.
type ComparisonRow struct {
	Feature string   `json:"feature"`
	Values  []string `json:"values"`
}

// ComparisonTableSection compares the product against alternatives.
// Each row carries exactly one value per column.
type ComparisonTableSection struct {
	Columns []string        `json:"columns"`
	Rows    []ComparisonRow `json:"rows"`
	Layout  *SectionLayout  `json:"layout,omitempty"`
}

// Step is one step of a how-it-works sequence.
type Step struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// StepsSection presents a 2-6 step process.
type StepsSection struct {
	Steps  []Step         `json:"steps"`
	Layout *SectionLayout `json:"layout,omitempty"`
}

// CTASection is a closing call-to-action block.
type CTASection struct {
	Headline   string         `json:"headline"`
	ButtonText string         `json:"buttonText"`
	Subtext    string         `json:"subtext,omitempty"`
	Layout     *SectionLayout `json:"layout,omitempty"`
}

// FAQItem is one question/answer pair.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQSection presents 1-8 question/answer pairs.
type FAQSection struct {
	Items  []FAQItem      `json:"items"`
	Layout *SectionLayout `json:"layout,omitempty"`
}

// Stat is a compact value/label pair for the single-screen layout.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ScreenCTA is a call-to-action on the single-screen layout.
type ScreenCTA struct {
	Text   string `json:"text"`
	Action string `json:"action,omitempty"`
}

// SingleScreenSection is a dense one-screen page body.
type SingleScreenSection struct {
	Insights   []string       `json:"insights"`
	Stats      []Stat         `json:"stats"`
	HowItWorks []Step         `json:"howItWorks"`
	CTAs       []ScreenCTA    `json:"ctas"`
	Layout     *SectionLayout `json:"layout,omitempty"`
}

// UnknownSection preserves a section whose type tag is not recognised.
// It exists so that decoding never fails on structural drift; the schema
// validator reports the unknown tag as a violation instead.
type UnknownSection struct {
	Type string
	Raw  json.RawMessage
}

// Kind implementations.

func (s *HeroSection) Kind() SectionType            { return SectionHero }
func (s *FeatureGridSection) Kind() SectionType     { return SectionFeatureGrid }
func (s *MetricsSection) Kind() SectionType         { return SectionMetrics }
func (s *ComparisonTableSection) Kind() SectionType { return SectionComparisonTable }
func (s *StepsSection) Kind() SectionType           { return SectionSteps }
func (s *CTASection) Kind() SectionType             { return SectionCTA }
func (s *FAQSection) Kind() SectionType             { return SectionFAQ }
func (s *SingleScreenSection) Kind() SectionType    { return SectionSingleScreen }
func (s *UnknownSection) Kind() SectionType         { return SectionType(s.Type) }

// LayoutHint implementations.

func (s *HeroSection) LayoutHint() *SectionLayout            { return s.Layout }
func (s *FeatureGridSection) LayoutHint() *SectionLayout     { return s.Layout }
func (s *MetricsSection) LayoutHint() *SectionLayout         { return s.Layout }
func (s *ComparisonTableSection) LayoutHint() *SectionLayout { return s.Layout }
func (s *StepsSection) LayoutHint() *SectionLayout           { return s.Layout }
func (s *CTASection) LayoutHint() *SectionLayout             { return s.Layout }
func (s *FAQSection) LayoutHint() *SectionLayout             { return s.Layout }
func (s *SingleScreenSection) LayoutHint() *SectionLayout    { return s.Layout }
func (s *UnknownSection) LayoutHint() *SectionLayout         { return nil }

// PageDocument is the complete structured output: title, description and
// ordered sections. Downstream rendering treats its JSON form as a
// bit-exact contract.
type PageDocument struct {
	Type        PageType  `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Sections    []Section `json:"sections"`
}

// pageDocumentWire mirrors PageDocument with raw sections for (un)marshalling.
type pageDocumentWire struct {
	Type        PageType          `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Sections    []json.RawMessage `json:"sections"`
}

// MarshalJSON flattens each section variant next to its type tag.
func (d PageDocument) MarshalJSON() ([]byte, error) {
	wire := pageDocumentWire{
		Type:        d.Type,
		Title:       d.Title,
		Description: d.Description,
		Sections:    make([]json.RawMessage, 0, len(d.Sections)),
	}
	for i, s := range d.Sections {
		raw, err := marshalSection(s)
		if err != nil {
			return nil, fmt.Errorf("marshal section %d: %w", i, err)
		}
		wire.Sections = append(wire.Sections, raw)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON dispatches each section on its type tag.
func (d *PageDocument) UnmarshalJSON(data []byte) error {
	var wire pageDocumentWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	d.Type = wire.Type
	d.Title = wire.Title
	d.Description = wire.Description
	d.Sections = nil
	for i, raw := range wire.Sections {
		s, err := DecodeSection(raw)
		if err != nil {
			return fmt.Errorf("decode section %d: %w", i, err)
		}
		d.Sections = append(d.Sections, s)
	}
	return nil
}

// marshalSection injects the type tag into the variant's flat JSON object.
func marshalSection(s Section) (json.RawMessage, error) {
	if u, ok := s.(*UnknownSection); ok {
		return u.Raw, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	m["type"] = s.Kind().String()
	return json.Marshal(m)
}

// DecodeSection decodes one flat section object into its variant.
// An unrecognised type tag yields an UnknownSection, never an error.
func DecodeSection(raw json.RawMessage) (Section, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("probe section type: %w", err)
	}

	var s Section
	switch SectionType(probe.Type) {
	case SectionHero:
		s = &HeroSection{}
	case SectionFeatureGrid:
		s = &FeatureGridSection{}
	case SectionMetrics:
		s = &MetricsSection{}
	case SectionComparisonTable:
		s = &ComparisonTableSection{}
	case SectionSteps:
		s = &StepsSection{}
	case SectionCTA:
		s = &CTASection{}
	case SectionFAQ:
		s = &FAQSection{}
	case SectionSingleScreen:
		s = &SingleScreenSection{}
	default:
		return &UnknownSection{Type: probe.Type, Raw: append(json.RawMessage(nil), raw...)}, nil
	}

	if err := json.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("decode %s section: %w", probe.Type, err)
	}
	return s, nil
}
