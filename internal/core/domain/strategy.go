package domain

// LayoutMode is the overall density of an intent's page plan.
type LayoutMode string

// Available layout modes.
const (
	LayoutCompact  LayoutMode = "compact"
	LayoutBalanced LayoutMode = "balanced"
	LayoutSpacious LayoutMode = "spacious"
)

// IsValid returns true if the layout mode is recognised.
func (m LayoutMode) IsValid() bool {
	switch m {
	case LayoutCompact, LayoutBalanced, LayoutSpacious:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m LayoutMode) String() string {
	return string(m)
}

// SectionSpec is one planned section: its type, target height share and
// the content the generator should put in it. The generator never chooses
// section count or type - only content and height weighting within the
// fixed sequence.
type SectionSpec struct {
	Type SectionType

	// HeightPercent is the target height share. The generator may deviate
	// by up to 5 percentage points as long as the page sums to 95-105.
	HeightPercent int

	// ContentFocus tells the generator what this section is for.
	ContentFocus string
}

// LayoutStrategy is the fixed, intent-specific page plan. Section order is
// semantically meaningful: it is the required render order. One strategy
// exists per UserIntent; the mapping is a curated table, never computed.
type LayoutStrategy struct {
	Mode LayoutMode

	// Sections is the ordered plan. Length 2-5 for every intent except
	// off_topic, which may degrade to a minimal pair.
	Sections []SectionSpec

	// Strategy explains the plan's editorial rationale.
	Strategy string

	// ContentDensity is a qualitative density tag surfaced to the generator.
	ContentDensity string
}

// HeightSum returns the summed height targets across the plan.
func (s LayoutStrategy) HeightSum() int {
	sum := 0
	for _, sec := range s.Sections {
		sum += sec.HeightPercent
	}
	return sum
}

// ContentGuidelines steer generation per intent. They are advisory: the
// schema validator enforces only the structural bounds in bounds.go.
type ContentGuidelines struct {
	HeadlineMinLen int
	HeadlineMaxLen int
	HeadlineTone   string

	SubheadlineMaxLen int
	SubheadlineTone   string

	MaxFeatures int

	FeatureDescMinLen int
	FeatureDescMaxLen int

	// ExampleHeadlines are shown to the generator as register samples.
	ExampleHeadlines []string
}
