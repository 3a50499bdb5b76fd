package services

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pageforge/internal/core/domain"
)

func TestSanitizePageClipsOverlongFields(t *testing.T) {
	doc := validPage()
	doc.Title = strings.Repeat("t", domain.TitleMaxLen+50)
	hero := doc.Sections[0].(*domain.HeroSection)
	hero.Headline = strings.Repeat("h", domain.HeroHeadlineMaxLen+20)

	SanitizePage(doc)

	assert.LessOrEqual(t, len(doc.Title), domain.TitleMaxLen)
	assert.True(t, strings.HasSuffix(doc.Title, "..."))
	assert.LessOrEqual(t, len(hero.Headline), domain.HeroHeadlineMaxLen)
	assert.True(t, strings.HasSuffix(hero.Headline, "..."))
}

func TestSanitizePageLeavesConformingFieldsAlone(t *testing.T) {
	doc := validPage()
	want, err := json.Marshal(doc)
	require.NoError(t, err)

	SanitizePage(doc)

	got, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestSanitizePageIsIdempotent(t *testing.T) {
	doc := validPage()
	doc.Title = strings.Repeat("word ", 40)
	grid := doc.Sections[1].(*domain.FeatureGridSection)
	grid.Features[0].Description = strings.Repeat("d", domain.FeatureDescMaxLen*2)

	SanitizePage(doc)
	once, err := json.Marshal(doc)
	require.NoError(t, err)

	SanitizePage(doc)
	twice, err := json.Marshal(doc)
	require.NoError(t, err)

	assert.JSONEq(t, string(once), string(twice))
}

func TestSanitizePageTruncatesArrays(t *testing.T) {
	grid := &domain.FeatureGridSection{}
	for i := 0; i < domain.FeatureCountMax+3; i++ {
		grid.Features = append(grid.Features, domain.Feature{
			Title:       "Feature title",
			Description: "A feature description of acceptable length.",
		})
	}
	doc := validPage()
	doc.Sections[1] = grid

	SanitizePage(doc)
	assert.Len(t, grid.Features, domain.FeatureCountMax)
}

func TestSanitizePageClampsLayoutHeights(t *testing.T) {
	doc := validPage()
	doc.Sections[0].(*domain.HeroSection).Layout.RequestedHeightPercent = 150
	doc.Sections[1].(*domain.FeatureGridSection).Layout.RequestedHeightPercent = 5
	doc.Sections[2].(*domain.CTASection).Layout = nil

	SanitizePage(doc)

	assert.InDelta(t, float64(domain.HeightPercentMax), doc.Sections[0].LayoutHint().RequestedHeightPercent, 0.001)
	assert.InDelta(t, float64(domain.HeightPercentMin), doc.Sections[1].LayoutHint().RequestedHeightPercent, 0.001)
	assert.Nil(t, doc.Sections[2].LayoutHint())
}

func TestSanitizePageLeavesUnsetHeightAlone(t *testing.T) {
	doc := validPage()
	doc.Sections[0].(*domain.HeroSection).Layout = &domain.SectionLayout{}

	SanitizePage(doc)
	// Zero means unset; the renderer's equal-share fallback depends on it.
	assert.Zero(t, doc.Sections[0].LayoutHint().RequestedHeightPercent)
}

func TestSanitizeThenValidateRemovesMaxViolations(t *testing.T) {
	doc := validPage()
	doc.Title = strings.Repeat("t", domain.TitleMaxLen*2)
	doc.Description = strings.Repeat("d", domain.DescriptionMaxLen*2)
	hero := doc.Sections[0].(*domain.HeroSection)
	hero.Headline = strings.Repeat("h", domain.HeroHeadlineMaxLen*2)
	hero.CTAButton.Text = strings.Repeat("c", domain.CTATextMaxLen*2)

	require.NotEmpty(t, ValidatePage(doc))
	SanitizePage(doc)
	assert.Empty(t, ValidatePage(doc))
}

// TestBoundsLeaveClipHeadroom asserts the configuration fact the sanitizer
// relies on: every maximum strictly exceeds its minimum plus the 3-char
// ellipsis, so clipping to a maximum can never create a minimum violation.
func TestBoundsLeaveClipHeadroom(t *testing.T) {
	pairs := []struct {
		name     string
		min, max int
	}{
		{"title", domain.TitleMinLen, domain.TitleMaxLen},
		{"description", domain.DescriptionMinLen, domain.DescriptionMaxLen},
		{"hero headline", domain.HeroHeadlineMinLen, domain.HeroHeadlineMaxLen},
		{"hero subheadline", domain.HeroSubheadlineMinLen, domain.HeroSubheadlineMaxLen},
		{"cta text", domain.CTATextMinLen, domain.CTATextMaxLen},
		{"feature title", domain.FeatureTitleMinLen, domain.FeatureTitleMaxLen},
		{"feature description", domain.FeatureDescMinLen, domain.FeatureDescMaxLen},
		{"metric value", domain.MetricValueMinLen, domain.MetricValueMaxLen},
		{"metric label", domain.MetricLabelMinLen, domain.MetricLabelMaxLen},
		{"metric description", domain.MetricDescMinLen, domain.MetricDescMaxLen},
		{"comparison column", domain.ComparisonColumnMinLen, domain.ComparisonColumnMaxLen},
		{"comparison feature", domain.ComparisonFeatureMinLen, domain.ComparisonFeatureMaxLen},
		{"comparison value", domain.ComparisonValueMinLen, domain.ComparisonValueMaxLen},
		{"step title", domain.StepTitleMinLen, domain.StepTitleMaxLen},
		{"step description", domain.StepDescMinLen, domain.StepDescMaxLen},
		{"cta headline", domain.CTAHeadlineMinLen, domain.CTAHeadlineMaxLen},
		{"cta subtext", domain.CTASubtextMinLen, domain.CTASubtextMaxLen},
		{"faq question", domain.FAQQuestionMinLen, domain.FAQQuestionMaxLen},
		{"faq answer", domain.FAQAnswerMinLen, domain.FAQAnswerMaxLen},
		{"insight", domain.InsightMinLen, domain.InsightMaxLen},
	}

	for _, p := range pairs {
		assert.Greater(t, p.max, p.min+3, p.name)
	}
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "exact", clip("exact", 5))

	clipped := clip("a rather long sentence that exceeds the limit", 20)
	assert.LessOrEqual(t, len(clipped), 20)
	assert.True(t, strings.HasSuffix(clipped, "..."))
	assert.Equal(t, clipped, clip(clipped, 20))
}

func TestClipKeepsRunesIntact(t *testing.T) {
	// Every cut position inside a multi-byte rune must back up to a
	// boundary instead of splitting it.
	s := "Bières artisanales en gros : commandes, tournées et factures"
	for max := 4; max < len(s); max++ {
		clipped := clip(s, max)
		assert.True(t, utf8.ValidString(clipped), "max=%d: %q", max, clipped)
		assert.LessOrEqual(t, len(clipped), max)
		assert.Equal(t, clipped, clip(clipped, max), "max=%d", max)
	}
}
