package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pageforge/internal/core/domain"
)

const fencedResponse = "Sure! Here is the page you asked for:\n" +
	"```json\n" +
	`{
  "type": "product_overview",
  "title": "Distribution Without The Spreadsheets",
  "description": "How independent craft producers run wholesale, self-distribution and taproom sales from one place.",
  "sections": [
    {"type": "hero", "headline": "Solve Your Distribution Challenges Today"}
  ]
}` + "\n```\nHope that helps!"

func TestParsePagePlainJSON(t *testing.T) {
	raw := `{"type":"product_overview","title":"A perfectly plain title","description":"A description easily long enough to satisfy the documented minimum.","sections":[{"type":"hero","headline":"A plain headline"}]}`

	doc, err := ParsePage(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.PageProductOverview, doc.Type)
	require.Len(t, doc.Sections, 1)
}

func TestParsePageStripsCodeFence(t *testing.T) {
	doc, err := ParsePage(fencedResponse)
	require.NoError(t, err)

	require.Len(t, doc.Sections, 1)
	hero, ok := doc.Sections[0].(*domain.HeroSection)
	require.True(t, ok)
	assert.Equal(t, "Solve Your Distribution Challenges Today", hero.Headline)
}

func TestParsePageExtractsObjectFromProse(t *testing.T) {
	raw := `Here's what I came up with: {"type":"roi_report","title":"Numbers for operators","description":"Concrete, defensible numbers for operators considering a switch away from spreadsheets.","sections":[{"type":"metrics","metrics":[{"value":"38%","label":"fewer order errors"}]}]} Let me know if you'd like changes.`

	doc, err := ParsePage(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.PageROIReport, doc.Type)
}

func TestParsePageBracesInsideStrings(t *testing.T) {
	// Braces and escaped quotes inside string values must not confuse
	// the span matcher.
	raw := `{"type":"product_overview","title":"Braces {inside} a \"title\"","description":"A description with } stray braces { that stays perfectly parseable regardless.","sections":[{"type":"hero","headline":"Headline with } brace"}]}`

	doc, err := ParsePage(raw)
	require.NoError(t, err)
	assert.Equal(t, `Braces {inside} a "title"`, doc.Title)
}

func TestParsePageFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t  "},
		{"no object", "I could not generate a page, sorry."},
		{"unbalanced", `{"type":"product_overview","title":"never closes`},
		{"invalid json span", `{"type": product_overview}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParsePage(tt.raw)
			assert.Nil(t, doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrParse), err)
		})
	}
}

func TestFindJSONObjectOutermostSpan(t *testing.T) {
	payload, ok := findJSONObject(`noise {"a":{"b":1}} trailing {"c":2}`)
	require.True(t, ok)
	// Greedy from the first opening brace: the first balanced span wins.
	assert.Equal(t, `{"a":{"b":1}}`, payload)
}

func TestStripCodeFenceVariants(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}
