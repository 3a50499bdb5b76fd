package services

import "github.com/custodia-labs/pageforge/internal/core/domain"

// strategyTable maps every intent to its fixed page plan. Section counts,
// types and order are curated by product design, never derived: the
// generator only fills content and weights heights within the fixed
// sequence. Height targets per intent sum to 100.
var strategyTable = map[domain.UserIntent]domain.LayoutStrategy{
	domain.IntentProductInquiry: {
		Mode: domain.LayoutBalanced,
		Sections: []domain.SectionSpec{
			{Type: domain.SectionHero, HeightPercent: 35, ContentFocus: "what BrewLine is and the single biggest outcome it delivers"},
			{Type: domain.SectionFeatureGrid, HeightPercent: 40, ContentFocus: "the three or four capabilities a first-time visitor cares about"},
			{Type: domain.SectionCTA, HeightPercent: 25, ContentFocus: "invite a demo booking"},
		},
		Strategy:       "Lead with identity, prove with capabilities, close with a demo ask.",
		ContentDensity: "moderate",
	},
	domain.IntentFeatureQuestion: {
		Mode: domain.LayoutBalanced,
		Sections: []domain.SectionSpec{
			{Type: domain.SectionHero, HeightPercent: 25, ContentFocus: "answer the asked feature question directly in the headline"},
			{Type: domain.SectionFeatureGrid, HeightPercent: 45, ContentFocus: "the asked feature first, then its two closest companions"},
			{Type: domain.SectionFAQ, HeightPercent: 30, ContentFocus: "follow-up questions a visitor asks right after this one"},
		},
		Strategy:       "Answer first, then widen to adjacent capabilities and anticipated follow-ups.",
		ContentDensity: "detailed",
	},
	domain.IntentComparison: {
		Mode: domain.LayoutSpacious,
		Sections: []domain.SectionSpec{
			{Type: domain.SectionHero, HeightPercent: 25, ContentFocus: "the honest one-line reason teams pick BrewLine"},
			{Type: domain.SectionComparisonTable, HeightPercent: 50, ContentFocus: "BrewLine against spreadsheets and legacy distributor portals, feature by feature"},
			{Type: domain.SectionCTA, HeightPercent: 25, ContentFocus: "offer a migration consultation"},
		},
		Strategy:       "Let the table carry the argument; keep the framing short on both sides.",
		ContentDensity: "dense",
	},
	domain.IntentStatsROI: {
		Mode: domain.LayoutBalanced,
		Sections: []domain.SectionSpec{
			{Type: domain.SectionHero, HeightPercent: 25, ContentFocus: "the headline number that matters most to an operator"},
			{Type: domain.SectionMetrics, HeightPercent: 45, ContentFocus: "three or four concrete, defensible numbers with plain labels"},
			{Type: domain.SectionCTA, HeightPercent: 30, ContentFocus: "offer an ROI worksheet"},
		},
		Strategy:       "Numbers up front, numbers in the middle, a numbers-flavoured ask at the end.",
		ContentDensity: "moderate",
	},
	domain.IntentImplementation: {
		Mode: domain.LayoutSpacious,
		Sections: []domain.SectionSpec{
			{Type: domain.SectionHero, HeightPercent: 20, ContentFocus: "how little disruption adoption causes"},
			{Type: domain.SectionSteps, HeightPercent: 45, ContentFocus: "the onboarding path from signup to first live order"},
			{Type: domain.SectionFAQ, HeightPercent: 20, ContentFocus: "migration, training and data-import concerns"},
			{Type: domain.SectionCTA, HeightPercent: 15, ContentFocus: "start onboarding"},
		},
		Strategy:       "Walk the visitor through the path and defuse switching anxiety before the ask.",
		ContentDensity: "detailed",
	},
	domain.IntentUseCase: {
		Mode: domain.LayoutCompact,
		Sections: []domain.SectionSpec{
			{Type: domain.SectionHero, HeightPercent: 30, ContentFocus: "mirror the visitor's own scenario back at them"},
			{Type: domain.SectionSingleScreen, HeightPercent: 70, ContentFocus: "insights, stats and a how-it-works tuned to the described business"},
		},
		Strategy:       "One dense, personalised screen beats a generic scroll for a visitor who described themselves.",
		ContentDensity: "dense",
	},
	// Minimal degrade plan: off-topic visitors get a polite redirect, not
	// a full page.
	domain.IntentOffTopic: {
		Mode: domain.LayoutCompact,
		Sections: []domain.SectionSpec{
			{Type: domain.SectionHero, HeightPercent: 60, ContentFocus: "a friendly redirect to what BrewLine actually does"},
			{Type: domain.SectionCTA, HeightPercent: 40, ContentFocus: "invite an on-topic question"},
		},
		Strategy:       "Acknowledge, redirect, and keep the door open.",
		ContentDensity: "sparse",
	},
}

// StrategyFor returns the fixed layout strategy for an intent. It is a pure
// table lookup, total over UserIntent: an unrecognised intent receives the
// use_case plan, the most tolerant default.
func StrategyFor(intent domain.UserIntent) domain.LayoutStrategy {
	if s, ok := strategyTable[intent]; ok {
		return s
	}
	return strategyTable[domain.IntentUseCase]
}

// guidelineTable holds per-intent content steering. Advisory only: the
// schema validator enforces nothing from this table beyond the structural
// bounds it already checks.
var guidelineTable = map[domain.UserIntent]domain.ContentGuidelines{
	domain.IntentProductInquiry: {
		HeadlineMinLen: 20, HeadlineMaxLen: 70,
		HeadlineTone:      "confident and plain-spoken",
		SubheadlineMaxLen: 120,
		SubheadlineTone:   "concrete, names the buyer",
		MaxFeatures:       4,
		FeatureDescMinLen: 40, FeatureDescMaxLen: 160,
		ExampleHeadlines: []string{
			"Distribution Software Built For Independent Brewers",
			"Every Keg, Every Account, One Dashboard",
			"Run Your Beverage Distribution Without The Spreadsheets",
		},
	},
	domain.IntentFeatureQuestion: {
		HeadlineMinLen: 20, HeadlineMaxLen: 80,
		HeadlineTone:      "direct answer to the question asked",
		SubheadlineMaxLen: 120,
		SubheadlineTone:   "specific, mentions the feature by name",
		MaxFeatures:       3,
		FeatureDescMinLen: 50, FeatureDescMaxLen: 180,
		ExampleHeadlines: []string{
			"Yes - Real-Time Keg Tracking Is Built In",
			"Inventory Syncs To Your Taproom POS Automatically",
			"Route Planning That Understands Delivery Windows",
		},
	},
	domain.IntentComparison: {
		HeadlineMinLen: 20, HeadlineMaxLen: 75,
		HeadlineTone:      "assured but never dismissive of alternatives",
		SubheadlineMaxLen: 110,
		SubheadlineTone:   "frames the comparison criteria",
		MaxFeatures:       4,
		FeatureDescMinLen: 40, FeatureDescMaxLen: 150,
		ExampleHeadlines: []string{
			"Why Breweries Leave Spreadsheets For BrewLine",
			"BrewLine vs. Legacy Portals: The Honest Rundown",
			"Built For Beverage, Not Adapted To It",
		},
	},
	domain.IntentStatsROI: {
		HeadlineMinLen: 15, HeadlineMaxLen: 70,
		HeadlineTone:      "quantified, leads with a number",
		SubheadlineMaxLen: 110,
		SubheadlineTone:   "sources the number",
		MaxFeatures:       4,
		FeatureDescMinLen: 40, FeatureDescMaxLen: 140,
		ExampleHeadlines: []string{
			"Distributors Cut Order Errors 38% In 90 Days",
			"11 Hours A Week Back From Manual Reconciliation",
			"The ROI Math Behind Switching To BrewLine",
		},
	},
	domain.IntentImplementation: {
		HeadlineMinLen: 20, HeadlineMaxLen: 75,
		HeadlineTone:      "reassuring and procedural",
		SubheadlineMaxLen: 120,
		SubheadlineTone:   "names the timeline",
		MaxFeatures:       4,
		FeatureDescMinLen: 50, FeatureDescMaxLen: 180,
		ExampleHeadlines: []string{
			"Live In Two Weeks, Without Losing An Order",
			"Your Data Comes With You: Imports Included",
			"Onboarding Measured In Days, Not Quarters",
		},
	},
	domain.IntentUseCase: {
		HeadlineMinLen: 20, HeadlineMaxLen: 80,
		HeadlineTone:      "mirrors the visitor's own words",
		SubheadlineMaxLen: 130,
		SubheadlineTone:   "empathetic, scenario-first",
		MaxFeatures:       4,
		FeatureDescMinLen: 40, FeatureDescMaxLen: 160,
		ExampleHeadlines: []string{
			"A Solution For Brewers Everywhere",
			"Built For Taprooms That Self-Distribute",
			"From Ten Accounts To Two Hundred, Same Workflow",
		},
	},
	domain.IntentOffTopic: {
		HeadlineMinLen: 15, HeadlineMaxLen: 70,
		HeadlineTone:      "light, friendly redirect",
		SubheadlineMaxLen: 100,
		SubheadlineTone:   "points back to the product",
		MaxFeatures:       2,
		FeatureDescMinLen: 30, FeatureDescMaxLen: 120,
		ExampleHeadlines: []string{
			"We're Better At Beverage Logistics Than Small Talk",
			"Happy To Help - With Distribution, That Is",
		},
	},
}

// GuidelinesFor returns the content guidelines for an intent. Total over
// UserIntent; unrecognised intents receive the use_case guidelines.
func GuidelinesFor(intent domain.UserIntent) domain.ContentGuidelines {
	if g, ok := guidelineTable[intent]; ok {
		return g
	}
	return guidelineTable[domain.IntentUseCase]
}
