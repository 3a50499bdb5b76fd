package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/pageforge/internal/core/domain"
)

var (
	generatePageType string
	generateSession  string
	generateJSON     bool
	generatePersist  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [message]",
	Short: "Generate a marketing page from a visitor message",
	Long: `Classifies the message's intent, selects a layout strategy, and generates
a validated page document through the configured backend.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generatePageType, "page-type", "t", string(domain.PageProductOverview), "page type to generate")
	generateCmd.Flags().StringVarP(&generateSession, "session", "s", "", "session id for content memory")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "output the raw page document as JSON")
	generateCmd.Flags().BoolVar(&generatePersist, "persist", false, "store the accepted page in the local database")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generatorService == nil {
		return errors.New("generator service not configured (is an API key set?)")
	}

	pageType := domain.PageType(generatePageType)
	if !pageType.IsValid() {
		return fmt.Errorf("unknown page type %q", generatePageType)
	}

	req := domain.PageGenerationRequest{
		UserMessage: args[0],
		PageType:    pageType,
		SessionID:   generateSession,
	}

	ctx := context.Background()
	result := generatorService.Generate(ctx, req)

	if !result.Success {
		cmd.Printf("%s %s\n", render(styleFailure, "Generation failed:"), result.Error)
		cmd.Printf("%s %d retries, %dms\n", render(styleDim, "Spent:"), result.RetryCount, result.GenerationTimeMs)
		return errors.New("generation failed")
	}

	if generatePersist {
		if pageStore == nil {
			return errors.New("page store not configured")
		}
		id := uuid.New().String()
		if err := pageStore.SavePage(ctx, id, generateSession, result.Page); err != nil {
			return fmt.Errorf("persisting page: %w", err)
		}
		cmd.Printf("%s %s\n", render(styleDim, "Persisted as:"), id)
	}

	if generateJSON {
		return outputPageJSON(cmd, result.Page)
	}
	return outputPageSummary(cmd, result)
}

func outputPageJSON(cmd *cobra.Command, page *domain.PageDocument) error {
	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputPageSummary(cmd *cobra.Command, result domain.GenerationResult) error {
	page := result.Page

	cmd.Printf("%s %s\n", render(styleSuccess, "Generated:"), render(styleTitle, page.Title))
	cmd.Printf("%s %s\n", render(styleLabel, "Type:"), page.Type)
	cmd.Printf("%s %s\n", render(styleLabel, "Description:"), page.Description)
	cmd.Println()

	cmd.Println(render(styleLabel, "Sections:"))
	for i, section := range page.Sections {
		height := ""
		if hint := section.LayoutHint(); hint != nil && hint.RequestedHeightPercent > 0 {
			height = fmt.Sprintf(" (%.0f%%)", hint.RequestedHeightPercent)
		}
		cmd.Printf("  [%d] %s%s\n", i+1, section.Kind(), height)
		if detail := sectionDetail(section); detail != "" {
			cmd.Printf("      %s\n", detail)
		}
	}
	cmd.Println()
	cmd.Printf("%s %d retries, %dms\n", render(styleDim, "Spent:"), result.RetryCount, result.GenerationTimeMs)
	return nil
}

// sectionDetail gives a one-line preview of a section's content.
func sectionDetail(section domain.Section) string {
	switch s := section.(type) {
	case *domain.HeroSection:
		return s.Headline
	case *domain.FeatureGridSection:
		titles := make([]string, 0, len(s.Features))
		for _, f := range s.Features {
			titles = append(titles, f.Title)
		}
		return strings.Join(titles, " / ")
	case *domain.MetricsSection:
		parts := make([]string, 0, len(s.Metrics))
		for _, m := range s.Metrics {
			parts = append(parts, m.Value+" "+m.Label)
		}
		return strings.Join(parts, " / ")
	case *domain.ComparisonTableSection:
		return strings.Join(s.Columns, " vs ")
	case *domain.StepsSection:
		return fmt.Sprintf("%d steps", len(s.Steps))
	case *domain.CTASection:
		return s.Headline
	case *domain.FAQSection:
		return fmt.Sprintf("%d questions", len(s.Items))
	case *domain.SingleScreenSection:
		if len(s.Insights) > 0 {
			return s.Insights[0]
		}
		return ""
	default:
		return ""
	}
}
