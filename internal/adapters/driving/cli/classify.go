package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var classifyJSON bool

var classifyCmd = &cobra.Command{
	Use:   "classify [message]",
	Short: "Classify a visitor message's intent",
	Long: `Runs the deterministic intent classifier and prints the detected intent,
confidence, and the patterns that matched. No backend call is made.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "output the classification as JSON")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	if classifierService == nil {
		return errors.New("classifier service not configured")
	}

	result := classifierService.Classify(args[0])
	effective := classifierService.EffectiveIntent(result)

	if classifyJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal classification: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("%s %s\n", render(styleLabel, "Intent:"), render(styleTitle, result.Intent.String()))
	cmd.Printf("%s %.2f\n", render(styleLabel, "Confidence:"), result.Confidence)
	if !classifierService.IsConfident(result) {
		cmd.Printf("%s below threshold, effective intent is %s\n", render(styleDim, "Note:"), effective)
	}
	if len(result.MatchedPatterns) > 0 {
		cmd.Println(render(styleLabel, "Matched patterns:"))
		for _, p := range result.MatchedPatterns {
			cmd.Printf("  - %s\n", p)
		}
	}
	if result.Reasoning != "" {
		cmd.Printf("%s %s\n", render(styleLabel, "Reasoning:"), result.Reasoning)
	}
	return nil
}
