package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var pagesSession string

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List persisted pages",
	RunE:  runPages,
}

var pagesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a persisted page as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runPagesShow,
}

func init() {
	pagesCmd.Flags().StringVarP(&pagesSession, "session", "s", "", "filter by session id")
	pagesCmd.AddCommand(pagesShowCmd)
	rootCmd.AddCommand(pagesCmd)
}

func runPages(cmd *cobra.Command, _ []string) error {
	if pageStore == nil {
		return errors.New("page store not configured")
	}

	summaries, err := pageStore.ListPages(context.Background(), pagesSession)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		cmd.Println("No persisted pages.")
		return nil
	}

	for _, sum := range summaries {
		cmd.Printf("%s  %s  %s\n", sum.ID, render(styleLabel, sum.PageType), sum.Title)
		cmd.Printf("    %s\n", render(styleDim, sum.CreatedAt.Format("2006-01-02 15:04:05")))
	}
	return nil
}

func runPagesShow(cmd *cobra.Command, args []string) error {
	if pageStore == nil {
		return errors.New("page store not configured")
	}

	page, err := pageStore.GetPage(context.Background(), args[0])
	if err != nil {
		return err
	}
	return outputPageJSON(cmd, page)
}
