// Package cli provides the command-line interface driving adapter.
// Commands talk to the core exclusively through driving ports; main wires
// the concrete services in before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/pageforge/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pageforge/internal/core/ports/driving"
	"github.com/custodia-labs/pageforge/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by main before Execute. Commands that need a service
// check for nil and fail with a clear message.
var (
	generatorService  driving.PageGenerator
	classifierService driving.IntentClassifier
	pageStore         *sqlite.Store
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pageforge",
	Short: "Generate validated marketing page documents",
	Long: `PageForge turns visitor messages into structured marketing page JSON.

It classifies the visitor's intent, selects a layout strategy, and drives a
generation backend under a strict output contract, validating and repairing
the result before accepting it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose diagnostic output")
}

// SetServices injects the core services the commands depend on.
// Any service may be nil; commands requiring it will report that.
func SetServices(generator driving.PageGenerator, classifier driving.IntentClassifier, store *sqlite.Store) {
	generatorService = generator
	classifierService = classifier
	pageStore = store
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
