// Command pageforge generates validated marketing page documents from
// visitor messages.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/pageforge/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pageforge/internal/adapters/driven/llm/anthropic"
	"github.com/custodia-labs/pageforge/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/pageforge/internal/adapters/driven/memory"
	"github.com/custodia-labs/pageforge/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pageforge/internal/adapters/driving/cli"
	"github.com/custodia-labs/pageforge/internal/core/domain"
	"github.com/custodia-labs/pageforge/internal/core/ports/driven"
	"github.com/custodia-labs/pageforge/internal/core/services"
	"github.com/custodia-labs/pageforge/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initialising config: %w", err)
	}

	promptStore, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("initialising prompt store: %w", err)
	}
	defer promptStore.Close()

	// Content memory is SQLite-backed when possible. If the database cannot
	// be opened the process still runs with an in-process window, but page
	// persistence is disabled.
	var contentMemory driven.ContentMemory
	store, err := sqlite.NewStore("", cfg)
	if err != nil {
		logger.Warn("Persistent storage unavailable (%v), using in-process memory", err)
		contentMemory = memory.NewContentMemory(0, cfg)
	} else {
		defer store.Close()
		contentMemory = store
	}

	classifier := services.NewClassifier(cfg)

	// The generator is only wired when a backend credential is present;
	// classify and pages commands work without one.
	llm, err := buildLLM(cfg)
	if err != nil {
		return err
	}
	if llm != nil {
		defer llm.Close()

		prompts := services.NewPromptBuilder(contentMemory, cfg)
		prompts.SetPromptStore(promptStore)

		generator := services.NewGeneratorService(llm, classifier, prompts, contentMemory, loadKnowledge(), cfg)
		cli.SetServices(generator, classifier, store)
	} else {
		logger.Debug("No backend API key found, generation disabled")
		cli.SetServices(nil, classifier, store)
	}

	cli.SetVersion(version)
	return cli.Execute()
}

// loadKnowledge builds the retrieval backend from ~/.pageforge/knowledge.json
// when the file exists. Returns nil otherwise; generation then runs without
// knowledge snippets.
func loadKnowledge() driven.KnowledgeService {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	path := filepath.Join(home, ".pageforge", "knowledge.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var docs []domain.KnowledgeDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		logger.Warn("Ignoring malformed %s: %v", path, err)
		return nil
	}

	logger.Debug("Loaded %d knowledge documents from %s", len(docs), path)
	return memory.NewKnowledgeService(docs)
}

// buildLLM constructs the generation backend selected by llm.provider,
// defaulting to whichever API key the environment provides. Returns nil
// when no credential is available.
func buildLLM(cfg driven.ConfigStore) (driven.LLMService, error) {
	provider := cfg.GetString(driven.ConfigLLMProvider)
	model := cfg.GetString(driven.ConfigLLMModel)
	anthropicKey := os.Getenv("ANTHROPIC_API_KEY")
	openaiKey := os.Getenv("OPENAI_API_KEY")

	if provider == "" {
		switch {
		case anthropicKey != "":
			provider = "anthropic"
		case openaiKey != "":
			provider = "openai"
		default:
			return nil, nil
		}
	}

	var (
		llm driven.LLMService
		err error
	)
	switch provider {
	case "anthropic":
		if anthropicKey == "" {
			return nil, fmt.Errorf("llm.provider is anthropic but ANTHROPIC_API_KEY is not set")
		}
		llm, err = anthropic.NewLLMService(anthropic.Config{APIKey: anthropicKey, Model: model})
	case "openai":
		if openaiKey == "" {
			return nil, fmt.Errorf("llm.provider is openai but OPENAI_API_KEY is not set")
		}
		llm, err = openai.NewLLMService(openai.Config{APIKey: openaiKey, Model: model})
	default:
		return nil, fmt.Errorf("unknown llm.provider %q", provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initialising %s backend: %w", provider, err)
	}

	// Surface credential problems at startup rather than mid-generation.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if pingErr := llm.Ping(ctx); pingErr != nil {
		logger.Warn("Backend ping failed: %v", pingErr)
	}

	return llm, nil
}
