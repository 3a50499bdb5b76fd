package driven

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetFloat retrieves a float configuration value.
	// Returns 0 if key doesn't exist or isn't numeric.
	GetFloat(key string) float64

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}

// Well-known configuration keys.
const (
	// ConfigLLMProvider selects the generation backend ("anthropic", "openai").
	ConfigLLMProvider = "llm.provider"

	// ConfigLLMModel overrides the backend's default model.
	ConfigLLMModel = "llm.model"

	// ConfigLLMMaxTokens bounds generation output length.
	ConfigLLMMaxTokens = "llm.max_tokens"

	// ConfigLLMTemperature sets the decoding temperature.
	ConfigLLMTemperature = "llm.temperature"

	// ConfigMaxRetries is the orchestrator retry budget.
	ConfigMaxRetries = "generation.max_retries"

	// ConfigTemplateFill toggles the template-fill fast path.
	ConfigTemplateFill = "generation.template_fill"

	// ConfigProductName is the product name used by classifier heuristics.
	ConfigProductName = "classifier.product_name"

	// ConfigThresholdPrefix prefixes per-intent confidence thresholds,
	// e.g. "classifier.threshold.off_topic".
	ConfigThresholdPrefix = "classifier.threshold."

	// ConfigMemoryWindow is the content-memory recency window size.
	ConfigMemoryWindow = "memory.window"
)
