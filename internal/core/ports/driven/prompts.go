package driven

// PromptStore provides access to prompt template blocks.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt block for the given name.
	// If the prompt is not found, implementations should return a sensible
	// default or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used by the prompt builder.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptSystemFrame opens every system prompt. It establishes the
	// copywriter role and the product being marketed. The template expects
	// a %s placeholder for the product name.
	PromptSystemFrame = "system_frame"

	// PromptOutputContract is the machine-checkable output format block:
	// JSON only, no prose wrapper, no code fences.
	PromptOutputContract = "output_contract"

	// PromptCorrectiveFrame introduces validator feedback on a retry.
	// The template expects a %s placeholder for the joined violations.
	PromptCorrectiveFrame = "corrective_frame"
)

// PromptStoreAware is an optional interface for services that can use custom
// prompts. Services implementing it can have their templates customised by
// injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}
