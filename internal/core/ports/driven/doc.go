// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - LLMService: The text-generation backend
//
// # Optional Interfaces
//
// Features degrade gracefully when these are nil:
//
//   - KnowledgeService: Snippet lookup for prompt grounding
//   - ContentMemory: Per-session repetition avoidance
//   - ConfigStore: Application configuration
//   - PromptStore: User-editable prompt templates
package driven
