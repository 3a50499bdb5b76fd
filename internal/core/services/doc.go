// Package services implements the page-generation pipeline.
//
// The pipeline runs CLASSIFY → STRATEGY → BUILD_PROMPT → GENERATE → PARSE →
// VALIDATE and then accepts, retries with corrective feedback, or fails.
// Services depend only on domain types and driven ports; infrastructure
// (the generation backend, content memory, configuration) is injected.
//
//   - Classifier: deterministic intent scoring over a static pattern table
//   - StrategyFor/GuidelinesFor: curated per-intent layout and content tables
//   - PromptBuilder: deterministic system/user prompt assembly
//   - ParsePage: syntactic JSON extraction from raw backend output
//   - ValidatePage: structural conformance checking, violations not errors
//   - SanitizePage: unconditional clipping to documented bounds
//   - GeneratorService: the orchestrator external callers invoke
package services
