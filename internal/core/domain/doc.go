// Package domain defines the core business entities for PageForge.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - UserIntent: The classified purpose of a visitor message
//   - PageDocument: The structured page output consumed by rendering
//   - Section: A tagged union of the eight renderable section kinds
//   - LayoutStrategy: The intent-specific section plan
//   - GenerationResult: The orchestrator's sole output type
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
