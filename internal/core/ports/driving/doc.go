// Package driving defines the interfaces external actors use to call IN to core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Core services implement them; the CLI adapter (and any embedding caller)
// consumes them.
package driving
