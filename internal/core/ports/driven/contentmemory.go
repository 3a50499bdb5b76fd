package driven

import "context"

// ContentMemory records previously emitted headlines and feature titles
// per session, so later generations can be steered away from repetition.
// It is advisory only: nothing enforces non-repetition structurally.
//
// Implementations must serialize writes per session; concurrent reads
// during a write need not block (last-writer-wins is acceptable).
type ContentMemory interface {
	// Warning renders a natural-language instruction block listing prior
	// headlines and titles to avoid. Empty when the session is new.
	Warning(ctx context.Context, sessionID string) (string, error)

	// Track records the accepted headline and feature titles for the
	// session, within a bounded recency window.
	Track(ctx context.Context, sessionID, headline string, featureTitles []string) error
}
