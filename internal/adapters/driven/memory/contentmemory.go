// Package memory provides in-memory driven adapters.
//
// These implementations hold all state in process memory and are suitable
// for single-process deployments and tests. The sqlite package provides a
// persistent alternative for content memory.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/pageforge/internal/core/ports/driven"
)

// Ensure ContentMemory implements the interface.
var _ driven.ContentMemory = (*ContentMemory)(nil)

// DefaultWindow is the number of recent generations remembered per session.
const DefaultWindow = 10

// sessionRecord is one accepted generation's repeated-content fingerprint.
type sessionRecord struct {
	headline      string
	featureTitles []string
}

// ContentMemory tracks emitted headlines and feature titles per session
// within a bounded recency window.
type ContentMemory struct {
	mu       sync.RWMutex
	window   int
	sessions map[string][]sessionRecord
}

// NewContentMemory creates a content memory with the given recency window.
// A window of 0 or less uses DefaultWindow. The optional config store may
// override the window via the memory.window key.
func NewContentMemory(window int, cfg driven.ConfigStore) *ContentMemory {
	if cfg != nil {
		if w := cfg.GetInt(driven.ConfigMemoryWindow); w > 0 {
			window = w
		}
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &ContentMemory{
		window:   window,
		sessions: make(map[string][]sessionRecord),
	}
}

// Warning renders an instruction block listing prior headlines and feature
// titles for the session. Returns an empty string for unknown sessions.
func (m *ContentMemory) Warning(_ context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", nil
	}

	m.mu.RLock()
	records := m.sessions[sessionID]
	m.mu.RUnlock()

	if len(records) == 0 {
		return "", nil
	}

	var headlines, titles []string
	seen := make(map[string]bool)
	for _, rec := range records {
		if rec.headline != "" && !seen[rec.headline] {
			seen[rec.headline] = true
			headlines = append(headlines, rec.headline)
		}
		for _, t := range rec.featureTitles {
			if t != "" && !seen[t] {
				seen[t] = true
				titles = append(titles, t)
			}
		}
	}
	if len(headlines) == 0 && len(titles) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("Avoid repeating content already shown in this session.\n")
	if len(headlines) > 0 {
		b.WriteString("Previously used headlines:\n")
		for _, h := range headlines {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}
	if len(titles) > 0 {
		b.WriteString("Previously used feature titles:\n")
		for _, t := range titles {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// Track records the accepted headline and feature titles for the session,
// evicting the oldest record once the window is exceeded.
func (m *ContentMemory) Track(_ context.Context, sessionID, headline string, featureTitles []string) error {
	if sessionID == "" {
		return nil
	}
	if headline == "" && len(featureTitles) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	records := append(m.sessions[sessionID], sessionRecord{
		headline:      headline,
		featureTitles: append([]string(nil), featureTitles...),
	})
	if len(records) > m.window {
		records = records[len(records)-m.window:]
	}
	m.sessions[sessionID] = records
	return nil
}
