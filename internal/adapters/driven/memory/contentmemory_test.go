package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentMemoryTrackAndWarn(t *testing.T) {
	m := NewContentMemory(0, nil)
	ctx := context.Background()

	require.NoError(t, m.Track(ctx, "sess-1", "Solve Your Distribution Challenges Today",
		[]string{"Route planning", "Live inventory"}))

	warning, err := m.Warning(ctx, "sess-1")
	require.NoError(t, err)
	assert.Contains(t, warning, "Solve Your Distribution Challenges Today")
	assert.Contains(t, warning, "Route planning")
	assert.Contains(t, warning, "Live inventory")
	assert.Contains(t, warning, "Avoid repeating")
}

func TestContentMemoryUnknownSessionIsEmpty(t *testing.T) {
	m := NewContentMemory(0, nil)

	warning, err := m.Warning(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Empty(t, warning)
}

func TestContentMemoryEmptySessionIsNoOp(t *testing.T) {
	m := NewContentMemory(0, nil)
	ctx := context.Background()

	require.NoError(t, m.Track(ctx, "", "A headline", nil))
	warning, err := m.Warning(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, warning)
}

func TestContentMemoryWindowEviction(t *testing.T) {
	m := NewContentMemory(2, nil)
	ctx := context.Background()

	require.NoError(t, m.Track(ctx, "sess-1", "First headline", nil))
	require.NoError(t, m.Track(ctx, "sess-1", "Second headline", nil))
	require.NoError(t, m.Track(ctx, "sess-1", "Third headline", nil))

	warning, err := m.Warning(ctx, "sess-1")
	require.NoError(t, err)
	assert.NotContains(t, warning, "First headline")
	assert.Contains(t, warning, "Second headline")
	assert.Contains(t, warning, "Third headline")
}

func TestContentMemoryDeduplicates(t *testing.T) {
	m := NewContentMemory(0, nil)
	ctx := context.Background()

	require.NoError(t, m.Track(ctx, "sess-1", "Same headline", []string{"Same title"}))
	require.NoError(t, m.Track(ctx, "sess-1", "Same headline", []string{"Same title"}))

	warning, err := m.Warning(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(warning, "Same headline"))
	assert.Equal(t, 1, strings.Count(warning, "Same title"))
}

func TestContentMemorySessionsAreIsolated(t *testing.T) {
	m := NewContentMemory(0, nil)
	ctx := context.Background()

	require.NoError(t, m.Track(ctx, "sess-a", "Headline for A", nil))

	warning, err := m.Warning(ctx, "sess-b")
	require.NoError(t, err)
	assert.Empty(t, warning)
}
