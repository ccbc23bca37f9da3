package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Run("GeneratesPrefixedID", func(t *testing.T) {
		id := NewID("alog")
		require.True(t, strings.HasPrefix(id, "alog_"))
		// prefix + underscore + 26-char ULID
		assert.Len(t, id, len("alog_")+26)
	})

	t.Run("NormalizesPrefix", func(t *testing.T) {
		id := NewID("  ALOG ")
		assert.True(t, strings.HasPrefix(id, "alog_"))
	})

	t.Run("UniqueAcrossCalls", func(t *testing.T) {
		seen := make(map[string]struct{})
		for i := 0; i < 100; i++ {
			id := NewID("x")
			_, dup := seen[id]
			require.False(t, dup, "duplicate ID generated: %s", id)
			seen[id] = struct{}{}
		}
	})

	t.Run("PanicsOnEmptyPrefix", func(t *testing.T) {
		assert.Panics(t, func() { NewID("") })
		assert.Panics(t, func() { NewID("   ") })
	})
}
