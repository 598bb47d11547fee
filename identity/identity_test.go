package identity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIDIsDeterministic(t *testing.T) {
	url := "https://example.com/conferences/gophercon-2026"
	first := ResolveID(url)
	second := ResolveID(url)
	assert.Equal(t, first, second)
}

func TestResolveIDStaysInSyntheticRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		id := ResolveID(fmt.Sprintf("https://example.com/event/%d", i))
		require.GreaterOrEqual(t, id, uint(100_000_000))
		require.Less(t, id, uint(1_000_000_000))
	}
}

func TestResolveIDDistinguishesURLs(t *testing.T) {
	a := ResolveID("https://example.com/ev1")
	b := ResolveID("https://example.com/ev2")
	assert.NotEqual(t, a, b)
}

func TestIsSynthetic(t *testing.T) {
	assert.True(t, IsSynthetic(ResolveID("https://example.com/ev1")))
	assert.False(t, IsSynthetic(1))
	assert.False(t, IsSynthetic(99_999_999))
	assert.False(t, IsSynthetic(1_000_000_000))
}
