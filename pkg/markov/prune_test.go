package markov

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrune(t *testing.T) {
	c := setupTestChain(t, "a b c. a b d.")
	// "a" -> "b" twice, "b" -> "c" and "b" -> "d" once each, "a" starts twice.

	removed := c.Prune(1)
	assert.Equal(t, 2, removed)

	assert.Equal(t, []string{"a", "a"}, c.Successors(SentinelKey))
	assert.Equal(t, []string{"b", "b"}, c.Successors("a"))
	assert.False(t, c.ContainsKey("b"), "key emptied by pruning should be deleted")
}

func TestPruneKeepsSentinel(t *testing.T) {
	c := setupTestChain(t, "once.")

	removed := c.Prune(5)
	assert.Equal(t, 1, removed)
	assert.True(t, c.ContainsKey(SentinelKey))
	assert.Empty(t, c.Successors(SentinelKey))

	_, err := c.GenerateSentence()
	assert.ErrorIs(t, err, ErrEmptyModel)
}

func TestPruneZeroIsNoop(t *testing.T) {
	c := setupTestChain(t, twoSentenceCorpus)
	before := c.Table()

	require.Zero(t, c.Prune(0))
	assert.Equal(t, before, c.Table())
}

func BenchmarkPrune(b *testing.B) {
	var dirtyCorpus strings.Builder
	dirtyCorpus.WriteString("common word common word common word. ")
	for i := 0; i < 500; i++ {
		dirtyCorpus.WriteString(fmt.Sprintf("unique_%d ", i))
	}
	dirtyCorpus.WriteString(".")
	corpus := dirtyCorpus.String()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		c := NewChain()
		c.AddLine(corpus)
		b.StartTimer()

		c.Prune(1)
	}
}
