package markov

// ChainStats holds aggregated statistics for a Chain.
type ChainStats struct {
	Keys           int // The number of tokens with recorded successors, excluding SentinelKey.
	Transitions    int // The number of recorded successor entries, sentence starters included.
	StartingTokens int // The number of entries under SentinelKey.
	UniqueTokens   int // The number of distinct tokens seen as a key or a successor.
}

// Stats returns a snapshot of statistics for the chain.
func (c *Chain) Stats() ChainStats {
	var stats ChainStats
	unique := make(map[string]struct{})

	for key, successors := range c.table {
		if key != SentinelKey {
			stats.Keys++
			unique[key] = struct{}{}
		}
		stats.Transitions += len(successors)
		for _, s := range successors {
			unique[s] = struct{}{}
		}
	}

	stats.StartingTokens = len(c.table[SentinelKey])
	stats.UniqueTokens = len(unique)
	return stats
}
