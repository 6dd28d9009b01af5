package markov

import (
	"log/slog"
)

// Prune removes every transition observed no more than minFreq times after
// its key. Keys left without successors are deleted, except SentinelKey,
// which always stays. It returns the number of successor entries removed.
//
// Pruning can leave tokens reachable that no longer have successors, so later
// walks may fail with ErrMissingKey more often.
func (c *Chain) Prune(minFreq int) int {
	var removed, keysRemoved int

	for key, successors := range c.table {
		counts := make(map[string]int, len(successors))
		for _, s := range successors {
			counts[s]++
		}

		kept := successors[:0]
		for _, s := range successors {
			if counts[s] > minFreq {
				kept = append(kept, s)
			}
		}
		removed += len(successors) - len(kept)
		clear(successors[len(kept):])

		if len(kept) == 0 && key != SentinelKey {
			delete(c.table, key)
			keysRemoved++
			continue
		}
		c.table[key] = kept
	}

	c.logger.Info("Chain pruned",
		slog.Int("min_frequency", minFreq),
		slog.Int("transitions_removed", removed),
		slog.Int("keys_removed", keysRemoved),
	)
	return removed
}
