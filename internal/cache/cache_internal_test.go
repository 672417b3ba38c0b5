package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// An expired reader observes an entry, drops the read lock, then removes
// it. If another caller stored a fresh entry for the same key in between,
// the removal must not take the fresh entry with it.
func TestRemoveStale_KeepsFreshReplacement(t *testing.T) {
	c := New[string](Options{TTL: time.Minute, MaxEntries: 8})

	staleAt := time.Now().UTC().Add(-2 * time.Minute)
	c.put("k1", "owner", 0, "stale", staleAt)

	freshAt := time.Now().UTC()
	c.put("k1", "owner", 0, "fresh", freshAt)

	c.removeStale("k1", staleAt)

	v, _, ok := c.Get("k1")
	assert.True(t, ok, "fresh replacement must survive removal of the expired observation")
	assert.Equal(t, "fresh", v)

	c.removeStale("k1", freshAt)

	_, _, ok = c.Get("k1")
	assert.False(t, ok)
}

func TestPut_DroppedAfterGenerationAdvance(t *testing.T) {
	c := New[string](Options{TTL: time.Minute, MaxEntries: 8})

	gen := c.generation("alice")
	c.InvalidateOwner("alice")

	c.put("k1", "alice", gen, "stale", time.Now().UTC())

	assert.Zero(t, c.Len())
}
