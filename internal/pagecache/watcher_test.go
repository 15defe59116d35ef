package pagecache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_DetectsExternalWrite(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)
	require.NoError(t, c.Put("home", "seed", "2026-07-29T00:00:00Z"))

	var mu sync.Mutex
	var changed []string

	w, err := Watch(dir, func(page string) {
		mu.Lock()
		defer mu.Unlock()
		changed = append(changed, page)
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, c.Put("home", "updated externally", "2026-07-29T00:01:00Z"))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changed) > 0
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, changed, "home")
}

func TestWatch_CloseStopsDelivery(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)
	require.NoError(t, c.Put("home", "seed", "2026-07-29T00:00:00Z"))

	w, err := Watch(dir, func(page string) {})
	require.NoError(t, err)
	require.NoError(t, w.Close())
}
