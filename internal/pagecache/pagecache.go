// Package pagecache is the process-wide, per-page HTML cache spec.md §1
// describes as living outside the transformation core: the core never reads
// it directly, but the HTTP handler (internal/server) consults it to seed
// the next request's <CURRENT_PAGE> source and persists the transform
// result back into it afterward.
package pagecache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oklog/ulid/v2"
)

// ErrNotFound is returned by Get when no cache entry exists for a page.
var ErrNotFound = errors.New("pagecache: not found")

// entry is the on-disk representation of one page's cached state. Revision
// is a ULID minted on each Put, readable with Cache.Revision, so a reader in
// any process can tell one write of a page from the next. Pipeline events
// (internal/pipelineevents) carry no revision.
type entry struct {
	HTML      string `json:"html"`
	UpdatedAt string `json:"updatedAt"`
	Revision  string `json:"revision"`
}

// Cache stores one JSON file per page name under a base directory, guarded
// by a sibling .lock file so concurrent Put/Delete calls on the same page
// never interleave. Get takes no lock, and a caller's Get-then-Put sequence
// is not held under one lock.
type Cache struct {
	dir string

	mu    sync.Mutex
	locks map[string]*fileLock
}

// New creates a Cache rooted at dir. The directory is created lazily on
// first write.
func New(dir string) *Cache {
	return &Cache{dir: dir, locks: make(map[string]*fileLock)}
}

// Get returns the cached HTML for name, or ErrNotFound if nothing has been
// stored for it yet.
func (c *Cache) Get(name string) (string, error) {
	data, err := os.ReadFile(c.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("pagecache: read %s: %w", name, err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return "", fmt.Errorf("pagecache: decode %s: %w", name, err)
	}
	return e.HTML, nil
}

// Put stores html for name and records updatedAt (caller-supplied so this
// package stays free of wall-clock reads, matching its non-core,
// purely-mechanical role). Each write mints a fresh ULID revision, readable
// afterward with Revision, for cross-process correlation.
func (c *Cache) Put(name, html, updatedAt string) error {
	path := c.path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("pagecache: mkdir: %w", err)
	}

	lock := c.lockFor(path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("pagecache: lock %s: %w", name, err)
	}
	defer lock.Unlock()

	rev := ulid.Make().String()
	data, err := json.MarshalIndent(entry{HTML: html, UpdatedAt: updatedAt, Revision: rev}, "", "  ")
	if err != nil {
		return fmt.Errorf("pagecache: encode %s: %w", name, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("pagecache: write temp %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("pagecache: rename %s: %w", name, err)
	}

	return nil
}

// Revision returns the ULID minted by the most recent Put for name, or
// ErrNotFound if name has never been stored.
func (c *Cache) Revision(name string) (string, error) {
	data, err := os.ReadFile(c.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("pagecache: read %s: %w", name, err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return "", fmt.Errorf("pagecache: decode %s: %w", name, err)
	}
	return e.Revision, nil
}

// Delete removes any cached entry for name. Deleting an entry that does not
// exist is not an error.
func (c *Cache) Delete(name string) error {
	path := c.path(name)

	lock := c.lockFor(path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("pagecache: lock %s: %w", name, err)
	}
	defer lock.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("pagecache: delete %s: %w", name, err)
	}
	return nil
}

func (c *Cache) path(name string) string {
	return filepath.Join(c.dir, name+".json")
}

func (c *Cache) lockFor(path string) *fileLock {
	c.mu.Lock()
	defer c.mu.Unlock()

	lock, ok := c.locks[path]
	if !ok {
		lock = newFileLock(path)
		c.locks[path] = lock
	}
	return lock
}
