package domain

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"dartest.dev/pkg/dartest/internal/adapter"
	m "dartest.dev/pkg/dartest/internal/model"
)

// PresenceCache records, per source file, whether its derived companion test
// exists on disk. It is an explicit cache: entries only change through
// Rebuild, Set and Invalidate, never as a side effect of lookups, so the
// deriver and matcher stay pure and independently testable.
type PresenceCache struct {
	mu      sync.RWMutex
	entries map[m.Path]bool
}

// NewPresenceCache returns an empty cache.
func NewPresenceCache() *PresenceCache {
	return &PresenceCache{entries: make(map[m.Path]bool)}
}

// Rebuild replaces the cache contents with a fresh scan of the project's
// library tree. Existence checks fan out across up to parallel goroutines.
// A missing library directory is not an error; the cache just ends up empty.
func (c *PresenceCache) Rebuild(
	ctx context.Context,
	fs adapter.ProjectFSAdapter,
	deriver *Deriver,
	project m.Project,
	parallel int,
) error {
	libRoot := fs.JoinPath(string(project.Root), deriver.LibDir)
	if _, err := fs.FileInfo(libRoot); err != nil {
		c.replace(make(map[m.Path]bool))
		return nil
	}

	var sources []m.Path

	err := fs.Walk(libRoot, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != string(libRoot) {
				return filepath.SkipDir
			}

			return nil
		}

		if IsDartSource(path) {
			sources = append(sources, m.Path(path))
		}

		return nil
	})
	if err != nil {
		return err
	}

	if parallel < 1 {
		parallel = 1
	}

	entries := make(map[m.Path]bool, len(sources))

	var entriesMu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for _, source := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			info := deriver.DeriveTestFile(project.Root, source, project.PackageName)
			_, statErr := fs.FileInfo(info.TestPath)

			entriesMu.Lock()
			entries[source] = statErr == nil
			entriesMu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	c.replace(entries)

	return nil
}

// Has reports whether the companion test for source exists. known is false
// when the cache holds no entry for source.
func (c *PresenceCache) Has(source m.Path) (present, known bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	present, known = c.entries[source]

	return present, known
}

// Set records the presence state for a single source file.
func (c *PresenceCache) Set(source m.Path, present bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[source] = present
}

// Invalidate drops the entry for source so the next lookup re-checks disk.
func (c *PresenceCache) Invalidate(source m.Path) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, source)
}

// Len returns the number of cached entries.
func (c *PresenceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func (c *PresenceCache) replace(entries map[m.Path]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = entries
}
