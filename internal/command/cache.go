package command

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/promptcmd-ai/promptcmd/internal/logging"
	"github.com/promptcmd-ai/promptcmd/internal/template"
)

// DefaultStaleness bounds how long a discovery pass is reused before the
// filesystem is walked again.
const DefaultStaleness = 30 * time.Second

// Cache memoizes the repository's discovery pass. Readers proceed
// concurrently under a read lock; a refresh takes the write lock for the
// duration of the merge swap. An optional fsnotify watcher marks the cache
// dirty as soon as a command directory changes, so edits show up before
// the staleness window elapses.
type Cache struct {
	repo    *Repository
	rootsFn func() []Root
	ttl     time.Duration

	mu          sync.RWMutex
	defs        map[string]*Definition
	lastRefresh time.Time
	dirty       bool

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithStaleness overrides the staleness window.
func WithStaleness(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// NewCache creates a cache over repo. rootsFn is re-evaluated on every
// refresh so root resolution tracks the working directory.
func NewCache(repo *Repository, rootsFn func() []Root, opts ...CacheOption) *Cache {
	c := &Cache{
		repo:    repo,
		rootsFn: rootsFn,
		ttl:     DefaultStaleness,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns a definition by name, refreshing the cache first when it is
// stale. A refresh failure over a previously populated cache is logged and
// the stale map is served; over an empty cache it propagates. A miss
// inside the staleness window falls back to a single-command reload, so a
// file created moments ago resolves without waiting out the window.
func (c *Cache) Get(ctx context.Context, name string) (*Definition, error) {
	if err := c.ensureFresh(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	def, ok := c.defs[name]
	c.mu.RUnlock()
	if ok {
		return def, nil
	}

	def, err := c.repo.ReloadOne(ctx, name, c.rootsFn())
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.defs == nil {
		c.defs = make(map[string]*Definition)
	}
	c.defs[name] = def
	c.mu.Unlock()
	return def, nil
}

// Definitions returns a snapshot of the merged definition map.
func (c *Cache) Definitions(ctx context.Context) (map[string]*Definition, error) {
	if err := c.ensureFresh(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := make(map[string]*Definition, len(c.defs))
	for name, def := range c.defs {
		snapshot[name] = def
	}
	return snapshot, nil
}

// Refresh forces a full discovery pass.
func (c *Cache) Refresh(ctx context.Context) error {
	defs, err := c.repo.Discover(ctx, c.rootsFn())
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.defs = defs
	c.lastRefresh = time.Now()
	c.dirty = false
	c.mu.Unlock()
	return nil
}

// Invalidate marks the cache stale so the next read refreshes.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()
}

func (c *Cache) ensureFresh(ctx context.Context) error {
	c.mu.RLock()
	fresh := c.defs != nil && !c.dirty && time.Since(c.lastRefresh) <= c.ttl
	empty := c.defs == nil
	c.mu.RUnlock()

	if fresh {
		return nil
	}

	if err := c.Refresh(ctx); err != nil {
		if empty {
			return err
		}
		logging.Warn().Err(err).Msg("failed to refresh custom commands, serving stale cache")
	}
	return nil
}

// Watch starts a filesystem watcher over the current roots that exist and
// invalidates the cache on any event. Best-effort: roots created after
// Watch is called are only picked up by the staleness window.
func (c *Cache) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	watched := 0
	for _, root := range c.rootsFn() {
		if _, err := os.Stat(root.Dir); err != nil {
			continue
		}
		if err := watcher.Add(root.Dir); err != nil {
			logging.Warn().Err(err).Str("dir", root.Dir).Msg("failed to watch command directory")
			continue
		}
		watched++
	}
	if watched == 0 {
		watcher.Close()
		return nil
	}

	c.watcher = watcher
	c.done = make(chan struct{})
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// Editor temp files and lock files churn constantly;
				// only command documents matter.
				if !template.IsMarkdownFile(event.Name) {
					continue
				}
				c.Invalidate()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Warn().Err(err).Msg("command directory watcher error")
			case <-c.done:
				return
			}
		}
	}()
	return nil
}

// Close stops the watcher, if one is running.
func (c *Cache) Close() error {
	if c.watcher == nil {
		return nil
	}
	close(c.done)
	err := c.watcher.Close()
	c.watcher = nil
	return err
}
