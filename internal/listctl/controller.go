// Package listctl keeps a screen's in-memory list of items in step with the
// item store.
//
// The projection is a disposable cache. It is replaced wholesale on every
// Activate, appended to after a successful Add and trimmed after a
// successful Delete. Nothing else mutates it; edits made elsewhere show up
// on the next Activate.
package listctl

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/idilsaglam/jottings/internal/location"
	"github.com/idilsaglam/jottings/internal/model"
)

// Store is the part of the item store the controller needs.
type Store interface {
	Add(ctx context.Context, name string, meta model.Metadata) (model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// Controller owns one screen's projection. It is safe for concurrent use.
type Controller struct {
	store       Store
	log         *zap.Logger
	fixTimeout  time.Duration
	resyncGroup singleflight.Group

	mu      sync.Mutex
	items   []model.Item
	mounted bool
	// epoch changes on every Deactivate; completions started in an older
	// epoch belong to a screen that is gone.
	epoch uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for failed operations.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithFixTimeout bounds how long a geo-tagged add waits for a coordinate.
func WithFixTimeout(d time.Duration) Option {
	return func(c *Controller) { c.fixTimeout = d }
}

// New returns an unmounted controller with an empty projection.
func New(store Store, opts ...Option) *Controller {
	c := &Controller{store: store, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Activate mounts the projection and replaces it with a fresh List().
// Concurrent activations share one store round-trip. On failure the
// projection is left as it was and the error is returned.
func (c *Controller) Activate(ctx context.Context) ([]model.Item, error) {
	c.mu.Lock()
	c.mounted = true
	epoch := c.epoch
	c.mu.Unlock()

	v, err, _ := c.resyncGroup.Do("list", func() (any, error) {
		return c.store.List(ctx)
	})
	if err != nil {
		c.log.Error("resync projection", zap.Error(err))
		return c.Items(), err
	}
	fresh := dedupe(v.([]model.Item))

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live(epoch) {
		c.items = fresh
	}
	return slices.Clone(fresh), nil
}

// Deactivate unmounts the projection. Completions of operations issued
// before this call are ignored.
func (c *Controller) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mounted = false
	c.epoch++
}

// Add writes a new item and, once the store has committed it, appends it
// to the projection without re-querying.
func (c *Controller) Add(ctx context.Context, name string, meta model.Metadata) (model.Item, error) {
	epoch := c.currentEpoch()

	it, err := c.store.Add(ctx, name, meta)
	if err != nil {
		c.log.Warn("add item", zap.String("name", name), zap.Error(err))
		return model.Item{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live(epoch) && !containsID(c.items, it.ID) {
		c.items = append(c.items, it)
	}
	return it, nil
}

// AddAt captures the current location from p and then adds the item with
// that coordinate. Nothing is written unless a coordinate was obtained.
func (c *Controller) AddAt(ctx context.Context, name string, p location.Provider) (model.Item, error) {
	if err := model.ValidateName(name); err != nil {
		return model.Item{}, err
	}
	coord, err := location.Acquire(ctx, p, c.fixTimeout)
	if err != nil {
		c.log.Warn("capture location", zap.String("name", name), zap.Error(err))
		return model.Item{}, err
	}
	return c.Add(ctx, name, coord)
}

// Delete removes the item from the store and from the projection. A zero
// affected count still drops the id locally: storage says it is gone.
func (c *Controller) Delete(ctx context.Context, id int64) (int64, error) {
	epoch := c.currentEpoch()

	affected, err := c.store.Delete(ctx, id)
	if err != nil {
		c.log.Warn("delete item", zap.Int64("id", id), zap.Error(err))
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live(epoch) {
		c.items = slices.DeleteFunc(c.items, func(it model.Item) bool { return it.ID == id })
	}
	return affected, nil
}

// Items returns a copy of the projection.
func (c *Controller) Items() []model.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Mounted reports whether the projection is bound to a live screen.
func (c *Controller) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

func (c *Controller) currentEpoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

// live must be called with mu held.
func (c *Controller) live(epoch uint64) bool {
	return c.mounted && c.epoch == epoch
}

func containsID(items []model.Item, id int64) bool {
	return slices.ContainsFunc(items, func(it model.Item) bool { return it.ID == id })
}

func dedupe(items []model.Item) []model.Item {
	seen := make(map[int64]struct{}, len(items))
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ID]; ok {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}
