package hub

import (
	"context"
	"fmt"
	"github.com/cachehub/cachehub/lib/backend"
	"github.com/cachehub/cachehub/lib/backend/memory"
	"github.com/lni/dragonboat/v4/logger"
	"sync"
)

var Logger = logger.GetLogger("hub")

// --------------------------------------------------------------------------
// Configuration
// --------------------------------------------------------------------------

// Config describes a hub at construction time.
type Config[V any] struct {
	// Backends maps logical store names to backend instances. The map is
	// copied on construction and read-only afterwards. The four required
	// operations are enforced by the IBackend interface; the runtime
	// validation pass checks names and nil entries.
	Backends map[string]backend.IBackend[V]

	// DefaultStore is used for operations without a store name. When nil, a
	// fresh in-memory backend is created.
	DefaultStore backend.IBackend[V]
}

// --------------------------------------------------------------------------
// Initialization and Setup
// --------------------------------------------------------------------------

// hubImpl implements IHub over a cacheAdapter and a subscriberRegistry
type hubImpl[V any] struct {
	mu           sync.RWMutex
	initialized  bool
	adapter      *cacheAdapter[V]
	backends     map[string]backend.IBackend[V]
	defaultStore backend.IBackend[V]
	registry     *subscriberRegistry[V]
}

// New creates a new hub instance over the configured backends. The backend
// map is validated here and again on every Start. The hub is created
// uninitialized - call Start before using any cache operation. Subscribe
// and SubscribeToCaches work on an uninitialized hub.
//
// Thread-safety: The returned hub is safe for concurrent use. Note however
// that a read suspended in a backend call holds no claim on the store - a
// write to the same key completing in between is simply last-write-wins at
// the backend, observed by the next read.
func New[V any](cfg Config[V]) (IHub[V], error) {
	if err := validateBackends(cfg.Backends); err != nil {
		return nil, err
	}

	backends := make(map[string]backend.IBackend[V], len(cfg.Backends))
	for name, b := range cfg.Backends {
		backends[name] = b
	}

	defaultStore := cfg.DefaultStore
	if defaultStore == nil {
		defaultStore = memory.New[V](nil)
	}

	return &hubImpl[V]{
		backends:     backends,
		defaultStore: defaultStore,
		registry:     newSubscriberRegistry[V](),
	}, nil
}

// validateBackends checks the backend map for empty store names and nil
// entries. Violations fail with RetCConfiguration identifying the store.
func validateBackends[V any](backends map[string]backend.IBackend[V]) error {
	for name, b := range backends {
		if name == "" {
			return NewError(RetCConfiguration, "store name must not be empty")
		}
		if b == nil {
			return NewError(RetCConfiguration, fmt.Sprintf("store %q has no backend", name))
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Lifecycle
// --------------------------------------------------------------------------

func (h *hubImpl[V]) IsInitialized() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.initialized
}

func (h *hubImpl[V]) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.initialized {
		return nil
	}

	if err := validateBackends(h.backends); err != nil {
		return err
	}

	h.adapter = newCacheAdapter(h.backends, h.defaultStore)
	h.initialized = true

	Logger.Infof("hub started (%d named stores)", len(h.backends))
	return nil
}

func (h *hubImpl[V]) End() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.adapter = nil
	h.initialized = false

	Logger.Infof("hub ended, %d subscriber(s) retained", h.registry.size())
}

// guarded returns the adapter when the hub is initialized. Every gated
// operation calls this before any argument validation.
func (h *hubImpl[V]) guarded() (*cacheAdapter[V], error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.initialized {
		return nil, NewError(RetCNotInitialized, "hub is not started")
	}
	return h.adapter, nil
}

// --------------------------------------------------------------------------
// Write Operations
// --------------------------------------------------------------------------

func (h *hubImpl[V]) CacheItem(ctx context.Context, key string, value *V, storeName string) (*V, error) {
	adapter, err := h.guarded()
	if err != nil {
		return nil, err
	}
	return h.cacheItem(ctx, adapter, key, value, storeName)
}

// cacheItem is the single-item write protocol shared by CacheItem,
// CacheMultiple and the miss path of GetItem: write (or remove, for a nil
// value), then notify unconditionally - listeners observe the nil on the
// remove path. A backend failure propagates and suppresses the fan-out.
func (h *hubImpl[V]) cacheItem(ctx context.Context, adapter *cacheAdapter[V], key string, value *V, storeName string) (*V, error) {
	if key == "" {
		return nil, NewError(RetCMissingKey, "cacheItem requires a non-empty key")
	}

	if value == nil {
		if err := adapter.remove(ctx, key, storeName); err != nil {
			return nil, err
		}
		metricRemovals.Inc()
	} else {
		if err := adapter.set(ctx, key, *value, storeName); err != nil {
			return nil, err
		}
		metricWrites.Inc()
	}

	h.notify(key, value, storeName)
	return value, nil
}

func (h *hubImpl[V]) CacheMultiple(ctx context.Context, items []Item[V]) error {
	adapter, err := h.guarded()
	if err != nil {
		return err
	}

	// Applied in order, each item fans out on its own. Not atomic: a
	// failure leaves earlier items written and notified.
	for _, item := range items {
		if _, err := h.cacheItem(ctx, adapter, item.Key, item.Value, item.StoreName); err != nil {
			return err
		}
	}
	return nil
}

func (h *hubImpl[V]) RemoveItem(ctx context.Context, key, storeName string) error {
	adapter, err := h.guarded()
	if err != nil {
		return err
	}

	if err := adapter.remove(ctx, key, storeName); err != nil {
		return err
	}
	metricRemovals.Inc()

	h.notify(key, nil, storeName)
	return nil
}

func (h *hubImpl[V]) ClearItems(ctx context.Context, storeName string) error {
	adapter, err := h.guarded()
	if err != nil {
		return err
	}

	// Bulk clearing is not individually observable: no per-key fan-out.
	if err := adapter.clear(ctx, storeName); err != nil {
		return err
	}
	metricClears.Inc()
	return nil
}

// --------------------------------------------------------------------------
// Read Operations
// --------------------------------------------------------------------------

func (h *hubImpl[V]) GetItem(ctx context.Context, key, storeName string, fallback Fallback[V]) (*V, error) {
	adapter, err := h.guarded()
	if err != nil {
		return nil, err
	}

	value, loaded, err := adapter.get(ctx, key, storeName)
	if err != nil {
		return nil, err
	}

	// A hit is returned silently - no fan-out.
	if loaded {
		metricHits.Inc()
		return &value, nil
	}
	metricMisses.Inc()

	// Miss: resolve through the fallback (nil = resolves to nil), then
	// cache the result via the write protocol, which also notifies.
	var resolved *V
	if fallback != nil {
		metricFallbacks.Inc()
		resolved, err = fallback(ctx)
		if err != nil {
			return nil, err
		}
	}

	return h.cacheItem(ctx, adapter, key, resolved, storeName)
}

func (h *hubImpl[V]) ListItems(ctx context.Context, opts backend.ListOptions, fallback ListFallback[V]) (backend.Paginated[V], error) {
	adapter, err := h.guarded()
	if err != nil {
		return backend.Paginated[V]{}, err
	}

	// Without a store name there is nothing to query: empty result, no
	// backend call, no fan-out.
	if opts.StoreName == "" {
		return backend.Paginated[V]{}, nil
	}

	res, found, err := adapter.list(ctx, opts)
	if err != nil {
		return backend.Paginated[V]{}, err
	}
	if found && res.Data != nil {
		return res, nil
	}

	if fallback == nil {
		return backend.Paginated[V]{}, nil
	}
	return fallback(ctx)
}

// --------------------------------------------------------------------------
// Publish Operations
// --------------------------------------------------------------------------

func (h *hubImpl[V]) PublishItem(ctx context.Context, key, storeName string, fallback Fallback[V]) error {
	value, err := h.GetItem(ctx, key, storeName, fallback)
	if err != nil {
		return err
	}

	// Unlike plain GetItem, a hit still fans out exactly once. On a miss
	// the write protocol has already notified; this event comes on top.
	h.notify(key, value, storeName)
	return nil
}

func (h *hubImpl[V]) PublishItems(ctx context.Context, opts backend.ListOptions, fallback ListFallback[V]) error {
	if _, err := h.ListItems(ctx, opts, fallback); err != nil {
		return err
	}

	// Key literal All signals "the full store was (re)fetched". Never
	// emitted for the default fallback store (empty store name).
	if opts.StoreName != "" {
		h.notify(All, nil, opts.StoreName)
	}
	return nil
}

// --------------------------------------------------------------------------
// Subscriptions
// --------------------------------------------------------------------------

func (h *hubImpl[V]) Subscribe(listener Listener[V]) (Unsubscribe, error) {
	return h.registry.add(listener)
}

func (h *hubImpl[V]) SubscribeToCaches(listener Listener[V], storeNames []string, predicate Predicate[V]) (Unsubscribe, error) {
	return h.registry.addScoped(listener, storeNames, predicate)
}

// notify fans an event out to all registered listeners.
func (h *hubImpl[V]) notify(key string, value *V, storeName string) {
	metricNotifications.Inc()
	h.registry.notify(key, value, storeName)
}
