package hub

import (
	"context"
	"github.com/cachehub/cachehub/lib/backend"
)

// --------------------------------------------------------------------------
// Cache Adapter
// --------------------------------------------------------------------------

// cacheAdapter resolves logical store names to concrete backends and
// exposes a uniform get/set/remove/list/clear surface to the hub. It is
// built on Start and dropped on End; the backend map is read-only for its
// whole lifetime.
//
// Resolution rules:
//   - empty name    -> default fallback store
//   - known name    -> that backend
//   - unknown name  -> nil (reads miss, writes and removals are no-ops)
type cacheAdapter[V any] struct {
	backends     map[string]backend.IBackend[V]
	defaultStore backend.IBackend[V]
}

func newCacheAdapter[V any](backends map[string]backend.IBackend[V], defaultStore backend.IBackend[V]) *cacheAdapter[V] {
	return &cacheAdapter[V]{
		backends:     backends,
		defaultStore: defaultStore,
	}
}

// resolve maps a store name to a backend, nil for unknown names.
func (a *cacheAdapter[V]) resolve(storeName string) backend.IBackend[V] {
	if storeName == "" {
		return a.defaultStore
	}
	return a.backends[storeName]
}

// get reads a key from the resolved store. Unknown stores always miss.
func (a *cacheAdapter[V]) get(ctx context.Context, key, storeName string) (V, bool, error) {
	b := a.resolve(storeName)
	if b == nil {
		var zero V
		return zero, false, nil
	}
	return b.GetItem(ctx, key)
}

// set writes a key to the resolved store. Unknown stores are a no-op.
func (a *cacheAdapter[V]) set(ctx context.Context, key string, value V, storeName string) error {
	b := a.resolve(storeName)
	if b == nil {
		return nil
	}
	return b.PutItem(ctx, key, value)
}

// remove deletes a key from the resolved store. Unknown stores are a no-op.
func (a *cacheAdapter[V]) remove(ctx context.Context, key, storeName string) error {
	b := a.resolve(storeName)
	if b == nil {
		return nil
	}
	return b.RemoveItem(ctx, key)
}

// list queries the resolved store. The boolean return value indicates
// whether a backend was found for the name at all.
func (a *cacheAdapter[V]) list(ctx context.Context, opts backend.ListOptions) (backend.Paginated[V], bool, error) {
	b := a.resolve(opts.StoreName)
	if b == nil {
		return backend.Paginated[V]{}, false, nil
	}
	res, err := b.ListItems(ctx, opts)
	return res, true, err
}

// clear implements the bulk clear rules:
//   - empty name  -> clear only the default fallback store
//   - All         -> clear the default store and every backend exposing the
//     optional clear capability (backends lacking it are skipped)
//   - other names -> clear just that backend if it can, else no-op
func (a *cacheAdapter[V]) clear(ctx context.Context, storeName string) error {
	switch storeName {
	case "":
		return a.clearBackend(ctx, a.defaultStore)
	case All:
		if err := a.clearBackend(ctx, a.defaultStore); err != nil {
			return err
		}
		for _, b := range a.backends {
			if err := a.clearBackend(ctx, b); err != nil {
				return err
			}
		}
		return nil
	default:
		return a.clearBackend(ctx, a.backends[storeName])
	}
}

func (a *cacheAdapter[V]) clearBackend(ctx context.Context, b backend.IBackend[V]) error {
	if b == nil {
		return nil
	}
	if c, ok := backend.SupportsClear(b); ok {
		return c.ClearItems(ctx)
	}
	return nil
}
