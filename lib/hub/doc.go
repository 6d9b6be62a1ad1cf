// Package hub provides an in-process orchestration layer that unifies reads
// and writes across an arbitrary set of named key-value backends behind one
// surface, and notifies registered listeners whenever a value is written or
// (re)fetched. It performs no storage and no serialization itself - it only
// sequences calls to backends and fans out notifications.
//
// The package focuses on:
//   - A unified interface (IHub) over heterogeneous named stores plus a
//     default fallback store for unnamed operations
//   - The fetch-or-fallback-then-cache-then-notify read protocol
//   - An ordered subscriber registry with cache-scoped filtering
//
// Key Components:
//
//   - IHub Interface: The orchestration surface. A hub is constructed over
//     a store-name -> backend map, started with Start and stopped with End.
//     End drops the cache adapter but keeps all subscriptions, so a hub can
//     be restarted with its listeners intact. Every cache operation is
//     gated on the started state and fails with RetCNotInitialized
//     otherwise, checked before any argument validation.
//
//   - Cache Adapter: Resolves logical store names to backends. An empty
//     name selects the default fallback store; an unknown name resolves to
//     nothing, making reads miss and writes silent no-ops while
//     notifications still fire for the requested name.
//
//   - Subscriber Registry: An ordered, identity-deduplicated listener list.
//     Fan-out is synchronous, runs in registration order over a snapshot of
//     the registry, and completes before the triggering operation returns.
//     Scoped listeners (SubscribeToCaches) wrap a listener in a store-name
//     and predicate filter and occupy a regular slot in the same registry.
//
//   - Error System: A structured error type with typed return codes
//     (RetCConfiguration, RetCNotInitialized, RetCMissingKey,
//     RetCInvalidSubscriber, RetCEmptyScope). All errors are precondition
//     violations raised synchronously at the call site; there is no retry,
//     no backoff and no partial-failure recovery. Batch writes are not
//     transactional.
//
// Notification semantics in brief:
//   - CacheItem / CacheMultiple / RemoveItem always notify, including the
//     remove path where listeners observe a nil value.
//   - GetItem is silent on a hit and notifies exactly once (through the
//     write protocol) on a miss resolved via the fallback.
//   - PublishItem notifies unconditionally on top of GetItem semantics.
//   - ListItems never notifies; PublishItems emits a single event with the
//     key literal "all" for the queried store, never for the default store.
//   - ClearItems emits nothing - bulk clears are not individually
//     observable.
//
// Related Packages:
//
// The backend package (github.com/cachehub/cachehub/lib/backend) defines
// the contract named stores must satisfy. The memory package
// (github.com/cachehub/cachehub/lib/backend/memory) is the bundled backend
// implementation and the default fallback store.
package hub
