package hub

import (
	"reflect"
	"sync"
)

// --------------------------------------------------------------------------
// Subscriber Registry
// --------------------------------------------------------------------------

// registryEntry is one registered listener. Insertion order is notification
// order. ptr carries the code pointer of a listener registered via
// Subscribe and is used for identity de-duplication; scoped wrappers are
// always distinct registrations and carry ptr 0.
type registryEntry[V any] struct {
	seq uint64
	ptr uintptr
	fn  Listener[V]
}

// subscriberRegistry maintains the ordered set of active listeners and
// performs fan-out. It outlives Start/End cycles of the hub.
//
// Thread-safety: all methods are safe for concurrent use. Fan-out iterates
// over a snapshot, so listeners added or removed during a fan-out pass do
// not affect the listeners already selected for it.
type subscriberRegistry[V any] struct {
	mu      sync.Mutex
	nextSeq uint64
	entries []registryEntry[V]
}

func newSubscriberRegistry[V any]() *subscriberRegistry[V] {
	return &subscriberRegistry[V]{}
}

// add registers a global listener. Re-registering the identical listener is
// a no-op returning an idempotent Unsubscribe.
//
// Identity is the pointer reported by reflect for the func value (Go funcs
// are not comparable). Distinct closures are distinct listeners even when
// they share a function literal; only re-registering the very same func
// value is collapsed. The reflect docs do not guarantee this pointer
// uniquely identifies a function, so the collapse is best-effort rather
// than a hard guarantee.
func (r *subscriberRegistry[V]) add(listener Listener[V]) (Unsubscribe, error) {
	if listener == nil {
		return nil, NewError(RetCInvalidSubscriber, "subscriber must be a non-nil listener")
	}

	ptr := reflect.ValueOf(listener).Pointer()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.ptr != 0 && e.ptr == ptr {
			// Already registered
			return func() {}, nil
		}
	}

	return r.append(registryEntry[V]{ptr: ptr, fn: listener}), nil
}

// addScoped registers a listener that only fires for notifications whose
// store name is in storeNames and whose predicate holds. Each call creates
// a fresh wrapper, so scoped registrations are never de-duplicated.
func (r *subscriberRegistry[V]) addScoped(listener Listener[V], storeNames []string, predicate Predicate[V]) (Unsubscribe, error) {
	if listener == nil {
		return nil, NewError(RetCInvalidSubscriber, "subscriber must be a non-nil listener")
	}
	if len(storeNames) == 0 {
		return nil, NewError(RetCEmptyScope, "subscribeToCaches requires at least one store name")
	}

	scope := make(map[string]struct{}, len(storeNames))
	for _, name := range storeNames {
		scope[name] = struct{}{}
	}

	wrapped := func(key string, value *V, storeName string) {
		if _, ok := scope[storeName]; !ok {
			return
		}
		if predicate != nil && !predicate(key, value, storeName) {
			return
		}
		listener(key, value, storeName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.append(registryEntry[V]{fn: wrapped}), nil
}

// append stores an entry and builds its idempotent Unsubscribe closure.
// Callers must hold r.mu.
func (r *subscriberRegistry[V]) append(entry registryEntry[V]) Unsubscribe {
	r.nextSeq++
	entry.seq = r.nextSeq
	r.entries = append(r.entries, entry)

	seq := entry.seq
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, e := range r.entries {
			if e.seq == seq {
				r.entries = append(r.entries[:i], r.entries[i+1:]...)
				return
			}
		}
	}
}

// notify broadcasts an event to all registered listeners in registration
// order. The dispatch itself is synchronous and runs to completion before
// the triggering operation returns; listener panics are not isolated and
// propagate to the caller.
func (r *subscriberRegistry[V]) notify(key string, value *V, storeName string) {
	r.mu.Lock()
	snapshot := make([]registryEntry[V], len(r.entries))
	copy(snapshot, r.entries)
	r.mu.Unlock()

	for _, e := range snapshot {
		e.fn(key, value, storeName)
	}
}

// size returns the number of registered listeners.
func (r *subscriberRegistry[V]) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
