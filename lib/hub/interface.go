package hub

import (
	"context"
	"fmt"
	"github.com/cachehub/cachehub/lib/backend"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

// All is the wildcard store selector for ClearItems and the key literal
// notified by PublishItems to signal that a full store was (re)fetched.
const All = "all"

// --------------------------------------------------------------------------
// Callback Types
// --------------------------------------------------------------------------

// Listener receives notification fan-out events. The value is nil for
// removals and for misses resolved to nothing; storeName is empty for the
// default fallback store.
type Listener[V any] func(key string, value *V, storeName string)

// Predicate filters notifications for scoped listeners. It is evaluated
// after the store-name filter.
type Predicate[V any] func(key string, value *V, storeName string) bool

// Fallback produces a value for a key the resolved store does not hold. A
// nil result is valid and selects the remove path of the write protocol.
type Fallback[V any] func(ctx context.Context) (*V, error)

// ListFallback produces a list result when the resolved store yields none.
type ListFallback[V any] func(ctx context.Context) (backend.Paginated[V], error)

// Unsubscribe removes a previously registered listener. It is idempotent.
type Unsubscribe func()

// Item is a single pending write, used in batch form by CacheMultiple. A
// nil Value removes the key instead of writing it.
type Item[V any] struct {
	Key       string
	Value     *V
	StoreName string
}

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IHub is the orchestration surface over a set of named key-value backends.
// All operations except Subscribe and SubscribeToCaches require the hub to
// be started; they return a *Error with RetCNotInitialized otherwise,
// checked before any argument validation.
type IHub[V any] interface {
	// IsInitialized reports whether the hub has been started.
	IsInitialized() bool

	// Start validates the backend map and builds the cache adapter. It is
	// idempotent - starting a started hub is a no-op. A malformed backend
	// map fails with RetCConfiguration identifying the offending store.
	Start() error

	// End drops the cache adapter and marks the hub uninitialized. It does
	// not clear subscribers and does not close backends - backend lifecycle
	// ownership stays with the caller. The hub can be started again.
	End()

	// CacheItem writes key=value to the resolved store (storeName empty =
	// default fallback store) and notifies all listeners with the written
	// value. A nil value removes the key instead; listeners still fire and
	// observe the nil. Returns the written (or removed) value.
	CacheItem(ctx context.Context, key string, value *V, storeName string) (*V, error)

	// CacheMultiple applies CacheItem semantics to each item in order. Each
	// item triggers its own fan-out. The batch is not atomic: a backend
	// failure leaves earlier items written and notified.
	CacheMultiple(ctx context.Context, items []Item[V]) error

	// GetItem reads key from the resolved store. A hit is returned silently.
	// On a miss the fallback (nil = resolves to nil) produces the value,
	// which is written via the CacheItem protocol - notifying exactly once -
	// and returned.
	GetItem(ctx context.Context, key, storeName string, fallback Fallback[V]) (*V, error)

	// ListItems queries the resolved store's list capability. An empty
	// opts.StoreName yields an empty result without touching any backend.
	// If the backend yields no usable result the fallback (nil = empty
	// result) is consulted. ListItems never notifies.
	ListItems(ctx context.Context, opts backend.ListOptions, fallback ListFallback[V]) (backend.Paginated[V], error)

	// PublishItem obtains the value via GetItem semantics, then notifies
	// unconditionally - unlike GetItem, a cache hit still notifies.
	PublishItem(ctx context.Context, key, storeName string, fallback Fallback[V]) error

	// PublishItems wraps ListItems and notifies once with the key literal
	// All and the queried store name. Never emitted for the default
	// fallback store.
	PublishItems(ctx context.Context, opts backend.ListOptions, fallback ListFallback[V]) error

	// RemoveItem removes key from the resolved store and notifies with a
	// nil value.
	RemoveItem(ctx context.Context, key, storeName string) error

	// ClearItems clears stores in bulk without per-key notifications. An
	// empty storeName clears only the default fallback store, All clears
	// the default store plus every backend supporting the optional clear
	// capability, and an explicit name clears just that backend (a no-op if
	// it cannot clear).
	ClearItems(ctx context.Context, storeName string) error

	// Subscribe registers a global listener. Registering the identical
	// listener twice is idempotent. The returned Unsubscribe removes the
	// listener by identity and is itself idempotent.
	//
	// Listeners run synchronously in registration order; a panic in one
	// listener propagates to the caller of the triggering operation.
	Subscribe(listener Listener[V]) (Unsubscribe, error)

	// SubscribeToCaches registers a listener scoped to the given store
	// names, additionally filtered by the predicate (nil = always true).
	// The wrapped listener takes a regular slot in the same ordered
	// registry used by Subscribe.
	SubscribeToCaches(listener Listener[V], storeNames []string, predicate Predicate[V]) (Unsubscribe, error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("HubError (code %s): %s", e.Code, e.Msg)
}

// NewError creates a new hub Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess           RetCode = iota // 0: Operation executed successfully.
	RetCConfiguration                    // 1: Malformed backend map.
	RetCNotInitialized                   // 2: Gated operation called before Start.
	RetCMissingKey                       // 3: CacheItem called without a key.
	RetCInvalidSubscriber                // 4: Nil listener passed to a subscribe call.
	RetCEmptyScope                       // 5: SubscribeToCaches with no store names.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCConfiguration:
		return "Configuration"
	case RetCNotInitialized:
		return "NotInitialized"
	case RetCMissingKey:
		return "MissingKey"
	case RetCInvalidSubscriber:
		return "InvalidSubscriber"
	case RetCEmptyScope:
		return "EmptyScope"
	default:
		return "Unknown"
	}
}
