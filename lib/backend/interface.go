package backend

import (
	"context"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IBackend is the contract every named store must satisfy. All methods take a
// context since backends are assumed to be asynchronous (remote stores, disk
// backed stores, ...) - in-memory implementations may ignore it.
//
// Implementations are polymorphic over the value type V. The orchestration
// layer never inspects values, it only moves them between callers, backends
// and listeners.
type IBackend[V any] interface {
	// ListItems queries the backend with the given options. The backend
	// interprets paging and ordering itself, the options are passed through
	// verbatim by the orchestration layer.
	ListItems(ctx context.Context, opts ListOptions) (Paginated[V], error)

	// GetItem retrieves the value for a key. The boolean return value
	// indicates whether a value for the key was found.
	GetItem(ctx context.Context, key string) (value V, loaded bool, err error)

	// PutItem inserts or updates a key-value pair.
	PutItem(ctx context.Context, key string, value V) error

	// RemoveItem deletes a key-value pair. Removing a missing key is not an
	// error.
	RemoveItem(ctx context.Context, key string) error
}

// IClearableBackend is the optional extension of IBackend for stores that
// support bulk clearing. Backends lacking this capability are skipped by
// clear-all operations, never erroring.
type IClearableBackend[V any] interface {
	IBackend[V]

	// ClearItems removes all key-value pairs from the backend.
	ClearItems(ctx context.Context) error
}

// SupportsClear checks whether a backend implements the optional clear
// capability. This is the only capability probed at runtime - the four
// required operations are enforced by the IBackend interface itself.
func SupportsClear[V any](b IBackend[V]) (IClearableBackend[V], bool) {
	c, ok := b.(IClearableBackend[V])
	return c, ok
}

// --------------------------------------------------------------------------
// List Types
// --------------------------------------------------------------------------

// ListOptions describes a list query. Only StoreName is interpreted by the
// orchestration layer, everything else is backend-defined.
type ListOptions struct {
	// StoreName is the logical name of the store to query.
	StoreName string
	// Page is the 1-based page to return (0 = first page).
	Page int
	// ResultsPerPage is the page size (0 = everything on one page).
	ResultsPerPage int
	// OrderBy names the sort order, e.g. "key" or "-key". Interpretation is
	// up to the backend.
	OrderBy string
	// Extra carries backend-specific query parameters verbatim.
	Extra map[string]any
}

// Entry is a single key-value pair as returned by list queries.
type Entry[V any] struct {
	Key   string `json:"key"`
	Value V      `json:"value"`
}

// Paginated is the result of a list query. The orchestration layer is opaque
// to everything beyond Data.
type Paginated[V any] struct {
	Data           []Entry[V] `json:"data"`
	TotalResults   int        `json:"total_results"`
	TotalPages     int        `json:"total_pages"`
	ResultsPerPage int        `json:"results_per_page"`
	Page           int        `json:"page"`
}
