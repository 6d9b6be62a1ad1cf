package memory

import (
	"context"
	"github.com/cachehub/cachehub/lib/backend"
	"github.com/puzpuzpuz/xsync/v3"
	"sort"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

// Sort orders understood by ListItems. An empty OrderBy is equivalent to
// OrderByKey. Unknown orders fall back to ascending key order.
const (
	OrderByKey     = "key"
	OrderByKeyDesc = "-key"
)

// --------------------------------------------------------------------------
// Core memory backend structure
// --------------------------------------------------------------------------

// memoryImpl implements backend.IClearableBackend over a concurrent map
type memoryImpl[V any] struct {
	items *xsync.MapOf[string, V]
}

// Options configures the memory backend during initialization
type Options struct {
	SizeHint int // Expected number of entries (0 = library default)
}

// DefaultOptions returns the default memory backend options
func DefaultOptions() *Options {
	return &Options{
		SizeHint: 0,
	}
}

// --------------------------------------------------------------------------
// Initialization and Setup
// --------------------------------------------------------------------------

// New creates a new in-memory backend instance with the specified options
// (optional). The returned backend supports the optional clear capability.
//
// Thread-safety: The returned backend is safe for concurrent use.
func New[V any](opts *Options) backend.IClearableBackend[V] {
	if opts == nil {
		opts = DefaultOptions()
	}

	var items *xsync.MapOf[string, V]
	if opts.SizeHint > 0 {
		items = xsync.NewMapOf[string, V](xsync.WithPresize(opts.SizeHint))
	} else {
		items = xsync.NewMapOf[string, V]()
	}

	return &memoryImpl[V]{items: items}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see backend/interface.go)
// --------------------------------------------------------------------------

func (m *memoryImpl[V]) GetItem(_ context.Context, key string) (V, bool, error) {
	value, loaded := m.items.Load(key)
	return value, loaded, nil
}

func (m *memoryImpl[V]) PutItem(_ context.Context, key string, value V) error {
	m.items.Store(key, value)
	return nil
}

func (m *memoryImpl[V]) RemoveItem(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

func (m *memoryImpl[V]) ClearItems(_ context.Context) error {
	m.items.Clear()
	return nil
}

func (m *memoryImpl[V]) ListItems(_ context.Context, opts backend.ListOptions) (backend.Paginated[V], error) {
	// Snapshot the map, then sort. Entries written concurrently with the
	// snapshot may or may not be included.
	entries := make([]backend.Entry[V], 0, m.items.Size())
	m.items.Range(func(key string, value V) bool {
		entries = append(entries, backend.Entry[V]{Key: key, Value: value})
		return true
	})

	sortEntries(entries, opts.OrderBy)

	total := len(entries)
	perPage := opts.ResultsPerPage
	if perPage <= 0 {
		// Everything on one page
		return backend.Paginated[V]{
			Data:           entries,
			TotalResults:   total,
			TotalPages:     1,
			ResultsPerPage: total,
			Page:           1,
		}, nil
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}

	page := opts.Page
	if page <= 0 {
		page = 1
	}

	// Out-of-range pages yield an empty data slice, not an error
	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return backend.Paginated[V]{
		Data:           entries[start:end],
		TotalResults:   total,
		TotalPages:     totalPages,
		ResultsPerPage: perPage,
		Page:           page,
	}, nil
}

// --------------------------------------------------------------------------
// Helper Functions
// --------------------------------------------------------------------------

// sortEntries orders a snapshot in place according to the requested order
func sortEntries[V any](entries []backend.Entry[V], orderBy string) {
	desc := orderBy == OrderByKeyDesc
	sort.Slice(entries, func(i, j int) bool {
		if desc {
			return entries[i].Key > entries[j].Key
		}
		return entries[i].Key < entries[j].Key
	})
}
