// Package backend defines the contract between the cachehub orchestration
// layer and the named key-value stores it federates. It contains no storage
// logic itself - it is the seam that concrete backends plug into.
//
// The package focuses on:
//   - A unified interface (IBackend) for key-value operations across
//     different backends
//   - Optional capability discovery (IClearableBackend) via type assertion
//   - Shared list/pagination types (ListOptions, Paginated, Entry)
//
// Key Components:
//
//   - IBackend Interface: The core abstraction every named store must
//     satisfy: ListItems, GetItem, PutItem and RemoveItem. All methods take
//     a context.Context since backends are assumed to be asynchronous; the
//     orchestration layer passes the caller's context through verbatim and
//     never retries or times out on its own.
//
//   - IClearableBackend Interface: The optional extension for stores that
//     support bulk clearing. The SupportsClear helper probes for it at
//     runtime; it is the only duck-typed capability check left in the
//     system, the required operations are enforced by the type system.
//
//   - List Types: ListOptions is passed through to backends verbatim (only
//     StoreName is interpreted by the orchestration layer), Paginated wraps
//     the returned page together with optional totals.
//
// This interface-driven approach allows applications to:
//   - Register heterogeneous stores (in-memory, disk backed, remote) under
//     one orchestration surface
//   - Swap backend implementations without touching orchestration code
//   - Keep backend lifecycle ownership with the caller - the orchestration
//     layer never opens or closes backends
//
// Related Packages:
//
// The memory package (github.com/cachehub/cachehub/lib/backend/memory)
// provides a concurrent in-memory implementation of IBackend and
// IClearableBackend built on xsync.MapOf. It doubles as the default
// fallback store of the hub.
//
// The testing package (github.com/cachehub/cachehub/lib/backend/testing)
// provides a standardized conformance suite for backend implementations.
package backend
