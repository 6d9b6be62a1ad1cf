// Package memory provides a concurrent in-memory implementation of the
// backend.IBackend and backend.IClearableBackend interfaces.
//
// The implementation stores entries in an xsync.MapOf, a lock-free
// concurrent map, so all single-key operations are safe for concurrent use
// without external synchronization. ListItems takes a snapshot of the map,
// sorts it by key (ascending by default, descending with OrderBy "-key")
// and applies the requested page window. Totals are computed over the
// snapshot.
//
// The hub uses this package as its default fallback store when the caller
// does not supply one. It is equally suitable as a named store in tests and
// small deployments.
//
// Contexts are accepted for interface conformance but ignored - no
// operation of this backend blocks.
package memory
