// Package storage persists engine snapshots to a local key-value store.
// Reads and writes are best-effort: a missing or corrupt snapshot degrades
// to "nothing persisted" and a failed write is logged and swallowed, so the
// in-memory state stays authoritative for the session.
package storage

// Namespaced snapshot keys.
const (
	KeyCart          = "cart"
	KeyWishlists     = "wishlists"
	KeySearchHistory = "searchhistory"
)

// Store reads and writes JSON snapshots under namespaced keys.
type Store interface {
	// Load deserializes the snapshot stored under key into v. It returns
	// false when the key is absent or the stored blob cannot be decoded;
	// it never returns an error to the caller.
	Load(key string, v any) bool

	// Save serializes v and writes it under key. Failures are logged and
	// swallowed; a write failure must never surface into the mutation
	// pipeline.
	Save(key string, v any)
}
