// Package favorites keeps the set of products a user has marked and persists
// it through a string-keyed storage collaborator.
//
// The persisted form is a single key, StorageKey, holding a JSON array of
// integer product IDs in the order they were marked. Reading is tolerant:
// an absent key, unreadable storage, non-JSON text, or a JSON value that is
// not an array all load as an empty set. Writing is best-effort: a failed
// write is logged and dropped, and the in-memory set stays authoritative for
// the rest of the session.
package favorites
