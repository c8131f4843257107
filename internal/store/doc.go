// Package store provides durable key-value storage for browsing sessions.
//
// It plays the role a browser's local storage plays for the web storefront:
// a flat namespace of string keys holding string values. The favorites
// adapter keeps its JSON-encoded ID list under a single key.
//
// Two backends are provided, both satisfying favorites.KV:
//   - Store: SQLite (github.com/mattn/go-sqlite3), a single file
//   - BadgerStore: Badger (github.com/dgraph-io/badger/v4), a directory
//
// # SQLite Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Delete backs "favorites clear"; removing an absent key is not an error.
package store
