// Package tui is the interactive rendering boundary for a browsing session.
//
// The model never touches a session directly. Every command goes through a
// Backend, which runs it on the goroutine that owns the session and hands
// back a fresh Snapshot.
package tui
