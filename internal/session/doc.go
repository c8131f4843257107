// Package session owns the state of one browsing session.
//
// A Session holds the catalog, the favorite set, the filter and the reveal
// controller, and exposes them through synchronous commands and a derived
// read-only Snapshot. Every read recomputes the view from current state,
// so a Snapshot always agrees with the inputs that produced it.
//
// Commands are atomic from the caller's point of view. A Session is not
// safe for concurrent use: drive it from one goroutine, typically a
// schedule.Loop that also delivers the reveal controller's timers.
//
// Filter changes reset pagination and fire the scroll-to-top hook. Favorite
// toggles persist through the injected favorites.Store after every call and
// never reset pagination, even when the visible list shrinks.
package session
