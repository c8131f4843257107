// Package harness runs browsing scenarios against a session.
//
// A scenario is a YAML file naming a catalog and a sequence of user
// actions. Each action is applied to a fresh session backed by an
// in-memory SQLite store and a virtual clock, and the resulting view is
// recorded as one step of a transcript.
//
// # Scenario Format
//
//	name: favorites_only
//	description: "Favoriting a product and filtering to favorites"
//	page_size: 12          # optional, defaults to 12
//	load_delay: 300ms      # optional, defaults to 300ms
//	favorites: [3]         # optional, favorites persisted before the session starts
//	catalog:               # inline products, or catalog_file: path/to/catalog.json
//	  - { id: 1, product_name: Lamp, category: A, price: 50, rating: 4 }
//	steps:
//	  - do: toggle_favorite
//	    id: 2
//	  - do: toggle_favorites_only
//	    expect:
//	      visible: [2]
//	      favorites: [3, 2]
//
// # Actions
//
//   - set_category (category), set_min_rating (rating), set_sort (ascending)
//   - toggle_favorites_only, toggle_favorite (id)
//   - load_more, sentinel (visible), advance (duration), view
//
// # Expectations
//
// Every field of expect is optional; only the fields given are checked.
// An action that returns a command error fails the scenario unless expect
// names the error code.
//
// # Deterministic Output
//
// Session ids are fixed and time only moves on advance steps or while
// draining reveal timers, so the transcript of a scenario is identical
// across runs and can be compared against a golden file.
package harness
