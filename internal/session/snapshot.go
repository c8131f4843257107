package session

import "github.com/PraveshMalvi/buyora/internal/catalog"

// PlaceholderRows is the number of skeleton rows shown while a page loads.
const PlaceholderRows = 4

// Status lines shown under the list.
const (
	StatusLoading    = "Loading..."
	StatusScrollMore = "Scroll to load more"
	StatusExhausted  = "No more products"
)

// Snapshot is everything the rendering boundary needs to draw one frame.
type Snapshot struct {
	// Visible is the revealed prefix of the derived list.
	Visible []catalog.Record `json:"visible"`

	IsLoadingMore bool `json:"is_loading_more"`
	HasMore       bool `json:"has_more"`

	// Categories are the catalog's distinct categories in first-seen order.
	Categories []string `json:"categories"`

	// Total is the length of the derived list before pagination.
	Total int `json:"total"`

	Filter catalog.Filter `json:"filter"`

	// Placeholders is the number of skeleton rows to draw after Visible.
	Placeholders int `json:"placeholders"`

	Status string `json:"status"`
}

// View derives the current snapshot. Nothing is cached: each call
// recomputes the list from the catalog, favorites and filter.
func (s *Session) View() Snapshot {
	derived := s.derive()
	revealed := min(s.reveal.Revealed(), len(derived))

	snap := Snapshot{
		Visible:       derived[:revealed:revealed],
		IsLoadingMore: s.reveal.IsLoadingMore(),
		HasMore:       revealed < len(derived),
		Categories:    s.Categories(),
		Total:         len(derived),
		Filter:        s.filter,
	}
	if snap.IsLoadingMore {
		snap.Placeholders = PlaceholderRows
	}

	switch {
	case !snap.HasMore:
		snap.Status = StatusExhausted
	case snap.IsLoadingMore:
		snap.Status = StatusLoading
	default:
		snap.Status = StatusScrollMore
	}
	return snap
}
