package catalog

// AllCategories is the category value that disables category filtering.
const AllCategories = "All"

// Rating bounds accepted by the command surface.
const (
	MinRatingFloor   = 0
	MinRatingCeiling = 5
)

// Filter holds the user-controlled selections that shape the view.
type Filter struct {
	Category      string `json:"category" yaml:"category"`
	MinRating     int    `json:"min_rating" yaml:"min_rating"`
	SortAscending bool   `json:"sort_ascending" yaml:"sort_ascending"`
	FavoritesOnly bool   `json:"favorites_only" yaml:"favorites_only"`
}

// DefaultFilter returns the filter a session starts with: all categories,
// no rating floor, cheapest first, favorites not restricted.
func DefaultFilter() Filter {
	return Filter{
		Category:      AllCategories,
		MinRating:     0,
		SortAscending: true,
		FavoritesOnly: false,
	}
}

// SortLabel is the label the sort toggle shows for the current direction.
func (f Filter) SortLabel() string {
	if f.SortAscending {
		return "Low → High"
	}
	return "High → Low"
}
