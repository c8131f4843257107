package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario defines a browsing scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Catalog lists products inline, in catalog JSON field names.
	Catalog []map[string]any `yaml:"catalog,omitempty"`

	// CatalogFile is a catalog JSON file. Relative paths are resolved
	// against the scenario file's directory.
	CatalogFile string `yaml:"catalog_file,omitempty"`

	// PageSize overrides the reveal page size when positive.
	PageSize int `yaml:"page_size,omitempty"`

	// LoadDelay overrides the reveal delay, as a Go duration string.
	LoadDelay string `yaml:"load_delay,omitempty"`

	// Favorites are persisted before the session starts.
	Favorites []int64 `yaml:"favorites,omitempty"`

	// Steps are applied in order.
	Steps []Step `yaml:"steps"`
}

// Step is one user action and its optional expectations.
type Step struct {
	// Do is the action name (see the Action constants).
	Do string `yaml:"do"`

	Category  *string `yaml:"category,omitempty"`
	Rating    *int    `yaml:"rating,omitempty"`
	Ascending *bool   `yaml:"ascending,omitempty"`
	ID        *int64  `yaml:"id,omitempty"`
	Visible   *bool   `yaml:"visible,omitempty"`
	Duration  string  `yaml:"duration,omitempty"`

	// Expect is checked against the view after the action.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect lists the view properties a step must produce.
// Nil fields are not checked.
type Expect struct {
	// Visible is the expected ids of the visible products, in order.
	// An empty list expects nothing visible.
	Visible []int64 `yaml:"visible,omitempty"`

	// Favorite is the expected ids of visible products marked favorite.
	Favorite []int64 `yaml:"favorite,omitempty"`

	Total     *int   `yaml:"total,omitempty"`
	HasMore   *bool  `yaml:"has_more,omitempty"`
	Loading   *bool  `yaml:"loading,omitempty"`
	Scheduled *bool  `yaml:"scheduled,omitempty"`
	Scrolled  *bool  `yaml:"scrolled,omitempty"`
	Status    string `yaml:"status,omitempty"`

	// Favorites is the expected favorite set in toggle order.
	Favorites []int64 `yaml:"favorites,omitempty"`

	// Error is the expected command error code.
	Error string `yaml:"error,omitempty"`
}

// Action names.
const (
	ActionSetCategory         = "set_category"
	ActionSetMinRating        = "set_min_rating"
	ActionSetSort             = "set_sort"
	ActionToggleFavoritesOnly = "toggle_favorites_only"
	ActionToggleFavorite      = "toggle_favorite"
	ActionLoadMore            = "load_more"
	ActionSentinel            = "sentinel"
	ActionAdvance             = "advance"
	ActionView                = "view"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.CatalogFile != "" && !filepath.IsAbs(scenario.CatalogFile) {
		scenario.CatalogFile = filepath.Join(filepath.Dir(path), scenario.CatalogFile)
	}
	if scenario.CatalogFile != "" {
		if _, err := os.Stat(scenario.CatalogFile); err != nil {
			return nil, fmt.Errorf("invalid scenario: catalog file not found: %s", scenario.CatalogFile)
		}
	}
	return scenario, nil
}

// ParseScenario parses scenario YAML with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case len(s.Catalog) == 0 && s.CatalogFile == "":
		return fmt.Errorf("one of catalog or catalog_file is required")
	case len(s.Catalog) > 0 && s.CatalogFile != "":
		return fmt.Errorf("catalog and catalog_file are mutually exclusive")
	}

	if s.PageSize < 0 {
		return fmt.Errorf("page_size must be positive")
	}
	if s.LoadDelay != "" {
		if _, err := time.ParseDuration(s.LoadDelay); err != nil {
			return fmt.Errorf("load_delay: %w", err)
		}
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i := range s.Steps {
		if err := validateStep(i, &s.Steps[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateStep checks that a step names a known action with its argument.
func validateStep(index int, st *Step) error {
	missing := func(field string) error {
		return fmt.Errorf("steps[%d]: %s is required for %s", index, field, st.Do)
	}

	switch st.Do {
	case "":
		return fmt.Errorf("steps[%d]: do is required", index)
	case ActionSetCategory:
		if st.Category == nil {
			return missing("category")
		}
	case ActionSetMinRating:
		if st.Rating == nil {
			return missing("rating")
		}
	case ActionSetSort:
		if st.Ascending == nil {
			return missing("ascending")
		}
	case ActionToggleFavorite:
		if st.ID == nil {
			return missing("id")
		}
	case ActionSentinel:
		if st.Visible == nil {
			return missing("visible")
		}
	case ActionAdvance:
		if st.Duration == "" {
			return missing("duration")
		}
		d, err := time.ParseDuration(st.Duration)
		if err != nil {
			return fmt.Errorf("steps[%d]: duration: %w", index, err)
		}
		if d < 0 {
			return fmt.Errorf("steps[%d]: duration must not be negative", index)
		}
	case ActionToggleFavoritesOnly, ActionLoadMore, ActionView:
	default:
		return fmt.Errorf("steps[%d]: unknown action %q", index, st.Do)
	}
	return nil
}
