package harness

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenDir is where scenario transcripts are kept, relative to the
// scenario files.
const GoldenDir = "golden"

// Transcript renders a result as deterministic text, one block per step:
//
//	step 1: set_min_rating 3
//	  visible: [1]
//	  total=1 has_more=false loading=false placeholders=0
//	  status: No more products
//	  favorites: []
//	  time: 0s
//
// Visible products marked favorite carry a trailing "*".
func Transcript(name string, result *Result) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "scenario: %s\n", name)
	for _, rec := range result.Steps {
		fmt.Fprintf(&b, "step %d: %s\n", rec.Index, rec.Action)
		if rec.Error != "" {
			fmt.Fprintf(&b, "  error: %s\n", rec.Error)
		}
		if rec.Scrolled {
			b.WriteString("  scrolled to top\n")
		}
		fmt.Fprintf(&b, "  visible: %s\n", formatVisible(rec))
		fmt.Fprintf(&b, "  total=%d has_more=%t loading=%t placeholders=%d\n",
			rec.View.Total, rec.View.HasMore, rec.View.IsLoadingMore, rec.View.Placeholders)
		fmt.Fprintf(&b, "  status: %s\n", rec.View.Status)
		fmt.Fprintf(&b, "  favorites: %s\n", formatIDs(rec.Favorites))
		fmt.Fprintf(&b, "  time: %s\n", rec.Now)
	}
	return b.Bytes()
}

func formatVisible(rec StepRecord) string {
	parts := make([]string, len(rec.View.Visible))
	for i, r := range rec.View.Visible {
		parts[i] = strconv.FormatInt(r.ID, 10)
		if r.IsFavorite {
			parts[i] += "*"
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// RunWithGolden executes a scenario and compares its transcript against
// fixtureDir/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario, fixtureDir string) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result, fixtureDir)
	return result, nil
}

// AssertGolden compares an existing result's transcript against a golden
// file without re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result, fixtureDir string) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir(fixtureDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Transcript(name, result))
}
