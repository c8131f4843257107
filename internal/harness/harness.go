package harness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/PraveshMalvi/buyora/internal/catalog"
	"github.com/PraveshMalvi/buyora/internal/favorites"
	"github.com/PraveshMalvi/buyora/internal/schedule"
	"github.com/PraveshMalvi/buyora/internal/session"
	"github.com/PraveshMalvi/buyora/internal/store"
	"github.com/PraveshMalvi/buyora/internal/testutil"
)

// Harness holds the live objects of one scenario run.
type Harness struct {
	store    *store.Store
	clock    *schedule.Virtual
	session  *session.Session
	logger   *slog.Logger
	scrolled bool
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory database and a virtual
// clock starting at zero, so runs are isolated and reproducible.
//
// An error is returned only when the scenario cannot be set up (bad
// catalog, database failure). Failed expectations are reported in the
// Result.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with session and persistence logging sent to logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	ctx := context.Background()

	cat, err := loadCatalog(scenario)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	if len(scenario.Favorites) > 0 {
		seed, err := json.Marshal(scenario.Favorites)
		if err != nil {
			return nil, fmt.Errorf("failed to encode favorites: %w", err)
		}
		if err := st.Put(ctx, favorites.StorageKey, string(seed)); err != nil {
			return nil, fmt.Errorf("failed to seed favorites: %w", err)
		}
	}

	h := &Harness{
		store:  st,
		clock:  schedule.NewVirtual(),
		logger: logger,
	}

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithIDGenerator(testutil.NewFixedSessionIDs("scenario-" + scenario.Name)),
		session.WithScrollToTop(func() { h.scrolled = true }),
	}
	if scenario.PageSize > 0 {
		opts = append(opts, session.WithPageSize(scenario.PageSize))
	}
	if scenario.LoadDelay != "" {
		// Validated at load time.
		d, _ := time.ParseDuration(scenario.LoadDelay)
		opts = append(opts, session.WithLoadDelay(d))
	}

	adapter := favorites.NewAdapter(st, favorites.WithLogger(logger))
	h.session = session.New(ctx, cat, adapter, h.clock, opts...)

	result := NewResult()
	result.Steps = append(result.Steps, h.record(0, "start", nil, false))

	for i, step := range scenario.Steps {
		rec := h.execute(ctx, i+1, step)
		result.Steps = append(result.Steps, rec)
		for _, msg := range checkExpect(rec, step.Expect) {
			result.AddError(fmt.Sprintf("step %d (%s): %s", rec.Index, step.Do, msg))
		}
	}
	return result, nil
}

// execute applies one step and records the state it leaves behind.
func (h *Harness) execute(ctx context.Context, index int, step Step) StepRecord {
	h.scrolled = false
	s := h.session

	var (
		action    string
		err       error
		scheduled bool
	)
	switch step.Do {
	case ActionSetCategory:
		action = fmt.Sprintf("%s %q", step.Do, *step.Category)
		s.SetCategory(*step.Category)
	case ActionSetMinRating:
		action = fmt.Sprintf("%s %d", step.Do, *step.Rating)
		err = s.SetMinRating(*step.Rating)
	case ActionSetSort:
		action = fmt.Sprintf("%s ascending=%t", step.Do, *step.Ascending)
		s.SetSortAscending(*step.Ascending)
	case ActionToggleFavoritesOnly:
		action = step.Do
		s.ToggleFavoritesOnly()
	case ActionToggleFavorite:
		action = fmt.Sprintf("%s %d", step.Do, *step.ID)
		s.ToggleFavorite(ctx, *step.ID)
	case ActionLoadMore:
		scheduled = s.LoadMore()
		action = step.Do + outcome(scheduled)
	case ActionSentinel:
		scheduled = s.SetSentinelVisible(*step.Visible)
		action = fmt.Sprintf("%s visible=%t%s", step.Do, *step.Visible, outcome(scheduled))
	case ActionAdvance:
		// Validated at load time.
		d, _ := time.ParseDuration(step.Duration)
		action = fmt.Sprintf("%s %s", step.Do, d)
		h.clock.Advance(d)
	case ActionView:
		action = step.Do
	}

	h.logger.Debug("scenario step", "index", index, "action", action)
	return h.record(index, action, err, scheduled)
}

func (h *Harness) record(index int, action string, err error, scheduled bool) StepRecord {
	rec := StepRecord{
		Index:     index,
		Action:    action,
		Scheduled: scheduled,
		Scrolled:  h.scrolled,
		Now:       h.clock.Now(),
		View:      h.session.View(),
		Favorites: h.session.Favorites().IDs(),
	}
	if err != nil {
		var ce *session.CommandError
		if errors.As(err, &ce) {
			rec.Error = string(ce.Code)
		} else {
			rec.Error = err.Error()
		}
	}
	return rec
}

func outcome(scheduled bool) string {
	if scheduled {
		return " -> scheduled"
	}
	return " -> ignored"
}

func loadCatalog(scenario *Scenario) (*catalog.Catalog, error) {
	if scenario.CatalogFile != "" {
		return catalog.Load(scenario.CatalogFile)
	}

	data, err := json.Marshal(scenario.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to encode inline catalog: %w", err)
	}
	return catalog.Parse(data)
}
