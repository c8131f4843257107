package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PraveshMalvi/buyora/internal/catalog"
	"github.com/PraveshMalvi/buyora/internal/favorites"
	"github.com/PraveshMalvi/buyora/internal/schedule"
	"github.com/PraveshMalvi/buyora/internal/session"
	"github.com/PraveshMalvi/buyora/internal/testutil"
)

const delay = 300 * time.Millisecond

type fixture struct {
	model    Model
	clock    *schedule.Virtual
	session  *session.Session
	scrolled int
}

func newFixture(t *testing.T, cat *catalog.Catalog, pageSize int) *fixture {
	t.Helper()
	f := &fixture{clock: schedule.NewVirtual()}
	f.session = session.New(context.Background(), cat, favorites.NewAdapter(testutil.NewFlakyKV()), f.clock,
		session.WithIDGenerator(testutil.NewFixedSessionIDs("")),
		session.WithPageSize(pageSize),
		session.WithLoadDelay(delay),
		session.WithScrollToTop(func() { f.scrolled++ }),
	)
	prices, err := catalog.NewPriceFormatter(catalog.DefaultLocale, catalog.DefaultCurrency)
	require.NoError(t, err)

	f.model = New(context.Background(), DirectBackend{Session: f.session}, prices)
	f.model = drain(f.model, f.model.Init())
	return f
}

// drain runs cmd and every command that follows from it.
func drain(m Model, cmd tea.Cmd) Model {
	for cmd != nil {
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return m
		}
		next, c := m.Update(msg)
		m, cmd = next.(Model), c
	}
	return m
}

func (f *fixture) send(msg tea.Msg) {
	next, cmd := f.model.Update(msg)
	f.model = drain(next.(Model), cmd)
}

func (f *fixture) press(keys string) {
	f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
}

func ids(snap session.Snapshot) []int64 {
	out := make([]int64, len(snap.Visible))
	for i, r := range snap.Visible {
		out[i] = r.ID
	}
	return out
}

func TestModel_InitLoadsFirstPage(t *testing.T) {
	f := newFixture(t, testutil.SequentialCatalog(5), 2)

	snap := f.model.Snapshot()
	assert.Equal(t, []int64{1, 2}, ids(snap))
	assert.True(t, snap.HasMore)
	assert.Equal(t, 0, f.model.Cursor())
	assert.Zero(t, f.clock.Pending(), "sentinel is off-screen at the top")
}

func TestModel_CursorAtEndRevealsMore(t *testing.T) {
	f := newFixture(t, testutil.SequentialCatalog(5), 2)

	f.send(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, f.model.Cursor())
	snap := f.model.Snapshot()
	assert.True(t, snap.IsLoadingMore)
	assert.Equal(t, session.PlaceholderRows, snap.Placeholders)

	f.clock.Advance(delay)
	f.send(RefreshMsg{})
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(f.model.Snapshot()))

	// The sentinel was still visible when the reveal landed, so another
	// one started before the cursor moved off the end.
	f.clock.Advance(delay)
	f.send(RefreshMsg{})
	snap = f.model.Snapshot()
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(snap))
	assert.False(t, snap.HasMore)
	assert.Equal(t, session.StatusExhausted, snap.Status)
	assert.Zero(t, f.clock.Pending())
}

func TestModel_LoadMoreKey(t *testing.T) {
	f := newFixture(t, testutil.SequentialCatalog(5), 2)

	f.press("m")
	assert.True(t, f.model.Snapshot().IsLoadingMore)

	f.clock.Advance(delay)
	f.send(RefreshMsg{})
	snap := f.model.Snapshot()
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(snap))
	assert.False(t, snap.IsLoadingMore, "cursor is at the top so nothing re-arms")
}

func TestModel_CategoryCycle(t *testing.T) {
	f := newFixture(t, testutil.SequentialCatalog(5), 12)

	f.press("c")
	assert.Equal(t, "A", f.model.Snapshot().Filter.Category)
	assert.Equal(t, []int64{1, 4}, ids(f.model.Snapshot()))
	assert.Equal(t, 1, f.scrolled)

	f.press("C")
	assert.Equal(t, catalog.AllCategories, f.model.Snapshot().Filter.Category)

	f.press("C")
	assert.Equal(t, "C", f.model.Snapshot().Filter.Category)
	assert.Equal(t, []int64{3}, ids(f.model.Snapshot()))
}

func TestModel_ScrollTopResetsCursor(t *testing.T) {
	f := newFixture(t, testutil.SequentialCatalog(5), 12)

	f.send(tea.KeyMsg{Type: tea.KeyDown})
	f.send(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 2, f.model.Cursor())

	f.send(ScrollTopMsg{})
	assert.Equal(t, 0, f.model.Cursor())
}

func TestModel_RatingAndSort(t *testing.T) {
	cat := catalog.MustNew([]catalog.Product{
		testutil.Product(1, 50, 4, "A"),
		testutil.Product(2, 30, 2, "B"),
		testutil.Product(3, 70, 5, "A"),
	})
	f := newFixture(t, cat, 12)

	f.press("+")
	f.press("+")
	f.press("+")
	assert.Equal(t, 3, f.model.Snapshot().Filter.MinRating)
	assert.Equal(t, []int64{1, 3}, ids(f.model.Snapshot()))

	f.press("s")
	assert.False(t, f.model.Snapshot().Filter.SortAscending)
	assert.Equal(t, []int64{3, 1}, ids(f.model.Snapshot()))

	f.press("-")
	assert.Equal(t, 2, f.model.Snapshot().Filter.MinRating)
	assert.NoError(t, f.model.Err())
}

func TestModel_RejectedRatingShowsError(t *testing.T) {
	f := newFixture(t, testutil.TwoProductCatalog(), 12)

	f.press("-")
	require.Error(t, f.model.Err())
	assert.True(t, session.IsInvalidFilter(f.model.Err()))
	assert.Equal(t, 0, f.model.Snapshot().Filter.MinRating)
	assert.Contains(t, f.model.View(), "INVALID_FILTER_VALUE")

	f.press("+")
	assert.NoError(t, f.model.Err(), "next successful command clears the error")
}

func TestModel_ToggleFavoriteAndFavoritesOnly(t *testing.T) {
	f := newFixture(t, testutil.TwoProductCatalog(), 12)

	// Cheapest first: id 2 is on top.
	f.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	snap := f.model.Snapshot()
	require.Len(t, snap.Visible, 2)
	assert.Equal(t, int64(2), snap.Visible[0].ID)
	assert.True(t, snap.Visible[0].IsFavorite)

	f.press("f")
	snap = f.model.Snapshot()
	assert.True(t, snap.Filter.FavoritesOnly)
	assert.Equal(t, []int64{2}, ids(snap))

	f.send(tea.KeyMsg{Type: tea.KeyEnter})
	snap = f.model.Snapshot()
	assert.Empty(t, snap.Visible)
	assert.Contains(t, f.model.View(), "No products match.")

	// Nothing to toggle on an empty list.
	next, cmd := f.model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, next.(Model).Snapshot().Visible)
}

func TestModel_View(t *testing.T) {
	f := newFixture(t, testutil.SequentialCatalog(5), 2)

	view := f.model.View()
	assert.Contains(t, view, "Buyora")
	assert.Contains(t, view, "Category: All")
	assert.Contains(t, view, "product-1")
	assert.Contains(t, view, "product-2")
	assert.NotContains(t, view, "product-3")
	assert.Contains(t, view, "★★★★★")
	assert.Contains(t, view, "Showing 2 of 5")
	assert.Contains(t, view, session.StatusScrollMore)
}

func TestModel_ViewBeforeFirstSnapshot(t *testing.T) {
	m := New(context.Background(), DirectBackend{}, nil)
	assert.Contains(t, m.View(), session.StatusLoading)
}

func TestModel_WindowLimitsRows(t *testing.T) {
	f := newFixture(t, testutil.SequentialCatalog(12), 12)
	f.send(tea.WindowSizeMsg{Width: 80, Height: chromeLines + 3})

	for i := 0; i < 5; i++ {
		f.send(tea.KeyMsg{Type: tea.KeyDown})
	}
	require.Equal(t, 5, f.model.Cursor())

	view := f.model.View()
	assert.Contains(t, view, "product-4")
	assert.Contains(t, view, "product-6")
	assert.NotContains(t, view, "product-1 ")
	assert.NotContains(t, view, "product-7")
}

func TestModel_Quit(t *testing.T) {
	f := newFixture(t, testutil.TwoProductCatalog(), 12)

	_, cmd := f.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_HelpToggle(t *testing.T) {
	f := newFixture(t, testutil.TwoProductCatalog(), 12)

	short := f.model.View()
	f.press("?")
	assert.NotEqual(t, short, f.model.View())
	assert.Contains(t, f.model.View(), "prev category")
}
