package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PraveshMalvi/buyora/internal/catalog"
	"github.com/PraveshMalvi/buyora/internal/schedule"
	"github.com/PraveshMalvi/buyora/internal/session"
)

// SnapshotMsg carries the session view after a command ran.
type SnapshotMsg struct {
	Snapshot session.Snapshot
	Err      error
}

// RefreshMsg asks the model to re-read the session, e.g. after a reveal
// completed on the loop.
type RefreshMsg struct{}

// ScrollTopMsg moves the cursor back to the first row. Sessions request it
// when the filter changes.
type ScrollTopMsg struct{}

// chromeLines is the number of lines around the product rows: header,
// filter line, blank, status and help.
const chromeLines = 5

// Model is the bubbletea model of the catalog browser.
type Model struct {
	ctx     context.Context
	backend Backend
	prices  *catalog.PriceFormatter
	keys    KeyMap
	styles  Styles
	help    help.Model

	snap   session.Snapshot
	ready  bool
	err    error
	cursor int
	offset int
	height int

	// sentinel is the last visibility reported for the end of the list.
	sentinel bool
}

// Option configures a Model.
type Option func(*Model)

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// WithStyles replaces the default styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// New creates a browser model.
func New(ctx context.Context, backend Backend, prices *catalog.PriceFormatter, opts ...Option) Model {
	m := Model{
		ctx:     ctx,
		backend: backend,
		prices:  prices,
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		help:    help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.do("view", nil)
}

// Snapshot returns the last snapshot the model received.
func (m Model) Snapshot() session.Snapshot {
	return m.snap
}

// Cursor returns the index of the selected row.
func (m Model) Cursor() int {
	return m.cursor
}

// Err returns the error of the last command, if any.
func (m Model) Err() error {
	return m.err
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampCursor()
		return m, nil

	case SnapshotMsg:
		if errors.Is(msg.Err, schedule.ErrLoopClosed) || errors.Is(msg.Err, context.Canceled) {
			return m, tea.Quit
		}
		if m.ready && msg.Snapshot.Filter != m.snap.Filter {
			// A filter change resets the session's sentinel too.
			m.sentinel = false
		}
		m.snap = msg.Snapshot
		m.ready = true
		m.err = msg.Err
		m.clampCursor()
		cmd := m.syncSentinel()
		return m, cmd

	case RefreshMsg:
		return m, m.do("refresh", nil)

	case ScrollTopMsg:
		m.cursor, m.offset = 0, 0
		cmd := m.syncSentinel()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.clampCursor()
		}
		cmd := m.syncSentinel()
		return m, cmd

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.snap.Visible)-1 {
			m.cursor++
			m.clampCursor()
		}
		cmd := m.syncSentinel()
		return m, cmd

	case key.Matches(msg, m.keys.NextCategory):
		category := m.cycleCategory(1)
		return m, m.do("set_category", func(s *session.Session) error {
			s.SetCategory(category)
			return nil
		})

	case key.Matches(msg, m.keys.PrevCategory):
		category := m.cycleCategory(-1)
		return m, m.do("set_category", func(s *session.Session) error {
			s.SetCategory(category)
			return nil
		})

	case key.Matches(msg, m.keys.RatingUp):
		rating := m.snap.Filter.MinRating + 1
		return m, m.do("set_min_rating", func(s *session.Session) error {
			return s.SetMinRating(rating)
		})

	case key.Matches(msg, m.keys.RatingDown):
		rating := m.snap.Filter.MinRating - 1
		return m, m.do("set_min_rating", func(s *session.Session) error {
			return s.SetMinRating(rating)
		})

	case key.Matches(msg, m.keys.ToggleSort):
		ascending := !m.snap.Filter.SortAscending
		return m, m.do("set_sort", func(s *session.Session) error {
			s.SetSortAscending(ascending)
			return nil
		})

	case key.Matches(msg, m.keys.FavoritesOnly):
		return m, m.do("toggle_favorites_only", func(s *session.Session) error {
			s.ToggleFavoritesOnly()
			return nil
		})

	case key.Matches(msg, m.keys.Favorite):
		if len(m.snap.Visible) == 0 {
			return m, nil
		}
		id := m.snap.Visible[m.cursor].ID
		ctx := m.ctx
		return m, m.do("toggle_favorite", func(s *session.Session) error {
			s.ToggleFavorite(ctx, id)
			return nil
		})

	case key.Matches(msg, m.keys.LoadMore):
		return m, m.do("load_more", func(s *session.Session) error {
			s.LoadMore()
			return nil
		})
	}
	return m, nil
}

// do returns a command that runs cmd on the backend.
func (m Model) do(name string, cmd Command) tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		snap, err := backend.Do(ctx, name, cmd)
		return SnapshotMsg{Snapshot: snap, Err: err}
	}
}

// syncSentinel reports the end of the list as visible when the cursor sits
// on the last row and more products remain.
func (m *Model) syncSentinel() tea.Cmd {
	n := len(m.snap.Visible)
	visible := m.ready && m.snap.HasMore && n > 0 && m.cursor >= n-1
	if visible == m.sentinel {
		return nil
	}
	m.sentinel = visible
	return m.do("sentinel", func(s *session.Session) error {
		s.SetSentinelVisible(visible)
		return nil
	})
}

// cycleCategory returns the category step positions away from the current
// one, with "All" in front of the catalog's categories.
func (m Model) cycleCategory(step int) string {
	options := append([]string{catalog.AllCategories}, m.snap.Categories...)
	i := slices.Index(options, m.snap.Filter.Category)
	if i < 0 {
		i = 0
	}
	n := len(options)
	return options[((i+step)%n+n)%n]
}

func (m *Model) clampCursor() {
	n := len(m.snap.Visible)
	m.cursor = max(0, min(m.cursor, n-1))

	rows := m.rowsShown()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if rows > 0 && m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(0, min(m.offset, n-1))
}

// rowsShown is how many product rows fit on screen; 0 means unlimited.
func (m Model) rowsShown() int {
	if m.height == 0 {
		return 0
	}
	used := chromeLines + m.snap.Placeholders
	if m.err != nil {
		used++
	}
	return max(1, m.height-used)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return m.styles.Status.Render(session.StatusLoading) + "\n"
	}

	var b strings.Builder
	f := m.snap.Filter
	favOnly := "off"
	if f.FavoritesOnly {
		favOnly = "on"
	}
	b.WriteString(m.styles.Header.Render("Buyora"))
	b.WriteString("\n")
	b.WriteString(m.styles.Filter.Render(fmt.Sprintf("Category: %s  Min rating: %d+  Sort: %s  Favorites only: %s",
		f.Category, f.MinRating, f.SortLabel(), favOnly)))
	b.WriteString("\n\n")

	if len(m.snap.Visible) == 0 && !m.snap.IsLoadingMore {
		b.WriteString(m.styles.Row.Render("No products match."))
		b.WriteString("\n")
	}

	end := len(m.snap.Visible)
	if rows := m.rowsShown(); rows > 0 {
		end = min(end, m.offset+rows)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}
	for i := 0; i < m.snap.Placeholders; i++ {
		b.WriteString(m.styles.Placeholder.Render(strings.Repeat("░", 40)))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Status.Render(fmt.Sprintf("Showing %d of %d · %s",
		len(m.snap.Visible), m.snap.Total, m.snap.Status)))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderRow(i int) string {
	r := m.snap.Visible[i]
	heart := " "
	if r.IsFavorite {
		heart = m.styles.Favorite.Render("♥")
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top,
		heart, " ",
		lipgloss.NewStyle().Width(24).Render(r.Name),
		lipgloss.NewStyle().Width(14).Render(r.Category),
		lipgloss.NewStyle().Width(14).Align(lipgloss.Right).Render(m.prices.Format(r.Price)),
		"  ",
		m.styles.Stars.Render(catalog.Stars(r.Rating)),
	)
	if i == m.cursor {
		return m.styles.Selected.Render(line)
	}
	return m.styles.Row.Render(line)
}
