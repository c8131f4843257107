package session

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/PraveshMalvi/buyora/internal/catalog"
	"github.com/PraveshMalvi/buyora/internal/favorites"
	"github.com/PraveshMalvi/buyora/internal/reveal"
	"github.com/PraveshMalvi/buyora/internal/schedule"
)

var validate = validator.New()

// minRatingRule is the validator tag for SetMinRating.
var minRatingRule = "gte=" + strconv.Itoa(catalog.MinRatingFloor) +
	",lte=" + strconv.Itoa(catalog.MinRatingCeiling)

// Session is the single owner of one user's browsing state.
type Session struct {
	id      string
	catalog *catalog.Catalog
	store   favorites.Store
	logger  *slog.Logger

	favorites *favorites.Set
	filter    catalog.Filter
	reveal    *reveal.Controller

	categories  []string
	scrollToTop func()
}

type config struct {
	logger      *slog.Logger
	ids         IDGenerator
	scrollToTop func()
	filter      catalog.Filter
	revealOpts  []reveal.Option
}

// Option configures a Session.
type Option func(*config)

// WithLogger sets the logger. Session log lines carry a "session" attribute.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithIDGenerator sets the session id source. Defaults to UUIDv7Generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(c *config) {
		if ids != nil {
			c.ids = ids
		}
	}
}

// WithScrollToTop registers the hook fired after every filter change.
func WithScrollToTop(fn func()) Option {
	return func(c *config) {
		c.scrollToTop = fn
	}
}

// WithPageSize sets the reveal page size.
func WithPageSize(n int) Option {
	return func(c *config) {
		c.revealOpts = append(c.revealOpts, reveal.WithPageSize(n))
	}
}

// WithLoadDelay sets the delay before a requested page appears.
func WithLoadDelay(d time.Duration) Option {
	return func(c *config) {
		c.revealOpts = append(c.revealOpts, reveal.WithLoadDelay(d))
	}
}

// WithFilter sets the starting filter instead of catalog.DefaultFilter.
// The filter is not validated; use the commands to change it afterwards.
func WithFilter(f catalog.Filter) Option {
	return func(c *config) {
		c.filter = f
	}
}

// New starts a session over cat. Favorites are loaded from store once;
// a nil store keeps favorites in memory. Reveal timers are scheduled on
// sched, which must deliver callbacks on the goroutine driving the session.
func New(ctx context.Context, cat *catalog.Catalog, store favorites.Store, sched schedule.Scheduler, opts ...Option) *Session {
	cfg := config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		ids:    UUIDv7Generator{},
		filter: catalog.DefaultFilter(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if store == nil {
		store = favorites.NewAdapter(favorites.NewMemoryKV(), favorites.WithLogger(cfg.logger))
	}

	id := cfg.ids.Generate()
	logger := cfg.logger.With("session", id)

	s := &Session{
		id:          id,
		catalog:     cat,
		store:       store,
		logger:      logger,
		favorites:   loadFavorites(ctx, store),
		filter:      cfg.filter,
		reveal:      reveal.New(sched, append([]reveal.Option{reveal.WithLogger(logger)}, cfg.revealOpts...)...),
		categories:  cat.Categories(),
		scrollToTop: cfg.scrollToTop,
	}
	s.reveal.Reset(len(s.derive()))

	logger.Info("session started",
		"products", cat.Len(),
		"favorites", s.favorites.Len(),
		"page_size", s.reveal.PageSize(),
	)
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// SetCategory restricts the view to category c. catalog.AllCategories
// removes the restriction.
func (s *Session) SetCategory(c string) {
	next := s.filter
	next.Category = norm.NFC.String(c)
	s.apply("set_category", next)
}

// SetMinRating sets the minimum rating. Values outside [0, 5] are rejected
// with an INVALID_FILTER_VALUE CommandError and the filter is unchanged.
func (s *Session) SetMinRating(r int) error {
	if err := validate.Var(r, minRatingRule); err != nil {
		s.logger.Debug("command rejected", "command", "set_min_rating", "value", r)
		return &CommandError{
			Code:    ErrCodeInvalidFilterValue,
			Message: "minimum rating must be between 0 and 5",
			Field:   "min_rating",
			Value:   strconv.Itoa(r),
		}
	}
	next := s.filter
	next.MinRating = r
	s.apply("set_min_rating", next)
	return nil
}

// SetSortAscending sets the price sort direction.
func (s *Session) SetSortAscending(asc bool) {
	next := s.filter
	next.SortAscending = asc
	s.apply("set_sort", next)
}

// ToggleFavoritesOnly flips whether only favorites are shown.
func (s *Session) ToggleFavoritesOnly() {
	next := s.filter
	next.FavoritesOnly = !next.FavoritesOnly
	s.apply("toggle_favorites_only", next)
}

// ToggleFavorite adds id to the favorites if absent and removes it if
// present, then persists the set. It returns whether id is now a favorite.
//
// Any id is accepted; use Product to check membership in the catalog.
// Toggling is not a filter change, so the revealed window is kept.
func (s *Session) ToggleFavorite(ctx context.Context, id int64) bool {
	added := s.favorites.Toggle(id)
	s.store.Save(ctx, s.favorites)

	if s.filter.FavoritesOnly {
		s.reveal.SetTotal(len(s.derive()))
	}
	s.logger.Debug("favorite toggled", "id", id, "favorite", added, "count", s.favorites.Len())
	return added
}

// LoadMore is the "more content should load" signal. It returns true if a
// reveal was scheduled.
func (s *Session) LoadMore() bool {
	return s.reveal.LoadMore()
}

// SetSentinelVisible reports whether the end of the visible list is on
// screen. Becoming visible counts as a load signal, and a completed reveal
// keeps loading while it stays visible.
func (s *Session) SetSentinelVisible(visible bool) bool {
	return s.reveal.SetSentinelVisible(visible)
}

// Product looks up a catalog product by id.
func (s *Session) Product(id int64) (catalog.Product, error) {
	p, ok := s.catalog.Lookup(id)
	if !ok {
		return catalog.Product{}, &CommandError{
			Code:    ErrCodeUnknownProduct,
			Message: "no product with this id",
			Field:   "id",
			Value:   strconv.FormatInt(id, 10),
		}
	}
	return p, nil
}

// Filter returns the current filter.
func (s *Session) Filter() catalog.Filter {
	return s.filter
}

// Favorites returns a copy of the favorite set.
func (s *Session) Favorites() *favorites.Set {
	return s.favorites.Clone()
}

// Categories returns the catalog's distinct categories in first-seen order.
func (s *Session) Categories() []string {
	return append([]string(nil), s.categories...)
}

// apply installs next as the filter. Only an actual change resets
// pagination and scrolls to the top.
func (s *Session) apply(command string, next catalog.Filter) {
	if next == s.filter {
		s.logger.Debug("filter unchanged", "command", command)
		return
	}
	s.filter = next
	s.reveal.Reset(len(s.derive()))
	if s.scrollToTop != nil {
		s.scrollToTop()
	}

	s.logger.Debug("filter changed",
		"command", command,
		"category", next.Category,
		"min_rating", next.MinRating,
		"ascending", next.SortAscending,
		"favorites_only", next.FavoritesOnly,
		"total", s.reveal.Total(),
	)
}

func (s *Session) derive() []catalog.Record {
	return s.catalog.Derive(s.favorites, s.filter)
}

func loadFavorites(ctx context.Context, store favorites.Store) *favorites.Set {
	if set := store.Load(ctx); set != nil {
		return set
	}
	return favorites.NewSet()
}
