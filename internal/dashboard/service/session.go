// Package service implements the dashboard view-state engine: filter state
// mutation, option loading, data-refresh orchestration, and CSV export.
//
// A Session owns FilterState and the viewport window for one mounted
// dashboard view. All mutation goes through named operations; every filter
// mutation triggers an asynchronous refresh against the aggregation boundary
// with last-request-wins semantics.
package service

import (
	"context"
	"sync"
	"time"

	"noladash/internal/dashboard/domain"
	"noladash/internal/dashboard/viewport"
	perr "noladash/internal/platform/errors"
	"noladash/internal/platform/logger"
)

// Phase is the data panel's async state machine: idle -> loading -> {idle, error}.
// Error is terminal for the panel; the next filter mutation re-enters loading.
type Phase int

// Session phases
const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseError
)

// Snapshot is the read-only view handed to renderers. Rows are shared by
// reference and must not be mutated by consumers.
type Snapshot struct {
	Filters domain.FilterState
	Options domain.OptionLists
	Rows    []domain.ResultRow
	Window  viewport.Window
	Phase   Phase
	Err     error
}

// VisibleRows returns the window-sliced rows for rendering
func (s Snapshot) VisibleRows() []domain.ResultRow {
	if len(s.Rows) == 0 {
		return nil
	}
	start, end := s.Window.Visible(len(s.Rows))
	return s.Rows[start : end+1]
}

// Session is the dashboard view-state engine for one mounted view
type Session struct {
	mu       sync.Mutex
	boundary domain.BoundaryPort
	log      *logger.Logger
	onChange func(Snapshot)

	filters      domain.FilterState
	options      domain.OptionLists
	optionsReady bool
	optionsBusy  bool

	rows   []domain.ResultRow
	window viewport.Window
	phase  Phase
	err    error

	gen    uint64 // latest issued fetch; stale completions are discarded
	cancel context.CancelFunc
}

// Option configures a Session
type Option func(*Session)

// WithOnChange registers a callback invoked after every state transition.
// The callback runs outside the session lock and may call Snapshot.
func WithOnChange(fn func(Snapshot)) Option {
	return func(s *Session) { s.onChange = fn }
}

// NewSession constructs a session with default filters and zoom engaged
func NewSession(boundary domain.BoundaryPort, opts ...Option) *Session {
	s := &Session{
		boundary: boundary,
		log:      logger.Named("dashboard"),
		filters:  domain.DefaultFilters(),
		window:   viewport.New(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Snapshot returns the current view state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Filters: s.filters,
		Options: s.options,
		Rows:    s.rows,
		Window:  s.window,
		Phase:   s.phase,
		Err:     s.err,
	}
}

// Filters returns the current selection
func (s *Session) Filters() domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *Session) notify() {
	if s.onChange == nil {
		return
	}
	s.onChange(s.Snapshot())
}

// SetMetric selects the charted metric and refreshes
func (s *Session) SetMetric(ctx context.Context, m domain.Metric) error {
	if !m.Valid() {
		return perr.InvalidArgf("métrica desconhecida: %q", m)
	}
	s.mu.Lock()
	s.filters.Metric = m
	s.mu.Unlock()
	s.refresh(ctx)
	return nil
}

// SetDimension selects the grouping dimension and refreshes.
// Switching to weekday grouping keeps a stale weekday selection around;
// the query builder ignores it while the grouping applies.
func (s *Session) SetDimension(ctx context.Context, d domain.Dimension) error {
	if !d.Valid() {
		return perr.InvalidArgf("dimensão desconhecida: %q", d)
	}
	s.mu.Lock()
	s.filters.Dimension = d
	s.mu.Unlock()
	s.refresh(ctx)
	return nil
}

// SetStore sets or clears ("" = all stores) the store filter and refreshes
func (s *Session) SetStore(ctx context.Context, id string) {
	s.mu.Lock()
	s.filters.StoreID = id
	s.mu.Unlock()
	s.refresh(ctx)
}

// SetChannel sets or clears the channel filter and refreshes
func (s *Session) SetChannel(ctx context.Context, id string) {
	s.mu.Lock()
	s.filters.ChannelID = id
	s.mu.Unlock()
	s.refresh(ctx)
}

// SetWeekday sets or clears the weekday filter and refreshes
func (s *Session) SetWeekday(ctx context.Context, id string) {
	s.mu.Lock()
	s.filters.Weekday = id
	s.mu.Unlock()
	s.refresh(ctx)
}

// SetDateRange sets or clears the date bounds and refreshes.
// The date widget guarantees from <= to; not re-validated here.
func (s *Session) SetDateRange(ctx context.Context, from, to *time.Time) {
	s.mu.Lock()
	s.filters.DateFrom = from
	s.filters.DateTo = to
	s.mu.Unlock()
	s.refresh(ctx)
}

// ClearFilters drops every optional filter in one mutation (single refresh).
// Metric and dimension keep their current selection.
func (s *Session) ClearFilters(ctx context.Context) {
	s.mu.Lock()
	s.filters.StoreID = ""
	s.filters.ChannelID = ""
	s.filters.Weekday = ""
	s.filters.DateFrom = nil
	s.filters.DateTo = nil
	s.mu.Unlock()
	s.refresh(ctx)
}

// ToggleZoom flips the viewport zoom; view state only, no refetch
func (s *Session) ToggleZoom() {
	s.mu.Lock()
	s.window.Toggle(len(s.rows))
	s.mu.Unlock()
	s.notify()
}

// SetWindow drags the viewport window; view state only, no refetch
func (s *Session) SetWindow(start, end int) {
	s.mu.Lock()
	s.window.SetRange(start, end, len(s.rows))
	s.mu.Unlock()
	s.notify()
}
