package service

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"noladash/internal/dashboard/domain"
)

// fakeBoundary implements domain.BoundaryPort with swappable behavior
type fakeBoundary struct {
	channels  func(ctx context.Context) ([]domain.Option, error)
	stores    func(ctx context.Context) ([]domain.Option, error)
	weekdays  func(ctx context.Context) ([]domain.Option, error)
	analytics func(ctx context.Context, params url.Values) ([]domain.ResultRow, error)
	export    func(ctx context.Context, params url.Values) ([]byte, error)
}

func (f *fakeBoundary) Channels(ctx context.Context) ([]domain.Option, error) {
	if f.channels == nil {
		return []domain.Option{{ID: 1, Name: "iFood"}}, nil
	}
	return f.channels(ctx)
}

func (f *fakeBoundary) Stores(ctx context.Context) ([]domain.Option, error) {
	if f.stores == nil {
		return []domain.Option{{ID: 1, Name: "Nola Centro"}}, nil
	}
	return f.stores(ctx)
}

func (f *fakeBoundary) Weekdays(ctx context.Context) ([]domain.Option, error) {
	if f.weekdays == nil {
		return []domain.Option{{ID: 0, Name: "Domingo"}}, nil
	}
	return f.weekdays(ctx)
}

func (f *fakeBoundary) Analytics(ctx context.Context, params url.Values) ([]domain.ResultRow, error) {
	if f.analytics == nil {
		return nil, nil
	}
	return f.analytics(ctx, params)
}

func (f *fakeBoundary) ExportCSV(ctx context.Context, params url.Values) ([]byte, error) {
	if f.export == nil {
		return []byte("csv"), nil
	}
	return f.export(ctx, params)
}

// nRows builds a result set of n rows tagged with a label prefix
func nRows(prefix string, n int) []domain.ResultRow {
	rows := make([]domain.ResultRow, n)
	for i := range rows {
		rows[i] = domain.ResultRow{
			EntityLabel: fmt.Sprintf("%s-%d", prefix, i),
			MetricValue: domain.MetricValue(float64(n - i)),
		}
	}
	return rows
}

// waitPhase polls until the session reaches the wanted phase
func waitPhase(t *testing.T, s *Session, want Phase) Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := s.Snapshot()
		if snap.Phase == want {
			return snap
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("session never reached phase %d (now %d)", want, s.Snapshot().Phase)
	return Snapshot{}
}

// waitRows polls until the result set has rows with the given first label
func waitRows(t *testing.T, s *Session, firstLabel string) Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := s.Snapshot()
		if snap.Phase == PhaseIdle && len(snap.Rows) > 0 && snap.Rows[0].EntityLabel == firstLabel {
			return snap
		}
		time.Sleep(time.Millisecond)
	}
	snap := s.Snapshot()
	t.Fatalf("session never showed rows %q (have %d rows, phase %d)", firstLabel, len(snap.Rows), snap.Phase)
	return Snapshot{}
}

// readySession loads options and waits out the initial fetch
func readySession(t *testing.T, fb *fakeBoundary) *Session {
	t.Helper()
	s := NewSession(fb)
	if err := s.LoadOptions(context.Background()); err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	waitPhase(t, s, PhaseIdle)
	return s
}

func TestMutators_RejectUnknownEnums(t *testing.T) {
	s := NewSession(&fakeBoundary{})
	ctx := context.Background()
	if err := s.SetMetric(ctx, "faturamento"); err == nil {
		t.Fatalf("unknown metric accepted")
	}
	if err := s.SetDimension(ctx, "hora"); err == nil {
		t.Fatalf("unknown dimension accepted")
	}
	if got := s.Filters(); got != domain.DefaultFilters() {
		t.Fatalf("rejected mutation changed filters: %+v", got)
	}
}

func TestClearFilters_DropsOptionalOnly(t *testing.T) {
	var queries []string
	var mu sync.Mutex
	fb := &fakeBoundary{analytics: func(_ context.Context, p url.Values) ([]domain.ResultRow, error) {
		mu.Lock()
		queries = append(queries, p.Encode())
		mu.Unlock()
		return nRows("r", 3), nil
	}}
	s := readySession(t, fb)
	ctx := context.Background()

	if err := s.SetMetric(ctx, domain.MetricAvgTicket); err != nil {
		t.Fatalf("SetMetric: %v", err)
	}
	s.SetStore(ctx, "3")
	s.SetWeekday(ctx, "5")
	waitPhase(t, s, PhaseIdle)

	s.ClearFilters(ctx)
	waitPhase(t, s, PhaseIdle)

	f := s.Filters()
	if f.StoreID != "" || f.ChannelID != "" || f.Weekday != "" || f.DateFrom != nil || f.DateTo != nil {
		t.Fatalf("optional filters survived clear: %+v", f)
	}
	if f.Metric != domain.MetricAvgTicket {
		t.Fatalf("clear reset the metric to %s", f.Metric)
	}

	mu.Lock()
	defer mu.Unlock()
	found := false
	for _, q := range queries {
		if q == "dimension=loja&metric=ticket_medio" {
			found = true
		}
	}
	if !found {
		t.Fatalf("no fetch carried the cleared filters, saw %v", queries)
	}
}

func TestSnapshot_VisibleRows(t *testing.T) {
	fb := &fakeBoundary{analytics: func(context.Context, url.Values) ([]domain.ResultRow, error) {
		return nRows("r", 25), nil
	}}
	s := readySession(t, fb)

	vis := s.Snapshot().VisibleRows()
	if len(vis) != 10 || vis[0].EntityLabel != "r-0" || vis[9].EntityLabel != "r-9" {
		t.Fatalf("visible rows = %d (%v..%v), want top 10", len(vis), vis[0].EntityLabel, vis[len(vis)-1].EntityLabel)
	}
}

func TestViewportLifecycle_ZoomToggleDiscardsDrag(t *testing.T) {
	fb := &fakeBoundary{analytics: func(context.Context, url.Values) ([]domain.ResultRow, error) {
		return nRows("r", 25), nil
	}}
	s := readySession(t, fb)

	// default window: rows 0-9
	snap := s.Snapshot()
	if start, end := snap.Window.Visible(len(snap.Rows)); start != 0 || end != 9 {
		t.Fatalf("default window = (%d, %d), want (0, 9)", start, end)
	}

	s.SetWindow(5, 14)
	s.ToggleZoom() // off: all 25 rows
	snap = s.Snapshot()
	if got := len(snap.VisibleRows()); got != 25 {
		t.Fatalf("zoom off shows %d rows, want 25", got)
	}

	s.ToggleZoom() // back on: default window, not the drag position
	snap = s.Snapshot()
	if start, end := snap.Window.Visible(len(snap.Rows)); start != 0 || end != 9 {
		t.Fatalf("window after re-zoom = (%d, %d), want (0, 9)", start, end)
	}
}

func TestNewResultSet_ResetsWindow(t *testing.T) {
	fb := &fakeBoundary{analytics: func(_ context.Context, p url.Values) ([]domain.ResultRow, error) {
		if p.Get("dimension") == string(domain.DimensionHour) {
			return nRows("hour", 4), nil
		}
		return nRows("store", 25), nil
	}}
	s := readySession(t, fb)
	s.SetWindow(10, 19)

	if err := s.SetDimension(context.Background(), domain.DimensionHour); err != nil {
		t.Fatalf("SetDimension: %v", err)
	}
	snap := waitRows(t, s, "hour-0")
	if start, end := snap.Window.Visible(len(snap.Rows)); start != 0 || end != 3 {
		t.Fatalf("window after replacement = (%d, %d), want (0, 3)", start, end)
	}
}

func TestOnChange_NotifiedOutsideLock(t *testing.T) {
	fb := &fakeBoundary{analytics: func(context.Context, url.Values) ([]domain.ResultRow, error) {
		return nRows("r", 3), nil
	}}
	seen := make(chan Snapshot, 16)
	var s *Session
	s = NewSession(fb, WithOnChange(func(snap Snapshot) {
		// calling back into the session must not deadlock
		_ = s.Filters()
		seen <- snap
	}))
	if err := s.LoadOptions(context.Background()); err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	waitPhase(t, s, PhaseIdle)

	select {
	case <-seen:
	case <-time.After(time.Second):
		t.Fatalf("onChange never fired")
	}
}
