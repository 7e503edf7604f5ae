package service

import (
	"context"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"noladash/internal/dashboard/domain"
	perr "noladash/internal/platform/errors"
)

func TestRefresh_SkippedUntilOptionsLoaded(t *testing.T) {
	var calls atomic.Int32
	fb := &fakeBoundary{analytics: func(context.Context, url.Values) ([]domain.ResultRow, error) {
		calls.Add(1)
		return nil, nil
	}}
	s := NewSession(fb)

	s.SetStore(context.Background(), "3")
	if err := s.SetMetric(context.Background(), domain.MetricAvgTicket); err != nil {
		t.Fatalf("SetMetric: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Fatalf("%d fetches issued before options loaded", n)
	}
}

func TestLoadOptions_SuccessTriggersFirstFetch(t *testing.T) {
	var gotParams atomic.Value
	fb := &fakeBoundary{analytics: func(_ context.Context, p url.Values) ([]domain.ResultRow, error) {
		gotParams.Store(p.Encode())
		return nRows("r", 5), nil
	}}
	s := readySession(t, fb)

	if got := gotParams.Load(); got != "dimension=loja&metric=faturamento_total" {
		t.Fatalf("first fetch params = %v", got)
	}
	snap := s.Snapshot()
	if !s.OptionsReady() || !snap.Options.Complete() {
		t.Fatalf("options not marked ready after successful load")
	}
	if len(snap.Rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(snap.Rows))
	}
}

func TestLoadOptions_SingleFailureSurfacesOneError(t *testing.T) {
	var fetches atomic.Int32
	fb := &fakeBoundary{
		stores: func(context.Context) ([]domain.Option, error) {
			return nil, perr.Unavailablef("connection refused")
		},
		analytics: func(context.Context, url.Values) ([]domain.ResultRow, error) {
			fetches.Add(1)
			return nil, nil
		},
	}
	s := NewSession(fb)

	err := s.LoadOptions(context.Background())
	if err == nil {
		t.Fatalf("LoadOptions succeeded with a failing vocabulary fetch")
	}
	if perr.CodeOf(err) != perr.ErrorCodeOptionsLoad {
		t.Fatalf("error code = %v, want options-load", perr.CodeOf(err))
	}

	snap := s.Snapshot()
	if snap.Phase != PhaseError || snap.Err == nil {
		t.Fatalf("phase = %d, err = %v; want error phase", snap.Phase, snap.Err)
	}

	// filter mutation with no vocabulary must still not fetch
	s.SetStore(context.Background(), "2")
	time.Sleep(20 * time.Millisecond)
	if n := fetches.Load(); n != 0 {
		t.Fatalf("%d data fetches issued despite options failure", n)
	}
}

func TestRefresh_LastRequestWins(t *testing.T) {
	release1 := make(chan struct{})
	release2 := make(chan struct{})
	fb := &fakeBoundary{analytics: func(_ context.Context, p url.Values) ([]domain.ResultRow, error) {
		switch domain.Metric(p.Get("metric")) {
		case domain.MetricRevenueTotal:
			<-release1
			return nRows("first", 3), nil
		case domain.MetricAvgTicket:
			<-release2
			return nRows("second", 3), nil
		}
		return nil, nil
	}}

	s := NewSession(fb)
	if err := s.LoadOptions(context.Background()); err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	// first fetch (default metric) is in flight, blocked on release1
	if err := s.SetMetric(context.Background(), domain.MetricAvgTicket); err != nil {
		t.Fatalf("SetMetric: %v", err)
	}

	close(release2)
	waitRows(t, s, "second-0")

	// the superseded response lands afterwards and must be discarded
	close(release1)
	time.Sleep(50 * time.Millisecond)
	snap := s.Snapshot()
	if snap.Rows[0].EntityLabel != "second-0" {
		t.Fatalf("stale response overwrote current rows: %q", snap.Rows[0].EntityLabel)
	}
	if snap.Phase != PhaseIdle {
		t.Fatalf("phase = %d after stale discard, want idle", snap.Phase)
	}
}

func TestRefresh_SupersededRequestCancelled(t *testing.T) {
	cancelled := make(chan struct{})
	fb := &fakeBoundary{analytics: func(ctx context.Context, p url.Values) ([]domain.ResultRow, error) {
		if p.Get("store_id") == "" {
			<-ctx.Done()
			close(cancelled)
			return nil, ctx.Err()
		}
		return nRows("r", 2), nil
	}}

	s := NewSession(fb)
	if err := s.LoadOptions(context.Background()); err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	s.SetStore(context.Background(), "4")

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatalf("superseded request never cancelled")
	}
	waitRows(t, s, "r-0")
}

func TestRefresh_ErrorThenRecovery(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	fb := &fakeBoundary{analytics: func(context.Context, url.Values) ([]domain.ResultRow, error) {
		if fail.Load() {
			return nil, perr.Unavailablef("boom")
		}
		return nRows("ok", 2), nil
	}}

	s := NewSession(fb)
	if err := s.LoadOptions(context.Background()); err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	snap := waitPhase(t, s, PhaseError)
	if perr.CodeOf(snap.Err) != perr.ErrorCodeDataFetch {
		t.Fatalf("error code = %v, want data-fetch", perr.CodeOf(snap.Err))
	}

	fail.Store(false)
	s.SetChannel(context.Background(), "1")
	snap = waitRows(t, s, "ok-0")
	if snap.Err != nil {
		t.Fatalf("error not cleared on recovery: %v", snap.Err)
	}
}
