package service

import (
	"context"

	"noladash/internal/dashboard/domain"
	perr "noladash/internal/platform/errors"

	"golang.org/x/sync/errgroup"
)

// LoadOptions fetches the three filter vocabularies concurrently, once per
// session. Any single failure surfaces one options-load error and suppresses
// data fetching entirely: the dashboard cannot build a valid query UI without
// its filter vocabulary. Success triggers the first data fetch.
func (s *Session) LoadOptions(ctx context.Context) error {
	s.mu.Lock()
	if s.optionsReady || s.optionsBusy {
		s.mu.Unlock()
		return nil
	}
	s.optionsBusy = true
	s.phase = PhaseLoading
	s.err = nil
	s.mu.Unlock()
	s.notify()

	var channels, stores, weekdays []domain.Option
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		channels, err = s.boundary.Channels(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stores, err = s.boundary.Stores(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		weekdays, err = s.boundary.Weekdays(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.mu.Lock()
		s.optionsBusy = false
		s.phase = PhaseError
		s.err = perr.Wrap(err, perr.ErrorCodeOptionsLoad, "falha ao buscar a lista de filtros")
		loadErr := s.err
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("options load failed")
		s.notify()
		return loadErr
	}

	s.mu.Lock()
	s.options = domain.OptionLists{Channels: channels, Stores: stores, Weekdays: weekdays}
	s.optionsReady = true
	s.optionsBusy = false
	s.mu.Unlock()
	s.log.Debug().
		Int("channels", len(channels)).
		Int("stores", len(stores)).
		Int("weekdays", len(weekdays)).
		Msg("options loaded")

	s.refresh(ctx)
	return nil
}

// OptionsReady reports whether the filter vocabularies are loaded
func (s *Session) OptionsReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.optionsReady
}
