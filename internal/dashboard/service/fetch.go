package service

import (
	"context"

	"noladash/internal/dashboard/domain"
	perr "noladash/internal/platform/errors"
)

// refresh issues an asynchronous fetch for the current FilterState.
//
// Overlapping fetches happen whenever filters change faster than round-trip
// latency. Each fetch carries a generation number taken under the lock; the
// superseded in-flight request is cancelled, and only the completion matching
// the latest generation may touch the result set and viewport. Everything
// else is discarded on arrival, never applied out of order.
func (s *Session) refresh(ctx context.Context) {
	s.mu.Lock()
	if !s.optionsReady {
		// the dimension-filter UI depends on the weekday list; skip until loaded
		s.mu.Unlock()
		return
	}
	s.gen++
	gen := s.gen
	if s.cancel != nil {
		s.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.phase = PhaseLoading
	s.err = nil
	params := domain.BuildQuery(s.filters)
	s.mu.Unlock()
	s.notify()

	s.log.Debug().Uint64("gen", gen).Str("query", params.Encode()).Msg("fetch issued")

	go func() {
		rows, err := s.boundary.Analytics(fctx, params)
		s.apply(gen, rows, err)
	}()
}

// apply installs a fetch completion if it is still the latest one
func (s *Session) apply(gen uint64, rows []domain.ResultRow, err error) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.log.Debug().Uint64("gen", gen).Msg("stale fetch discarded")
		return
	}
	if err != nil {
		s.phase = PhaseError
		s.err = perr.Wrap(err, perr.ErrorCodeDataFetch, "falha ao buscar dados da API")
		s.mu.Unlock()
		s.log.Error().Uint64("gen", gen).Err(err).Msg("fetch failed")
		s.notify()
		return
	}
	s.rows = rows
	s.window.Reset(len(rows))
	s.phase = PhaseIdle
	s.mu.Unlock()
	s.log.Debug().Uint64("gen", gen).Int("rows", len(rows)).Msg("fetch applied")
	s.notify()
}
