package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"noladash/internal/dashboard/domain"
	perr "noladash/internal/platform/errors"
	"noladash/internal/platform/logger"
)

// exportNow is a seam for deterministic filenames in tests
var exportNow = time.Now

// Sink delivers an export payload as a named file download
type Sink interface {
	Save(name string, data []byte) error
}

// DirSink saves downloads into a local directory
type DirSink struct {
	Dir string
}

// Save writes the payload, creating the directory if needed
func (d DirSink) Save(name string, data []byte) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.Dir, name), data, 0o644)
}

// Exporter requests the CSV representation of the live view's query and
// delivers it through a sink. Failures are transient: they never disturb the
// dashboard's result set or viewport.
type Exporter struct {
	busy     atomic.Bool
	boundary domain.ExportPort
	sink     Sink
	log      *logger.Logger
}

// NewExporter constructs an exporter over the given boundary and sink
func NewExporter(boundary domain.ExportPort, sink Sink) *Exporter {
	return &Exporter{boundary: boundary, sink: sink, log: logger.Named("export")}
}

// Busy reports whether an export is in flight, so the triggering control can
// disable itself
func (e *Exporter) Busy() bool { return e.busy.Load() }

// Export builds the same query parameters as the live view, requests the CSV
// payload, and saves it named with the current date. A second trigger while
// one is in flight is rejected.
func (e *Exporter) Export(ctx context.Context, f domain.FilterState) (string, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return "", perr.Exportf("exportação já em andamento")
	}
	defer e.busy.Store(false)

	payload, err := e.boundary.ExportCSV(ctx, domain.BuildQuery(f))
	if err != nil {
		e.log.Error().Err(err).Msg("export request failed")
		return "", perr.Wrap(err, perr.ErrorCodeExport, "falha ao exportar CSV")
	}

	name := fmt.Sprintf("relatorio_nola_%s.csv", exportNow().Format(domain.DateLayout))
	if err := e.sink.Save(name, payload); err != nil {
		e.log.Error().Err(err).Str("file", name).Msg("export save failed")
		return "", perr.Wrap(err, perr.ErrorCodeExport, "falha ao salvar o CSV")
	}
	e.log.Info().Str("file", name).Int("bytes", len(payload)).Msg("export saved")
	return name, nil
}
