// Package risk implements the at-risk customers panel: a read-only view over
// a fixed report with no filter state. It shares the dashboard's async
// fetch/loading/error pattern but is fully independent of it; a failure here
// never disturbs the main dashboard and vice versa.
package risk

import (
	"context"
	"sync"

	"noladash/internal/dashboard/domain"
	perr "noladash/internal/platform/errors"
	"noladash/internal/platform/logger"
)

// Customer is one row of the at-risk report (3+ purchases, 30+ days quiet)
type Customer struct {
	CustomerName          string             `json:"customer_name"`
	Email                 string             `json:"email"`
	PhoneNumber           string             `json:"phone_number"`
	TotalPurchases        int                `json:"total_compras"`
	DaysSinceLastPurchase int                `json:"dias_desde_ultima_compra"`
	LifetimeValue         domain.MetricValue `json:"ltv_total"`
}

// ReportPort fetches the fixed at-risk customers report
type ReportPort interface {
	RiskCustomers(ctx context.Context) ([]Customer, error)
}

// Phase is the panel's async state
type Phase int

// Panel phases; Error is terminal until Load is triggered again
const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

// Panel holds the report rows and the loading/error state
type Panel struct {
	mu        sync.Mutex
	port      ReportPort
	log       *logger.Logger
	customers []Customer
	phase     Phase
	err       error
}

// NewPanel constructs a panel over the given report port
func NewPanel(port ReportPort) *Panel {
	return &Panel{port: port, log: logger.Named("risk")}
}

// Load fetches the report. Duplicate triggers while a load is in flight are
// ignored; a finished load (ready or error) can be triggered again.
func (p *Panel) Load(ctx context.Context) error {
	p.mu.Lock()
	if p.phase == PhaseLoading {
		p.mu.Unlock()
		return nil
	}
	p.phase = PhaseLoading
	p.err = nil
	p.mu.Unlock()

	rows, err := p.port.RiskCustomers(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.phase = PhaseError
		p.err = perr.Wrap(err, perr.ErrorCodeRiskList, "falha ao buscar clientes em risco")
		p.log.Error().Err(err).Msg("risk customers load failed")
		return p.err
	}
	p.customers = rows
	p.phase = PhaseReady
	p.log.Debug().Int("rows", len(rows)).Msg("risk customers loaded")
	return nil
}

// Snapshot returns the current rows, phase, and error
func (p *Panel) Snapshot() ([]Customer, Phase, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.customers, p.phase, p.err
}
