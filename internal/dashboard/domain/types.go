// Package domain defines the types and interfaces for the dashboard view-state engine
package domain

import "time"

// Metric identifies the numeric quantity being aggregated and charted
type Metric string

// Metric identifiers accepted by the aggregation service
const (
	MetricRevenueTotal Metric = "faturamento_total"
	MetricSalesCount   Metric = "total_de_vendas"
	MetricAvgTicket    Metric = "ticket_medio"
	MetricAvgDelivery  Metric = "tempo_entrega_min"
)

// Metrics returns the fixed metric set in display order
func Metrics() []Metric {
	return []Metric{MetricRevenueTotal, MetricSalesCount, MetricAvgTicket, MetricAvgDelivery}
}

// Valid reports whether m is a known metric
func (m Metric) Valid() bool {
	switch m {
	case MetricRevenueTotal, MetricSalesCount, MetricAvgTicket, MetricAvgDelivery:
		return true
	}
	return false
}

// Label returns the user-facing metric label
func (m Metric) Label() string {
	switch m {
	case MetricRevenueTotal:
		return "Faturamento Total (R$)"
	case MetricSalesCount:
		return "Total de Vendas"
	case MetricAvgTicket:
		return "Ticket Médio (R$)"
	case MetricAvgDelivery:
		return "Tempo Médio de Entrega (min)"
	}
	return string(m)
}

// Dimension identifies the grouping key applied to aggregated rows
type Dimension string

// Dimension identifiers accepted by the aggregation service
const (
	DimensionStore   Dimension = "loja"
	DimensionChannel Dimension = "canal"
	DimensionProduct Dimension = "produto"
	DimensionWeekday Dimension = "dia_da_semana"
	DimensionHour    Dimension = "hora_do_dia"
)

// Dimensions returns the fixed dimension set in display order
func Dimensions() []Dimension {
	return []Dimension{DimensionStore, DimensionChannel, DimensionProduct, DimensionWeekday, DimensionHour}
}

// Valid reports whether d is a known dimension
func (d Dimension) Valid() bool {
	switch d {
	case DimensionStore, DimensionChannel, DimensionProduct, DimensionWeekday, DimensionHour:
		return true
	}
	return false
}

// Label returns the user-facing dimension label
func (d Dimension) Label() string {
	switch d {
	case DimensionStore:
		return "Por Loja"
	case DimensionChannel:
		return "Por Canal"
	case DimensionProduct:
		return "Por Produto"
	case DimensionWeekday:
		return "Por Dia da Semana"
	case DimensionHour:
		return "Por Hora do Dia"
	}
	return string(d)
}

// FilterState is the single source of truth for what to query.
// Empty string ids and nil dates mean "no filter".
type FilterState struct {
	Metric    Metric
	Dimension Dimension
	StoreID   string
	ChannelID string
	Weekday   string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// DefaultFilters returns the initial selection (revenue by store, no filters)
func DefaultFilters() FilterState {
	return FilterState{
		Metric:    MetricRevenueTotal,
		Dimension: DimensionStore,
	}
}

// WeekdayFilterVisible reports whether the weekday filter applies to the
// current selection. Grouping by weekday and filtering by weekday are
// mutually exclusive; a stale weekday selection is kept but ignored.
func (f FilterState) WeekdayFilterVisible() bool {
	return f.Dimension != DimensionWeekday
}

// Option is one entry of a filter option list
type Option struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// OptionLists holds the three bounded filter vocabularies, fetched once per session
type OptionLists struct {
	Channels []Option
	Stores   []Option
	Weekdays []Option
}

// Complete reports whether every list arrived non-empty
func (o OptionLists) Complete() bool {
	return len(o.Channels) > 0 && len(o.Stores) > 0 && len(o.Weekdays) > 0
}
