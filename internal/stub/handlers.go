package stub

import (
	stdhttp "net/http"

	"noladash/internal/dashboard/domain"
	perr "noladash/internal/platform/errors"
	phttp "noladash/internal/platform/net/http"
	"noladash/internal/platform/net/http/bind"
)

// the real service caps the dashboard path; the export path is uncapped
const dashboardLimit = 50

// analyticsQuery is the validated query surface of the aggregation endpoints
type analyticsQuery struct {
	Metric    string `form:"metric" validate:"required,oneof=faturamento_total total_de_vendas ticket_medio tempo_entrega_min"`
	Dimension string `form:"dimension" validate:"required,oneof=loja canal produto dia_da_semana hora_do_dia"`
	ChannelID string `form:"channel_id" validate:"omitempty,number"`
	StoreID   string `form:"store_id" validate:"omitempty,number"`
	Weekday   string `form:"dia_semana" validate:"omitempty,oneof=0 1 2 3 4 5 6"`
	DateFrom  string `form:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo    string `form:"date_to" validate:"omitempty,datetime=2006-01-02"`
}

func (q analyticsQuery) narrowed() bool {
	return q.ChannelID != "" || q.StoreID != "" || q.Weekday != "" || q.DateFrom != "" || q.DateTo != ""
}

func parseAnalyticsQuery(r *stdhttp.Request) (analyticsQuery, error) {
	v := r.URL.Query()
	q := analyticsQuery{
		Metric:    v.Get("metric"),
		Dimension: v.Get("dimension"),
		ChannelID: v.Get("channel_id"),
		StoreID:   v.Get("store_id"),
		Weekday:   v.Get("dia_semana"),
		DateFrom:  v.Get("date_from"),
		DateTo:    v.Get("date_to"),
	}
	// the real service defaults both; the client always sends them
	if q.Metric == "" {
		q.Metric = string(domain.MetricRevenueTotal)
	}
	if q.Dimension == "" {
		q.Dimension = string(domain.DimensionStore)
	}
	if err := bind.Struct(q); err != nil {
		return analyticsQuery{}, err
	}
	return q, nil
}

// resultRows builds the canned, strictly descending result sequence
func resultRows(q analyticsQuery, limit int) []domain.ResultRow {
	m := domain.Metric(q.Metric)
	labels := entities(domain.Dimension(q.Dimension))
	if limit > 0 && len(labels) > limit {
		labels = labels[:limit]
	}
	rows := make([]domain.ResultRow, len(labels))
	for i, label := range labels {
		rows[i] = domain.ResultRow{
			EntityLabel: label,
			MetricValue: domain.MetricValue(rowValue(m, i, q.narrowed())),
		}
	}
	return rows
}

func handleChannels(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	phttp.RespondOK(w, r, channels)
}

func handleStores(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	phttp.RespondOK(w, r, stores)
}

func handleWeekdays(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	phttp.RespondOK(w, r, weekdays)
}

func handleAnalytics(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	q, err := parseAnalyticsQuery(r)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	phttp.RespondOK(w, r, resultRows(q, dashboardLimit))
}

func handleExportCSV(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	q, err := parseAnalyticsQuery(r)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	rows := resultRows(q, 0)
	if len(rows) == 0 {
		phttp.RespondError(w, r, perr.NotFoundf("nenhum dado encontrado para exportar com estes filtros"))
		return
	}
	writeCSV(w, q, rows)
}

func handleRiskCustomers(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	phttp.RespondOK(w, r, riskCustomers)
}
