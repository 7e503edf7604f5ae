package stub

import (
	"encoding/csv"
	"fmt"
	stdhttp "net/http"
	"strconv"
	"strings"
	"time"

	"noladash/internal/dashboard/domain"
)

// report column names, friendlier than the wire identifiers
var reportDimensionLabels = map[domain.Dimension]string{
	domain.DimensionStore:   "Loja",
	domain.DimensionChannel: "Canal",
	domain.DimensionProduct: "Produto",
	domain.DimensionWeekday: "Dia da Semana",
	domain.DimensionHour:    "Hora do Dia",
}

func optionName(opts []domain.Option, id, all string) string {
	for _, o := range opts {
		if strconv.Itoa(o.ID) == id {
			return o.Name
		}
	}
	return all
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// writeCSV streams the export payload: a metadata header block describing the
// applied filters, then semicolon-separated rows with decimal commas
func writeCSV(w stdhttp.ResponseWriter, q analyticsQuery, rows []domain.ResultRow) {
	today := time.Now().Format(domain.DateLayout)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=relatorio_nola_%s.csv", today))

	metric := domain.Metric(q.Metric)
	dimension := domain.Dimension(q.Dimension)

	var b strings.Builder
	fmt.Fprintf(&b, "Relatorio Nola Gerado em: %s\n\n", today)
	b.WriteString("Filtros Aplicados:\n")
	fmt.Fprintf(&b, "Metrica: %s\n", metric.Label())
	fmt.Fprintf(&b, "Agrupado Por: %s\n", reportDimensionLabels[dimension])
	fmt.Fprintf(&b, "Loja: %s\n", optionName(stores, q.StoreID, "Todas as Lojas"))
	fmt.Fprintf(&b, "Canal: %s\n", optionName(channels, q.ChannelID, "Todos os Canais"))
	fmt.Fprintf(&b, "Dia da Semana: %s\n", optionName(weekdays, q.Weekday, "Todos os Dias"))
	fmt.Fprintf(&b, "De: %s\n", orDefault(q.DateFrom, "Inicio"))
	fmt.Fprintf(&b, "Ate: %s\n\n", orDefault(q.DateTo, "Fim"))
	_, _ = w.Write([]byte(b.String()))

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	_ = cw.Write([]string{reportDimensionLabels[dimension], metric.Label()})
	for _, row := range rows {
		val := strconv.FormatFloat(row.MetricValue.Float(), 'f', 2, 64)
		// decimal comma, matching the report locale
		val = strings.Replace(val, ".", ",", 1)
		_ = cw.Write([]string{row.EntityLabel, val})
	}
	cw.Flush()
}
