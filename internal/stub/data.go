// Package stub is an in-process test double of the aggregation service.
// It serves the boundary endpoints with canned deterministic data for local
// development and integration tests; it performs no real aggregation.
package stub

import (
	"math"

	"noladash/internal/dashboard/domain"
	"noladash/internal/risk"
)

var channels = []domain.Option{
	{ID: 1, Name: "Balcão"},
	{ID: 2, Name: "iFood"},
	{ID: 3, Name: "Rappi"},
	{ID: 4, Name: "Telefone"},
	{ID: 5, Name: "WhatsApp"},
}

var stores = []domain.Option{
	{ID: 1, Name: "Nola Aldeota"},
	{ID: 2, Name: "Nola Benfica"},
	{ID: 3, Name: "Nola Centro"},
	{ID: 4, Name: "Nola Meireles"},
	{ID: 5, Name: "Nola Papicu"},
	{ID: 6, Name: "Nola Varjota"},
}

// the weekday vocabulary is fixed, same ids the real service uses
var weekdays = []domain.Option{
	{ID: 0, Name: "Domingo"},
	{ID: 1, Name: "Segunda-feira"},
	{ID: 2, Name: "Terça-feira"},
	{ID: 3, Name: "Quarta-feira"},
	{ID: 4, Name: "Quinta-feira"},
	{ID: 5, Name: "Sexta-feira"},
	{ID: 6, Name: "Sábado"},
}

var products = []string{
	"X-Burguer Nola", "Baião de Dois", "Tapioca de Carne de Sol", "Açaí 500ml",
	"Caldo de Camarão", "Escondidinho de Carne", "Moqueca de Peixe", "Panelada",
	"Feijoada Completa", "Arroz de Cuxá", "Vatapá", "Bobó de Camarão",
	"Carne de Sol com Macaxeira", "Cuscuz Nordestino", "Galinha Caipira",
	"Peixada Cearense", "Rabada", "Sarapatel", "Mungunzá", "Paçoca de Pilão",
	"Arrumadinho", "Dobradinha", "Quibebe", "Mão de Vaca", "Buchada de Bode",
}

var riskCustomers = []risk.Customer{
	{CustomerName: "Ana Beatriz Sousa", Email: "ana.sousa@example.com", PhoneNumber: "+55 85 98877-1201", TotalPurchases: 14, DaysSinceLastPurchase: 112, LifetimeValue: 2340.50},
	{CustomerName: "Carlos Eduardo Lima", Email: "carlos.lima@example.com", PhoneNumber: "+55 85 98877-1202", TotalPurchases: 9, DaysSinceLastPurchase: 98, LifetimeValue: 1122.00},
	{CustomerName: "Francisca Moreira", Email: "francisca.moreira@example.com", PhoneNumber: "+55 85 98877-1203", TotalPurchases: 22, DaysSinceLastPurchase: 87, LifetimeValue: 4018.75},
	{CustomerName: "João Victor Almeida", Email: "joao.almeida@example.com", PhoneNumber: "+55 85 98877-1204", TotalPurchases: 5, DaysSinceLastPurchase: 74, LifetimeValue: 502.30},
	{CustomerName: "Maria das Graças", Email: "maria.gracas@example.com", PhoneNumber: "+55 85 98877-1205", TotalPurchases: 31, DaysSinceLastPurchase: 63, LifetimeValue: 6245.10},
	{CustomerName: "Pedro Henrique Castro", Email: "pedro.castro@example.com", PhoneNumber: "+55 85 98877-1206", TotalPurchases: 7, DaysSinceLastPurchase: 55, LifetimeValue: 810.90},
	{CustomerName: "Raimunda Nonata", Email: "raimunda.nonata@example.com", PhoneNumber: "+55 85 98877-1207", TotalPurchases: 12, DaysSinceLastPurchase: 44, LifetimeValue: 1977.40},
	{CustomerName: "Tiago Ferreira", Email: "tiago.ferreira@example.com", PhoneNumber: "+55 85 98877-1208", TotalPurchases: 4, DaysSinceLastPurchase: 33, LifetimeValue: 389.60},
}

// entities returns the category labels for a grouping dimension
func entities(d domain.Dimension) []string {
	switch d {
	case domain.DimensionStore:
		return optionNames(stores)
	case domain.DimensionChannel:
		return optionNames(channels)
	case domain.DimensionProduct:
		return products
	case domain.DimensionWeekday:
		return optionNames(weekdays)
	case domain.DimensionHour:
		out := make([]string, 24)
		for h := range out {
			out[h] = itoa(h)
		}
		return out
	}
	return nil
}

func optionNames(opts []domain.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Name
	}
	return out
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [4]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return string(b[i:])
}

// metricBase is the top-ranked value per metric; lower ranks decay from it
func metricBase(m domain.Metric) float64 {
	switch m {
	case domain.MetricRevenueTotal:
		return 254890.37
	case domain.MetricSalesCount:
		return 18452
	case domain.MetricAvgTicket:
		return 131.45
	case domain.MetricAvgDelivery:
		return 58.2
	}
	return 100
}

// rowValue produces a deterministic, strictly descending value for a rank.
// Narrowing filters scale everything down so the data at least looks filtered.
func rowValue(m domain.Metric, rank int, narrowed bool) float64 {
	v := metricBase(m) * math.Pow(0.88, float64(rank))
	if narrowed {
		v *= 0.35
	}
	if m == domain.MetricSalesCount {
		return math.Floor(v)
	}
	return math.Round(v*100) / 100
}
