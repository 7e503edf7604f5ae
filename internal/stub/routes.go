package stub

import (
	"time"

	"noladash/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Mount wires the boundary endpoints onto the mux with CORS and access
// logging. The real service allows the local frontend origin; the stub does
// the same so a browser-based view can hit it directly.
func Mount(m *chi.Mux) {
	m.Use(chimw.RequestID)
	m.Use(middleware.RecoverJSON)
	m.Use(middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 500 * time.Millisecond}))
	m.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))

	m.Get("/api/canais", handleChannels)
	m.Get("/api/lojas", handleStores)
	m.Get("/api/dias-semana", handleWeekdays)
	m.Get("/api/analytics", handleAnalytics)
	m.Get("/api/exportar-csv", handleExportCSV)
	m.Get("/api/clientes-em-risco", handleRiskCustomers)
}
