package domain

import (
	"context"
	"net/url"
)

// OptionsPort fetches the bounded filter vocabularies
type OptionsPort interface {
	Channels(ctx context.Context) ([]Option, error)
	Stores(ctx context.Context) ([]Option, error)
	Weekdays(ctx context.Context) ([]Option, error)
}

// AnalyticsPort fetches one ordered aggregation result
type AnalyticsPort interface {
	Analytics(ctx context.Context, params url.Values) ([]ResultRow, error)
}

// ExportPort fetches the CSV representation of the same query
type ExportPort interface {
	ExportCSV(ctx context.Context, params url.Values) ([]byte, error)
}

// BoundaryPort is the full aggregation-service surface the dashboard consumes
type BoundaryPort interface {
	OptionsPort
	AnalyticsPort
	ExportPort
}
