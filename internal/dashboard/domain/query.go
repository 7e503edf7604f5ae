package domain

import "net/url"

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// BuildQuery maps a FilterState to the aggregation service's query parameters.
// Pure and deterministic: equal states yield byte-identical Encode() output,
// and unset filters are omitted entirely (never sent as empty strings).
//
// The weekday filter is dropped whenever the grouping dimension is weekday,
// even if the UI still carries a stale selection.
func BuildQuery(f FilterState) url.Values {
	p := url.Values{}
	p.Set("metric", string(f.Metric))
	p.Set("dimension", string(f.Dimension))
	if f.StoreID != "" {
		p.Set("store_id", f.StoreID)
	}
	if f.ChannelID != "" {
		p.Set("channel_id", f.ChannelID)
	}
	if f.Weekday != "" && f.Dimension != DimensionWeekday {
		p.Set("dia_semana", f.Weekday)
	}
	if f.DateFrom != nil {
		p.Set("date_from", f.DateFrom.Format(DateLayout))
	}
	if f.DateTo != nil {
		p.Set("date_to", f.DateTo.Format(DateLayout))
	}
	return p
}
