package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// MetricValue is a float64 that survives the aggregation service's loose
// number encoding. The service serializes decimals as JSON strings on the
// cached path and as numbers otherwise; null and garbage decode to NaN so a
// bad cell stays local instead of failing the whole result set.
type MetricValue float64

// Float returns the underlying float64
func (v MetricValue) Float() float64 { return float64(v) }

// Valid reports whether the value is renderable as a number
func (v MetricValue) Valid() bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// UnmarshalJSON accepts a number, a numeric string, or null
func (v *MetricValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = MetricValue(math.NaN())
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*v = MetricValue(math.NaN())
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*v = MetricValue(math.NaN())
			return nil
		}
		*v = MetricValue(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		*v = MetricValue(math.NaN())
		return nil
	}
	*v = MetricValue(f)
	return nil
}

// MarshalJSON renders NaN/Inf as null so the stub can echo rows back
func (v MetricValue) MarshalJSON() ([]byte, error) {
	if !v.Valid() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(v), 'f', -1, 64)), nil
}

// ResultRow is one ordered row of the aggregation result.
// Order is the chart's category order and must be preserved end-to-end.
type ResultRow struct {
	EntityLabel string      `json:"nome_entidade"`
	MetricValue MetricValue `json:"valor_metrica"`
}

// UnmarshalJSON tolerates non-string entity labels; the hour-of-day dimension
// groups by an integer column, so nome_entidade arrives as a JSON number there
func (r *ResultRow) UnmarshalJSON(b []byte) error {
	var aux struct {
		Label json.RawMessage `json:"nome_entidade"`
		Value MetricValue     `json:"valor_metrica"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.EntityLabel = flexString(aux.Label)
	r.MetricValue = aux.Value
	return nil
}

// flexString renders a raw JSON scalar as its text form
func flexString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}
