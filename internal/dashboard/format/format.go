// Package format derives display strings for metric values and entity labels.
// The rules vary by metric and dimension; both functions are pure.
package format

import (
	"fmt"
	"math"
	"strconv"

	"noladash/internal/dashboard/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is rendered for unformattable metric values. A bad cell is a
// local, silently-recovered condition, never a panic or a surfaced error.
const Placeholder = "N/D"

// the dashboard ships in a single fixed locale
var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// Value renders a metric value for display. The count-type metric gets a
// locale-grouped integer ("12.345"); every other metric gets exactly two
// decimal places ("12345.60").
func Value(m domain.Metric, v domain.MetricValue) string {
	if !v.Valid() {
		return Placeholder
	}
	if m == domain.MetricSalesCount {
		return ptBR.Sprintf("%d", int64(math.Round(v.Float())))
	}
	return strconv.FormatFloat(v.Float(), 'f', 2, 64)
}

// Label renders an entity label for display. Hour-of-day groups render as an
// hour range; every other dimension passes through unchanged.
func Label(d domain.Dimension, label string) string {
	if d == domain.DimensionHour {
		return fmt.Sprintf("%s:00 - %s:59", label, label)
	}
	return label
}
