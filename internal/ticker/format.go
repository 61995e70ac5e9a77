package ticker

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// separator joins the annotation parts the widget shows in one line.
const separator = " • "

// germanMonths holds the month names for the widget's date labels.
var germanMonths = map[time.Month]string{
	time.January:   "Januar",
	time.February:  "Februar",
	time.March:     "März",
	time.April:     "April",
	time.May:       "Mai",
	time.June:      "Juni",
	time.July:      "Juli",
	time.August:    "August",
	time.September: "September",
	time.October:   "Oktober",
	time.November:  "November",
	time.December:  "Dezember",
}

// dateLayouts are the date shapes the observations API is known to emit.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01",
}

// monthYearLabel renders an observation date as "Juli 2025". Dates that
// match none of the known layouts pass through unchanged.
func monthYearLabel(date string) string {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, date)
		if err != nil {
			continue
		}
		return germanMonths[t.Month()] + " " + strconv.Itoa(t.Year())
	}
	return date
}

// formatPct renders a percentage delta with an explicit sign, two decimals
// and a decimal comma: +3,25 %.
func formatPct(v float64) string {
	return strings.Replace(fmt.Sprintf("%+.2f", v), ".", ",", 1) + " %"
}

// appendDelta appends a formatted delta fragment. Non-finite deltas (an
// absent or zero base) are dropped, never rendered as error text.
func appendDelta(fragments []string, v float64, suffix string) []string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fragments
	}
	return append(fragments, formatPct(v)+" "+suffix)
}

// annotation assembles the extra field: unit, date label, then any delta
// fragments, all joined with the separator.
func annotation(unit, dateLabel string, fragments []string) string {
	parts := make([]string, 0, 2+len(fragments))
	parts = append(parts, unit, dateLabel)
	parts = append(parts, fragments...)
	return strings.Join(parts, separator)
}
