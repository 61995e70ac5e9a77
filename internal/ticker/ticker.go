package ticker

import (
	"math"

	"tickerfeed/internal/provider"
)

// centsPerPoundToTonne converts US cents per pound into USD per tonne:
// one tonne is 2204.622 pounds, so 1 cent/lb equals 22.04622 USD/t.
const centsPerPoundToTonne = 22.04622

// Attribution is the fixed trailing line naming the data source.
const Attribution = "Quelle: IWF-Rohstoffpreise via FRED"

const (
	fallbackExtra  = "Daten nicht verfügbar"
	fallbackNotice = "Rohstoffpreise derzeit nicht verfügbar"

	deltaPreviousSuffix = "zum Vormonat"
)

func deltaAverageSuffix(year string) string { return "zum Ø " + year }

// Item is one entry of the ticker document. The trailing attribution entry
// carries only Text; Value and Extra stay unset there.
type Item struct {
	Text  string `json:"text"`
	Value *int   `json:"value,omitempty"`
	Extra string `json:"extra,omitempty"`
}

// Document is the persisted artifact, fully overwritten on every run.
type Document struct {
	Items []Item `json:"items"`
}

// Builder derives display items from observation series.
type Builder struct {
	Rate        float64 // conversion rate from the source into the display currency
	AverageYear string  // e.g. "2024"
	Unit        string  // e.g. "EUR/t"
}

// Item builds the display entry for one commodity, or reports false when
// the series has no valid current value.
func (b Builder) Item(label string, centsPerPound bool, series []provider.Observation) (Item, bool) {
	latest, ok := LatestValid(series)
	if !ok {
		return Item{}, false
	}

	converted := latest.Value
	if centsPerPound {
		converted *= centsPerPoundToTonne
	}
	value := int(math.Round(converted * b.Rate))

	// Deltas compare raw source-currency values, not the converted
	// display value.
	var fragments []string
	if prev, ok := PreviousValid(series); ok {
		fragments = appendDelta(fragments, Pct(latest.Value, prev.Value), deltaPreviousSuffix)
	}
	if avg, ok := YearlyAverage(series, b.AverageYear); ok {
		fragments = appendDelta(fragments, Pct(latest.Value, avg), deltaAverageSuffix(b.AverageYear))
	}

	return Item{
		Text:  label,
		Value: &value,
		Extra: annotation(b.Unit, monthYearLabel(latest.Date), fragments),
	}, true
}

// AttributionItem is the fixed trailing entry of every document.
func AttributionItem() Item {
	return Item{Text: Attribution}
}

// Fallback is the deterministic document written when live data cannot be
// obtained: one placeholder per commodity label plus an explanatory
// trailing entry. It contains nothing run-specific, so repeated runs write
// identical bytes.
func Fallback(labels []string) Document {
	items := make([]Item, 0, len(labels)+1)
	for _, label := range labels {
		value := 0
		items = append(items, Item{Text: label, Value: &value, Extra: fallbackExtra})
	}
	items = append(items, Item{Text: fallbackNotice})
	return Document{Items: items}
}
