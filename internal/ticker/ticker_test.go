package ticker

import "testing"

func TestBuilderItem_SugarCentsPerPoundConversion(t *testing.T) {
	b := Builder{Rate: 0.9, AverageYear: "2024", Unit: "EUR/t"}
	series := obs("2025-07-01", "20")

	item, ok := b.Item("Zucker", true, series)
	if !ok {
		t.Fatal("want an item")
	}
	if item.Text != "Zucker" {
		t.Fatalf("text = %q, want Zucker", item.Text)
	}
	// round(20 * 22.04622 * 0.9) = round(396.83196)
	if item.Value == nil || *item.Value != 397 {
		t.Fatalf("value = %v, want 397", item.Value)
	}
	if item.Extra != "EUR/t • Juli 2025" {
		t.Fatalf("extra = %q, want unit and date label only", item.Extra)
	}
}

func TestBuilderItem_Deltas(t *testing.T) {
	b := Builder{Rate: 1, AverageYear: "2024", Unit: "EUR/t"}
	series := obs(
		"2024-06-01", "100",
		"2025-06-01", "100",
		"2025-07-01", "110",
	)

	item, ok := b.Item("Kakao", false, series)
	if !ok {
		t.Fatal("want an item")
	}
	if item.Value == nil || *item.Value != 110 {
		t.Fatalf("value = %v, want 110", item.Value)
	}
	want := "EUR/t • Juli 2025 • +10,00 % zum Vormonat • +10,00 % zum Ø 2024"
	if item.Extra != want {
		t.Fatalf("extra = %q, want %q", item.Extra, want)
	}
}

func TestBuilderItem_OmittedWithoutValidValue(t *testing.T) {
	b := Builder{Rate: 0.9, AverageYear: "2024", Unit: "EUR/t"}
	if _, ok := b.Item("Kakao", false, obs("2025-07-01", ".")); ok {
		t.Fatal("want the item omitted when nothing parses")
	}
}

func TestBuilderItem_ZeroBaseDeltaDropped(t *testing.T) {
	b := Builder{Rate: 1, AverageYear: "2024", Unit: "EUR/t"}
	series := obs(
		"2025-06-01", "0",
		"2025-07-01", "110",
	)

	item, ok := b.Item("Kakao", false, series)
	if !ok {
		t.Fatal("want an item")
	}
	if item.Extra != "EUR/t • Juli 2025" {
		t.Fatalf("extra = %q, want the non-finite delta dropped", item.Extra)
	}
}

func TestFallback(t *testing.T) {
	labels := []string{"Kakao", "Zucker"}
	doc := Fallback(labels)

	if len(doc.Items) != len(labels)+1 {
		t.Fatalf("items = %d, want %d", len(doc.Items), len(labels)+1)
	}
	for i, label := range labels {
		item := doc.Items[i]
		if item.Text != label || item.Value == nil || *item.Value != 0 || item.Extra != "Daten nicht verfügbar" {
			t.Fatalf("unexpected placeholder: %+v", item)
		}
	}
	last := doc.Items[len(doc.Items)-1]
	if last.Text != "Rohstoffpreise derzeit nicht verfügbar" || last.Value != nil || last.Extra != "" {
		t.Fatalf("unexpected trailing item: %+v", last)
	}
}

func TestAttributionItem(t *testing.T) {
	item := AttributionItem()
	if item.Text != "Quelle: IWF-Rohstoffpreise via FRED" || item.Value != nil || item.Extra != "" {
		t.Fatalf("unexpected attribution item: %+v", item)
	}
}
