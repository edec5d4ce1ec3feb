package query

import (
	"testing"

	"go-factory-console/internal/inventory"
	"go-factory-console/internal/model"
)

func sampleStock() []model.StockItem {
	return []model.StockItem{
		{ID: "1", Name: "Parafuso M8", SKU: "PM8", Location: "Almox A", Category: "Fixação", Quantity: 1500, MinStock: 500},
		{ID: "2", Name: "Óleo hidráulico", SKU: "OH68", Location: "Almox B", Category: "Lubrificantes", Quantity: 75, MinStock: 100},
		{ID: "3", Name: "Correia dentada", SKU: "CD12", Location: "Almox A", Category: "Transmissão", Quantity: 0, MinStock: 10},
		{ID: "4", Name: "Porca M8", SKU: "PC8", Location: "Almox C", Category: "Fixação", Quantity: 4, MinStock: 50},
	}
}

func ids(items []model.StockItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID.String()
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter_NoPredicatesIsIdentity(t *testing.T) {
	items := sampleStock()

	for _, q := range []Query{{}, {Text: ""}, {Text: "   \t"}} {
		got := Filter(items, q, StockFields)
		if !equalIDs(ids(got), ids(items)) {
			t.Errorf("Filter(%+v) = %v, want %v", q, ids(got), ids(items))
		}
	}
}

func TestFilter_ReturnsFreshSlice(t *testing.T) {
	items := sampleStock()
	got := Filter(items, Query{}, StockFields)
	got[0].Name = "changed"

	if items[0].Name == "changed" {
		t.Error("Filter result aliases the input slice")
	}
}

func TestFilter_Text(t *testing.T) {
	items := sampleStock()

	tests := []struct {
		text string
		want []string
	}{
		{"m8", []string{"1", "4"}},
		{"PARAFUSO", []string{"1"}},
		{"almox a", []string{"1", "3"}},
		{"oh68", []string{"2"}},
		{"fixação", []string{"1", "4"}},
		{"  porca ", []string{"4"}},
		{"nothing", []string{}},
	}

	for _, tt := range tests {
		got := ids(Filter(items, Query{Text: tt.text}, StockFields))
		if !equalIDs(got, tt.want) {
			t.Errorf("Filter(text=%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestFilter_StatusUsesDerivedStockStatus(t *testing.T) {
	items := sampleStock()

	got := Filter(items, Query{Status: string(inventory.StatusOK)}, StockFields)
	for _, item := range got {
		if inventory.Classify(int(item.Quantity), int(item.MinStock)) != inventory.StatusOK {
			t.Errorf("item %s is not OK", item.ID)
		}
	}
	if !equalIDs(ids(got), []string{"1"}) {
		t.Errorf("Filter(status=OK) = %v, want [1]", ids(got))
	}

	// remote spelling of the same label
	got = Filter(items, Query{Status: "OUT_OF_STOCK"}, StockFields)
	if !equalIDs(ids(got), []string{"3"}) {
		t.Errorf("Filter(status=OUT_OF_STOCK) = %v, want [3]", ids(got))
	}
}

func TestFilter_PredicatesAreANDed(t *testing.T) {
	items := sampleStock()

	got := Filter(items, Query{Text: "m8", Category: "Fixação", Status: "Crítico"}, StockFields)
	if !equalIDs(ids(got), []string{"4"}) {
		t.Errorf("Filter() = %v, want [4]", ids(got))
	}

	got = Filter(items, Query{Text: "almox a", Category: "Lubrificantes"}, StockFields)
	if len(got) != 0 {
		t.Errorf("Filter() = %v, want none", ids(got))
	}
}

func TestFilter_CategoryIsExact(t *testing.T) {
	items := sampleStock()

	if got := Filter(items, Query{Category: "fixação"}, StockFields); len(got) != 0 {
		t.Errorf("category match should be exact, got %v", ids(got))
	}
}

func TestFilter_EmployeeStatusSpellings(t *testing.T) {
	employees := []model.Employee{
		{ID: "e1", Name: "Maria Oliveira", Role: "Operador", Status: "Active"},
		{ID: "e2", Name: "João Silva", Role: "Analista", Status: "ATIVO"},
		{ID: "e3", Name: "Pedro Santos", Role: "Técnico", Status: "On Leave"},
	}

	got := Filter(employees, Query{Status: "ATIVO"}, EmployeeFields)
	if len(got) != 2 || got[0].ID != "e1" || got[1].ID != "e2" {
		t.Errorf("Filter(status=ATIVO) = %+v, want e1 and e2", got)
	}

	got = Filter(employees, Query{Text: "técnico"}, EmployeeFields)
	if len(got) != 1 || got[0].ID != "e3" {
		t.Errorf("Filter(text=técnico) = %+v, want e3", got)
	}
}

func TestFilter_MissingAccessorIgnoresFilter(t *testing.T) {
	machines := []model.Machine{{ID: "m1", Name: "Prensa"}, {ID: "m2", Name: "Torno"}}

	got := Filter(machines, Query{Category: "anything"}, MachineFields)
	if len(got) != 2 {
		t.Errorf("category filter on machines should be ignored, got %d items", len(got))
	}
}

func TestCount(t *testing.T) {
	items := sampleStock()
	got := Count(items, func(s model.StockItem) bool { return s.Category == "Fixação" })
	if got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
}

func TestQuery_Active(t *testing.T) {
	if (Query{Text: "  "}).Active() {
		t.Error("whitespace text should not be active")
	}
	if !(Query{Category: "x"}).Active() {
		t.Error("category filter should be active")
	}
}
