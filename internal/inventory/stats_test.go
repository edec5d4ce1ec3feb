package inventory

import (
	"encoding/json"
	"errors"
	"testing"

	"go-factory-console/internal/model"

	"github.com/shopspring/decimal"
)

func stockItem(quantity, minStock, reserved int, unitPrice string) model.StockItem {
	return model.StockItem{
		Quantity:  model.Int(quantity),
		MinStock:  model.Int(minStock),
		Reserved:  model.Int(reserved),
		UnitPrice: model.AmountFrom(decimal.RequireFromString(unitPrice)),
	}
}

func TestAvailable(t *testing.T) {
	tests := []struct {
		quantity, reserved int
		want               int
	}{
		{75, 10, 65},
		{5, 10, 0},
		{10, 10, 0},
		{0, 0, 0},
		{1500, 120, 1380},
	}

	for _, tt := range tests {
		got := Available(stockItem(tt.quantity, 0, tt.reserved, "0"))
		if got != tt.want {
			t.Errorf("Available(q=%d, r=%d) = %d, want %d", tt.quantity, tt.reserved, got, tt.want)
		}
	}
}

func TestProject_ValuesAvailableUnitsOnly(t *testing.T) {
	p := Project(stockItem(1500, 500, 120, "0.12"))

	if p.Available != 1380 {
		t.Errorf("available = %d, want 1380", p.Available)
	}
	if !p.TotalValue.Equal(decimal.RequireFromString("165.60")) {
		t.Errorf("totalValue = %s, want 165.60", p.TotalValue)
	}
	if p.Status != StatusOK {
		t.Errorf("status = %q, want OK", p.Status)
	}
}

func TestProject_ReservedDoesNotAffectStatus(t *testing.T) {
	a := Project(stockItem(80, 100, 0, "1"))
	b := Project(stockItem(80, 100, 80, "1"))

	if a.Status != b.Status {
		t.Errorf("status changed with reserved: %q vs %q", a.Status, b.Status)
	}
	if b.Available != 0 || !b.TotalValue.IsZero() {
		t.Errorf("fully reserved item: available=%d value=%s, want 0 and 0", b.Available, b.TotalValue)
	}
}

func TestAggregate_Scenario(t *testing.T) {
	items := []model.StockItem{
		stockItem(1500, 500, 120, "0.12"),
		stockItem(75, 100, 10, "45.5"),
	}

	if got := Project(items[0]).Status; got != StatusOK {
		t.Errorf("item 0 status = %q, want OK", got)
	}
	if got := Project(items[1]).Status; got != StatusAttention {
		t.Errorf("item 1 status = %q, want Atenção", got)
	}

	stats := Aggregate(items)
	want := Stats{
		TotalItems:     2,
		TotalReserved:  130,
		TotalAvailable: 1445,
		TotalLow:       1,
		TotalOut:       0,
		TotalValue:     model.AmountFrom(decimal.RequireFromString("3123.10")),
	}
	if !stats.Equal(want) {
		t.Errorf("Aggregate() = %+v, want %+v", stats, want)
	}
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil)
	if !stats.Equal(Stats{}) {
		t.Errorf("Aggregate(nil) = %+v, want all zero", stats)
	}
	if !Aggregate([]model.StockItem{}).Equal(stats) {
		t.Error("empty slice and nil should aggregate alike")
	}
}

func TestAggregate_LowCountsCriticalAndAttention(t *testing.T) {
	items := []model.StockItem{
		stockItem(0, 10, 0, "1"),   // out
		stockItem(3, 10, 0, "1"),   // critical
		stockItem(8, 10, 0, "1"),   // attention
		stockItem(11, 10, 0, "1"),  // ok
		stockItem(1, 0, 0, "1"),    // critical with zero minimum
		stockItem(-2, 10, 5, "10"), // malformed, counts as out
	}

	stats := Aggregate(items)
	if stats.TotalOut != 2 {
		t.Errorf("TotalOut = %d, want 2", stats.TotalOut)
	}
	if stats.TotalLow != 3 {
		t.Errorf("TotalLow = %d, want 3", stats.TotalLow)
	}
	if stats.TotalAvailable != 23 {
		t.Errorf("TotalAvailable = %d, want 23", stats.TotalAvailable)
	}
}

func TestAggregate_IdempotentAndOrderIndependent(t *testing.T) {
	items := []model.StockItem{
		stockItem(1500, 500, 120, "0.12"),
		stockItem(75, 100, 10, "45.5"),
		stockItem(0, 5, 0, "3"),
		stockItem(4, 10, 1, "2.25"),
	}
	first := Aggregate(items)
	second := Aggregate(items)
	if !first.Equal(second) {
		t.Errorf("repeated Aggregate differs: %+v vs %+v", first, second)
	}

	reversed := make([]model.StockItem, len(items))
	for i, item := range items {
		reversed[len(items)-1-i] = item
	}
	if !Aggregate(reversed).Equal(first) {
		t.Errorf("Aggregate depends on order: %+v vs %+v", Aggregate(reversed), first)
	}
}

func TestReserve(t *testing.T) {
	item := stockItem(100, 10, 5, "1")

	got, err := Reserve(item, 7)
	if err != nil {
		t.Fatalf("Reserve() error = %v", err)
	}
	if got != 12 {
		t.Errorf("Reserve() = %d, want 12", got)
	}

	for _, qty := range []int{0, -3} {
		got, err := Reserve(item, qty)
		if !errors.Is(err, ErrInvalidReserveQuantity) {
			t.Errorf("Reserve(%d) error = %v, want ErrInvalidReserveQuantity", qty, err)
		}
		if got != 5 {
			t.Errorf("Reserve(%d) = %d, want unchanged 5", qty, got)
		}
	}
}

func TestCategories(t *testing.T) {
	items := []model.StockItem{
		{Category: "Matéria-prima"},
		{Category: ""},
		{Category: "Peças"},
		{Category: "Matéria-prima"},
	}

	got := Categories(items)
	want := []string{"Matéria-prima", "Peças"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMoneyEncodesAsNumber(t *testing.T) {
	item := stockItem(1500, 500, 120, "0.12")

	data, err := json.Marshal(struct {
		Projection
		Stats Stats `json:"stats"`
	}{Project(item), Aggregate([]model.StockItem{item})})
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		TotalValue interface{} `json:"totalValue"`
		Stats      struct {
			TotalValue interface{} `json:"totalValue"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if v, ok := got.TotalValue.(float64); !ok || v != 165.6 {
		t.Errorf("projection totalValue = %#v, want number 165.6", got.TotalValue)
	}
	if v, ok := got.Stats.TotalValue.(float64); !ok || v != 165.6 {
		t.Errorf("stats totalValue = %#v, want number 165.6", got.Stats.TotalValue)
	}
}
