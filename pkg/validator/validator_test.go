package validator

import (
	"testing"
	"time"

	"go-factory-console/internal/model"
)

func fixedNow(t *testing.T, day string) {
	t.Helper()
	d, err := time.Parse(dateLayout, day)
	if err != nil {
		t.Fatal(err)
	}
	prev := now
	now = func() time.Time { return d.Add(10 * time.Hour) }
	t.Cleanup(func() { now = prev })
}

func validItem() model.StockItem {
	return model.StockItem{
		SKU:       "PM8",
		Name:      "Parafuso M8",
		Quantity:  10,
		Unit:      "un",
		Category:  "Fixação",
		UnitPrice: model.NewAmount(0.12),
	}
}

func failedTags(errs []*ErrorResponse) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.FailedField] = e.Tag
	}
	return out
}

func TestValidateStruct_ValidItem(t *testing.T) {
	fixedNow(t, "2024-06-10")
	item := validItem()
	item.EntryDate = "2024-06-10"
	item.ExpiryDate = "2024-06-10"

	if errs := ValidateStruct(&item); len(errs) != 0 {
		t.Errorf("ValidateStruct() = %v, want no errors", failedTags(errs))
	}
}

func TestValidateStruct_StockRules(t *testing.T) {
	fixedNow(t, "2024-06-10")

	tests := []struct {
		name   string
		mutate func(*model.StockItem)
		field  string
		tag    string
	}{
		{"missing name", func(s *model.StockItem) { s.Name = "" }, "StockItem.Name", "required"},
		{"long code", func(s *model.StockItem) { s.SKU = "ABCDEF" }, "StockItem.SKU", "max"},
		{"negative quantity", func(s *model.StockItem) { s.Quantity = -1 }, "StockItem.Quantity", "gte"},
		{"negative price", func(s *model.StockItem) { s.UnitPrice = model.NewAmount(-0.5) }, "StockItem.UnitPrice", "gte"},
		{"future entry", func(s *model.StockItem) { s.EntryDate = "2024-06-11" }, "StockItem.EntryDate", "not_future"},
		{"past expiry", func(s *model.StockItem) { s.ExpiryDate = "2024-06-09" }, "StockItem.ExpiryDate", "not_past"},
		{"bad date", func(s *model.StockItem) { s.EntryDate = "10/06/2024" }, "StockItem.EntryDate", "datetime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem()
			tt.mutate(&item)

			got := failedTags(ValidateStruct(&item))
			if got[tt.field] != tt.tag {
				t.Errorf("failed fields = %v, want %s on %s", got, tt.tag, tt.field)
			}
		})
	}
}

func TestValidateStruct_MachineOEE(t *testing.T) {
	m := model.Machine{Name: "Prensa", DepartmentID: "dep-1", SectorID: "sec-1", Status: "Operando", OEE: 1.2}

	got := failedTags(ValidateStruct(&m))
	if got["Machine.OEE"] != "lte" {
		t.Errorf("failed fields = %v, want lte on Machine.OEE", got)
	}
}
