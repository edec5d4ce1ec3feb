package inventory

import (
	"errors"

	"go-factory-console/internal/model"

	"github.com/shopspring/decimal"
)

var ErrInvalidReserveQuantity = errors.New("reserve quantity must be greater than zero")

// Projection holds the display fields derived from one stock item.
type Projection struct {
	Available  int          `json:"available"`
	TotalValue model.Amount `json:"totalValue"`
	Status     Status       `json:"status"`
}

// Available returns quantity minus reserved, never below zero.
func Available(item model.StockItem) int {
	available := int(item.Quantity) - int(item.Reserved)
	if available < 0 {
		return 0
	}
	return available
}

// Value returns available units times unit price. Reserved units are not
// valued.
func Value(item model.StockItem) decimal.Decimal {
	return decimal.NewFromInt(int64(Available(item))).Mul(item.UnitPrice.Decimal)
}

// Project derives availability, value and status for a stock item. The
// status depends on quantity and minimum stock only.
func Project(item model.StockItem) Projection {
	return Projection{
		Available:  Available(item),
		TotalValue: model.AmountFrom(Value(item)),
		Status:     Classify(int(item.Quantity), int(item.MinStock)),
	}
}

// Reserve returns the reserved count after setting aside qty more units.
// The factory service owns the item; the caller sends the result as an
// update.
func Reserve(item model.StockItem, qty int) (int, error) {
	if qty <= 0 {
		return int(item.Reserved), ErrInvalidReserveQuantity
	}
	return int(item.Reserved) + qty, nil
}

// Categories returns the distinct non-empty categories in first-seen order.
func Categories(items []model.StockItem) []string {
	seen := make(map[string]struct{}, len(items))
	categories := []string{}
	for _, item := range items {
		if item.Category == "" {
			continue
		}
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}
	return categories
}
