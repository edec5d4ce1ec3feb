package inventory

import (
	"go-factory-console/internal/model"

	"github.com/shopspring/decimal"
)

// Stats summarises a collection of stock items.
type Stats struct {
	TotalItems     int          `json:"totalItems"`
	TotalReserved  int          `json:"totalReserved"`
	TotalAvailable int          `json:"totalAvailable"`
	TotalLow       int          `json:"totalLow"`
	TotalOut       int          `json:"totalOut"`
	TotalValue     model.Amount `json:"totalValue"`
}

// Aggregate reduces items into Stats in a single pass. Only sums and counts
// are involved, so the result does not depend on item order.
//
// TotalLow counts critical and attention items together; the per-item
// status still tells them apart.
func Aggregate(items []model.StockItem) Stats {
	total := decimal.Zero
	stats := Stats{}
	for _, item := range items {
		q, minStock := int(item.Quantity), int(item.MinStock)

		stats.TotalItems++
		stats.TotalReserved += int(item.Reserved)
		stats.TotalAvailable += Available(item)
		total = total.Add(Value(item))

		if q <= 0 {
			stats.TotalOut++
		} else if isLow(q, minStock) {
			stats.TotalLow++
		}
	}
	stats.TotalValue = model.AmountFrom(total)
	return stats
}

// Equal compares two Stats, treating decimals by value.
func (s Stats) Equal(o Stats) bool {
	return s.TotalItems == o.TotalItems &&
		s.TotalReserved == o.TotalReserved &&
		s.TotalAvailable == o.TotalAvailable &&
		s.TotalLow == o.TotalLow &&
		s.TotalOut == o.TotalOut &&
		s.TotalValue.Equal(o.TotalValue.Decimal)
}
