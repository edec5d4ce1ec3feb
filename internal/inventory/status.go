// Package inventory derives stock status, availability and valuation from
// the raw stock items reported by the factory service.
//
// Everything in this package is pure: no I/O, no shared state, no errors.
package inventory

import (
	"math"

	"go-factory-console/internal/model"
)

// Status is the stock level label shown next to an item.
type Status string

const (
	StatusOK         Status = "OK"
	StatusAttention  Status = "Atenção"
	StatusCritical   Status = "Crítico"
	StatusOutOfStock Status = "Sem estoque"
)

// Statuses lists every label in severity order, lowest first.
var Statuses = []Status{StatusOK, StatusAttention, StatusCritical, StatusOutOfStock}

// Classify maps a quantity and its minimum stock onto a status. Rules are
// evaluated in order and the first match wins:
//
//	quantity <= 0                       -> Sem estoque
//	quantity <= max(1, minStock * 0.5)  -> Crítico
//	quantity <= minStock                -> Atenção
//	otherwise                           -> OK
//
// A minStock of 0 still yields a critical threshold of 1.
func Classify(quantity, minStock int) Status {
	q := float64(quantity)
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case q <= criticalThreshold(minStock):
		return StatusCritical
	case quantity <= minStock:
		return StatusAttention
	default:
		return StatusOK
	}
}

func criticalThreshold(minStock int) float64 {
	return math.Max(1, float64(minStock)*0.5)
}

// isLow reports whether a positive quantity sits at or under either
// threshold. Both critical and attention items count as low.
func isLow(quantity, minStock int) bool {
	if quantity <= 0 {
		return false
	}
	return float64(quantity) <= criticalThreshold(minStock) || quantity <= minStock
}

// ParseStatus accepts a client label or any spelling used by the factory
// service ("CRITICO", "OUT_OF_STOCK", "atencao") and returns the label.
func ParseStatus(s string) (Status, bool) {
	c := model.CanonicalStatus(s)
	for _, st := range Statuses {
		if model.CanonicalStatus(string(st)) == c {
			return st, true
		}
	}
	return "", false
}

func (s Status) String() string {
	return string(s)
}
