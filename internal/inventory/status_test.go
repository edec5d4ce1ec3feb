package inventory

import (
	"slices"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		quantity, minStock int
		want               Status
	}{
		{0, 100, StatusOutOfStock},
		{1, 100, StatusCritical},
		{50, 100, StatusCritical},
		{51, 100, StatusAttention},
		{100, 100, StatusAttention},
		{101, 100, StatusOK},

		// minStock of zero keeps a critical threshold of one
		{0, 0, StatusOutOfStock},
		{1, 0, StatusCritical},
		{2, 0, StatusOK},

		// odd minimums use a fractional threshold
		{50, 101, StatusCritical},
		{51, 101, StatusAttention},
		{1, 1, StatusCritical},
		{2, 1, StatusOK},
		{1, 3, StatusCritical},
		{2, 3, StatusAttention},

		{-5, 10, StatusOutOfStock},
		{1500, 500, StatusOK},
		{75, 100, StatusAttention},
	}

	for _, tt := range tests {
		got := Classify(tt.quantity, tt.minStock)
		if got != tt.want {
			t.Errorf("Classify(%d, %d) = %q, want %q", tt.quantity, tt.minStock, got, tt.want)
		}
	}
}

func TestClassify_Total(t *testing.T) {
	// Every pair maps to exactly one label and the ordered predicates never
	// overlap.
	for minStock := 0; minStock <= 60; minStock++ {
		for quantity := 0; quantity <= 80; quantity++ {
			got := Classify(quantity, minStock)
			if !slices.Contains(Statuses, got) {
				t.Fatalf("Classify(%d, %d) returned unknown label %q", quantity, minStock, got)
			}

			matches := 0
			out := quantity <= 0
			critical := !out && float64(quantity) <= criticalThreshold(minStock)
			attention := !out && !critical && quantity <= minStock
			ok := !out && !critical && !attention
			for _, m := range []bool{out, critical, attention, ok} {
				if m {
					matches++
				}
			}
			if matches != 1 {
				t.Fatalf("Classify(%d, %d): %d predicates matched", quantity, minStock, matches)
			}
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   Status
		wantOK bool
	}{
		{"OK", StatusOK, true},
		{"Atenção", StatusAttention, true},
		{"ATENCAO", StatusAttention, true},
		{"attention", StatusAttention, true},
		{"Crítico", StatusCritical, true},
		{"CRITICAL", StatusCritical, true},
		{"Sem estoque", StatusOutOfStock, true},
		{"OUT_OF_STOCK", StatusOutOfStock, true},
		{"sem-estoque", StatusOutOfStock, true},
		{"", "", false},
		{"unknown", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseStatus(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseStatus(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
