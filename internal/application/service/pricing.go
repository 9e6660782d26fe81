package service

import "math"

// Quote is a pricing preview for a sale draft. All amounts are
// decimals. The discount field carries the clamped value: a discount
// exceeding the total is silently capped at the total so that
// total - discount == final_charged holds at all times.
type Quote struct {
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
	Total        float64 `json:"total"`
	Discount     float64 `json:"discount"`
	FinalCharged float64 `json:"final_charged"`
}

func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// computeQuoteCents applies the pricing rules on cent amounts: total is
// unit price times quantity, discount is clamped into [0, total], and
// the final charged amount is never negative.
func computeQuoteCents(unitPrice int64, quantity int, discount int64) (total, clamped, final int64) {
	total = unitPrice * int64(quantity)
	clamped = discount
	if clamped < 0 {
		clamped = 0
	}
	if clamped > total {
		clamped = total
	}
	final = total - clamped
	return total, clamped, final
}

// ComputeQuote prices a sale draft from decimal inputs
func ComputeQuote(unitPrice float64, quantity int, discount float64) Quote {
	total, clamped, final := computeQuoteCents(toCents(unitPrice), quantity, toCents(discount))
	return Quote{
		UnitPrice:    unitPrice,
		Quantity:     quantity,
		Total:        float64(total) / 100,
		Discount:     float64(clamped) / 100,
		FinalCharged: float64(final) / 100,
	}
}
