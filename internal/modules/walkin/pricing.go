package walkin

import (
	"math"

	"salonpos/internal/domain"
)

// Totals is the priced view of an order. It is recomputed from the order's
// lines and payment fields on every read and never stored, so it cannot
// desync from its inputs.
type Totals struct {
	Subtotal     float64             `json:"subtotal"`
	Discount     float64             `json:"discount"`
	Total        float64             `json:"total"`
	AmountPaid   float64             `json:"amount_paid"`
	DueAmount    float64             `json:"due_amount"`
	PaymentState domain.PaymentState `json:"payment_status"`
}

// ComputeTotals reduces an order to its financial summary. Pure function,
// no side effects. The operator discount is an absolute amount clamped to
// [0, subtotal].
func ComputeTotals(o *domain.WalkinOrder) Totals {
	var subtotal float64
	for _, l := range o.ServiceLines {
		subtotal += l.Price
	}
	for _, l := range o.ProductLines {
		subtotal += l.LineTotal
	}
	for _, l := range o.SeatLines {
		subtotal += l.LineTotal
	}
	subtotal = round2(subtotal)

	discount := o.Discount
	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}

	total := round2(subtotal - discount)

	due := round2(total - o.AmountPaid)
	if due < 0 {
		due = 0
	}

	return Totals{
		Subtotal:     subtotal,
		Discount:     discount,
		Total:        total,
		AmountPaid:   o.AmountPaid,
		DueAmount:    due,
		PaymentState: paymentState(total, o.AmountPaid, due),
	}
}

func paymentState(total, paid, due float64) domain.PaymentState {
	switch {
	case due == 0:
		return domain.PaymentFull
	case paid > 0 && paid < total:
		return domain.PaymentPartially
	default:
		return domain.PaymentPending
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
