package walkin

import (
	"testing"

	"salonpos/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals_MixedLines(t *testing.T) {
	// One 500 service, two units of a 150 product, 100 discount, 600 paid.
	order := &domain.WalkinOrder{
		Discount:   100,
		AmountPaid: 600,
		ServiceLines: []domain.WalkinServiceLine{
			{ServiceName: "Haircut", Price: 500},
		},
		ProductLines: []domain.WalkinProductLine{
			{Name: "Argan Oil", Quantity: 2, UnitPrice: 150, LineTotal: 300},
		},
	}

	totals := ComputeTotals(order)

	assert.Equal(t, 800.0, totals.Subtotal)
	assert.Equal(t, 100.0, totals.Discount)
	assert.Equal(t, 700.0, totals.Total)
	assert.Equal(t, 100.0, totals.DueAmount)
	assert.Equal(t, domain.PaymentPartially, totals.PaymentState)
}

func TestComputeTotals_SeatLines(t *testing.T) {
	order := &domain.WalkinOrder{
		SeatLines: []domain.WalkinSeatLine{
			{DurationHours: 3, HourlyRate: 200, LineTotal: 600},
		},
	}

	totals := ComputeTotals(order)

	assert.Equal(t, 600.0, totals.Subtotal)
	assert.Equal(t, 600.0, totals.Total)
	assert.Equal(t, domain.PaymentPending, totals.PaymentState)
}

func TestComputeTotals_DiscountClampedToSubtotal(t *testing.T) {
	order := &domain.WalkinOrder{
		Discount:     500,
		ServiceLines: []domain.WalkinServiceLine{{Price: 300}},
	}

	totals := ComputeTotals(order)

	assert.Equal(t, 300.0, totals.Discount)
	assert.Equal(t, 0.0, totals.Total)
	// nothing due on a zero total, even with nothing paid
	assert.Equal(t, domain.PaymentFull, totals.PaymentState)
}

func TestComputeTotals_OverpaymentClampsDue(t *testing.T) {
	order := &domain.WalkinOrder{
		AmountPaid:   1000,
		ServiceLines: []domain.WalkinServiceLine{{Price: 700}},
	}

	totals := ComputeTotals(order)

	assert.Equal(t, 0.0, totals.DueAmount)
	assert.Equal(t, domain.PaymentFull, totals.PaymentState)
}

func TestComputeTotals_EmptyOrder(t *testing.T) {
	totals := ComputeTotals(&domain.WalkinOrder{})

	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Total)
	assert.Equal(t, domain.PaymentFull, totals.PaymentState)
}

func TestComputeTotals_Rounding(t *testing.T) {
	order := &domain.WalkinOrder{
		ServiceLines: []domain.WalkinServiceLine{
			{Price: 33.335},
			{Price: 33.335},
		},
	}

	totals := ComputeTotals(order)

	assert.Equal(t, 66.67, totals.Subtotal)
}
