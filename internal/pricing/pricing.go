// Package pricing derives cart totals and the shipment feature vector.
// All currency arithmetic goes through decimals; figures are rounded to
// two places, half away from zero.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/ncordova/vinoteca/internal/domain"
)

// Breakdown summarizes a cart for reconciliation and shipping estimation.
type Breakdown struct {
	// ItemCount is the number of distinct cart lines.
	ItemCount int

	// TotalUnits is the sum of line quantities.
	TotalUnits int

	// TotalVolumeML is the summed bottle volume across all units.
	TotalVolumeML int

	// AverageUnitPrice is Subtotal / TotalUnits, rounded to 2 decimals.
	AverageUnitPrice float64

	// Subtotal is the sum of price*quantity, rounded to 2 decimals.
	Subtotal float64
}

// Calculate computes the Breakdown for a cart. Side-effect free and
// independent of line order.
func Calculate(items []domain.CartLineItem) (*Breakdown, error) {
	const op = "pricing.calculate"

	if len(items) == 0 {
		return nil, domain.Invalid(op, "El carrito no puede estar vacío")
	}

	subtotal := decimal.Zero
	totalUnits := 0
	totalVolume := 0

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, domain.Errorf(domain.EINVALID, op, "cantidad inválida para %q: %d", item.Name, item.Quantity)
		}
		if item.UnitPrice < 0 {
			return nil, domain.Errorf(domain.EINVALID, op, "precio inválido para %q: %v", item.Name, item.UnitPrice)
		}

		qty := decimal.NewFromInt(int64(item.Quantity))
		subtotal = subtotal.Add(decimal.NewFromFloat(item.UnitPrice).Mul(qty))

		size := item.SizeML
		if size == 0 {
			size = domain.DefaultBottleSizeML
		}
		totalUnits += int(item.Quantity)
		totalVolume += int(size) * int(item.Quantity)
	}

	subtotal = subtotal.Round(2)
	avg := subtotal.Div(decimal.NewFromInt(int64(totalUnits))).Round(2)

	return &Breakdown{
		ItemCount:        len(items),
		TotalUnits:       totalUnits,
		TotalVolumeML:    totalVolume,
		AverageUnitPrice: avg.InexactFloat64(),
		Subtotal:         subtotal.InexactFloat64(),
	}, nil
}

// Round2 rounds a currency amount to two decimal places, half away from
// zero. Shared by total reconciliation and promotion pricing.
func Round2(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}
