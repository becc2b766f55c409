package domain

import "github.com/shopspring/decimal"

// BaseAllowanceM3 is the consumption covered by the zone's base tariff.
// Consumption above it is billed per cubic meter at the excess rate.
const BaseAllowanceM3 = 10

// ComputeSubtotal derives the pre-adjustment charge from consumption and
// the tariff pair. The base tariff is a flat fee for the allowance; the
// excess tariff applies per m3 beyond it.
func ComputeSubtotal(consumption, baseTariff, excessTariff decimal.Decimal) decimal.Decimal {
	excess := consumption.Sub(decimal.NewFromInt(BaseAllowanceM3))
	if excess.IsNegative() {
		excess = decimal.Zero
	}
	return baseTariff.Add(excess.Mul(excessTariff)).Round(2)
}

// ComputeTotal applies discounts, surcharges and taxes to a subtotal.
func ComputeTotal(subtotal, discounts, surcharges, taxes decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discounts).Add(surcharges).Add(taxes).Round(2)
}
