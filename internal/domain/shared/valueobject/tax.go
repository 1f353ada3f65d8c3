package valueobject

import "github.com/shopspring/decimal"

// IGVRate is the Peruvian general sales tax rate (18%). Item prices are
// tax-inclusive throughout the system, so the base is derived by dividing
// the gross amount rather than adding tax on top.
var IGVRate = decimal.NewFromFloat(0.18)

// igvDivisor is 1 + IGVRate, used to extract the base from a gross amount.
var igvDivisor = decimal.NewFromInt(1).Add(IGVRate)

// TaxBreakdown decomposes a tax-inclusive total into its components.
// Subtotal + Tax always equals Total exactly: the subtotal is rounded to
// two decimals and the tax carries any rounding remainder.
type TaxBreakdown struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// BaseAmount returns the tax-exclusive base of a gross amount, rounded to
// two decimals.
func BaseAmount(gross decimal.Decimal) decimal.Decimal {
	return gross.Div(igvDivisor).Round(2)
}

// ExtractIGV returns the IGV portion contained in a gross amount, computed
// as the remainder after subtracting the rounded base so the parts always
// sum back to the gross.
func ExtractIGV(gross decimal.Decimal) decimal.Decimal {
	return gross.Sub(BaseAmount(gross))
}

// BreakdownOf splits a gross amount into subtotal, tax, and total.
func BreakdownOf(gross decimal.Decimal) TaxBreakdown {
	base := BaseAmount(gross)
	return TaxBreakdown{
		Subtotal: base,
		Tax:      gross.Sub(base),
		Total:    gross,
	}
}
