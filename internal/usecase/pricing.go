package usecase

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputePrice returns the discount amount and the total for seats
// tickets at unitPrice with a percentage reduction. Pure function,
// exact decimal arithmetic throughout.
//
//	base     = unitPrice * seats
//	discount = base * percentage / 100
//	total    = base - discount
func ComputePrice(unitPrice decimal.Decimal, seats int, percentage decimal.Decimal) (discount, total decimal.Decimal) {
	base := unitPrice.Mul(decimal.NewFromInt(int64(seats)))
	discount = base.Mul(percentage).Div(hundred).Round(2)
	total = base.Sub(discount)
	return discount, total
}
