package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Promotion is an advertised offer. Informational only, it does not
// feed the pricing computation.
type Promotion struct {
	ID          uuid.UUID       `db:"id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	DiscountPct decimal.Decimal `db:"discount_pct"`
	StartDate   time.Time       `db:"start_date"`
	EndDate     time.Time       `db:"end_date"`
	PromoCode   string          `db:"promo_code"`
	Active      bool            `db:"active"`
}
