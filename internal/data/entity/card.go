package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountCardType struct {
	ID          uuid.UUID       `db:"id"`
	Kind        string          `db:"kind"`
	Name        string          `db:"name"`
	Percentage  decimal.Decimal `db:"percentage"`
	Description string          `db:"description"`
	Active      bool            `db:"active"`
}

// UserDiscountCard links a user to a card product. Type is filled by
// the repository join.
type UserDiscountCard struct {
	ID             uuid.UUID `db:"id"`
	UserID         uuid.UUID `db:"user_id"`
	CardTypeID     uuid.UUID `db:"card_type_id"`
	CardNumber     string    `db:"card_number"`
	ExpirationDate time.Time `db:"expiration_date"`
	AddedAt        time.Time `db:"added_at"`

	Type DiscountCardType
}

// Expired reports whether the card is past its expiration date on the
// given day.
func (c *UserDiscountCard) Expired(onDay time.Time) bool {
	return c.ExpirationDate.Before(onDay)
}
