package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion is a time-windowed discount on one product. Exactly one of
// PercentOff / PriceOff is meaningful at evaluation time.
type Promotion struct {
	BaseModel
	ProductID   string           `db:"product_id" json:"product_id"`
	Title       string           `db:"title" json:"title"`
	Description *string          `db:"description" json:"description"`
	PercentOff  *int             `db:"percent_off" json:"percent_off"`
	PriceOff    *decimal.Decimal `db:"price_off" json:"price_off"`
	StartsAt    time.Time        `db:"starts_at" json:"starts_at"`
	EndsAt      time.Time        `db:"ends_at" json:"ends_at"`
	IsActive    bool             `db:"is_active" json:"is_active"`
}
