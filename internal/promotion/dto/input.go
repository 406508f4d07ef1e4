package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreatePromotionInput struct {
	ProductID   string           `json:"-"`
	Title       string           `json:"title" validate:"required"`
	Description *string          `json:"description"`
	PercentOff  *int             `json:"percent_off" validate:"omitempty,gte=1,lte=90"`
	PriceOff    *decimal.Decimal `json:"price_off"`
	StartsAt    time.Time        `json:"starts_at" validate:"required"`
	EndsAt      time.Time        `json:"ends_at" validate:"required"`
	IsActive    *bool            `json:"is_active"`
}

type UpdatePromotionInput struct {
	ID          string           `json:"-"`
	ProductID   string           `json:"-"`
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	PercentOff  *int             `json:"percent_off" validate:"omitempty,gte=1,lte=90"`
	PriceOff    *decimal.Decimal `json:"price_off"`
	StartsAt    *time.Time       `json:"starts_at"`
	EndsAt      *time.Time       `json:"ends_at"`
	IsActive    *bool            `json:"is_active"`
}
