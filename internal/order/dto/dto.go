package dto

import "github.com/shopspring/decimal"

type OrderFilters struct {
	Query    string `json:"q"`
	Status   string `json:"status"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type CustomerInput struct {
	Name           string  `json:"name" validate:"required,max=200"`
	Email          string  `json:"email" validate:"required,email"`
	Phone          *string `json:"phone"`
	Company        *string `json:"company"`
	MarketingOptIn bool    `json:"marketing_opt_in"`
}

type AddressInput struct {
	Line1      string  `json:"line1" validate:"required"`
	Line2      *string `json:"line2"`
	District   *string `json:"district"`
	City       string  `json:"city" validate:"required"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Country    string  `json:"country"`
}

// ItemInput is one requested line. UnitPrice is optional; when omitted the
// price is backfilled from the variant, else the product.
type ItemInput struct {
	ProductID string           `json:"product_id" validate:"required,uuid4"`
	VariantID *string          `json:"variant_id" validate:"omitempty,uuid4"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

type CreateOrderInput struct {
	Customer   CustomerInput `json:"customer" validate:"required"`
	Address    *AddressInput `json:"address"`
	Items      []ItemInput   `json:"items" validate:"required,min=1,dive"`
	Note       *string       `json:"note"`
	Recurrence *string       `json:"recurrence"`
}

type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

type UpdateNotesInput struct {
	Note      *string `json:"note"`
	AdminNote *string `json:"admin_note"`
}

// StockDelta is one signed stock adjustment produced by a status
// transition. VariantID nil targets the product row.
type StockDelta struct {
	ProductID string
	VariantID *string
	Delta     int
}
