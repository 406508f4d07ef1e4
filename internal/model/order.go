package model

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	StatusReceived   OrderStatus = "RECEIVED"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusRefused    OrderStatus = "REFUSED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusReceived, StatusInProgress, StatusCompleted, StatusRefused, StatusCancelled:
		return true
	}
	return false
}

// Order is a customer order inquiry. Customer snapshot fields are captured
// at creation time and do not track later customer edits.
type Order struct {
	BaseModel
	CustomerID    *string         `db:"customer_id" json:"customer_id"`
	AddressID     *string         `db:"address_id" json:"address_id"`
	CustomerName  string          `db:"customer_name" json:"customer_name"`
	CustomerEmail string          `db:"customer_email" json:"customer_email"`
	CustomerPhone *string         `db:"customer_phone" json:"customer_phone"`
	Status        OrderStatus     `db:"status" json:"status"`
	Note          *string         `db:"note" json:"note"`
	AdminNote     *string         `db:"admin_note" json:"admin_note"`
	Recurrence    *string         `db:"recurrence" json:"recurrence"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
	Total         decimal.Decimal `db:"total" json:"total"`
	Currency      string          `db:"currency" json:"currency"`

	Customer *Customer   `db:"-" json:"customer,omitempty"`
	Address  *Address    `db:"-" json:"address,omitempty"`
	Items    []OrderItem `db:"-" json:"items"`
}

// OrderItem captures product, optional variant, quantity and the unit price
// at order time. The price is a snapshot independent of later catalog edits.
type OrderItem struct {
	ID          string          `db:"id" json:"id"`
	OrderID     string          `db:"order_id" json:"order_id"`
	ProductID   string          `db:"product_id" json:"product_id"`
	VariantID   *string         `db:"variant_id" json:"variant_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	VariantName *string         `db:"variant_name" json:"variant_name"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
}
