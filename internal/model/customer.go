package model

type Customer struct {
	BaseModel
	Email           string  `db:"email" json:"email"`
	Name            string  `db:"name" json:"name"`
	Phone           *string `db:"phone" json:"phone"`
	Company         *string `db:"company" json:"company"`
	MarketingOptIn  bool    `db:"marketing_opt_in" json:"marketing_opt_in"`
	Tags            *string `db:"tags" json:"tags"`
	Note            *string `db:"note" json:"note"`

	Addresses []Address `db:"-" json:"addresses,omitempty"`
}

type Address struct {
	BaseModel
	CustomerID *string `db:"customer_id" json:"customer_id"`
	Line1      string  `db:"line1" json:"line1"`
	Line2      *string `db:"line2" json:"line2"`
	District   *string `db:"district" json:"district"`
	City       string  `db:"city" json:"city"`
	State      *string `db:"state" json:"state"`
	PostalCode *string `db:"postal_code" json:"postal_code"`
	Country    string  `db:"country" json:"country"`
}
