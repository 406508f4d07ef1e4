package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name        string          `db:"name" json:"name"`
	Slug        string          `db:"slug" json:"slug"`
	Description *string         `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Stock       int             `db:"stock" json:"stock"`
	IsActive    bool            `db:"is_active" json:"is_active"`
	SortOrder   int             `db:"sort_order" json:"sort_order"`
	PackageSize *string         `db:"package_size" json:"package_size"`
	PDFURL      *string         `db:"pdf_url" json:"pdf_url"`

	// Per-field exposure flags for non-admin callers. Price defaults to
	// hidden, everything else to shown.
	VisiblePrice       bool `db:"visible_price" json:"visible_price"`
	VisibleDescription bool `db:"visible_description" json:"visible_description"`
	VisibleImages      bool `db:"visible_images" json:"visible_images"`
	VisiblePackageSize bool `db:"visible_package_size" json:"visible_package_size"`
	VisiblePDF         bool `db:"visible_pdf" json:"visible_pdf"`

	Images     []ProductImage   `db:"-" json:"images"`
	Categories []Category       `db:"-" json:"categories"`
	Promotions []Promotion      `db:"-" json:"promotions"`
	Variants   []ProductVariant `db:"-" json:"variants"`
}

type ProductImage struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"product_id"`
	URL       string `db:"url" json:"url"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

type ProductVariant struct {
	BaseModel
	ProductID  string          `db:"product_id" json:"product_id"`
	Name       string          `db:"name" json:"name"`
	SKU        *string         `db:"sku" json:"sku"`
	Price      decimal.Decimal `db:"price" json:"price"`
	Stock      int             `db:"stock" json:"stock"`
	SortOrder  int             `db:"sort_order" json:"sort_order"`
	IsActive   bool            `db:"is_active" json:"is_active"`
	CoverImage *string         `db:"cover_image" json:"cover_image"`
	Images     []string        `db:"-" json:"images"`
}
