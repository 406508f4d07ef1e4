package dto

import "github.com/shopspring/decimal"

type ImageInput struct {
	URL       string `json:"url" validate:"required"`
	SortOrder int    `json:"sort_order"`
}

type VariantInput struct {
	ID         *string         `json:"id"`
	Name       string          `json:"name" validate:"required"`
	SKU        *string         `json:"sku"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock" validate:"gte=0"`
	SortOrder  int             `json:"sort_order"`
	IsActive   *bool           `json:"is_active"`
	CoverImage *string         `json:"cover_image"`
}

type VisibilityInput struct {
	Price       *bool `json:"price"`
	Description *bool `json:"description"`
	Images      *bool `json:"images"`
	PackageSize *bool `json:"package_size"`
	PDF         *bool `json:"pdf"`
}

type CreateProductInput struct {
	Name        string           `json:"name" validate:"required"`
	Description *string          `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	Stock       int              `json:"stock" validate:"gte=0"`
	IsActive    *bool            `json:"is_active"`
	SortOrder   int              `json:"sort_order"`
	PackageSize *string          `json:"package_size"`
	PDFURL      *string          `json:"pdf_url"`
	Visibility  *VisibilityInput `json:"visibility"`
	Images      []ImageInput     `json:"images" validate:"dive"`
	CategoryIDs []string         `json:"category_ids"`
	Variants    []VariantInput   `json:"variants" validate:"dive"`
}

type UpdateProductInput struct {
	ID          string           `json:"-"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	IsActive    *bool            `json:"is_active"`
	SortOrder   *int             `json:"sort_order"`
	PackageSize *string          `json:"package_size"`
	PDFURL      *string          `json:"pdf_url"`
	Visibility  *VisibilityInput `json:"visibility"`
	Images      []ImageInput     `json:"images" validate:"dive"`
	CategoryIDs []string         `json:"category_ids"`
	Variants    []VariantInput   `json:"variants" validate:"dive"`
}
