package product

import (
	"time"

	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/promotion"
	"github.com/shopspring/decimal"
)

type VisibilityView struct {
	Price       bool `json:"price"`
	Description bool `json:"description"`
	Images      bool `json:"images"`
	PackageSize bool `json:"package_size"`
	PDF         bool `json:"pdf"`
}

// View is the serialized product. Hidden fields are omitted entirely for
// non-admin callers, so clients cannot distinguish "hidden" from "absent".
type View struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Slug        string                 `json:"slug"`
	Price       *decimal.Decimal       `json:"price,omitempty"`
	Description *string                `json:"description,omitempty"`
	Images      []model.ProductImage   `json:"images,omitempty"`
	PackageSize *string                `json:"package_size,omitempty"`
	PDFURL      *string                `json:"pdf_url,omitempty"`
	SortOrder   int                    `json:"sort_order"`
	Stock       *int                   `json:"stock,omitempty"`
	IsActive    *bool                  `json:"is_active,omitempty"`
	Category    *model.Category        `json:"category,omitempty"`
	Sale        *promotion.Sale        `json:"sale,omitempty"`
	Variants    []model.ProductVariant `json:"variants,omitempty"`
	Visibility  *VisibilityView        `json:"visibility,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// NewView serializes a product for the given caller. Admins always receive
// every field plus the visibility flags themselves.
func NewView(p *model.Product, isAdmin bool, now time.Time) View {
	v := View{
		ID:        p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		SortOrder: p.SortOrder,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}

	if isAdmin || p.VisiblePrice {
		price := p.Price
		v.Price = &price
		// Sale pricing is only reported where the price itself is exposed.
		v.Sale = promotion.BestActive(p.Price, p.Promotions, now)
	}
	if isAdmin || p.VisibleDescription {
		v.Description = p.Description
	}
	if isAdmin || p.VisibleImages {
		v.Images = p.Images
	}
	if isAdmin || p.VisiblePackageSize {
		v.PackageSize = p.PackageSize
	}
	if isAdmin || p.VisiblePDF {
		v.PDFURL = p.PDFURL
	}

	// Only the first linked category is surfaced.
	if len(p.Categories) > 0 {
		cat := p.Categories[0]
		v.Category = &cat
	}

	if isAdmin {
		stock := p.Stock
		isActive := p.IsActive
		v.Stock = &stock
		v.IsActive = &isActive
		v.Variants = p.Variants
		v.Visibility = &VisibilityView{
			Price:       p.VisiblePrice,
			Description: p.VisibleDescription,
			Images:      p.VisibleImages,
			PackageSize: p.VisiblePackageSize,
			PDF:         p.VisiblePDF,
		}
	} else {
		for _, variant := range p.Variants {
			if variant.IsActive {
				v.Variants = append(v.Variants, variant)
			}
		}
	}

	return v
}
