package model

type Category struct {
	BaseModel
	ParentID *string `db:"parent_id" json:"parent_id"`
	Name     string  `db:"name" json:"name"`
	Slug     string  `db:"slug" json:"slug"`
}

// ProductCategory is the product/category join row. The read side only ever
// surfaces the first linked category per product.
type ProductCategory struct {
	ProductID  string `db:"product_id"`
	CategoryID string `db:"category_id"`
	SortOrder  int    `db:"sort_order"`
}
