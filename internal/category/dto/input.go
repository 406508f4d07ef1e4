package dto

type CreateCategoryInput struct {
	Name     string  `json:"name" validate:"required"`
	ParentID *string `json:"parent_id"`
}

type UpdateCategoryInput struct {
	ID       string  `json:"-"`
	Name     string  `json:"name" validate:"required"`
	ParentID *string `json:"parent_id"`
}
