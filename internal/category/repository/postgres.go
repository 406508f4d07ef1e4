package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/nortia/backoffice/internal/category/dto"
	"github.com/nortia/backoffice/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, parent_id, name, slug, created_at, updated_at)
        VALUES (:id, :parent_id, :name, :slug, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	query := `SELECT * FROM categories WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	var categories []model.Category
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ParentID != nil {
		if *f.ParentID == "" {
			conditions = append(conditions, "parent_id IS NULL")
		} else {
			conditions = append(conditions, "parent_id = :parent_id")
			args["parent_id"] = *f.ParentID
		}
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM categories" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM categories" + whereClause + " ORDER BY name ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &categories, args)
	if err != nil {
		return nil, 0, err
	}

	return categories, count, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET parent_id = :parent_id,
            name = :name,
            slug = :slug,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	// FK from children is SET NULL, so former children become roots.
	_, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	return err
}

func (r *PGRepository) IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM categories WHERE slug = $1`
	args := []interface{}{slug}
	if excludeID != "" {
		query += ` AND id != $2`
		args = append(args, excludeID)
	}

	err := r.DB.GetContext(ctx, &count, query, args...)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
