package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/nortia/backoffice/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Promotion) error {
	query := `
        INSERT INTO promotions (
            id, product_id, title, description, percent_off, price_off,
            starts_at, ends_at, is_active, created_at, updated_at
        )
        VALUES (
            :id, :product_id, :title, :description, :percent_off, :price_off,
            :starts_at, :ends_at, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Promotion, error) {
	var promo model.Promotion
	query := `SELECT * FROM promotions WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &promo, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &promo, nil
}

func (r *PGRepository) FindByProduct(ctx context.Context, productID string) ([]model.Promotion, error) {
	var promos []model.Promotion
	query := `SELECT * FROM promotions WHERE product_id = $1 ORDER BY starts_at DESC`
	err := r.DB.SelectContext(ctx, &promos, query, productID)
	return promos, err
}

func (r *PGRepository) Update(ctx context.Context, p *model.Promotion) error {
	query := `
        UPDATE promotions
        SET title = :title,
            description = :description,
            percent_off = :percent_off,
            price_off = :price_off,
            starts_at = :starts_at,
            ends_at = :ends_at,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM promotions WHERE id = $1", id)
	return err
}
