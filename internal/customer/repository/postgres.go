package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/nortia/backoffice/internal/customer/dto"
	"github.com/nortia/backoffice/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	var customer model.Customer
	query := `SELECT * FROM customers WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &customer, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CustomerFilters) ([]model.Customer, int, error) {
	var customers []model.Customer
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Query != "" {
		conditions = append(conditions, "(name ILIKE :q OR email ILIKE :q OR phone ILIKE :q OR company ILIKE :q)")
		args["q"] = "%" + f.Query + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM customers" + whereClause
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

	query := "SELECT * FROM customers" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &customers, args)
	if err != nil {
		return nil, 0, err
	}

	return customers, count, nil
}

func (r *PGRepository) LoadAddresses(ctx context.Context, customer *model.Customer) error {
	query := `SELECT * FROM addresses WHERE customer_id = $1 ORDER BY created_at DESC`
	return r.DB.SelectContext(ctx, &customer.Addresses, query, customer.ID)
}
