package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/order"
	"github.com/nortia/backoffice/internal/order/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateGraph(ctx context.Context, order *model.Order, customer *model.Customer, address *model.Address) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Upsert the customer by email so repeat inquiries reuse the row.
	var customerID string
	err = tx.GetContext(ctx, &customerID, `
        INSERT INTO customers (id, email, name, phone, company, marketing_opt_in, created_at, updated_at)
        VALUES ($1, lower($2), $3, $4, $5, $6, now(), now())
        ON CONFLICT (email) DO UPDATE
        SET name = EXCLUDED.name,
            phone = COALESCE(EXCLUDED.phone, customers.phone),
            company = COALESCE(EXCLUDED.company, customers.company),
            marketing_opt_in = EXCLUDED.marketing_opt_in,
            updated_at = now()
        RETURNING id
    `, customer.ID, customer.Email, customer.Name, customer.Phone, customer.Company, customer.MarketingOptIn)
	if err != nil {
		return err
	}
	order.CustomerID = &customerID

	if address != nil {
		address.CustomerID = &customerID
		_, err = tx.NamedExecContext(ctx, `
            INSERT INTO addresses (id, customer_id, line1, line2, district, city, state, postal_code, country, created_at, updated_at)
            VALUES (:id, :customer_id, :line1, :line2, :district, :city, :state, :postal_code, :country, :created_at, :updated_at)
        `, address)
		if err != nil {
			return err
		}
		order.AddressID = &address.ID
	}

	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO orders (
            id, customer_id, address_id, customer_name, customer_email, customer_phone,
            status, note, admin_note, recurrence, subtotal, total, currency,
            created_at, updated_at
        )
        VALUES (
            :id, :customer_id, :address_id, :customer_name, :customer_email, :customer_phone,
            :status, :note, :admin_note, :recurrence, :subtotal, :total, :currency,
            :created_at, :updated_at
        )
    `, order)
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		_, err = tx.NamedExecContext(ctx, `
            INSERT INTO order_items (id, order_id, product_id, variant_id, product_name, variant_name, quantity, unit_price)
            VALUES (:id, :order_id, :product_id, :variant_id, :product_name, :variant_name, :quantity, :unit_price)
        `, item)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	query := `SELECT * FROM orders WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &order, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	var orders []model.Order
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.Query != "" {
		conditions = append(conditions, "(id::text ILIKE :q OR customer_name ILIKE :q OR customer_email ILIKE :q OR customer_phone ILIKE :q)")
		args["q"] = "%" + f.Query + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM orders" + whereClause
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

	query := "SELECT * FROM orders" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &orders, args)
	if err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}

func (r *PGRepository) LoadItems(ctx context.Context, orders []*model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[string]*model.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	query, args, err := sqlx.In(`SELECT * FROM order_items WHERE order_id IN (?)`, ids)
	if err != nil {
		return err
	}
	var items []model.OrderItem
	if err := r.DB.SelectContext(ctx, &items, r.DB.Rebind(query), args...); err != nil {
		return err
	}
	for _, item := range items {
		o := byID[item.OrderID]
		o.Items = append(o.Items, item)
	}
	return nil
}

func (r *PGRepository) LoadRelated(ctx context.Context, order *model.Order) error {
	if err := r.LoadItems(ctx, []*model.Order{order}); err != nil {
		return err
	}

	if order.CustomerID != nil {
		var customer model.Customer
		err := r.DB.GetContext(ctx, &customer, `SELECT * FROM customers WHERE id = $1`, *order.CustomerID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if err == nil {
			order.Customer = &customer
		}
	}

	if order.AddressID != nil {
		var address model.Address
		err := r.DB.GetContext(ctx, &address, `SELECT * FROM addresses WHERE id = $1`, *order.AddressID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if err == nil {
			order.Address = &address
		}
	}

	return nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id string, next model.OrderStatus) (model.OrderStatus, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	// The row lock serializes concurrent transitions on the same order, so
	// the stock effect is always computed from the committed status.
	var o model.Order
	err = tx.GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", order.ErrOrderNotFound
		}
		return "", err
	}

	prev := o.Status
	if prev == next {
		return prev, tx.Commit()
	}

	var items []model.OrderItem
	if err := tx.SelectContext(ctx, &items, `SELECT * FROM order_items WHERE order_id = $1`, id); err != nil {
		return "", err
	}
	deltas := order.StockDeltas(items, order.EffectFor(prev, next))

	for _, d := range deltas {
		var res sql.Result
		if d.VariantID != nil {
			res, err = tx.ExecContext(ctx, `
                UPDATE product_variants
                SET stock = stock + $1, updated_at = now()
                WHERE id = $2 AND stock + $1 >= 0
            `, d.Delta, *d.VariantID)
		} else {
			res, err = tx.ExecContext(ctx, `
                UPDATE products
                SET stock = stock + $1, updated_at = now()
                WHERE id = $2 AND stock + $1 >= 0
            `, d.Delta, d.ProductID)
		}
		if err != nil {
			return "", err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return "", err
		}
		if affected == 0 {
			return "", order.ErrInsufficientStock
		}
	}

	_, err = tx.ExecContext(ctx, `
        UPDATE orders SET status = $1, updated_at = now() WHERE id = $2
    `, next, id)
	if err != nil {
		return "", err
	}

	return prev, tx.Commit()
}

func (r *PGRepository) UpdateNotes(ctx context.Context, id string, note, adminNote *string) error {
	_, err := r.DB.ExecContext(ctx, `
        UPDATE orders
        SET note = COALESCE($1, note),
            admin_note = COALESCE($2, admin_note),
            updated_at = now()
        WHERE id = $3
    `, note, adminNote, id)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	// Items cascade.
	_, err := r.DB.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	return err
}

func (r *PGRepository) FindProductByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.DB.GetContext(ctx, &product, `SELECT * FROM products WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindVariantByID(ctx context.Context, id string) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	err := r.DB.GetContext(ctx, &variant, `SELECT * FROM product_variants WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}
