package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/product/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO products (
            id, name, slug, description, price, stock, is_active, sort_order,
            package_size, pdf_url, visible_price, visible_description,
            visible_images, visible_package_size, visible_pdf,
            created_at, updated_at
        )
        VALUES (
            :id, :name, :slug, :description, :price, :stock, :is_active, :sort_order,
            :package_size, :pdf_url, :visible_price, :visible_description,
            :visible_images, :visible_package_size, :visible_pdf,
            :created_at, :updated_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
		return err
	}

	if err := r.insertRelations(ctx, tx, p); err != nil {
		return err
	}
	if err := r.syncVariants(ctx, tx, p); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        UPDATE products
        SET name = :name,
            slug = :slug,
            description = :description,
            price = :price,
            stock = :stock,
            is_active = :is_active,
            sort_order = :sort_order,
            package_size = :package_size,
            pdf_url = :pdf_url,
            visible_price = :visible_price,
            visible_description = :visible_description,
            visible_images = :visible_images,
            visible_package_size = :visible_package_size,
            visible_pdf = :visible_pdf,
            updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
		return err
	}

	// Images and category links are replaced wholesale; nothing references
	// them. Variants are upserted in place instead: a delete-and-reinsert
	// would fire order_items' ON DELETE SET NULL and sever historical item
	// links even when the variant ids survive.
	if _, err := tx.ExecContext(ctx, "DELETE FROM product_images WHERE product_id = $1", p.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM product_categories WHERE product_id = $1", p.ID); err != nil {
		return err
	}

	if err := r.insertRelations(ctx, tx, p); err != nil {
		return err
	}
	if err := r.syncVariants(ctx, tx, p); err != nil {
		return err
	}

	return tx.Commit()
}

// syncVariants upserts the product's variants by id and removes only the
// ones absent from the new set.
func (r *PGRepository) syncVariants(ctx context.Context, tx *sqlx.Tx, p *model.Product) error {
	keep := make([]string, 0, len(p.Variants))
	for i := range p.Variants {
		v := &p.Variants[i]
		v.ProductID = p.ID
		keep = append(keep, v.ID)
		_, err := tx.NamedExecContext(ctx, `
            INSERT INTO product_variants (
                id, product_id, name, sku, price, stock, sort_order,
                is_active, cover_image, created_at, updated_at
            )
            VALUES (
                :id, :product_id, :name, :sku, :price, :stock, :sort_order,
                :is_active, :cover_image, :created_at, :updated_at
            )
            ON CONFLICT (id) DO UPDATE
            SET name = EXCLUDED.name,
                sku = EXCLUDED.sku,
                price = EXCLUDED.price,
                stock = EXCLUDED.stock,
                sort_order = EXCLUDED.sort_order,
                is_active = EXCLUDED.is_active,
                cover_image = EXCLUDED.cover_image,
                updated_at = EXCLUDED.updated_at
        `, v)
		if err != nil {
			return err
		}
	}

	if len(keep) == 0 {
		_, err := tx.ExecContext(ctx, "DELETE FROM product_variants WHERE product_id = $1", p.ID)
		return err
	}

	query, args, err := sqlx.In("DELETE FROM product_variants WHERE product_id = ? AND id NOT IN (?)", p.ID, keep)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, tx.Rebind(query), args...)
	return err
}

func (r *PGRepository) insertRelations(ctx context.Context, tx *sqlx.Tx, p *model.Product) error {
	for i := range p.Images {
		img := &p.Images[i]
		img.ProductID = p.ID
		_, err := tx.NamedExecContext(ctx, `
            INSERT INTO product_images (id, product_id, url, sort_order)
            VALUES (:id, :product_id, :url, :sort_order)
        `, img)
		if err != nil {
			return err
		}
	}

	for i, cat := range p.Categories {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO product_categories (product_id, category_id, sort_order)
            VALUES ($1, $2, $3)
        `, p.ID, cat.ID, i)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if !f.IncludeInactive {
		conditions = append(conditions, "is_active = TRUE")
	}
	if f.CategoryID != "" {
		conditions = append(conditions, "id IN (SELECT product_id FROM product_categories WHERE category_id = :category_id)")
		args["category_id"] = f.CategoryID
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR description ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM products" + whereClause
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

	// Whitelist sort fields; created_at DESC is the stable tiebreak.
	orderBy := "sort_order ASC"
	switch f.SortBy {
	case "name":
		orderBy = "name"
	case "price":
		orderBy = "price"
	case "sort_order", "":
		orderBy = "sort_order"
	}
	if strings.ToLower(f.SortOrder) == "desc" {
		orderBy += " DESC"
	} else {
		orderBy += " ASC"
	}
	orderBy += ", created_at DESC"

	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s", whereClause, orderBy)
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &products, args)
	if err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *PGRepository) AttachRelations(ctx context.Context, products []*model.Product) error {
	if len(products) == 0 {
		return nil
	}

	byID := make(map[string]*model.Product, len(products))
	ids := make([]string, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	// Images
	query, args, err := sqlx.In(`SELECT * FROM product_images WHERE product_id IN (?) ORDER BY sort_order ASC`, ids)
	if err != nil {
		return err
	}
	var images []model.ProductImage
	if err := r.DB.SelectContext(ctx, &images, r.DB.Rebind(query), args...); err != nil {
		return err
	}
	for _, img := range images {
		p := byID[img.ProductID]
		p.Images = append(p.Images, img)
	}

	// Categories via join rows
	query, args, err = sqlx.In(`
        SELECT c.id, c.parent_id, c.name, c.slug, c.created_at, c.updated_at, pc.product_id AS product_id
        FROM product_categories pc
        JOIN categories c ON c.id = pc.category_id
        WHERE pc.product_id IN (?)
        ORDER BY pc.sort_order ASC
    `, ids)
	if err != nil {
		return err
	}
	var catRows []struct {
		model.Category
		ProductID string `db:"product_id"`
	}
	if err := r.DB.SelectContext(ctx, &catRows, r.DB.Rebind(query), args...); err != nil {
		return err
	}
	for _, row := range catRows {
		p := byID[row.ProductID]
		p.Categories = append(p.Categories, row.Category)
	}

	// Promotions
	query, args, err = sqlx.In(`SELECT * FROM promotions WHERE product_id IN (?) ORDER BY starts_at DESC`, ids)
	if err != nil {
		return err
	}
	var promos []model.Promotion
	if err := r.DB.SelectContext(ctx, &promos, r.DB.Rebind(query), args...); err != nil {
		return err
	}
	for _, promo := range promos {
		p := byID[promo.ProductID]
		p.Promotions = append(p.Promotions, promo)
	}

	// Variants
	query, args, err = sqlx.In(`SELECT * FROM product_variants WHERE product_id IN (?) ORDER BY sort_order ASC`, ids)
	if err != nil {
		return err
	}
	var variants []model.ProductVariant
	if err := r.DB.SelectContext(ctx, &variants, r.DB.Rebind(query), args...); err != nil {
		return err
	}
	for _, v := range variants {
		p := byID[v.ProductID]
		p.Variants = append(p.Variants, v)
	}

	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	// Images, category links, variants and promotions cascade.
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}

func (r *PGRepository) Archive(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE products SET is_active = FALSE, updated_at = now() WHERE id = $1", id)
	return err
}

func (r *PGRepository) IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE slug = $1`
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

func (r *PGRepository) CountOrderItemRefs(ctx context.Context, productID string) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM order_items WHERE product_id = $1", productID)
	return count, err
}

func (r *PGRepository) FindVariantByID(ctx context.Context, id string) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	query := `SELECT * FROM product_variants WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &variant, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}
