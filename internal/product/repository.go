package product

import (
	"context"
	"database/sql"
	"errors"

	"localwear-be/internal/db"
	"localwear-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, p *Product) (*Product, error)
	UpdateStock(ctx context.Context, id uint, quantityInStock int) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

const productColumns = `id, name, description, price, category, image_url, sizes, quantity_in_stock, created_at, updated_at`

func scanProduct(row interface{ Scan(dest ...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&p.ImageURL, pq.Array(&p.Sizes), &p.QuantityInStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)

	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := make([]*Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	p, err := scanProduct(db.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load product",
			zap.String("layer", "repository"),
			zap.Uint("product_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) (*Product, error) {
	err := db.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, category, image_url, sizes, quantity_in_stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, price, created_at, updated_at
	`, p.Name, p.Description, p.Price, p.Category, p.ImageURL, pq.Array(p.Sizes), p.QuantityInStock,
	).Scan(&p.ID, &p.Price, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		logger.FromCtx(ctx).Error("failed to insert product",
			zap.String("layer", "repository"),
			zap.String("name", p.Name),
			zap.Error(err),
		)
		return nil, err
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, p *Product) (*Product, error) {
	err := db.Conn(ctx, r.db).QueryRowContext(ctx, `
		UPDATE products
		SET name = $2,
			description = $3,
			price = $4,
			category = $5,
			image_url = $6,
			sizes = $7,
			quantity_in_stock = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING price, updated_at
	`, p.ID, p.Name, p.Description, p.Price, p.Category, p.ImageURL, pq.Array(p.Sizes), p.QuantityInStock,
	).Scan(&p.Price, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update product",
			zap.String("layer", "repository"),
			zap.Uint("product_id", p.ID),
			zap.Error(err),
		)
		return nil, err
	}
	return p, nil
}

// UpdateStock persists an already-computed stock level for one product.
func (r *repository) UpdateStock(ctx context.Context, id uint, quantityInStock int) error {
	if quantityInStock < 0 {
		return ErrNegativeStock
	}

	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE products
		SET quantity_in_stock = $1, updated_at = NOW()
		WHERE id = $2
	`, quantityInStock, id)
	if err != nil {
		if db.IsCheckViolation(err) {
			return ErrNegativeStock
		}
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	err := db.Conn(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}
