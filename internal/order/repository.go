package order

import (
	"context"
	"database/sql"
	"errors"

	"localwear-be/internal/db"
	"localwear-be/internal/logger"
	"localwear-be/internal/product"
	"localwear-be/internal/user"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	// Create inserts the order and its items; callers wrap it in a transaction.
	Create(ctx context.Context, o *Order) (*Order, error)
	GetByID(ctx context.Context, id uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uint, status Status) error
}

type repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

func (r *repository) Create(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.Uint("user_id", o.UserID),
	)
	conn := db.Conn(ctx, r.db)

	err := conn.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, shipping_address, status, total_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, o.UserID, o.ShippingAddress, o.Status, o.TotalPrice,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	for _, item := range o.Items {
		item.OrderID = o.ID
		err := conn.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, size, quantity, price)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, item.OrderID, item.ProductID, item.ProductName, item.Size, item.Quantity, item.Price,
		).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Uint("product_id", item.ProductID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	return o, nil
}

const orderSelect = `
	SELECT
		o.id, o.user_id, o.shipping_address, o.status, o.total_price, o.created_at, o.updated_at,
		u.name, u.email, u.role, u.address, u.created_at, u.updated_at
	FROM orders o
	JOIN users u ON u.id = o.user_id
`

const orderBy = ` ORDER BY o.created_at DESC, o.id DESC`

func scanOrder(row interface{ Scan(dest ...any) error }) (*Order, error) {
	var (
		o Order
		u user.User
	)
	err := row.Scan(
		&o.ID, &o.UserID, &o.ShippingAddress, &o.Status, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt,
		&u.Name, &u.Email, &u.Role, &u.Address, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.ID = o.UserID
	o.User = &u
	o.Items = []*OrderItem{}
	return &o, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	o, err := scanOrder(db.Conn(ctx, r.db).QueryRowContext(ctx, orderSelect+` WHERE o.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load order",
			zap.String("layer", "repository"),
			zap.Uint("order_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	orders := []*Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Order, error) {
	return r.list(ctx, "ListOrdersByUser", orderSelect+` WHERE o.user_id = $1`+orderBy, userID)
}

func (r *repository) ListAll(ctx context.Context) ([]*Order, error) {
	return r.list(ctx, "ListAllOrders", orderSelect+orderBy)
}

func (r *repository) list(ctx context.Context, method, query string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)

	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	log.Debug("orders loaded", zap.Int("count", len(orders)))
	return orders, nil
}

// attachItems loads the items of all given orders with one query.
// Items whose product was deleted keep a nil Product.
func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uint]*Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, int64(o.ID))
	}

	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, `
		SELECT
			oi.id, oi.order_id, oi.product_id, oi.product_name, oi.size, oi.quantity, oi.price,
			p.id, p.name, p.description, p.price, p.category, p.image_url, p.sizes,
			p.quantity_in_stock, p.created_at, p.updated_at
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.id
	`, pq.Array(ids))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query order items", zap.Error(err))
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item      OrderItem
			pID       sql.NullInt64
			pName     sql.NullString
			pDesc     sql.NullString
			pPrice    decimal.NullDecimal
			pCategory sql.NullString
			pImageURL sql.NullString
			pSizes    pq.StringArray
			pStock    sql.NullInt64
			pCreated  sql.NullTime
			pUpdated  sql.NullTime
		)
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Size, &item.Quantity, &item.Price,
			&pID, &pName, &pDesc, &pPrice, &pCategory, &pImageURL, &pSizes,
			&pStock, &pCreated, &pUpdated,
		)
		if err != nil {
			logger.FromCtx(ctx).Error("failed to scan order item row", zap.Error(err))
			return err
		}

		if pID.Valid {
			item.Product = &product.Product{
				ID:              uint(pID.Int64),
				Name:            pName.String,
				Description:     pDesc.String,
				Price:           pPrice.Decimal,
				Category:        pCategory.String,
				ImageURL:        pImageURL.String,
				Sizes:           []string(pSizes),
				QuantityInStock: int(pStock.Int64),
				CreatedAt:       pCreated.Time,
				UpdatedAt:       pUpdated.Time,
			}
		}

		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, &item)
		}
	}

	return rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status Status) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update order status",
			zap.String("layer", "repository"),
			zap.Uint("order_id", id),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
