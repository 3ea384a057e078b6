package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"localwear-be/internal/apperror"
	"localwear-be/internal/auth"
	"localwear-be/internal/db"
	"localwear-be/internal/logger"
	"localwear-be/internal/metrics"
	"localwear-be/internal/product"
	"localwear-be/internal/user"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductStore is the part of the catalog the order workflow reads and mutates.
type ProductStore interface {
	GetByID(ctx context.Context, id uint) (*product.Product, error)
	UpdateStock(ctx context.Context, id uint, quantityInStock int) error
}

type UserStore interface {
	FindByID(ctx context.Context, id uint) (*user.User, error)
}

type Service interface {
	PlaceOrder(ctx context.Context, p *auth.Principal, input PlaceOrderInput) (*Order, error)
	ListMyOrders(ctx context.Context, p *auth.Principal) ([]*Order, error)
	ListAllOrders(ctx context.Context, p *auth.Principal) ([]*Order, error)
	UpdateStatus(ctx context.Context, p *auth.Principal, orderID uint, status Status) (*Order, error)
}

type service struct {
	repo     Repository
	products ProductStore
	users    UserStore
	tx       db.TxManager
	placed   *metrics.Counter
}

func NewService(repo Repository, products ProductStore, users UserStore, tx db.TxManager, placed *metrics.Counter) Service {
	if placed == nil {
		placed = new(metrics.Counter)
	}
	return &service{
		repo:     repo,
		products: products,
		users:    users,
		tx:       tx,
		placed:   placed,
	}
}

func validatePlaceOrder(input PlaceOrderInput) error {
	if strings.TrimSpace(input.ShippingAddress) == "" {
		return apperror.BadRequest("Shipping address is required")
	}
	if len(input.Items) == 0 {
		return apperror.BadRequest("Order must contain at least one item")
	}
	for i, item := range input.Items {
		if item.ProductID == 0 {
			return apperror.BadRequest("Item %d: product id is required", i+1)
		}
		if strings.TrimSpace(item.Size) == "" {
			return apperror.BadRequest("Item %d: size is required", i+1)
		}
		if item.Quantity <= 0 {
			return apperror.BadRequest("Item %d: quantity must be at least 1", i+1)
		}
	}
	return nil
}

func (s *service) PlaceOrder(ctx context.Context, p *auth.Principal, input PlaceOrderInput) (*Order, error) {
	if err := auth.Authorize(p, auth.RoleCustomer, auth.RoleAdmin); err != nil {
		return nil, err
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Uint("user_id", p.UserID),
	)

	if err := validatePlaceOrder(input); err != nil {
		log.Warn("invalid order input", zap.Error(err))
		return nil, err
	}

	var placed *Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		owner, err := s.users.FindByID(ctx, p.UserID)
		if errors.Is(err, user.ErrUserNotFound) {
			return apperror.NotFound("User not found")
		}
		if err != nil {
			return fmt.Errorf("load order owner: %w", err)
		}

		total := decimal.Zero
		items := make([]*OrderItem, 0, len(input.Items))

		for _, line := range input.Items {
			prod, err := s.products.GetByID(ctx, line.ProductID)
			if errors.Is(err, product.ErrProductNotFound) {
				return apperror.NotFound("Product not found with id: %d", line.ProductID)
			}
			if err != nil {
				return fmt.Errorf("load product %d: %w", line.ProductID, err)
			}

			if prod.QuantityInStock < line.Quantity {
				return apperror.BadRequest("Insufficient stock for product: %s", prod.Name)
			}

			item := &OrderItem{
				ProductID:   prod.ID,
				ProductName: prod.Name,
				Product:     prod,
				Size:        strings.TrimSpace(line.Size),
				Quantity:    line.Quantity,
				Price:       prod.Price,
			}
			total = total.Add(item.LineTotal())

			prod.QuantityInStock -= line.Quantity
			if err := s.products.UpdateStock(ctx, prod.ID, prod.QuantityInStock); err != nil {
				if errors.Is(err, product.ErrNegativeStock) {
					return apperror.BadRequest("Insufficient stock for product: %s", prod.Name)
				}
				return fmt.Errorf("update stock for product %d: %w", prod.ID, err)
			}

			items = append(items, item)
		}

		created, err := s.repo.Create(ctx, &Order{
			UserID:          owner.ID,
			ShippingAddress: strings.TrimSpace(input.ShippingAddress),
			Status:          StatusPlaced,
			TotalPrice:      total,
			Items:           items,
		})
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		created.User = owner
		placed = created
		return nil
	})
	if err != nil {
		log.Warn("place order failed", zap.Error(err))
		return nil, err
	}

	s.placed.Inc()
	log.Info("order placed",
		zap.Uint("order_id", placed.ID),
		zap.String("total", placed.TotalPrice.StringFixed(2)),
		zap.Int("items", len(placed.Items)),
	)
	return placed, nil
}

func (s *service) ListMyOrders(ctx context.Context, p *auth.Principal) ([]*Order, error) {
	if err := auth.Authorize(p, auth.RoleCustomer, auth.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, p.UserID)
}

func (s *service) ListAllOrders(ctx context.Context, p *auth.Principal) ([]*Order, error) {
	if err := auth.Authorize(p, auth.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

// UpdateStatus overwrites the status; any known status may follow any other.
func (s *service) UpdateStatus(ctx context.Context, p *auth.Principal, orderID uint, status Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.Uint("order_id", orderID),
	)

	if err := auth.Authorize(p, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperror.BadRequest("Invalid order status: %s", status)
	}

	var updated *Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		err := s.repo.UpdateStatus(ctx, orderID, status)
		if errors.Is(err, ErrOrderNotFound) {
			return apperror.NotFound("Order not found with id: %d", orderID)
		}
		if err != nil {
			return err
		}

		updated, err = s.repo.GetByID(ctx, orderID)
		return err
	})
	if err != nil {
		log.Warn("update order status failed", zap.Error(err))
		return nil, err
	}

	log.Info("order status updated", zap.String("status", string(status)))
	return updated, nil
}
