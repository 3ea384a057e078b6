package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"localwear-be/internal/apperror"
	"localwear-be/internal/auth"
	"localwear-be/internal/db"
	"localwear-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// priceLimit is the first value that no longer fits NUMERIC(10,2).
var priceLimit = decimal.New(1, 8)

type Service interface {
	List(ctx context.Context) ([]*Product, error)
	Get(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, caller *auth.Principal, input CreateInput) (*Product, error)
	Update(ctx context.Context, caller *auth.Principal, id uint, p Patch) (*Product, error)
	Delete(ctx context.Context, caller *auth.Principal, id uint) error
}

type service struct {
	repo Repository
	tx   db.TxManager
}

func NewService(repo Repository, tx db.TxManager) Service {
	return &service{repo: repo, tx: tx}
}

func checkPrice(price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return apperror.BadRequest("price cannot be negative")
	case !price.Equal(price.Round(2)):
		return apperror.BadRequest("price must have at most 2 decimal places")
	case price.GreaterThanOrEqual(priceLimit):
		return apperror.BadRequest("price must be less than %s", priceLimit)
	}
	return nil
}

func notFound(id uint) error {
	return apperror.NotFound("Product not found with id: %d", id)
}

func (s *service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrProductNotFound) {
		return nil, notFound(id)
	}
	return p, err
}

func (s *service) Create(ctx context.Context, caller *auth.Principal, input CreateInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
	)

	if err := auth.Authorize(caller, auth.RoleAdmin); err != nil {
		return nil, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)

	if input.Name == "" {
		return nil, apperror.BadRequest("name cannot be empty")
	}
	if input.Category == "" {
		return nil, apperror.BadRequest("category cannot be empty")
	}
	if err := checkPrice(input.Price); err != nil {
		return nil, err
	}
	if input.QuantityInStock < 0 {
		return nil, apperror.BadRequest("quantityInStock cannot be negative")
	}

	created, err := s.repo.Create(ctx, &Product{
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		Category:        input.Category,
		ImageURL:        input.ImageURL,
		Sizes:           input.Sizes,
		QuantityInStock: input.QuantityInStock,
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	log.Info("product created", zap.Uint("product_id", created.ID))
	return created, nil
}

func validatePatch(p Patch) error {
	if name, ok := p.Name.Value(); ok && strings.TrimSpace(name) == "" {
		return apperror.BadRequest("name cannot be empty")
	}
	if category, ok := p.Category.Value(); ok && strings.TrimSpace(category) == "" {
		return apperror.BadRequest("category cannot be empty")
	}
	if price, ok := p.Price.Value(); ok {
		if err := checkPrice(price); err != nil {
			return err
		}
	}
	if qty, ok := p.QuantityInStock.Value(); ok && qty < 0 {
		return apperror.BadRequest("quantityInStock cannot be negative")
	}
	return nil
}

func (s *service) Update(ctx context.Context, caller *auth.Principal, id uint, p Patch) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProduct"),
		zap.Uint("product_id", id),
	)

	if err := auth.Authorize(caller, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validatePatch(p); err != nil {
		return nil, err
	}

	var updated *Product
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, id)
		if errors.Is(err, ErrProductNotFound) {
			return notFound(id)
		}
		if err != nil {
			return err
		}

		if p.IsEmpty() {
			updated = current
			return nil
		}

		p.ApplyTo(current)
		updated, err = s.repo.Update(ctx, current)
		if errors.Is(err, ErrProductNotFound) {
			return notFound(id)
		}
		return err
	})
	if err != nil {
		log.Warn("update product failed", zap.Error(err))
		return nil, err
	}

	log.Info("product updated")
	return updated, nil
}

func (s *service) Delete(ctx context.Context, caller *auth.Principal, id uint) error {
	if err := auth.Authorize(caller, auth.RoleAdmin); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrProductNotFound) {
		return notFound(id)
	}
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	logger.FromCtx(ctx).Info("product deleted",
		zap.String("layer", "service"),
		zap.Uint("product_id", id),
	)
	return nil
}
