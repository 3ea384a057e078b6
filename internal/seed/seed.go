// Package seed provisions the admin account and a starter catalog on an empty database.
package seed

import (
	"context"
	"errors"
	"fmt"

	"localwear-be/internal/auth"
	"localwear-be/internal/db"
	"localwear-be/internal/logger"
	"localwear-be/internal/product"
	"localwear-be/internal/user"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, u *user.User) (*user.User, error)
}

type ProductStore interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, p *product.Product) (*product.Product, error)
}

type Admin struct {
	Name     string
	Email    string
	Password string
}

type Seeder struct {
	users    UserStore
	products ProductStore
	tx       db.TxManager
	admin    Admin
}

func NewSeeder(users UserStore, products ProductStore, tx db.TxManager, admin Admin) *Seeder {
	return &Seeder{users: users, products: products, tx: tx, admin: admin}
}

func DefaultCatalog() []*product.Product {
	return []*product.Product{
		{
			Name:            "Classic T-Shirt",
			Description:     "Comfortable cotton t-shirt",
			Price:           decimal.RequireFromString("29.99"),
			Category:        "T-Shirts",
			ImageURL:        "https://via.placeholder.com/300x300?text=T-Shirt",
			Sizes:           []string{"S", "M", "L", "XL"},
			QuantityInStock: 100,
		},
		{
			Name:            "Denim Jeans",
			Description:     "Classic blue denim jeans",
			Price:           decimal.RequireFromString("79.99"),
			Category:        "Jeans",
			ImageURL:        "https://via.placeholder.com/300x300?text=Jeans",
			Sizes:           []string{"28", "30", "32", "34", "36"},
			QuantityInStock: 50,
		},
		{
			Name:            "Summer Dress",
			Description:     "Light and breezy summer dress",
			Price:           decimal.RequireFromString("59.99"),
			Category:        "Dresses",
			ImageURL:        "https://via.placeholder.com/300x300?text=Dress",
			Sizes:           []string{"XS", "S", "M", "L", "XL"},
			QuantityInStock: 30,
		},
	}
}

func (s *Seeder) Run(ctx context.Context) error {
	if err := s.ensureAdmin(ctx); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := s.ensureCatalog(ctx); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}

// ensureAdmin leaves an existing account with the admin email untouched.
func (s *Seeder) ensureAdmin(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(zap.String("component", "seed"))

	if s.admin.Email == "" || s.admin.Password == "" {
		log.Warn("admin credentials not configured, skipping admin seed")
		return nil
	}

	_, err := s.users.FindByEmail(ctx, s.admin.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return err
	}

	hash, err := user.HashPassword(s.admin.Password)
	if err != nil {
		return err
	}

	_, err = s.users.Create(ctx, &user.User{
		Name:         s.admin.Name,
		Email:        s.admin.Email,
		PasswordHash: &hash,
		Role:         auth.RoleAdmin,
	})
	if errors.Is(err, user.ErrEmailExists) {
		return nil
	}
	if err != nil {
		return err
	}

	log.Info("admin account created", zap.String("email", s.admin.Email))
	return nil
}

func (s *Seeder) ensureCatalog(ctx context.Context) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		n, err := s.products.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		for _, p := range DefaultCatalog() {
			if _, err := s.products.Create(ctx, p); err != nil {
				return fmt.Errorf("create %q: %w", p.Name, err)
			}
		}

		logger.FromCtx(ctx).Info("sample catalog created", zap.String("component", "seed"))
		return nil
	})
}
