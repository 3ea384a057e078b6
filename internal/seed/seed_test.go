package seed

import (
	"context"
	"errors"
	"testing"

	"localwear-be/internal/auth"
	"localwear-be/internal/product"
	"localwear-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUsers struct{ mock.Mock }

func (m *MockUsers) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUsers) Create(ctx context.Context, u *user.User) (*user.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockProducts struct{ mock.Mock }

func (m *MockProducts) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockProducts) Create(ctx context.Context, p *product.Product) (*product.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type inlineTx struct{}

func (inlineTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var admin = Admin{Name: "Admin User", Email: "admin@localwear.com", Password: "admin123"}

func TestSeeder_EmptyDatabase(t *testing.T) {
	ctx := context.Background()
	users, products := new(MockUsers), new(MockProducts)

	users.On("FindByEmail", ctx, "admin@localwear.com").Return(nil, user.ErrUserNotFound)
	users.On("Create", ctx, mock.MatchedBy(func(u *user.User) bool {
		return u.Role == auth.RoleAdmin &&
			u.PasswordHash != nil &&
			user.CheckPasswordHash("admin123", u.PasswordHash)
	})).Return(&user.User{ID: 1}, nil)

	products.On("Count", ctx).Return(0, nil)
	products.On("Create", ctx, mock.Anything).Return(&product.Product{}, nil).Times(3)

	require.NoError(t, NewSeeder(users, products, inlineTx{}, admin).Run(ctx))
	users.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestSeeder_AlreadySeeded(t *testing.T) {
	ctx := context.Background()
	users, products := new(MockUsers), new(MockProducts)

	users.On("FindByEmail", ctx, "admin@localwear.com").Return(&user.User{ID: 1, Role: auth.RoleAdmin}, nil)
	products.On("Count", ctx).Return(3, nil)

	require.NoError(t, NewSeeder(users, products, inlineTx{}, admin).Run(ctx))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSeeder_CatalogFailure(t *testing.T) {
	ctx := context.Background()
	users, products := new(MockUsers), new(MockProducts)

	users.On("FindByEmail", ctx, "admin@localwear.com").Return(&user.User{ID: 1}, nil)
	products.On("Count", ctx).Return(0, nil)
	products.On("Create", ctx, mock.Anything).Return(nil, errors.New("disk full"))

	err := NewSeeder(users, products, inlineTx{}, admin).Run(ctx)
	assert.ErrorContains(t, err, "disk full")
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	require.Len(t, catalog, 3)
	assert.Equal(t, "Classic T-Shirt", catalog[0].Name)
	assert.Equal(t, "29.99", catalog[0].Price.StringFixed(2))
	assert.Equal(t, []string{"28", "30", "32", "34", "36"}, catalog[1].Sizes)
	assert.Equal(t, 30, catalog[2].QuantityInStock)
}
