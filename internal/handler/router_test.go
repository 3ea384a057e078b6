package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"localwear-be/internal/apperror"
	"localwear-be/internal/auth"
	"localwear-be/internal/category"
	"localwear-be/internal/image"
	"localwear-be/internal/metrics"
	"localwear-be/internal/middleware"
	"localwear-be/internal/order"
	"localwear-be/internal/product"
	"localwear-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserService struct{ mock.Mock }

func (m *MockUserService) GoogleLogin(ctx context.Context, idToken string) (*user.AuthResult, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUserService) AdminLogin(ctx context.Context, email, password string) (*user.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockProductService struct{ mock.Mock }

func (m *MockProductService) List(ctx context.Context) ([]*product.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, caller *auth.Principal, input product.CreateInput) (*product.Product, error) {
	args := m.Called(ctx, caller, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, caller *auth.Principal, id uint, p product.Patch) (*product.Product, error) {
	args := m.Called(ctx, caller, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, caller *auth.Principal, id uint) error {
	return m.Called(ctx, caller, id).Error(0)
}

// asAdmin matches the principal the handlers forward for an admin token.
var asAdmin = mock.MatchedBy(func(p *auth.Principal) bool {
	return p != nil && p.Role == auth.RoleAdmin
})

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) PlaceOrder(ctx context.Context, p *auth.Principal, input order.PlaceOrderInput) (*order.Order, error) {
	args := m.Called(ctx, p, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListMyOrders(ctx context.Context, p *auth.Principal) ([]*order.Order, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) ListAllOrders(ctx context.Context, p *auth.Principal) ([]*order.Order, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, p *auth.Principal, id uint, status order.Status) (*order.Order, error) {
	args := m.Called(ctx, p, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockCategoryService struct{ mock.Mock }

func (m *MockCategoryService) List(ctx context.Context, filter string) ([]*category.Category, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

type MockImageService struct{ mock.Mock }

func (m *MockImageService) Upload(ctx context.Context, f *image.File) (string, error) {
	args := m.Called(ctx, f)
	return args.String(0), args.Error(1)
}

type testServer struct {
	handler    http.Handler
	tokens     *auth.TokenManager
	users      *MockUserService
	products   *MockProductService
	categories *MockCategoryService
	orders     *MockOrderService
	images     *MockImageService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		tokens:     auth.NewTokenManager("test-secret", time.Hour),
		users:      new(MockUserService),
		products:   new(MockProductService),
		categories: new(MockCategoryService),
		orders:     new(MockOrderService),
		images:     new(MockImageService),
	}

	reg := metrics.NewRegistry()
	engine := NewRouter(RouterConfig{AllowedOrigins: []string{"http://localhost:5173"}}, Handlers{
		Auth:     NewAuthHandler(ts.users, false, 3600),
		Product:  NewProductHandler(ts.products),
		Category: NewCategoryHandler(ts.categories),
		Order:    NewOrderHandler(ts.orders),
		Image:    NewImageHandler(ts.images),
		Health:   NewHealthHandler(nil, reg),
	})
	ts.handler = Chain(engine, middleware.AuthMiddleware(ts.tokens))
	return ts
}

func (ts *testServer) token(t *testing.T, role auth.Role) string {
	t.Helper()
	tok, err := ts.tokens.Generate(auth.Principal{UserID: 1, Email: "u@example.com", Role: role})
	require.NoError(t, err)
	return tok
}

func (ts *testServer) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestProductRoutes(t *testing.T) {
	ts := newTestServer(t)

	t.Run("PublicList", func(t *testing.T) {
		ts.products.On("List", mock.Anything).Return([]*product.Product{
			{ID: 1, Name: "Classic T-Shirt", Price: decimal.RequireFromString("29.99"), Sizes: []string{"S"}},
		}, nil).Once()

		w := ts.do(httptest.NewRequest(http.MethodGet, "/products", nil), "")
		require.Equal(t, http.StatusOK, w.Code)

		var body []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, "Classic T-Shirt", body[0]["name"])
	})

	t.Run("Categories", func(t *testing.T) {
		ts.categories.On("List", mock.Anything, "shirt").
			Return([]*category.Category{{Name: "T-Shirts", ProductCount: 1}}, nil).Once()

		w := ts.do(httptest.NewRequest(http.MethodGet, "/categories?search=shirt", nil), "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"name":"T-Shirts","productCount":1}]`, w.Body.String())
	})

	t.Run("GetNotFound", func(t *testing.T) {
		ts.products.On("Get", mock.Anything, uint(7)).
			Return(nil, apperror.NotFound("Product not found with id: %d", 7)).Once()

		w := ts.do(httptest.NewRequest(http.MethodGet, "/products/7", nil), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Product not found with id: 7", errorBody(t, w))
	})

	t.Run("GetBadID", func(t *testing.T) {
		w := ts.do(httptest.NewRequest(http.MethodGet, "/products/abc", nil), "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("CreateRequiresAdmin", func(t *testing.T) {
		body := `{"name":"Tee","price":19.99,"category":"T-Shirts","quantityInStock":3}`

		w := ts.do(jsonRequest(http.MethodPost, "/admin/products", body), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = ts.do(jsonRequest(http.MethodPost, "/admin/products", body), ts.token(t, auth.RoleCustomer))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Access denied", errorBody(t, w))
	})

	t.Run("Create", func(t *testing.T) {
		ts.products.On("Create", mock.Anything, asAdmin, mock.MatchedBy(func(in product.CreateInput) bool {
			return in.Name == "Tee" && in.QuantityInStock == 3 && in.Price.Equal(decimal.RequireFromString("19.99"))
		})).Return(&product.Product{ID: 9, Name: "Tee"}, nil).Once()

		w := ts.do(jsonRequest(http.MethodPost, "/admin/products",
			`{"name":"Tee","price":19.99,"category":"T-Shirts","quantityInStock":3}`), ts.token(t, auth.RoleAdmin))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("CreateMissingPrice", func(t *testing.T) {
		w := ts.do(jsonRequest(http.MethodPost, "/admin/products",
			`{"name":"Tee","category":"T-Shirts","quantityInStock":3}`), ts.token(t, auth.RoleAdmin))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		ts.products.On("Update", mock.Anything, asAdmin, uint(1), mock.MatchedBy(func(p product.Patch) bool {
			price, ok := p.Price.Value()
			return ok && price.Equal(decimal.RequireFromString("24.99")) &&
				!p.Name.IsSet() && !p.Sizes.IsSet() && !p.Description.IsSet()
		})).Return(&product.Product{ID: 1, Name: "Classic T-Shirt"}, nil).Once()

		w := ts.do(jsonRequest(http.MethodPut, "/admin/products/1", `{"price":24.99,"name":null}`), ts.token(t, auth.RoleAdmin))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		ts.products.On("Delete", mock.Anything, asAdmin, uint(2)).Return(nil).Once()

		w := ts.do(httptest.NewRequest(http.MethodDelete, "/admin/products/2", nil), ts.token(t, auth.RoleAdmin))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestOrderRoutes(t *testing.T) {
	ts := newTestServer(t)
	orderBody := `{"shippingAddress":"1 Main St","items":[{"productId":1,"size":"M","quantity":2}]}`

	t.Run("PlaceRequiresLogin", func(t *testing.T) {
		w := ts.do(jsonRequest(http.MethodPost, "/orders", orderBody), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Authentication required", errorBody(t, w))
	})

	t.Run("Place", func(t *testing.T) {
		ts.orders.On("PlaceOrder", mock.Anything,
			mock.MatchedBy(func(p *auth.Principal) bool { return p != nil && p.UserID == 1 }),
			order.PlaceOrderInput{
				ShippingAddress: "1 Main St",
				Items:           []order.ItemInput{{ProductID: 1, Size: "M", Quantity: 2}},
			},
		).Return(&order.Order{ID: 5, Status: order.StatusPlaced, TotalPrice: decimal.RequireFromString("59.98")}, nil).Once()

		w := ts.do(jsonRequest(http.MethodPost, "/orders", orderBody), ts.token(t, auth.RoleCustomer))
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "PLACED", body["status"])
	})

	t.Run("PlaceInsufficientStock", func(t *testing.T) {
		ts.orders.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperror.BadRequest("Insufficient stock for product: Classic T-Shirt")).Once()

		w := ts.do(jsonRequest(http.MethodPost, "/orders", orderBody), ts.token(t, auth.RoleCustomer))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Insufficient stock for product: Classic T-Shirt", errorBody(t, w))
	})

	t.Run("PlaceRejectsEmptyItems", func(t *testing.T) {
		w := ts.do(jsonRequest(http.MethodPost, "/orders", `{"shippingAddress":"x","items":[]}`), ts.token(t, auth.RoleCustomer))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ListMine", func(t *testing.T) {
		ts.orders.On("ListMyOrders", mock.Anything, mock.Anything).Return([]*order.Order{{ID: 2}, {ID: 1}}, nil).Once()

		w := ts.do(httptest.NewRequest(http.MethodGet, "/orders/user", nil), ts.token(t, auth.RoleAdmin))
		require.Equal(t, http.StatusOK, w.Code)

		var body []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body, 2)
	})

	t.Run("AdminListForbiddenForCustomer", func(t *testing.T) {
		w := ts.do(httptest.NewRequest(http.MethodGet, "/admin/orders", nil), ts.token(t, auth.RoleCustomer))
		assert.Equal(t, http.StatusForbidden, w.Code)
		ts.orders.AssertNotCalled(t, "ListAllOrders", mock.Anything, mock.Anything)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		ts.orders.On("UpdateStatus", mock.Anything, asAdmin, uint(3), order.StatusPacked).
			Return(&order.Order{ID: 3, Status: order.StatusPacked}, nil).Once()

		w := ts.do(jsonRequest(http.MethodPatch, "/admin/orders/3/status", `{"status":"PACKED"}`), ts.token(t, auth.RoleAdmin))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("UpdateStatusUnknown", func(t *testing.T) {
		w := ts.do(jsonRequest(http.MethodPatch, "/admin/orders/3/status", `{"status":"SHIPPED"}`), ts.token(t, auth.RoleAdmin))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid order status: SHIPPED", errorBody(t, w))
	})
}

func TestAuthRoutes(t *testing.T) {
	ts := newTestServer(t)

	t.Run("AdminLoginSetsCookie", func(t *testing.T) {
		ts.users.On("AdminLogin", mock.Anything, "admin@localwear.com", "admin123").
			Return(&user.AuthResult{Token: "jwt", User: &user.User{ID: 1, Role: auth.RoleAdmin}}, nil).Once()

		w := ts.do(jsonRequest(http.MethodPost, "/auth/admin-login", `{"email":"admin@localwear.com","password":"admin123"}`), "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Set-Cookie"), auth.AccessTokenCookie+"=jwt")

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "jwt", body["token"])
	})

	t.Run("AdminLoginInvalid", func(t *testing.T) {
		ts.users.On("AdminLogin", mock.Anything, "admin@localwear.com", "nope").
			Return(nil, apperror.BadRequest("Invalid credentials")).Once()

		w := ts.do(jsonRequest(http.MethodPost, "/auth/admin-login", `{"email":"admin@localwear.com","password":"nope"}`), "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid credentials", errorBody(t, w))
	})

	t.Run("GoogleLoginMissingToken", func(t *testing.T) {
		w := ts.do(jsonRequest(http.MethodPost, "/auth/google-login", `{}`), "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Me", func(t *testing.T) {
		ts.users.On("GetByID", mock.Anything, uint(1)).Return(&user.User{ID: 1, Email: "u@example.com"}, nil).Once()

		w := ts.do(httptest.NewRequest(http.MethodGet, "/auth/me", nil), ts.token(t, auth.RoleCustomer))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Logout", func(t *testing.T) {
		w := ts.do(httptest.NewRequest(http.MethodPost, "/auth/logout", nil), "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Set-Cookie"), auth.AccessTokenCookie+"=;")
	})
}

func multipartImage(t *testing.T, field, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="shirt.png"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/upload-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestImageRoutes(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, auth.RoleAdmin)

	t.Run("Upload", func(t *testing.T) {
		ts.images.On("Upload", mock.Anything, mock.MatchedBy(func(f *image.File) bool {
			return f.Filename == "shirt.png" && f.ContentType == "image/png" && f.Size == 4
		})).Return("https://cdn.example.com/shirt.png", nil).Once()

		w := ts.do(multipartImage(t, "image", "image/png", []byte("\x89PNG")), admin)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"imageUrl":"https://cdn.example.com/shirt.png"}`, w.Body.String())
	})

	t.Run("MissingField", func(t *testing.T) {
		w := ts.do(multipartImage(t, "file", "image/png", []byte("\x89PNG")), admin)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Please select a file to upload", errorBody(t, w))
	})

	t.Run("UploaderFailure", func(t *testing.T) {
		ts.images.On("Upload", mock.Anything, mock.Anything).
			Return("", apperror.Internal("Failed to upload image: boom", errors.New("boom"))).Once()

		w := ts.do(multipartImage(t, "image", "image/png", []byte("\x89PNG")), admin)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to upload image: boom", errorBody(t, w))
	})
}

func TestHealthAndNoRoute(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/health", nil), "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.EqualValues(t, 0, body["ordersPlaced"])

	w = ts.do(httptest.NewRequest(http.MethodGet, "/nope", nil), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCorsConfig(t *testing.T) {
	cfg := corsConfig(nil)
	assert.True(t, cfg.AllowAllOrigins)
	assert.False(t, cfg.AllowCredentials)

	cfg = corsConfig([]string{"http://localhost:5173"})
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)
}
