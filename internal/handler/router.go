package handler

import (
	"net/http"
	"time"

	"localwear-be/internal/apperror"
	"localwear-be/internal/auth"
	"localwear-be/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	AllowedOrigins []string
	MaxUploadBytes int64
	Production     bool
}

type Handlers struct {
	Auth     *AuthHandler
	Product  *ProductHandler
	Category *CategoryHandler
	Order    *OrderHandler
	Image    *ImageHandler
	Health   *HealthHandler
}

func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	if cfg.MaxUploadBytes > 0 {
		// multipart parts beyond this stay on disk instead of memory
		r.MaxMultipartMemory = cfg.MaxUploadBytes
	}

	r.NoRoute(func(c *gin.Context) {
		respondError(c, apperror.NotFound("Route not found: %s %s", c.Request.Method, c.Request.URL.Path))
	})

	r.GET("/health", h.Health.Health)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/google-login", h.Auth.GoogleLogin)
		authGroup.POST("/admin-login", h.Auth.AdminLogin)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/me", middleware.RequireRoles(auth.RoleCustomer, auth.RoleAdmin), h.Auth.Me)
	}

	r.GET("/products", h.Product.List)
	r.GET("/products/:id", h.Product.Get)
	r.GET("/categories", h.Category.List)

	orders := r.Group("/orders", middleware.RequireRoles(auth.RoleCustomer, auth.RoleAdmin))
	{
		orders.POST("", h.Order.Place)
		orders.GET("/user", h.Order.ListMine)
	}

	admin := r.Group("/admin", middleware.RequireRoles(auth.RoleAdmin))
	{
		admin.GET("/orders", h.Order.ListAll)
		admin.PATCH("/orders/:id/status", h.Order.UpdateStatus)

		admin.POST("/products", h.Product.Create)
		admin.PUT("/products/:id", h.Product.Update)
		admin.DELETE("/products/:id", h.Product.Delete)

		admin.POST("/upload-image", h.Image.Upload)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	// cors rejects an empty origin list; credentials cannot be combined with "*".
	if len(origins) == 0 {
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}

// Chain wraps the engine in the net/http middleware stack, outermost first.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
