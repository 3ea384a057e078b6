package handler

import (
	"net/http"

	"localwear-be/internal/patch"
	"localwear-be/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	products product.Service
}

func NewProductHandler(products product.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

type createProductRequest struct {
	Name            string           `json:"name" binding:"required"`
	Description     string           `json:"description"`
	Price           *decimal.Decimal `json:"price" binding:"required"`
	Category        string           `json:"category" binding:"required"`
	ImageURL        string           `json:"imageUrl"`
	Sizes           []string         `json:"sizes"`
	QuantityInStock *int             `json:"quantityInStock" binding:"required"`
}

// updateProductRequest leaves absent or null fields unchanged.
type updateProductRequest struct {
	Name            patch.Field[string]          `json:"name"`
	Description     patch.Field[string]          `json:"description"`
	Price           patch.Field[decimal.Decimal] `json:"price"`
	Category        patch.Field[string]          `json:"category"`
	ImageURL        patch.Field[string]          `json:"imageUrl"`
	Sizes           patch.Field[[]string]        `json:"sizes"`
	QuantityInStock patch.Field[int]             `json:"quantityInStock"`
}

func (r updateProductRequest) toPatch() product.Patch {
	return product.Patch{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		Category:        r.Category,
		ImageURL:        r.ImageURL,
		Sizes:           r.Sizes,
		QuantityInStock: r.QuantityInStock,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product.ToResponses(products))
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	p, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product.ToResponse(p))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.products.Create(c.Request.Context(), principal(c), product.CreateInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           *req.Price,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
		Sizes:           req.Sizes,
		QuantityInStock: *req.QuantityInStock,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product.ToResponse(p))
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.products.Update(c.Request.Context(), principal(c), id, req.toPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product.ToResponse(p))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.products.Delete(c.Request.Context(), principal(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
