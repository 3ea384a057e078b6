package handler

import (
	"net/http"

	"localwear-be/internal/apperror"
	"localwear-be/internal/order"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderItemRequest struct {
	ProductID uint   `json:"productId" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type placeOrderRequest struct {
	ShippingAddress string             `json:"shippingAddress" binding:"required"`
	Items           []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) Place(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	input := order.PlaceOrderInput{
		ShippingAddress: req.ShippingAddress,
		Items:           make([]order.ItemInput, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, order.ItemInput{
			ProductID: item.ProductID,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}

	o, err := h.orders.PlaceOrder(c.Request.Context(), principal(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order.ToResponse(o))
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	orders, err := h.orders.ListMyOrders(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order.ToResponses(orders))
}

func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.orders.ListAllOrders(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order.ToResponses(orders))
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		respondError(c, apperror.BadRequest("Invalid order status: %s", req.Status))
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), principal(c), id, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order.ToResponse(o))
}
