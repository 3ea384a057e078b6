package order

import (
	"time"

	"localwear-be/internal/product"
	"localwear-be/internal/user"

	"github.com/shopspring/decimal"
)

type ItemResponse struct {
	ID          uint              `json:"id"`
	ProductID   uint              `json:"productId"`
	ProductName string            `json:"productName"`
	Product     *product.Response `json:"product"`
	Size        string            `json:"size"`
	Quantity    int               `json:"quantity"`
	Price       decimal.Decimal   `json:"price"`
}

type Response struct {
	ID              uint            `json:"id"`
	User            *user.Response  `json:"user"`
	ShippingAddress string          `json:"shippingAddress"`
	Status          Status          `json:"status"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	Items           []*ItemResponse `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func ToItemResponse(i *OrderItem) *ItemResponse {
	return &ItemResponse{
		ID:          i.ID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Product:     product.ToResponse(i.Product),
		Size:        i.Size,
		Quantity:    i.Quantity,
		Price:       i.Price,
	}
}

func ToResponse(o *Order) *Response {
	if o == nil {
		return nil
	}

	items := make([]*ItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ToItemResponse(item))
	}

	return &Response{
		ID:              o.ID,
		User:            user.ToResponse(o.User),
		ShippingAddress: o.ShippingAddress,
		Status:          o.Status,
		TotalPrice:      o.TotalPrice,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func ToResponses(orders []*Order) []*Response {
	out := make([]*Response, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToResponse(o))
	}
	return out
}
