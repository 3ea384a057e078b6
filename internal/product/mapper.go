package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Response struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	Sizes           []string        `json:"sizes"`
	QuantityInStock int             `json:"quantityInStock"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func ToResponse(p *Product) *Response {
	if p == nil {
		return nil
	}

	sizes := p.Sizes
	if sizes == nil {
		sizes = []string{}
	}

	return &Response{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		Category:        p.Category,
		ImageURL:        p.ImageURL,
		Sizes:           sizes,
		QuantityInStock: p.QuantityInStock,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func ToResponses(products []*Product) []*Response {
	out := make([]*Response, 0, len(products))
	for _, p := range products {
		out = append(out, ToResponse(p))
	}
	return out
}
