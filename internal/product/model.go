package product

import (
	"time"

	"localwear-be/internal/patch"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID              uint
	Name            string
	Description     string
	Price           decimal.Decimal
	Category        string
	ImageURL        string
	Sizes           []string
	QuantityInStock int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type CreateInput struct {
	Name            string
	Description     string
	Price           decimal.Decimal
	Category        string
	ImageURL        string
	Sizes           []string
	QuantityInStock int
}

// Patch is a partial update: unset fields keep their stored value.
type Patch struct {
	Name            patch.Field[string]
	Description     patch.Field[string]
	Price           patch.Field[decimal.Decimal]
	Category        patch.Field[string]
	ImageURL        patch.Field[string]
	Sizes           patch.Field[[]string]
	QuantityInStock patch.Field[int]
}

func (p Patch) IsEmpty() bool {
	return !p.Name.IsSet() && !p.Description.IsSet() && !p.Price.IsSet() &&
		!p.Category.IsSet() && !p.ImageURL.IsSet() && !p.Sizes.IsSet() &&
		!p.QuantityInStock.IsSet()
}

func (p Patch) ApplyTo(dst *Product) {
	p.Name.ApplyTo(&dst.Name)
	p.Description.ApplyTo(&dst.Description)
	p.Price.ApplyTo(&dst.Price)
	p.Category.ApplyTo(&dst.Category)
	p.ImageURL.ApplyTo(&dst.ImageURL)
	p.Sizes.ApplyTo(&dst.Sizes)
	p.QuantityInStock.ApplyTo(&dst.QuantityInStock)
}
