package order

import (
	"strings"
	"time"

	"localwear-be/internal/product"
	"localwear-be/internal/user"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPlaced    Status = "PLACED"
	StatusPacked    Status = "PACKED"
	StatusDelivered Status = "DELIVERED"
)

var AllStatuses = []Status{StatusPlaced, StatusPacked, StatusDelivered}

func (s Status) Valid() bool {
	switch s {
	case StatusPlaced, StatusPacked, StatusDelivered:
		return true
	}
	return false
}

// ParseStatus accepts the status names case-insensitively.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

type Order struct {
	ID              uint
	UserID          uint
	User            *user.User
	ShippingAddress string
	Status          Status
	TotalPrice      decimal.Decimal
	Items           []*OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem freezes the product name and unit price at placement time.
// Product is nil once the referenced product has been deleted.
type OrderItem struct {
	ID          uint
	OrderID     uint
	ProductID   uint
	ProductName string
	Product     *product.Product
	Size        string
	Quantity    int
	Price       decimal.Decimal
}

func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type ItemInput struct {
	ProductID uint
	Size      string
	Quantity  int
}

type PlaceOrderInput struct {
	ShippingAddress string
	Items           []ItemInput
}
