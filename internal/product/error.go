package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNegativeStock   = errors.New("quantity in stock cannot be negative")
)
