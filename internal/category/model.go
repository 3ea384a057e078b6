package category

// Category is derived from the free-form category of catalog products.
type Category struct {
	Name         string `json:"name"`
	ProductCount int    `json:"productCount"`
}
