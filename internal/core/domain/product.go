package domain

// ProductStatus is the catalogue state of a product.
type ProductStatus string

const (
	ProductActive     ProductStatus = "active"
	ProductInactive   ProductStatus = "inactive"
	ProductOutOfStock ProductStatus = "out_of_stock"
)

// Product is read-only from the order lifecycle's point of view.
type Product struct {
	ID     string        `json:"id"`
	SKU    string        `json:"sku"`
	Name   string        `json:"name"`
	Slug   string        `json:"slug,omitempty"`
	Price  float64       `json:"price"`
	Stock  int           `json:"stock"`
	Status ProductStatus `json:"status"`
	Images []string      `json:"images,omitempty"`
}

// Purchasable reports whether the product may be added to a cart.
func (p *Product) Purchasable() bool {
	return p.Status == ProductActive
}
