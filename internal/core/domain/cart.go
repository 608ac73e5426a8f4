package domain

import "time"

// ProductSnapshot is the product data captured when a line is added.
type ProductSnapshot struct {
	SKU   string  `json:"sku"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

// CartItem is a single cart line. Price is the unit price at add time.
type CartItem struct {
	ProductID string          `json:"productId"`
	Product   ProductSnapshot `json:"product"`
	VariantID string          `json:"variantId,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     float64         `json:"price"`
	AddedAt   time.Time       `json:"addedAt"`
}

// Cart is a value type: every operation returns a new Cart and leaves the
// receiver untouched. Total is always derived from Items.
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount returns the number of units across all lines.
func (c Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// AddItem increments the matching line or appends a new one with quantity 1.
// Lines are keyed on product and variant together.
func (c Cart) AddItem(p Product, variantID string, now time.Time) Cart {
	items := c.cloneItems()
	if i := indexOf(items, p.ID, variantID); i >= 0 {
		items[i].Quantity++
		return newCart(items)
	}

	snap := ProductSnapshot{SKU: p.SKU, Name: p.Name, Price: p.Price}
	if len(p.Images) > 0 {
		snap.Image = p.Images[0]
	}
	items = append(items, CartItem{
		ProductID: p.ID,
		Product:   snap,
		VariantID: variantID,
		Quantity:  1,
		Price:     p.Price,
		AddedAt:   now.UTC(),
	})
	return newCart(items)
}

// RemoveItem drops the line for productID/variantID, if any.
func (c Cart) RemoveItem(productID, variantID string) Cart {
	items := make([]CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ProductID == productID && it.VariantID == variantID {
			continue
		}
		items = append(items, it)
	}
	return newCart(items)
}

// UpdateQuantity sets the line quantity. A quantity of zero or less removes
// the line.
func (c Cart) UpdateQuantity(productID, variantID string, quantity int) Cart {
	if quantity <= 0 {
		return c.RemoveItem(productID, variantID)
	}
	items := c.cloneItems()
	if i := indexOf(items, productID, variantID); i >= 0 {
		items[i].Quantity = quantity
	}
	return newCart(items)
}

func (c Cart) Clear() Cart {
	return newCart(nil)
}

// Recalculate returns c with Total derived from Items. Used after decoding a
// persisted cart so a stale stored total is never trusted.
func (c Cart) Recalculate() Cart {
	return newCart(c.cloneItems())
}

func (c Cart) cloneItems() []CartItem {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return items
}

func newCart(items []CartItem) Cart {
	if items == nil {
		items = []CartItem{}
	}
	return Cart{Items: items, Total: cartTotal(items)}
}

func cartTotal(items []CartItem) float64 {
	lines := make([]MoneyLine, len(items))
	for i, it := range items {
		lines[i] = MoneyLine{Price: it.Price, Quantity: it.Quantity}
	}
	return SumLines(lines...)
}

func indexOf(items []CartItem, productID, variantID string) int {
	for i, it := range items {
		if it.ProductID == productID && it.VariantID == variantID {
			return i
		}
	}
	return -1
}
