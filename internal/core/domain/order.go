package domain

import "time"

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

var orderStatuses = []OrderStatus{OrderPending, OrderConfirmed, OrderReady, OrderCompleted, OrderCancelled}

// orderTransitions lists the statuses an administrator may move an order to.
// Every status is reachable from every other one, including out of the
// terminal states.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   orderStatuses,
	OrderConfirmed: orderStatuses,
	OrderReady:     orderStatuses,
	OrderCompleted: orderStatuses,
	OrderCancelled: orderStatuses,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether a transition from s to next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s ends the normal fulfilment flow.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// PaymentStatus tracks settlement independently of fulfilment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// CollectionMethod is how the customer receives the goods.
type CollectionMethod string

const (
	CollectionPickup   CollectionMethod = "pickup"
	CollectionDelivery CollectionMethod = "delivery"
)

func (m CollectionMethod) Valid() bool {
	return m == CollectionPickup || m == CollectionDelivery
}

// Customer is the contact block captured at checkout.
type Customer struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone" bson:"phone"`
}

// OrderItem is an immutable snapshot of a cart line.
type OrderItem struct {
	ProductID string  `json:"productId" bson:"productId"`
	VariantID string  `json:"variantId,omitempty" bson:"variantId,omitempty"`
	Name      string  `json:"name" bson:"name"`
	SKU       string  `json:"sku" bson:"sku"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
	Total     float64 `json:"total" bson:"total"`
}

// Order is created once at checkout. Afterwards only Status, PaymentStatus
// and Notes change.
type Order struct {
	ID               string           `json:"id"`
	OrderNumber      string           `json:"orderNumber"`
	UserID           string           `json:"userId,omitempty"`
	Customer         Customer         `json:"customer"`
	Items            []OrderItem      `json:"items"`
	Subtotal         float64          `json:"subtotal"`
	Tax              float64          `json:"tax"`
	Total            float64          `json:"total"`
	Status           OrderStatus      `json:"status"`
	PaymentStatus    PaymentStatus    `json:"paymentStatus"`
	CollectionMethod CollectionMethod `json:"collectionMethod"`
	Notes            string           `json:"notes,omitempty"`
	Version          int64            `json:"version"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// SnapshotItems copies the cart lines into order items. The returned slice
// shares nothing with the cart.
func SnapshotItems(c Cart) []OrderItem {
	items := make([]OrderItem, len(c.Items))
	for i, it := range c.Items {
		items[i] = OrderItem{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Name:      it.Product.Name,
			SKU:       it.Product.SKU,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Total:     LineTotal(it.Price, it.Quantity),
		}
	}
	return items
}

// Subtotal sums the item totals.
func Subtotal(items []OrderItem) float64 {
	totals := make([]float64, len(items))
	for i, it := range items {
		totals[i] = it.Total
	}
	return SumMoney(totals...)
}
