package handler

import (
	"time"

	"github.com/inkwell/storefront/internal/core/domain"
)

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type sessionResponse struct {
	Authenticated bool                   `json:"authenticated"`
	Session       *domain.SessionPayload `json:"session,omitempty"`
}

// --- Cart ---

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	VariantID string `json:"variantId"`
}

type updateCartItemRequest struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type cartResponse struct {
	Items     []domain.CartItem `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"itemCount"`
}

func toCartResponse(c domain.Cart) cartResponse {
	items := c.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponse{Items: items, Total: c.Total, ItemCount: c.ItemCount()}
}

// --- Orders ---

type customerRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

type checkoutRequest struct {
	Customer         customerRequest `json:"customer"         validate:"required"`
	CollectionMethod string          `json:"collectionMethod" validate:"required,oneof=pickup delivery"`
	Notes            string          `json:"notes"            validate:"max=1000"`
}

type updateOrderStatusRequest struct {
	Status  string `json:"status"  validate:"required,oneof=pending confirmed ready completed cancelled"`
	Version *int64 `json:"version"`
}

type updatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=pending paid failed"`
	Version       *int64 `json:"version"`
}

type updateNotesRequest struct {
	Notes   string `json:"notes"   validate:"max=1000"`
	Version *int64 `json:"version"`
}

type orderLinks struct {
	Self  string `json:"self"`
	Track string `json:"track"`
}

type orderResponse struct {
	ID               string             `json:"id"`
	OrderNumber      string             `json:"orderNumber"`
	UserID           string             `json:"userId,omitempty"`
	Customer         domain.Customer    `json:"customer"`
	Items            []domain.OrderItem `json:"items"`
	Subtotal         float64            `json:"subtotal"`
	Tax              float64            `json:"tax"`
	Total            float64            `json:"total"`
	Status           string             `json:"status"`
	PaymentStatus    string             `json:"paymentStatus"`
	CollectionMethod string             `json:"collectionMethod"`
	Notes            string             `json:"notes,omitempty"`
	Version          int64              `json:"version"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
	Links            orderLinks         `json:"_links"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		UserID:           o.UserID,
		Customer:         o.Customer,
		Items:            o.Items,
		Subtotal:         o.Subtotal,
		Tax:              o.Tax,
		Total:            o.Total,
		Status:           string(o.Status),
		PaymentStatus:    string(o.PaymentStatus),
		CollectionMethod: string(o.CollectionMethod),
		Notes:            o.Notes,
		Version:          o.Version,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		Links: orderLinks{
			Self:  "/v1/orders/" + o.ID,
			Track: "/v1/orders/track/" + o.OrderNumber,
		},
	}
}

// --- Print orders ---

type estimateRequest struct {
	PaperSize string `json:"paperSize" validate:"required,oneof=A4 A3 a4 a3"`
	ColorType string `json:"colorType" validate:"required,oneof=bw color"`
	PageCount int    `json:"pageCount" validate:"gte=1"`
	Binding   string `json:"binding"   validate:"omitempty,oneof=none spiral stapler"`
}

type estimateResponse struct {
	EstimatedCost float64 `json:"estimatedCost"`
}

type submitPrintOrderRequest struct {
	Name                string `json:"name"                validate:"required"`
	Email               string `json:"email"               validate:"omitempty,email"`
	Phone               string `json:"phone"               validate:"required"`
	PaperSize           string `json:"paperSize"           validate:"required,oneof=A4 A3 a4 a3"`
	ColorType           string `json:"colorType"           validate:"required,oneof=bw color"`
	PageCount           int    `json:"pageCount"           validate:"gte=1"`
	Binding             string `json:"binding"             validate:"omitempty,oneof=none spiral stapler"`
	Urgency             string `json:"urgency"             validate:"omitempty,oneof=normal urgent express"`
	SpecialInstructions string `json:"specialInstructions" validate:"max=1000"`
}

type updatePrintOrderStatusRequest struct {
	Status    string   `json:"status"    validate:"required,oneof=pending confirmed printing completed cancelled"`
	FinalCost *float64 `json:"finalCost" validate:"omitempty,gte=0"`
	Version   *int64   `json:"version"`
}

type printOrderResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email,omitempty"`
	Phone               string    `json:"phone"`
	PaperSize           string    `json:"paperSize"`
	ColorType           string    `json:"colorType"`
	PageCount           int       `json:"pageCount"`
	Binding             string    `json:"binding"`
	Urgency             string    `json:"urgency"`
	SpecialInstructions string    `json:"specialInstructions,omitempty"`
	EstimatedCost       float64   `json:"estimatedCost"`
	FinalCost           *float64  `json:"finalCost,omitempty"`
	Status              string    `json:"status"`
	Version             int64     `json:"version"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func toPrintOrderResponse(p *domain.PrintOrder) printOrderResponse {
	return printOrderResponse{
		ID:                  p.ID,
		Name:                p.Name,
		Email:               p.Email,
		Phone:               p.Phone,
		PaperSize:           string(p.PaperSize),
		ColorType:           string(p.ColorType),
		PageCount:           p.PageCount,
		Binding:             string(p.Binding),
		Urgency:             string(p.Urgency),
		SpecialInstructions: p.SpecialInstructions,
		EstimatedCost:       p.EstimatedCost,
		FinalCost:           p.FinalCost,
		Status:              string(p.Status),
		Version:             p.Version,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
