package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkwell/storefront/internal/api/metrics"
	"github.com/inkwell/storefront/internal/core/domain"
	"github.com/inkwell/storefront/internal/core/ports"
)

const (
	orderNumberAttempts = 3
	defaultPageSize     = 20
	maxPageSize         = 100
	maxPage             = 100_000
)

type OrderService struct {
	repo    ports.OrderRepository
	events  ports.EventPublisher
	taxRate float64
	logger  zerolog.Logger
	now     func() time.Time
}

func NewOrderService(repo ports.OrderRepository, events ports.EventPublisher, taxRate float64, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, events: events, taxRate: taxRate, logger: logger, now: time.Now}
}

// CreateOrder snapshots the cart into a new pending order. Prices are taken
// from the cart lines as they were when added.
func (s *OrderService) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	if input.Cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	customer, err := validateCustomer(input.Customer)
	if err != nil {
		return nil, err
	}
	method := domain.CollectionMethod(input.CollectionMethod)
	if !method.Valid() {
		return nil, domain.Invalid("collectionMethod must be one of: pickup delivery")
	}
	for _, it := range input.Cart.Items {
		if it.Quantity < 1 {
			return nil, domain.Invalid("quantity for product %s must be at least 1", it.ProductID)
		}
	}

	items := domain.SnapshotItems(input.Cart)
	subtotal := domain.Subtotal(items)
	tax := domain.ApplyRate(subtotal, s.taxRate)

	now := s.now().UTC()
	order := &domain.Order{
		UserID:           input.UserID,
		Customer:         customer,
		Items:            items,
		Subtotal:         subtotal,
		Tax:              tax,
		Total:            domain.SumMoney(subtotal, tax),
		Status:           domain.OrderPending,
		PaymentStatus:    domain.PaymentPending,
		CollectionMethod: method,
		Notes:            strings.TrimSpace(input.Notes),
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	for attempt := 1; ; attempt++ {
		order.OrderNumber = generateOrderNumber(now)
		err = s.repo.Create(ctx, order)
		if err == nil {
			break
		}
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) && conflict.Field == "orderNumber" && attempt < orderNumberAttempts {
			s.logger.Warn().Str("order_number", order.OrderNumber).Msg("order number collision, regenerating")
			continue
		}
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	metrics.OrdersCreatedTotal.WithLabelValues(string(method)).Inc()
	s.logger.Info().Str("order_number", order.OrderNumber).Str("order_id", order.ID).Msg("order created")
	s.publish(domain.EventOrderCreated, order)
	return order, nil
}

// GetOrder returns the order when viewer may see it. Orders owned by another
// customer are reported as not found.
func (s *OrderService) GetOrder(ctx context.Context, input ports.GetOrderInput) (*domain.Order, error) {
	var (
		order *domain.Order
		err   error
	)
	switch {
	case input.ID != "":
		order, err = s.repo.FindByID(ctx, input.ID)
	case input.OrderNumber != "":
		order, err = s.repo.FindByOrderNumber(ctx, strings.ToUpper(strings.TrimSpace(input.OrderNumber)))
	default:
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if input.Viewer.Role != domain.RoleAdmin && order.UserID != "" && order.UserID != input.Viewer.UserID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// UpdateOrderStatus moves an order to any status the transition table allows.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, input ports.UpdateOrderStatusInput) (*domain.Order, error) {
	next := domain.OrderStatus(input.Status)
	if !next.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	current, err := s.repo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, domain.Invalid("cannot move order from %s to %s", current.Status, next)
	}

	updated, err := s.repo.Update(ctx, input.OrderID, ports.OrderUpdate{Status: &next}, input.ExpectedVersion)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	metrics.OrderStatusUpdatesTotal.WithLabelValues(string(next)).Inc()
	if current.Status.IsTerminal() && !next.IsTerminal() {
		s.logger.Warn().
			Str("order_number", updated.OrderNumber).
			Str("from", string(current.Status)).
			Str("to", string(next)).
			Msg("terminal order reopened")
	}
	s.logger.Info().
		Str("order_number", updated.OrderNumber).
		Str("from", string(current.Status)).
		Str("to", string(next)).
		Msg("order status updated")
	s.publish(domain.EventOrderStatusChanged, updated)
	return updated, nil
}

func (s *OrderService) UpdatePaymentStatus(ctx context.Context, input ports.UpdatePaymentStatusInput) (*domain.Order, error) {
	next := domain.PaymentStatus(input.PaymentStatus)
	if !next.Valid() {
		return nil, domain.Invalid("paymentStatus must be one of: pending paid failed")
	}

	updated, err := s.repo.Update(ctx, input.OrderID, ports.OrderUpdate{PaymentStatus: &next}, input.ExpectedVersion)
	if err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	s.logger.Info().Str("order_number", updated.OrderNumber).Str("payment_status", string(next)).Msg("payment status updated")
	s.publish(domain.EventOrderPaymentChanged, updated)
	return updated, nil
}

func (s *OrderService) UpdateNotes(ctx context.Context, input ports.UpdateNotesInput) (*domain.Order, error) {
	notes := strings.TrimSpace(input.Notes)
	updated, err := s.repo.Update(ctx, input.OrderID, ports.OrderUpdate{Notes: &notes}, input.ExpectedVersion)
	if err != nil {
		return nil, fmt.Errorf("update notes: %w", err)
	}
	return updated, nil
}

// ListOrders returns a page of orders. Non-admin viewers only see their own.
func (s *OrderService) ListOrders(ctx context.Context, input ports.ListOrdersInput) (*ports.ListOrdersResult, error) {
	page, limit := normalizePage(input.Page, input.Limit)

	filter := ports.ListOrdersFilter{
		Status:           input.Status,
		PaymentStatus:    input.PaymentStatus,
		CollectionMethod: input.CollectionMethod,
		Search:           strings.TrimSpace(input.Search),
		DateFrom:         input.DateFrom,
		DateTo:           input.DateTo,
		Page:             page,
		Limit:            limit,
	}
	if input.Viewer.Role != domain.RoleAdmin {
		if input.Viewer.UserID == "" {
			return nil, domain.ErrUnauthenticated
		}
		filter.UserID = input.Viewer.UserID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return &ports.ListOrdersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *OrderService) publish(t domain.EventType, o *domain.Order) {
	s.events.Publish(domain.NewEvent(t, o.ID, domain.OrderEventPayload{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Total:         o.Total,
		Email:         o.Customer.Email,
	}))
}

func validateCustomer(in ports.CustomerInput) (domain.Customer, error) {
	c := domain.Customer{
		Name:  strings.TrimSpace(in.Name),
		Email: normalizeEmail(in.Email),
		Phone: strings.TrimSpace(in.Phone),
	}
	switch {
	case c.Name == "":
		return c, domain.Invalid("customer name is required")
	case !validEmail(c.Email):
		return c, domain.Invalid("customer email must be a valid email")
	case c.Phone == "":
		return c, domain.Invalid("customer phone is required")
	}
	return c, nil
}

// generateOrderNumber returns a number in the format ORD-YYYYMMDD-XXXXXXXX.
func generateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
