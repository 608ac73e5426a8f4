package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/storefront/internal/api/metrics"
	"github.com/inkwell/storefront/internal/core/domain"
	"github.com/inkwell/storefront/internal/core/ports"
)

type PrintOrderService struct {
	repo   ports.PrintOrderRepository
	events ports.EventPublisher
	logger zerolog.Logger
	now    func() time.Time
}

func NewPrintOrderService(repo ports.PrintOrderRepository, events ports.EventPublisher, logger zerolog.Logger) *PrintOrderService {
	return &PrintOrderService{repo: repo, events: events, logger: logger, now: time.Now}
}

// EstimateCost validates spec and prices it with domain.EstimateCost, the same
// function used when an order is submitted.
func (s *PrintOrderService) EstimateCost(spec domain.PrintSpec) (float64, error) {
	if spec.Binding == "" {
		spec.Binding = domain.BindingNone
	}
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	return domain.EstimateCost(spec), nil
}

func (s *PrintOrderService) SubmitPrintOrder(ctx context.Context, in ports.SubmitPrintOrderInput) (*domain.PrintOrder, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	email := normalizeEmail(in.Email)
	switch {
	case name == "":
		return nil, domain.Invalid("name is required")
	case phone == "":
		return nil, domain.Invalid("phone is required")
	case email != "" && !validEmail(email):
		return nil, domain.Invalid("email must be a valid email")
	}

	spec := domain.PrintSpec{
		PaperSize: domain.NormalizePaperSize(in.PaperSize),
		ColorType: domain.ColorType(strings.ToLower(strings.TrimSpace(in.ColorType))),
		PageCount: in.PageCount,
		Binding:   domain.Binding(in.Binding),
	}
	if spec.Binding == "" {
		spec.Binding = domain.BindingNone
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	urgency := domain.Urgency(in.Urgency)
	if urgency == "" {
		urgency = domain.UrgencyNormal
	}
	if !urgency.Valid() {
		return nil, domain.Invalid("urgency must be one of: normal urgent express")
	}

	now := s.now().UTC()
	order := &domain.PrintOrder{
		Name:                name,
		Email:               email,
		Phone:               phone,
		PaperSize:           spec.PaperSize,
		ColorType:           spec.ColorType,
		PageCount:           spec.PageCount,
		Binding:             spec.Binding,
		Urgency:             urgency,
		SpecialInstructions: strings.TrimSpace(in.SpecialInstructions),
		Status:              domain.PrintPending,
		Version:             1,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	order.EstimatedCost = domain.EstimateCost(order.Spec())

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Msg("failed to create print order")
		return nil, err
	}

	metrics.PrintOrdersSubmittedTotal.WithLabelValues(string(order.PaperSize), string(order.ColorType)).Inc()
	s.logger.Info().
		Str("print_order_id", order.ID).
		Float64("estimated_cost", order.EstimatedCost).
		Msg("print order submitted")
	s.publish(domain.EventPrintOrderSubmitted, order)
	return order, nil
}

func (s *PrintOrderService) GetPrintOrder(ctx context.Context, id string) (*domain.PrintOrder, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdatePrintOrderStatus changes status and, optionally, the final cost.
// The final cost is accepted with any status.
func (s *PrintOrderService) UpdatePrintOrderStatus(ctx context.Context, in ports.UpdatePrintOrderStatusInput) (*domain.PrintOrder, error) {
	next := domain.PrintStatus(in.Status)
	if !next.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if in.FinalCost != nil && *in.FinalCost < 0 {
		return nil, domain.Invalid("finalCost must not be negative")
	}

	current, err := s.repo.FindByID(ctx, in.PrintOrderID)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, domain.Invalid("cannot move print order from %s to %s", current.Status, next)
	}

	updated, err := s.repo.Update(ctx, in.PrintOrderID, ports.PrintOrderUpdate{
		Status:    &next,
		FinalCost: in.FinalCost,
	}, in.ExpectedVersion)
	if err != nil {
		return nil, fmt.Errorf("update print order status: %w", err)
	}

	metrics.PrintOrderStatusUpdatesTotal.WithLabelValues(string(next)).Inc()
	s.logger.Info().
		Str("print_order_id", updated.ID).
		Str("from", string(current.Status)).
		Str("to", string(next)).
		Msg("print order status updated")
	s.publish(domain.EventPrintOrderStatusChanged, updated)
	return updated, nil
}

func (s *PrintOrderService) ListPrintOrders(ctx context.Context, in ports.ListPrintOrdersInput) (*ports.ListPrintOrdersResult, error) {
	page, limit := normalizePage(in.Page, in.Limit)
	items, total, err := s.repo.List(ctx, ports.ListPrintOrdersFilter{
		Status:   in.Status,
		Urgency:  in.Urgency,
		Search:   strings.TrimSpace(in.Search),
		DateFrom: in.DateFrom,
		DateTo:   in.DateTo,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list print orders: %w", err)
	}
	return &ports.ListPrintOrdersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *PrintOrderService) publish(t domain.EventType, p *domain.PrintOrder) {
	s.events.Publish(domain.NewEvent(t, p.ID, domain.PrintOrderEventPayload{
		PrintOrderID:  p.ID,
		Status:        p.Status,
		EstimatedCost: p.EstimatedCost,
		FinalCost:     p.FinalCost,
	}))
}
