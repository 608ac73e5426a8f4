package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/storefront/internal/core/domain"
	"github.com/inkwell/storefront/internal/core/ports"
)

type stubPrintOrders struct {
	submitted *ports.SubmitPrintOrderInput
	updated   *ports.UpdatePrintOrderStatusInput
}

func (s *stubPrintOrders) EstimateCost(spec domain.PrintSpec) (float64, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	return domain.EstimateCost(spec), nil
}

func (s *stubPrintOrders) SubmitPrintOrder(_ context.Context, in ports.SubmitPrintOrderInput) (*domain.PrintOrder, error) {
	s.submitted = &in
	return &domain.PrintOrder{ID: "p1", Name: in.Name, Status: domain.PrintPending}, nil
}

func (s *stubPrintOrders) GetPrintOrder(_ context.Context, id string) (*domain.PrintOrder, error) {
	if id != "p1" {
		return nil, domain.ErrPrintOrderNotFound
	}
	return &domain.PrintOrder{ID: id}, nil
}

func (s *stubPrintOrders) UpdatePrintOrderStatus(_ context.Context, in ports.UpdatePrintOrderStatusInput) (*domain.PrintOrder, error) {
	s.updated = &in
	return &domain.PrintOrder{ID: in.PrintOrderID, Status: domain.PrintStatus(in.Status), FinalCost: in.FinalCost}, nil
}

func (s *stubPrintOrders) ListPrintOrders(context.Context, ports.ListPrintOrdersInput) (*ports.ListPrintOrdersResult, error) {
	return &ports.ListPrintOrdersResult{Items: []*domain.PrintOrder{}, Page: 1, Limit: 20}, nil
}

func TestEstimate(t *testing.T) {
	h := NewPrintOrderHandler(&stubPrintOrders{})

	c, rec := newContext(http.MethodPost, "/v1/print-orders/estimate", `{"paperSize":"a3","colorType":"color","pageCount":2,"binding":"spiral"}`)
	require.NoError(t, h.Estimate(c))

	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, 90.0, data["estimatedCost"])

	c, _ = newContext(http.MethodPost, "/v1/print-orders/estimate", `{"paperSize":"A5","colorType":"bw","pageCount":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, h.Estimate(c)))

	c, _ = newContext(http.MethodPost, "/v1/print-orders/estimate", `{"paperSize":"A4","colorType":"bw","pageCount":0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, h.Estimate(c)))
}

func TestSubmit(t *testing.T) {
	svc := &stubPrintOrders{}
	h := NewPrintOrderHandler(svc)

	c, rec := newContext(http.MethodPost, "/v1/print-orders", `{"name":"Grace","phone":"555","paperSize":"A4","colorType":"bw","pageCount":10,"urgency":"urgent"}`)
	require.NoError(t, h.Submit(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.submitted)
	assert.Equal(t, "urgent", svc.submitted.Urgency)

	c, _ = newContext(http.MethodPost, "/v1/print-orders", `{"name":"Grace","paperSize":"A4","colorType":"bw","pageCount":10}`)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, h.Submit(c)), "phone is required")
}

func TestUpdatePrintStatus(t *testing.T) {
	svc := &stubPrintOrders{}
	h := NewPrintOrderHandler(svc)

	c, rec := newContext(http.MethodPatch, "/v1/admin/print-orders/p1/status", `{"status":"completed","finalCost":75.5}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	require.NoError(t, h.UpdateStatus(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.updated.FinalCost)
	assert.Equal(t, 75.5, *svc.updated.FinalCost)

	c, _ = newContext(http.MethodPatch, "/v1/admin/print-orders/p1/status", `{"status":"completed","finalCost":-1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, h.UpdateStatus(c)))
}

func TestGetPrintOrder_NotFound(t *testing.T) {
	h := NewPrintOrderHandler(&stubPrintOrders{})

	c, _ := newContext(http.MethodGet, "/v1/admin/print-orders/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	assert.ErrorIs(t, h.Get(c), domain.ErrPrintOrderNotFound)
}
