package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/storefront/internal/core/domain"
	"github.com/inkwell/storefront/internal/core/ports"
)

func newPrintOrderService(repo *stubPrintRepo, pub *recordingPublisher) *PrintOrderService {
	svc := NewPrintOrderService(repo, pub, zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func printInput() ports.SubmitPrintOrderInput {
	return ports.SubmitPrintOrderInput{
		Name:      "Grace",
		Phone:     "555-0199",
		PaperSize: "a3",
		ColorType: "Color",
		PageCount: 2,
		Binding:   "spiral",
	}
}

func TestEstimateCost_MatchesSubmittedOrder(t *testing.T) {
	repo := newStubPrintRepo()
	svc := newPrintOrderService(repo, &recordingPublisher{})

	estimate, err := svc.EstimateCost(domain.PrintSpec{PaperSize: domain.PaperA3, ColorType: domain.ColorColor, PageCount: 2, Binding: domain.BindingSpiral})
	require.NoError(t, err)
	assert.Equal(t, 90.0, estimate)

	order, err := svc.SubmitPrintOrder(context.Background(), printInput())
	require.NoError(t, err)
	assert.Equal(t, estimate, order.EstimatedCost)
}

func TestEstimateCost_DefaultsBindingAndValidates(t *testing.T) {
	svc := newPrintOrderService(newStubPrintRepo(), &recordingPublisher{})

	cost, err := svc.EstimateCost(domain.PrintSpec{PaperSize: domain.PaperA4, ColorType: domain.ColorBW, PageCount: 10})
	require.NoError(t, err)
	assert.Equal(t, 20.0, cost)

	_, err = svc.EstimateCost(domain.PrintSpec{PaperSize: domain.PaperA4, ColorType: domain.ColorBW, PageCount: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSubmitPrintOrder_Defaults(t *testing.T) {
	repo := newStubPrintRepo()
	pub := &recordingPublisher{}
	svc := newPrintOrderService(repo, pub)

	in := printInput()
	in.Binding = ""
	order, err := svc.SubmitPrintOrder(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, domain.PaperA3, order.PaperSize)
	assert.Equal(t, domain.ColorColor, order.ColorType)
	assert.Equal(t, domain.BindingNone, order.Binding)
	assert.Equal(t, domain.UrgencyNormal, order.Urgency)
	assert.Equal(t, domain.PrintPending, order.Status)
	assert.Equal(t, int64(1), order.Version)
	assert.Nil(t, order.FinalCost)
	assert.Equal(t, 40.0, order.EstimatedCost)
	assert.Equal(t, []domain.EventType{domain.EventPrintOrderSubmitted}, pub.types())
}

func TestSubmitPrintOrder_Validation(t *testing.T) {
	tests := map[string]func(*ports.SubmitPrintOrderInput){
		"missing name":  func(in *ports.SubmitPrintOrderInput) { in.Name = "" },
		"missing phone": func(in *ports.SubmitPrintOrderInput) { in.Phone = " " },
		"bad email":     func(in *ports.SubmitPrintOrderInput) { in.Email = "not-an-email" },
		"bad paper":     func(in *ports.SubmitPrintOrderInput) { in.PaperSize = "A5" },
		"bad colour":    func(in *ports.SubmitPrintOrderInput) { in.ColorType = "sepia" },
		"zero pages":    func(in *ports.SubmitPrintOrderInput) { in.PageCount = 0 },
		"bad binding":   func(in *ports.SubmitPrintOrderInput) { in.Binding = "glue" },
		"bad urgency":   func(in *ports.SubmitPrintOrderInput) { in.Urgency = "yesterday" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			repo := newStubPrintRepo()
			svc := newPrintOrderService(repo, &recordingPublisher{})
			in := printInput()
			mutate(&in)

			_, err := svc.SubmitPrintOrder(context.Background(), in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			assert.Empty(t, repo.orders)
		})
	}
}

func TestSubmitPrintOrder_StoreFailure(t *testing.T) {
	repo := newStubPrintRepo()
	repo.createErr = errStore
	pub := &recordingPublisher{}
	svc := newPrintOrderService(repo, pub)

	_, err := svc.SubmitPrintOrder(context.Background(), printInput())

	assert.ErrorIs(t, err, errStore)
	assert.Empty(t, pub.types())
}

func TestUpdatePrintOrderStatus(t *testing.T) {
	repo := newStubPrintRepo()
	pub := &recordingPublisher{}
	svc := newPrintOrderService(repo, pub)
	ctx := context.Background()
	order, err := svc.SubmitPrintOrder(ctx, printInput())
	require.NoError(t, err)

	final := 85.5
	updated, err := svc.UpdatePrintOrderStatus(ctx, ports.UpdatePrintOrderStatusInput{
		PrintOrderID: order.ID,
		Status:       "printing",
		FinalCost:    &final,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PrintPrinting, updated.Status)
	require.NotNil(t, updated.FinalCost)
	assert.Equal(t, 85.5, *updated.FinalCost)
	assert.Equal(t, 90.0, updated.EstimatedCost)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, []domain.EventType{domain.EventPrintOrderSubmitted, domain.EventPrintOrderStatusChanged}, pub.types())
}

func TestUpdatePrintOrderStatus_Errors(t *testing.T) {
	repo := newStubPrintRepo()
	svc := newPrintOrderService(repo, &recordingPublisher{})
	ctx := context.Background()
	order, err := svc.SubmitPrintOrder(ctx, printInput())
	require.NoError(t, err)

	negative := -1.0
	stale := int64(0)
	tests := []struct {
		name string
		in   ports.UpdatePrintOrderStatusInput
		want error
	}{
		{"unknown status", ports.UpdatePrintOrderStatusInput{PrintOrderID: order.ID, Status: "bound"}, domain.ErrInvalidStatus},
		{"negative cost", ports.UpdatePrintOrderStatusInput{PrintOrderID: order.ID, Status: "completed", FinalCost: &negative}, domain.ErrValidation},
		{"unknown id", ports.UpdatePrintOrderStatusInput{PrintOrderID: "missing", Status: "completed"}, domain.ErrPrintOrderNotFound},
		{"stale version", ports.UpdatePrintOrderStatusInput{PrintOrderID: order.ID, Status: "completed", ExpectedVersion: &stale}, domain.ErrVersionConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdatePrintOrderStatus(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, repo.updateCalls)
}

func TestListPrintOrders(t *testing.T) {
	repo := newStubPrintRepo()
	svc := newPrintOrderService(repo, &recordingPublisher{})
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := svc.SubmitPrintOrder(ctx, printInput())
		require.NoError(t, err)
	}

	res, err := svc.ListPrintOrders(ctx, ports.ListPrintOrdersInput{Limit: 2, Status: "pending", Search: " grace "})
	require.NoError(t, err)

	assert.Equal(t, int64(3), res.Total)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, "grace", repo.lastFilter.Search)
	assert.Equal(t, "pending", repo.lastFilter.Status)
	assert.Equal(t, 1, repo.lastFilter.Page)

	got, err := svc.GetPrintOrder(ctx, "print-1")
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.Name)
}
