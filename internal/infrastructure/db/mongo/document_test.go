package mongo

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inkwell/storefront/internal/core/domain"
	"github.com/inkwell/storefront/internal/core/ports"
)

func TestOrderDocument_StoredFieldsAndRoundTrip(t *testing.T) {
	created := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	order := &domain.Order{
		ID:          primitive.NewObjectID().Hex(),
		OrderNumber: "ORD-20250203-0A1B2C3D",
		Customer:    domain.Customer{Name: "Ada", Email: "ada@example.com", Phone: "555"},
		Items: []domain.OrderItem{
			{ProductID: "p1", VariantID: "red", Name: "Mug", SKU: "MUG", Quantity: 2, Price: 4.5, Total: 9},
		},
		Subtotal:         9,
		Total:            9,
		Status:           domain.OrderReady,
		PaymentStatus:    domain.PaymentPaid,
		CollectionMethod: domain.CollectionDelivery,
		Version:          4,
		CreatedAt:        created,
		UpdatedAt:        created,
	}

	raw, err := bson.Marshal(toOrderDocument(order))
	require.NoError(t, err)

	var stored bson.M
	require.NoError(t, bson.Unmarshal(raw, &stored))
	assert.Equal(t, "ready", stored["status"])
	assert.Equal(t, "paid", stored["paymentStatus"])
	assert.Equal(t, "delivery", stored["collectionMethod"])
	assert.Equal(t, "ORD-20250203-0A1B2C3D", stored["orderNumber"])
	assert.NotContains(t, stored, "userId", "guest orders omit userId")
	assert.NotContains(t, stored, "notes")

	var doc orderDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, order, doc.toDomain())
}

func TestOrderDocument_NilItemsStoredAsEmptyArray(t *testing.T) {
	raw, err := bson.Marshal(toOrderDocument(&domain.Order{}))
	require.NoError(t, err)

	var stored bson.M
	require.NoError(t, bson.Unmarshal(raw, &stored))
	assert.Equal(t, bson.A{}, stored["items"])
}

func TestPrintOrderDocument_RoundTrip(t *testing.T) {
	final := 42.0
	p := &domain.PrintOrder{
		ID:            primitive.NewObjectID().Hex(),
		Name:          "Grace",
		Phone:         "555",
		PaperSize:     domain.PaperA3,
		ColorType:     domain.ColorColor,
		PageCount:     2,
		Binding:       domain.BindingSpiral,
		Urgency:       domain.UrgencyExpress,
		EstimatedCost: 90,
		FinalCost:     &final,
		Status:        domain.PrintPrinting,
		Version:       2,
		CreatedAt:     time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC),
	}

	raw, err := bson.Marshal(toPrintOrderDocument(p))
	require.NoError(t, err)

	var stored bson.M
	require.NoError(t, bson.Unmarshal(raw, &stored))
	assert.Equal(t, "A3", stored["paperSize"])
	assert.Equal(t, "printing", stored["status"])
	assert.NotContains(t, stored, "email")

	var doc printOrderDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, p, doc.toDomain())
}

func TestOrderListFilter(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)

	got := orderListFilter(ports.ListOrdersFilter{
		UserID:   "u1",
		Status:   "pending",
		Search:   "ORD-2025.01",
		DateFrom: from,
		DateTo:   to,
	})

	re := primitive.Regex{Pattern: `ORD-2025\.01`, Options: "i"}
	assert.Equal(t, bson.M{
		"userId": "u1",
		"status": "pending",
		"$or": bson.A{
			bson.M{"orderNumber": re},
			bson.M{"customer.name": re},
			bson.M{"customer.email": re},
		},
		"createdAt": bson.M{"$gte": from, "$lte": to},
	}, got)

	assert.Equal(t, bson.M{}, orderListFilter(ports.ListOrdersFilter{}))
}

func TestPageOptions(t *testing.T) {
	opts := pageOptions(3, 20)

	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(40), *opts.Skip)
	assert.Equal(t, int64(20), *opts.Limit)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort)
}

func TestPageOptions_SkipNeverNegative(t *testing.T) {
	assert.Equal(t, int64(0), *pageOptions(0, 20).Skip)
	assert.Equal(t, int64(0), *pageOptions(-5, 20).Skip)
	assert.Equal(t, int64(math.MaxInt64), *pageOptions(math.MaxInt, 100).Skip)
}
