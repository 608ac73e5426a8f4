package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkwell/storefront/internal/core/domain"
	"github.com/inkwell/storefront/internal/core/ports"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type orderDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	OrderNumber      string             `bson:"orderNumber"`
	UserID           string             `bson:"userId,omitempty"`
	Customer         domain.Customer    `bson:"customer"`
	Items            []domain.OrderItem `bson:"items"`
	Subtotal         float64            `bson:"subtotal"`
	Tax              float64            `bson:"tax"`
	Total            float64            `bson:"total"`
	Status           string             `bson:"status"`
	PaymentStatus    string             `bson:"paymentStatus"`
	CollectionMethod string             `bson:"collectionMethod"`
	Notes            string             `bson:"notes,omitempty"`
	Version          int64              `bson:"version"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func toOrderDocument(o *domain.Order) orderDocument {
	doc := orderDocument{
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
	}
	if id, err := primitive.ObjectIDFromHex(o.ID); err == nil {
		doc.ID = id
	}
	if doc.Items == nil {
		doc.Items = []domain.OrderItem{}
	}
	return doc
}

func (d orderDocument) toDomain() *domain.Order {
	return &domain.Order{
		ID:               d.ID.Hex(),
		OrderNumber:      d.OrderNumber,
		UserID:           d.UserID,
		Customer:         d.Customer,
		Items:            d.Items,
		Subtotal:         d.Subtotal,
		Tax:              d.Tax,
		Total:            d.Total,
		Status:           domain.OrderStatus(d.Status),
		PaymentStatus:    domain.PaymentStatus(d.PaymentStatus),
		CollectionMethod: domain.CollectionMethod(d.CollectionMethod),
		Notes:            d.Notes,
		Version:          d.Version,
		CreatedAt:        d.CreatedAt.UTC(),
		UpdatedAt:        d.UpdatedAt.UTC(),
	}
}

// Create inserts o and sets its ID. A duplicate order number is returned as a
// *domain.ConflictError on field "orderNumber".
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toOrderDocument(o)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.ConflictError{Field: "orderNumber"}
		}
		return fmt.Errorf("insert order: %w", err)
	}
	o.ID = doc.ID.Hex()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *OrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return r.findOne(ctx, bson.M{"orderNumber": orderNumber})
}

func (r *OrderRepository) findOne(ctx context.Context, filter bson.M) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc orderDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// Update applies the non-nil fields of u. See updateVersioned for the
// expectedVersion semantics.
func (r *OrderRepository) Update(ctx context.Context, id string, u ports.OrderUpdate, expectedVersion *int64) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	if u.Status != nil {
		set["status"] = string(*u.Status)
	}
	if u.PaymentStatus != nil {
		set["paymentStatus"] = string(*u.PaymentStatus)
	}
	if u.Notes != nil {
		set["notes"] = *u.Notes
	}

	var doc orderDocument
	if err := updateVersioned(ctx, r.col, oid, set, expectedVersion, domain.ErrOrderNotFound, domain.ErrVersionConflict, &doc); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) List(ctx context.Context, f ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := orderListFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	cur, err := r.col.Find(ctx, filter, pageOptions(f.Page, f.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("find orders: %w", err)
	}
	defer cur.Close(ctx)

	var docs []orderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode orders: %w", err)
	}

	out := make([]*domain.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, total, nil
}

func orderListFilter(f ports.ListOrdersFilter) bson.M {
	filter := bson.M{}
	if f.UserID != "" {
		filter["userId"] = f.UserID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.PaymentStatus != "" {
		filter["paymentStatus"] = f.PaymentStatus
	}
	if f.CollectionMethod != "" {
		filter["collectionMethod"] = f.CollectionMethod
	}
	if f.Search != "" {
		re := containsRegex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"orderNumber": re},
			bson.M{"customer.name": re},
			bson.M{"customer.email": re},
		}
	}
	dateRange(filter, f.DateFrom, f.DateTo)
	return filter
}
