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

const collectionPrintOrders = "print_orders"

type PrintOrderRepository struct {
	col *mongo.Collection
}

func NewPrintOrderRepository(db *mongo.Database) *PrintOrderRepository {
	return &PrintOrderRepository{col: db.Collection(collectionPrintOrders)}
}

type printOrderDocument struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	Name                string             `bson:"name"`
	Email               string             `bson:"email,omitempty"`
	Phone               string             `bson:"phone"`
	PaperSize           string             `bson:"paperSize"`
	ColorType           string             `bson:"colorType"`
	PageCount           int                `bson:"pageCount"`
	Binding             string             `bson:"binding"`
	Urgency             string             `bson:"urgency"`
	SpecialInstructions string             `bson:"specialInstructions,omitempty"`
	EstimatedCost       float64            `bson:"estimatedCost"`
	FinalCost           *float64           `bson:"finalCost,omitempty"`
	Status              string             `bson:"status"`
	Version             int64              `bson:"version"`
	CreatedAt           time.Time          `bson:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt"`
}

func toPrintOrderDocument(p *domain.PrintOrder) printOrderDocument {
	doc := printOrderDocument{
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
	if id, err := primitive.ObjectIDFromHex(p.ID); err == nil {
		doc.ID = id
	}
	return doc
}

func (d printOrderDocument) toDomain() *domain.PrintOrder {
	return &domain.PrintOrder{
		ID:                  d.ID.Hex(),
		Name:                d.Name,
		Email:               d.Email,
		Phone:               d.Phone,
		PaperSize:           domain.PaperSize(d.PaperSize),
		ColorType:           domain.ColorType(d.ColorType),
		PageCount:           d.PageCount,
		Binding:             domain.Binding(d.Binding),
		Urgency:             domain.Urgency(d.Urgency),
		SpecialInstructions: d.SpecialInstructions,
		EstimatedCost:       d.EstimatedCost,
		FinalCost:           d.FinalCost,
		Status:              domain.PrintStatus(d.Status),
		Version:             d.Version,
		CreatedAt:           d.CreatedAt.UTC(),
		UpdatedAt:           d.UpdatedAt.UTC(),
	}
}

func (r *PrintOrderRepository) Create(ctx context.Context, p *domain.PrintOrder) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toPrintOrderDocument(p)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert print order: %w", err)
	}
	p.ID = doc.ID.Hex()
	return nil
}

func (r *PrintOrderRepository) FindByID(ctx context.Context, id string) (*domain.PrintOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPrintOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc printOrderDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPrintOrderNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *PrintOrderRepository) Update(ctx context.Context, id string, u ports.PrintOrderUpdate, expectedVersion *int64) (*domain.PrintOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPrintOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	if u.Status != nil {
		set["status"] = string(*u.Status)
	}
	if u.FinalCost != nil {
		set["finalCost"] = *u.FinalCost
	}

	var doc printOrderDocument
	if err := updateVersioned(ctx, r.col, oid, set, expectedVersion, domain.ErrPrintOrderNotFound, domain.ErrVersionConflict, &doc); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *PrintOrderRepository) List(ctx context.Context, f ports.ListPrintOrdersFilter) ([]*domain.PrintOrder, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Urgency != "" {
		filter["urgency"] = f.Urgency
	}
	if f.Search != "" {
		re := containsRegex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"email": re},
			bson.M{"phone": re},
		}
	}
	dateRange(filter, f.DateFrom, f.DateTo)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count print orders: %w", err)
	}

	cur, err := r.col.Find(ctx, filter, pageOptions(f.Page, f.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("find print orders: %w", err)
	}
	defer cur.Close(ctx)

	var docs []printOrderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode print orders: %w", err)
	}

	out := make([]*domain.PrintOrder, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, total, nil
}
