package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkwell/storefront/internal/core/domain"
)

const collectionProducts = "products"

// ProductRepository reads the catalogue. Catalogue management lives elsewhere.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

type productDocument struct {
	ID     primitive.ObjectID `bson:"_id"`
	SKU    string             `bson:"sku"`
	Name   string             `bson:"name"`
	Slug   string             `bson:"slug,omitempty"`
	Price  float64            `bson:"price"`
	Stock  int                `bson:"stock"`
	Status string             `bson:"status"`
	Images []string           `bson:"images,omitempty"`
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc productDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &domain.Product{
		ID:     doc.ID.Hex(),
		SKU:    doc.SKU,
		Name:   doc.Name,
		Slug:   doc.Slug,
		Price:  doc.Price,
		Stock:  doc.Stock,
		Status: domain.ProductStatus(doc.Status),
		Images: doc.Images,
	}, nil
}
