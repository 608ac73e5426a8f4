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
)

const collectionUsers = "users"

type AuthRepository struct {
	col *mongo.Collection
}

func NewAuthRepository(db *mongo.Database) *AuthRepository {
	return &AuthRepository{col: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	Name                string             `bson:"name"`
	Email               string             `bson:"email"`
	Phone               string             `bson:"phone,omitempty"`
	Password            string             `bson:"password"`
	Verified            bool               `bson:"isVerified"`
	Role                string             `bson:"role"`
	ProfilePic          string             `bson:"profilePic,omitempty"`
	Address             string             `bson:"address,omitempty"`
	VerificationToken   string             `bson:"verificationToken,omitempty"`
	VerificationExpires time.Time          `bson:"verificationTokenExpires,omitempty"`
	ResetToken          string             `bson:"resetPasswordToken,omitempty"`
	ResetExpires        time.Time          `bson:"resetPasswordExpires,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		Name:                u.Name,
		Email:               u.Email,
		Phone:               u.Phone,
		Password:            u.PasswordHash,
		Verified:            u.Verified,
		Role:                u.Role,
		ProfilePic:          u.ProfilePic,
		Address:             u.Address,
		VerificationToken:   u.VerificationToken,
		VerificationExpires: u.VerificationExpires,
		ResetToken:          u.ResetToken,
		ResetExpires:        u.ResetExpires,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                  mu.ID.Hex(),
		Name:                mu.Name,
		Email:               mu.Email,
		Phone:               mu.Phone,
		PasswordHash:        mu.Password,
		Verified:            mu.Verified,
		Role:                mu.Role,
		ProfilePic:          mu.ProfilePic,
		Address:             mu.Address,
		VerificationToken:   mu.VerificationToken,
		VerificationExpires: mu.VerificationExpires.UTC(),
		ResetToken:          mu.ResetToken,
		ResetExpires:        mu.ResetExpires.UTC(),
		CreatedAt:           mu.CreatedAt.UTC(),
		UpdatedAt:           mu.UpdatedAt.UTC(),
	}
}

func (r *AuthRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoUser(user)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AuthRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AuthRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AuthRepository) FindByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"verificationToken": token})
}

func (r *AuthRepository) FindByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"resetPasswordToken": token})
}

func (r *AuthRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// Save replaces the stored account with user. Email and createdAt are kept.
func (r *AuthRepository) Save(ctx context.Context, user *domain.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoUser(user)
	set := bson.M{
		"name":       doc.Name,
		"phone":      doc.Phone,
		"password":   doc.Password,
		"isVerified": doc.Verified,
		"role":       doc.Role,
		"profilePic": doc.ProfilePic,
		"address":    doc.Address,
		"updatedAt":  doc.UpdatedAt,
	}
	unset := bson.M{}
	setOrUnset(set, unset, "verificationToken", doc.VerificationToken, doc.VerificationExpires, "verificationTokenExpires")
	setOrUnset(set, unset, "resetPasswordToken", doc.ResetToken, doc.ResetExpires, "resetPasswordExpires")

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func setOrUnset(set, unset bson.M, tokenKey, token string, expires time.Time, expiresKey string) {
	if token == "" {
		unset[tokenKey] = ""
		unset[expiresKey] = ""
		return
	}
	set[tokenKey] = token
	set[expiresKey] = expires
}
