package mongo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// updateVersioned applies set to the document with id and bumps its version.
// When expected is non-nil the write only lands if the stored version matches;
// a miss is then reported as conflict if the document exists, notFound if not.
func updateVersioned(ctx context.Context, col *mongo.Collection, id primitive.ObjectID, set bson.M, expected *int64, notFound, conflict error, out any) error {
	filter := bson.M{"_id": id}
	if expected != nil {
		filter["version"] = *expected
	}
	update := bson.M{"$set": set, "$inc": bson.M{"version": 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(out)
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	if expected == nil {
		return notFound
	}

	n, cerr := col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if cerr != nil {
		return cerr
	}
	if n == 0 {
		return notFound
	}
	return conflict
}

// dateRange adds a createdAt range to filter when either bound is set.
func dateRange(filter bson.M, from, to time.Time) {
	if from.IsZero() && to.IsZero() {
		return
	}
	r := bson.M{}
	if !from.IsZero() {
		r["$gte"] = from
	}
	if !to.IsZero() {
		r["$lte"] = to
	}
	filter["createdAt"] = r
}

// containsRegex builds a case-insensitive substring match for term.
func containsRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

func pageOptions(page, limit int) *options.FindOptions {
	var skip int64
	if page > 1 && limit > 0 {
		skip = int64(page-1) * int64(limit)
		if skip/int64(limit) != int64(page-1) {
			skip = math.MaxInt64
		}
	}
	return options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(limit))
}
