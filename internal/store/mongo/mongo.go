// Package mongo is the RecordStore backed by a MongoDB collection.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"saledash/internal/core"
	applog "saledash/internal/log"
	"saledash/internal/query"
	"saledash/internal/store"
)

// document is the stored shape of a transaction.
type document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
	Sold        bool               `bson:"sold"`
	DateOfSale  string             `bson:"dateOfSale"`
	Image       string             `bson:"image,omitempty"`
}

func toDocument(t core.Transaction) document {
	return document{
		Title:       t.Title,
		Description: t.Description,
		Price:       t.Price,
		Category:    t.Category,
		Sold:        t.Sold,
		DateOfSale:  t.DateOfSale,
		Image:       t.Image,
	}
}

func (d document) transaction() core.Transaction {
	return core.Transaction{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		Sold:        d.Sold,
		DateOfSale:  d.DateOfSale,
		Image:       d.Image,
	}
}

type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ store.RecordStore = (*Store)(nil)

// Connect dials uri and verifies the connection with a ping.
func Connect(ctx context.Context, uri, database, collection string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Store{client: client, coll: client.Database(database).Collection(collection)}, nil
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(context.Background())
}

// DeleteAll implements store.RecordWriter
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, core.NewStoreError("delete all", err)
	}
	slog.InfoContext(ctx, "Transactions deleted from MongoDB",
		applog.FieldComponent, applog.ComponentStorage, "count", res.DeletedCount)
	return res.DeletedCount, nil
}

// InsertMany implements store.RecordWriter
func (s *Store) InsertMany(ctx context.Context, records []core.Transaction) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, len(records))
	for i, t := range records {
		docs[i] = toDocument(t)
	}
	res, err := s.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, core.NewStoreError("insert many", err)
	}
	slog.InfoContext(ctx, "Transactions saved to MongoDB",
		applog.FieldComponent, applog.ComponentStorage, "count", len(res.InsertedIDs))
	return len(res.InsertedIDs), nil
}

// Find implements store.RecordReader
func (s *Store) Find(ctx context.Context, f query.Filter, opts store.FindOptions) ([]core.Transaction, error) {
	cur, err := s.coll.Find(ctx, Filter(f), findOptions(opts))
	if err != nil {
		return nil, core.NewStoreError("find", err)
	}
	defer cur.Close(ctx)

	out := make([]core.Transaction, 0)
	for cur.Next(ctx) {
		var d document
		if err := cur.Decode(&d); err != nil {
			return nil, core.NewStoreError("find", fmt.Errorf("decode: %w", err))
		}
		out = append(out, d.transaction())
	}
	if err := cur.Err(); err != nil {
		return nil, core.NewStoreError("find", err)
	}
	return out, nil
}

// Count implements store.RecordReader
func (s *Store) Count(ctx context.Context, f query.Filter) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, Filter(f))
	if err != nil {
		return 0, core.NewStoreError("count", err)
	}
	return n, nil
}

// Filter translates a query.Filter into a MongoDB filter document.
// Text conditions are quoted so they match literally.
func Filter(f query.Filter) bson.D {
	filter := bson.D{}
	if p := f.MonthPattern(); p != "" {
		filter = append(filter, bson.E{Key: "dateOfSale", Value: primitive.Regex{Pattern: regexp.QuoteMeta(p)}})
	}
	if f.HasSearch() {
		pattern := regexp.QuoteMeta(f.Search)
		or := bson.A{
			bson.D{{Key: "title", Value: primitive.Regex{Pattern: pattern, Options: "i"}}},
			bson.D{{Key: "description", Value: primitive.Regex{Pattern: pattern, Options: "i"}}},
		}
		if f.Price != nil {
			or = append(or, bson.D{{Key: "price", Value: *f.Price}})
		}
		filter = append(filter, bson.E{Key: "$or", Value: or})
	}
	return filter
}

func findOptions(opts store.FindOptions) *options.FindOptions {
	o := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if opts.Skip > 0 {
		o.SetSkip(int64(opts.Skip))
	}
	if opts.Limit > 0 {
		o.SetLimit(int64(opts.Limit))
	}
	return o
}
