package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/JonMunkholm/suppliers/internal/core"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	suppliersCollection = "suppliers"
	leadsCollection     = "leads"
)

// MongoStore keeps suppliers and leads in MongoDB collections.
type MongoStore struct {
	client    *mongo.Client
	suppliers *mongo.Collection
	leads     *mongo.Collection
	now       func() time.Time
}

// NewMongoStore connects, pings and ensures the slug index.
func NewMongoStore(ctx context.Context, uri, database string, timeout time.Duration) (*MongoStore, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(database)
	m := &MongoStore{
		client:    client,
		suppliers: db.Collection(suppliersCollection),
		leads:     db.Collection(leadsCollection),
		now:       time.Now,
	}

	_, err = m.suppliers.Indexes().CreateOne(connectCtx, mongo.IndexModel{
		Keys: bson.D{{Key: "slug", Value: 1}},
	})
	if err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create slug index: %w", err)
	}
	return m, nil
}

func (m *MongoStore) List(ctx context.Context, filter core.SupplierFilter) ([]core.Supplier, error) {
	cursor, err := m.suppliers.Find(ctx, buildMongoFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to find suppliers: %w", err)
	}
	defer cursor.Close(ctx)

	var out []core.Supplier
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode suppliers: %w", err)
	}
	for i := range out {
		out[i] = cloneSupplier(out[i])
	}
	if out == nil {
		out = []core.Supplier{}
	}
	return out, nil
}

func (m *MongoStore) Get(ctx context.Context, id string) (core.Supplier, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

func (m *MongoStore) GetBySlug(ctx context.Context, slug string) (core.Supplier, error) {
	return m.findOne(ctx, bson.M{"slug": slug})
}

func (m *MongoStore) findOne(ctx context.Context, filter bson.M) (core.Supplier, error) {
	var s core.Supplier
	err := m.suppliers.FindOne(ctx, filter).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.Supplier{}, core.ErrNotFound
	}
	if err != nil {
		return core.Supplier{}, fmt.Errorf("failed to find supplier: %w", err)
	}
	return cloneSupplier(s), nil
}

func (m *MongoStore) Create(ctx context.Context, s core.Supplier) (core.Supplier, error) {
	s = cloneSupplier(s)
	if _, err := m.suppliers.InsertOne(ctx, s); err != nil {
		return core.Supplier{}, fmt.Errorf("failed to insert supplier: %w", err)
	}
	return s, nil
}

func (m *MongoStore) Update(ctx context.Context, id string, u core.SupplierUpdate) (core.Supplier, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var s core.Supplier
	err := m.suppliers.FindOneAndUpdate(ctx, bson.M{"_id": id}, buildMongoUpdate(u, m.now().UTC()), opts).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.Supplier{}, core.ErrNotFound
	}
	if err != nil {
		return core.Supplier{}, fmt.Errorf("failed to update supplier: %w", err)
	}
	return cloneSupplier(s), nil
}

func (m *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := m.suppliers.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	if res.DeletedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

// BulkInsert inserts in one ordered InsertMany; it stops at the first failure.
func (m *MongoStore) BulkInsert(ctx context.Context, suppliers []core.Supplier) ([]core.Supplier, error) {
	if len(suppliers) == 0 {
		return []core.Supplier{}, nil
	}

	out := make([]core.Supplier, len(suppliers))
	docs := make([]interface{}, len(suppliers))
	for i, s := range suppliers {
		out[i] = cloneSupplier(s)
		docs[i] = out[i]
	}

	if _, err := m.suppliers.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("failed to insert batch: %w", err)
	}
	return out, nil
}

func (m *MongoStore) SaveLead(ctx context.Context, lead core.Lead) error {
	if _, err := m.leads.InsertOne(ctx, lead); err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	return nil
}

func (m *MongoStore) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// buildMongoFilter renders the SupplierFilter as a query document.
// Search text is quoted so it matches literally.
func buildMongoFilter(f core.SupplierFilter) bson.M {
	filter := bson.M{}

	if f.Search != "" {
		re := bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
			bson.M{"city": re},
		}
	}
	if len(f.Categories) > 0 {
		filter["categories"] = bson.M{"$in": f.Categories}
	}
	if f.City != "" {
		filter["city"] = f.City
	}
	return filter
}

// buildMongoUpdate sets the non-nil fields of u plus updated_at.
func buildMongoUpdate(u core.SupplierUpdate, now time.Time) bson.M {
	set := bson.M{"updated_at": now}

	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Email != nil {
		set["email"] = *u.Email
	}
	if u.Phone != nil {
		set["phone"] = *u.Phone
	}
	if u.Website != nil {
		set["website"] = *u.Website
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.City != nil {
		set["city"] = *u.City
	}
	if u.Categories != nil {
		cats := *u.Categories
		if cats == nil {
			cats = []string{}
		}
		set["categories"] = cats
	}
	if u.LogoURL != nil {
		set["logo_url"] = *u.LogoURL
	}
	if u.Slug != nil {
		set["slug"] = *u.Slug
	}
	return bson.M{"$set": set}
}
