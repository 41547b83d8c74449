package payment

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	mongox "github.com/penpal-ai/database-service/pkg/mongo"
)

const CollectionName = "payments"

// Store persists payments.
//
// FindOne, the Update variants and Remove return ErrNotFound for a missing
// record; FindByStripePaymentIntentID returns (nil, nil). Create and updates
// return ErrConflict on a duplicate payment intent. Any other failure is
// wrapped with ErrInternal.
type Store interface {
	Create(ctx context.Context, p Payment) (*Payment, error)
	FindAll(ctx context.Context, limit, offset int64) ([]Payment, error)
	FindOne(ctx context.Context, id string) (*Payment, error)
	FindByUserID(ctx context.Context, userID string) ([]Payment, error)
	FindBySubscriptionID(ctx context.Context, subscriptionID string) ([]Payment, error)
	FindByStripePaymentIntentID(ctx context.Context, intentID string) (*Payment, error)
	Update(ctx context.Context, id string, patch Patch) (*Payment, error)
	UpdateByStripePaymentIntentID(ctx context.Context, intentID string, patch Patch) (*Payment, error)
	Remove(ctx context.Context, id string) (*Payment, error)
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		coll: db.Collection(CollectionName),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *MongoStore) Create(ctx context.Context, p Payment) (*Payment, error) {
	p.ID = bson.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, p); err != nil {
		if mongox.IsDuplicateKey(err) {
			return nil, ErrConflict
		}
		return nil, errors.Join(ErrInternal, err)
	}
	return &p, nil
}

func (s *MongoStore) FindAll(ctx context.Context, limit, offset int64) ([]Payment, error) {
	return s.find(ctx, bson.D{}, mongox.Page(newestFirst, limit, offset))
}

func (s *MongoStore) FindOne(ctx context.Context, id string) (*Payment, error) {
	filter, ok := mongox.IDFilter(id)
	if !ok {
		return nil, ErrNotFound
	}
	p, err := s.findOne(ctx, filter)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *MongoStore) FindByUserID(ctx context.Context, userID string) ([]Payment, error) {
	return s.find(ctx, bson.D{{Key: "userId", Value: userID}}, options.Find().SetSort(newestFirst))
}

func (s *MongoStore) FindBySubscriptionID(ctx context.Context, subscriptionID string) ([]Payment, error) {
	return s.find(ctx, bson.D{{Key: "subscriptionId", Value: subscriptionID}}, options.Find().SetSort(newestFirst))
}

func (s *MongoStore) FindByStripePaymentIntentID(ctx context.Context, intentID string) (*Payment, error) {
	return s.findOne(ctx, bson.D{{Key: "stripePaymentIntentId", Value: intentID}})
}

func (s *MongoStore) Update(ctx context.Context, id string, patch Patch) (*Payment, error) {
	filter, ok := mongox.IDFilter(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s.findOneAndUpdate(ctx, filter, patch)
}

func (s *MongoStore) UpdateByStripePaymentIntentID(ctx context.Context, intentID string, patch Patch) (*Payment, error) {
	return s.findOneAndUpdate(ctx, bson.D{{Key: "stripePaymentIntentId", Value: intentID}}, patch)
}

func (s *MongoStore) Remove(ctx context.Context, id string) (*Payment, error) {
	filter, ok := mongox.IDFilter(id)
	if !ok {
		return nil, ErrNotFound
	}
	var p Payment
	err := s.coll.FindOneAndDelete(ctx, filter).Decode(&p)
	switch {
	case mongox.IsNoDocuments(err):
		return nil, ErrNotFound
	case err != nil:
		return nil, errors.Join(ErrInternal, err)
	}
	return &p, nil
}

func (s *MongoStore) find(ctx context.Context, filter bson.D, opts *options.FindOptionsBuilder) ([]Payment, error) {
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	payments := make([]Payment, 0)
	if err := cur.All(ctx, &payments); err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return payments, nil
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.D) (*Payment, error) {
	var p Payment
	err := s.coll.FindOne(ctx, filter).Decode(&p)
	switch {
	case mongox.IsNoDocuments(err):
		return nil, nil
	case err != nil:
		return nil, errors.Join(ErrInternal, err)
	}
	return &p, nil
}

func (s *MongoStore) findOneAndUpdate(ctx context.Context, filter bson.D, patch Patch) (*Payment, error) {
	update, err := mongox.SetPatch(patch, s.now())
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}

	var p Payment
	err = s.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	switch {
	case mongox.IsNoDocuments(err):
		return nil, ErrNotFound
	case mongox.IsDuplicateKey(err):
		return nil, ErrConflict
	case err != nil:
		return nil, errors.Join(ErrInternal, err)
	}
	return &p, nil
}
