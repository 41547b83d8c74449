package subscription

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	mongox "github.com/penpal-ai/database-service/pkg/mongo"
)

const CollectionName = "subscriptions"

// Store persists subscriptions.
//
// FindOne, the Update variants and Remove return ErrNotFound for a missing
// record. The FindBy lookups return (nil, nil) instead. Create returns
// ErrConflict when the user already has a record. Any other failure is
// wrapped with ErrInternal.
type Store interface {
	Create(ctx context.Context, sub Subscription) (*Subscription, error)
	FindAll(ctx context.Context, limit, offset int64) ([]Subscription, error)
	FindOne(ctx context.Context, id string) (*Subscription, error)
	FindByUserID(ctx context.Context, userID string) (*Subscription, error)
	FindByStripeCustomerID(ctx context.Context, customerID string) (*Subscription, error)
	FindByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*Subscription, error)
	Update(ctx context.Context, id string, patch Patch) (*Subscription, error)
	UpdateByUserID(ctx context.Context, userID string, patch Patch) (*Subscription, error)
	UpdateByStripeSubscriptionID(ctx context.Context, stripeSubID string, patch Patch) (*Subscription, error)
	Remove(ctx context.Context, id string) (*Subscription, error)
}

// MongoStore is the MongoDB Store. Uniqueness of userId relies on the index
// created by EnsureIndexes.
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

func (s *MongoStore) Create(ctx context.Context, sub Subscription) (*Subscription, error) {
	sub.ID = bson.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, sub); err != nil {
		if mongox.IsDuplicateKey(err) {
			return nil, ErrConflict
		}
		return nil, errors.Join(ErrInternal, err)
	}
	return &sub, nil
}

func (s *MongoStore) FindAll(ctx context.Context, limit, offset int64) ([]Subscription, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, mongox.Page(bson.D{{Key: "_id", Value: 1}}, limit, offset))
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	subs := make([]Subscription, 0)
	if err := cur.All(ctx, &subs); err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return subs, nil
}

func (s *MongoStore) FindOne(ctx context.Context, id string) (*Subscription, error) {
	filter, ok := mongox.IDFilter(id)
	if !ok {
		return nil, ErrNotFound
	}
	sub, err := s.findOne(ctx, filter)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNotFound
	}
	return sub, nil
}

func (s *MongoStore) FindByUserID(ctx context.Context, userID string) (*Subscription, error) {
	return s.findOne(ctx, bson.D{{Key: "userId", Value: userID}})
}

func (s *MongoStore) FindByStripeCustomerID(ctx context.Context, customerID string) (*Subscription, error) {
	return s.findOne(ctx, bson.D{{Key: "stripeCustomerId", Value: customerID}})
}

func (s *MongoStore) FindByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*Subscription, error) {
	return s.findOne(ctx, bson.D{{Key: "stripeSubscriptionId", Value: stripeSubID}})
}

func (s *MongoStore) Update(ctx context.Context, id string, patch Patch) (*Subscription, error) {
	filter, ok := mongox.IDFilter(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s.findOneAndUpdate(ctx, filter, patch)
}

func (s *MongoStore) UpdateByUserID(ctx context.Context, userID string, patch Patch) (*Subscription, error) {
	return s.findOneAndUpdate(ctx, bson.D{{Key: "userId", Value: userID}}, patch)
}

func (s *MongoStore) UpdateByStripeSubscriptionID(ctx context.Context, stripeSubID string, patch Patch) (*Subscription, error) {
	return s.findOneAndUpdate(ctx, bson.D{{Key: "stripeSubscriptionId", Value: stripeSubID}}, patch)
}

func (s *MongoStore) Remove(ctx context.Context, id string) (*Subscription, error) {
	filter, ok := mongox.IDFilter(id)
	if !ok {
		return nil, ErrNotFound
	}
	var sub Subscription
	err := s.coll.FindOneAndDelete(ctx, filter).Decode(&sub)
	switch {
	case mongox.IsNoDocuments(err):
		return nil, ErrNotFound
	case err != nil:
		return nil, errors.Join(ErrInternal, err)
	}
	return &sub, nil
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.D) (*Subscription, error) {
	var sub Subscription
	err := s.coll.FindOne(ctx, filter).Decode(&sub)
	switch {
	case mongox.IsNoDocuments(err):
		return nil, nil
	case err != nil:
		return nil, errors.Join(ErrInternal, err)
	}
	return &sub, nil
}

func (s *MongoStore) findOneAndUpdate(ctx context.Context, filter bson.D, patch Patch) (*Subscription, error) {
	update, err := mongox.SetPatch(patch, s.now())
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}

	var sub Subscription
	err = s.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&sub)
	switch {
	case mongox.IsNoDocuments(err):
		return nil, ErrNotFound
	case mongox.IsDuplicateKey(err):
		return nil, ErrConflict
	case err != nil:
		return nil, errors.Join(ErrInternal, err)
	}
	return &sub, nil
}
