package subscription

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var ErrCreateIndexes = errors.New("subscription: failed to create indexes")

// EnsureIndexes creates the unique userId index and the lookup indexes.
// It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) ([]string, error) {
	names, err := db.Collection(CollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("userId_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "stripeSubscriptionId", Value: 1}},
			Options: options.Index().SetName("stripeSubscriptionId_sparse").SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "stripeCustomerId", Value: 1}},
			Options: options.Index().SetName("stripeCustomerId"),
		},
	})
	if err != nil {
		return nil, errors.Join(ErrCreateIndexes, err)
	}
	return names, nil
}
