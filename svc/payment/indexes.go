package payment

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the unique payment intent index and the list indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) ([]string, error) {
	names, err := db.Collection(CollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "stripePaymentIntentId", Value: 1}},
			Options: options.Index().SetName("stripePaymentIntentId_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("userId_createdAt"),
		},
		{
			Keys:    bson.D{{Key: "subscriptionId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("subscriptionId_createdAt"),
		},
	})
	if err != nil {
		return nil, errors.Join(ErrCreateIndexes, err)
	}
	return names, nil
}
