package user

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	mongox "github.com/penpal-ai/database-service/pkg/mongo"
)

const CollectionName = "users"

var (
	ErrUserNotFound = errors.New("user: not found")
	ErrLookupFailed = errors.New("user: lookup failed")
)

// User is the subset of the user record other modules need.
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}

type document struct {
	ID        bson.ObjectID `bson:"_id"`
	Email     string        `bson:"email"`
	FirstName string        `bson:"firstName"`
	LastName  string        `bson:"lastName"`
}

// Store reads users from MongoDB. It never writes.
type Store struct {
	coll *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{coll: db.Collection(CollectionName)}
}

// FindOne returns the user with the given hex ObjectID.
// A malformed ID is reported as ErrUserNotFound.
func (s *Store) FindOne(ctx context.Context, id string) (User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return User{}, ErrUserNotFound
	}

	var doc document
	err = s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}},
		options.FindOne().SetProjection(bson.D{
			{Key: "email", Value: 1},
			{Key: "firstName", Value: 1},
			{Key: "lastName", Value: 1},
		}),
	).Decode(&doc)
	switch {
	case mongox.IsNoDocuments(err):
		return User{}, ErrUserNotFound
	case err != nil:
		return User{}, errors.Join(ErrLookupFailed, err)
	}

	return User{
		ID:        doc.ID.Hex(),
		Email:     doc.Email,
		FirstName: doc.FirstName,
		LastName:  doc.LastName,
	}, nil
}
