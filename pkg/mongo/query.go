package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// IDFilter builds an _id filter from a hex ObjectID. ok is false for a
// malformed ID, which cannot match any document.
func IDFilter(id string) (filter bson.D, ok bool) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	return bson.D{{Key: "_id", Value: oid}}, true
}

// SetPatch turns patch into a $set update that also bumps updatedAt.
// Fields tagged omitempty and left nil are not written.
func SetPatch(patch any, now time.Time) (bson.D, error) {
	raw, err := bson.Marshal(patch)
	if err != nil {
		return nil, err
	}
	var set bson.D
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	set = append(set, bson.E{Key: "updatedAt", Value: now})
	return bson.D{{Key: "$set", Value: set}}, nil
}

// Page returns find options sorted by sort with limit and offset applied when positive.
func Page(sort bson.D, limit, offset int64) *options.FindOptionsBuilder {
	opts := options.Find().SetSort(sort)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	if offset > 0 {
		opts.SetSkip(offset)
	}
	return opts
}
