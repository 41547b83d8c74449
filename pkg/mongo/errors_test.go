package mongo_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	driver "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/penpal-ai/database-service/pkg/mongo"
)

func TestIsDuplicateKey(t *testing.T) {
	t.Parallel()

	dup := driver.WriteException{WriteErrors: []driver.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}

	assert.True(t, mongo.IsDuplicateKey(dup))
	assert.False(t, mongo.IsDuplicateKey(errors.New("boom")))
	assert.False(t, mongo.IsDuplicateKey(nil))
}

func TestIsNoDocuments(t *testing.T) {
	t.Parallel()

	assert.True(t, mongo.IsNoDocuments(driver.ErrNoDocuments))
	assert.True(t, mongo.IsNoDocuments(fmt.Errorf("find: %w", driver.ErrNoDocuments)))
	assert.False(t, mongo.IsNoDocuments(errors.New("boom")))
}
