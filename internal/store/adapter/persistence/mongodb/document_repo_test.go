package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	apperrors "sharvari-site/internal/shared/errors"
	"sharvari-site/internal/shared/logger"
	"sharvari-site/internal/store/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestBuildMergeUpdate(t *testing.T) {
	update := buildMergeUpdate("home", model.Fields{
		"title":               "Home",
		model.FieldUpdatedAt: model.ServerTimestamp,
		"_id":                 "ignored",
	})

	assert.Equal(t, bson.M{"title": "Home"}, update["$set"])
	assert.Equal(t, bson.M{model.FieldUpdatedAt: true}, update["$currentDate"])
	assert.NotContains(t, update, "$setOnInsert")
}

func TestBuildMergeUpdate_OmitsEmptyOperators(t *testing.T) {
	update := buildMergeUpdate("home", model.Fields{"title": "x"})
	assert.NotContains(t, update, "$currentDate")

	empty := buildMergeUpdate("home", model.Fields{})
	assert.Equal(t, bson.M{"$setOnInsert": bson.M{"_id": "home"}}, empty)
}

func TestResolveTimestamps(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	out := resolveTimestamps(model.Fields{"role": "admin", "createdAt": model.ServerTimestamp}, now)
	assert.Equal(t, bson.M{"role": "admin", "createdAt": now}, out)
}

func TestToDocument_NormalizesDriverTypes(t *testing.T) {
	when := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	oid := primitive.NewObjectID()
	raw := bson.M{
		"_id":       oid,
		"updatedAt": primitive.NewDateTimeFromTime(when),
		"sections": bson.A{
			bson.D{{Key: "heading", Value: "Vision"}},
			bson.M{"heading": "Mission"},
		},
	}

	doc := toDocument("pages", raw)
	assert.Equal(t, oid.Hex(), doc.ID)
	assert.Equal(t, "pages", doc.Collection)
	assert.Equal(t, when, doc.Fields["updatedAt"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"heading": "Vision"},
		map[string]interface{}{"heading": "Mission"},
	}, doc.Fields["sections"])
	assert.NotContains(t, doc.Fields, "_id")
}

// The remaining tests need a live server and are skipped unless
// MONGODB_TEST_URI is set.
func testDatabase(t *testing.T) *mongo.Database {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("sharvari_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestDocumentRepository_Integration(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := NewDocumentRepository(db, logger.NewLogger())

	_, err := repo.Get(ctx, "pages", "home")
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)

	require.NoError(t, repo.Set(ctx, "pages", "home", model.Fields{"title": "Home", "showHero": true}, true))
	require.NoError(t, repo.Set(ctx, "pages", "home", model.Fields{"title": "Welcome", model.FieldUpdatedAt: model.ServerTimestamp}, true))

	doc, err := repo.Get(ctx, "pages", "home")
	require.NoError(t, err)
	assert.Equal(t, "Welcome", doc.Fields["title"])
	assert.Equal(t, true, doc.Fields["showHero"])
	_, ok := doc.Fields.Time(model.FieldUpdatedAt)
	assert.True(t, ok)

	id, err := repo.Add(ctx, "messages", model.Fields{"name": "Asha", model.FieldCreatedAt: model.ServerTimestamp})
	require.NoError(t, err)
	docs, err := repo.List(ctx, "messages")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0].ID)
}
