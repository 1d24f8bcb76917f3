package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "sharvari-site/internal/shared/errors"
	"sharvari-site/internal/shared/logger"
	"sharvari-site/internal/store/domain/model"
	"sharvari-site/internal/store/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repository.DocumentRepository = (*DocumentRepository)(nil)

// DocumentRepository stores each logical collection in a Mongo collection of
// the same name, with the document id as _id and the fields at the top level.
type DocumentRepository struct {
	db     *mongo.Database
	logger logger.Logger
}

// NewDocumentRepository creates a new MongoDB-backed document repository
func NewDocumentRepository(db *mongo.Database, log logger.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: log.WithComponent("mongo-store"),
	}
}

// Get retrieves a document by ID
func (r *DocumentRepository) Get(ctx context.Context, collection, id string) (*model.Document, error) {
	var raw bson.M
	err := r.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}
	return toDocument(collection, raw), nil
}

// Set upserts a document. Merge writes only the given top-level fields.
func (r *DocumentRepository) Set(ctx context.Context, collection, id string, fields model.Fields, merge bool) error {
	col := r.db.Collection(collection)
	if !merge {
		replacement := resolveTimestamps(fields, time.Now().UTC())
		replacement["_id"] = id
		_, err := col.ReplaceOne(ctx, bson.M{"_id": id}, replacement, options.Replace().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("failed to set document %s/%s: %w", collection, id, err)
		}
		return nil
	}

	update := buildMergeUpdate(id, fields)
	_, err := col.UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to merge document %s/%s: %w", collection, id, err)
	}
	r.logger.Debugf("Merged %d fields into %s/%s", len(fields), collection, id)
	return nil
}

// Add creates a document under a fresh ObjectID-derived id.
func (r *DocumentRepository) Add(ctx context.Context, collection string, fields model.Fields) (string, error) {
	id := primitive.NewObjectID().Hex()
	if err := r.Set(ctx, collection, id, fields, true); err != nil {
		return "", err
	}
	return id, nil
}

// List returns every document in the collection.
func (r *DocumentRepository) List(ctx context.Context, collection string) ([]*model.Document, error) {
	cursor, err := r.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents in %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	docs := make([]*model.Document, 0)
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		docs = append(docs, toDocument(collection, raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return docs, nil
}

// Ping checks the connection to the server.
func (r *DocumentRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}

// Close disconnects the underlying client.
func (r *DocumentRepository) Close(ctx context.Context) error {
	return r.db.Client().Disconnect(ctx)
}

// buildMergeUpdate splits fields into $set and $currentDate. Empty operators
// are omitted since Mongo rejects them.
func buildMergeUpdate(id string, fields model.Fields) bson.M {
	set := bson.M{}
	currentDate := bson.M{}
	for k, v := range fields {
		if k == "_id" {
			continue
		}
		if model.IsServerTimestamp(v) {
			currentDate[k] = true
			continue
		}
		set[k] = v
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(currentDate) > 0 {
		update["$currentDate"] = currentDate
	}
	if len(update) == 0 {
		update["$setOnInsert"] = bson.M{"_id": id}
	}
	return update
}

func resolveTimestamps(fields model.Fields, now time.Time) bson.M {
	out := bson.M{}
	for k, v := range fields {
		if model.IsServerTimestamp(v) {
			out[k] = now
			continue
		}
		out[k] = v
	}
	return out
}

func toDocument(collection string, raw bson.M) *model.Document {
	id := ""
	switch v := raw["_id"].(type) {
	case string:
		id = v
	case primitive.ObjectID:
		id = v.Hex()
	}
	delete(raw, "_id")

	fields := make(model.Fields, len(raw))
	for k, v := range raw {
		fields[k] = normalize(v)
	}
	return &model.Document{ID: id, Collection: collection, Fields: fields}
}

// normalize converts driver types into plain Go values.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case bson.D:
		out := make(map[string]interface{}, len(t))
		for _, e := range t {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case bson.A:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	default:
		return v
	}
}
