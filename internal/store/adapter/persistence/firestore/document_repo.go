package firestore

import (
	"context"
	"errors"
	"fmt"

	apperrors "sharvari-site/internal/shared/errors"
	"sharvari-site/internal/store/domain/model"
	"sharvari-site/internal/store/domain/repository"

	gfs "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ repository.DocumentRepository = (*DocumentRepository)(nil)

// DocumentRepository implements the document repository on Cloud Firestore.
type DocumentRepository struct {
	client *gfs.Client
}

// NewClient initialises a Firebase app and returns its Firestore client.
// An empty credentialsFile falls back to application default credentials.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*gfs.Client, error) {
	if projectID == "" {
		return nil, errors.New("projectID must be provided to create a firestore client")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return client, nil
}

// NewDocumentRepository wraps an existing Firestore client.
func NewDocumentRepository(client *gfs.Client) *DocumentRepository {
	return &DocumentRepository{client: client}
}

func (r *DocumentRepository) Get(ctx context.Context, collection, id string) (*model.Document, error) {
	snap, err := r.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}
	if !snap.Exists() {
		return nil, apperrors.ErrDocumentNotFound
	}
	return &model.Document{ID: snap.Ref.ID, Collection: collection, Fields: model.Fields(snap.Data())}, nil
}

func (r *DocumentRepository) Set(ctx context.Context, collection, id string, fields model.Fields, merge bool) error {
	data := encodeFields(fields)
	var err error
	if merge {
		_, err = r.client.Collection(collection).Doc(id).Set(ctx, data, gfs.MergeAll)
	} else {
		_, err = r.client.Collection(collection).Doc(id).Set(ctx, data)
	}
	if err != nil {
		return fmt.Errorf("failed to set document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (r *DocumentRepository) Add(ctx context.Context, collection string, fields model.Fields) (string, error) {
	ref, _, err := r.client.Collection(collection).Add(ctx, encodeFields(fields))
	if err != nil {
		return "", fmt.Errorf("failed to add document to %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (r *DocumentRepository) List(ctx context.Context, collection string) ([]*model.Document, error) {
	iter := r.client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	docs := make([]*model.Document, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list documents in %s: %w", collection, err)
		}
		docs = append(docs, &model.Document{ID: snap.Ref.ID, Collection: collection, Fields: model.Fields(snap.Data())})
	}
	return docs, nil
}

// Ping lists a single collection id to verify connectivity.
func (r *DocumentRepository) Ping(ctx context.Context) error {
	_, err := r.client.Collections(ctx).Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

func (r *DocumentRepository) Close(ctx context.Context) error {
	return r.client.Close()
}

// encodeFields swaps the ServerTimestamp sentinel for Firestore's own and
// flattens named map types the SDK does not reflect into.
func encodeFields(fields model.Fields) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if model.IsServerTimestamp(v) {
			out[k] = gfs.ServerTimestamp
			continue
		}
		out[k] = encodeValue(v)
	}
	return out
}

func encodeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case model.Fields:
		return encodeFields(t)
	case map[string]interface{}:
		return encodeFields(model.Fields(t))
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = encodeValue(e)
		}
		return out
	default:
		return v
	}
}
