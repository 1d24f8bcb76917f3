package repository

import (
	"context"

	"sharvari-site/internal/store/domain/model"
)

// DocumentRepository is the persistence port for documents keyed by
// (collection, id). Implementations return errors.ErrDocumentNotFound from
// Get when the document does not exist.
type DocumentRepository interface {
	Get(ctx context.Context, collection, id string) (*model.Document, error)
	// Set writes fields to the document, creating it if needed. With merge the
	// given top-level fields replace the stored ones and all other fields are kept.
	Set(ctx context.Context, collection, id string, fields model.Fields, merge bool) error
	// Add creates a document with a store-assigned id.
	Add(ctx context.Context, collection string, fields model.Fields) (string, error)
	// List returns every document of a collection in no particular order.
	List(ctx context.Context, collection string) ([]*model.Document, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
