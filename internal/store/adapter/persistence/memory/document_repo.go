package memory

import (
	"context"
	"sync"
	"time"

	"sharvari-site/internal/shared/errors"
	"sharvari-site/internal/store/domain/model"
	"sharvari-site/internal/store/domain/repository"

	"github.com/google/uuid"
)

var _ repository.DocumentRepository = (*DocumentRepository)(nil)

// DocumentRepository keeps documents in process memory. Used for local
// development and tests.
type DocumentRepository struct {
	mu    sync.RWMutex
	data  map[string]map[string]model.Fields
	now   func() time.Time
	newID func() string
	// FailWith, when set, is returned by every operation.
	FailWith error
}

// NewDocumentRepository creates an empty in-memory repository.
func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{
		data:  make(map[string]map[string]model.Fields),
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.NewString() },
	}
}

func (r *DocumentRepository) Get(ctx context.Context, collection, id string) (*model.Document, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	fields, ok := r.data[collection][id]
	if !ok {
		return nil, errors.ErrDocumentNotFound
	}
	return &model.Document{ID: id, Collection: collection, Fields: fields.Clone()}, nil
}

func (r *DocumentRepository) Set(ctx context.Context, collection, id string, fields model.Fields, merge bool) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	col := r.collection(collection)
	stored := r.resolve(fields)
	if existing, ok := col[id]; ok && merge {
		col[id] = existing.Merge(stored)
		return nil
	}
	col[id] = stored
	return nil
}

func (r *DocumentRepository) Add(ctx context.Context, collection string, fields model.Fields) (string, error) {
	if r.FailWith != nil {
		return "", r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	r.collection(collection)[id] = r.resolve(fields)
	return id, nil
}

func (r *DocumentRepository) List(ctx context.Context, collection string) ([]*model.Document, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]*model.Document, 0, len(r.data[collection]))
	for id, fields := range r.data[collection] {
		docs = append(docs, &model.Document{ID: id, Collection: collection, Fields: fields.Clone()})
	}
	return docs, nil
}

func (r *DocumentRepository) Ping(ctx context.Context) error {
	return r.FailWith
}

func (r *DocumentRepository) Close(ctx context.Context) error {
	return nil
}

// collection must be called with the write lock held.
func (r *DocumentRepository) collection(name string) map[string]model.Fields {
	col, ok := r.data[name]
	if !ok {
		col = make(map[string]model.Fields)
		r.data[name] = col
	}
	return col
}

func (r *DocumentRepository) resolve(fields model.Fields) model.Fields {
	out := fields.Clone()
	if out == nil {
		out = model.Fields{}
	}
	now := r.now()
	for k, v := range out {
		if model.IsServerTimestamp(v) {
			out[k] = now
		}
	}
	return out
}
