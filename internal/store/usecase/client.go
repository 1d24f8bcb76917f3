package usecase

import (
	"context"
	"fmt"

	"sharvari-site/internal/shared/errors"
	"sharvari-site/internal/shared/eventbus"
	"sharvari-site/internal/shared/logger"
	"sharvari-site/internal/store/domain/model"
	"sharvari-site/internal/store/domain/repository"
)

// Notification texts shown to the operator.
const (
	MsgSaved          = "Saved successfully!"
	MsgSubmitted      = "Submitted successfully!"
	msgFetchFailed    = "Error fetching data: %v"
	msgUpdateFailed   = "Error updating data: %v"
	msgSubmitFailed   = "Error submitting data: %v"
	msgFetchColFailed = "Error fetching collection: %v"
)

// Notifier surfaces transient success/error messages to the operator.
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

// EventPublisher is the part of the event bus the client needs.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event) error
}

// DocumentChange is the payload of document.created and document.updated events.
type DocumentChange struct {
	Collection string
	ID         string
	Fields     model.Fields
}

// DocumentClient is the application-facing store API.
type DocumentClient interface {
	// GetDocument returns the document fields. A missing document yields an
	// error for which errors.IsNotFound is true.
	GetDocument(ctx context.Context, collection, id string) (model.Fields, error)
	// UpdateDocument merges fields into the document, creating it if needed,
	// and stamps updatedAt.
	UpdateDocument(ctx context.Context, collection, id string, fields model.Fields) error
	// AddDocument creates a document with a store-assigned id and stamps createdAt.
	AddDocument(ctx context.Context, collection string, fields model.Fields) (string, error)
	// GetCollection lists a collection. Failures are reported through the
	// notifier and yield an empty slice.
	GetCollection(ctx context.Context, collection string) []*model.Document
}

// Client implements DocumentClient on top of a DocumentRepository.
type Client struct {
	repo     repository.DocumentRepository
	notifier Notifier
	events   EventPublisher
	logger   logger.Logger
}

// NewClient builds a Client. notifier and events may be nil.
func NewClient(repo repository.DocumentRepository, notifier Notifier, events EventPublisher, log logger.Logger) *Client {
	if log == nil {
		log = eventbus.NoopLogger()
	}
	return &Client{
		repo:     repo,
		notifier: notifier,
		events:   events,
		logger:   log.WithComponent("store-client"),
	}
}

var _ DocumentClient = (*Client)(nil)

func (c *Client) GetDocument(ctx context.Context, collection, id string) (model.Fields, error) {
	if err := model.ValidateRef(collection, id, true); err != nil {
		return nil, errors.NewValidationError(err.Error()).WithCause(err)
	}

	doc, err := c.repo.Get(ctx, collection, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError("document").WithCause(err).WithDetail("path", collection+"/"+id)
		}
		c.logger.WithContext(ctx).Errorf("Failed to fetch %s/%s: %v", collection, id, err)
		c.notifyError(ctx, fmt.Sprintf(msgFetchFailed, err))
		return nil, errors.NewStoreError("failed to fetch document").WithCause(err)
	}
	if doc.Fields == nil {
		return model.Fields{}, nil
	}
	return doc.Fields, nil
}

func (c *Client) UpdateDocument(ctx context.Context, collection, id string, fields model.Fields) error {
	if err := model.ValidateRef(collection, id, true); err != nil {
		return errors.NewValidationError(err.Error()).WithCause(err)
	}

	data := fields.Clone()
	if data == nil {
		data = model.Fields{}
	}
	data[model.FieldUpdatedAt] = model.ServerTimestamp

	if err := c.repo.Set(ctx, collection, id, data, true); err != nil {
		c.logger.WithContext(ctx).Errorf("Failed to update %s/%s: %v", collection, id, err)
		c.notifyError(ctx, fmt.Sprintf(msgUpdateFailed, err))
		return errors.NewStoreError("failed to update document").WithCause(err)
	}

	c.logger.WithContext(ctx).Infof("Document %s/%s saved", collection, id)
	c.notifySuccess(ctx, MsgSaved)
	c.publish(ctx, eventbus.EventTypeDocumentUpdated, DocumentChange{Collection: collection, ID: id, Fields: fields.Clone()})
	return nil
}

func (c *Client) AddDocument(ctx context.Context, collection string, fields model.Fields) (string, error) {
	if err := model.ValidateRef(collection, "", false); err != nil {
		return "", errors.NewValidationError(err.Error()).WithCause(err)
	}

	data := fields.Clone()
	if data == nil {
		data = model.Fields{}
	}
	data[model.FieldCreatedAt] = model.ServerTimestamp

	id, err := c.repo.Add(ctx, collection, data)
	if err != nil {
		c.logger.WithContext(ctx).Errorf("Failed to add document to %s: %v", collection, err)
		c.notifyError(ctx, fmt.Sprintf(msgSubmitFailed, err))
		return "", errors.NewStoreError("failed to add document").WithCause(err)
	}

	c.notifySuccess(ctx, MsgSubmitted)
	c.publish(ctx, eventbus.EventTypeDocumentCreated, DocumentChange{Collection: collection, ID: id, Fields: fields.Clone()})
	return id, nil
}

func (c *Client) GetCollection(ctx context.Context, collection string) []*model.Document {
	if err := model.ValidateRef(collection, "", false); err != nil {
		c.notifyError(ctx, fmt.Sprintf(msgFetchColFailed, err))
		return []*model.Document{}
	}

	docs, err := c.repo.List(ctx, collection)
	if err != nil {
		c.logger.WithContext(ctx).Errorf("Failed to list %s: %v", collection, err)
		c.notifyError(ctx, fmt.Sprintf(msgFetchColFailed, err))
		return []*model.Document{}
	}
	return docs
}

// Ping checks the backing store.
func (c *Client) Ping(ctx context.Context) error {
	return c.repo.Ping(ctx)
}

func (c *Client) notifySuccess(ctx context.Context, msg string) {
	if c.notifier != nil {
		c.notifier.Success(ctx, msg)
	}
}

func (c *Client) notifyError(ctx context.Context, msg string) {
	if c.notifier != nil {
		c.notifier.Error(ctx, msg)
	}
}

func (c *Client) publish(ctx context.Context, eventType string, change DocumentChange) {
	if c.events == nil {
		return
	}
	if err := c.events.Publish(ctx, eventbus.NewBasicEventWithSource(eventType, change, "store")); err != nil {
		c.logger.Warnf("Subscriber failed for %s on %s/%s: %v", eventType, change.Collection, change.ID, err)
	}
}
