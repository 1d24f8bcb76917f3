package usecase

import (
	"context"
	"sort"

	"sharvari-site/internal/contact/domain/model"
	"sharvari-site/internal/shared/errors"
	"sharvari-site/internal/shared/eventbus"
	"sharvari-site/internal/shared/logger"
	"sharvari-site/internal/shared/validation"
	storemodel "sharvari-site/internal/store/domain/model"
)

// Form messages.
const (
	MsgInvalidEmail   = "Please enter a valid email address."
	MsgInvalidMobile  = "Please enter a valid 10-digit mobile number."
	MsgFieldsRequired = "Please fill in all fields."
)

// An empty email or mobile fails its format check first.
var formMessages = validation.Messages{
	"email.required":                   MsgInvalidEmail,
	"email." + validation.TagSiteEmail: MsgInvalidEmail,
	"mobile.required":                  MsgInvalidMobile,
	"mobile." + validation.TagMobile:   MsgInvalidMobile,
	"required":                         MsgFieldsRequired,
}

// DocumentClient is the part of the store client the intake needs.
type DocumentClient interface {
	GetDocument(ctx context.Context, collection, id string) (storemodel.Fields, error)
	AddDocument(ctx context.Context, collection string, fields storemodel.Fields) (string, error)
	GetCollection(ctx context.Context, collection string) []*storemodel.Document
}

// Intake validates contact submissions and lists them for the dashboard.
type Intake struct {
	store     DocumentClient
	validator *validation.Validator
	logger    logger.Logger
}

// NewIntake creates an Intake.
func NewIntake(store DocumentClient, log logger.Logger) *Intake {
	if log == nil {
		log = eventbus.NoopLogger()
	}
	return &Intake{
		store:     store,
		validator: validation.New(),
		logger:    log.WithComponent("contact-intake"),
	}
}

// Submit validates s and appends it to the messages collection. Nothing is
// written when validation fails.
func (in *Intake) Submit(ctx context.Context, s model.Submission) (string, error) {
	if err := in.validator.Struct(s, formMessages); err != nil {
		return "", err
	}
	id, err := in.store.AddDocument(ctx, model.Collection, s.Fields())
	if err != nil {
		return "", err
	}
	in.logger.WithContext(ctx).Infof("Contact message %s received", id)
	return id, nil
}

// List returns every message, newest first. Messages without a creation
// time sort last.
func (in *Intake) List(ctx context.Context) []model.Message {
	docs := in.store.GetCollection(ctx, model.Collection)
	out := make([]model.Message, 0, len(docs))
	for _, doc := range docs {
		out = append(out, model.FromDocument(doc))
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CreatedAt, out[j].CreatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return out
}

// Get returns a single message.
func (in *Intake) Get(ctx context.Context, id string) (*model.Message, error) {
	fields, err := in.store.GetDocument(ctx, model.Collection, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError("message").WithCause(err)
		}
		return nil, err
	}
	m := model.FromDocument(&storemodel.Document{ID: id, Collection: model.Collection, Fields: fields})
	return &m, nil
}
