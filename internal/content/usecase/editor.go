package usecase

import (
	"context"
	"fmt"
	"sync"

	"sharvari-site/internal/content/domain/model"
	settingsmodel "sharvari-site/internal/settings/domain/model"
	"sharvari-site/internal/shared/errors"
	"sharvari-site/internal/shared/eventbus"
	"sharvari-site/internal/shared/logger"
	"sharvari-site/internal/shared/validation"
	storemodel "sharvari-site/internal/store/domain/model"
)

// Operator-facing messages.
const (
	MsgContactFieldRequired = "Please fill in at least one contact field."
	MsgInvalidEmail         = "Please enter a valid email address."
	MsgAboutSectionsLocked  = "Sections on the About page cannot be deleted."
	msgLoadFailed           = "Failed to load page data."
)

// DocumentClient is the part of the store client the editor needs.
type DocumentClient interface {
	GetDocument(ctx context.Context, collection, id string) (storemodel.Fields, error)
	UpdateDocument(ctx context.Context, collection, id string, fields storemodel.Fields) error
}

// Notifier surfaces transient messages to the operator.
type Notifier interface {
	Error(ctx context.Context, message string)
}

type draftKey struct {
	owner string
	page  model.PageID
}

// Editor holds one in-memory draft per (admin, page). Every edit works on
// the whole draft; Save writes the whole draft.
type Editor struct {
	store    DocumentClient
	notifier Notifier
	logger   logger.Logger

	mu     sync.Mutex
	drafts map[draftKey]*model.Page
}

// NewEditor creates an Editor. notifier may be nil.
func NewEditor(store DocumentClient, notifier Notifier, log logger.Logger) *Editor {
	if log == nil {
		log = eventbus.NoopLogger()
	}
	return &Editor{
		store:    store,
		notifier: notifier,
		logger:   log.WithComponent("content-editor"),
		drafts:   make(map[draftKey]*model.Page),
	}
}

// Read returns the stored page, or its default when no document exists,
// normalized. Store failures are returned unchanged.
func (e *Editor) Read(ctx context.Context, page model.PageID) (*model.Page, error) {
	collection, id := page.Ref()
	fields, err := e.store.GetDocument(ctx, collection, id)
	var p *model.Page
	switch {
	case err == nil:
		p = model.FromFields(page, fields)
	case errors.IsNotFound(err):
		p = model.Default(page)
	default:
		return nil, err
	}
	model.Normalize(p)
	return p, nil
}

// View builds the public read model of a content page.
func (e *Editor) View(ctx context.Context, page model.PageID) (*model.View, error) {
	if !page.IsContent() {
		return nil, errors.NewNotFoundError("page").WithCause(errors.ErrUnknownPage)
	}
	p, err := e.Read(ctx, page)
	if err != nil {
		return nil, err
	}
	return model.NewView(p), nil
}

// Load (re)reads the page into the owner's draft, discarding unsaved edits.
// Missing About sections are seeded into the draft only.
func (e *Editor) Load(ctx context.Context, owner string, page model.PageID) (*model.Page, error) {
	p, err := e.Read(ctx, page)
	if err != nil {
		e.logger.WithContext(ctx).Errorf("Error loading page %s: %v", page, err)
		e.notifyError(ctx, msgLoadFailed)
		return nil, err
	}
	if page == model.PageAbout {
		if n := model.SeedAboutSections(p); n > 0 {
			e.logger.WithContext(ctx).Debugf("Seeded %d About sections", n)
		}
	}

	e.mu.Lock()
	e.drafts[draftKey{owner, page}] = p
	e.mu.Unlock()
	return p.Clone(), nil
}

// Draft returns the owner's draft, loading it first if needed.
func (e *Editor) Draft(ctx context.Context, owner string, page model.PageID) (*model.Page, error) {
	e.mu.Lock()
	p, ok := e.drafts[draftKey{owner, page}]
	if ok {
		cp := p.Clone()
		e.mu.Unlock()
		return cp, nil
	}
	e.mu.Unlock()
	return e.Load(ctx, owner, page)
}

// Discard drops the owner's draft.
func (e *Editor) Discard(owner string, page model.PageID) {
	e.mu.Lock()
	delete(e.drafts, draftKey{owner, page})
	e.mu.Unlock()
}

// DiscardOwner drops every draft of owner, e.g. on sign-out.
func (e *Editor) DiscardOwner(owner string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for k := range e.drafts {
		if k.owner == owner {
			delete(e.drafts, k)
		}
	}
}

// edit applies fn to a copy of the draft and keeps the copy only if fn
// succeeds, so a failed edit leaves the draft untouched.
func (e *Editor) edit(ctx context.Context, owner string, page model.PageID, fn func(*model.Page) error) (*model.Page, error) {
	if _, err := e.Draft(ctx, owner, page); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	key := draftKey{owner, page}
	current, ok := e.drafts[key]
	if !ok {
		// discarded between Draft and here
		return nil, errors.NewNotFoundError("draft")
	}
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	e.drafts[key] = next
	return next.Clone(), nil
}

// SetFields edits scalar fields. Keys must be known scalar fields of the page.
func (e *Editor) SetFields(ctx context.Context, owner string, page model.PageID, patch map[string]interface{}) (*model.Page, error) {
	return e.edit(ctx, owner, page, func(p *model.Page) error {
		return applyScalars(p, patch)
	})
}

// AddItem appends to a list field. An empty payload adds the field's default element.
func (e *Editor) AddItem(ctx context.Context, owner string, page model.PageID, field string, payload []byte) (*model.Page, error) {
	ops, err := model.Lists(field)
	if err != nil {
		return nil, err
	}
	return e.edit(ctx, owner, page, func(p *model.Page) error {
		return ops.Add(p, payload)
	})
}

// DeleteItem removes element i of a list field.
func (e *Editor) DeleteItem(ctx context.Context, owner string, page model.PageID, field string, i int) (*model.Page, error) {
	ops, err := model.Lists(field)
	if err != nil {
		return nil, err
	}
	if page == model.PageAbout && field == model.FieldSections {
		return nil, errors.NewValidationError(MsgAboutSectionsLocked)
	}
	return e.edit(ctx, owner, page, func(p *model.Page) error {
		return ops.Delete(p, i)
	})
}

// MoveItem swaps element i with its neighbour in dir.
func (e *Editor) MoveItem(ctx context.Context, owner string, page model.PageID, field string, i int, dir model.Direction) (*model.Page, error) {
	ops, err := model.Lists(field)
	if err != nil {
		return nil, err
	}
	return e.edit(ctx, owner, page, func(p *model.Page) error {
		return ops.Move(p, i, dir)
	})
}

// ReplaceItem overwrites element i with payload.
func (e *Editor) ReplaceItem(ctx context.Context, owner string, page model.PageID, field string, i int, payload []byte) (*model.Page, error) {
	ops, err := model.Lists(field)
	if err != nil {
		return nil, err
	}
	return e.edit(ctx, owner, page, func(p *model.Page) error {
		return ops.Replace(p, i, payload)
	})
}

// SetColumns re-derives the columns of category cat from a comma separated list.
func (e *Editor) SetColumns(ctx context.Context, owner string, page model.PageID, cat int, columns string) (*model.Page, error) {
	return e.editCategory(ctx, owner, page, cat, func(c *model.ProjectCategory) error {
		c.SetColumns(columns)
		return nil
	})
}

// AddRow appends an empty row to category cat.
func (e *Editor) AddRow(ctx context.Context, owner string, page model.PageID, cat int) (*model.Page, error) {
	return e.editCategory(ctx, owner, page, cat, func(c *model.ProjectCategory) error {
		c.AddRow()
		return nil
	})
}

// SetCell sets one cell of category cat.
func (e *Editor) SetCell(ctx context.Context, owner string, page model.PageID, cat, row int, col, value string) (*model.Page, error) {
	return e.editCategory(ctx, owner, page, cat, func(c *model.ProjectCategory) error {
		return c.SetCell(row, col, value)
	})
}

// DeleteRow removes a row of category cat.
func (e *Editor) DeleteRow(ctx context.Context, owner string, page model.PageID, cat, row int) (*model.Page, error) {
	return e.editCategory(ctx, owner, page, cat, func(c *model.ProjectCategory) error {
		return c.DeleteRow(row)
	})
}

// SetCategoryTitle renames category cat.
func (e *Editor) SetCategoryTitle(ctx context.Context, owner string, page model.PageID, cat int, title string) (*model.Page, error) {
	return e.editCategory(ctx, owner, page, cat, func(c *model.ProjectCategory) error {
		c.Title = title
		return nil
	})
}

func (e *Editor) editCategory(ctx context.Context, owner string, page model.PageID, cat int, fn func(*model.ProjectCategory) error) (*model.Page, error) {
	return e.edit(ctx, owner, page, func(p *model.Page) error {
		return p.ProjectCategories.Update(cat, fn)
	})
}

// Save writes the whole draft. The settings page is validated first; the
// site-wide settings pick up the write from the store's document.updated event.
func (e *Editor) Save(ctx context.Context, owner string, page model.PageID) (*model.Page, error) {
	draft, err := e.Draft(ctx, owner, page)
	if err != nil {
		return nil, err
	}

	if page == model.PageSettings {
		if err := validateSettings(draft); err != nil {
			e.notifyError(ctx, err.Message)
			return nil, err
		}
	}

	collection, id := page.Ref()
	if err := e.store.UpdateDocument(ctx, collection, id, draft.ToFields()); err != nil {
		return nil, err
	}
	e.logger.WithContext(ctx).Infof("Page %s saved by %s", page, owner)
	return draft, nil
}

func validateSettings(p *model.Page) *errors.AppError {
	if p.Email == "" && p.Phone == "" && p.Address == "" {
		return errors.NewValidationError(MsgContactFieldRequired)
	}
	if p.Email != "" && !validation.IsEmail(p.Email) {
		return errors.NewValidationError(MsgInvalidEmail).WithDetail("field", "email")
	}
	return nil
}

func applyScalars(p *model.Page, patch map[string]interface{}) error {
	for key, raw := range patch {
		if key == model.FieldShowHero && p.ID.IsContent() {
			b, ok := raw.(bool)
			if !ok {
				return errors.NewValidationError(fmt.Sprintf("%s must be a boolean", key))
			}
			p.ShowHero = &b
			continue
		}

		target := scalarField(p, key)
		if target == nil {
			return errors.NewValidationError(fmt.Sprintf("%q is not an editable field", key)).
				WithCause(errors.ErrUnknownField)
		}
		s, ok := raw.(string)
		if !ok {
			return errors.NewValidationError(fmt.Sprintf("%s must be a string", key))
		}
		*target = s
	}
	return nil
}

func scalarField(p *model.Page, key string) *string {
	if p.ID == model.PageSettings {
		switch key {
		case settingsmodel.KeyEmail:
			return &p.Email
		case settingsmodel.KeyPhone:
			return &p.Phone
		case settingsmodel.KeyAddress:
			return &p.Address
		}
		return nil
	}
	switch key {
	case model.FieldTitle:
		return &p.Title
	case model.FieldHeroText:
		return &p.HeroText
	case model.FieldHeroImage:
		return &p.HeroImage
	case model.FieldAboutImage:
		return &p.AboutImage
	case model.FieldInfraImage1:
		return &p.InfraImage1
	case model.FieldInfraImage2:
		return &p.InfraImage2
	}
	return nil
}

func (e *Editor) notifyError(ctx context.Context, msg string) {
	if e.notifier != nil {
		e.notifier.Error(ctx, msg)
	}
}
