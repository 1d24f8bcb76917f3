package usecase

import (
	"context"
	"sync"

	"sharvari-site/internal/settings/domain/model"
	"sharvari-site/internal/shared/errors"
	"sharvari-site/internal/shared/eventbus"
	"sharvari-site/internal/shared/logger"
	storemodel "sharvari-site/internal/store/domain/model"
	storeusecase "sharvari-site/internal/store/usecase"
)

// DocumentReader reads a single document.
type DocumentReader interface {
	GetDocument(ctx context.Context, collection, id string) (storemodel.Fields, error)
}

// EventBus is the part of the shared bus the settings service uses.
type EventBus interface {
	Publish(ctx context.Context, event eventbus.Event) error
	Subscribe(eventType string, handler eventbus.Handler) eventbus.CancelFunc
}

// SiteSettings holds the site-wide contact settings. It starts from the
// defaults, is filled by one read of settings/general and re-reads on
// Refresh or whenever that document is saved. There is no write path.
type SiteSettings struct {
	reader DocumentReader
	logger logger.Logger

	mu        sync.RWMutex
	settings  model.Settings
	loading   bool
	subs      map[uint64]func(model.Settings)
	nextSubID uint64
	bus       EventBus
	cancel    eventbus.CancelFunc
}

// NewSiteSettings creates the service holding the defaults.
func NewSiteSettings(reader DocumentReader, log logger.Logger) *SiteSettings {
	if log == nil {
		log = eventbus.NoopLogger()
	}
	return &SiteSettings{
		reader:   reader,
		logger:   log.WithComponent("site-settings"),
		settings: model.Defaults(),
		loading:  true,
		subs:     make(map[uint64]func(model.Settings)),
	}
}

// Init performs the initial read. With a bus, saves of settings/general
// trigger a refresh and every refresh is announced as settings.refreshed.
func (s *SiteSettings) Init(ctx context.Context, bus EventBus) {
	if bus != nil {
		cancel := bus.Subscribe(eventbus.EventTypeDocumentUpdated, func(ctx context.Context, event eventbus.Event) error {
			change, ok := event.Data().(storeusecase.DocumentChange)
			if ok && change.Collection == model.Collection && change.ID == model.DocumentID {
				s.Refresh(ctx)
			}
			return nil
		})
		s.mu.Lock()
		s.bus = bus
		s.cancel = cancel
		s.mu.Unlock()
	}
	s.Refresh(ctx)
}

// Refresh re-reads settings/general. A missing document or a failed read
// keeps the current values.
func (s *SiteSettings) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	fields, err := s.reader.GetDocument(ctx, model.Collection, model.DocumentID)

	s.mu.Lock()
	switch {
	case err == nil:
		s.settings = s.settings.Overlay(fields)
	case errors.IsNotFound(err):
		s.logger.WithContext(ctx).Debug("No settings document, keeping defaults")
	default:
		s.logger.WithContext(ctx).Errorf("Failed to fetch site settings: %v", err)
	}
	s.loading = false
	current := s.settings.Clone()
	bus := s.bus
	subs := make([]func(model.Settings), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(current.Clone())
	}
	if bus != nil && err == nil {
		if perr := bus.Publish(ctx, eventbus.NewBasicEventWithSource(eventbus.EventTypeSettingsRefreshed, current, "settings")); perr != nil {
			s.logger.Warnf("Settings subscribers failed: %v", perr)
		}
	}
}

// Get returns a copy of the current settings.
func (s *SiteSettings) Get() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

// Loading reports whether a read is in flight or has not happened yet.
func (s *SiteSettings) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Subscribe calls fn with the settings after every refresh.
func (s *SiteSettings) Subscribe(fn func(model.Settings)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Teardown detaches from the bus and drops all subscribers.
func (s *SiteSettings) Teardown() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.bus = nil
	s.subs = make(map[uint64]func(model.Settings))
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
