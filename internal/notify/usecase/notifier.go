package usecase

import (
	"context"

	"sharvari-site/internal/notify/domain/model"
	"sharvari-site/internal/notify/domain/repository"
	"sharvari-site/internal/shared/eventbus"
	"sharvari-site/internal/shared/logger"
	"sharvari-site/internal/shared/utils"
)

// Service records notifications and fans them out over the event bus.
type Service struct {
	bus    *eventbus.EventBus
	store  repository.NotificationStore
	logger logger.Logger
}

// NewService builds a notification Service. store may be nil.
func NewService(bus *eventbus.EventBus, store repository.NotificationStore, log logger.Logger) *Service {
	return &Service{
		bus:    bus,
		store:  store,
		logger: log.WithComponent("notifier"),
	}
}

// Success emits a success notification.
func (s *Service) Success(ctx context.Context, message string) {
	s.emit(ctx, model.LevelSuccess, message)
}

// Error emits an error notification.
func (s *Service) Error(ctx context.Context, message string) {
	s.emit(ctx, model.LevelError, message)
}

// Info emits an informational notification.
func (s *Service) Info(ctx context.Context, message string) {
	s.emit(ctx, model.LevelInfo, message)
}

func (s *Service) emit(ctx context.Context, level model.Level, message string) {
	userID, _ := utils.GetUserIDFromContext(ctx)
	n := model.New(level, message, userID)

	if s.store != nil {
		id, err := s.store.Append(ctx, n)
		if err != nil {
			s.logger.Warnf("Notification not persisted: %v", err)
		} else {
			n.ID = id
		}
	}

	if level == model.LevelError {
		s.logger.WithContext(ctx).Warn(message)
	} else {
		s.logger.WithContext(ctx).Debug(message)
	}

	if err := s.bus.Publish(ctx, eventbus.NewBasicEventWithSource(eventbus.EventTypeNotification, n, "notifier")); err != nil {
		s.logger.Warnf("Notification delivery failed: %v", err)
	}
}

// Recent returns up to limit stored notifications, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]model.Notification, error) {
	if s.store == nil {
		return []model.Notification{}, nil
	}
	return s.store.Recent(ctx, limit)
}

// Listen calls fn for every notification until the returned cancel func is called.
func (s *Service) Listen(fn func(model.Notification)) eventbus.CancelFunc {
	return s.bus.Subscribe(eventbus.EventTypeNotification, func(ctx context.Context, event eventbus.Event) error {
		if n, ok := event.Data().(model.Notification); ok {
			fn(n)
		}
		return nil
	})
}
