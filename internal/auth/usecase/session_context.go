package usecase

import (
	"context"
	"sync"

	"sharvari-site/internal/auth/domain/model"
	"sharvari-site/internal/shared/errors"
	"sharvari-site/internal/shared/eventbus"
	"sharvari-site/internal/shared/logger"
	storemodel "sharvari-site/internal/store/domain/model"
)

// RoleReader reads the users/{uid} profile document.
type RoleReader interface {
	GetDocument(ctx context.Context, collection, id string) (storemodel.Fields, error)
}

// SessionObserver delivers session changes.
type SessionObserver interface {
	Observe(fn func(model.SessionChange)) func()
}

// SessionContext tracks one session and its resolved role. It starts in
// Loading and moves to one of the settled states on every session change.
// The role is read at most once per change; a failed read counts as
// non-admin.
type SessionContext struct {
	roles  RoleReader
	logger logger.Logger

	mu         sync.RWMutex
	state      model.RoleState
	session    *model.Session
	generation uint64
	subs       map[uint64]func(model.RoleState)
	nextSubID  uint64
	unobserve  func()
	torn       bool
}

// NewSessionContext creates a context in the Loading state.
func NewSessionContext(roles RoleReader, log logger.Logger) *SessionContext {
	if log == nil {
		log = eventbus.NoopLogger()
	}
	return &SessionContext{
		roles:  roles,
		logger: log.WithComponent("session-context"),
		state:  model.Loading,
		subs:   make(map[uint64]func(model.RoleState)),
	}
}

// Init settles the context for current (nil means signed out). When
// observer is set, a later sign-out of the same token moves the context to
// Unauthenticated.
func (s *SessionContext) Init(ctx context.Context, observer SessionObserver, current *model.Session) {
	if observer != nil {
		var tokenID string
		if current != nil {
			tokenID = current.TokenID
		}
		unobserve := observer.Observe(func(change model.SessionChange) {
			if change.Kind == model.SignedOut && tokenID != "" && change.Session.TokenID == tokenID {
				s.HandleSessionChange(context.Background(), nil)
			}
		})
		s.mu.Lock()
		if s.torn {
			s.mu.Unlock()
			unobserve()
			return
		}
		s.unobserve = unobserve
		s.mu.Unlock()
	}
	s.HandleSessionChange(ctx, current)
}

// HandleSessionChange moves the context to the state matching sess.
func (s *SessionContext) HandleSessionChange(ctx context.Context, sess *model.Session) {
	s.mu.Lock()
	if s.torn {
		s.mu.Unlock()
		return
	}
	s.generation++
	gen := s.generation
	if sess == nil {
		s.session = nil
		s.mu.Unlock()
		s.settle(gen, nil, model.Unauthenticated)
		return
	}
	s.state = model.Loading
	s.mu.Unlock()

	state := s.resolveRole(ctx, sess.UID)
	copied := *sess
	s.settle(gen, &copied, state)
}

func (s *SessionContext) resolveRole(ctx context.Context, uid string) model.RoleState {
	if s.roles == nil {
		return model.AuthenticatedNonAdmin
	}
	fields, err := s.roles.GetDocument(ctx, model.UsersCollection, uid)
	if err != nil {
		if !errors.IsNotFound(err) {
			s.logger.WithContext(ctx).Warnf("Role lookup for %s failed: %v", uid, err)
		}
		return model.AuthenticatedNonAdmin
	}
	if fields.String("role") == model.RoleAdmin {
		return model.AuthenticatedAdmin
	}
	return model.AuthenticatedNonAdmin
}

// settle applies a resolved state unless a newer change superseded it.
func (s *SessionContext) settle(gen uint64, sess *model.Session, state model.RoleState) {
	s.mu.Lock()
	if s.torn || gen != s.generation {
		s.mu.Unlock()
		return
	}
	changed := s.state != state
	s.state = state
	s.session = sess
	subs := make([]func(model.RoleState), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range subs {
		fn(state)
	}
}

// State returns the current role state.
func (s *SessionContext) State() model.RoleState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Session returns a copy of the current session, or nil.
func (s *SessionContext) Session() *model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	copied := *s.session
	return &copied
}

// IsAdmin reports whether the context settled on AuthenticatedAdmin.
func (s *SessionContext) IsAdmin() bool {
	return s.State() == model.AuthenticatedAdmin
}

// Subscribe calls fn on every state transition until the returned func is called.
func (s *SessionContext) Subscribe(fn func(model.RoleState)) func() {
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

// Teardown stops observing session changes and drops all subscribers.
func (s *SessionContext) Teardown() {
	s.mu.Lock()
	if s.torn {
		s.mu.Unlock()
		return
	}
	s.torn = true
	unobserve := s.unobserve
	s.unobserve = nil
	s.subs = make(map[uint64]func(model.RoleState))
	s.mu.Unlock()

	if unobserve != nil {
		unobserve()
	}
}
