package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sessionDb "github.com/bloops-games/achievements/internal/database/session/database"
	"github.com/bloops-games/achievements/internal/database/session/model"
	"github.com/bloops-games/achievements/internal/logging"
	"github.com/bloops-games/achievements/internal/tracker/view"
	"github.com/bloops-games/achievements/internal/util"
)

// SessionStore persists the current session between runs.
type SessionStore interface {
	Load(ctx context.Context) (model.Session, error)
	Save(s model.Session) error
	Clear() error
}

var _ SessionStore = (*sessionDb.DB)(nil)

// Manager owns the current session. Login and Logout are its only writers, every read goes
// through the store and views get the session passed in by value.
type Manager struct {
	mtx sync.RWMutex

	config  *Config
	backend view.Backend
	store   SessionStore

	// identity the session context belongs to, the store stays the source of truth
	owner string
	// cancelled whenever the identity changes
	ctxSess    context.Context
	cancelSess func()

	// scheduled logouts
	pending sync.WaitGroup
}

func NewManager(config *Config, backend view.Backend, store SessionStore) *Manager {
	m := &Manager{config: config, backend: backend, store: store}
	m.ctxSess, m.cancelSess = context.WithCancel(context.Background())
	return m
}

// Restore loads the session persisted by the last successful login. Missing or
// malformed data leaves the manager logged out.
func (m *Manager) Restore(ctx context.Context) error {
	logger := logging.FromContext(ctx).Named("tracker.Restore")

	s, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, sessionDb.ErrNotFound) {
			logger.Debugf("no stored session")
			m.setSession(nil)
			return nil
		}

		return fmt.Errorf("load session: %w", err)
	}

	m.setSession(&s)
	logger.Debugf("restored session of %s, admin: %t", s.Username, s.IsAdmin)
	return nil
}

// Session reads the current session from the store. A store failure is logged and
// treated as logged out.
func (m *Manager) Session(ctx context.Context) (model.Session, bool) {
	s, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, sessionDb.ErrNotFound) {
			logging.FromContext(ctx).Named("tracker.Session").Errorf("load session: %v", err)
		}

		return model.Session{}, false
	}

	return s, true
}

func (m *Manager) State(ctx context.Context) State {
	s, ok := m.Session(ctx)
	if !ok {
		return StateUnauthenticated
	}

	return StateOf(&s)
}

// Navigate resolves path against the stored session.
func (m *Manager) Navigate(ctx context.Context, path string) Route {
	route, _ := m.resolve(ctx, path)
	return route
}

// resolve reads the session once and routes path for it.
func (m *Manager) resolve(ctx context.Context, path string) (Route, model.Session) {
	s, ok := m.Session(ctx)
	if !ok {
		return Resolve(StateUnauthenticated, ParsePath(path)), model.Session{}
	}

	return Resolve(StateOf(&s), ParsePath(path)), s
}

func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	m.setSession(nil)
	logging.FromContext(ctx).Named("tracker.Logout").Debugf("session cleared")
	return nil
}

// Close waits for scheduled logouts.
func (m *Manager) Close() {
	m.pending.Wait()
}

// setSession replaces the session context when the identity changes.
func (m *Manager) setSession(s *model.Session) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	owner := ""
	if s != nil {
		owner = s.Username
	}

	if owner == m.owner {
		return
	}

	m.owner = owner
	m.cancelSess()
	m.ctxSess, m.cancelSess = context.WithCancel(context.Background())
}

// WithSession derives a context that is also cancelled when the identity changes, so
// responses fetched for a previous session are dropped.
func (m *Manager) WithSession(ctx context.Context) (context.Context, context.CancelFunc) {
	m.mtx.RLock()
	sess := m.ctxSess
	m.mtx.RUnlock()

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		select {
		case <-sess.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// scheduleLogout logs out after the configured delay if username is still signed in.
func (m *Manager) scheduleLogout(ctx context.Context, username string) {
	logger := logging.FromContext(ctx).Named("tracker.scheduleLogout")

	m.mtx.RLock()
	sess := m.ctxSess
	m.mtx.RUnlock()

	m.pending.Add(1)
	go func() {
		defer m.pending.Done()

		if !util.Sleep(sess, m.config.LogoutDelay) {
			return
		}

		current, ok := m.Session(ctx)
		if !ok || current.Username != username {
			return
		}

		if err := m.Logout(ctx); err != nil {
			logger.Errorf("logout of deleted account %s: %v", username, err)
		}
	}()
}
