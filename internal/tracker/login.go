package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bloops-games/achievements/internal/database/session/model"
	"github.com/bloops-games/achievements/internal/logging"
	"github.com/bloops-games/achievements/internal/tracker/resource"
	"github.com/bloops-games/achievements/internal/tracker/view"
)

var ErrLoginCancelled = errors.New(resource.TextLoginCancelled)

// Confirmer asks whether an unknown username should be created.
type Confirmer interface {
	ConfirmNewUser(ctx context.Context, username string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, username string) (bool, error)

func (f ConfirmFunc) ConfirmNewUser(ctx context.Context, username string) (bool, error) {
	return f(ctx, username)
}

// Login signs in username. The admin account skips the existence check, any other
// unknown username needs one confirmation before the backend creates it.
func (m *Manager) Login(ctx context.Context, input string, confirm Confirmer) (model.Session, error) {
	logger := logging.FromContext(ctx).Named("tracker.Login")

	username := strings.TrimSpace(input)
	if username == "" {
		return model.Session{}, &view.ValidationError{Message: resource.TextEnterUsername}
	}

	s := model.New(username)
	if !s.IsAdmin {
		exists, err := m.userExists(ctx, username)
		if err != nil {
			return model.Session{}, err
		}

		if !exists {
			ok, err := confirm.ConfirmNewUser(ctx, username)
			if err != nil {
				return model.Session{}, fmt.Errorf("confirm new user: %w", err)
			}

			if !ok {
				logger.Debugf("creation of %s declined", username)
				return model.Session{}, ErrLoginCancelled
			}
		}
	}

	if _, err := m.backend.Login(ctx, username); err != nil {
		return model.Session{}, err
	}

	if err := m.store.Save(s); err != nil {
		return model.Session{}, fmt.Errorf("save session: %w", err)
	}

	m.setSession(&s)
	logger.Debugf("logged in as %s, admin: %t", s.Username, s.IsAdmin)
	return s, nil
}

func (m *Manager) userExists(ctx context.Context, username string) (bool, error) {
	users, err := m.backend.Users(ctx)
	if err != nil {
		return false, err
	}

	for _, u := range users {
		if u.Username == username {
			return true, nil
		}
	}

	return false, nil
}
