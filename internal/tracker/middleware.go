package tracker

import (
	"context"

	"github.com/bloops-games/achievements/internal/database/session/model"
)

// RequireAdmin reports whether the stored session may open the admin panel. When it may
// not, the caller opens the admin path anyway and lets the router redirect.
func (m *Manager) RequireAdmin(ctx context.Context) (model.Session, bool) {
	route, s := m.resolve(ctx, ViewAdmin.Path())
	if route.Redirected {
		return model.Session{}, false
	}

	return s, true
}
