package tracker

import (
	"context"
	"fmt"

	"github.com/bloops-games/achievements/internal/database/session/model"
	"github.com/bloops-games/achievements/internal/logging"
	"github.com/bloops-games/achievements/internal/tracker/view"
)

type OpenOptions struct {
	Filter view.Filter
	Search string
	Tab    view.Tab
}

// Screen is a rendered navigation result.
type Screen struct {
	Route Route
	Text  string
}

// Open resolves path through the router, mounts the resulting view, fetches its data and
// renders it. A failed fetch still renders the view with its error, the error is returned too.
func (m *Manager) Open(ctx context.Context, path string, opts OpenOptions) (Screen, error) {
	logger := logging.FromContext(ctx).Named("tracker.Open")

	route, s := m.resolve(ctx, path)
	if route.Redirected {
		logger.Debugf("redirect %s -> %s", route.Requested, route.View)
	}

	screen := Screen{Route: route}

	ctx, cancel := m.WithSession(ctx)
	defer cancel()

	var err error
	switch route.View {
	case ViewAchievements:
		v := view.NewAchievements(m.backend, s)
		v.SetFilter(opts.Filter)
		v.SetSearch(opts.Search)
		err = v.Load(ctx)
		screen.Text = RenderAchievements(v)
	case ViewCatalog:
		v := view.NewCatalog(m.backend)
		v.SetSearch(opts.Search)
		err = v.Load(ctx)
		screen.Text = RenderCatalog(v, s)
	case ViewStatistics:
		v := view.NewStatistics(m.backend, s)
		if opts.Tab != "" {
			v.SetTab(opts.Tab)
		}
		err = v.Load(ctx)
		screen.Text = RenderStatistics(v)
	case ViewAdmin:
		p := m.AdminPanel(ctx, s)
		p.SetSearch(opts.Search)
		err = p.Load(ctx)
		screen.Text = RenderAdmin(p, s)
	default:
		screen.Text = RenderLogin("")
	}

	screen.Text = RenderRedirect(route) + screen.Text

	if err != nil {
		return screen, fmt.Errorf("open %s: %w", route.View, err)
	}

	return screen, nil
}

// AdminPanel mounts the admin panel for s. Deleting the own account logs out after LogoutDelay.
func (m *Manager) AdminPanel(ctx context.Context, s model.Session) *view.AdminPanel {
	return view.NewAdminPanel(m.backend, s, func(username string) {
		m.scheduleLogout(ctx, username)
	})
}
