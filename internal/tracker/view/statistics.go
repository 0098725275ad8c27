package view

import (
	"context"
	"fmt"

	"github.com/bloops-games/achievements/internal/api"
	"github.com/bloops-games/achievements/internal/database/session/model"
	"golang.org/x/sync/errgroup"
)

type Tab string

const (
	TabRankings     Tab = "rankings"
	TabAchievements Tab = "achievements"
	TabPersonal     Tab = "personal"
)

func ParseTab(s string) (Tab, error) {
	switch t := Tab(s); t {
	case TabRankings, TabAchievements, TabPersonal:
		return t, nil
	case "":
		return TabRankings, nil
	default:
		return "", fmt.Errorf("unknown tab %q, expected rankings, achievements or personal", s)
	}
}

// Statistics shows backend-computed rankings and popularity verbatim. Personal
// statistics exist only for non-admin sessions.
type Statistics struct {
	backend Backend
	session model.Session

	stats    *api.Statistics
	personal *api.UserStatistics
	tab      Tab
	err      string
}

func NewStatistics(backend Backend, session model.Session) *Statistics {
	return &Statistics{backend: backend, session: session, tab: TabRankings}
}

func (v *Statistics) Load(ctx context.Context) error {
	v.err = ""

	var stats api.Statistics
	var personal api.UserStatistics
	withPersonal := v.PersonalAvailable()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := v.backend.Statistics(gCtx)
		if err != nil {
			return err
		}
		stats = s
		return nil
	})

	if withPersonal {
		g.Go(func() error {
			s, err := v.backend.UserStatistics(gCtx, v.session.Username)
			if err != nil {
				return err
			}
			personal = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		v.err = err.Error()
		return fmt.Errorf("statistics load: %w", err)
	}

	v.stats = &stats
	v.personal = nil
	if withPersonal {
		v.personal = &personal
	}

	return nil
}

func (v *Statistics) PersonalAvailable() bool {
	return !v.session.IsAdmin
}

func (v *Statistics) SetTab(t Tab) {
	v.tab = t
}

func (v *Statistics) Tab() Tab {
	return v.tab
}

// Tabs lists the selectable tabs, admins do not get the personal one.
func (v *Statistics) Tabs() []Tab {
	if v.PersonalAvailable() {
		return []Tab{TabRankings, TabAchievements, TabPersonal}
	}

	return []Tab{TabRankings, TabAchievements}
}

func (v *Statistics) Err() string {
	return v.err
}

func (v *Statistics) Session() model.Session {
	return v.session
}

func (v *Statistics) Global() *api.Statistics {
	return v.stats
}

func (v *Statistics) Personal() *api.UserStatistics {
	return v.personal
}
