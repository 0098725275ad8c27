package tracker

import (
	"strings"

	"github.com/bloops-games/achievements/internal/database/session/model"
)

type State uint8

const (
	StateUnauthenticated State = iota
	StateRegular
	StateAdmin
)

func (s State) String() string {
	switch s {
	case StateRegular:
		return "regular"
	case StateAdmin:
		return "admin"
	default:
		return "unauthenticated"
	}
}

// StateOf derives the router state from the current session, nil means logged out.
func StateOf(s *model.Session) State {
	switch {
	case s == nil:
		return StateUnauthenticated
	case s.IsAdmin:
		return StateAdmin
	default:
		return StateRegular
	}
}

type View string

const (
	ViewLogin        View = "login"
	ViewAchievements View = "achievements"
	ViewCatalog      View = "all-achievements"
	ViewStatistics   View = "statistics"
	ViewAdmin        View = "admin"
)

var Views = []View{ViewLogin, ViewAchievements, ViewCatalog, ViewStatistics, ViewAdmin}

func (v View) Path() string {
	if v == ViewLogin {
		return "/"
	}

	return "/" + string(v)
}

// ParsePath maps a path to its view, unknown paths are the root.
func ParsePath(path string) View {
	p := strings.Trim(strings.TrimSpace(path), "/")
	for _, v := range Views {
		if string(v) == p {
			return v
		}
	}

	return ViewLogin
}

// routes is the redirect target of every state and requested view. Equal means render.
var routes = map[State]map[View]View{
	StateUnauthenticated: {
		ViewLogin:        ViewLogin,
		ViewAchievements: ViewLogin,
		ViewCatalog:      ViewLogin,
		ViewStatistics:   ViewLogin,
		ViewAdmin:        ViewLogin,
	},
	StateRegular: {
		ViewLogin:        ViewAchievements,
		ViewAchievements: ViewAchievements,
		ViewCatalog:      ViewCatalog,
		ViewStatistics:   ViewStatistics,
		ViewAdmin:        ViewAchievements,
	},
	StateAdmin: {
		ViewLogin:        ViewAdmin,
		ViewAchievements: ViewAdmin,
		ViewCatalog:      ViewCatalog,
		ViewStatistics:   ViewStatistics,
		ViewAdmin:        ViewAdmin,
	},
}

type Route struct {
	Requested  View
	View       View
	Redirected bool
}

// Resolve picks the view to render for a navigation. Redirects are followed here,
// the disallowed view is never mounted.
func Resolve(state State, requested View) Route {
	target, ok := routes[state][requested]
	if !ok {
		target = routes[state][ViewLogin]
	}

	return Route{Requested: requested, View: target, Redirected: target != requested}
}
