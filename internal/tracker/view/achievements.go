package view

import (
	"context"
	"fmt"

	"github.com/bloops-games/achievements/internal/api"
	"github.com/bloops-games/achievements/internal/database/session/model"
)

type Filter string

const (
	FilterAll      Filter = "all"
	FilterUnlocked Filter = "unlocked"
	FilterLocked   Filter = "locked"
)

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case FilterAll, FilterUnlocked, FilterLocked:
		return f, nil
	case "":
		return FilterAll, nil
	default:
		return "", fmt.Errorf("unknown filter %q, expected all, unlocked or locked", s)
	}
}

func (f Filter) matches(a api.Achievement) bool {
	switch f {
	case FilterUnlocked:
		return a.Unlocked
	case FilterLocked:
		return !a.Unlocked
	default:
		return true
	}
}

// FilterAchievements keeps the entries matching both the status filter and the search term.
func FilterAchievements(list []api.Achievement, filter Filter, search string) []api.Achievement {
	filtered := make([]api.Achievement, 0, len(list))
	for _, a := range list {
		if filter.matches(a) && MatchesSearch(a.Name, a.Description, search) {
			filtered = append(filtered, a)
		}
	}

	return filtered
}

// Achievements is the signed-in user's own list.
type Achievements struct {
	backend Backend
	session model.Session

	achievements []api.Achievement
	filter       Filter
	search       string
	err          string
}

func NewAchievements(backend Backend, session model.Session) *Achievements {
	return &Achievements{backend: backend, session: session, filter: FilterAll}
}

func (v *Achievements) Load(ctx context.Context) error {
	v.err = ""

	list, err := v.backend.UserAchievements(ctx, v.session.Username)
	if err != nil {
		v.err = err.Error()
		return fmt.Errorf("user achievements: %w", err)
	}

	v.achievements = list
	return nil
}

func (v *Achievements) SetFilter(f Filter) {
	if f == "" {
		f = FilterAll
	}

	v.filter = f
}

func (v *Achievements) SetSearch(term string) {
	v.search = term
}

func (v *Achievements) Filter() Filter {
	return v.filter
}

func (v *Achievements) Search() string {
	return v.search
}

func (v *Achievements) Err() string {
	return v.err
}

func (v *Achievements) Session() model.Session {
	return v.session
}

func (v *Achievements) All() []api.Achievement {
	return v.achievements
}

func (v *Achievements) Filtered() []api.Achievement {
	return FilterAchievements(v.achievements, v.filter, v.search)
}

// Counts returns the sizes shown on the filter buttons.
func (v *Achievements) Counts() (all, unlocked, locked int) {
	for _, a := range v.achievements {
		if a.Unlocked {
			unlocked++
		}
	}

	all = len(v.achievements)
	return all, unlocked, all - unlocked
}

func (v *Achievements) Progress() float64 {
	all, unlocked, _ := v.Counts()
	return Percent(unlocked, all)
}
