package view

import (
	"context"
	"fmt"

	"github.com/bloops-games/achievements/internal/api"
	"github.com/bloops-games/achievements/internal/database/session/model"
	"github.com/bloops-games/achievements/internal/tracker/resource"
	"golang.org/x/sync/errgroup"
)

// AdminPanel manages users and their unlock maps. It is not safe for concurrent use.
type AdminPanel struct {
	backend Backend
	session model.Session
	// called after the caller's own account was deleted
	onSelfDeleted func(username string)

	users        []api.User
	achievements []api.CatalogAchievement
	selected     string
	// achievement id -> unlocked, for the selected user
	unlocks       map[string]bool
	search        string
	pendingDelete string

	// one shared slot each, cleared when the next operation starts
	message string
	err     string
}

func NewAdminPanel(backend Backend, session model.Session, onSelfDeleted func(username string)) *AdminPanel {
	return &AdminPanel{
		backend:       backend,
		session:       session,
		onSelfDeleted: onSelfDeleted,
		unlocks:       map[string]bool{},
	}
}

// Load fetches users and the catalog in parallel and drops the current selection.
func (p *AdminPanel) Load(ctx context.Context) error {
	p.err = ""

	var users []api.User
	var achievements []api.CatalogAchievement
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := p.backend.Users(gCtx)
		if err != nil {
			return err
		}
		users = list
		return nil
	})
	g.Go(func() error {
		list, err := p.backend.AllAchievements(gCtx)
		if err != nil {
			return err
		}
		achievements = list
		return nil
	})

	if err := g.Wait(); err != nil {
		p.err = err.Error()
		return fmt.Errorf("admin panel load: %w", err)
	}

	p.users = users
	p.achievements = achievements
	p.selected = ""
	p.unlocks = map[string]bool{}
	return nil
}

// SelectUser fetches the unlock map of username. The admin account has no achievement set.
func (p *AdminPanel) SelectUser(ctx context.Context, username string) error {
	p.err = ""
	p.message = ""

	if username == "" {
		return p.fail(invalid(resource.TextSelectUserFirst))
	}

	if model.IsAdminUsername(username) {
		return p.fail(invalid(resource.TextCannotManageAdmin))
	}

	p.selected = username
	p.unlocks = map[string]bool{}

	list, err := p.backend.UserAchievements(ctx, username)
	if err != nil {
		return p.fail(fmt.Errorf("user achievements: %w", err))
	}

	unlocks := make(map[string]bool, len(list))
	for _, a := range list {
		unlocks[a.ID] = a.Unlocked
	}

	p.unlocks = unlocks
	return nil
}

// Toggle flips the selected user's unlock flag for achievementID and, on success,
// updates only that entry of the local map.
func (p *AdminPanel) Toggle(ctx context.Context, achievementID string) error {
	p.err = ""
	p.message = ""

	if p.selected == "" {
		return p.fail(invalid(resource.TextSelectUserFirst))
	}

	if model.IsAdminUsername(p.selected) {
		return p.fail(invalid(resource.TextCannotManageAdmin))
	}

	username := p.selected
	next := !p.unlocks[achievementID]
	if _, err := p.backend.UpdateAchievement(ctx, username, achievementID, next); err != nil {
		return p.fail(fmt.Errorf("update achievement: %w", err))
	}

	p.unlocks[achievementID] = next

	state := resource.TextLocked
	if next {
		state = resource.TextUnlocked
	}
	p.message = fmt.Sprintf(resource.TextAchievementToggled, state, username)

	return nil
}

// RequestDelete starts the confirmation step for deleting username.
func (p *AdminPanel) RequestDelete(username string) error {
	p.err = ""
	p.message = ""

	if username == "" {
		return p.fail(invalid(resource.TextSelectUserToDelete))
	}

	if model.IsAdminUsername(username) {
		return p.fail(invalid(resource.TextCannotDeleteAdmin))
	}

	if username == p.session.Username {
		p.err = resource.TextSelfDeleteWarning
	}

	p.pendingDelete = username
	return nil
}

func (p *AdminPanel) CancelDelete() {
	p.pendingDelete = ""
	p.err = ""
}

func (p *AdminPanel) PendingDelete() string {
	return p.pendingDelete
}

// ConfirmDelete deletes the pending user, then refreshes the user list. Deleting the
// caller's own account hands over to onSelfDeleted, which logs out after a delay.
func (p *AdminPanel) ConfirmDelete(ctx context.Context) error {
	username := p.pendingDelete
	p.err = ""
	p.message = ""

	if username == "" {
		return p.fail(invalid(resource.TextSelectUserToDelete))
	}

	if model.IsAdminUsername(username) {
		return p.fail(invalid(resource.TextCannotDeleteAdmin))
	}

	if _, err := p.backend.DeleteUser(ctx, username); err != nil {
		return p.fail(fmt.Errorf("delete user: %w", err))
	}

	p.message = fmt.Sprintf(resource.TextUserDeleted, username)
	p.pendingDelete = ""

	if username == p.session.Username && p.onSelfDeleted != nil {
		p.onSelfDeleted(username)
	}

	if err := p.Load(ctx); err != nil {
		return fmt.Errorf("refresh after delete: %w", err)
	}

	return nil
}

func (p *AdminPanel) fail(err error) error {
	p.err = ErrorMessage(err)
	return err
}

func (p *AdminPanel) SetSearch(term string) {
	p.search = term
}

func (p *AdminPanel) Search() string {
	return p.search
}

func (p *AdminPanel) Message() string {
	return p.message
}

func (p *AdminPanel) Err() string {
	return p.err
}

func (p *AdminPanel) Selected() string {
	return p.selected
}

// Unlocked reports the selected user's flag, absent entries are locked.
func (p *AdminPanel) Unlocked(achievementID string) bool {
	return p.unlocks[achievementID]
}

// UnlockMap returns a copy of the selected user's unlock map.
func (p *AdminPanel) UnlockMap() map[string]bool {
	m := make(map[string]bool, len(p.unlocks))
	for k, v := range p.unlocks {
		m[k] = v
	}

	return m
}

func (p *AdminPanel) AllUsers() []api.User {
	return p.users
}

func (p *AdminPanel) AllAchievements() []api.CatalogAchievement {
	return p.achievements
}

// Users applies the search term to usernames.
func (p *AdminPanel) Users() []api.User {
	filtered := make([]api.User, 0, len(p.users))
	for _, u := range p.users {
		if MatchesSearch(u.Username, "", p.search) {
			filtered = append(filtered, u)
		}
	}

	return filtered
}

// Achievements applies the same search term to names and descriptions.
func (p *AdminPanel) Achievements() []api.CatalogAchievement {
	filtered := make([]api.CatalogAchievement, 0, len(p.achievements))
	for _, a := range p.achievements {
		if MatchesSearch(a.Name, a.Description, p.search) {
			filtered = append(filtered, a)
		}
	}

	return filtered
}
