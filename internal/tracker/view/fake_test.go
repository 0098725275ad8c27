package view

import (
	"context"
	"net/http"
	"sync"

	"github.com/bloops-games/achievements/internal/api"
)

// fakeBackend keeps per-user unlock maps in memory and counts calls.
type fakeBackend struct {
	mtx sync.Mutex

	users   []api.User
	catalog []api.CatalogAchievement
	unlocks map[string]map[string]bool
	stats   api.Statistics
	// failures by method name
	errs  map[string]error
	calls map[string]int

	updates []api.UpdateAchievementRequest
	deleted []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		unlocks: map[string]map[string]bool{},
		errs:    map[string]error{},
		calls:   map[string]int{},
	}
}

func (f *fakeBackend) call(name string) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.calls[name]++
	return f.errs[name]
}

func (f *fakeBackend) count(name string) int {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) totalCalls() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeBackend) Login(_ context.Context, username string) (api.LoginResponse, error) {
	if err := f.call("Login"); err != nil {
		return api.LoginResponse{}, err
	}
	return api.LoginResponse{Message: "Welcome " + username, Username: username}, nil
}

func (f *fakeBackend) UserAchievements(_ context.Context, username string) ([]api.Achievement, error) {
	if err := f.call("UserAchievements"); err != nil {
		return nil, err
	}

	f.mtx.Lock()
	defer f.mtx.Unlock()
	list := make([]api.Achievement, 0, len(f.catalog))
	for _, c := range f.catalog {
		list = append(list, api.Achievement{
			ID: c.ID, Name: c.Name, Description: c.Description, ImageURL: c.ImageURL,
			Unlocked: f.unlocks[username][c.ID],
		})
	}
	return list, nil
}

func (f *fakeBackend) AllAchievements(context.Context) ([]api.CatalogAchievement, error) {
	if err := f.call("AllAchievements"); err != nil {
		return nil, err
	}
	return f.catalog, nil
}

func (f *fakeBackend) Users(context.Context) ([]api.User, error) {
	if err := f.call("Users"); err != nil {
		return nil, err
	}
	return f.users, nil
}

func (f *fakeBackend) UpdateAchievement(_ context.Context, username, id string, unlocked bool) (api.UpdateAchievementResponse, error) {
	if err := f.call("UpdateAchievement"); err != nil {
		return api.UpdateAchievementResponse{}, err
	}

	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.updates = append(f.updates, api.UpdateAchievementRequest{Username: username, AchievementID: id, Unlocked: unlocked})
	if f.unlocks[username] == nil {
		f.unlocks[username] = map[string]bool{}
	}
	f.unlocks[username][id] = unlocked
	return api.UpdateAchievementResponse{Username: username, AchievementID: id, Unlocked: unlocked}, nil
}

func (f *fakeBackend) DeleteUser(_ context.Context, username string) (api.DeleteUserResponse, error) {
	if err := f.call("DeleteUser"); err != nil {
		return api.DeleteUserResponse{}, err
	}

	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.deleted = append(f.deleted, username)
	kept := f.users[:0:0]
	for _, u := range f.users {
		if u.Username != username {
			kept = append(kept, u)
		}
	}
	f.users = kept
	return api.DeleteUserResponse{DeletedUser: username}, nil
}

func (f *fakeBackend) Statistics(context.Context) (api.Statistics, error) {
	if err := f.call("Statistics"); err != nil {
		return api.Statistics{}, err
	}
	return f.stats, nil
}

func (f *fakeBackend) UserStatistics(_ context.Context, username string) (api.UserStatistics, error) {
	if err := f.call("UserStatistics"); err != nil {
		return api.UserStatistics{}, err
	}
	return api.UserStatistics{Username: username, Rank: 1}, nil
}

func backendErr(op, detail string) error {
	return &api.Error{Op: op, Status: http.StatusBadRequest, Detail: detail}
}

func testCatalog() []api.CatalogAchievement {
	return []api.CatalogAchievement{
		{ID: "did_cr", Name: "Code Reviewer", Description: "Reviewed a pull request", UnlockCount: 2},
		{ID: "found_bug", Name: "Bug Hunter", Description: "Found a bug in production", UnlockCount: 0},
		{ID: "wrote_code", Name: "Coder", Description: "Wrote some code", UnlockCount: 1},
	}
}
