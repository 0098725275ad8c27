package tracker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bloops-games/achievements/internal/api"
	"github.com/bloops-games/achievements/internal/cache"
	"github.com/bloops-games/achievements/internal/database"
	sessionDb "github.com/bloops-games/achievements/internal/database/session/database"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// testBackend is an in-memory achievements backend served over HTTP.
type testBackend struct {
	mtx sync.Mutex

	users   map[string]bool
	catalog []api.CatalogAchievement
	unlocks map[string]map[string]bool
	// request counts by chi route pattern, e.g. "GET /users"
	hits map[string]int
	// forced failures by route pattern
	fail map[string]string
}

func newTestBackend() *testBackend {
	return &testBackend{
		users: map[string]bool{"admin": true},
		catalog: []api.CatalogAchievement{
			{ID: "did_cr", Name: "Code Reviewer", Description: "Reviewed a pull request"},
			{ID: "found_bug", Name: "Bug Hunter", Description: "Found a bug"},
		},
		unlocks: map[string]map[string]bool{},
		hits:    map[string]int{},
		fail:    map[string]string{},
	}
}

func (b *testBackend) count(route string) int {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.hits[route]
}

func (b *testBackend) addUser(username string, unlocked ...string) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.users[username] = true
	b.unlocks[username] = map[string]bool{}
	for _, id := range unlocked {
		b.unlocks[username][id] = true
	}
}

func (b *testBackend) failWith(route, detail string) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.fail[route] = detail
}

func (b *testBackend) reply(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// track counts the request and answers a forced failure, it reports whether the handler should go on.
func (b *testBackend) track(route string, w http.ResponseWriter) bool {
	b.mtx.Lock()
	b.hits[route]++
	detail, failing := b.fail[route]
	b.mtx.Unlock()

	if failing {
		b.reply(w, http.StatusBadRequest, map[string]string{"detail": detail})
		return false
	}

	return true
}

func (b *testBackend) router() http.Handler {
	r := chi.NewRouter()
	r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		if !b.track("POST /login", w) {
			return
		}

		var req struct {
			Username string `json:"username"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		b.mtx.Lock()
		b.users[req.Username] = true
		b.mtx.Unlock()
		b.reply(w, http.StatusOK, api.LoginResponse{Message: "Welcome " + req.Username + "!", Username: req.Username})
	})
	r.Get("/users", func(w http.ResponseWriter, r *http.Request) {
		if !b.track("GET /users", w) {
			return
		}

		b.mtx.Lock()
		users := make([]api.User, 0, len(b.users))
		for u := range b.users {
			users = append(users, api.User{Username: u})
		}
		b.mtx.Unlock()
		b.reply(w, http.StatusOK, map[string]interface{}{"users": users})
	})
	r.Get("/achievements", func(w http.ResponseWriter, r *http.Request) {
		if !b.track("GET /achievements", w) {
			return
		}
		b.reply(w, http.StatusOK, map[string]interface{}{"achievements": b.catalog})
	})
	r.Get("/achievements/{username}", func(w http.ResponseWriter, r *http.Request) {
		if !b.track("GET /achievements/{username}", w) {
			return
		}

		username := chi.URLParam(r, "username")
		b.mtx.Lock()
		list := make([]api.Achievement, 0, len(b.catalog))
		for _, c := range b.catalog {
			list = append(list, api.Achievement{ID: c.ID, Name: c.Name, Description: c.Description, Unlocked: b.unlocks[username][c.ID]})
		}
		b.mtx.Unlock()
		b.reply(w, http.StatusOK, map[string]interface{}{"username": username, "achievements": list})
	})
	r.Delete("/admin/delete-user/{username}", func(w http.ResponseWriter, r *http.Request) {
		if !b.track("DELETE /admin/delete-user/{username}", w) {
			return
		}

		username := chi.URLParam(r, "username")
		b.mtx.Lock()
		delete(b.users, username)
		delete(b.unlocks, username)
		b.mtx.Unlock()
		b.reply(w, http.StatusOK, api.DeleteUserResponse{Message: "deleted", DeletedUser: username})
	})
	r.Get("/statistics", func(w http.ResponseWriter, r *http.Request) {
		if !b.track("GET /statistics", w) {
			return
		}
		b.reply(w, http.StatusOK, api.Statistics{
			OverallStats: api.OverallStats{TotalUsers: 2, TotalAchievements: 2, TotalUnlocks: 1},
			UserRankings: []api.RankingEntry{{Username: "bob", AchievementsCount: 1, TotalAchievements: 2, CompletionPercentage: 50}},
		})
	})
	r.Get("/statistics/{username}", func(w http.ResponseWriter, r *http.Request) {
		if !b.track("GET /statistics/{username}", w) {
			return
		}
		b.reply(w, http.StatusOK, api.UserStatistics{Username: chi.URLParam(r, "username"), Rank: 1, TotalUsers: 2})
	})

	return r
}

// countingCache records reads of the session cache.
type countingCache struct {
	cache.Cache

	mtx  sync.Mutex
	gets int
	hits int
}

func (c *countingCache) Get(key string) (interface{}, bool) {
	v, ok := c.Cache.Get(key)

	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.gets++
	if ok {
		c.hits++
	}

	return v, ok
}

func (c *countingCache) counts() (gets, hits int) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.gets, c.hits
}

type testEnv struct {
	backend *testBackend
	cache   *countingCache
	store   *sessionDb.DB
	manager *Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	backend := newTestBackend()
	srv := httptest.NewServer(backend.router())
	t.Cleanup(srv.Close)

	config := &Config{
		CacheSize:   4,
		LogoutDelay: 50 * time.Millisecond,
		API:         api.Config{URL: srv.URL, Timeout: 5 * time.Second},
		DB:          database.Config{FilePath: filepath.Join(t.TempDir(), "achievements.db")},
	}

	client, err := api.New(config.API)
	require.NoError(t, err)

	db, err := database.NewFromEnv(ctx, &config.DB)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(ctx) })

	lru, err := cache.NewLRU(config.CacheSize)
	require.NoError(t, err)

	sessionCache := &countingCache{Cache: lru}
	store := sessionDb.New(db, sessionCache)
	m := NewManager(config, client, store)
	t.Cleanup(m.Close)
	require.NoError(t, m.Restore(ctx))

	return &testEnv{backend: backend, cache: sessionCache, store: store, manager: m}
}

func confirmNever(t *testing.T) Confirmer {
	return ConfirmFunc(func(ctx context.Context, username string) (bool, error) {
		t.Fatalf("unexpected confirmation for %s", username)
		return false, nil
	})
}
