package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/bloops-games/achievements/internal/cache"
	"github.com/bloops-games/achievements/internal/database"
	"github.com/bloops-games/achievements/internal/database/session/model"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func newTestDB(t *testing.T, withCache bool) *DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.NewFromEnv(ctx, &database.Config{FilePath: filepath.Join(t.TempDir(), "state.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(ctx) })

	var c cache.Cache
	if withCache {
		lru, err := cache.NewLRU(4)
		require.NoError(t, err)
		c = lru
	}

	return New(db, c)
}

func TestLoadEmpty(t *testing.T) {
	t.Parallel()

	db := newTestDB(t, true)
	_, err := db.Load(context.Background())
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestSaveLoadOverwrite(t *testing.T) {
	t.Parallel()

	for _, withCache := range []bool{true, false} {
		db := newTestDB(t, withCache)

		require.NoError(t, db.Save(model.Session{Username: "alice"}))
		require.NoError(t, db.Save(model.Session{Username: "admin", IsAdmin: true}))

		s, err := db.Load(context.Background())
		require.NoError(t, err)
		require.Equal(t, model.Session{Username: "admin", IsAdmin: true}, s)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	db := newTestDB(t, true)
	require.NoError(t, db.Clear(), "clearing an empty store")

	require.NoError(t, db.Save(model.Session{Username: "bob"}))
	_, err := db.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, db.Clear())
	_, err = db.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{username:"},
		{name: "wrong type", raw: `{"username": 42}`},
		{name: "empty username", raw: `{"username": "", "isAdmin": true}`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			db := newTestDB(t, false)
			require.NoError(t, db.sDB.DB.Update(func(tx *bolt.Tx) error {
				b, err := tx.CreateBucketIfNotExists([]byte(bucket))
				if err != nil {
					return err
				}
				return b.Put([]byte(Key), []byte(tc.raw))
			}))

			_, err := db.Load(context.Background())
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSurvivesReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	config := &database.Config{FilePath: filepath.Join(t.TempDir(), "state.db")}

	db, err := database.NewFromEnv(ctx, config)
	require.NoError(t, err)
	require.NoError(t, New(db, nil).Save(model.Session{Username: "carol"}))
	require.NoError(t, db.Close(ctx))

	db, err = database.NewFromEnv(ctx, config)
	require.NoError(t, err)
	defer db.Close(ctx)

	s, err := New(db, nil).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "carol", s.Username)
	require.False(t, s.IsAdmin)
}
