package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bloops-games/achievements/internal/cache"
	"github.com/bloops-games/achievements/internal/database"
	"github.com/bloops-games/achievements/internal/database/session/model"
	"github.com/bloops-games/achievements/internal/logging"
	bolt "go.etcd.io/bbolt"
)

var ErrNotFound = fmt.Errorf("not found")

const (
	bucket = "session"
	// Key is the well-known storage key of the current session record.
	Key = "currentUser"
)

func New(db *database.DB, cache cache.Cache) *DB {
	return &DB{sDB: db, cache: cache}
}

type DB struct {
	sDB *database.DB

	cache cache.Cache
}

// Load returns the stored session. A missing or undecodable record is ErrNotFound.
func (db *DB) Load(ctx context.Context) (model.Session, error) {
	logger := logging.FromContext(ctx).Named("session.Load")

	var s model.Session
	if db.cache != nil {
		if v, ok := db.cache.Get(Key); ok {
			return v.(model.Session), nil
		}
	}

	var bytes []byte
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return ErrNotFound
		}

		v := b.Get([]byte(Key))
		if v == nil {
			return ErrNotFound
		}

		// v is only valid inside the transaction
		bytes = append(bytes, v...)
		return nil
	}); err != nil {
		if errors.Is(err, ErrNotFound) {
			return s, ErrNotFound
		}

		return s, fmt.Errorf("view transaction error: %w", err)
	}

	if err := json.Unmarshal(bytes, &s); err != nil {
		logger.Warnf("malformed session record, treating as absent: %v", err)
		return model.Session{}, ErrNotFound
	}

	if s.Username == "" {
		return model.Session{}, ErrNotFound
	}

	if db.cache != nil {
		db.cache.Add(Key, s)
	}

	return s, nil
}

// Save overwrites the stored session.
func (db *DB) Save(m model.Session) error {
	bytes, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		if err := b.Put([]byte(Key), bytes); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	if db.cache != nil {
		db.cache.Add(Key, m)
	}

	return nil
}

func (db *DB) Clear() error {
	if db.cache != nil {
		db.cache.Delete(Key)
	}

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}

		if err := b.Delete([]byte(Key)); err != nil {
			return fmt.Errorf("delete from bucket error: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}
