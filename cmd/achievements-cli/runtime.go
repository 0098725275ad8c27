package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bloops-games/achievements/internal/api"
	"github.com/bloops-games/achievements/internal/cache"
	"github.com/bloops-games/achievements/internal/database"
	sessionDb "github.com/bloops-games/achievements/internal/database/session/database"
	"github.com/bloops-games/achievements/internal/logging"
	"github.com/bloops-games/achievements/internal/tracker"
)

// runtime holds what every command needs. It is set up once per process, the
// interactive shell reuses it across commands.
type runtime struct {
	config tracker.Config
	in     *bufio.Reader
	out    io.Writer

	db      *database.DB
	client  *api.Client
	manager *tracker.Manager
}

func (rt *runtime) setup(ctx context.Context) error {
	if rt.manager != nil {
		return nil
	}

	logger := logging.FromContext(ctx).Named("main.setup")

	client, err := api.New(rt.config.API, api.WithDebug(rt.config.Debug))
	if err != nil {
		return fmt.Errorf("api.New: %w", err)
	}

	db, err := database.NewFromEnv(ctx, &rt.config.DB)
	if err != nil {
		return fmt.Errorf("new database from env: %w", err)
	}

	sessionCache, err := cache.NewLRU(rt.config.CacheSize)
	if err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("can not create lru cache: %w", err)
	}

	manager := tracker.NewManager(&rt.config, client, sessionDb.New(db, sessionCache))
	if err := manager.Restore(ctx); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("restore session: %w", err)
	}

	rt.db = db
	rt.client = client
	rt.manager = manager
	logger.Debugf("backend %s, state %s", client.BaseURL(), manager.State(ctx))

	return nil
}

func (rt *runtime) close(ctx context.Context) {
	if rt.manager != nil {
		rt.manager.Close()
	}

	if rt.db != nil {
		if err := rt.db.Close(ctx); err != nil {
			logging.FromContext(ctx).Errorf("close: %v", err)
		}
	}
}

func (rt *runtime) print(s string) {
	_, _ = fmt.Fprint(rt.out, s)
	if !strings.HasSuffix(s, "\n") {
		_, _ = fmt.Fprintln(rt.out)
	}
}

// confirm asks a yes/no question, anything but y or yes is a no.
func (rt *runtime) confirm(question string) (bool, error) {
	_, _ = fmt.Fprintf(rt.out, "%s [y/N]: ", question)

	line, err := rt.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
