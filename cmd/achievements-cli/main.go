package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bloops-games/achievements/internal/logging"
	"github.com/bloops-games/achievements/internal/shutdown"
	"github.com/bloops-games/achievements/internal/tracker"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	ctx, done := shutdown.New()
	defer done()

	config := tracker.Config{}
	if err := envconfig.Process("", &config); err != nil {
		logging.DefaultLogger().Fatalf("processing the config: %v", err)
	}

	logger := logging.NewLogger(config.Debug)
	ctx = logging.WithLogger(ctx, logger)

	if err := realMain(ctx, config, os.Args); err != nil {
		if !errors.Is(err, errFailed) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		done()
		os.Exit(1)
	}
}

func realMain(ctx context.Context, config tracker.Config, args []string) error {
	rt := &runtime{
		config: config,
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	defer rt.close(ctx)

	return newApp(rt).RunContext(ctx, args)
}
