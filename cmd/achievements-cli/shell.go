package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bloops-games/achievements/internal/buildinfo"
	"github.com/bloops-games/achievements/internal/logging"
)

// shell runs commands line by line against the same runtime, like one long-lived page.
func (rt *runtime) shell(ctx context.Context) error {
	logger := logging.FromContext(ctx).Named("main.shell")

	_, _ = fmt.Fprint(rt.out, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(rt.out, buildinfo.GreetingCLI, buildinfo.ProjectName, buildinfo.ProjectVersion, buildinfo.GithubURL)

	for {
		if s, ok := rt.manager.Session(ctx); ok {
			_, _ = fmt.Fprintf(rt.out, "%s> ", sessionLabel(s))
		} else {
			_, _ = fmt.Fprint(rt.out, "> ")
		}

		line, err := rt.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read command: %w", err)
		}

		args := strings.Fields(line)
		if len(args) > 0 {
			switch args[0] {
			case "exit", "quit":
				return nil
			case "shell":
				rt.print("already in the shell")
			default:
				if runErr := newApp(rt).RunContext(ctx, append([]string{buildinfo.ProjectName}, args...)); runErr != nil && !errors.Is(runErr, errFailed) {
					rt.print(runErr.Error())
				}
			}
		}

		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			logger.Debugf("shell finished")
			return nil
		}
	}
}
