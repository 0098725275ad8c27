package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/bloops-games/achievements/internal/buildinfo"
	"github.com/bloops-games/achievements/internal/database/session/model"
	"github.com/bloops-games/achievements/internal/tracker"
	"github.com/bloops-games/achievements/internal/tracker/resource"
	"github.com/bloops-games/achievements/internal/tracker/view"
	"github.com/urfave/cli/v2"
)

var errFailed = errors.New("command failed")

func newApp(rt *runtime) *cli.App {
	return &cli.App{
		Name:    buildinfo.ProjectName,
		Usage:   "track achievements from the terminal",
		Version: buildinfo.ProjectVersion,
		Writer:  rt.out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "backend base url, overrides ACHIEVEMENTS_API_URL",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "local state file, overrides ACHIEVEMENTS_DB_FILE_PATH",
			},
		},
		Before: func(c *cli.Context) error {
			if v := c.String("api-url"); v != "" {
				rt.config.API.URL = v
			}
			if v := c.String("db"); v != "" {
				rt.config.DB.FilePath = v
			}

			return rt.setup(c.Context)
		},
		// exit codes are decided by main after cleanup
		ExitErrHandler: func(*cli.Context, error) {},
		Commands:       commands(rt),
	}
}

func commands(rt *runtime) []*cli.Command {
	return []*cli.Command{
		{
			Name:      "login",
			Usage:     "sign in, unknown usernames are created after confirmation",
			ArgsUsage: "[--yes] <username>",
			Flags:     []cli.Flag{yesFlag()},
			Action: func(c *cli.Context) error {
				if err := positional(c, 1); err != nil {
					return err
				}

				return rt.login(c.Context, c.Args().First(), c.Bool("yes"))
			},
		},
		{
			Name:  "logout",
			Usage: "forget the stored session",
			Action: func(c *cli.Context) error {
				if err := rt.manager.Logout(c.Context); err != nil {
					return err
				}

				rt.print(resource.TextLoggedOut)
				return nil
			},
		},
		{
			Name:  "whoami",
			Usage: "show the stored session",
			Action: func(c *cli.Context) error {
				s, ok := rt.manager.Session(c.Context)
				if !ok {
					rt.print(resource.TextNotLoggedIn)
					return nil
				}

				rt.print(fmt.Sprintf("%s (%s)", s.Username, tracker.StateOf(&s)))
				return nil
			},
		},
		{
			Name:      "open",
			Usage:     "navigate to a path: / /achievements /all-achievements /statistics /admin",
			ArgsUsage: "[options] <path>",
			Flags: []cli.Flag{
				searchFlag(),
				&cli.StringFlag{Name: "filter", Aliases: []string{"f"}, Usage: "all, unlocked or locked"},
				&cli.StringFlag{Name: "tab", Aliases: []string{"t"}, Usage: "rankings, achievements or personal"},
			},
			Action: func(c *cli.Context) error {
				if err := positional(c, 1); err != nil {
					return err
				}

				return rt.openWithFlags(c, c.Args().First())
			},
		},
		{
			Name:  "achievements",
			Usage: "your achievements",
			Flags: []cli.Flag{
				searchFlag(),
				&cli.StringFlag{Name: "filter", Aliases: []string{"f"}, Value: string(view.FilterAll), Usage: "all, unlocked or locked"},
			},
			Action: func(c *cli.Context) error {
				return rt.openWithFlags(c, tracker.ViewAchievements.Path())
			},
		},
		{
			Name:    "catalog",
			Aliases: []string{"all-achievements"},
			Usage:   "every achievement with its unlock count",
			Flags:   []cli.Flag{searchFlag()},
			Action: func(c *cli.Context) error {
				return rt.openWithFlags(c, tracker.ViewCatalog.Path())
			},
		},
		{
			Name:    "stats",
			Aliases: []string{"statistics"},
			Usage:   "rankings, achievement popularity and personal statistics",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "tab", Aliases: []string{"t"}, Value: string(view.TabRankings), Usage: "rankings, achievements or personal"},
			},
			Action: func(c *cli.Context) error {
				return rt.openWithFlags(c, tracker.ViewStatistics.Path())
			},
		},
		{
			Name:  "admin",
			Usage: "manage users and their achievements",
			Subcommands: []*cli.Command{
				{
					Name:  "users",
					Usage: "list users and achievements",
					Flags: []cli.Flag{searchFlag()},
					Action: func(c *cli.Context) error {
						return rt.admin(c, func(ctx context.Context, p *view.AdminPanel) error {
							return nil
						})
					},
				},
				{
					Name:      "select",
					Usage:     "show the unlock map of a user",
					ArgsUsage: "<username>",
					Flags:     []cli.Flag{searchFlag()},
					Action: func(c *cli.Context) error {
						if err := positional(c, 1); err != nil {
							return err
						}

						return rt.admin(c, func(ctx context.Context, p *view.AdminPanel) error {
							return p.SelectUser(ctx, c.Args().First())
						})
					},
				},
				{
					Name:      "toggle",
					Usage:     "lock or unlock an achievement for a user",
					ArgsUsage: "<username> <achievement-id>",
					Action: func(c *cli.Context) error {
						if err := positional(c, 2); err != nil {
							return err
						}

						return rt.admin(c, func(ctx context.Context, p *view.AdminPanel) error {
							if err := p.SelectUser(ctx, c.Args().Get(0)); err != nil {
								return err
							}

							return p.Toggle(ctx, c.Args().Get(1))
						})
					},
				},
				{
					Name:      "delete",
					Usage:     "delete a user and all their achievements",
					ArgsUsage: "<username>",
					Flags:     []cli.Flag{yesFlag()},
					Action: func(c *cli.Context) error {
						if err := positional(c, 1); err != nil {
							return err
						}

						return rt.admin(c, func(ctx context.Context, p *view.AdminPanel) error {
							username := c.Args().First()
							if err := p.RequestDelete(username); err != nil {
								return err
							}

							if !c.Bool("yes") {
								if warning := p.Err(); warning != "" {
									rt.print(warning)
								}

								ok, err := rt.confirm(fmt.Sprintf(resource.TextDeleteConfirm, username))
								if err != nil {
									return err
								}

								if !ok {
									p.CancelDelete()
									return nil
								}
							}

							return p.ConfirmDelete(ctx)
						})
					},
				},
			},
		},
		{
			Name:  "status",
			Usage: "check that the backend answers",
			Action: func(c *cli.Context) error {
				msg, err := rt.client.Ping(c.Context)
				if err != nil {
					rt.print(view.ErrorMessage(err))
					return errFailed
				}

				rt.print(fmt.Sprintf("%s: %s", rt.client.BaseURL(), msg))
				return nil
			},
		},
		{
			Name:  "shell",
			Usage: "interactive session",
			Action: func(c *cli.Context) error {
				return rt.shell(c.Context)
			},
		},
	}
}

// positional rejects arguments past max. Flag parsing stops at the first positional
// argument, so a flag written after it would otherwise be dropped silently.
func positional(c *cli.Context, max int) error {
	if c.NArg() <= max {
		return nil
	}

	return fmt.Errorf("%s: unexpected arguments %q, options go before the positional arguments",
		c.Command.Name, c.Args().Slice()[max:])
}

func searchFlag() cli.Flag {
	return &cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "case-insensitive name or description filter"}
}

func yesFlag() cli.Flag {
	return &cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "skip the confirmation prompt"}
}

func (rt *runtime) login(ctx context.Context, username string, yes bool) error {
	confirm := tracker.ConfirmFunc(func(ctx context.Context, username string) (bool, error) {
		if yes {
			return true, nil
		}

		return rt.confirm(fmt.Sprintf(resource.TextCreateUserPrompt, username))
	})

	if _, err := rt.manager.Login(ctx, username, confirm); err != nil {
		if errors.Is(err, tracker.ErrLoginCancelled) {
			rt.print(resource.TextLoginCancelled)
			return nil
		}

		rt.print(tracker.RenderLogin(view.ErrorMessage(err)))
		return errFailed
	}

	return rt.open(ctx, tracker.ViewLogin.Path(), tracker.OpenOptions{})
}

func (rt *runtime) openWithFlags(c *cli.Context, path string) error {
	filter, err := view.ParseFilter(c.String("filter"))
	if err != nil {
		return err
	}

	tab, err := view.ParseTab(c.String("tab"))
	if err != nil {
		return err
	}

	return rt.open(c.Context, path, tracker.OpenOptions{Filter: filter, Search: c.String("search"), Tab: tab})
}

func (rt *runtime) open(ctx context.Context, path string, opts tracker.OpenOptions) error {
	screen, err := rt.manager.Open(ctx, path, opts)
	rt.print(screen.Text)
	if err != nil {
		return errFailed
	}

	return nil
}

// admin mounts the admin panel, runs op and renders the panel with its message and error slots.
// Non-admin sessions get the view the router redirects them to.
func (rt *runtime) admin(c *cli.Context, op func(ctx context.Context, p *view.AdminPanel) error) error {
	s, ok := rt.manager.RequireAdmin(c.Context)
	if !ok {
		return rt.open(c.Context, tracker.ViewAdmin.Path(), tracker.OpenOptions{})
	}

	ctx, cancel := rt.manager.WithSession(c.Context)
	defer cancel()

	p := rt.manager.AdminPanel(ctx, s)
	p.SetSearch(c.String("search"))
	if err := p.Load(ctx); err != nil {
		rt.print(tracker.RenderAdmin(p, s))
		return errFailed
	}

	opErr := op(ctx, p)
	rt.print(tracker.RenderAdmin(p, s))
	if opErr != nil {
		return errFailed
	}

	return nil
}

func sessionLabel(s model.Session) string {
	if s.IsAdmin {
		return s.Username + " (admin)"
	}

	return s.Username
}
