package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GearGodAPI/internal/config"
	"GearGodAPI/internal/db"
	applog "GearGodAPI/internal/logger"
	"GearGodAPI/internal/middleware"
	"GearGodAPI/internal/model"
	"GearGodAPI/internal/repository"
	"GearGodAPI/internal/services"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	cliApp := &cli.App{
		Name:  "geargod",
		Usage: "GearGod storefront and admin API",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			reportCommand(),
			createAdminCommand(),
		},
		DefaultCommand: "serve",
	}
	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config and the logger shared by every command.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := applog.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger = log
	middleware.SetSecret(cfg.JWTSecret)
	return cfg, log, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Action: func(c *cli.Context) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			if cfg.AutoMigrate {
				if err := db.MigrateUp(cfg.DatabaseURL); err != nil {
					return err
				}
				log.Info("migrations applied")
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			pool, err := db.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			a, err := buildApp(cfg, pool, log)
			if err != nil {
				return err
			}
			defer a.hub.Close()

			e := newServer(cfg, a, log)

			errCh := make(chan error, 1)
			go func() {
				log.Info("listening", zap.String("port", cfg.Port), zap.String("cart_backend", cfg.CartBackend))
				if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply or roll back schema migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: func(c *cli.Context) error {
					cfg, log, err := setup()
					if err != nil {
						return err
					}
					if err := db.MigrateUp(cfg.DatabaseURL); err != nil {
						return err
					}
					log.Info("migrations applied")
					return nil
				},
			},
			{
				Name:  "down",
				Usage: "roll back migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back"},
				},
				Action: func(c *cli.Context) error {
					cfg, log, err := setup()
					if err != nil {
						return err
					}
					if err := db.MigrateDown(cfg.DatabaseURL, c.Int("steps")); err != nil {
						return err
					}
					log.Info("migrations rolled back", zap.Int("steps", c.Int("steps")))
					return nil
				},
			},
			{
				Name:  "version",
				Usage: "print the current schema version",
				Action: func(c *cli.Context) error {
					cfg, _, err := setup()
					if err != nil {
						return err
					}
					v, dirty, err := db.Version(cfg.DatabaseURL)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "version %d dirty=%t\n", v, dirty)
					return nil
				},
			},
		},
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "print the admin dashboard as tables",
		Action: func(c *cli.Context) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			pool, err := db.Connect(c.Context, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			rs := services.NewReportService(
				repository.NewReportRepository(pool),
				repository.NewCouponRepository(pool),
				repository.NewOrderRepository(pool),
			)
			stats, err := rs.Dashboard(c.Context)
			if err != nil {
				return err
			}
			return renderDashboard(c.App.Writer, stats)
		},
	}
}

func createAdminCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-admin",
		Usage: "create an admin account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"ADMIN_PASSWORD"}},
			&cli.StringFlag{Name: "first-name", Value: "Admin"},
			&cli.StringFlag{Name: "last-name", Value: "GearGod"},
		},
		Action: func(c *cli.Context) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			pool, err := db.Connect(c.Context, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			auth := services.NewAuthService(repository.NewUserRepository(pool), nil)
			id, err := auth.Register(c.Context, &model.User{
				Email:     c.String("email"),
				FirstName: c.String("first-name"),
				LastName:  c.String("last-name"),
				Role:      model.RoleAdmin,
			}, c.String("password"))
			if err != nil {
				return err
			}
			log.Info("admin created", zap.Int64("user_id", id))
			return nil
		},
	}
}
