// Command cashflow runs the forecasting operations against the configured
// store and prints JSON to stdout.
//
// Usage:
//
//	cashflow forecast --org ORG [--months 3] [--balance 0]
//	cashflow dashboard --org ORG
//	cashflow scenarios --org ORG [--months 3] [--balance 0]
//	cashflow aging --org ORG
//	cashflow alerts
//	cashflow token --org ORG [--org ORG2] [--subject ops]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Dan9191/cashflow-service/internal/config"
	"github.com/Dan9191/cashflow-service/internal/forecast"
	"github.com/Dan9191/cashflow-service/internal/middleware"
	"github.com/Dan9191/cashflow-service/internal/notify"
	"github.com/Dan9191/cashflow-service/internal/repository"
	"github.com/Dan9191/cashflow-service/internal/scheduler"
	"github.com/Dan9191/cashflow-service/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"
)

func main() {
	app := &cli.App{
		Name:  "cashflow",
		Usage: "Cash-flow forecasting for ERP organizations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "PostgreSQL connection string",
				EnvVars: []string{"DB_CONN"},
			},
			&cli.StringFlag{
				Name:    "seed",
				Usage:   "JSON seed file; switches to the in-memory store",
				EnvVars: []string{"SEED_FILE"},
			},
			&cli.StringFlag{
				Name:    "locale",
				Usage:   "Output locale (ro, en)",
				EnvVars: []string{"DEFAULT_LOCALE"},
			},
		},
		Commands: []*cli.Command{
			forecastCommand(),
			dashboardCommand(),
			scenariosCommand(),
			agingCommand(),
			alertsCommand(),
			tokenCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var (
	orgFlag = &cli.StringFlag{
		Name:     "org",
		Aliases:  []string{"o"},
		Usage:    "Organization id",
		Required: true,
	}
	monthsFlag = &cli.IntFlag{
		Name:    "months",
		Aliases: []string{"m"},
		Value:   forecast.DefaultHorizon,
		Usage:   "Forecast horizon in months",
	}
	balanceFlag = &cli.Float64Flag{
		Name:    "balance",
		Aliases: []string{"b"},
		Usage:   "Starting balance",
	}
)

func forecastCommand() *cli.Command {
	return &cli.Command{
		Name:  "forecast",
		Usage: "Project the cash position month by month",
		Flags: []cli.Flag{orgFlag, monthsFlag, balanceFlag},
		Action: func(c *cli.Context) error {
			return withService(c, func(ctx context.Context, svc *service.Service) (any, error) {
				return svc.GenerateForecast(ctx, c.String("org"), c.Int("months"), c.Float64("balance"))
			})
		},
	}
}

func dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "Summarize next month and the trend after it",
		Flags: []cli.Flag{orgFlag},
		Action: func(c *cli.Context) error {
			return withService(c, func(ctx context.Context, svc *service.Service) (any, error) {
				return svc.GetDashboardForecast(ctx, c.String("org"))
			})
		},
	}
}

func scenariosCommand() *cli.Command {
	return &cli.Command{
		Name:  "scenarios",
		Usage: "Compare optimistic, realistic and pessimistic projections",
		Flags: []cli.Flag{orgFlag, monthsFlag, balanceFlag},
		Action: func(c *cli.Context) error {
			return withService(c, func(ctx context.Context, svc *service.Service) (any, error) {
				return svc.GetScenarios(ctx, c.String("org"), c.Int("months"), c.Float64("balance"))
			})
		},
	}
}

func agingCommand() *cli.Command {
	return &cli.Command{
		Name:  "aging",
		Usage: "Bucket open receivables and payables by days overdue",
		Flags: []cli.Flag{orgFlag},
		Action: func(c *cli.Context) error {
			return withService(c, func(ctx context.Context, svc *service.Service) (any, error) {
				return svc.GetAgingAnalysis(ctx, c.String("org"))
			})
		},
	}
}

func alertsCommand() *cli.Command {
	return &cli.Command{
		Name:  "alerts",
		Usage: "Evaluate every risk alert subscription once and send the due e-mails",
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}
			store, closeStore, err := repository.Open(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			svc := service.NewService(store, logger, cfg)
			monitor := scheduler.NewRiskMonitor(store, svc, notify.NewSender(cfg, logger), logger,
				cfg.AlertHorizonMonths, cfg.DefaultLocale)
			result, err := monitor.RunOnce(c.Context)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Sign an API bearer token for the given organizations",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "org",
				Aliases:  []string{"o"},
				Usage:    "Organization id (repeatable)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "subject",
				Value: "cli",
				Usage: "Token subject",
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Value: 24 * time.Hour,
				Usage: "Token lifetime",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, _, err := setup(c)
			if err != nil {
				return err
			}
			token, err := middleware.NewToken(cfg.JWTSecret, c.String("subject"), c.StringSlice("org"), c.Duration("ttl"))
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
}

// setup loads the environment configuration and applies the global flags
func setup(c *cli.Context) (*config.Config, *logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{})
	level, err := logrus.ParseLevel(c.String("log-level"))
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)

	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if c.IsSet("db") {
		cfg.DBConn = c.String("db")
	}
	if c.IsSet("seed") {
		cfg.SeedFile = c.String("seed")
		cfg.UseMemoryStore = true
	}
	if c.IsSet("locale") {
		tag, err := language.Parse(c.String("locale"))
		if err != nil {
			return nil, nil, fmt.Errorf("invalid locale: %w", err)
		}
		cfg.DefaultLocale = forecast.MatchLocale(cfg.DefaultLocale, tag.String())
	}
	return cfg, logger, nil
}

func withService(c *cli.Context, run func(context.Context, *service.Service) (any, error)) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	store, closeStore, err := repository.Open(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := service.WithLocale(c.Context, cfg.DefaultLocale)
	result, err := run(ctx, service.NewService(store, logger, cfg))
	if err != nil {
		return err
	}
	return printJSON(result)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
