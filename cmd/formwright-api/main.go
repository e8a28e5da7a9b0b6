package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/formwright/formwright/pkg/cmd"
	"github.com/formwright/formwright/pkg/config"
	"github.com/formwright/formwright/pkg/log"
	"github.com/formwright/formwright/pkg/mailer"
	"github.com/formwright/formwright/pkg/otelhelper"
	"github.com/formwright/formwright/pkg/protocol"
)

const defaultPort = 9091

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "formwright-api",
		Usage:                 "Create and manage forms and their submission workflows",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL for persistence",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export workflow execution traces over OTLP",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the optional YAML configuration file",
				Value:   "./formwright.yaml",
				Sources: cli.EnvVars("CONFIG_FILE"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing Formwright API")

			if command.Bool("tracing") {
				if _, err := otelhelper.NewTracer(ctx, "formwright-api"); err != nil {
					return err
				}
			}

			cfg := config.LoadOrDefault(command.String("config"))

			var nodeMailer protocol.Mailer
			if cfg.Mailer.Enabled() {
				nodeMailer = mailer.NewSMTP(cfg.Mailer)
			}

			registry := cmd.NewRegistry(logger, nodeMailer)

			persistence, err := cmd.NewPersistence(ctx, logger, command.String("database-url"))
			if err != nil {
				return err
			}

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus, err := cmd.NewEventBus(logger)
			if err != nil {
				return err
			}

			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			if err := registerEventListeners(ctx, logger, eventBus); err != nil {
				return err
			}

			api := NewAPI(
				logger,
				persistence,
				registry,
				eventBus,
			)

			if err := api.Start(command.Int("port")); err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return nil
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
