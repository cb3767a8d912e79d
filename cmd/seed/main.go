// Package main is the dataset loader. It clears the three collections and
// recreates the dataset through the services.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/recetario/recetario/internal/metrics"
	"github.com/recetario/recetario/internal/repository"
	"github.com/recetario/recetario/internal/seed"
	"github.com/recetario/recetario/internal/service"
	"github.com/recetario/recetario/internal/store"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := newCommand(logger).Run(ctx, os.Args); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func newCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load a dataset of users, recipes and ingredients",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "PostgreSQL connection string; empty uses an in-memory store",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "YAML dataset file; defaults to the embedded dataset",
			},
			&cli.BoolFlag{
				Name:  "reset",
				Value: true,
				Usage: "Delete every user, recipe and ingredient before loading",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ds, err := seed.Load(cmd.String("file"))
			if err != nil {
				return err
			}

			st, err := openStore(ctx, cmd.String("database-url"), logger)
			if err != nil {
				return err
			}
			defer st.Close()

			recorder := metrics.NewNoop()
			ingredients := service.NewIngredientService(st, recorder, logger)
			seeder := seed.NewSeeder(
				st,
				service.NewUserService(st, ingredients, recorder, logger),
				service.NewRecipeService(st, ingredients, recorder, logger),
				ingredients,
				logger,
			)

			sum, err := seeder.Apply(ctx, ds, cmd.Bool("reset"))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "Dataset insertado OK: %d usuarios, %d recetas, %d ingredientes\n",
				sum.Users, sum.Recipes, sum.Ingredients)
			return nil
		},
	}
}

func openStore(ctx context.Context, databaseURL string, logger *slog.Logger) (store.Store, error) {
	if databaseURL == "" {
		logger.Warn("no database url given, seeding an in-memory store")
		return store.NewMemory(), nil
	}
	repo, err := repository.New(ctx, databaseURL, repository.Options{MaxConns: 2})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return repo, nil
}
