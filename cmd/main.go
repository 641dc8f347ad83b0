package main

import (
	"Foodgram-Backend/cmd/config"
	migration "Foodgram-Backend/cmd/database/migrate"
	"Foodgram-Backend/cmd/database/seed"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/cache"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}
	utils.LoadConfig()
	logging.Init(logging.Config{
		Level:  utils.GetConfig("LOG_LEVEL"),
		Format: utils.GetConfig("LOG_FORMAT"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		logging.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "foodgram",
		Short:         "Foodgram recipe backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCommand(), migrateCommand(), seedCommand())
	return root
}

func serveCommand() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, rdb, err := connect(ctx)
			if err != nil {
				return err
			}
			defer closeAll(db, rdb)

			if migrate {
				if err := migration.Migrate(db); err != nil {
					return err
				}
			}

			app, err := config.NewApp(db, rdb)
			if err != nil {
				return err
			}

			addr := ":" + utils.GetConfigOrDefault("PORT", "8000")
			errCh := make(chan error, 1)
			go func() {
				logging.Info().Str("addr", addr).Msg("server listening")
				errCh <- app.Listen(addr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logging.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return app.ShutdownWithContext(shutdownCtx)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run migrations before serving")
	return cmd
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := config.ConnectDB()
			if err != nil {
				return err
			}
			defer closeAll(db, nil)
			return migration.Migrate(db)
		},
	}
}

func seedCommand() *cobra.Command {
	var opts seed.Options
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load ingredient and tag fixtures",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.IngredientsPath == "" && opts.TagsPath == "" {
				return errors.New("nothing to seed: pass --ingredients and/or --tags")
			}
			ctx := cmd.Context()
			db, rdb, err := connect(ctx)
			if err != nil {
				return err
			}
			defer closeAll(db, rdb)
			return seed.Seed(ctx, db, rdb, opts)
		},
	}
	cmd.Flags().StringVar(&opts.IngredientsPath, "ingredients", "", "path to ingredients JSON")
	cmd.Flags().StringVar(&opts.TagsPath, "tags", "", "path to tags JSON")
	return cmd
}

func connect(ctx context.Context) (*gorm.DB, *redis.Client, error) {
	db, err := config.ConnectDB()
	if err != nil {
		return nil, nil, err
	}

	rdb, err := cache.NewRedisClient(ctx)
	if err != nil {
		// caching and token revocation are optional
		logging.Warn().Err(err).Msg("redis unavailable, continuing without it")
		rdb = nil
	}
	return db, rdb, nil
}

func closeAll(db *gorm.DB, rdb *redis.Client) {
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
