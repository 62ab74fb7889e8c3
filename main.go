package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"thoughtfolio-backend/pkg/config"
	"thoughtfolio-backend/pkg/database"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "thoughtfolio",
		Short: "ThoughtFolio API server",
		// Running without a subcommand serves the API
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Printf("[Main] %v", err)
		os.Exit(1)
	}
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the schema, start the calendar scheduler and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := database.NewConnection(cfg)
			if err != nil {
				return err
			}
			if err := migrate(db); err != nil {
				return err
			}
			log.Println("[Main] Migration complete")
			return nil
		},
	}
}

func runServe(ctx context.Context) error {
	cfg := config.Load()

	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	app, err := newApp(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Start(ctx)
	return app.handler.Start(ctx, ":"+cfg.Port)
}
