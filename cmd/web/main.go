package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rc-tools/cost-ledger/pkg/server"
	"github.com/rc-tools/cost-ledger/pkg/services/archive"
	"github.com/rc-tools/cost-ledger/pkg/store/duckdb"
)

var dbPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the cost ledger archive",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "cost-ledger.db",
		"Path to the ledger database file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: dbPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	archiveSvc, err := archive.NewService(db)
	if err != nil {
		return fmt.Errorf("failed to create archive service: %w", err)
	}

	runs, err := archiveSvc.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to read the run archive: %w", err)
	}
	logger.Info().Msgf("Archive at `%s` successfully opened, %d runs recorded.", dbPath, len(runs))

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Archive: archiveSvc,
		},
	})

	return api.Start()
}
