package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rpupo63/construction-site-backend/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "construction-site-backend",
		Short: "Content API and admin screens for the company website",
		Long: `Serves the public content API, the JSON admin API and the server-rendered
admin screens for the construction company website.

Configuration comes from the environment, a .env file in the working
directory and, when SSM_PARAMETER_PATH is set, AWS SSM Parameter Store.

Common commands:
  construction-site-backend serve            # start the HTTP server
  construction-site-backend migrate          # create or update tables
  construction-site-backend create-admin     # add or reset an admin account
  construction-site-backend cleanup-orphans  # report unreferenced uploads`,
		SilenceUsage: true,
		Version:      version,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newCreateAdminCmd(),
		newCleanupOrphansCmd(),
		newGenerateModelsCmd(),
		newColumnReportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads .env, the environment and the optional SSM overlay, and
// configures the global logger.
func loadConfig(ctx context.Context) map[string]string {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}
	cfg := config.WithSSM(ctx, config.New())
	setupLogging(cfg)
	return cfg
}

func setupLogging(cfg map[string]string) {
	level, err := zerolog.ParseLevel(config.GetString(cfg, "LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if config.GetString(cfg, "ENVIRONMENT", "dev") == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
