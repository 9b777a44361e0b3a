package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Trujillofa/depotru-database-sub000/pkg/server"
	"github.com/Trujillofa/depotru-database-sub000/pkg/services/config"
	"github.com/Trujillofa/depotru-database-sub000/pkg/services/reporting"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	addr    string
	cfgPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the sales analytics web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a thresholds config file (defaults are used when empty)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	thresholds := config.Default()
	excluded := config.DefaultExclusions()
	if cfgPath != "" {
		var err error
		thresholds, excluded, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load thresholds: %w", err)
		}
		logger.Info().Str("path", cfgPath).Msg("thresholds config loaded")
	}

	svc := reporting.NewService(thresholds, excluded)

	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Reports: svc,
		},
	})

	return api.Start()
}
