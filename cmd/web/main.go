package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/energy-labeler/pkg/server"
	"github.com/de-tools/energy-labeler/pkg/services/azure"
	"github.com/de-tools/energy-labeler/pkg/services/config"
	"github.com/de-tools/energy-labeler/pkg/services/defender"
	"github.com/de-tools/energy-labeler/pkg/services/labeler"
	"github.com/de-tools/energy-labeler/pkg/services/tenant"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	tenantID string
	profile  string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the energy labeler",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the labeler configuration file")
	rootCmd.Flags().StringVar(&tenantID, "tenant-id", "",
		"Azure tenant to grade, overrides the configuration file")
	rootCmd.Flags().StringVar(&profile, "profile", "",
		"Profile in ~/.azure/config holding the service principal")

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

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
		logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	}
	if tenantID != "" {
		cfg.TenantID = tenantID
	}
	if profile != "" {
		cfg.Profile = profile
	}

	if cfg.TenantID == "" {
		return fmt.Errorf("a tenant id is required, set it with --tenant-id or in the configuration file")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	azureCfg, err := azure.LoadConfig(ctx, cfg.Profile)
	if err != nil {
		return fmt.Errorf("failed to load azure credentials: %w", err)
	}

	explorer, err := tenant.NewExplorer(cfg.TenantID, azureCfg.Credentials)
	if err != nil {
		return fmt.Errorf("failed to create tenant explorer: %w", err)
	}

	collector, err := defender.NewCollector(azureCfg.Credentials)
	if err != nil {
		return fmt.Errorf("failed to create findings collector: %w", err)
	}

	service, err := labeler.NewService(labeler.Settings{
		TenantID:               cfg.TenantID,
		Frameworks:             cfg.Frameworks,
		AllowedSubscriptionIDs: cfg.AllowedSubscriptionIDs,
		DeniedSubscriptionIDs:  cfg.DeniedSubscriptionIDs,
		IncludeResourceGroups:  cfg.IncludeResourceGroups,
		Rules:                  cfg.Ruleset(),
	}, explorer, collector)
	if err != nil {
		return fmt.Errorf("failed to create labeler service: %w", err)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			TenantID: cfg.TenantID,
			Labeler:  service,
			Logger:   logger,
		},
	})

	return api.Start()
}
