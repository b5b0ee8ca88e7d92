package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/energy-labeler/pkg/models/domain"
	"github.com/de-tools/energy-labeler/pkg/runtime/terminal/export"
	"github.com/de-tools/energy-labeler/pkg/services/azure"
	"github.com/de-tools/energy-labeler/pkg/services/config"
	"github.com/de-tools/energy-labeler/pkg/services/defender"
	exportsvc "github.com/de-tools/energy-labeler/pkg/services/export"
	"github.com/de-tools/energy-labeler/pkg/services/labeler"
	"github.com/de-tools/energy-labeler/pkg/services/tenant"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type LabelCmd struct {
	tenantID       string
	profile        string
	awsProfile     string
	configPath     string
	frameworks     []string
	allowed        []string
	denied         []string
	exportPath     string
	exportKinds    []string
	resourceGroups bool
	verbose        bool
	reporter       *export.Reporter
}

func NewLabelCmd(reporter *export.Reporter) *cobra.Command {
	lc := &LabelCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Grade a tenant and its subscriptions on their Defender for Cloud findings",
		RunE:  lc.run,
	}

	// Define flags
	cmd.Flags().StringVar(&lc.tenantID, "tenant-id", "", "Azure tenant to grade")
	cmd.Flags().StringVar(&lc.profile, "profile", "", "Profile in ~/.azure/config holding the service principal")
	cmd.Flags().StringVar(&lc.awsProfile, "aws-profile", "", "AWS profile used for s3:// export destinations")
	cmd.Flags().StringVar(&lc.configPath, "config", "", "Path to the labeler configuration file")
	cmd.Flags().StringSliceVar(&lc.frameworks, "frameworks", nil, "Defender for Cloud frameworks to match findings on")
	cmd.Flags().StringSliceVar(&lc.allowed, "allowed-subscription-ids", nil, "Grade only these subscriptions")
	cmd.Flags().StringSliceVar(&lc.denied, "denied-subscription-ids", nil, "Grade everything except these subscriptions")
	cmd.Flags().StringVar(&lc.exportPath, "export-path", "", "Directory, blob container URL or s3:// bucket to export reports to")
	cmd.Flags().StringSliceVar(&lc.exportKinds, "export-kinds", nil, "Report documents to export")
	cmd.Flags().BoolVar(&lc.resourceGroups, "resource-groups", false, "Also grade the resource groups of every subscription in scope")
	cmd.Flags().BoolVarP(&lc.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func (lc *LabelCmd) run(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if !lc.verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}
	ctx := logger.WithContext(cmd.Context())

	cfg, err := lc.loadConfig()
	if err != nil {
		return err
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
		return err
	}

	report, err := service.Report(ctx)
	if err != nil {
		return fmt.Errorf("failed to label tenant %s: %w", cfg.TenantID, err)
	}

	if err := lc.reporter.Handle(report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if cfg.Export.Path != "" {
		return lc.export(ctx, cfg, azureCfg, report)
	}

	return nil
}

// loadConfig reads the configuration file when one is given and lets
// flags that were set override whatever it contains.
func (lc *LabelCmd) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if lc.configPath != "" {
		loaded, err := config.Load(lc.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if lc.tenantID != "" {
		cfg.TenantID = lc.tenantID
	}
	if lc.profile != "" {
		cfg.Profile = lc.profile
	}
	if len(lc.frameworks) > 0 {
		cfg.Frameworks = lc.frameworks
	}
	if len(lc.allowed) > 0 {
		cfg.AllowedSubscriptionIDs = lc.allowed
	}
	if len(lc.denied) > 0 {
		cfg.DeniedSubscriptionIDs = lc.denied
	}
	if lc.resourceGroups {
		cfg.IncludeResourceGroups = true
	}
	if lc.exportPath != "" {
		cfg.Export.Path = lc.exportPath
	}
	if len(lc.exportKinds) > 0 {
		cfg.Export.Kinds = lc.exportKinds
	}

	return cfg, nil
}

func (lc *LabelCmd) export(
	ctx context.Context,
	cfg *config.Config,
	azureCfg *azure.Config,
	report *domain.TenantReport,
) error {
	dest, err := exportsvc.ParseDestination(cfg.Export.Path)
	if err != nil {
		return err
	}

	kinds := exportsvc.DefaultKinds()
	if cfg.IncludeResourceGroups {
		kinds = append(kinds, exportsvc.KindResourceGroups)
	}
	if len(cfg.Export.Kinds) > 0 {
		kinds, err = exportsvc.ParseKinds(cfg.Export.Kinds)
		if err != nil {
			return err
		}
	}

	writer, err := exportsvc.NewWriter(ctx, dest, exportsvc.WriterOptions{
		Credentials: azureCfg.Credentials,
		AWSProfile:  lc.awsProfile,
	})
	if err != nil {
		return fmt.Errorf("failed to create %s writer: %w", dest.Type, err)
	}

	if err := exportsvc.NewExporter(kinds, writer).Export(ctx, report); err != nil {
		return fmt.Errorf("failed to export reports to %s: %w", cfg.Export.Path, err)
	}

	return nil
}
