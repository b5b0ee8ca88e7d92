package commands

import (
	"fmt"

	"github.com/de-tools/energy-labeler/pkg/services/azure"
	"github.com/de-tools/energy-labeler/pkg/services/tenant"

	"github.com/spf13/cobra"
)

type SubscriptionsCmd struct {
	tenantID string
	profile  string
}

func NewSubscriptionsCmd() *cobra.Command {
	sc := &SubscriptionsCmd{}
	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "List the subscriptions of a tenant",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.tenantID, "tenant-id", "", "Azure tenant to list subscriptions for")
	cmd.Flags().StringVar(&sc.profile, "profile", "", "Profile in ~/.azure/config holding the service principal")

	_ = cmd.MarkFlagRequired("tenant-id")

	return cmd
}

func (sc *SubscriptionsCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	azureCfg, err := azure.LoadConfig(ctx, sc.profile)
	if err != nil {
		return fmt.Errorf("failed to load azure credentials: %w", err)
	}

	explorer, err := tenant.NewExplorer(sc.tenantID, azureCfg.Credentials)
	if err != nil {
		return fmt.Errorf("failed to create tenant explorer: %w", err)
	}

	subscriptions, err := explorer.ListSubscriptions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list subscriptions for tenant %s: %w", sc.tenantID, err)
	}

	if len(subscriptions) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No subscriptions found for tenant: %s\n", sc.tenantID)
		return nil
	}

	for _, sub := range subscriptions {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (%s)\n", sub.ID, sub.DisplayName, sub.State)
	}

	return nil
}
