package tenant

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/de-tools/energy-labeler/pkg/models/domain"
)

// Explorer walks the resource hierarchy of a single Azure tenant.
type Explorer interface {
	ListSubscriptions(ctx context.Context) ([]domain.Subscription, error)
	ListResourceGroups(ctx context.Context, subscriptionID string) ([]domain.ResourceGroup, error)
}

type armExplorer struct {
	tenantID      string
	credentials   azcore.TokenCredential
	subscriptions *armsubscriptions.Client
}

func NewExplorer(tenantID string, credentials azcore.TokenCredential) (Explorer, error) {
	clientFactory, err := armsubscriptions.NewClientFactory(credentials, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client factory: %w", err)
	}

	return &armExplorer{
		tenantID:      tenantID,
		credentials:   credentials,
		subscriptions: clientFactory.NewClient(),
	}, nil
}

func (e *armExplorer) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	var subscriptions []domain.Subscription
	pager := e.subscriptions.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list subscriptions: %w", err)
		}
		for _, sub := range page.Value {
			mapped := mapSubscription(sub)
			// The management plane can surface subscriptions from other
			// tenants the credential has access to.
			if mapped.TenantID != "" && mapped.TenantID != e.tenantID {
				continue
			}
			subscriptions = append(subscriptions, mapped)
		}
	}
	return subscriptions, nil
}

func (e *armExplorer) ListResourceGroups(ctx context.Context, subscriptionID string) ([]domain.ResourceGroup, error) {
	client, err := armresources.NewResourceGroupsClient(subscriptionID, e.credentials, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}

	var groups []domain.ResourceGroup
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list resource groups for subscription %s: %w", subscriptionID, err)
		}
		for _, group := range page.Value {
			groups = append(groups, domain.ResourceGroup{
				Name:     deref(group.Name),
				Location: deref(group.Location),
			})
		}
	}
	return groups, nil
}

func mapSubscription(sub *armsubscriptions.Subscription) domain.Subscription {
	mapped := domain.Subscription{
		ID:          deref(sub.SubscriptionID),
		DisplayName: deref(sub.DisplayName),
		TenantID:    deref(sub.TenantID),
	}
	if sub.State != nil {
		mapped.State = string(*sub.State)
	}
	return mapped
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
