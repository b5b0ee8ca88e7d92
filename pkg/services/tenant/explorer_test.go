package tenant

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/de-tools/energy-labeler/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapSubscription(t *testing.T) {
	sub := &armsubscriptions.Subscription{
		SubscriptionID: to.Ptr("00000000-0000-0000-0000-000000000001"),
		DisplayName:    to.Ptr("payments"),
		TenantID:       to.Ptr("11111111-1111-1111-1111-111111111111"),
		State:          to.Ptr(armsubscriptions.SubscriptionStateEnabled),
	}

	got := mapSubscription(sub)
	assert.Equal(t, domain.Subscription{
		ID:          "00000000-0000-0000-0000-000000000001",
		DisplayName: "payments",
		TenantID:    "11111111-1111-1111-1111-111111111111",
		State:       "Enabled",
	}, got)
}

func TestMapSubscription_ToleratesMissingFields(t *testing.T) {
	got := mapSubscription(&armsubscriptions.Subscription{})
	assert.Equal(t, domain.Subscription{}, got)
}
