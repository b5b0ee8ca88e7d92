package labeler

import (
	"context"
	"fmt"
	"testing"

	"github.com/de-tools/energy-labeler/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockExplorer struct{ mock.Mock }

func (m *mockExplorer) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *mockExplorer) ListResourceGroups(ctx context.Context, subscriptionID string) ([]domain.ResourceGroup, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResourceGroup), args.Error(1)
}

type mockCollector struct{ mock.Mock }

func (m *mockCollector) GetFindings(ctx context.Context, subscriptionIDs []string, frameworks []string) ([]domain.Finding, error) {
	args := m.Called(ctx, subscriptionIDs, frameworks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Finding), args.Error(1)
}

func tenantSubscriptions() []domain.Subscription {
	return []domain.Subscription{
		{ID: "sub-1", DisplayName: "payments", TenantID: "tenant-1", State: "Enabled"},
		{ID: "sub-2", DisplayName: "analytics", TenantID: "tenant-1", State: "Enabled"},
		{ID: "sub-3", DisplayName: "sandbox", TenantID: "tenant-1", State: "Enabled"},
		{ID: "sub-4", DisplayName: "legacy", TenantID: "tenant-1", State: "Disabled"},
	}
}

func TestNewService_Validation(t *testing.T) {
	explorer := new(mockExplorer)
	collector := new(mockCollector)

	_, err := NewService(Settings{}, explorer, collector)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tenant id")

	_, err = NewService(Settings{
		TenantID:               "tenant-1",
		AllowedSubscriptionIDs: []string{"sub-1"},
		DeniedSubscriptionIDs:  []string{"sub-2"},
	}, explorer, collector)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")

	_, err = NewService(Settings{
		TenantID:   "tenant-1",
		Frameworks: []string{"PCI DSS"},
	}, explorer, collector)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported framework")

	// No Azure call happens during construction.
	explorer.AssertExpectations(t)
	collector.AssertExpectations(t)
}

func TestTenantLabel_CoverageAndMemoization(t *testing.T) {
	ctx := context.Background()
	explorer := new(mockExplorer)
	collector := new(mockCollector)

	explorer.On("ListSubscriptions", mock.Anything).Return(tenantSubscriptions(), nil).Once()
	// Findings are collected for all four tenant subscriptions even though
	// one of them is denied for labeling.
	collector.On("GetFindings", mock.Anything, []string{"sub-1", "sub-2", "sub-3", "sub-4"}, mock.Anything).
		Return([]domain.Finding{}, nil).Once()

	service, err := NewService(Settings{
		TenantID:              "tenant-1",
		DeniedSubscriptionIDs: []string{"sub-4"},
	}, explorer, collector)
	require.NoError(t, err)

	label, err := service.TenantLabel(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LabelA, label.Label)
	assert.Equal(t, domain.LabelA, label.BestLabel)
	assert.Equal(t, domain.LabelA, label.WorstLabel)
	assert.InDelta(t, 75.0, label.Coverage, 0.001)

	// A second read is served from the memoized run.
	_, err = service.TenantLabel(ctx)
	require.NoError(t, err)
	_, err = service.Findings(ctx)
	require.NoError(t, err)

	explorer.AssertExpectations(t)
	collector.AssertExpectations(t)
}

func TestLabeledSubscriptions_AppliesThresholds(t *testing.T) {
	ctx := context.Background()
	explorer := new(mockExplorer)
	collector := new(mockCollector)

	var findings []domain.Finding
	for i := 0; i < 11; i++ {
		findings = append(findings, domain.Finding{SubscriptionID: "sub-2", Severity: domain.SeverityHigh})
	}

	explorer.On("ListSubscriptions", mock.Anything).Return(tenantSubscriptions(), nil)
	collector.On("GetFindings", mock.Anything, mock.Anything, mock.Anything).Return(findings, nil)

	service, err := NewService(Settings{TenantID: "tenant-1"}, explorer, collector)
	require.NoError(t, err)

	labeled, err := service.LabeledSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, labeled, 4)

	byID := make(map[string]domain.EnergyLabel, len(labeled))
	for _, sub := range labeled {
		byID[sub.Subscription.ID] = sub.EnergyLabel
	}

	// No findings at all grades an A, eleven highs fall through to C.
	assert.Equal(t, domain.LabelA, byID["sub-1"].Label)
	assert.Equal(t, domain.LabelC, byID["sub-2"].Label)
	assert.Equal(t, 11, byID["sub-2"].Highs)
	assert.Equal(t, domain.LabelA, byID["sub-4"].Label)
}

func TestLoad_RejectsSubscriptionsOutsideTenant(t *testing.T) {
	ctx := context.Background()
	explorer := new(mockExplorer)
	collector := new(mockCollector)

	explorer.On("ListSubscriptions", mock.Anything).Return(tenantSubscriptions(), nil)

	service, err := NewService(Settings{
		TenantID:               "tenant-1",
		AllowedSubscriptionIDs: []string{"sub-1", "sub-9"},
	}, explorer, collector)
	require.NoError(t, err)

	_, err = service.TenantLabel(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sub-9")

	// Validation fails before any findings are collected.
	collector.AssertNotCalled(t, "GetFindings", mock.Anything, mock.Anything, mock.Anything)
}

func TestLabeledResourceGroups(t *testing.T) {
	ctx := context.Background()
	explorer := new(mockExplorer)
	collector := new(mockCollector)

	findings := []domain.Finding{
		{SubscriptionID: "sub-1", ResourceGroup: "payments-prod", Severity: domain.SeverityHigh},
		{SubscriptionID: "sub-1", ResourceGroup: "payments-prod", Severity: domain.SeverityHigh},
		{SubscriptionID: "sub-2", ResourceGroup: "payments-prod", Severity: domain.SeverityHigh},
	}

	explorer.On("ListSubscriptions", mock.Anything).Return(tenantSubscriptions(), nil)
	explorer.On("ListResourceGroups", mock.Anything, "sub-1").
		Return([]domain.ResourceGroup{
			{Name: "Payments-Prod", Location: "westeurope"},
			{Name: "empty-rg", Location: "westeurope"},
		}, nil).Once()
	collector.On("GetFindings", mock.Anything, mock.Anything, mock.Anything).Return(findings, nil)

	service, err := NewService(Settings{TenantID: "tenant-1"}, explorer, collector)
	require.NoError(t, err)

	groups, err := service.LabeledResourceGroups(ctx, "sub-1")
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "Payments-Prod", groups[0].ResourceGroup.Name)
	assert.Equal(t, "sub-1", groups[0].SubscriptionID)
	// Two highs put the group past the A rule onto B. Findings from other
	// subscriptions with the same group name do not leak in.
	assert.Equal(t, domain.LabelB, groups[0].EnergyLabel.Label)
	assert.Equal(t, 2, groups[0].EnergyLabel.Highs)
	assert.Equal(t, domain.LabelA, groups[1].EnergyLabel.Label)

	// The second read comes from the cache, the pager runs once.
	_, err = service.LabeledResourceGroups(ctx, "sub-1")
	require.NoError(t, err)
	explorer.AssertExpectations(t)

	_, err = service.LabeledResourceGroups(ctx, "sub-9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not part of the labeling scope")
}

func TestReport_IncludesResourceGroupsWhenEnabled(t *testing.T) {
	ctx := context.Background()
	explorer := new(mockExplorer)
	collector := new(mockCollector)

	subscriptions := tenantSubscriptions()[:2]
	explorer.On("ListSubscriptions", mock.Anything).Return(subscriptions, nil)
	explorer.On("ListResourceGroups", mock.Anything, "sub-1").
		Return([]domain.ResourceGroup{{Name: "rg-1", Location: "westeurope"}}, nil)
	explorer.On("ListResourceGroups", mock.Anything, "sub-2").
		Return([]domain.ResourceGroup{}, nil)
	collector.On("GetFindings", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Finding{}, nil)

	service, err := NewService(Settings{
		TenantID:              "tenant-1",
		IncludeResourceGroups: true,
	}, explorer, collector)
	require.NoError(t, err)

	report, err := service.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", report.TenantID)
	assert.Equal(t, domain.LabelA, report.EnergyLabel.Label)
	assert.InDelta(t, 100.0, report.EnergyLabel.Coverage, 0.001)
	assert.Equal(t, 2, report.AggregateLabel.Population)
	assert.Len(t, report.Subscriptions, 2)
	require.Len(t, report.ResourceGroups, 1)
	assert.Equal(t, "rg-1", report.ResourceGroups[0].ResourceGroup.Name)

	explorer.AssertExpectations(t)
}

func TestLoad_PropagatesCollectorErrors(t *testing.T) {
	ctx := context.Background()
	explorer := new(mockExplorer)
	collector := new(mockCollector)

	expected := fmt.Errorf("throttled")
	explorer.On("ListSubscriptions", mock.Anything).Return(tenantSubscriptions(), nil)
	collector.On("GetFindings", mock.Anything, mock.Anything, mock.Anything).Return(nil, expected)

	service, err := NewService(Settings{TenantID: "tenant-1"}, explorer, collector)
	require.NoError(t, err)

	_, err = service.LabeledSubscriptions(ctx)
	assert.ErrorIs(t, err, expected)
}
