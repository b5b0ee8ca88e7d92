package adapters

import (
	"testing"

	"github.com/de-tools/energy-labeler/pkg/models/api"
	"github.com/de-tools/energy-labeler/pkg/models/domain"

	"github.com/stretchr/testify/assert"
)

func TestMapTenantEnergyLabelDomainToApi(t *testing.T) {
	label := domain.TenantEnergyLabel{
		Label:      domain.LabelB,
		BestLabel:  domain.LabelA,
		WorstLabel: domain.LabelD,
		Coverage:   75.0,
	}

	got := MapTenantEnergyLabelDomainToApi("tenant-1", label)

	assert.Equal(t, api.TenantEnergyLabel{
		TenantID:   "tenant-1",
		Label:      "B",
		BestLabel:  "A",
		WorstLabel: "D",
		Coverage:   "75.00%",
	}, got)
}

func TestMapTenantEnergyLabelDomainToApi_RoundsCoverage(t *testing.T) {
	label := domain.TenantEnergyLabel{Label: domain.LabelA, Coverage: 100.0 / 3.0}

	got := MapTenantEnergyLabelDomainToApi("tenant-1", label)

	assert.Equal(t, "33.33%", got.Coverage)
}

func TestMapLabeledSubscriptionDomainToApi(t *testing.T) {
	sub := domain.LabeledSubscription{
		Subscription: domain.Subscription{
			ID:          "sub-1",
			DisplayName: "Payments",
			TenantID:    "tenant-1",
			State:       "Enabled",
		},
		EnergyLabel: domain.EnergyLabel{Label: domain.LabelC, Highs: 11, Mediums: 2, Lows: 3},
	}

	got := MapLabeledSubscriptionDomainToApi(sub)

	assert.Equal(t, api.LabeledSubscription{
		SubscriptionID: "sub-1",
		DisplayName:    "Payments",
		HighFindings:   11,
		MediumFindings: 2,
		LowFindings:    3,
		Label:          "C",
	}, got)
}

func TestMapLabeledResourceGroupDomainToApi(t *testing.T) {
	group := domain.LabeledResourceGroup{
		SubscriptionID: "sub-1",
		ResourceGroup:  domain.ResourceGroup{Name: "payments-prod", Location: "westeurope"},
		EnergyLabel:    domain.EnergyLabel{Label: domain.LabelB, Highs: 2},
	}

	got := MapLabeledResourceGroupDomainToApi(group)

	assert.Equal(t, api.LabeledResourceGroup{
		SubscriptionID: "sub-1",
		Name:           "payments-prod",
		HighFindings:   2,
		MediumFindings: 0,
		LowFindings:    0,
		Label:          "B",
	}, got)
}

func TestMapFindingsDomainToApi(t *testing.T) {
	findings := []domain.Finding{
		{
			ComplianceStandardID: "Azure Security Benchmark",
			ComplianceControlID:  "NS-1",
			SubscriptionID:       "sub-1",
			ResourceGroup:        "payments-prod",
			Severity:             domain.SeverityHigh,
			State:                "Active",
		},
	}

	got := MapFindingsDomainToApi(findings)

	assert.Len(t, got, 1)
	assert.Equal(t, "Azure Security Benchmark", got[0].ComplianceStandardID)
	assert.Equal(t, "NS-1", got[0].ComplianceControlID)
	assert.Equal(t, "High", got[0].Severity)
}

func TestMapFindingsDomainToApi_EmptyStaysEmpty(t *testing.T) {
	assert.Empty(t, MapFindingsDomainToApi(nil))
	assert.Empty(t, MapLabeledSubscriptionsDomainToApi(nil))
	assert.Empty(t, MapLabeledResourceGroupsDomainToApi(nil))
}
