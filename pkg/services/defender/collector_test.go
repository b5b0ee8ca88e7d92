package defender

import (
	"context"
	"testing"

	"github.com/de-tools/energy-labeler/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFindings(t *testing.T) {
	rows := []any{
		map[string]any{
			"complianceStandardId":          "Azure Security Benchmark",
			"complianceControlId":           "NS-1",
			"complianceState":               "Failed",
			"subscriptionId":                "sub-1",
			"resourceGroup":                 "payments-prod",
			"resourceType":                  "virtualmachines",
			"resourceName":                  "vm-01",
			"resourceId":                    "/subscriptions/sub-1/resourcegroups/payments-prod/providers/microsoft.compute/virtualmachines/vm-01",
			"recommendationId":              "rec-1",
			"recommendationName":            "assessment-1",
			"recommendationDisplayName":     "Internal-facing VMs should be protected",
			"description":                   "Protect the VM with network security groups.",
			"remediationSteps":              "Attach an NSG.",
			"severity":                      "High",
			"state":                         "unhealthy",
			"azurePortalRecommendationLink": "https://portal.azure.com/#blade/rec-1",
			"controlName":                   "Network Security",
		},
	}

	findings := decodeFindings(context.Background(), rows)
	require.Len(t, findings, 1)

	finding := findings[0]
	assert.Equal(t, "Azure Security Benchmark", finding.ComplianceStandardID)
	assert.Equal(t, "NS-1", finding.ComplianceControlID)
	assert.Equal(t, "sub-1", finding.SubscriptionID)
	assert.Equal(t, "payments-prod", finding.ResourceGroup)
	assert.Equal(t, domain.SeverityHigh, finding.Severity)
	assert.Equal(t, "unhealthy", finding.State)
	assert.Equal(t, "https://portal.azure.com/#blade/rec-1", finding.PortalLink)
	assert.Equal(t, "Network Security", finding.ControlName)
	assert.Empty(t, finding.NotApplicableReason)
}

func TestDecodeFindings_SkipsRowsItCannotDecode(t *testing.T) {
	rows := []any{
		map[string]any{"severity": 42},
		"not an object",
		map[string]any{"subscriptionId": "sub-1", "severity": "Low"},
	}

	findings := decodeFindings(context.Background(), rows)
	require.Len(t, findings, 1)
	assert.Equal(t, "sub-1", findings[0].SubscriptionID)
	assert.Equal(t, domain.SeverityLow, findings[0].Severity)
}
