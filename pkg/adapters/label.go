package adapters

import (
	"fmt"

	"github.com/de-tools/energy-labeler/pkg/models/api"
	"github.com/de-tools/energy-labeler/pkg/models/domain"
)

func MapTenantEnergyLabelDomainToApi(tenantID string, label domain.TenantEnergyLabel) api.TenantEnergyLabel {
	return api.TenantEnergyLabel{
		TenantID:   tenantID,
		Label:      string(label.Label),
		BestLabel:  string(label.BestLabel),
		WorstLabel: string(label.WorstLabel),
		Coverage:   fmt.Sprintf("%.2f%%", label.Coverage),
	}
}

func MapLabeledSubscriptionDomainToApi(sub domain.LabeledSubscription) api.LabeledSubscription {
	return api.LabeledSubscription{
		SubscriptionID: sub.Subscription.ID,
		DisplayName:    sub.Subscription.DisplayName,
		HighFindings:   sub.EnergyLabel.Highs,
		MediumFindings: sub.EnergyLabel.Mediums,
		LowFindings:    sub.EnergyLabel.Lows,
		Label:          string(sub.EnergyLabel.Label),
	}
}

func MapLabeledResourceGroupDomainToApi(group domain.LabeledResourceGroup) api.LabeledResourceGroup {
	return api.LabeledResourceGroup{
		SubscriptionID: group.SubscriptionID,
		Name:           group.ResourceGroup.Name,
		HighFindings:   group.EnergyLabel.Highs,
		MediumFindings: group.EnergyLabel.Mediums,
		LowFindings:    group.EnergyLabel.Lows,
		Label:          string(group.EnergyLabel.Label),
	}
}

func MapFindingDomainToApi(finding domain.Finding) api.Finding {
	return api.Finding{
		ComplianceStandardID:      finding.ComplianceStandardID,
		ComplianceControlID:       finding.ComplianceControlID,
		ComplianceState:           finding.ComplianceState,
		SubscriptionID:            finding.SubscriptionID,
		ResourceGroup:             finding.ResourceGroup,
		ResourceType:              finding.ResourceType,
		ResourceName:              finding.ResourceName,
		ResourceID:                finding.ResourceID,
		Severity:                  string(finding.Severity),
		State:                     finding.State,
		NotApplicableReason:       finding.NotApplicableReason,
		RecommendationID:          finding.RecommendationID,
		RecommendationName:        finding.RecommendationName,
		RecommendationDisplayName: finding.RecommendationDisplayName,
		Description:               finding.Description,
		RemediationSteps:          finding.RemediationSteps,
		PortalLink:                finding.PortalLink,
		ControlName:               finding.ControlName,
	}
}

func MapFindingsDomainToApi(findings []domain.Finding) []api.Finding {
	records := make([]api.Finding, 0, len(findings))
	for _, finding := range findings {
		records = append(records, MapFindingDomainToApi(finding))
	}
	return records
}

func MapLabeledSubscriptionsDomainToApi(subs []domain.LabeledSubscription) []api.LabeledSubscription {
	records := make([]api.LabeledSubscription, 0, len(subs))
	for _, sub := range subs {
		records = append(records, MapLabeledSubscriptionDomainToApi(sub))
	}
	return records
}

func MapLabeledResourceGroupsDomainToApi(groups []domain.LabeledResourceGroup) []api.LabeledResourceGroup {
	records := make([]api.LabeledResourceGroup, 0, len(groups))
	for _, group := range groups {
		records = append(records, MapLabeledResourceGroupDomainToApi(group))
	}
	return records
}
