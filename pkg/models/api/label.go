package api

type TenantEnergyLabel struct {
	TenantID   string `json:"tenant_id"`
	Label      string `json:"energy_label"`
	BestLabel  string `json:"best_label"`
	WorstLabel string `json:"worst_label"`
	Coverage   string `json:"coverage"`
}

type LabeledSubscription struct {
	SubscriptionID string `json:"subscription_id"`
	DisplayName    string `json:"display_name"`
	HighFindings   int    `json:"high_findings"`
	MediumFindings int    `json:"medium_findings"`
	LowFindings    int    `json:"low_findings"`
	Label          string `json:"energy_label"`
}

type LabeledResourceGroup struct {
	SubscriptionID string `json:"subscription_id"`
	Name           string `json:"name"`
	HighFindings   int    `json:"high_findings"`
	MediumFindings int    `json:"medium_findings"`
	LowFindings    int    `json:"low_findings"`
	Label          string `json:"energy_label"`
}

type Finding struct {
	ComplianceStandardID      string `json:"compliance_standard_id"`
	ComplianceControlID       string `json:"compliance_control_id"`
	ComplianceState           string `json:"compliance_state"`
	SubscriptionID            string `json:"subscription_id"`
	ResourceGroup             string `json:"resource_group"`
	ResourceType              string `json:"resource_type"`
	ResourceName              string `json:"resource_name"`
	ResourceID                string `json:"resource_id"`
	Severity                  string `json:"severity"`
	State                     string `json:"state"`
	NotApplicableReason       string `json:"not_applicable_reason,omitempty"`
	RecommendationID          string `json:"recommendation_id"`
	RecommendationName        string `json:"recommendation_name"`
	RecommendationDisplayName string `json:"recommendation_display_name"`
	Description               string `json:"description"`
	RemediationSteps          string `json:"remediation_steps"`
	PortalLink                string `json:"azure_portal_link"`
	ControlName               string `json:"control_name"`
}
