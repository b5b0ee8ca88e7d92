package domain

type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// Finding is one Defender for Cloud compliance finding as projected by the
// resource graph query. Findings are plain values; two findings with the
// same content are the same finding.
type Finding struct {
	ComplianceStandardID      string
	ComplianceControlID       string
	ComplianceState           string
	SubscriptionID            string
	ResourceGroup             string
	ResourceType              string
	ResourceName              string
	ResourceID                string
	Severity                  Severity
	State                     string
	NotApplicableReason       string
	RecommendationID          string
	RecommendationName        string
	RecommendationDisplayName string
	Description               string
	RemediationSteps          string
	PortalLink                string
	ControlName               string
}
