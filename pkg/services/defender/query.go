package defender

import (
	"fmt"
	"strings"
)

// Regulatory compliance frameworks Defender for Cloud exposes assessment
// data for. Anything else yields an empty result set, so requests for
// unknown frameworks are rejected up front.
const (
	FrameworkAzureSecurityBenchmark = "Azure Security Benchmark"
	FrameworkSOCTSP                 = "SOC TSP"
	FrameworkAzureCIS110            = "Azure CIS 1.1.0"
)

var supportedFrameworks = []string{
	FrameworkAzureSecurityBenchmark,
	FrameworkSOCTSP,
	FrameworkAzureCIS110,
}

const frameworkPlaceholder = "{framework}"

// findingsQuery flattens regulatory compliance assessments into one row per
// finding. The left outer joins pull in the assessment metadata (severity,
// remediation, portal link) and the control display name.
const findingsQuery = `securityresources
| where type == "microsoft.security/regulatorycompliancestandards/regulatorycompliancecontrols/regulatorycomplianceassessments"
| extend complianceStandardId = replace( "-", " ", extract(@'/regulatoryComplianceStandards/([^/]*)', 1, id))
| where complianceStandardId == "{framework}"
| extend failedResources = toint(properties.failedResources)
| where failedResources > 0 or properties.assessmentType == "MicrosoftManaged"
| join kind = leftouter(
    securityresources
    | where type == "microsoft.security/assessments") on subscriptionId, name
| extend complianceState = tostring(properties.state)
| extend resourceSource = tolower(tostring(properties1.resourceDetails.Source))
| extend recommendationId = iff(isnull(id1) or isempty(id1), id, id1)
| extend resourceId = trim(' ', tolower(tostring(case(resourceSource =~ 'azure', properties1.resourceDetails.Id,
    resourceSource =~ 'gcp', properties1.resourceDetails.GcpResourceId,
    resourceSource =~ 'aws' and isnotempty(tostring(properties1.resourceDetails.ConnectorId)), properties1.resourceDetails.Id,
    resourceSource =~ 'aws', properties1.resourceDetails.AwsResourceId,
    extract('^(.+)/providers/Microsoft.Security/assessments/.+$',1,recommendationId)))))
| extend regexResourceId = extract_all(@"/providers/[^/]+(?:/([^/]+)/[^/]+(?:/[^/]+/[^/]+)?)?/([^/]+)/([^/]+)$", resourceId)[0]
| extend resourceType = iff(resourceSource =~ "aws" and isnotempty(tostring(properties1.resourceDetails.ConnectorId)), tostring(properties1.additionalData.ResourceType), iff(regexResourceId[1] != "", regexResourceId[1], iff(regexResourceId[0] != "", regexResourceId[0], "subscriptions")))
| extend resourceName = tostring(regexResourceId[2])
| extend recommendationName = name
| extend recommendationDisplayName = tostring(iff(isnull(properties1.displayName) or isempty(properties1.displayName), properties.description, properties1.displayName))
| extend description = tostring(properties1.metadata.description)
| extend remediationSteps = tostring(properties1.metadata.remediationDescription)
| extend severity = tostring(properties1.metadata.severity)
| extend azurePortalRecommendationLink = tostring(properties1.links.azurePortal)
| extend complianceStandardId = replace( "-", " ", extract(@'/regulatoryComplianceStandards/([^/]*)', 1, id))
| extend complianceControlId = extract(@"/regulatoryComplianceControls/([^/]*)", 1, id)
| mvexpand statusPerInitiative = properties1.statusPerInitiative
| extend expectedInitiative = statusPerInitiative.policyInitiativeName =~ "ASC Default"
| summarize arg_max(expectedInitiative, *) by complianceControlId, recommendationId
| extend state = iff(expectedInitiative, tolower(statusPerInitiative.assessmentStatus.code), tolower(properties1.status.code))
| extend notApplicableReason = iff(expectedInitiative, tostring(statusPerInitiative.assessmentStatus.cause), tostring(properties1.status.cause))
| project-away expectedInitiative
| project complianceStandardId, complianceControlId, complianceState, subscriptionId, resourceGroup = resourceGroup1, resourceType, resourceName, resourceId, recommendationId, recommendationName, recommendationDisplayName, description, remediationSteps, severity, state, notApplicableReason, azurePortalRecommendationLink
| join kind = leftouter (securityresources
    | where type == "microsoft.security/regulatorycompliancestandards/regulatorycompliancecontrols"
    | extend complianceStandardId = replace( "-", " ", extract(@'/regulatoryComplianceStandards/([^/]*)', 1, id))
    | where complianceStandardId == "{framework}"
    | extend controlName = tostring(properties.description)
    | project controlId = name, controlName
    | distinct *) on $right.controlId == $left.complianceControlId
| project-away controlId
| distinct *
| order by complianceControlId asc, recommendationId asc`

// BuildFindingsQuery renders the findings query for one framework.
func BuildFindingsQuery(framework string) string {
	return strings.ReplaceAll(findingsQuery, frameworkPlaceholder, framework)
}

// SupportedFrameworks returns the accepted framework names.
func SupportedFrameworks() []string {
	frameworks := make([]string, len(supportedFrameworks))
	copy(frameworks, supportedFrameworks)
	return frameworks
}

// DefaultFrameworks returns the frameworks queried when none are configured.
func DefaultFrameworks() []string {
	return SupportedFrameworks()
}

func ValidateFrameworks(frameworks []string) error {
	if len(frameworks) == 0 {
		return fmt.Errorf("at least one framework must be provided")
	}
	for _, framework := range frameworks {
		if !isSupportedFramework(framework) {
			return fmt.Errorf("unsupported framework %q, supported frameworks: %s",
				framework, strings.Join(supportedFrameworks, ", "))
		}
	}
	return nil
}

func isSupportedFramework(framework string) bool {
	for _, supported := range supportedFrameworks {
		if framework == supported {
			return true
		}
	}
	return false
}
