package defender

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resourcegraph/armresourcegraph"
	"github.com/de-tools/energy-labeler/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Collector retrieves Defender for Cloud findings through Azure Resource Graph.
type Collector interface {
	GetFindings(ctx context.Context, subscriptionIDs []string, frameworks []string) ([]domain.Finding, error)
}

type resourceGraphCollector struct {
	client *armresourcegraph.Client
}

func NewCollector(credentials azcore.TokenCredential) (Collector, error) {
	client, err := armresourcegraph.NewClient(credentials, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource graph client: %w", err)
	}
	return &resourceGraphCollector{client: client}, nil
}

func (c *resourceGraphCollector) GetFindings(
	ctx context.Context,
	subscriptionIDs []string,
	frameworks []string,
) ([]domain.Finding, error) {
	if err := ValidateFrameworks(frameworks); err != nil {
		return nil, err
	}
	if len(subscriptionIDs) == 0 {
		return nil, nil
	}

	scope := make([]*string, 0, len(subscriptionIDs))
	for _, id := range subscriptionIDs {
		scope = append(scope, to.Ptr(id))
	}

	var findings []domain.Finding
	for _, framework := range frameworks {
		rows, err := c.queryAll(ctx, scope, BuildFindingsQuery(framework))
		if err != nil {
			return nil, fmt.Errorf("failed to query findings for framework %s: %w", framework, err)
		}
		findings = append(findings, decodeFindings(ctx, rows)...)
	}
	return findings, nil
}

// queryAll drains a resource graph query. Results come back in pages of at
// most a thousand rows, chained through skip tokens.
func (c *resourceGraphCollector) queryAll(ctx context.Context, subscriptions []*string, query string) ([]any, error) {
	var rows []any
	var skipToken *string
	for {
		request := armresourcegraph.QueryRequest{
			Query:         to.Ptr(query),
			Subscriptions: subscriptions,
			Options: &armresourcegraph.QueryRequestOptions{
				ResultFormat: to.Ptr(armresourcegraph.ResultFormatObjectArray),
				SkipToken:    skipToken,
			},
		}

		response, err := c.client.Resources(ctx, request, nil)
		if err != nil {
			return nil, err
		}

		if page, ok := response.Data.([]any); ok {
			rows = append(rows, page...)
		}

		if response.SkipToken == nil || *response.SkipToken == "" {
			return rows, nil
		}
		skipToken = response.SkipToken
	}
}

// findingRow mirrors the projection of the findings query.
type findingRow struct {
	ComplianceStandardID      string `json:"complianceStandardId"`
	ComplianceControlID       string `json:"complianceControlId"`
	ComplianceState           string `json:"complianceState"`
	SubscriptionID            string `json:"subscriptionId"`
	ResourceGroup             string `json:"resourceGroup"`
	ResourceType              string `json:"resourceType"`
	ResourceName              string `json:"resourceName"`
	ResourceID                string `json:"resourceId"`
	RecommendationID          string `json:"recommendationId"`
	RecommendationName        string `json:"recommendationName"`
	RecommendationDisplayName string `json:"recommendationDisplayName"`
	Description               string `json:"description"`
	RemediationSteps          string `json:"remediationSteps"`
	Severity                  string `json:"severity"`
	State                     string `json:"state"`
	NotApplicableReason       string `json:"notApplicableReason"`
	PortalLink                string `json:"azurePortalRecommendationLink"`
	ControlName               string `json:"controlName"`
}

func decodeFindings(ctx context.Context, rows []any) []domain.Finding {
	findings := make([]domain.Finding, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		finding, err := decodeFinding(row)
		if err != nil {
			skipped++
			continue
		}
		findings = append(findings, finding)
	}
	if skipped > 0 {
		zerolog.Ctx(ctx).Warn().
			Int("skipped", skipped).
			Msg("dropped finding rows that could not be decoded")
	}
	return findings
}

func decodeFinding(row any) (domain.Finding, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return domain.Finding{}, fmt.Errorf("failed to encode finding row: %w", err)
	}

	var decoded findingRow
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return domain.Finding{}, fmt.Errorf("failed to decode finding row: %w", err)
	}

	return domain.Finding{
		ComplianceStandardID:      decoded.ComplianceStandardID,
		ComplianceControlID:       decoded.ComplianceControlID,
		ComplianceState:           decoded.ComplianceState,
		SubscriptionID:            decoded.SubscriptionID,
		ResourceGroup:             decoded.ResourceGroup,
		ResourceType:              decoded.ResourceType,
		ResourceName:              decoded.ResourceName,
		ResourceID:                decoded.ResourceID,
		RecommendationID:          decoded.RecommendationID,
		RecommendationName:        decoded.RecommendationName,
		RecommendationDisplayName: decoded.RecommendationDisplayName,
		Description:               decoded.Description,
		RemediationSteps:          decoded.RemediationSteps,
		Severity:                  domain.Severity(decoded.Severity),
		State:                     decoded.State,
		NotApplicableReason:       decoded.NotApplicableReason,
		PortalLink:                decoded.PortalLink,
		ControlName:               decoded.ControlName,
	}, nil
}
