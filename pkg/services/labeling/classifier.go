package labeling

import (
	"strings"

	"github.com/de-tools/energy-labeler/pkg/models/domain"
)

// Classify grades one entity from the findings attributed to it. An entity
// with no findings passes outright with the best label; otherwise the first
// threshold rule whose maxima all hold decides the grade, and an entity no
// rule accepts gets the worst label with its observed counts intact.
func Classify(findings []domain.Finding, rules []domain.ThresholdRule) domain.EnergyLabel {
	if len(findings) == 0 {
		return domain.EnergyLabel{Label: domain.LabelA}
	}

	highs, mediums, lows := countBySeverity(findings)
	label := domain.LabelF
	if rule, ok := matchThreshold(highs, mediums, lows, rules); ok {
		label = rule.Label
	}

	return domain.EnergyLabel{
		Label:   label,
		Highs:   highs,
		Mediums: mediums,
		Lows:    lows,
	}
}

// matchThreshold scans the table in order and returns the first rule whose
// maxima all hold. Counts equal to a maximum still match.
func matchThreshold(highs, mediums, lows int, rules []domain.ThresholdRule) (domain.ThresholdRule, bool) {
	for _, rule := range rules {
		if highs <= rule.MaxHigh && mediums <= rule.MaxMedium && lows <= rule.MaxLow {
			return rule, true
		}
	}
	return domain.ThresholdRule{}, false
}

// countBySeverity tallies High/Medium/Low findings. Findings with any other
// severity carry no weight.
func countBySeverity(findings []domain.Finding) (highs, mediums, lows int) {
	for _, finding := range findings {
		switch finding.Severity {
		case domain.SeverityHigh:
			highs++
		case domain.SeverityMedium:
			mediums++
		case domain.SeverityLow:
			lows++
		}
	}
	return highs, mediums, lows
}

// FindingsForSubscription selects the findings attributed to a subscription.
func FindingsForSubscription(findings []domain.Finding, subscriptionID string) []domain.Finding {
	var matched []domain.Finding
	for _, finding := range findings {
		if finding.SubscriptionID == subscriptionID {
			matched = append(matched, finding)
		}
	}
	return matched
}

// FindingsForResourceGroup selects the findings attributed to a resource
// group within a subscription. Names match case-insensitively because the
// findings query lowercases resource ids.
func FindingsForResourceGroup(findings []domain.Finding, subscriptionID, name string) []domain.Finding {
	var matched []domain.Finding
	for _, finding := range findings {
		if finding.SubscriptionID == subscriptionID && strings.EqualFold(finding.ResourceGroup, name) {
			matched = append(matched, finding)
		}
	}
	return matched
}
