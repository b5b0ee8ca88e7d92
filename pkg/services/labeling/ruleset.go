package labeling

import (
	"fmt"

	"github.com/de-tools/energy-labeler/pkg/models/domain"
)

// Ruleset bundles the three threshold tables of a labeling run.
type Ruleset struct {
	Tenant        []domain.AggregationRule
	Subscription  []domain.ThresholdRule
	ResourceGroup []domain.ThresholdRule
}

// DefaultRuleset returns the stock tables. There is no F row anywhere: F is
// the fall-through grade, never granted by a rule.
func DefaultRuleset() Ruleset {
	return Ruleset{
		Tenant: []domain.AggregationRule{
			{Label: domain.LabelA, Percentage: 90},
			{Label: domain.LabelB, Percentage: 70},
			{Label: domain.LabelC, Percentage: 50},
			{Label: domain.LabelD, Percentage: 30},
			{Label: domain.LabelE, Percentage: 20},
		},
		Subscription:  defaultFindingThresholds(),
		ResourceGroup: defaultFindingThresholds(),
	}
}

func defaultFindingThresholds() []domain.ThresholdRule {
	return []domain.ThresholdRule{
		{Label: domain.LabelA, MaxHigh: 0, MaxMedium: 10, MaxLow: 20},
		{Label: domain.LabelB, MaxHigh: 10, MaxMedium: 20, MaxLow: 40},
		{Label: domain.LabelC, MaxHigh: 15, MaxMedium: 30, MaxLow: 60},
		{Label: domain.LabelD, MaxHigh: 20, MaxMedium: 40, MaxLow: 80},
		{Label: domain.LabelE, MaxHigh: 25, MaxMedium: 50, MaxLow: 100},
	}
}

// Validate checks all three tables once at configuration time, so scanning
// order alone never decides a grade at classification time.
func (r Ruleset) Validate() error {
	if err := ValidateThresholds(r.Subscription); err != nil {
		return fmt.Errorf("subscription thresholds: %w", err)
	}
	if err := ValidateThresholds(r.ResourceGroup); err != nil {
		return fmt.Errorf("resource group thresholds: %w", err)
	}
	if err := ValidateAggregationRules(r.Tenant); err != nil {
		return fmt.Errorf("tenant thresholds: %w", err)
	}
	return nil
}

// ValidateThresholds requires labels to run strictly from best to worst and
// maxima to never tighten as labels worsen.
func ValidateThresholds(rules []domain.ThresholdRule) error {
	if len(rules) == 0 {
		return fmt.Errorf("threshold table is empty")
	}
	for i, rule := range rules {
		if !rule.Label.Valid() {
			return fmt.Errorf("rule %d: invalid label %q", i, string(rule.Label))
		}
		if rule.MaxHigh < 0 || rule.MaxMedium < 0 || rule.MaxLow < 0 {
			return fmt.Errorf("rule %d (%s): maxima must not be negative", i, rule.Label)
		}
		if i == 0 {
			continue
		}
		prev := rules[i-1]
		if !prev.Label.BetterThan(rule.Label) {
			return fmt.Errorf("rule %d (%s): labels must run from best to worst", i, rule.Label)
		}
		if rule.MaxHigh < prev.MaxHigh || rule.MaxMedium < prev.MaxMedium || rule.MaxLow < prev.MaxLow {
			return fmt.Errorf("rule %d (%s): maxima must not tighten as labels worsen", i, rule.Label)
		}
	}
	return nil
}

// ValidateAggregationRules requires the table to cover grades contiguously
// starting at A. Cumulative counting depends on that: skipping a grade would
// silently drop its population from every at-or-better sum.
func ValidateAggregationRules(rules []domain.AggregationRule) error {
	if len(rules) == 0 {
		return fmt.Errorf("aggregation table is empty")
	}
	for i, rule := range rules {
		want := domain.Label('A' + rune(i))
		if !want.Valid() {
			return fmt.Errorf("rule %d (%s): table has more rows than labels", i, rule.Label)
		}
		if rule.Label != want {
			return fmt.Errorf("rule %d: want label %s, got %q", i, want, string(rule.Label))
		}
		if rule.Percentage <= 0 || rule.Percentage > 100 {
			return fmt.Errorf("rule %d (%s): percentage must be within (0, 100]", i, rule.Label)
		}
	}
	return nil
}
