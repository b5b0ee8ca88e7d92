package labeling

import (
	"fmt"

	"github.com/de-tools/energy-labeler/pkg/models/domain"
)

// Aggregate combines the labels of a population into one grade. Rules are
// walked best to worst with a running count of entities graded at-or-better
// than the current rule; the first rule whose percentage is reached wins,
// so when two rules would both be satisfied the better label prevails. A
// population no rule accepts gets the worst label.
func Aggregate(labels []domain.Label, rules []domain.AggregationRule) (domain.AggregateEnergyLabel, error) {
	if len(labels) == 0 {
		return domain.AggregateEnergyLabel{}, fmt.Errorf("cannot aggregate an empty population")
	}

	counts := make(map[domain.Label]int, len(labels))
	best, worst := labels[0], labels[0]
	for _, label := range labels {
		counts[label]++
		if label.BetterThan(best) {
			best = label
		}
		if label.WorseThan(worst) {
			worst = label
		}
	}

	population := len(labels)
	result := domain.AggregateEnergyLabel{
		Label:      domain.LabelF,
		BestLabel:  best,
		WorstLabel: worst,
		Population: population,
	}

	cumulative := 0
	for _, rule := range rules {
		cumulative += counts[rule.Label]
		if float64(cumulative)/float64(population)*100 >= rule.Percentage {
			result.Label = rule.Label
			break
		}
	}
	return result, nil
}
