package domain

// Label is an energy label grade. Ordering is lexical: A is the best
// grade, F the worst, so plain string comparison ranks labels.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"
	LabelE Label = "E"
	LabelF Label = "F"
)

func (l Label) Valid() bool {
	switch l {
	case LabelA, LabelB, LabelC, LabelD, LabelE, LabelF:
		return true
	}
	return false
}

func (l Label) BetterThan(other Label) bool {
	return l < other
}

func (l Label) WorseThan(other Label) bool {
	return l > other
}

// EnergyLabel is the classification result for a single entity: the grade
// plus the finding counts it was derived from.
type EnergyLabel struct {
	Label   Label
	Highs   int
	Mediums int
	Lows    int
}

// AggregateEnergyLabel is the combined grade of a population of labeled
// entities, with the spread of grades observed and the population size.
type AggregateEnergyLabel struct {
	Label      Label
	BestLabel  Label
	WorstLabel Label
	Population int
}

// TenantEnergyLabel is the tenant-level grade. Coverage is the percentage of
// the tenant's subscriptions that were actually labeled after allow/deny
// filtering, distinct from the percentages used during aggregation.
type TenantEnergyLabel struct {
	Label      Label
	BestLabel  Label
	WorstLabel Label
	Coverage   float64
}
