package domain

// ThresholdRule maps finding-count ceilings to a label. Rules are consulted
// in table order, best label first; the first rule whose maxima all hold
// wins.
type ThresholdRule struct {
	Label     Label `mapstructure:"label"`
	MaxHigh   int   `mapstructure:"high"`
	MaxMedium int   `mapstructure:"medium"`
	MaxLow    int   `mapstructure:"low"`
}

// AggregationRule grants its label when the cumulative share of entities
// labeled at-or-better than it reaches Percentage.
type AggregationRule struct {
	Label      Label   `mapstructure:"label"`
	Percentage float64 `mapstructure:"percentage"`
}
