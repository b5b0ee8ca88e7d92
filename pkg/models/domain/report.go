package domain

// TenantReport is the assembled outcome of one labeling run: every labeled
// entity in scope plus the findings the labels were derived from.
// ResourceGroups is populated only when resource-group labeling was
// requested for the run.
type TenantReport struct {
	TenantID       string
	EnergyLabel    TenantEnergyLabel
	AggregateLabel AggregateEnergyLabel
	Subscriptions  []LabeledSubscription
	ResourceGroups []LabeledResourceGroup
	Findings       []Finding
}
