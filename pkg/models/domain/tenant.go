package domain

// Subscription is one subscription of the tenant as reported by the Azure
// directory listing. Findings are correlated to it by SubscriptionID only.
type Subscription struct {
	ID          string
	DisplayName string
	TenantID    string
	State       string
}

type ResourceGroup struct {
	Name     string
	Location string
}

// LabeledSubscription pairs a subscription with its computed label. Labels
// are explicit result values; nothing is cached on the entity itself.
type LabeledSubscription struct {
	Subscription Subscription
	EnergyLabel  EnergyLabel
}

type LabeledResourceGroup struct {
	SubscriptionID string
	ResourceGroup  ResourceGroup
	EnergyLabel    EnergyLabel
}
