package labeler

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/de-tools/energy-labeler/pkg/models/domain"
	"github.com/de-tools/energy-labeler/pkg/services/defender"
	"github.com/de-tools/energy-labeler/pkg/services/labeling"
	"github.com/de-tools/energy-labeler/pkg/services/tenant"
	"github.com/rs/zerolog"
)

// ErrOutOfScope marks requests for subscriptions the allow/deny filtering
// excluded from labeling.
var ErrOutOfScope = errors.New("subscription is not part of the labeling scope")

// Settings holds everything needed to score one tenant.
type Settings struct {
	TenantID               string
	Frameworks             []string
	AllowedSubscriptionIDs []string
	DeniedSubscriptionIDs  []string
	IncludeResourceGroups  bool
	Rules                  labeling.Ruleset
}

// Service scores a tenant and serves every view of the outcome. Azure is
// consulted once per instance: all read paths share one memoized run.
type Service interface {
	Report(ctx context.Context) (*domain.TenantReport, error)
	TenantLabel(ctx context.Context) (domain.TenantEnergyLabel, error)
	LabeledSubscriptions(ctx context.Context) ([]domain.LabeledSubscription, error)
	LabeledResourceGroups(ctx context.Context, subscriptionID string) ([]domain.LabeledResourceGroup, error)
	Findings(ctx context.Context) ([]domain.Finding, error)
}

type labelerService struct {
	settings  Settings
	explorer  tenant.Explorer
	collector defender.Collector

	mu       sync.Mutex
	snapshot *snapshot
	groups   map[string][]domain.LabeledResourceGroup
}

// snapshot is the memoized outcome of one labeling run.
type snapshot struct {
	tenantTotal   int
	subscriptions []domain.Subscription
	findings      []domain.Finding
	labels        map[string]domain.EnergyLabel
	aggregate     domain.AggregateEnergyLabel
}

func NewService(settings Settings, explorer tenant.Explorer, collector defender.Collector) (Service, error) {
	if settings.TenantID == "" {
		return nil, fmt.Errorf("tenant id must be provided")
	}
	if len(settings.AllowedSubscriptionIDs) > 0 && len(settings.DeniedSubscriptionIDs) > 0 {
		return nil, fmt.Errorf("allowed and denied subscription ids are mutually exclusive")
	}
	if len(settings.Frameworks) == 0 {
		settings.Frameworks = defender.DefaultFrameworks()
	}
	if err := defender.ValidateFrameworks(settings.Frameworks); err != nil {
		return nil, err
	}
	if isZeroRuleset(settings.Rules) {
		settings.Rules = labeling.DefaultRuleset()
	}
	if err := settings.Rules.Validate(); err != nil {
		return nil, err
	}

	return &labelerService{
		settings:  settings,
		explorer:  explorer,
		collector: collector,
		groups:    make(map[string][]domain.LabeledResourceGroup),
	}, nil
}

func isZeroRuleset(rules labeling.Ruleset) bool {
	return len(rules.Tenant) == 0 && len(rules.Subscription) == 0 && len(rules.ResourceGroup) == 0
}

func (s *labelerService) Report(ctx context.Context) (*domain.TenantReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.TenantReport{
		TenantID:       s.settings.TenantID,
		EnergyLabel:    tenantLabel(snap),
		AggregateLabel: snap.aggregate,
		Subscriptions:  labeledSubscriptions(snap),
		Findings:       snap.findings,
	}

	if s.settings.IncludeResourceGroups {
		for _, sub := range snap.subscriptions {
			groups, err := s.labeledResourceGroupsLocked(ctx, snap, sub.ID)
			if err != nil {
				return nil, err
			}
			report.ResourceGroups = append(report.ResourceGroups, groups...)
		}
	}

	return report, nil
}

func (s *labelerService) TenantLabel(ctx context.Context) (domain.TenantEnergyLabel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadLocked(ctx)
	if err != nil {
		return domain.TenantEnergyLabel{}, err
	}
	return tenantLabel(snap), nil
}

func (s *labelerService) LabeledSubscriptions(ctx context.Context) ([]domain.LabeledSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	return labeledSubscriptions(snap), nil
}

func (s *labelerService) LabeledResourceGroups(ctx context.Context, subscriptionID string) ([]domain.LabeledResourceGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	return s.labeledResourceGroupsLocked(ctx, snap, subscriptionID)
}

func (s *labelerService) Findings(ctx context.Context) ([]domain.Finding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	return snap.findings, nil
}

// loadLocked runs the labeling pipeline once and memoizes the outcome.
// Callers must hold s.mu.
func (s *labelerService) loadLocked(ctx context.Context) (*snapshot, error) {
	if s.snapshot != nil {
		return s.snapshot, nil
	}

	subscriptions, err := s.explorer.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenant subscriptions: %w", err)
	}
	if len(subscriptions) == 0 {
		return nil, fmt.Errorf("tenant %s has no subscriptions", s.settings.TenantID)
	}

	scoped, err := scopeSubscriptions(subscriptions, s.settings.AllowedSubscriptionIDs, s.settings.DeniedSubscriptionIDs)
	if err != nil {
		return nil, err
	}

	// Findings cover every tenant subscription, not just the labeling
	// scope, so per subscription views stay consistent with the portal.
	ids := make([]string, 0, len(subscriptions))
	for _, sub := range subscriptions {
		ids = append(ids, sub.ID)
	}

	findings, err := s.collector.GetFindings(ctx, ids, s.settings.Frameworks)
	if err != nil {
		return nil, fmt.Errorf("failed to collect findings: %w", err)
	}

	labels := make(map[string]domain.EnergyLabel, len(scoped))
	population := make([]domain.Label, 0, len(scoped))
	for _, sub := range scoped {
		label := labeling.Classify(labeling.FindingsForSubscription(findings, sub.ID), s.settings.Rules.Subscription)
		labels[sub.ID] = label
		population = append(population, label.Label)
	}

	aggregate, err := labeling.Aggregate(population, s.settings.Rules.Tenant)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate subscription labels: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Int("subscriptions", len(subscriptions)).
		Int("labeled", len(scoped)).
		Int("findings", len(findings)).
		Str("label", string(aggregate.Label)).
		Msg("labeled tenant")

	s.snapshot = &snapshot{
		tenantTotal:   len(subscriptions),
		subscriptions: scoped,
		findings:      findings,
		labels:        labels,
		aggregate:     aggregate,
	}
	return s.snapshot, nil
}

func (s *labelerService) labeledResourceGroupsLocked(
	ctx context.Context,
	snap *snapshot,
	subscriptionID string,
) ([]domain.LabeledResourceGroup, error) {
	if _, ok := snap.labels[subscriptionID]; !ok {
		return nil, fmt.Errorf("subscription %s: %w", subscriptionID, ErrOutOfScope)
	}
	if cached, ok := s.groups[subscriptionID]; ok {
		return cached, nil
	}

	groups, err := s.explorer.ListResourceGroups(ctx, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resource groups for subscription %s: %w", subscriptionID, err)
	}

	labeled := make([]domain.LabeledResourceGroup, 0, len(groups))
	for _, group := range groups {
		findings := labeling.FindingsForResourceGroup(snap.findings, subscriptionID, group.Name)
		labeled = append(labeled, domain.LabeledResourceGroup{
			SubscriptionID: subscriptionID,
			ResourceGroup:  group,
			EnergyLabel:    labeling.Classify(findings, s.settings.Rules.ResourceGroup),
		})
	}

	s.groups[subscriptionID] = labeled
	return labeled, nil
}

func tenantLabel(snap *snapshot) domain.TenantEnergyLabel {
	return domain.TenantEnergyLabel{
		Label:      snap.aggregate.Label,
		BestLabel:  snap.aggregate.BestLabel,
		WorstLabel: snap.aggregate.WorstLabel,
		Coverage:   float64(len(snap.subscriptions)) / float64(snap.tenantTotal) * 100,
	}
}

func labeledSubscriptions(snap *snapshot) []domain.LabeledSubscription {
	labeled := make([]domain.LabeledSubscription, 0, len(snap.subscriptions))
	for _, sub := range snap.subscriptions {
		labeled = append(labeled, domain.LabeledSubscription{
			Subscription: sub,
			EnergyLabel:  snap.labels[sub.ID],
		})
	}
	return labeled
}

func scopeSubscriptions(subscriptions []domain.Subscription, allowed, denied []string) ([]domain.Subscription, error) {
	ids := make([]string, 0, len(subscriptions))
	for _, sub := range subscriptions {
		ids = append(ids, sub.ID)
	}

	if err := validateTenantMembership(ids, allowed); err != nil {
		return nil, err
	}
	if err := validateTenantMembership(ids, denied); err != nil {
		return nil, err
	}

	switch {
	case len(allowed) > 0:
		scoped := make([]domain.Subscription, 0, len(allowed))
		for _, sub := range subscriptions {
			if slices.Contains(allowed, sub.ID) {
				scoped = append(scoped, sub)
			}
		}
		return scoped, nil
	case len(denied) > 0:
		var scoped []domain.Subscription
		for _, sub := range subscriptions {
			if !slices.Contains(denied, sub.ID) {
				scoped = append(scoped, sub)
			}
		}
		return scoped, nil
	default:
		return subscriptions, nil
	}
}

func validateTenantMembership(tenantIDs, ids []string) error {
	var missing []string
	for _, id := range ids {
		if !slices.Contains(tenantIDs, id) {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("subscription ids not part of the tenant: %s", strings.Join(missing, ", "))
	}
	return nil
}
