package export

import (
	"fmt"
	"strings"

	"github.com/de-tools/energy-labeler/pkg/adapters"
	"github.com/de-tools/energy-labeler/pkg/models/domain"
)

// Kind identifies one exported document.
type Kind int

const (
	KindEnergyLabel Kind = iota
	KindFindings
	KindSubscriptions
	KindResourceGroups
)

// datafile couples a kind with its output filename and payload builder.
// Kinds are requested by filename, so the two never drift apart.
type datafile struct {
	kind     Kind
	filename string
	build    func(report *domain.TenantReport) any
}

var datafiles = []datafile{
	{kind: KindEnergyLabel, filename: "energy-label.json", build: buildEnergyLabel},
	{kind: KindFindings, filename: "findings.json", build: buildFindings},
	{kind: KindSubscriptions, filename: "labeled-subscriptions.json", build: buildSubscriptions},
	{kind: KindResourceGroups, filename: "labeled-resource-groups.json", build: buildResourceGroups},
}

func (k Kind) String() string {
	file, ok := lookupByKind(k)
	if !ok {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return file.filename
}

// DefaultKinds covers every document a plain labeling run produces.
// Resource group documents are added when resource group labeling is on.
func DefaultKinds() []Kind {
	return []Kind{KindEnergyLabel, KindFindings, KindSubscriptions}
}

func AllKinds() []Kind {
	kinds := make([]Kind, 0, len(datafiles))
	for _, file := range datafiles {
		kinds = append(kinds, file.kind)
	}
	return kinds
}

func ParseKind(name string) (Kind, error) {
	file, ok := lookupByName(name)
	if !ok {
		return 0, fmt.Errorf("unknown export kind %q, supported kinds: %s",
			name, strings.Join(kindNames(), ", "))
	}
	return file.kind, nil
}

func ParseKinds(names []string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(names))
	for _, name := range names {
		kind, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		if !containsKind(kinds, kind) {
			kinds = append(kinds, kind)
		}
	}
	return kinds, nil
}

func kindNames() []string {
	names := make([]string, 0, len(datafiles))
	for _, file := range datafiles {
		names = append(names, file.filename)
	}
	return names
}

func containsKind(kinds []Kind, kind Kind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func lookupByKind(kind Kind) (datafile, bool) {
	for _, file := range datafiles {
		if file.kind == kind {
			return file, true
		}
	}
	return datafile{}, false
}

func lookupByName(name string) (datafile, bool) {
	for _, file := range datafiles {
		if file.filename == name {
			return file, true
		}
	}
	return datafile{}, false
}

func buildEnergyLabel(report *domain.TenantReport) any {
	return []any{adapters.MapTenantEnergyLabelDomainToApi(report.TenantID, report.EnergyLabel)}
}

func buildFindings(report *domain.TenantReport) any {
	return adapters.MapFindingsDomainToApi(report.Findings)
}

func buildSubscriptions(report *domain.TenantReport) any {
	return adapters.MapLabeledSubscriptionsDomainToApi(report.Subscriptions)
}

func buildResourceGroups(report *domain.TenantReport) any {
	return adapters.MapLabeledResourceGroupsDomainToApi(report.ResourceGroups)
}
