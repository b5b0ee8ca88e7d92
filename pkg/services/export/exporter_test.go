package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/energy-labeler/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *domain.TenantReport {
	return &domain.TenantReport{
		TenantID: "tenant-1",
		EnergyLabel: domain.TenantEnergyLabel{
			Label:      domain.LabelB,
			BestLabel:  domain.LabelA,
			WorstLabel: domain.LabelC,
			Coverage:   75,
		},
		AggregateLabel: domain.AggregateEnergyLabel{
			Label:      domain.LabelB,
			BestLabel:  domain.LabelA,
			WorstLabel: domain.LabelC,
			Population: 4,
		},
		Subscriptions: []domain.LabeledSubscription{
			{
				Subscription: domain.Subscription{ID: "sub-1", DisplayName: "payments"},
				EnergyLabel:  domain.EnergyLabel{Label: domain.LabelA},
			},
		},
		ResourceGroups: []domain.LabeledResourceGroup{
			{
				SubscriptionID: "sub-1",
				ResourceGroup:  domain.ResourceGroup{Name: "payments-prod", Location: "westeurope"},
				EnergyLabel:    domain.EnergyLabel{Label: domain.LabelB, Highs: 2},
			},
		},
		Findings: []domain.Finding{
			{SubscriptionID: "sub-1", Severity: domain.SeverityHigh, RecommendationName: "assessment-1"},
		},
	}
}

func TestExporter_WritesDocumentsToDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "labels")
	exporter := NewExporter(AllKinds(), NewFSWriter(dir))

	require.NoError(t, exporter.Export(context.Background(), sampleReport()))

	raw, err := os.ReadFile(filepath.Join(dir, "energy-label.json"))
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(raw, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "tenant-1", records[0]["tenant_id"])
	assert.Equal(t, "B", records[0]["energy_label"])
	assert.Equal(t, "75.00%", records[0]["coverage"])

	raw, err = os.ReadFile(filepath.Join(dir, "labeled-subscriptions.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"subscription_id": "sub-1"`)

	raw, err = os.ReadFile(filepath.Join(dir, "labeled-resource-groups.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"payments-prod"`)

	raw, err = os.ReadFile(filepath.Join(dir, "findings.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"assessment-1"`)
}

type stubWriter struct {
	failOn string
	writes map[string][]byte
}

func (w *stubWriter) Write(_ context.Context, filename string, data []byte) error {
	if filename == w.failOn {
		return fmt.Errorf("failed to write %s: connection reset", filename)
	}
	w.writes[filename] = data
	return nil
}

func TestExporter_KeepsGoingWhenOneDocumentFails(t *testing.T) {
	writer := &stubWriter{failOn: "findings.json", writes: map[string][]byte{}}
	exporter := NewExporter(AllKinds(), writer)

	err := exporter.Export(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "findings.json")

	assert.Contains(t, writer.writes, "energy-label.json")
	assert.Contains(t, writer.writes, "labeled-subscriptions.json")
	assert.Contains(t, writer.writes, "labeled-resource-groups.json")
}

func TestParseKinds(t *testing.T) {
	kinds, err := ParseKinds([]string{"energy-label.json", "findings.json", "energy-label.json"})
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindEnergyLabel, KindFindings}, kinds)

	_, err = ParseKinds([]string{"labels.csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export kind")
	assert.Contains(t, err.Error(), "energy-label.json")
}

func TestParseDestination(t *testing.T) {
	dest, err := ParseDestination("/tmp/labels")
	require.NoError(t, err)
	assert.Equal(t, DestinationFS, dest.Type)
	assert.Equal(t, "/tmp/labels", dest.Path)

	dest, err = ParseDestination("https://labels.blob.core.windows.net/reports/q3")
	require.NoError(t, err)
	assert.Equal(t, DestinationBlob, dest.Type)
	assert.Equal(t, "https://labels.blob.core.windows.net/", dest.AccountURL)
	assert.Equal(t, "reports", dest.Container)
	assert.Equal(t, "q3", dest.Prefix)

	dest, err = ParseDestination("s3://security-reports/labels")
	require.NoError(t, err)
	assert.Equal(t, DestinationS3, dest.Type)
	assert.Equal(t, "security-reports", dest.Bucket)
	assert.Equal(t, "labels", dest.Prefix)
}

func TestParseDestination_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty path", ""},
		{"blob url without container", "https://labels.blob.core.windows.net"},
		{"https outside blob storage", "https://example.com/reports"},
		{"s3 without bucket", "s3:///labels"},
		{"unknown scheme", "ftp://example.com/labels"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDestination(tc.raw)
			assert.Error(t, err)
		})
	}
}
