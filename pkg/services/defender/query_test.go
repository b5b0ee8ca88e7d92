package defender

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFindingsQuery(t *testing.T) {
	query := BuildFindingsQuery(FrameworkSOCTSP)

	// The framework gates both the assessments and the control names join.
	assert.Equal(t, 2, strings.Count(query, `"SOC TSP"`))
	assert.NotContains(t, query, frameworkPlaceholder)
	assert.Contains(t, query, "microsoft.security/regulatorycompliancestandards")
}

func TestValidateFrameworks(t *testing.T) {
	require.NoError(t, ValidateFrameworks(SupportedFrameworks()))
	require.NoError(t, ValidateFrameworks([]string{FrameworkAzureCIS110}))

	err := ValidateFrameworks([]string{FrameworkAzureSecurityBenchmark, "PCI DSS"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PCI DSS")

	err = ValidateFrameworks(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one framework")
}

func TestDefaultFrameworksAreValid(t *testing.T) {
	require.NoError(t, ValidateFrameworks(DefaultFrameworks()))
}
