package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError(t *testing.T) {
	err := &ConfigurationError{Category: CategoryScada, Field: "windsped", Reason: "unknown canonical field"}
	assert.Contains(t, err.Error(), "scada")
	assert.Contains(t, err.Error(), `"windsped"`)
	assert.Contains(t, err.Error(), "unknown canonical field")
}

func TestSchemaError(t *testing.T) {
	err := &SchemaError{
		Op: "validate",
		Issues: []Issue{
			NewIssue(CategoryAsset, "latitude", "table absent"),
			{Category: CategoryScada, Field: "power", Source: "P_avg", Row: 3, Value: "n/a", Reason: "non-numeric value"},
			{Category: CategoryReanalysis, Product: "era5", Field: "windspeed", Row: -1, Reason: "required column missing"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "3 issue(s)")
	assert.Contains(t, msg, "[asset] latitude")
	assert.Contains(t, msg, `(source column "P_avg") row 3 value "n/a"`)
	assert.Contains(t, msg, "[reanalysis.era5] windspeed")
}
