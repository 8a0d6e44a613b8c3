package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementsFor(t *testing.T) {
	t.Run("nil input yields empty set", func(t *testing.T) {
		set, err := RequirementsFor(nil)
		require.NoError(t, err)
		assert.Empty(t, set)
	})

	t.Run("empty input yields empty set", func(t *testing.T) {
		set, err := RequirementsFor([]string{})
		require.NoError(t, err)
		assert.Empty(t, set)
	})

	t.Run("all unions every field of every category", func(t *testing.T) {
		set, err := RequirementsFor([]string{AnalysisAll})
		require.NoError(t, err)

		total := 0
		for _, cat := range Categories {
			total += len(Fields(cat))
		}
		// A set cannot hold duplicates, so an exact count proves the union
		// covers everything exactly once.
		assert.Len(t, set, total)
		assert.Contains(t, set, Requirement{Category: CategoryAsset, Field: "rated_power"})
		assert.Contains(t, set, Requirement{Category: CategoryReanalysis, Field: "surface_pressure"})
	})

	t.Run("single analysis type", func(t *testing.T) {
		set, err := RequirementsFor([]string{"ElectricalLosses"})
		require.NoError(t, err)
		assert.Contains(t, set, Requirement{Category: CategoryScada, Field: "energy"})
		assert.Contains(t, set, Requirement{Category: CategoryMeter, Field: "energy"})
		assert.NotContains(t, set, Requirement{Category: CategoryAsset, Field: "latitude"})
	})

	t.Run("multiple types union", func(t *testing.T) {
		set, err := RequirementsFor([]string{"ElectricalLosses", "WakeLosses"})
		require.NoError(t, err)
		assert.Contains(t, set, Requirement{Category: CategoryMeter, Field: "energy"})
		assert.Contains(t, set, Requirement{Category: CategoryAsset, Field: "longitude"})
	})

	t.Run("unknown type fails", func(t *testing.T) {
		_, err := RequirementsFor([]string{"NotAnAnalysis"})
		require.Error(t, err)

		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "NotAnAnalysis", cfgErr.Field)
	})
}

func TestAnalysisTypes(t *testing.T) {
	names := AnalysisTypes()
	assert.Contains(t, names, "MonteCarloAEP")
	assert.Contains(t, names, "WakeLosses")
	assert.NotContains(t, names, AnalysisAll)
	assert.IsIncreasing(t, names)
}
