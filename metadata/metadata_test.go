package metadata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wind-plant-data/schema"
)

func TestNew(t *testing.T) {
	t.Run("valid scada mapping", func(t *testing.T) {
		m, err := New(schema.CategoryScada, map[string]string{
			"time":      "Date_time",
			"id":        "Wind_turbine_name",
			"power":     "P_avg",
			"windspeed": "Ws_avg",
		}, "10min")
		require.NoError(t, err)

		assert.Equal(t, schema.CategoryScada, m.Category())
		assert.Equal(t, "10min", m.Freq())
		assert.Equal(t, map[string]string{
			"time":      "Date_time",
			"id":        "Wind_turbine_name",
			"power":     "P_avg",
			"windspeed": "Ws_avg",
		}, m.ColMap())
	})

	t.Run("unknown canonical key fails", func(t *testing.T) {
		_, err := New(schema.CategoryScada, map[string]string{"windsped": "Ws_avg"}, "")
		require.Error(t, err)

		var cfgErr *schema.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, schema.CategoryScada, cfgErr.Category)
		assert.Equal(t, "windsped", cfgErr.Field)
	})

	t.Run("field valid for another category still fails", func(t *testing.T) {
		_, err := New(schema.CategoryMeter, map[string]string{"windspeed": "Ws_avg"}, "")
		require.Error(t, err)
	})
}

func TestTypeMetaData_DerivedViews(t *testing.T) {
	m, err := New(schema.CategoryScada, map[string]string{
		"time":  "Date_time",
		"power": "P_avg",
	}, "")
	require.NoError(t, err)

	t.Run("dtypes covers mapped fields only, plus required", func(t *testing.T) {
		dtypes := m.DTypes()
		assert.Equal(t, map[string]schema.Dtype{
			"time":  schema.Datetime,
			"power": schema.Float,
		}, dtypes)
		assert.Equal(t, "datetime64[ns]", string(dtypes["time"]))
	})

	t.Run("units analogous", func(t *testing.T) {
		assert.Equal(t, map[string]string{
			"time":  "",
			"power": "kW",
		}, m.Units())
	})

	t.Run("required time appears even when unmapped", func(t *testing.T) {
		unmapped, err := New(schema.CategoryMeter, map[string]string{"energy": "net_energy"}, "")
		require.NoError(t, err)
		assert.Contains(t, unmapped.DTypes(), "time")
		assert.Contains(t, unmapped.Units(), "time")
	})

	t.Run("views are copies, not shared state", func(t *testing.T) {
		cols := m.ColMap()
		cols["power"] = "tampered"
		dtypes := m.DTypes()
		dtypes["power"] = schema.String

		fresh := m.ColMap()
		assert.Equal(t, "P_avg", fresh["power"])
		assert.Equal(t, schema.Float, m.DTypes()["power"])
	})
}

func TestEmpty(t *testing.T) {
	for _, cat := range schema.Categories {
		m := Empty(cat)
		assert.Empty(t, m.ColMap(), "category %s", cat)
		assert.Empty(t, m.Freq(), "category %s", cat)
	}
}

func TestSource(t *testing.T) {
	m, err := New(schema.CategoryAsset, map[string]string{"id": "Turbine"}, "")
	require.NoError(t, err)

	src, ok := m.Source("id")
	require.True(t, ok)
	assert.Equal(t, "Turbine", src)

	_, ok = m.Source("latitude")
	assert.False(t, ok)
}
