package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wind-plant-data/schema"
)

func fullDoc() map[string]any {
	return map[string]any{
		"latitude":  48.452,
		"longitude": 5.588,
		"scada": map[string]any{
			"time":  "Date_time",
			"id":    "Wind_turbine_name",
			"power": "P_avg",
			"freq":  "10min",
		},
		"meter": map[string]any{
			"time":   "time",
			"energy": "net_energy",
		},
		"asset": map[string]any{
			"id":       "Turbine",
			"latitude": "Latitude",
		},
		"reanalysis": map[string]any{
			"era5": map[string]any{
				"time":      "datetime",
				"windspeed": "ws_100m",
				"freq":      "1h",
			},
			"merra2": map[string]any{},
		},
	}
}

func TestFromDict(t *testing.T) {
	meta, err := FromDict(fullDoc())
	require.NoError(t, err)

	t.Run("coordinates", func(t *testing.T) {
		lat, lon := meta.Coordinates()
		assert.Equal(t, 48.452, lat)
		assert.Equal(t, 5.588, lon)
	})

	t.Run("configured categories", func(t *testing.T) {
		assert.Equal(t, "P_avg", meta.Scada().ColMap()["power"])
		assert.Equal(t, "10min", meta.Scada().Freq())
		assert.Equal(t, "net_energy", meta.Meter().ColMap()["energy"])
		assert.Equal(t, "Turbine", meta.Asset().ColMap()["id"])
	})

	t.Run("missing categories default to empty", func(t *testing.T) {
		assert.Empty(t, meta.Tower().ColMap())
		assert.Empty(t, meta.Tower().Freq())
		assert.Empty(t, meta.Curtail().ColMap())
		assert.Empty(t, meta.Status().ColMap())
	})

	t.Run("reanalysis products constructed independently", func(t *testing.T) {
		products := meta.Reanalysis()
		require.Len(t, products, 2)
		assert.Equal(t, "ws_100m", products["era5"].ColMap()["windspeed"])
		assert.Equal(t, "1h", products["era5"].Freq())
		assert.Empty(t, products["merra2"].ColMap())
	})

	t.Run("column map aggregate", func(t *testing.T) {
		cm := meta.ColumnMap()
		assert.Equal(t, "P_avg", cm["scada"]["power"])
		assert.Equal(t, "ws_100m", cm["reanalysis.era5"]["windspeed"])
	})
}

func TestFromDict_Errors(t *testing.T) {
	t.Run("unknown top-level key", func(t *testing.T) {
		_, err := FromDict(map[string]any{"scadaa": map[string]any{}})
		require.Error(t, err)

		var cfgErr *schema.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "scadaa", cfgErr.Field)
	})

	t.Run("nested construction failure carries context", func(t *testing.T) {
		_, err := FromDict(map[string]any{
			"meter": map[string]any{"windspeed": "ws"},
		})
		require.Error(t, err)

		var cfgErr *schema.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, schema.CategoryMeter, cfgErr.Category)
		assert.Equal(t, "windspeed", cfgErr.Field)
	})

	t.Run("non-string source column", func(t *testing.T) {
		_, err := FromDict(map[string]any{
			"scada": map[string]any{"power": 7},
		})
		require.Error(t, err)
	})

	t.Run("non-mapping category section", func(t *testing.T) {
		_, err := FromDict(map[string]any{"scada": "P_avg"})
		require.Error(t, err)
	})

	t.Run("non-mapping reanalysis product", func(t *testing.T) {
		_, err := FromDict(map[string]any{
			"reanalysis": map[string]any{"era5": "nope"},
		})
		require.Error(t, err)
	})

	t.Run("non-numeric latitude", func(t *testing.T) {
		_, err := FromDict(map[string]any{"latitude": "north"})
		require.Error(t, err)
	})
}

func TestFromFile_RoundTrip(t *testing.T) {
	jsonDoc := `{
  "latitude": 48.452,
  "longitude": 5.588,
  "scada": {"time": "Date_time", "id": "Wind_turbine_name", "power": "P_avg", "freq": "10min"},
  "meter": {"time": "time", "energy": "net_energy"},
  "asset": {"id": "Turbine", "latitude": "Latitude"},
  "reanalysis": {
    "era5": {"time": "datetime", "windspeed": "ws_100m", "freq": "1h"},
    "merra2": {}
  }
}`
	yamlDoc := `latitude: 48.452
longitude: 5.588
scada:
  time: Date_time
  id: Wind_turbine_name
  power: P_avg
  freq: 10min
meter:
  time: time
  energy: net_energy
asset:
  id: Turbine
  latitude: Latitude
reanalysis:
  era5:
    time: datetime
    windspeed: ws_100m
    freq: 1h
  merra2: {}
`

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "meta.json")
	yamlPath := filepath.Join(dir, "meta.yml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonDoc), 0o644))
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlDoc), 0o644))

	fromDict, err := FromDict(fullDoc())
	require.NoError(t, err)
	fromJSON, err := FromFile(jsonPath)
	require.NoError(t, err)
	fromYAML, err := FromFile(yamlPath)
	require.NoError(t, err)

	for _, other := range []*PlantMetaData{fromJSON, fromYAML} {
		assert.Equal(t, fromDict.ColumnMap(), other.ColumnMap())
		assert.Equal(t, fromDict.Scada().DTypes(), other.Scada().DTypes())
		assert.Equal(t, fromDict.Scada().Units(), other.Scada().Units())
		assert.Equal(t, fromDict.Meter().DTypes(), other.Meter().DTypes())

		wantRe := fromDict.Reanalysis()
		gotRe := other.Reanalysis()
		require.Len(t, gotRe, len(wantRe))
		for product, m := range wantRe {
			assert.Equal(t, m.ColMap(), gotRe[product].ColMap(), product)
			assert.Equal(t, m.DTypes(), gotRe[product].DTypes(), product)
			assert.Equal(t, m.Units(), gotRe[product].Units(), product)
		}
	}
}

func TestFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := FromFile(filepath.Join(dir, "absent.yml"))
		require.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "meta.toml")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		_, err := FromFile(path)
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yml")
		require.NoError(t, os.WriteFile(path, []byte("scada: [oops"), 0o644))
		_, err := FromFile(path)
		require.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))
		_, err := FromFile(path)
		require.Error(t, err)
	})
}
