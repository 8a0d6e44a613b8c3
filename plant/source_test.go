package plant

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Load(t *testing.T) {
	t.Run("absent source loads nil", func(t *testing.T) {
		df, err := Source{}.load()
		require.NoError(t, err)
		assert.Nil(t, df)
	})

	t.Run("file source reads untyped columns", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scada.csv")
		csv := "Date_time,P_avg\n2024-03-01 00:00:00,1500.5\n2024-03-01 00:10:00,1480.2\n"
		require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

		df, err := FromFile(path).load()
		require.NoError(t, err)
		require.NotNil(t, df)
		assert.Equal(t, []string{"Date_time", "P_avg"}, df.Names())
		assert.Equal(t, 2, df.Nrow())
		// Type detection is off; coercion happens in the pipeline.
		assert.Equal(t, series.String, df.Col("P_avg").Type())
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := FromFile(filepath.Join(t.TempDir(), "absent.csv")).load()
		require.Error(t, err)
	})

	t.Run("frame source is copied", func(t *testing.T) {
		df := stringFrame([][]string{
			{"a", "b"},
			{"1", "2"},
		})
		loaded, err := FromFrame(df).load()
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, df.Names(), loaded.Names())
	})
}

func TestNew_FromFiles(t *testing.T) {
	dir := t.TempDir()
	scadaPath := filepath.Join(dir, "scada.csv")
	csv := "Date_time,P_avg\n2024-03-01 00:00:00,1500.5\n"
	require.NoError(t, os.WriteFile(scadaPath, []byte(csv), 0o644))

	meta := scadaMeta(t, map[string]string{"time": "Date_time", "power": "P_avg"})
	data, err := New(meta, nil, Tables{Scada: FromFile(scadaPath)})
	require.NoError(t, err)
	assert.Equal(t, []string{"time", "power"}, data.Scada().Names())
}
