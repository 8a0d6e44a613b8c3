package plant

import (
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Source is one table input to PlantData: an in-memory dataframe, a path to a
// delimited-text file, or the zero value for an absent category.
type Source struct {
	frame *dataframe.DataFrame
	path  string
}

// FromFrame wraps an in-memory dataframe. The frame is copied during
// ingestion, so later caller mutation does not leak into the PlantData.
func FromFrame(df dataframe.DataFrame) Source {
	return Source{frame: &df}
}

// FromFile points at a delimited-text file to be read during ingestion.
func FromFile(path string) Source {
	return Source{path: path}
}

func (s Source) absent() bool {
	return s.frame == nil && s.path == ""
}

// load materializes the source as an exclusively-owned dataframe. File
// sources are read with type detection off: every column comes back as a
// string series and dtype coercion is the pipeline's job, not the reader's.
// Returns nil for an absent source.
func (s Source) load() (*dataframe.DataFrame, error) {
	switch {
	case s.absent():
		return nil, nil
	case s.path != "":
		f, err := os.Open(s.path)
		if err != nil {
			return nil, fmt.Errorf("open table file: %w", err)
		}
		defer f.Close()

		df := dataframe.ReadCSV(f,
			dataframe.HasHeader(true),
			dataframe.DetectTypes(false),
			dataframe.DefaultType(series.String),
		)
		if df.Err != nil {
			return nil, fmt.Errorf("read table file %s: %w", s.path, df.Err)
		}
		return &df, nil
	default:
		cp := s.frame.Copy()
		if cp.Err != nil {
			return nil, fmt.Errorf("copy table: %w", cp.Err)
		}
		return &cp, nil
	}
}

// Tables groups the per-category inputs to New. Zero-value sources mean the
// category is absent; any requirement naming an absent category fails at
// validation time.
type Tables struct {
	Scada   Source
	Meter   Source
	Tower   Source
	Curtail Source
	Status  Source
	Asset   Source

	// Reanalysis maps caller-defined product names (matched against the
	// metadata's reanalysis keys) to their tables.
	Reanalysis map[string]Source
}
