// Package metadata holds the user-facing column mapping layer: one
// TypeMetaData per data category describing how a user's source columns map
// onto the canonical schema, aggregated into a PlantMetaData built once from
// a dict, JSON, or YAML document.
package metadata

import (
	"fmt"

	"github.com/couchcryptid/wind-plant-data/schema"
)

// TypeMetaData carries the user-supplied column mapping and sampling
// frequency for one data category. Instances are immutable after
// construction: accessors return copies, and replacing the mapping means
// replacing the instance.
type TypeMetaData struct {
	category schema.Category
	colMap   map[string]string // canonical name -> source column name
	freq     string            // free-form offset alias, "" when unset
}

// New builds a TypeMetaData for a category. Every key of colMap must be a
// canonical field name of that category; an unknown key is a
// ConfigurationError. freq is recorded as-is and not validated beyond being a
// string.
func New(cat schema.Category, colMap map[string]string, freq string) (*TypeMetaData, error) {
	m := &TypeMetaData{
		category: cat,
		colMap:   make(map[string]string, len(colMap)),
		freq:     freq,
	}
	for canonical, source := range colMap {
		if _, ok := schema.LookupField(cat, canonical); !ok {
			return nil, &schema.ConfigurationError{
				Category: cat,
				Field:    canonical,
				Reason:   "unknown canonical field",
			}
		}
		m.colMap[canonical] = source
	}
	return m, nil
}

// Empty returns the metadata for an unconfigured category: no mapped columns
// and no frequency. Validation against such a category finds nothing mapped.
func Empty(cat schema.Category) *TypeMetaData {
	m, _ := New(cat, nil, "")
	return m
}

// Category returns the data category this metadata describes.
func (m *TypeMetaData) Category() schema.Category { return m.category }

// Freq returns the user-declared sampling frequency token, or "" when unset.
func (m *TypeMetaData) Freq() string { return m.freq }

// ColMap returns a copy of the canonical-to-source column mapping.
func (m *TypeMetaData) ColMap() map[string]string {
	out := make(map[string]string, len(m.colMap))
	for k, v := range m.colMap {
		out[k] = v
	}
	return out
}

// Source returns the mapped source column for a canonical field, if any.
func (m *TypeMetaData) Source(canonical string) (string, bool) {
	s, ok := m.colMap[canonical]
	return s, ok
}

// DTypes returns the expected dtype for every mapped field plus the
// category's always-required fields. The map is recomputed on every call;
// it is a derived view, never settable state.
func (m *TypeMetaData) DTypes() map[string]schema.Dtype {
	out := make(map[string]schema.Dtype, len(m.colMap)+1)
	for _, f := range schema.Fields(m.category) {
		if _, mapped := m.colMap[f.Name]; mapped || f.Required {
			out[f.Name] = f.Dtype
		}
	}
	return out
}

// Units returns the documented unit for every mapped field plus the
// category's always-required fields. Unitless fields map to "". Units are
// advisory: the pipeline never converts values.
func (m *TypeMetaData) Units() map[string]string {
	out := make(map[string]string, len(m.colMap)+1)
	for _, f := range schema.Fields(m.category) {
		if _, mapped := m.colMap[f.Name]; mapped || f.Required {
			out[f.Name] = f.Unit
		}
	}
	return out
}

// fromDocument builds a TypeMetaData from one category's section of a
// metadata document: canonical-field keys with string source-column values,
// plus an optional "freq" entry.
func fromDocument(cat schema.Category, doc map[string]any) (*TypeMetaData, error) {
	colMap := make(map[string]string, len(doc))
	freq := ""
	for key, value := range doc {
		if key == freqKey {
			s, ok := value.(string)
			if !ok {
				return nil, &schema.ConfigurationError{
					Category: cat,
					Field:    freqKey,
					Reason:   fmt.Sprintf("expected string, got %T", value),
				}
			}
			freq = s
			continue
		}

		s, ok := value.(string)
		if !ok {
			return nil, &schema.ConfigurationError{
				Category: cat,
				Field:    key,
				Reason:   fmt.Sprintf("source column name must be a string, got %T", value),
			}
		}
		colMap[key] = s
	}
	return New(cat, colMap, freq)
}

const freqKey = "freq"
