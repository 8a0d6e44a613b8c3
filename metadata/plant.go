package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/wind-plant-data/schema"
)

// PlantMetaData aggregates one TypeMetaData per data category for a single
// wind plant, plus the plant's coordinates. Reanalysis is the only
// multi-instance category: zero or more named products, each with its own
// mapping and frequency.
type PlantMetaData struct {
	latitude  float64
	longitude float64

	scada      *TypeMetaData
	meter      *TypeMetaData
	tower      *TypeMetaData
	curtail    *TypeMetaData
	status     *TypeMetaData
	asset      *TypeMetaData
	reanalysis map[string]*TypeMetaData
}

// Document keys accepted at the top level besides the category names.
const (
	latitudeKey  = "latitude"
	longitudeKey = "longitude"
)

// FromDict builds a PlantMetaData from an already-parsed document. Every
// top-level key must be a category name or one of latitude/longitude; missing
// categories default to empty metadata. Nested construction failures
// propagate with category and field context.
func FromDict(doc map[string]any) (*PlantMetaData, error) {
	meta := &PlantMetaData{
		scada:      Empty(schema.CategoryScada),
		meter:      Empty(schema.CategoryMeter),
		tower:      Empty(schema.CategoryTower),
		curtail:    Empty(schema.CategoryCurtail),
		status:     Empty(schema.CategoryStatus),
		asset:      Empty(schema.CategoryAsset),
		reanalysis: map[string]*TypeMetaData{},
	}

	for key, value := range doc {
		switch key {
		case latitudeKey:
			v, err := toFloat(value)
			if err != nil {
				return nil, &schema.ConfigurationError{Field: key, Reason: err.Error()}
			}
			meta.latitude = v
		case longitudeKey:
			v, err := toFloat(value)
			if err != nil {
				return nil, &schema.ConfigurationError{Field: key, Reason: err.Error()}
			}
			meta.longitude = v
		case string(schema.CategoryReanalysis):
			products, err := toSection(schema.CategoryReanalysis, value)
			if err != nil {
				return nil, err
			}
			for product, section := range products {
				nested, ok := section.(map[string]any)
				if !ok {
					return nil, &schema.ConfigurationError{
						Category: schema.CategoryReanalysis,
						Field:    product,
						Reason:   fmt.Sprintf("product config must be a mapping, got %T", section),
					}
				}
				m, err := fromDocument(schema.CategoryReanalysis, nested)
				if err != nil {
					return nil, err
				}
				meta.reanalysis[product] = m
			}
		case string(schema.CategoryScada), string(schema.CategoryMeter),
			string(schema.CategoryTower), string(schema.CategoryCurtail),
			string(schema.CategoryStatus), string(schema.CategoryAsset):
			cat := schema.Category(key)
			section, err := toSection(cat, value)
			if err != nil {
				return nil, err
			}
			m, err := fromDocument(cat, section)
			if err != nil {
				return nil, err
			}
			meta.set(cat, m)
		default:
			return nil, &schema.ConfigurationError{
				Field:  key,
				Reason: "unknown top-level key in metadata document",
			}
		}
	}
	return meta, nil
}

// FromFile parses a JSON (.json) or YAML (.yaml/.yml) metadata document and
// forwards it to FromDict.
func FromFile(path string) (*PlantMetaData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata document: %w", err)
	}

	var doc map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &schema.ConfigurationError{Reason: fmt.Sprintf("malformed JSON document %s: %v", path, err)}
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &schema.ConfigurationError{Reason: fmt.Sprintf("malformed YAML document %s: %v", path, err)}
		}
	default:
		return nil, &schema.ConfigurationError{Reason: fmt.Sprintf("unsupported metadata document extension %q", ext)}
	}
	return FromDict(doc)
}

// Scada returns the SCADA category metadata.
func (p *PlantMetaData) Scada() *TypeMetaData { return p.scada }

// Meter returns the revenue meter category metadata.
func (p *PlantMetaData) Meter() *TypeMetaData { return p.meter }

// Tower returns the met tower category metadata.
func (p *PlantMetaData) Tower() *TypeMetaData { return p.tower }

// Curtail returns the curtailment category metadata.
func (p *PlantMetaData) Curtail() *TypeMetaData { return p.curtail }

// Status returns the status log category metadata.
func (p *PlantMetaData) Status() *TypeMetaData { return p.status }

// Asset returns the static asset category metadata.
func (p *PlantMetaData) Asset() *TypeMetaData { return p.asset }

// Reanalysis returns a copy of the product-name to metadata mapping.
func (p *PlantMetaData) Reanalysis() map[string]*TypeMetaData {
	out := make(map[string]*TypeMetaData, len(p.reanalysis))
	for name, m := range p.reanalysis {
		out[name] = m
	}
	return out
}

// Category returns the metadata for one single-instance category. Reanalysis
// is multi-instance; use Reanalysis instead.
func (p *PlantMetaData) Category(cat schema.Category) (*TypeMetaData, bool) {
	switch cat {
	case schema.CategoryScada:
		return p.scada, true
	case schema.CategoryMeter:
		return p.meter, true
	case schema.CategoryTower:
		return p.tower, true
	case schema.CategoryCurtail:
		return p.curtail, true
	case schema.CategoryStatus:
		return p.status, true
	case schema.CategoryAsset:
		return p.asset, true
	default:
		return nil, false
	}
}

// Coordinates returns the plant's (latitude, longitude).
func (p *PlantMetaData) Coordinates() (float64, float64) {
	return p.latitude, p.longitude
}

// ColumnMap returns every category's canonical-to-source mapping keyed by
// category name. Reanalysis products appear as "reanalysis.<product>".
func (p *PlantMetaData) ColumnMap() map[string]map[string]string {
	out := map[string]map[string]string{
		string(schema.CategoryScada):   p.scada.ColMap(),
		string(schema.CategoryMeter):   p.meter.ColMap(),
		string(schema.CategoryTower):   p.tower.ColMap(),
		string(schema.CategoryCurtail): p.curtail.ColMap(),
		string(schema.CategoryStatus):  p.status.ColMap(),
		string(schema.CategoryAsset):   p.asset.ColMap(),
	}
	for product, m := range p.reanalysis {
		out[string(schema.CategoryReanalysis)+"."+product] = m.ColMap()
	}
	return out
}

func (p *PlantMetaData) set(cat schema.Category, m *TypeMetaData) {
	switch cat {
	case schema.CategoryScada:
		p.scada = m
	case schema.CategoryMeter:
		p.meter = m
	case schema.CategoryTower:
		p.tower = m
	case schema.CategoryCurtail:
		p.curtail = m
	case schema.CategoryStatus:
		p.status = m
	case schema.CategoryAsset:
		p.asset = m
	}
}

// toSection coerces a document value into a nested mapping, accepting both
// map[string]any (JSON, yaml.v3) and map[any]any (older YAML decoders).
func toSection(cat schema.Category, value any) (map[string]any, error) {
	switch v := value.(type) {
	case map[string]any:
		return v, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			s, ok := key.(string)
			if !ok {
				return nil, &schema.ConfigurationError{
					Category: cat,
					Reason:   fmt.Sprintf("non-string key %v in category section", key),
				}
			}
			out[s] = val
		}
		return out, nil
	case nil:
		return map[string]any{}, nil
	default:
		return nil, &schema.ConfigurationError{
			Category: cat,
			Reason:   fmt.Sprintf("category section must be a mapping, got %T", value),
		}
	}
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}
