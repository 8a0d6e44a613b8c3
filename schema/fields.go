package schema

// Category identifies one of the seven kinds of wind plant data.
type Category string

const (
	CategoryScada      Category = "scada"
	CategoryMeter      Category = "meter"
	CategoryTower      Category = "tower"
	CategoryCurtail    Category = "curtail"
	CategoryStatus     Category = "status"
	CategoryAsset      Category = "asset"
	CategoryReanalysis Category = "reanalysis"
)

// Categories lists every category in document order.
var Categories = []Category{
	CategoryScada,
	CategoryMeter,
	CategoryTower,
	CategoryCurtail,
	CategoryStatus,
	CategoryAsset,
	CategoryReanalysis,
}

// Dtype is the expected datatype of a canonical column. The string values
// follow the external metadata-document convention rather than Go type names
// so documents round-trip between toolchains unchanged.
type Dtype string

const (
	Datetime Dtype = "datetime64[ns]"
	Float    Dtype = "float64"
	Int      Dtype = "int64"
	String   Dtype = "string"
)

// FieldSpec is the reference definition of one canonical column: its fixed
// internal name, expected dtype, and documented unit. Unit is empty for
// unitless fields. Required fields always appear in a category's derived
// dtype/unit views even when the user has not mapped them.
type FieldSpec struct {
	Name     string
	Dtype    Dtype
	Unit     string
	Required bool
}

// Per-category canonical field registries. These are reference data: fixed at
// compile time, identical for every metadata instance, and never mutated.
var (
	scadaFields = []FieldSpec{
		{Name: FieldTime, Dtype: Datetime, Required: true},
		{Name: FieldID, Dtype: String},
		{Name: "power", Dtype: Float, Unit: "kW"},
		{Name: "windspeed", Dtype: Float, Unit: "m/s"},
		{Name: "wind_direction", Dtype: Float, Unit: "deg"},
		{Name: "status", Dtype: String},
		{Name: "pitch", Dtype: Float, Unit: "deg"},
		{Name: "temperature", Dtype: Float, Unit: "C"},
		{Name: "energy", Dtype: Float, Unit: "kWh"},
	}

	meterFields = []FieldSpec{
		{Name: FieldTime, Dtype: Datetime, Required: true},
		{Name: "power", Dtype: Float, Unit: "kW"},
		{Name: "energy", Dtype: Float, Unit: "kWh"},
	}

	towerFields = []FieldSpec{
		{Name: FieldTime, Dtype: Datetime, Required: true},
		{Name: FieldID, Dtype: String},
	}

	curtailFields = []FieldSpec{
		{Name: FieldTime, Dtype: Datetime, Required: true},
		{Name: "curtailment", Dtype: Float, Unit: "kWh"},
		{Name: "availability", Dtype: Float, Unit: "kWh"},
		{Name: "net_energy", Dtype: Float, Unit: "kWh"},
	}

	statusFields = []FieldSpec{
		{Name: FieldTime, Dtype: Datetime, Required: true},
		{Name: FieldID, Dtype: String},
		{Name: "status_id", Dtype: Int},
		{Name: "status_code", Dtype: Int},
		{Name: "status_text", Dtype: String},
	}

	assetFields = []FieldSpec{
		{Name: FieldID, Dtype: String, Required: true},
		{Name: "latitude", Dtype: Float, Unit: "deg"},
		{Name: "longitude", Dtype: Float, Unit: "deg"},
		{Name: "rated_power", Dtype: Float, Unit: "kW"},
		{Name: "hub_height", Dtype: Float, Unit: "m"},
		{Name: "rotor_diameter", Dtype: Float, Unit: "m"},
		{Name: "elevation", Dtype: Float, Unit: "m"},
		{Name: "type", Dtype: String},
	}

	reanalysisFields = []FieldSpec{
		{Name: FieldTime, Dtype: Datetime, Required: true},
		{Name: "windspeed", Dtype: Float, Unit: "m/s"},
		{Name: "windspeed_u", Dtype: Float, Unit: "m/s"},
		{Name: "windspeed_v", Dtype: Float, Unit: "m/s"},
		{Name: "wind_direction", Dtype: Float, Unit: "deg"},
		{Name: "temperature", Dtype: Float, Unit: "K"},
		{Name: "density", Dtype: Float, Unit: "kg/m^3"},
		{Name: "surface_pressure", Dtype: Float, Unit: "Pa"},
	}

	fieldsByCategory = map[Category][]FieldSpec{
		CategoryScada:      scadaFields,
		CategoryMeter:      meterFields,
		CategoryTower:      towerFields,
		CategoryCurtail:    curtailFields,
		CategoryStatus:     statusFields,
		CategoryAsset:      assetFields,
		CategoryReanalysis: reanalysisFields,
	}
)

// Canonical names shared across categories.
const (
	FieldTime = "time"
	FieldID   = "id"
)

// Fields returns the ordered canonical field specs for a category. The
// returned slice is shared reference data and must not be modified. Panics on
// an unknown category: the category set is closed, so a miss is a programming
// error, not user input.
func Fields(cat Category) []FieldSpec {
	specs, ok := fieldsByCategory[cat]
	if !ok {
		panic("schema: unknown category " + string(cat))
	}
	return specs
}

// LookupField finds a category's canonical field spec by name.
func LookupField(cat Category, name string) (FieldSpec, bool) {
	for _, f := range Fields(cat) {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// ValidCategory reports whether s names a known category.
func ValidCategory(s string) bool {
	_, ok := fieldsByCategory[Category(s)]
	return ok
}

// TimeIndexed reports whether a category's tables carry a time column.
// Asset is the only static category.
func TimeIndexed(cat Category) bool {
	return cat != CategoryAsset
}

// GroupedByID reports whether a category's time ordering is checked per
// logical unit (turbine or tower id) rather than over the whole table.
func GroupedByID(cat Category) bool {
	switch cat {
	case CategoryScada, CategoryStatus, CategoryTower:
		return true
	default:
		return false
	}
}
