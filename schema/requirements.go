package schema

import "sort"

// Requirement names one canonical field of one category that an analysis
// method needs present and typed before it can run.
type Requirement struct {
	Category Category
	Field    string
}

// RequirementSet is the unioned set of requirements for one or more analysis
// types.
type RequirementSet map[Requirement]struct{}

// AnalysisAll is the sentinel analysis type selecting every canonical field
// of every category.
const AnalysisAll = "all"

// analysisRequirements maps each known analysis type to the (category, field)
// pairs it consumes. The identifiers are owned by the analysis modules; this
// table only records their data dependencies.
var analysisRequirements = map[string]map[Category][]string{
	"MonteCarloAEP": {
		CategoryMeter:      {FieldTime, "energy"},
		CategoryCurtail:    {FieldTime, "availability", "curtailment"},
		CategoryReanalysis: {FieldTime, "windspeed", "density"},
	},
	"TurbineLongTermGrossEnergy": {
		CategoryScada:      {FieldTime, FieldID, "windspeed", "power"},
		CategoryReanalysis: {FieldTime, "windspeed", "wind_direction", "density"},
	},
	"ElectricalLosses": {
		CategoryScada: {FieldTime, FieldID, "energy"},
		CategoryMeter: {FieldTime, "energy"},
	},
	"WakeLosses": {
		CategoryScada:      {FieldTime, FieldID, "windspeed", "wind_direction", "power"},
		CategoryAsset:      {FieldID, "latitude", "longitude"},
		CategoryReanalysis: {FieldTime, "windspeed", "wind_direction"},
	},
	"StaticYawMisalignment": {
		CategoryScada: {FieldTime, FieldID, "windspeed", "power", "pitch", "wind_direction"},
	},
}

// AnalysisTypes returns the known analysis type identifiers, sorted, excluding
// the "all" sentinel.
func AnalysisTypes() []string {
	names := make([]string, 0, len(analysisRequirements))
	for name := range analysisRequirements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RequirementsFor resolves a set of analysis type identifiers into one
// unioned RequirementSet. A nil or empty input yields an empty set, which
// callers interpret as "skip validation". The sentinel "all" selects every
// canonical field of every category. An unknown identifier is a
// ConfigurationError.
func RequirementsFor(analysisTypes []string) (RequirementSet, error) {
	set := make(RequirementSet)
	for _, name := range analysisTypes {
		if name == AnalysisAll {
			for _, cat := range Categories {
				for _, f := range Fields(cat) {
					set[Requirement{Category: cat, Field: f.Name}] = struct{}{}
				}
			}
			continue
		}

		reqs, ok := analysisRequirements[name]
		if !ok {
			return nil, &ConfigurationError{Field: name, Reason: "invalid analysis type"}
		}
		for cat, fields := range reqs {
			for _, field := range fields {
				set[Requirement{Category: cat, Field: field}] = struct{}{}
			}
		}
	}
	return set, nil
}
