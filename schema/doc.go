// Package schema defines the canonical column schema for wind plant
// operational data and the error taxonomy shared by the metadata and plant
// packages.
//
// # Data Categories
//
// Operational wind plant data arrives from several loosely-coordinated
// systems, each with its own export conventions:
//
//	scada       turbine-level SCADA signals (power, wind speed, pitch, ...)
//	meter       revenue meter readings at the point of interconnection
//	tower       met tower measurements
//	curtail     plant-level curtailment and availability accounting
//	status      turbine status/event logs
//	asset       static turbine/tower attributes (coordinates, rated power, ...)
//	reanalysis  gridded reanalysis products (ERA5, MERRA-2, ...), one table
//	            per named product
//
// Every category has a fixed, ordered set of canonical fields. Users map
// their own column names onto the canonical names; downstream analysis code
// only ever sees canonical names, dtypes, and units.
//
// # Dtypes and Units
//
// Dtype strings follow the conventions of the numerical ecosystem the data
// originates from ("datetime64[ns]", "float64", "int64", "string") so that
// metadata documents round-trip unchanged between toolchains. Units are
// documentation only: the validation pipeline records the expected unit for
// each canonical field but never converts values. A "power" column is
// assumed to already be in kW.
//
// # Analysis Requirements
//
// Each downstream analysis method declares the (category, field) pairs it
// needs. [RequirementsFor] resolves a set of analysis type identifiers into
// one unioned requirement set; the sentinel "all" selects every field of
// every category, and an empty input selects nothing (validation is skipped).
package schema
