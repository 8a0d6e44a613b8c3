// Package plant owns the tabular datasets of one wind plant and the pipeline
// that validates and normalizes them against the canonical schema.
//
// # Pipeline
//
// A PlantData is constructed from raw tables (dataframes or file paths), a
// PlantMetaData, and a set of requested analysis types. Construction walks a
// fixed sequence of transitions:
//
//	UNVALIDATED → RENAMED → TYPED → COMPLETE
//
// RENAMED applies each category's col_map, renaming every mapped source
// column to its canonical name. Unmapped source columns pass through
// untouched; a mapped source column missing from the table is a SchemaError.
//
// TYPED coerces every canonical column present to its FieldSpec dtype.
// Timestamps are parsed and normalized to RFC 3339; floats and ints are
// parsed strictly. A value that cannot be coerced is a SchemaError carrying
// the offending value and row, never silently nulled. Units are not
// converted: the expected unit is documentation, and input data is assumed
// to already honor it.
//
// COMPLETE checks that every (category, field) pair required by the
// requested analysis types exists post-rename, and that time-indexed tables
// are monotonically non-decreasing in time per logical group (per turbine or
// tower id where the category has one). All misses aggregate into a single
// SchemaError so the caller sees every problem at once.
//
// Validate may be re-invoked at any time against a different analysis type
// set; it re-runs only the COMPLETE check and is idempotent.
//
// # Ownership
//
// Tables are exclusively owned by the PlantData after construction:
// in-memory inputs are copied on ingest, so later caller mutation of the
// source frames cannot corrupt validated state. The pipeline itself is
// single-threaded and synchronous; there is no internal locking and no
// support for concurrent writers.
package plant
