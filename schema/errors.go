package schema

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a malformed or unrecognized metadata document:
// an unknown canonical field key, an unknown category, or an unknown analysis
// type. Configuration errors are fatal to construction and never recovered
// automatically.
type ConfigurationError struct {
	Category Category // empty when the error is not category-scoped
	Field    string   // offending key or analysis type, when relevant
	Reason   string
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if e.Category != "" {
		fmt.Fprintf(&b, " [%s]", e.Category)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " %q", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// Issue is one structured schema violation: a mapped source column missing
// from a table, a value that cannot be coerced, a required field absent at
// validation time, or an out-of-order timestamp.
type Issue struct {
	Category Category
	Product  string // reanalysis product name, when relevant
	Field    string // canonical field name
	Source   string // expected source column, when relevant
	Value    string // offending value, when relevant
	Row      int    // zero-based data row, -1 when not row-scoped
	Reason   string
}

func (i Issue) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s", i.Category)
	if i.Product != "" {
		fmt.Fprintf(&b, ".%s", i.Product)
	}
	fmt.Fprintf(&b, "] %s", i.Field)
	if i.Source != "" {
		fmt.Fprintf(&b, " (source column %q)", i.Source)
	}
	if i.Row >= 0 {
		fmt.Fprintf(&b, " row %d", i.Row)
	}
	if i.Value != "" {
		fmt.Fprintf(&b, " value %q", i.Value)
	}
	b.WriteString(": ")
	b.WriteString(i.Reason)
	return b.String()
}

// SchemaError aggregates every schema violation found during one pipeline
// transition, so the caller sees all problems at once rather than one at a
// time.
type SchemaError struct {
	Op     string // pipeline transition: "rename", "coerce", "validate"
	Issues []Issue
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "schema error during %s: %d issue(s)", e.Op, len(e.Issues))
	for _, issue := range e.Issues {
		b.WriteString("\n  ")
		b.WriteString(issue.String())
	}
	return b.String()
}

// NewIssue builds an Issue with no row context.
func NewIssue(cat Category, field, reason string) Issue {
	return Issue{Category: cat, Field: field, Row: -1, Reason: reason}
}
