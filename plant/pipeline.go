package plant

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/wind-plant-data/metadata"
	"github.com/couchcryptid/wind-plant-data/schema"
)

// timestampLayouts are the accepted input formats for datetime columns, tried
// in order. Coerced columns are normalized to RFC 3339, so re-coercion is a
// no-op.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
}

// rename applies every category's col_map to its table, renaming mapped
// source columns to canonical names. Unmapped columns pass through. A mapped
// source column absent from its table is collected; all misses across all
// categories aggregate into one SchemaError.
func (p *PlantData) rename() error {
	var issues []schema.Issue

	for _, cat := range schema.Categories {
		if cat == schema.CategoryReanalysis {
			continue
		}
		df, ok := p.frames[cat]
		if !ok {
			continue
		}
		m, _ := p.meta.Category(cat)
		renamed, n, catIssues := renameFrame(cat, "", df, m)
		if len(catIssues) > 0 {
			issues = append(issues, catIssues...)
			continue
		}
		p.frames[cat] = renamed
		p.countColumnsRenamed(n)
	}

	reanalysisMeta := p.meta.Reanalysis()
	for product, df := range p.reanalysis {
		m, ok := reanalysisMeta[product]
		if !ok {
			m = metadata.Empty(schema.CategoryReanalysis)
		}
		renamed, n, prodIssues := renameFrame(schema.CategoryReanalysis, product, df, m)
		if len(prodIssues) > 0 {
			issues = append(issues, prodIssues...)
			continue
		}
		p.reanalysis[product] = renamed
		p.countColumnsRenamed(n)
	}

	if len(issues) > 0 {
		sortIssues(issues)
		return &schema.SchemaError{Op: "rename", Issues: issues}
	}
	return nil
}

// renameFrame renames one table's mapped columns in canonical field order.
func renameFrame(cat schema.Category, product string, df *dataframe.DataFrame, m *metadata.TypeMetaData) (*dataframe.DataFrame, int, []schema.Issue) {
	var issues []schema.Issue
	out := *df
	renamed := 0

	for _, f := range schema.Fields(cat) {
		source, mapped := m.Source(f.Name)
		if !mapped {
			continue
		}
		if !hasColumn(&out, source) {
			issue := schema.NewIssue(cat, f.Name, "mapped source column not found in table")
			issue.Product = product
			issue.Source = source
			issues = append(issues, issue)
			continue
		}
		if source == f.Name {
			continue
		}
		out = out.Rename(f.Name, source)
		if out.Err != nil {
			issue := schema.NewIssue(cat, f.Name, out.Err.Error())
			issue.Product = product
			issue.Source = source
			issues = append(issues, issue)
			return nil, 0, issues
		}
		renamed++
	}

	if len(issues) > 0 {
		return nil, 0, issues
	}
	return &out, renamed, nil
}

// coerce converts every canonical column present in each table to its
// FieldSpec dtype. Failures are collected per value and aggregated across
// all tables into one SchemaError.
func (p *PlantData) coerce() error {
	var issues []schema.Issue

	for _, cat := range schema.Categories {
		if cat == schema.CategoryReanalysis {
			continue
		}
		df, ok := p.frames[cat]
		if !ok {
			continue
		}
		m, _ := p.meta.Category(cat)
		coerced, catIssues := coerceFrame(cat, "", df, m.DTypes())
		issues = append(issues, catIssues...)
		if coerced != nil {
			p.frames[cat] = coerced
		}
	}

	reanalysisMeta := p.meta.Reanalysis()
	for product, df := range p.reanalysis {
		m, ok := reanalysisMeta[product]
		if !ok {
			m = metadata.Empty(schema.CategoryReanalysis)
		}
		coerced, prodIssues := coerceFrame(schema.CategoryReanalysis, product, df, m.DTypes())
		issues = append(issues, prodIssues...)
		if coerced != nil {
			p.reanalysis[product] = coerced
		}
	}

	p.countCoercionErrors(len(issues))
	if len(issues) > 0 {
		sortIssues(issues)
		return &schema.SchemaError{Op: "coerce", Issues: issues}
	}
	return nil
}

// coerceFrame coerces one table's canonical columns in field order. Columns
// not present in the table (or not in the dtype view) are skipped.
func coerceFrame(cat schema.Category, product string, df *dataframe.DataFrame, dtypes map[string]schema.Dtype) (*dataframe.DataFrame, []schema.Issue) {
	var issues []schema.Issue
	out := *df

	for _, f := range schema.Fields(cat) {
		dtype, ok := dtypes[f.Name]
		if !ok || !hasColumn(&out, f.Name) {
			continue
		}

		records := out.Col(f.Name).Records()
		var coerced series.Series
		var colIssues []schema.Issue

		switch dtype {
		case schema.Datetime:
			coerced, colIssues = coerceDatetime(cat, product, f.Name, records)
		case schema.Float:
			coerced, colIssues = coerceFloat(cat, product, f.Name, records)
		case schema.Int:
			coerced, colIssues = coerceInt(cat, product, f.Name, records)
		case schema.String:
			coerced = series.New(records, series.String, f.Name)
		}

		if len(colIssues) > 0 {
			issues = append(issues, colIssues...)
			continue
		}
		out = out.Mutate(coerced)
		if out.Err != nil {
			issue := schema.NewIssue(cat, f.Name, out.Err.Error())
			issue.Product = product
			issues = append(issues, issue)
			return nil, issues
		}
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return &out, nil
}

// coerceDatetime parses every value against the accepted layouts and
// normalizes to RFC 3339. Unparsable values are hard failures, never nulled.
func coerceDatetime(cat schema.Category, product, field string, records []string) (series.Series, []schema.Issue) {
	var issues []schema.Issue
	normalized := make([]string, len(records))
	for i, rec := range records {
		t, ok := parseTimestamp(rec)
		if !ok {
			issue := schema.NewIssue(cat, field, "unparsable timestamp")
			issue.Product = product
			issue.Value = rec
			issue.Row = i
			issues = append(issues, issue)
			continue
		}
		normalized[i] = t.Format(time.RFC3339)
	}
	if len(issues) > 0 {
		return series.Series{}, issues
	}
	return series.New(normalized, series.String, field), nil
}

// coerceFloat parses every value as float64. Empty and NaN sentinels become
// NaN (missing measurement); anything else non-numeric is a hard failure.
func coerceFloat(cat schema.Category, product, field string, records []string) (series.Series, []schema.Issue) {
	var issues []schema.Issue
	values := make([]float64, len(records))
	for i, rec := range records {
		s := strings.TrimSpace(rec)
		if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "na") {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			issue := schema.NewIssue(cat, field, "non-numeric value")
			issue.Product = product
			issue.Value = rec
			issue.Row = i
			issues = append(issues, issue)
			continue
		}
		values[i] = v
	}
	if len(issues) > 0 {
		return series.Series{}, issues
	}
	return series.New(values, series.Float, field), nil
}

// coerceInt parses every value as int64. Integer columns cannot represent
// missing values, so empty strings fail too.
func coerceInt(cat schema.Category, product, field string, records []string) (series.Series, []schema.Issue) {
	var issues []schema.Issue
	values := make([]int, len(records))
	for i, rec := range records {
		s := strings.TrimSpace(rec)
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			issue := schema.NewIssue(cat, field, "non-integer value")
			issue.Product = product
			issue.Value = rec
			issue.Row = i
			issues = append(issues, issue)
			continue
		}
		values[i] = int(v)
	}
	if len(issues) > 0 {
		return series.Series{}, issues
	}
	return series.New(values, series.Int, field), nil
}

// frameOrderingIssues checks that a table's time column is monotonically
// non-decreasing, per id group when the category is grouped. Assumes the
// table has passed the TYPED transition, so timestamps are RFC 3339.
func frameOrderingIssues(cat schema.Category, product string, df *dataframe.DataFrame) []schema.Issue {
	if !hasColumn(df, schema.FieldTime) {
		return nil
	}

	times := df.Col(schema.FieldTime).Records()
	var ids []string
	if schema.GroupedByID(cat) && hasColumn(df, schema.FieldID) {
		ids = df.Col(schema.FieldID).Records()
	}

	var issues []schema.Issue
	last := map[string]time.Time{}
	for i, rec := range times {
		t, ok := parseTimestamp(rec)
		if !ok {
			continue
		}
		group := ""
		if ids != nil {
			group = ids[i]
		}
		prev, seen := last[group]
		if seen && t.Before(prev) {
			issue := schema.NewIssue(cat, schema.FieldTime, orderingReason(group))
			issue.Product = product
			issue.Value = rec
			issue.Row = i
			issues = append(issues, issue)
			continue
		}
		last[group] = t
	}
	return issues
}

func orderingReason(group string) string {
	if group == "" {
		return "time not monotonically non-decreasing"
	}
	return "time not monotonically non-decreasing for group " + strconv.Quote(group)
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func hasColumn(df *dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}
