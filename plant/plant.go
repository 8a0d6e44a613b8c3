package plant

import (
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/couchcryptid/wind-plant-data/internal/observability"
	"github.com/couchcryptid/wind-plant-data/metadata"
	"github.com/couchcryptid/wind-plant-data/schema"
)

// State is the position of a PlantData in the validation pipeline.
type State int

const (
	StateUnvalidated State = iota
	StateRenamed
	StateTyped
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnvalidated:
		return "unvalidated"
	case StateRenamed:
		return "renamed"
	case StateTyped:
		return "typed"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PlantData holds the validated tabular datasets of one wind plant. It is
// the object downstream analysis code consumes: after construction every
// mapped column carries its canonical name and dtype.
type PlantData struct {
	meta          *metadata.PlantMetaData
	frames        map[schema.Category]*dataframe.DataFrame
	reanalysis    map[string]*dataframe.DataFrame
	analysisTypes []string
	state         State
	validatedAt   time.Time

	logger  *slog.Logger
	metrics *observability.Metrics
}

// Option configures optional PlantData collaborators.
type Option func(*PlantData)

// WithLogger attaches a structured logger to the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *PlantData) { p.logger = logger }
}

// WithMetrics attaches Prometheus pipeline metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *PlantData) { p.metrics = m }
}

// New ingests the given tables, runs the rename and dtype-coercion
// transitions, and validates completeness against the requested analysis
// types. A nil or empty analysisTypes skips the completeness check. Any
// transition failure aborts construction: an unknown analysis type is a
// ConfigurationError, everything else a SchemaError aggregating every issue
// found in the failing transition.
func New(meta *metadata.PlantMetaData, analysisTypes []string, tables Tables, opts ...Option) (*PlantData, error) {
	p := &PlantData{
		meta:          meta,
		frames:        make(map[schema.Category]*dataframe.DataFrame),
		reanalysis:    make(map[string]*dataframe.DataFrame),
		analysisTypes: append([]string(nil), analysisTypes...),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}

	// Resolve requirements up front so a bad analysis type fails before any
	// table is loaded.
	if _, err := schema.RequirementsFor(p.analysisTypes); err != nil {
		return nil, err
	}

	if err := p.ingest(tables); err != nil {
		return nil, err
	}
	if err := p.rename(); err != nil {
		p.state = StateFailed
		return nil, err
	}
	p.state = StateRenamed

	if err := p.coerce(); err != nil {
		p.state = StateFailed
		return nil, err
	}
	p.state = StateTyped

	if err := p.Validate(p.analysisTypes); err != nil {
		return nil, err
	}
	return p, nil
}

// ingest loads every present source into an exclusively-owned frame.
func (p *PlantData) ingest(tables Tables) error {
	single := []struct {
		cat schema.Category
		src Source
	}{
		{schema.CategoryScada, tables.Scada},
		{schema.CategoryMeter, tables.Meter},
		{schema.CategoryTower, tables.Tower},
		{schema.CategoryCurtail, tables.Curtail},
		{schema.CategoryStatus, tables.Status},
		{schema.CategoryAsset, tables.Asset},
	}

	for _, in := range single {
		df, err := in.src.load()
		if err != nil {
			return err
		}
		if df == nil {
			continue
		}
		p.frames[in.cat] = df
		p.countTableLoaded()
		p.logger.Debug("table loaded", "category", in.cat, "rows", df.Nrow(), "cols", df.Ncol())
	}

	for product, src := range tables.Reanalysis {
		df, err := src.load()
		if err != nil {
			return err
		}
		if df == nil {
			continue
		}
		p.reanalysis[product] = df
		p.countTableLoaded()
		p.logger.Debug("table loaded", "category", schema.CategoryReanalysis,
			"product", product, "rows", df.Nrow(), "cols", df.Ncol())
	}
	return nil
}

// Validate re-runs the completeness check against a possibly different set of
// analysis types. Rename and coercion are not redone; calling Validate twice
// with the same input produces the same result. A nil or empty input is
// trivially complete.
func (p *PlantData) Validate(analysisTypes []string) error {
	reqs, err := schema.RequirementsFor(analysisTypes)
	if err != nil {
		return err
	}

	start := time.Now()
	p.countValidationRun()

	var issues []schema.Issue
	if len(reqs) > 0 {
		issues = p.completenessIssues(reqs)
		issues = append(issues, p.orderingIssues(reqs)...)
	}
	p.observeValidationDuration(time.Since(start))

	if len(issues) > 0 {
		sortIssues(issues)
		p.state = StateFailed
		p.countValidationFailure()
		p.logger.Warn("validation failed", "analysis_types", analysisTypes, "issues", len(issues))
		return &schema.SchemaError{Op: "validate", Issues: issues}
	}

	p.state = StateComplete
	p.validatedAt = clock.Now()
	p.logger.Info("validation complete", "analysis_types", analysisTypes)
	return nil
}

// completenessIssues confirms each required (category, field) exists
// post-rename, collecting every miss.
func (p *PlantData) completenessIssues(reqs schema.RequirementSet) []schema.Issue {
	var issues []schema.Issue
	for req := range reqs {
		if req.Category == schema.CategoryReanalysis {
			if len(p.reanalysis) == 0 {
				issues = append(issues, schema.NewIssue(req.Category, req.Field, "no reanalysis tables present"))
				continue
			}
			for product, df := range p.reanalysis {
				if !hasColumn(df, req.Field) {
					issue := schema.NewIssue(req.Category, req.Field, "required column missing")
					issue.Product = product
					issues = append(issues, issue)
				}
			}
			continue
		}

		df, ok := p.frames[req.Category]
		if !ok {
			issues = append(issues, schema.NewIssue(req.Category, req.Field, "table absent"))
			continue
		}
		if !hasColumn(df, req.Field) {
			issues = append(issues, schema.NewIssue(req.Category, req.Field, "required column missing"))
		}
	}
	return issues
}

// orderingIssues verifies that every time-indexed table named by the
// requirement set is monotonically non-decreasing in time, per id group where
// the category has one.
func (p *PlantData) orderingIssues(reqs schema.RequirementSet) []schema.Issue {
	categories := map[schema.Category]bool{}
	for req := range reqs {
		categories[req.Category] = true
	}

	var issues []schema.Issue
	for _, cat := range schema.Categories {
		if !categories[cat] || !schema.TimeIndexed(cat) {
			continue
		}
		if cat == schema.CategoryReanalysis {
			products := make([]string, 0, len(p.reanalysis))
			for product := range p.reanalysis {
				products = append(products, product)
			}
			sort.Strings(products)
			for _, product := range products {
				issues = append(issues, frameOrderingIssues(cat, product, p.reanalysis[product])...)
			}
			continue
		}
		if df, ok := p.frames[cat]; ok {
			issues = append(issues, frameOrderingIssues(cat, "", df)...)
		}
	}
	return issues
}

// Metadata returns the plant metadata this data was validated against.
func (p *PlantData) Metadata() *metadata.PlantMetaData { return p.meta }

// State returns the pipeline state.
func (p *PlantData) State() State { return p.state }

// ValidatedAt returns the time of the last successful validation, zero when
// validation has never succeeded.
func (p *PlantData) ValidatedAt() time.Time { return p.validatedAt }

// AnalysisTypes returns the analysis types requested at construction.
func (p *PlantData) AnalysisTypes() []string {
	return append([]string(nil), p.analysisTypes...)
}

// Scada returns the SCADA table, nil when absent.
func (p *PlantData) Scada() *dataframe.DataFrame { return p.frames[schema.CategoryScada] }

// Meter returns the revenue meter table, nil when absent.
func (p *PlantData) Meter() *dataframe.DataFrame { return p.frames[schema.CategoryMeter] }

// Tower returns the met tower table, nil when absent.
func (p *PlantData) Tower() *dataframe.DataFrame { return p.frames[schema.CategoryTower] }

// Curtail returns the curtailment table, nil when absent.
func (p *PlantData) Curtail() *dataframe.DataFrame { return p.frames[schema.CategoryCurtail] }

// Status returns the status log table, nil when absent.
func (p *PlantData) Status() *dataframe.DataFrame { return p.frames[schema.CategoryStatus] }

// Asset returns the static asset table, nil when absent.
func (p *PlantData) Asset() *dataframe.DataFrame { return p.frames[schema.CategoryAsset] }

// Reanalysis returns the product-name to table mapping. The map is a copy;
// the frames are not.
func (p *PlantData) Reanalysis() map[string]*dataframe.DataFrame {
	out := make(map[string]*dataframe.DataFrame, len(p.reanalysis))
	for name, df := range p.reanalysis {
		out[name] = df
	}
	return out
}

// Table returns the frame for one single-instance category, nil when absent.
func (p *PlantData) Table(cat schema.Category) *dataframe.DataFrame {
	return p.frames[cat]
}

// Metric helpers are nil-safe: metrics are optional collaborators.

func (p *PlantData) countTableLoaded() {
	if p.metrics != nil {
		p.metrics.TablesLoaded.Inc()
	}
}

func (p *PlantData) countColumnsRenamed(n int) {
	if p.metrics != nil {
		p.metrics.ColumnsRenamed.Add(float64(n))
	}
}

func (p *PlantData) countCoercionErrors(n int) {
	if p.metrics != nil {
		p.metrics.CoercionErrors.Add(float64(n))
	}
}

func (p *PlantData) countValidationRun() {
	if p.metrics != nil {
		p.metrics.ValidationRuns.Inc()
	}
}

func (p *PlantData) countValidationFailure() {
	if p.metrics != nil {
		p.metrics.ValidationFailures.Inc()
	}
}

func (p *PlantData) observeValidationDuration(d time.Duration) {
	if p.metrics != nil {
		p.metrics.ValidationDuration.Observe(d.Seconds())
	}
}

// sortIssues orders aggregated issues for stable, readable error reports.
func sortIssues(issues []schema.Issue) {
	sort.Slice(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Product != b.Product {
			return a.Product < b.Product
		}
		if a.Field != b.Field {
			return a.Field < b.Field
		}
		return a.Row < b.Row
	})
}
