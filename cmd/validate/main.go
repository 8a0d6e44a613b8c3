// Command validate runs the full plant data pipeline against a metadata
// document and a set of CSV tables, and prints a phase-by-phase report. It is
// a developer tool for checking a data delivery before handing it to analysis
// code.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -metadata plant_meta.yml \
//	  -scada scada.csv -meter meter.csv -asset asset.csv \
//	  -reanalysis era5=era5.csv -reanalysis merra2=merra2.csv \
//	  -analysis MonteCarloAEP,ElectricalLosses
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/wind-plant-data/internal/observability"
	"github.com/couchcryptid/wind-plant-data/metadata"
	"github.com/couchcryptid/wind-plant-data/plant"
	"github.com/couchcryptid/wind-plant-data/schema"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// productFlags collects repeated -reanalysis product=path flags.
type productFlags map[string]string

func (f productFlags) String() string { return fmt.Sprintf("%v", map[string]string(f)) }

func (f productFlags) Set(value string) error {
	product, path, ok := strings.Cut(value, "=")
	if !ok || product == "" || path == "" {
		return fmt.Errorf("expected product=path, got %q", value)
	}
	f[product] = path
	return nil
}

func main() {
	metaPath := flag.String("metadata", "", "path to JSON or YAML plant metadata document")
	scadaPath := flag.String("scada", "", "path to SCADA CSV")
	meterPath := flag.String("meter", "", "path to meter CSV")
	towerPath := flag.String("tower", "", "path to met tower CSV")
	curtailPath := flag.String("curtail", "", "path to curtailment CSV")
	statusPath := flag.String("status", "", "path to status log CSV")
	assetPath := flag.String("asset", "", "path to asset CSV")
	reanalysis := productFlags{}
	flag.Var(reanalysis, "reanalysis", "reanalysis table as product=path (repeatable)")
	analysis := flag.String("analysis", "", "comma-separated analysis types (or \"all\")")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	if *metaPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	tables := plant.Tables{
		Scada:      sourceFor(*scadaPath),
		Meter:      sourceFor(*meterPath),
		Tower:      sourceFor(*towerPath),
		Curtail:    sourceFor(*curtailPath),
		Status:     sourceFor(*statusPath),
		Asset:      sourceFor(*assetPath),
		Reanalysis: map[string]plant.Source{},
	}
	for product, path := range reanalysis {
		tables.Reanalysis[product] = plant.FromFile(path)
	}

	var analysisTypes []string
	if *analysis != "" {
		analysisTypes = strings.Split(*analysis, ",")
	}

	logger := observability.NewLogger(*logLevel, "text")
	if code := run(*metaPath, tables, analysisTypes, logger); code != 0 {
		os.Exit(code)
	}
}

func run(metaPath string, tables plant.Tables, analysisTypes []string, logger *slog.Logger) int {
	fmt.Println("=== Wind Plant Data Validation ===")
	fmt.Println()

	metaPhase := &phase{name: "Phase 1: Metadata Document"}
	pipelinePhase := &phase{name: "Phase 2: Rename + Dtype Coercion"}
	completePhase := &phase{name: "Phase 3: Analysis Completeness"}
	phases := []*phase{metaPhase, pipelinePhase, completePhase}

	meta, err := metadata.FromFile(metaPath)
	if err != nil {
		metaPhase.errorf("%v", err)
		return report(phases)
	}

	data, err := plant.New(meta, nil, tables, plant.WithLogger(logger))
	if err != nil {
		collectIssues(pipelinePhase, err)
		return report(phases)
	}

	if err := data.Validate(analysisTypes); err != nil {
		collectIssues(completePhase, err)
	} else {
		fmt.Printf("Tables validated against analysis types %v\n", analysisTypes)
	}
	return report(phases)
}

// collectIssues expands an aggregated SchemaError into per-issue lines;
// anything else becomes a single line.
func collectIssues(p *phase, err error) {
	var schemaErr *schema.SchemaError
	if errors.As(err, &schemaErr) {
		for _, issue := range schemaErr.Issues {
			p.errorf("%s", issue)
		}
		return
	}
	p.errorf("%v", err)
}

func report(phases []*phase) int {
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func sourceFor(path string) plant.Source {
	if path == "" {
		return plant.Source{}
	}
	return plant.FromFile(path)
}
