// Command genmock generates a synthetic but realistic wind plant data
// delivery: SCADA, meter, curtailment, and asset CSVs with vendor-style
// column names, plus the metadata document that maps them onto the canonical
// schema. The fixtures exercise the full pipeline in tests and demos without
// shipping real plant data.
//
// Usage:
//
//	go run ./cmd/genmock -out testdata/mockplant -turbines 4 -rows 144
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// baseTime anchors all generated timestamps; fixed so fixtures are
// reproducible.
var baseTime = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

const scadaFreq = 10 * time.Minute

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", "", "output directory for generated fixtures")
	turbines := flag.Int("turbines", 4, "number of turbines")
	rows := flag.Int("rows", 144, "SCADA rows per turbine")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(*seed))

	if err := writeScada(filepath.Join(*outDir, "scada.csv"), rng, *turbines, *rows); err != nil {
		return fmt.Errorf("scada: %w", err)
	}
	if err := writeMeter(filepath.Join(*outDir, "meter.csv"), rng, *rows); err != nil {
		return fmt.Errorf("meter: %w", err)
	}
	if err := writeCurtail(filepath.Join(*outDir, "curtail.csv"), rng, *rows); err != nil {
		return fmt.Errorf("curtail: %w", err)
	}
	if err := writeAsset(filepath.Join(*outDir, "asset.csv"), rng, *turbines); err != nil {
		return fmt.Errorf("asset: %w", err)
	}
	if err := writeMetadata(filepath.Join(*outDir, "plant_meta.yml")); err != nil {
		return fmt.Errorf("metadata: %w", err)
	}

	log.Printf("wrote fixtures for %d turbines x %d rows to %s", *turbines, *rows, *outDir)
	return nil
}

func writeScada(path string, rng *rand.Rand, turbines, rows int) error {
	records := [][]string{{"Date_time", "Wind_turbine_name", "P_avg", "Ws_avg", "Wd_avg", "Ba_avg", "Ot_avg"}}
	for t := 0; t < turbines; t++ {
		name := turbineName(t)
		for i := 0; i < rows; i++ {
			ts := baseTime.Add(time.Duration(i) * scadaFreq)
			ws := 4 + rng.Float64()*12
			records = append(records, []string{
				ts.Format("2006-01-02 15:04:05"),
				name,
				strconv.FormatFloat(powerFromWind(ws), 'f', 1, 64),
				strconv.FormatFloat(ws, 'f', 2, 64),
				strconv.FormatFloat(rng.Float64()*360, 'f', 1, 64),
				strconv.FormatFloat(rng.Float64()*4-2, 'f', 2, 64),
				strconv.FormatFloat(5+rng.Float64()*15, 'f', 1, 64),
			})
		}
	}
	return writeCSV(path, records)
}

func writeMeter(path string, rng *rand.Rand, rows int) error {
	records := [][]string{{"Date_time", "net_power", "net_energy"}}
	for i := 0; i < rows; i++ {
		ts := baseTime.Add(time.Duration(i) * scadaFreq)
		power := 3000 + rng.Float64()*5000
		records = append(records, []string{
			ts.Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(power, 'f', 1, 64),
			strconv.FormatFloat(power/6, 'f', 1, 64),
		})
	}
	return writeCSV(path, records)
}

func writeCurtail(path string, rng *rand.Rand, rows int) error {
	records := [][]string{{"Date_time", "Curtailment", "Availability"}}
	for i := 0; i < rows; i++ {
		ts := baseTime.Add(time.Duration(i) * scadaFreq)
		records = append(records, []string{
			ts.Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(rng.Float64()*50, 'f', 1, 64),
			strconv.FormatFloat(rng.Float64()*20, 'f', 1, 64),
		})
	}
	return writeCSV(path, records)
}

func writeAsset(path string, rng *rand.Rand, turbines int) error {
	records := [][]string{{"Turbine", "Latitude", "Longitude", "Rated_power", "Hub_height", "Rotor_diameter"}}
	for t := 0; t < turbines; t++ {
		records = append(records, []string{
			turbineName(t),
			strconv.FormatFloat(48.45+rng.Float64()*0.02, 'f', 5, 64),
			strconv.FormatFloat(5.58+rng.Float64()*0.02, 'f', 5, 64),
			"2050",
			"80",
			"92.5",
		})
	}
	return writeCSV(path, records)
}

// writeMetadata emits the document mapping the generated vendor column names
// onto the canonical schema.
func writeMetadata(path string) error {
	doc := `scada:
  time: Date_time
  id: Wind_turbine_name
  power: P_avg
  windspeed: Ws_avg
  wind_direction: Wd_avg
  pitch: Ba_avg
  temperature: Ot_avg
  freq: 10min
meter:
  time: Date_time
  power: net_power
  energy: net_energy
  freq: 10min
curtail:
  time: Date_time
  curtailment: Curtailment
  availability: Availability
  freq: 10min
asset:
  id: Turbine
  latitude: Latitude
  longitude: Longitude
  rated_power: Rated_power
  hub_height: Hub_height
  rotor_diameter: Rotor_diameter
latitude: 48.452
longitude: 5.588
`
	return os.WriteFile(path, []byte(doc), 0o644)
}

// powerFromWind is a crude cubic power curve clipped at rated power, enough
// to make the fixtures look like turbine data.
func powerFromWind(ws float64) float64 {
	p := 2.5 * ws * ws * ws
	if p > 2050 {
		return 2050
	}
	return p
}

func turbineName(i int) string {
	return fmt.Sprintf("R8080%d", i+1)
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
