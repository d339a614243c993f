// Command tablegen builds calibration anchors from labeled reference shots.
//
// Input is a CSV manifest with one "concentration,imagepath" row per shot;
// multiple shots of the same concentration are averaged. Output is a JSON
// calibration table plus per-anchor spread statistics so drifting lighting
// between shots is visible.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"reagent-reader/internal/analyte"
	"reagent-reader/internal/capture"
	"reagent-reader/internal/sample"
	"reagent-reader/pkg/colorutil"
)

type shotGroup struct {
	concentration float64
	hues          []float64 // radians, for circular statistics
	sats          []float64
	vals          []float64
}

func main() {
	manifestPath := flag.String("manifest", "", "CSV manifest: concentration,imagepath per row")
	outPath := flag.String("out", "table.json", "Output path for the fitted table")
	roi := flag.Float64("roi", 0.25, "ROI fraction of each frame dimension")
	flag.Parse()

	if *manifestPath == "" {
		fmt.Println("Usage: tablegen -manifest <shots.csv> [-out table.json]")
		os.Exit(1)
	}

	groups, err := loadShots(*manifestPath, *roi)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load shots: %v\n", err)
		os.Exit(1)
	}

	table := make(analyte.Table, 0, len(groups))
	fmt.Printf("%-14s %6s %6s %6s %10s %10s\n", "Concentration", "Hue", "Sat", "Val", "HueSpread", "Shots")
	for _, g := range groups {
		anchor, hueSpread := fitAnchor(g)
		table = append(table, anchor)
		fmt.Printf("%-14.2f %6d %6d %6d %9.1f° %10d\n",
			anchor.Concentration, anchor.Color.H, anchor.Color.S, anchor.Color.V,
			hueSpread, len(g.hues))
	}

	if err := table.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Fitted table is invalid: %v\n", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode table: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	fmt.Printf("\nWrote %d anchors to %s\n", len(table), *outPath)
}

// loadShots samples the ROI of every manifest image and groups the HSV
// measurements by concentration, ascending.
func loadShots(manifestPath string, roiFraction float64) ([]*shotGroup, error) {
	f, err := os.Open(manifestPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	byConc := make(map[float64]*shotGroup)
	for i, row := range rows {
		if len(row) != 2 {
			return nil, fmt.Errorf("row %d: want concentration,imagepath", i+1)
		}
		conc, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad concentration %q", i+1, row[0])
		}

		hsv, err := sampleShot(row[1], roiFraction)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		g, ok := byConc[conc]
		if !ok {
			g = &shotGroup{concentration: conc}
			byConc[conc] = g
		}
		g.hues = append(g.hues, float64(hsv.H)*math.Pi/180)
		g.sats = append(g.sats, float64(hsv.S))
		g.vals = append(g.vals, float64(hsv.V))
	}

	groups := make([]*shotGroup, 0, len(byConc))
	for _, g := range byConc {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].concentration < groups[j].concentration
	})
	return groups, nil
}

func sampleShot(path string, roiFraction float64) (colorutil.HSV, error) {
	img, err := capture.FileSource{Path: path}.Acquire(context.Background())
	if err != nil {
		return colorutil.HSV{}, err
	}

	bounds := img.Bounds()
	roi := sample.CenterRegion(bounds.Dx(), bounds.Dy(), roiFraction)
	rgb, err := sample.ExtractRegion(img, roi)
	if err != nil {
		return colorutil.HSV{}, err
	}
	return colorutil.RGBToHSV(rgb), nil
}

// fitAnchor reduces one concentration's shots to a single anchor. Hue is
// averaged on the circle so a group straddling 0° doesn't collapse to 180°.
func fitAnchor(g *shotGroup) (analyte.Point, float64) {
	hue := stat.CircularMean(g.hues, nil) * 180 / math.Pi
	if hue < 0 {
		hue += 360
	}

	// Largest angular deviation from the mean, as a fit-quality signal.
	var spread float64
	for _, h := range g.hues {
		d := float64(colorutil.HueDistance(
			int(math.Round(h*180/math.Pi)), int(math.Round(hue))))
		spread = math.Max(spread, d)
	}

	return analyte.Point{
		Concentration: g.concentration,
		Color: colorutil.HSV{
			H: int(math.Round(hue)) % 360,
			S: int(math.Round(stat.Mean(g.sats, nil))),
			V: int(math.Round(stat.Mean(g.vals, nil))),
		},
	}, spread
}
