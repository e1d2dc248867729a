// Command gen-accel generates synthetic accelerometer traces for testing
// replay. The trace walks through rest, tremor, walking and freeze phases
// so one file exercises every branch of the classifier.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const gravity = 9.81

var (
	output   = flag.String("o", "trace.csv", "output path")
	rateHz   = flag.Float64("rate", 50, "sample rate in Hz")
	phaseSec = flag.Float64("phase-seconds", 15, "duration of each phase")
	seed     = flag.Int64("seed", 1, "noise seed")
	plotPath = flag.String("plot", "", "optional PNG preview of the magnitude trace")
)

// phase describes one segment of the synthetic trace.
type phase struct {
	name      string
	freqHz    float64
	amplitude float64
}

func main() {
	flag.Parse()

	phases := []phase{
		{name: "rest"},
		{name: "tremor", freqHz: 5, amplitude: 0.9},
		{name: "walk", freqHz: 2, amplitude: 6},
		{name: "freeze", freqHz: 6, amplitude: 1.1},
		{name: "rest"},
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("failed to create output: %v", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()

	rng := rand.New(rand.NewSource(*seed))
	samplesPerPhase := int(*phaseSec * *rateHz)
	stepMillis := int64(math.Round(1000 / *rateHz))

	var ts int64
	var magnitudes []float64
	for _, ph := range phases {
		fmt.Fprintf(w, "# phase: %s\n", ph.name)
		for i := 0; i < samplesPerPhase; i++ {
			osc := ph.amplitude * math.Sin(2*math.Pi*ph.freqHz*float64(i) / *rateHz)
			noise := 0.05 * rng.NormFloat64()
			x := 0.1 * rng.NormFloat64()
			y := 0.1 * rng.NormFloat64()
			z := gravity + osc + noise
			fmt.Fprintf(w, "%.4f,%.4f,%.4f,%d\n", x, y, z, ts)
			magnitudes = append(magnitudes, math.Sqrt(x*x+y*y+z*z))
			ts += stepMillis
		}
	}
	log.Printf("✓ Created: %s (%d samples)", *output, len(magnitudes))

	if *plotPath != "" {
		if err := savePreview(magnitudes, *rateHz, *plotPath); err != nil {
			log.Fatalf("failed to save preview plot: %v", err)
		}
		log.Printf("✓ Preview: %s", *plotPath)
	}
}

func savePreview(magnitudes []float64, rateHz float64, path string) error {
	p := plot.New()
	p.Title.Text = "Synthetic acceleration magnitude"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "|a| (m/s²)"

	pts := make(plotter.XYs, len(magnitudes))
	for i, m := range magnitudes {
		pts[i] = plotter.XY{X: float64(i) / rateHz, Y: m}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)
	p.Add(line)

	return p.Save(14*vg.Inch, 4*vg.Inch, path)
}
