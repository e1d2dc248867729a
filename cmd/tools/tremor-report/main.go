// Command tremor-report renders an HTML trend chart of stored tremor
// readings for clinical review.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/stridesense/gaitwatch/internal/store"
)

var (
	dbFile = flag.String("db", "gaitwatch.db", "sqlite database path")
	output = flag.String("o", "tremor-report.html", "output HTML path")
	limit  = flag.Int("limit", 1000, "maximum readings to include")
)

func main() {
	flag.Parse()

	db, err := store.Open(*dbFile)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	rows, err := db.RecentTremorReadings(*limit)
	if err != nil {
		log.Fatalf("failed to query tremor readings: %v", err)
	}
	if len(rows) == 0 {
		log.Fatal("no tremor readings stored yet")
	}

	// Rows come newest-first; plot oldest-first.
	labels := make([]string, 0, len(rows))
	magnitudes := make([]opts.LineData, 0, len(rows))
	frequencies := make([]opts.LineData, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		labels = append(labels, time.UnixMilli(r.TimestampMillis).Format("15:04:05"))
		magnitudes = append(magnitudes, opts.LineData{Value: r.Magnitude})
		frequencies = append(frequencies, opts.LineData{Value: r.Frequency})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Tremor Trend", Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Resting Tremor Trend", Subtitle: "magnitude (0-10) and dominant frequency (Hz)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(labels).
		AddSeries("magnitude", magnitudes).
		AddSeries("frequency", frequencies)

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("failed to create output: %v", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		log.Fatalf("failed to render chart: %v", err)
	}
	log.Printf("✓ Created: %s (%d readings)", *output, len(rows))
}
