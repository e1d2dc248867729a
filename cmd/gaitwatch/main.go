// Command gaitwatch runs one monitoring session: it ingests triaxial
// accelerometer samples from a serial rig or a recorded trace, classifies
// freezing-of-gait online, estimates resting tremor on a periodic cadence,
// persists results to sqlite, publishes freeze transitions over MQTT, and
// serves the monitoring API.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/stridesense/gaitwatch/internal/api"
	"github.com/stridesense/gaitwatch/internal/config"
	"github.com/stridesense/gaitwatch/internal/monitoring"
	"github.com/stridesense/gaitwatch/internal/motion"
	"github.com/stridesense/gaitwatch/internal/notify"
	"github.com/stridesense/gaitwatch/internal/reporter"
	"github.com/stridesense/gaitwatch/internal/source"
	"github.com/stridesense/gaitwatch/internal/store"
	"github.com/stridesense/gaitwatch/internal/timeutil"
)

var (
	listen         = flag.String("listen", ":8080", "API listen address")
	dbFile         = flag.String("db", "gaitwatch.db", "sqlite database path")
	configPath     = flag.String("config", "", "tuning config JSON (optional)")
	replayPath     = flag.String("replay", "", "replay a recorded trace instead of reading the serial port")
	replayInterval = flag.Duration("replay-interval", 0, "pacing between replayed samples (0 = as fast as possible)")
	serialPort     = flag.String("port", "/dev/ttyACM0", "serial port (ignored with -replay)")
	serialBaud     = flag.Int("baud", 115200, "serial baud rate")
	mqttBroker     = flag.String("mqtt-broker", "", "MQTT broker URL for intervention events (empty = disabled)")
	mqttTopic      = flag.String("mqtt-topic", "gaitwatch/freeze", "MQTT topic for intervention events")
	verbose        = flag.Bool("verbose", false, "enable debug logging")
)

func main() {
	flag.Parse()
	monitoring.SetVerbose(*verbose)

	tuning := &config.TuningConfig{}
	if *configPath != "" {
		var err error
		tuning, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load tuning config: %v", err)
		}
	}

	db, err := store.Open(*dbFile)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var publisher reporter.EventPublisher
	if *mqttBroker != "" {
		pub, err := notify.NewPublisher(*mqttBroker, "gaitwatch-monitor", *mqttTopic)
		if err != nil {
			log.Fatalf("failed to connect intervention publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	clock := timeutil.RealClock{}
	episodes := reporter.NewEpisodes(db, publisher, clock)

	detector, err := motion.NewDetector(tuning.Motion(), episodes.Callbacks())
	if err != nil {
		log.Fatalf("failed to build detector: %v", err)
	}

	var sampleSource source.Source
	if *replayPath != "" {
		sampleSource = &source.ReplaySource{Path: *replayPath, Interval: *replayInterval}
		monitoring.Logf("replaying trace %s", *replayPath)
	} else {
		sampleSource = &source.SerialSource{PortName: *serialPort, BaudRate: *serialBaud}
		monitoring.Logf("reading samples from %s", *serialPort)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		episodes.Run(ctx)
	}()

	burst := &reporter.Burst{
		Detector: detector,
		Store:    db,
		Clock:    clock,
		Interval: tuning.GetBurstInterval(),
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		burst.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		err := sampleSource.Run(ctx, func(s motion.Sample) {
			detector.OnSample(s.X, s.Y, s.Z, s.TimestampMillis)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			monitoring.Logf("sample source stopped: %v", err)
		}
		// A finished replay leaves the API up for inspection until
		// interrupted.
	}()

	server := api.NewServer(detector, db, tuning.GetBurstInterval())
	httpServer := &http.Server{
		Addr:    *listen,
		Handler: api.LoggingMiddleware(server.ServeMux()),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		monitoring.Logf("API listening on %s", *listen)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("API server failed: %v", err)
		}
	}()

	<-ctx.Done()
	monitoring.Logf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("API shutdown: %v", err)
	}

	wg.Wait()
}
