package reporter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridesense/gaitwatch/internal/motion"
	"github.com/stridesense/gaitwatch/internal/timeutil"
)

type fakeTremorStore struct {
	mu       sync.Mutex
	err      error
	readings []motion.TremorReading
}

func (s *fakeTremorStore) RecordTremorReading(r motion.TremorReading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.readings = append(s.readings, r)
	return nil
}

func (s *fakeTremorStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.readings)
}

func warmDetector(t *testing.T) *motion.Detector {
	t.Helper()
	d, err := motion.NewDetector(motion.DefaultConfig(), motion.Callbacks{})
	require.NoError(t, err)
	for i := 0; i < 400; i++ {
		d.OnSample(0, 0, 9.81, int64(i*20))
	}
	return d
}

func TestBurstRecordsReadingPerTick(t *testing.T) {
	t.Parallel()

	store := &fakeTremorStore{}
	clock := timeutil.NewMockClock(time.Now())
	b := &Burst{
		Detector: warmDetector(t),
		Store:    store,
		Clock:    clock,
		Interval: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Run(ctx)
	}()

	// Run registers its ticker asynchronously, so keep advancing until two
	// readings have landed.
	require.Eventually(t, func() bool {
		clock.Advance(10 * time.Second)
		return store.count() >= 2
	}, time.Second, time.Millisecond)

	cancel()
	<-done

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, motion.ActivitySedentary, store.readings[0].Status)
	assert.Zero(t, store.readings[0].Magnitude, "still subject records no tremor")
}

func TestBurstSkipsWhileWarmingUp(t *testing.T) {
	t.Parallel()

	d, err := motion.NewDetector(motion.DefaultConfig(), motion.Callbacks{})
	require.NoError(t, err)

	store := &fakeTremorStore{}
	b := &Burst{Detector: d, Store: store, Clock: timeutil.RealClock{}, Interval: time.Minute}

	// Cold detector: analysis reports insufficient data, nothing is stored.
	b.analyzeOnce()
	assert.Zero(t, store.count())
}

func TestBurstSurvivesStoreFailure(t *testing.T) {
	t.Parallel()

	store := &fakeTremorStore{err: assert.AnError}
	b := &Burst{Detector: warmDetector(t), Store: store, Clock: timeutil.RealClock{}, Interval: time.Minute}

	b.analyzeOnce()
	assert.Zero(t, store.count())

	// Next attempt after the store recovers succeeds.
	store.mu.Lock()
	store.err = nil
	store.mu.Unlock()
	b.analyzeOnce()
	assert.Equal(t, 1, store.count())
}
