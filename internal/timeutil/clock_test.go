package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClockAdvanceFiresTicker(t *testing.T) {
	t.Parallel()

	clock := NewMockClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	ticker := clock.NewTicker(10 * time.Second)
	defer ticker.Stop()

	select {
	case <-ticker.C():
		t.Fatal("ticker fired before its period elapsed")
	default:
	}

	clock.Advance(10 * time.Second)
	select {
	case tick := <-ticker.C():
		assert.Equal(t, clock.Now(), tick)
	default:
		t.Fatal("ticker did not fire after advancing past its period")
	}
}

func TestMockClockStoppedTickerDoesNotFire(t *testing.T) {
	t.Parallel()

	clock := NewMockClock(time.Now())
	ticker := clock.NewTicker(time.Second)
	ticker.Stop()

	clock.Advance(5 * time.Second)
	select {
	case <-ticker.C():
		t.Fatal("stopped ticker fired")
	default:
	}
}

func TestMockClockSince(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)
	clock.Advance(90 * time.Second)

	require.Equal(t, 90*time.Second, clock.Since(start))
}

func TestRealClockTicker(t *testing.T) {
	t.Parallel()

	ticker := RealClock{}.NewTicker(time.Millisecond)
	defer ticker.Stop()

	select {
	case <-ticker.C():
	case <-time.After(time.Second):
		t.Fatal("real ticker did not deliver a tick")
	}
}
