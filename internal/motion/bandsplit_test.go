package motion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandSplitterTracksSlowComponent(t *testing.T) {
	t.Parallel()

	b := newBandSplitter(0.15)

	// A constant offset is locomotor-band by definition: the estimate
	// converges to it and the residual decays toward zero.
	var loco, residual float64
	for i := 0; i < 200; i++ {
		loco, residual = b.update(2.0)
	}
	assert.InDelta(t, 2.0, loco, 1e-6)
	assert.InDelta(t, 0.0, residual, 1e-6)
}

func TestBandSplitterPassesFastComponentToResidual(t *testing.T) {
	t.Parallel()

	b := newBandSplitter(0.15)

	// A 6 Hz oscillation at 50 Hz sampling is well above the EMA corner
	// (~1.4 Hz), so most of its energy lands in the residual.
	var locoPower, residualPower float64
	n := 500
	for i := 0; i < n; i++ {
		s := math.Sin(2 * math.Pi * 6 * float64(i) / 50)
		loco, residual := b.update(s)
		locoPower += loco * loco
		residualPower += residual * residual
	}
	assert.Greater(t, residualPower, 5*locoPower)
}

func TestBandSplitterDeterministic(t *testing.T) {
	t.Parallel()

	a := newBandSplitter(0.15)
	b := newBandSplitter(0.15)

	for i := 0; i < 300; i++ {
		s := math.Sin(float64(i) * 0.7)
		la, ra := a.update(s)
		lb, rb := b.update(s)
		assert.Equal(t, la, lb)
		assert.Equal(t, ra, rb)
	}
}

func TestBandSplitterSurvivesNonFiniteInput(t *testing.T) {
	t.Parallel()

	b := newBandSplitter(0.15)
	b.update(1.0)

	loco, residual := b.update(math.NaN())
	assert.True(t, isFinite(loco))
	assert.True(t, isFinite(residual))

	loco, residual = b.update(math.Inf(1))
	assert.True(t, isFinite(loco))
	assert.True(t, isFinite(residual))

	// Filter state still finite and usable afterwards.
	loco, _ = b.update(1.0)
	assert.True(t, isFinite(loco))
}

func TestMagnitudeStageWarmupAndDetrend(t *testing.T) {
	t.Parallel()

	m := newMagnitudeStage(50, 50)

	// No verdict below the minimum sample count.
	for i := 0; i < 49; i++ {
		_, ok := m.push(0, 0, 9.81)
		assert.False(t, ok, "sample %d", i)
	}

	// From the 50th sample on, a constant input detrends to zero.
	d, ok := m.push(0, 0, 9.81)
	assert.True(t, ok)
	assert.InDelta(t, 0, d, 1e-9)
}

func TestMagnitudeStageSubstitutesCorruptSamples(t *testing.T) {
	t.Parallel()

	m := newMagnitudeStage(50, 50)
	for i := 0; i < 60; i++ {
		m.push(0, 0, 9.81)
	}

	// NaN component: previous valid magnitude is substituted, so the
	// detrended output stays finite and near zero.
	d, ok := m.push(math.NaN(), 0, 9.81)
	assert.True(t, ok)
	assert.True(t, isFinite(d))
	assert.InDelta(t, 0, d, 1e-9)

	d, ok = m.push(0, math.Inf(-1), 9.81)
	assert.True(t, ok)
	assert.True(t, isFinite(d))
}
