package reporter

import (
	"context"
	"time"

	"github.com/stridesense/gaitwatch/internal/monitoring"
	"github.com/stridesense/gaitwatch/internal/motion"
	"github.com/stridesense/gaitwatch/internal/notify"
	"github.com/stridesense/gaitwatch/internal/timeutil"
)

// EpisodeStore persists freeze episode lifecycles.
type EpisodeStore interface {
	BeginFreezeEpisode(startedMillis int64) (string, error)
	EndFreezeEpisode(episodeID string, endedMillis int64, duration time.Duration) error
}

// EventPublisher forwards transitions to the intervention coordinator.
type EventPublisher interface {
	Publish(ev notify.FreezeEvent) error
}

type episodeEvent struct {
	started  bool
	duration time.Duration
}

// Episodes bridges the detector's freeze callbacks to persistence and the
// intervention publisher. Callbacks run under the detector lock, so they
// only enqueue; Run drains the queue and does the blocking work.
type Episodes struct {
	store EpisodeStore
	pub   EventPublisher // may be nil: detection without intervention
	clock timeutil.Clock

	events chan episodeEvent

	// currentID is only touched by the Run goroutine.
	currentID string
}

// NewEpisodes builds the bridge. pub may be nil.
func NewEpisodes(store EpisodeStore, pub EventPublisher, clock timeutil.Clock) *Episodes {
	return &Episodes{
		store:  store,
		pub:    pub,
		clock:  clock,
		events: make(chan episodeEvent, 16),
	}
}

// Callbacks returns the callback set to hand to motion.NewDetector. If the
// queue is full the event is dropped with a log line; losing a notification
// must never block sample processing.
func (e *Episodes) Callbacks() motion.Callbacks {
	return motion.Callbacks{
		OnFreezeStarted: func() {
			select {
			case e.events <- episodeEvent{started: true}:
			default:
				monitoring.Logf("episodes: event queue full, dropping freeze start")
			}
		},
		OnFreezeEnded: func(d time.Duration) {
			select {
			case e.events <- episodeEvent{started: false, duration: d}:
			default:
				monitoring.Logf("episodes: event queue full, dropping freeze end")
			}
		},
	}
}

// Run processes transition events until the context is cancelled.
func (e *Episodes) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-e.events:
			e.handle(ev)
		}
	}
}

func (e *Episodes) handle(ev episodeEvent) {
	nowMillis := e.clock.Now().UnixMilli()

	if ev.started {
		id, err := e.store.BeginFreezeEpisode(nowMillis)
		if err != nil {
			monitoring.Logf("episodes: failed to record freeze start: %v", err)
			return
		}
		e.currentID = id
		monitoring.Logf("episodes: freeze started, episode %s", id)
		e.publish(notify.FreezeEvent{
			Event:           notify.EventFreezeStarted,
			EpisodeID:       id,
			TimestampMillis: nowMillis,
		})
		return
	}

	if e.currentID == "" {
		monitoring.Logf("episodes: freeze end without open episode, ignoring")
		return
	}
	id := e.currentID
	e.currentID = ""

	if err := e.store.EndFreezeEpisode(id, nowMillis, ev.duration); err != nil {
		monitoring.Logf("episodes: failed to record freeze end: %v", err)
	}
	monitoring.Logf("episodes: freeze ended after %s, episode %s", ev.duration, id)
	e.publish(notify.FreezeEvent{
		Event:           notify.EventFreezeEnded,
		EpisodeID:       id,
		TimestampMillis: nowMillis,
		DurationMillis:  ev.duration.Milliseconds(),
	})
}

func (e *Episodes) publish(ev notify.FreezeEvent) {
	if e.pub == nil {
		return
	}
	if err := e.pub.Publish(ev); err != nil {
		monitoring.Logf("episodes: failed to publish %s: %v", ev.Event, err)
	}
}
