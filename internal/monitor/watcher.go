package monitor

import (
	"context"
	"sync"
	"time"
)

// EventType represents the kind of state change.
type EventType int

const (
	EventPowerChange EventType = iota
	EventTransportChange
	EventTrackChange
	EventActionsChange
	EventAvailabilityChange
)

// Event is one detected change between two snapshots.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  *Snapshot
	Current   *Snapshot
}

// Watcher refreshes a cache on an interval and emits events for changes.
type Watcher struct {
	cache    *Cache
	interval time.Duration
	events   chan Event
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a new watcher over cache.
func NewWatcher(cache *Cache, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Watcher{
		cache:    cache,
		interval: interval,
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
	}
}

// Events returns the channel of events. It is closed when Start returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start polls until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.events)

	// Errors are reflected in the snapshot's availability.
	_, _ = w.cache.Refresh(ctx)
	prev := w.cache.Snapshot()
	w.emit(diffSnapshots(nil, &prev))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case <-ticker.C:
			_, _ = w.cache.Refresh(ctx)
			curr := w.cache.Snapshot()
			w.emit(diffSnapshots(&prev, &curr))
			prev = curr
		}
	}
}

func (w *Watcher) emit(events []Event) {
	for _, e := range events {
		select {
		case w.events <- e:
		default:
			// Drop event if channel is full
		}
	}
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.done) })
}

// diffSnapshots compares two snapshots and returns detected events.
func diffSnapshots(prev, curr *Snapshot) []Event {
	if curr == nil {
		return nil
	}

	now := time.Now()
	event := func(t EventType) Event {
		return Event{Type: t, Timestamp: now, Previous: prev, Current: curr}
	}

	// First poll: report what is known
	if prev == nil {
		var events []Event
		if !curr.Available {
			events = append(events, event(EventAvailabilityChange))
		}
		if curr.Power != "" {
			events = append(events, event(EventPowerChange))
		}
		if curr.Playback.HasTrack() {
			events = append(events, event(EventTrackChange))
		}
		return events
	}

	var events []Event
	if prev.Available != curr.Available {
		events = append(events, event(EventAvailabilityChange))
	}
	if prev.Power != curr.Power {
		events = append(events, event(EventPowerChange))
	}
	if prev.Playback.TransportState != curr.Playback.TransportState {
		events = append(events, event(EventTransportChange))
	}
	if trackChanged(prev, curr) {
		events = append(events, event(EventTrackChange))
	}
	if prev.Playback.AvailableActions != curr.Playback.AvailableActions {
		events = append(events, event(EventActionsChange))
	}
	return events
}

func trackChanged(prev, curr *Snapshot) bool {
	p, c := prev.Playback, curr.Playback
	return p.Title != c.Title || p.Artist != c.Artist || p.AlbumArtURI != c.AlbumArtURI
}
