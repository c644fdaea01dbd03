package tracker

import (
	"fmt"
	"sort"
	"sync"

	"github.com/espmon/espmon/internal/core/constants"
)

// TaskLane is one task's renderable row in a snapshot: the identifier,
// the relative times currently inside the visible window, and the lane color.
type TaskLane struct {
	Name   string
	Events []float64
	Color  Color
}

// Snapshot is an immutable point-in-time view of all tracked tasks,
// ordered by identifier. WindowStart and Now are relative to the epoch
// and define the visible time range.
type Snapshot struct {
	Lanes       []TaskLane
	WindowStart float64
	Now         float64
}

// Tracker records task execution events extracted from the device log
// stream and serves windowed snapshots for rendering.
//
// All timestamps are absolute seconds supplied by the caller; the first
// event after construction or Reset establishes the epoch, and everything
// is stored relative to it. Event arrival order per task must match time
// order (the device clock is monotonic). Timestamps before the epoch are
// stored as negative relative times: they are evicted on the task's next
// insertion and never appear in a snapshot, whose window starts at 0.
//
// AddEvent and Reset mutate; Snapshot and Window only read. A single
// RWMutex makes every mutation atomic to readers, so the serial-reading
// goroutine and the render ticker can share one instance.
type Tracker struct {
	mu       sync.RWMutex
	window   float64
	events   map[string][]float64
	colors   map[string]Color
	assigned int
	epoch    float64
	epochSet bool
}

// New creates a tracker retaining window seconds of history per task.
// Non-positive values fall back to the default window.
func New(window float64) *Tracker {
	if window <= 0 {
		window = constants.DefaultTimeWindow
	}
	return &Tracker{
		window: window,
		events: make(map[string][]float64),
		colors: make(map[string]Color),
	}
}

// AddEvent records one execution event for the named task at the given
// absolute timestamp. The first event ever recorded fixes the epoch.
func (t *Tracker) AddEvent(name string, timestamp float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.epochSet {
		t.epoch = timestamp
		t.epochSet = true
	}

	if _, ok := t.colors[name]; !ok {
		t.colors[name] = palette[t.assigned%len(palette)]
		t.assigned++
	}

	rel := timestamp - t.epoch
	buf := append(t.events[name], rel)

	// Trim stale events from the front, relative to this task's latest.
	cutoff := buf[len(buf)-1] - t.window
	start := 0
	for start < len(buf) && buf[start] < cutoff {
		start++
	}
	t.events[name] = buf[start:]
}

// Reset clears all buffers, the epoch, and every color assignment,
// returning the tracker to its post-construction state. The retention
// window is preserved.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.events = make(map[string][]float64)
	t.colors = make(map[string]Color)
	t.assigned = 0
	t.epoch = 0
	t.epochSet = false
}

// Snapshot builds a read-only view of all tasks at the given absolute
// time. Before any event has been recorded it returns an empty snapshot
// with the placeholder range [0, window], signaling "awaiting data".
//
// Every task seen since the last reset appears, in identifier order, even
// when all of its events have aged out of the window; its lane is then
// empty but keeps its color.
func (t *Tracker) Snapshot(now float64) Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.epochSet {
		return Snapshot{Lanes: []TaskLane{}, WindowStart: 0, Now: t.window}
	}

	nowRel := now - t.epoch
	windowStart := nowRel - t.window
	if windowStart < 0 {
		windowStart = 0
	}

	names := make([]string, 0, len(t.colors))
	for name := range t.colors {
		names = append(names, name)
	}
	sort.Strings(names)

	lanes := make([]TaskLane, 0, len(names))
	for _, name := range names {
		buf := t.events[name]

		// Visibility is filtered against wall-clock "now", independent of
		// the write-time eviction, so an idle task's stale events drop out
		// of view without its lane disappearing.
		visible := make([]float64, 0, len(buf))
		for _, rel := range buf {
			if rel >= windowStart {
				visible = append(visible, rel)
			}
		}

		lanes = append(lanes, TaskLane{
			Name:   name,
			Events: visible,
			Color:  t.colors[name],
		})
	}

	return Snapshot{Lanes: lanes, WindowStart: windowStart, Now: nowRel}
}

// SetWindow updates the retention window. Non-positive values are
// rejected and the previous window is retained.
func (t *Tracker) SetWindow(window float64) error {
	if window <= 0 {
		return fmt.Errorf("time window must be positive, got %v", window)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.window = window
	return nil
}

// Window returns the current retention window in seconds.
func (t *Tracker) Window() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.window
}

// TaskCount returns the number of distinct tasks seen since the last reset.
func (t *Tracker) TaskCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.colors)
}
