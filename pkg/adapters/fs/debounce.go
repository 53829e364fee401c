package fs

import (
	"sync"
	"time"

	"github.com/aretw0/jupypod/pkg/core"
)

// debouncer coalesces bursts of events per notebook id. An editor save often
// produces CREATE+WRITE+CHMOD in quick succession; only one event is delivered.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingEvent
	stopped bool
	wg      sync.WaitGroup
}

type pendingEvent struct {
	event core.Event
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]*pendingEvent),
	}
}

// add schedules deliver for e after the quiet period. A newer event for the same
// id restarts the period; a CREATE stays a CREATE when followed by a MODIFY.
func (d *debouncer) add(e core.Event, deliver func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if p, ok := d.pending[e.ID]; ok {
		if p.event.Type == core.EventCreate && e.Type == core.EventModify {
			e.Type = core.EventCreate
		}
		if p.timer.Stop() {
			p.event = e
			p.timer.Reset(d.delay)
			return
		}
		// The timer already fired and its callback is waiting for the lock.
		// It finds itself replaced below and returns without delivering.
	}

	p := &pendingEvent{event: e}
	d.wg.Add(1)
	p.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		if d.pending[e.ID] != p {
			d.mu.Unlock()
			return
		}
		ev := p.event
		delete(d.pending, e.ID)
		d.mu.Unlock()
		deliver(ev)
	})
	d.pending[e.ID] = p
}

// stopAndWait drops pending events and waits up to timeout for in-flight
// deliveries to return.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for id, p := range d.pending {
		if p.timer.Stop() {
			d.wg.Done()
		}
		delete(d.pending, id)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
