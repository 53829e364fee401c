package fs

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/jupypod/pkg/core"
)

func TestDebouncer(t *testing.T) {
	t.Run("Coalesces Burst Into Create", func(t *testing.T) {
		d := newDebouncer(30 * time.Millisecond)
		got := make(chan core.Event, 4)
		deliver := func(e core.Event) { got <- e }

		d.add(core.Event{Type: core.EventCreate, ID: "nb"}, deliver)
		d.add(core.Event{Type: core.EventModify, ID: "nb"}, deliver)
		d.add(core.Event{Type: core.EventModify, ID: "nb"}, deliver)

		select {
		case e := <-got:
			assert.Equal(t, core.EventCreate, e.Type)
			assert.Equal(t, "nb", e.ID)
		case <-time.After(2 * time.Second):
			t.Fatal("no event delivered")
		}
		d.stopAndWait(time.Second)
		assert.Empty(t, got, "burst must be delivered once")
	})

	t.Run("Restart After Fire Under Load", func(t *testing.T) {
		// With a tiny delay most timers fire while add holds the lock, so the
		// restart path races the pending callback on every round.
		for round := 0; round < 500; round++ {
			d := newDebouncer(time.Microsecond)
			var delivered atomic.Int32
			deliver := func(core.Event) { delivered.Add(1) }

			for i := 0; i < 200; i++ {
				d.add(core.Event{Type: core.EventModify, ID: "nb"}, deliver)
			}
			d.stopAndWait(time.Second)

			if n := delivered.Load(); n > 200 {
				t.Fatalf("round %d: %d deliveries for 200 events", round, n)
			}
		}
	})

	t.Run("Ignores Events After Stop", func(t *testing.T) {
		d := newDebouncer(time.Millisecond)
		var delivered atomic.Int32
		d.stopAndWait(time.Second)

		d.add(core.Event{Type: core.EventModify, ID: "nb"}, func(core.Event) { delivered.Add(1) })
		time.Sleep(20 * time.Millisecond)
		assert.Zero(t, delivered.Load())
	})
}
