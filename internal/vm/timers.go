package vm

import (
	"sync"
	"time"

	"github.com/vmx32/vmx32/internal/isa"
)

const maxTimers = 20

// signalEvent is one entry in the VM's wait queue: a notification kind
// and the integer payload WFS delivers into the second destination
// register (the timer id for NotifyTimer, the only kind posted to the
// queue in this package).
type signalEvent struct {
	kind    int
	payload int32
}

// timerTable is the fixed-size slot table described in spec §4.7. Each
// armed slot owns a host *time.Timer; firing posts a signalEvent onto the
// VM's shared signal queue, which is the portable Go rendition of the
// reference implementation's real-time-signal delivery
// (sigtimer_create + SIGRTMIN-based sigwaitinfo). Timer id 0 is reserved
// as invalid, matching the source.
type timerTable struct {
	mu     sync.Mutex
	timers [maxTimers]*time.Timer
	armed  [maxTimers]bool
	queue  chan signalEvent
}

func newTimerTable(queue chan signalEvent) *timerTable {
	return &timerTable{queue: queue}
}

// arm implements STM id, ms. Re-arming an already-armed id stops the old
// host timer and installs the new interval (the "replace" resolution of
// open question §9.5: idiomatic for a Go *time.Timer, whose own Reset
// semantics this mirrors, and strictly more useful to a caller than a
// silent no-op).
func (t *timerTable) arm(id int, intervalMS uint32) error {
	if id <= 0 || id >= maxTimers {
		return ErrInvalidTimerID
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.armed[id] && t.timers[id] != nil {
		t.timers[id].Stop()
	}
	interval := time.Duration(intervalMS) * time.Millisecond
	t.timers[id] = time.AfterFunc(interval, func() { t.fire(id, interval) })
	t.armed[id] = true
	return nil
}

func (t *timerTable) fire(id int, interval time.Duration) {
	select {
	case t.queue <- signalEvent{kind: isa.NotifyTimer, payload: int32(id)}:
	default:
		// Queue full: drop rather than block the timer goroutine, same
		// best-effort delivery the host OS's signal queue provides once
		// it is saturated.
	}
	t.mu.Lock()
	if t.armed[id] {
		t.timers[id] = time.AfterFunc(interval, func() { t.fire(id, interval) })
	}
	t.mu.Unlock()
}

// disarm implements CTM id.
func (t *timerTable) disarm(id int) error {
	if id <= 0 || id >= maxTimers {
		return ErrInvalidTimerID
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timers[id] != nil {
		t.timers[id].Stop()
	}
	t.armed[id] = false
	return nil
}

func (t *timerTable) shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.timers {
		if t.timers[i] != nil {
			t.timers[i].Stop()
		}
	}
}
