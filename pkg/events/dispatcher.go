package events

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// Emitter accepts pipeline events. Emit must never block the caller.
type Emitter interface {
	Emit(e entities.Event)
}

// Observer consumes events delivered by a Dispatcher
type Observer interface {
	Observe(e entities.Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(e entities.Event)

// Observe calls f(e)
func (f ObserverFunc) Observe(e entities.Event) { f(e) }

// Emit sends e to em when em is non-nil
func Emit(em Emitter, e entities.Event) {
	if em == nil {
		return
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	em.Emit(e)
}

// Dispatcher fans events out to observers on a single background goroutine.
// When the buffer is full new events are dropped.
type Dispatcher struct {
	ch        chan entities.Event
	observers []Observer
	logger    *zap.Logger
	dropped   atomic.Int64
	onDrop    func()

	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
	done      chan struct{}
}

// NewDispatcher starts a dispatcher with the given buffer size
func NewDispatcher(buffer int, logger *zap.Logger, observers ...Observer) *Dispatcher {
	if buffer <= 0 {
		buffer = 256
	}
	d := &Dispatcher{
		ch:        make(chan entities.Event, buffer),
		observers: observers,
		logger:    logger,
		done:      make(chan struct{}),
	}
	go d.run()
	return d
}

// OnDrop registers a callback invoked for every dropped event. It may be
// called while events are being emitted.
func (d *Dispatcher) OnDrop(fn func()) {
	d.mu.Lock()
	d.onDrop = fn
	d.mu.Unlock()
}

// Emit enqueues e without blocking
func (d *Dispatcher) Emit(e entities.Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	select {
	case d.ch <- e:
	default:
		d.dropped.Add(1)
		if d.onDrop != nil {
			d.onDrop()
		}
	}
}

// Dropped returns how many events were discarded
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Close stops accepting events, delivers what is buffered and waits for the
// worker to exit.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.ch)
		d.mu.Unlock()
	})
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for e := range d.ch {
		for _, o := range d.observers {
			d.deliver(o, e)
		}
	}
}

func (d *Dispatcher) deliver(o Observer, e entities.Event) {
	defer func() {
		if p := recover(); p != nil && d.logger != nil {
			d.logger.Error("event observer panicked",
				zap.String("event", string(e.Type)),
				zap.Any("panic", p),
			)
		}
	}()
	o.Observe(e)
}
