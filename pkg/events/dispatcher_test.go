package events

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu     sync.Mutex
	events []entities.Event
}

func (r *recorder) Observe(e entities.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) snapshot() []entities.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.Event(nil), r.events...)
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(16, zap.NewNop(), rec)

	Emit(d, entities.Event{Type: entities.EventCacheMiss, Key: "k"})
	Emit(d, entities.Event{Type: entities.EventCacheSave, Key: "k"})
	d.Close()

	got := rec.snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, entities.EventCacheMiss, got[0].Type)
	assert.Equal(t, entities.EventCacheSave, got[1].Type)
	assert.False(t, got[0].At.IsZero(), "Emit should stamp the event time")
}

func TestDispatcherNeverBlocksWhenFull(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	slow := ObserverFunc(func(entities.Event) {
		once.Do(func() { close(started) })
		<-release
	})

	d := NewDispatcher(1, zap.NewNop(), slow)
	var drops int
	d.OnDrop(func() { drops++ })

	d.Emit(entities.Event{Type: entities.EventCacheHit})
	<-started
	// worker is parked in the observer; one slot left in the buffer
	d.Emit(entities.Event{Type: entities.EventCacheHit})
	d.Emit(entities.Event{Type: entities.EventCacheHit})
	d.Emit(entities.Event{Type: entities.EventCacheHit})

	assert.Equal(t, int64(2), d.Dropped())
	assert.Equal(t, 2, drops)

	close(release)
	d.Close()
}

func TestDispatcherOnDropDuringEmit(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	slow := ObserverFunc(func(entities.Event) {
		once.Do(func() { close(started) })
		<-release
	})

	d := NewDispatcher(1, zap.NewNop(), slow)
	d.Emit(entities.Event{Type: entities.EventCacheHit})
	<-started

	var drops atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.Emit(entities.Event{Type: entities.EventCacheMiss})
			}
		}()
	}
	d.OnDrop(func() { drops.Add(1) })
	wg.Wait()

	// the one free slot takes a single event; every other emit is dropped
	assert.Equal(t, int64(199), d.Dropped())
	assert.LessOrEqual(t, drops.Load(), d.Dropped())

	close(release)
	d.Close()
}

func TestDispatcherRecoversObserverPanic(t *testing.T) {
	rec := &recorder{}
	boom := ObserverFunc(func(entities.Event) { panic("boom") })
	d := NewDispatcher(4, zap.NewNop(), boom, rec)

	d.Emit(entities.Event{Type: entities.EventRepairAttempted, Success: true})
	d.Close()

	require.Len(t, rec.snapshot(), 1)
}

func TestEmitAfterCloseIsIgnored(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(4, nil, rec)
	d.Close()
	d.Close()

	d.Emit(entities.Event{Type: entities.EventCacheHit})
	assert.Empty(t, rec.snapshot())
}

func TestEmitNilEmitter(t *testing.T) {
	assert.NotPanics(t, func() {
		Emit(nil, entities.Event{Type: entities.EventCacheHit})
	})
}
