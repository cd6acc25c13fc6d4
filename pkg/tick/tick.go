// Package tick implements a cancellable periodic counter: an
// increasing integer emitted once per fixed interval to a single
// consumer callback.
package tick

import (
	"fmt"
	"sync"
	"time"

	"github.com/gammazero/deque"
)

// ConfigError reports an invalid Source configuration or an operation
// attempted in the wrong state.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "tick: " + e.Reason
}

// Consumer receives each emitted tick value. It runs to completion
// before the next tick is delivered; ticks are never delivered
// concurrently.
type Consumer func(n int)

// State of a Source. A Source moves Idle -> Running -> Cancelled and
// Cancelled is terminal: a new run requires a new Source.
type State int

const (
	Idle State = iota
	Running
	Cancelled
)

// Source emits 1, 2, 3, ... once per interval to its consumer.
//
// Delivery policy is serialize-and-delay: every firing enqueues the
// next value, and a single delivery goroutine runs the consumer for
// one value at a time. A consumer slower than the interval delays
// later ticks rather than dropping them or running them concurrently.
// Ticks still queued when Stop is called are discarded.
type Source struct {
	interval time.Duration
	consumer Consumer

	lock  sync.Mutex
	cond  *sync.Cond
	state State
	queue *deque.Deque[int]
	next  int

	ticker *time.Ticker
	stopc  chan struct{}
	done   chan struct{}
}

// New returns an Idle Source. The interval must be positive and the
// consumer non-nil; anything else fails fast with a *ConfigError.
func New(interval time.Duration, consumer Consumer) (*Source, error) {
	if interval <= 0 {
		return nil, &ConfigError{Reason: fmt.Sprintf("interval must be > 0, got %v", interval)}
	}
	if consumer == nil {
		return nil, &ConfigError{Reason: "consumer must not be nil"}
	}

	s := &Source{
		interval: interval,
		consumer: consumer,
		queue:    deque.New[int](),
		stopc:    make(chan struct{}),
		done:     make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.lock)
	return s, nil
}

// Start moves the Source from Idle to Running and begins emitting.
// Starting a Source that is not Idle returns a *ConfigError.
func (s *Source) Start() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.state != Idle {
		return &ConfigError{Reason: "source is no longer idle"}
	}
	s.state = Running
	s.ticker = time.NewTicker(s.interval)

	go s.fill()
	go s.drain()

	return nil
}

// fill enqueues the next tick value on every timer firing.
func (s *Source) fill() {
	for {
		select {
		case <-s.ticker.C:
			s.lock.Lock()
			if s.state != Running {
				s.lock.Unlock()
				return
			}
			s.next++
			s.queue.PushBack(s.next)
			s.lock.Unlock()
			s.cond.Signal()
		case <-s.stopc:
			return
		}
	}
}

// drain pops queued ticks and runs the consumer for one value at a
// time. The lock is not held across the consumer call.
func (s *Source) drain() {
	defer close(s.done)
	for {
		s.lock.Lock()
		for s.queue.Len() == 0 && s.state == Running {
			s.cond.Wait()
		}
		if s.state != Running {
			s.lock.Unlock()
			return
		}
		n := s.queue.PopFront()
		s.lock.Unlock()

		s.consumer(n)
	}
}

// Stop moves the Source to Cancelled and stops the timer. It does not
// preempt a consumer call already in progress, but it returns only
// after that call has completed, and no tick is delivered after Stop
// returns. Queued undelivered ticks are discarded. Stop is idempotent.
func (s *Source) Stop() {
	s.lock.Lock()
	switch s.state {
	case Cancelled:
		started := s.ticker != nil
		s.lock.Unlock()
		if started {
			<-s.done
		}
		return
	case Idle:
		s.state = Cancelled
		close(s.done)
		s.lock.Unlock()
		return
	}

	s.state = Cancelled
	s.ticker.Stop()
	close(s.stopc)
	s.lock.Unlock()

	s.cond.Signal()
	<-s.done
}

// CurState reports the Source state at the time of the call.
func (s *Source) CurState() State {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.state
}
