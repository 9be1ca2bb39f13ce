package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker shields the passport introspection and QStash publish
// calls from a dependency that keeps failing. A streak of failures trips
// it open; after the open timeout a limited number of trial requests
// decide whether it closes again.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	halfOpenMaxReq   int

	state           CircuitState
	failureStreak   int
	trippedAt       time.Time
	trialsInFlight  int
	trialsSucceeded int
	now             func() time.Time
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	if failureThreshold < 1 {
		failureThreshold = 1
	}
	if openTimeout <= 0 {
		openTimeout = 15 * time.Second
	}
	if halfOpenMaxReq < 1 {
		halfOpenMaxReq = 1
	}

	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		openTimeout:      openTimeout,
		halfOpenMaxReq:   halfOpenMaxReq,
		state:            CircuitStateClosed,
		now:              time.Now,
	}
}

// Allow reports whether a call may proceed. While open it returns
// ErrCircuitOpen until the timeout elapses, then admits up to
// halfOpenMaxReq trial calls.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if b.state == CircuitStateOpen {
		if now.Sub(b.trippedAt) < b.openTimeout {
			return ErrCircuitOpen
		}
		b.enterHalfOpen()
	}

	if b.state == CircuitStateHalfOpen {
		if b.trialsInFlight >= b.halfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.trialsInFlight++
	}

	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failureStreak = 0
	case CircuitStateHalfOpen:
		if b.trialsInFlight > 0 {
			b.trialsInFlight--
		}
		b.trialsSucceeded++
		if b.trialsSucceeded >= b.halfOpenMaxReq && b.trialsInFlight == 0 {
			b.close()
		}
	}
}

// RecordFailure counts a failure toward the trip threshold. A failed
// half-open trial call re-trips immediately.
func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failureStreak++
		if b.failureStreak >= b.failureThreshold {
			b.trip()
		}
	case CircuitStateHalfOpen:
		if b.trialsInFlight > 0 {
			b.trialsInFlight--
		}
		b.trip()
	case CircuitStateOpen:
		b.trippedAt = b.now()
	}
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.trippedAt) >= b.openTimeout {
		return CircuitStateHalfOpen
	}

	return b.state
}

func (b *CircuitBreaker) close() {
	b.state = CircuitStateClosed
	b.failureStreak = 0
	b.trialsInFlight = 0
	b.trialsSucceeded = 0
	b.trippedAt = time.Time{}
}

func (b *CircuitBreaker) trip() {
	b.state = CircuitStateOpen
	b.trippedAt = b.now()
	b.trialsInFlight = 0
	b.trialsSucceeded = 0
}

func (b *CircuitBreaker) enterHalfOpen() {
	b.state = CircuitStateHalfOpen
	b.trialsInFlight = 0
	b.trialsSucceeded = 0
}
