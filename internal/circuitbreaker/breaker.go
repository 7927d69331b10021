package circuitbreaker

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests")
	// ErrPanic wraps a panic raised inside a guarded call.
	ErrPanic = errors.New("circuit breaker: guarded call panicked")
)

// State represents circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Options tunes a CircuitBreaker. Zero values fall back to defaults.
type Options struct {
	MaxFailures  int
	ResetTimeout time.Duration

	// OnStateChange is invoked after every transition, outside the lock.
	OnStateChange func(from, to State)

	// Ignore reports errors that count as neither success nor failure.
	// A half-open probe ending in such an error leaves the circuit
	// half-open for the next caller.
	Ignore func(err error) bool

	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// CircuitBreaker guards calls to the generative model. After MaxFailures
// consecutive failures it rejects calls until ResetTimeout has elapsed,
// then lets a single probe through.
type CircuitBreaker struct {
	maxFailures   int
	resetTimeout  time.Duration
	onStateChange func(from, to State)
	ignore        func(err error) bool
	now           func() time.Time

	mu              sync.Mutex
	state           State
	failures        int
	probing         bool
	openedAt        time.Time
	lastStateChange time.Time
}

// NewCircuitBreaker creates a closed circuit breaker
func NewCircuitBreaker(opts Options) *CircuitBreaker {
	if opts.MaxFailures <= 0 {
		opts.MaxFailures = 5
	}
	if opts.ResetTimeout <= 0 {
		opts.ResetTimeout = 5 * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &CircuitBreaker{
		maxFailures:     opts.MaxFailures,
		resetTimeout:    opts.ResetTimeout,
		onStateChange:   opts.OnStateChange,
		ignore:          opts.Ignore,
		now:             opts.Now,
		state:           StateClosed,
		lastStateChange: opts.Now(),
	}
}

// Call executes fn with circuit breaker protection. When the circuit
// rejects the call, fn is not run and ErrCircuitOpen or
// ErrTooManyRequests is returned.
// A panic in fn is recorded as a failure and returned wrapped in ErrPanic.
func (cb *CircuitBreaker) Call(fn func() error) (err error) {
	if err := cb.beforeCall(); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
		cb.afterCall(err)
	}()

	return fn()
}

func (cb *CircuitBreaker) beforeCall() error {
	cb.mu.Lock()
	from := cb.state

	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.resetTimeout {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		cb.transition(StateHalfOpen)
		cb.probing = true

	case StateHalfOpen:
		if cb.probing {
			cb.mu.Unlock()
			return ErrTooManyRequests
		}
		cb.probing = true
	}

	to := cb.state
	cb.mu.Unlock()

	cb.notify(from, to)
	return nil
}

func (cb *CircuitBreaker) afterCall(err error) {
	cb.mu.Lock()
	from := cb.state

	switch {
	case err != nil && cb.ignore != nil && cb.ignore(err):
	case err != nil:
		cb.failures++
		switch cb.state {
		case StateClosed:
			if cb.failures >= cb.maxFailures {
				cb.trip()
			}
		case StateHalfOpen:
			cb.trip()
		}
	default:
		cb.failures = 0
		if cb.state == StateHalfOpen {
			cb.transition(StateClosed)
		}
	}
	cb.probing = false

	to := cb.state
	cb.mu.Unlock()

	cb.notify(from, to)
}

// trip opens the circuit; caller holds mu
func (cb *CircuitBreaker) trip() {
	cb.transition(StateOpen)
	cb.openedAt = cb.now()
}

// transition switches state; caller holds mu
func (cb *CircuitBreaker) transition(to State) {
	if cb.state == to {
		return
	}
	cb.state = to
	cb.lastStateChange = cb.now()
	if to == StateClosed {
		cb.failures = 0
	}
}

func (cb *CircuitBreaker) notify(from, to State) {
	if from != to && cb.onStateChange != nil {
		cb.onStateChange(from, to)
	}
}

// State returns current circuit breaker state
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Stats returns circuit breaker statistics
func (cb *CircuitBreaker) Stats() (state State, failures int, since time.Time) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state, cb.failures, cb.lastStateChange
}

// Reset resets the circuit breaker to closed state
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	from := cb.state
	cb.transition(StateClosed)
	cb.failures = 0
	cb.probing = false
	cb.mu.Unlock()

	cb.notify(from, StateClosed)
}
