package breaker

import (
	"errors"
	"sync"
	"time"
)

// Breaker guards a flaky dependency (the notification broker) with a
// sliding-window circuit breaker: closed while the failure rate over the last
// windowSize calls stays below the threshold, open for cooldown afterwards,
// then half-open until recoveryCalls consecutive successes close it again.

type state uint8

const (
	stateClosed state = iota
	stateOpen
	stateHalfOpen
)

var ErrOpen = errors.New("circuit breaker is open")

type Breaker struct {
	mu sync.Mutex

	state         state
	windowSize    int
	cooldown      time.Duration
	threshold     float64
	recoveryCalls int

	window       []bool
	pos          int
	successCount int
	openedAt     time.Time
}

func New(windowSize int, cooldown time.Duration, threshold float64, recoveryCalls int) *Breaker {
	return &Breaker{
		state:         stateClosed,
		windowSize:    windowSize,
		cooldown:      cooldown,
		threshold:     threshold,
		recoveryCalls: recoveryCalls,
		window:        make([]bool, windowSize),
	}
}

// Do runs fn unless the breaker is open. The fn error is passed through.
func (b *Breaker) Do(fn func() error) error {
	b.mu.Lock()
	if b.state == stateOpen {
		if time.Since(b.openedAt) > b.cooldown {
			b.state = stateHalfOpen
			b.successCount = 0
		} else {
			b.mu.Unlock()
			return ErrOpen
		}
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.window[b.pos] = err != nil
	b.pos = (b.pos + 1) % b.windowSize

	if b.state == stateHalfOpen {
		if err != nil {
			b.state = stateOpen
			b.successCount = 0
			b.openedAt = time.Now()
		} else {
			b.successCount++
			if b.successCount > b.recoveryCalls {
				b.reset()
			}
		}
		return err
	}

	fails := 0
	for _, failed := range b.window {
		if failed {
			fails++
		}
	}
	if float64(fails)/float64(b.windowSize) >= b.threshold {
		b.state = stateOpen
		b.successCount = 0
		b.openedAt = time.Now()
	}

	return err
}

func (b *Breaker) reset() {
	for i := range b.window {
		b.window[i] = false
	}
	b.pos = 0
	b.successCount = 0
	b.state = stateClosed
}

// Reset forces the breaker back to closed.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}
