// Package sched abstracts periodic scheduling so the simulation can run on
// wall-clock timers in production and on manually advanced ticks in tests.
package sched

import (
	"sync"
	"time"
)

type CancelFunc func()

type Scheduler interface {
	// Schedule runs fn every interval until the returned CancelFunc is
	// called. Cancellation is idempotent.
	Schedule(interval time.Duration, fn func()) CancelFunc
}

// Ticker is the wall-clock Scheduler used in production.
type Ticker struct{}

func (Ticker) Schedule(interval time.Duration, fn func()) CancelFunc {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

// Manual is a test Scheduler: tasks run only when Fire is called.
type Manual struct {
	mu     sync.Mutex
	nextID int
	tasks  map[int]manualTask
}

type manualTask struct {
	interval time.Duration
	fn       func()
}

func NewManual() *Manual {
	return &Manual{tasks: map[int]manualTask{}}
}

func (m *Manual) Schedule(interval time.Duration, fn func()) CancelFunc {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.tasks[id] = manualTask{interval: interval, fn: fn}
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.tasks, id)
			m.mu.Unlock()
		})
	}
}

// Fire runs every task registered at the given interval once. A zero
// interval fires every task.
func (m *Manual) Fire(interval time.Duration) {
	m.mu.Lock()
	fns := make([]func(), 0, len(m.tasks))
	for _, task := range m.tasks {
		if interval == 0 || task.interval == interval {
			fns = append(fns, task.fn)
		}
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Active returns the number of registered tasks.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}
