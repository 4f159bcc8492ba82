// SPDX-License-Identifier: GPL-3.0-or-later

// Package workqueue executes one-shot deferred tasks.
package workqueue

import "sync"

// Queue runs one-shot tasks on a single background goroutine.
//
// The zero value is not ready to use; construct using [New].
type Queue struct {
	// eof unblocks any blocking channel operation.
	eof chan struct{}

	// eofOnce ensures we close just once.
	eofOnce sync.Once

	// tasks is the channel where we stage tasks.
	tasks chan func()

	// wg waits for the worker goroutine to stop.
	wg sync.WaitGroup
}

// New creates a [*Queue] and starts its worker goroutine. Use
// Close to stop the worker and wait for the in-flight task.
func New() *Queue {
	q := &Queue{
		eof:     make(chan struct{}),
		eofOnce: sync.Once{},
		tasks:   make(chan func(), 1),
		wg:      sync.WaitGroup{},
	}
	q.wg.Add(1)
	go q.workLoop()
	return q
}

// TrySchedule stages a task for execution without blocking. It
// returns false when the queue is full or closed, and true
// otherwise. Because it never blocks nor allocates, it is safe to
// call from latency-sensitive contexts such as timer callbacks.
func (q *Queue) TrySchedule(task func()) bool {
	// Check for closure on its own: after Close both the eof
	// case and the buffered send may be ready at once, and a
	// single select would pick between them at random.
	select {
	case <-q.eof:
		return false
	default:
	}
	select {
	case q.tasks <- task:
		return true
	default:
		return false
	}
}

// Close stops the worker goroutine and waits for the currently
// executing task, if any, to return. Tasks staged but not yet
// started may be discarded. Close is idempotent.
func (q *Queue) Close() error {
	q.eofOnce.Do(func() { close(q.eof) })
	q.wg.Wait()
	return nil
}

// workLoop runs tasks until the queue is closed.
func (q *Queue) workLoop() {
	defer q.wg.Done()
	for {
		select {
		case <-q.eof:
			return
		case task := <-q.tasks:
			task()
		}
	}
}
