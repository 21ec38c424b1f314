// Package workers provides abstractions for managing the client's
// background loops.
// It defines the Worker interface and a Workers aggregate that starts and
// stops multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker's loop in its own goroutine and returns. The loop
// ends when ctx is cancelled or Stop is called; Stop blocks until it has
// exited and is safe to call on a worker that never ran.
//
// Example implementation:
//
//	type MyWorker struct{ cancel context.CancelFunc; wg sync.WaitGroup }
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    // start background processing
//	}
//
//	func (w *MyWorker) Stop() {
//	    // cancel and wait
//	}
type Worker interface {
	Run(ctx context.Context)
	Stop()
}
