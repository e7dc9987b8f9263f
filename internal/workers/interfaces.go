// Package workers provides abstractions for managing background workers
// with a shared lifecycle.
// It defines the Worker interface and a Workers aggregate that starts and
// stops multiple workers in a unified way.
package workers

import "context"

// Worker is the interface implemented by any background worker.
//
// Start is expected to launch the worker's goroutines and return; Stop must
// block until they have fully exited and be safe to call on a worker that
// was never started.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
