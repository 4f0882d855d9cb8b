// Package queue serializes read-modify-write cycles against persisted
// resources. Every mutation of a resource runs behind all previously
// enqueued mutations of that same resource, so two concurrent completions
// can never interleave their load/save steps and lose an update. Each
// resource gets its own worker; mutations of independent resources
// (progress, session draft, app settings) never block each other.
package queue

import "sync"

// Resource keys for the engine's independent persisted records.
const (
	ResourceProgress = "user_progress"
	ResourceDraft    = "session_draft"
	ResourceSettings = "app_settings"
)

type task struct {
	run  func() error
	done chan error
}

// Queue runs tasks in FIFO order per resource key.
type Queue struct {
	mu       sync.Mutex
	closed   bool
	workers  map[string]chan task
	wg       sync.WaitGroup // running workers
	inflight sync.WaitGroup // Do calls that passed the closed check but haven't enqueued yet
}

// New creates an empty queue. Workers are started lazily per resource.
func New() *Queue {
	return &Queue{workers: make(map[string]chan task)}
}

// Do enqueues fn behind every previously enqueued task for resource and
// blocks until fn has run. The returned error is fn's own error; a failing
// task never stalls the tasks queued behind it.
func (q *Queue) Do(resource string, fn func() error) error {
	t := task{run: fn, done: make(chan error, 1)}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	ch, ok := q.workers[resource]
	if !ok {
		ch = make(chan task, 64)
		q.workers[resource] = ch
		q.wg.Add(1)
		go q.worker(ch)
	}
	q.inflight.Add(1)
	q.mu.Unlock()

	ch <- t
	q.inflight.Done()
	return <-t.done
}

func (q *Queue) worker(ch chan task) {
	defer q.wg.Done()
	for t := range ch {
		t.done <- runTask(t.run)
	}
}

// runTask converts a panic inside a task into an error so the worker keeps
// draining the queue.
func runTask(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return fn()
}

// Close stops accepting new tasks and waits for all queued tasks to finish.
// Queued writes always run to completion; there is no cancellation.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	// let already-admitted Do calls finish enqueueing before closing channels
	q.inflight.Wait()
	q.mu.Lock()
	for _, ch := range q.workers {
		close(ch)
	}
	q.mu.Unlock()
	q.wg.Wait()
}
