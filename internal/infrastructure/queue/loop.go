package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

const defaultBacklog = 64

// ErrStopped is returned by Do once the loop has shut down.
var ErrStopped = errors.New("queue: loop stopped")

// Loop runs submitted operations one at a time, in submission order, on a
// single goroutine. Core operations read a whole collection, compute the new
// one and write it back, so only one of them may be in flight.
type Loop struct {
	jobs chan job
	done chan struct{}
	log  zerolog.Logger
	once sync.Once
}

type job struct {
	ctx    context.Context
	fn     func(context.Context) error
	result chan error
}

// NewLoop creates a Loop whose queue holds up to backlog waiting operations.
// If backlog <= 0, defaultBacklog is used.
func NewLoop(backlog int, log zerolog.Logger) *Loop {
	if backlog <= 0 {
		backlog = defaultBacklog
	}
	return &Loop{
		jobs: make(chan job, backlog),
		done: make(chan struct{}),
		log:  log,
	}
}

// Start launches the worker. It stops when ctx is cancelled. Calling Start
// more than once has no effect.
func (l *Loop) Start(ctx context.Context) {
	l.once.Do(func() { go l.run(ctx) })
}

// Do submits fn and waits for its result. It returns ctx.Err() if ctx ends
// before fn starts; fn is then skipped. Once fn has started Do waits for it to
// return, so the caller never races the operation.
func (l *Loop) Do(ctx context.Context, fn func(context.Context) error) error {
	j := job{ctx: ctx, fn: fn, result: make(chan error, 1)}

	select {
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	case l.jobs <- j:
	}

	select {
	case err := <-j.result:
		return err
	case <-l.done:
		return ErrStopped
	}
}

// Done is closed after the worker has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-l.jobs:
			if err := j.ctx.Err(); err != nil {
				j.result <- err
				continue
			}
			j.result <- l.exec(j)
		}
	}
}

func (l *Loop) exec(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error().Interface("panic", r).Msg("operation panicked")
			err = fmt.Errorf("queue: operation panicked: %v", r)
		}
	}()
	return j.fn(j.ctx)
}
