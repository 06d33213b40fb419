// Package hofp exposes a higher order function pool, used to run independent requests against a cluster concurrently
// whilst failing fast on the first error.
package hofp

import (
	"context"
	"errors"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/soitun/aistore/log"
)

// Function is executed by the worker pool, it should honor the cancellation of the given context.
type Function func(ctx context.Context) error

// Pool executes the queued functions with bounded concurrency.
//
// NOTE: The first error cancels the context given to running functions, the remaining queued functions are skipped.
type Pool struct {
	opts   Options
	logger log.WrappedLogger
	pool   *pool.ContextPool

	ctx    context.Context
	cancel context.CancelFunc
	stop   sync.Once

	err  error
	lock sync.Mutex
}

// NewPool returns a new worker pool which is ready to accept functions.
func NewPool(opts Options) *Pool {
	opts.defaults()

	ctx, cancel := context.WithCancel(opts.Context)

	return &Pool{
		opts:   opts,
		logger: log.NewWrappedLogger(opts.Logger).WithPrefix(opts.LogPrefix),
		pool:   pool.New().WithMaxGoroutines(opts.Size).WithContext(ctx),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Size returns the maximum number of functions executed concurrently.
func (p *Pool) Size() int {
	return p.opts.Size
}

// Queue a function for execution, blocking whilst the pool is at capacity. Returns an error once the pool is tearing
// down, which should be used to stop queuing.
func (p *Pool) Queue(fn Function) error {
	if err := p.getErr(); err != nil {
		return err
	}

	if err := p.ctx.Err(); err != nil {
		return err
	}

	p.pool.Go(func(ctx context.Context) error {
		if ctx.Err() != nil {
			return nil
		}

		err := fn(ctx)
		if err == nil || p.setErr(err) {
			return nil
		}

		// Only the first error is returned, functions cancelled by the teardown are expected to fail.
		if !errors.Is(err, context.Canceled) {
			p.logger.Errorf("Failed to execute function: %v", err)
		}

		return nil
	})

	return p.getErr()
}

// Stop waits for the queued functions to complete, returning the error which caused teardown (if any). It's safe to
// call more than once.
func (p *Pool) Stop() error {
	p.stop.Do(func() {
		_ = p.pool.Wait()
		p.cancel()
	})

	if err := p.getErr(); err != nil {
		return err
	}

	// Queued functions are skipped when the parent context is cancelled.
	return p.opts.Context.Err()
}

func (p *Pool) getErr() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.err
}

// setErr records the first error and begins teardown, returning false if teardown had already begun.
func (p *Pool) setErr(err error) bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.err != nil {
		return false
	}

	p.err = err
	p.cancel()

	return true
}
