package transport

import (
	"context"
	"sync"
)

// Future is the pending result of an asynchronous exchange.
// All methods are safe for concurrent use.
type Future struct {
	done   chan struct{}
	cancel context.CancelFunc

	mu        sync.Mutex
	completed bool
	resp      *Response
	err       error
	callbacks []func(*Response, error)
}

func newFuture(cancel context.CancelFunc) *Future {
	return &Future{done: make(chan struct{}), cancel: cancel}
}

// Failed returns a Future already completed with err.
func Failed(err error) *Future {
	f := newFuture(nil)
	f.complete(nil, err)
	return f
}

// Completed returns a Future already completed with resp.
func Completed(resp *Response) *Future {
	f := newFuture(nil)
	f.complete(resp, nil)
	return f
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the result is available or ctx is done. A ctx failure
// does not cancel the exchange.
func (f *Future) Wait(ctx context.Context) (*Response, error) {
	select {
	case <-f.done:
		return f.resp, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Ready reports whether the outcome is available.
func (f *Future) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Cancel aborts the exchange. The Future completes with a cancellation error
// unless it had already completed.
func (f *Future) Cancel() {
	if f.cancel != nil {
		f.cancel()
	}
	f.complete(nil, NewCancelledError(context.Canceled))
}

// Then registers fn to run once with the outcome. If the Future is already
// complete fn runs immediately on the calling goroutine; otherwise it runs
// on the goroutine that completes the Future.
func (f *Future) Then(fn func(*Response, error)) {
	f.mu.Lock()
	if !f.completed {
		f.callbacks = append(f.callbacks, fn)
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	fn(f.resp, f.err)
}

// complete records the first outcome; later ones are ignored.
func (f *Future) complete(resp *Response, err error) {
	f.mu.Lock()
	if f.completed {
		f.mu.Unlock()
		return
	}
	f.completed = true
	f.resp, f.err = resp, err
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, fn := range callbacks {
		fn(resp, err)
	}
}
