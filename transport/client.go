package transport

import "context"

// Client sends requests.
type Client interface {
	// Send blocks until the exchange completes. Status codes are not errors
	// unless the client is configured to classify them.
	Send(ctx context.Context, req *Request, handler BodyHandler) (*Response, error)
	// SendAsync starts the exchange and returns immediately. The exchange is
	// bound to ctx; failures surface only through the Future.
	SendAsync(ctx context.Context, req *Request, handler BodyHandler) *Future
}

// Closer is implemented by clients holding connections.
type Closer interface {
	Close(ctx context.Context) error
}

// Availability is implemented by clients that can refuse exchanges up front,
// for example while a circuit breaker is open.
type Availability interface {
	IsAvailable(ctx context.Context) bool
}

// Go runs send on its own goroutine with a cancellable child of ctx and
// returns the Future it completes. Clients implement SendAsync with it.
func Go(ctx context.Context, send func(ctx context.Context) (*Response, error)) *Future {
	ctx, cancel := context.WithCancel(ctx)
	f := newFuture(cancel)
	go func() {
		defer cancel()
		resp, err := send(ctx)
		f.complete(resp, err)
	}()
	return f
}
