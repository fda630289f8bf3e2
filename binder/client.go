package binder

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kbukum/restbind/component"
	"github.com/kbukum/restbind/errors"
	"github.com/kbukum/restbind/executor"
	"github.com/kbukum/restbind/logger"
	"github.com/kbukum/restbind/transport"
)

// Client exposes the bound methods of a declaration set. It is safe for
// concurrent use.
type Client struct {
	base      *url.URL
	names     []string
	methods   map[string]*executor.Bound
	transport *component.Lazy[transport.Client]
	log       *logger.Logger
}

var (
	_ component.Component   = (*Client)(nil)
	_ component.Describable = (*Client)(nil)
)

func newClient(base *url.URL, factory TransportFactory, log *logger.Logger) *Client {
	return &Client{
		base:    base,
		methods: make(map[string]*executor.Bound),
		transport: component.NewLazy("restbind-transport", func(context.Context) (transport.Client, error) {
			tc, err := factory()
			if err != nil {
				return nil, err
			}
			if tc == nil {
				return nil, fmt.Errorf("transport factory returned nil")
			}
			return tc, nil
		}),
		log: log,
	}
}

// Call invokes the method declared as name. See executor.Bound.Call for the
// shape of the result.
func (c *Client) Call(ctx context.Context, name string, args ...any) (any, error) {
	m, ok := c.methods[name]
	if !ok {
		return nil, errors.UnknownMethod(name)
	}
	return m.Call(ctx, args...)
}

// Method returns the bound method declared as name.
func (c *Client) Method(name string) (*executor.Bound, bool) {
	m, ok := c.methods[name]
	return m, ok
}

// Methods returns the method names in declaration order.
func (c *Client) Methods() []string {
	return append([]string(nil), c.names...)
}

// BaseURI returns the URI targets are resolved against.
func (c *Client) BaseURI() *url.URL {
	u := *c.base
	return &u
}

// Transport returns the shared transport client, creating it on first use.
func (c *Client) Transport(ctx context.Context) (transport.Client, error) {
	return c.transport.Get(ctx)
}

// Name returns the component name.
func (c *Client) Name() string { return "restbind" }

// Start does nothing; the transport is created by the first call.
func (c *Client) Start(context.Context) error { return nil }

// Stop releases the connections of the transport, if it was created.
func (c *Client) Stop(ctx context.Context) error {
	tc, ok := c.transport.Peek()
	if !ok {
		return nil
	}
	closer, ok := tc.(transport.Closer)
	if !ok {
		return nil
	}
	c.log.Debug("closing transport", logger.Fields(logger.FieldComponent, c.transport.Name()))
	return closer.Close(ctx)
}

// Health reports whether the transport would accept an exchange.
func (c *Client) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	tc, ok := c.transport.Peek()
	if !ok {
		h.Message = "transport not created yet"
		return h
	}
	if a, ok := tc.(transport.Availability); ok && !a.IsAvailable(ctx) {
		h.Status = component.StatusDegraded
		h.Message = "circuit breaker open"
	}
	return h
}

// Describe returns infrastructure summary info.
func (c *Client) Describe() component.Description {
	state := "lazy"
	if c.transport.IsInitialized() {
		state = "ready"
	}
	return component.Description{
		Name:    "REST client",
		Type:    "rest-client",
		Details: fmt.Sprintf("%s methods=%d transport=%s", c.base, len(c.names), state),
	}
}
