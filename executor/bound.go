package executor

import (
	"context"
	"fmt"
	"net/url"
	"reflect"

	"github.com/kbukum/restbind/descriptor"
	"github.com/kbukum/restbind/errors"
	"github.com/kbukum/restbind/observability"
	"github.com/kbukum/restbind/route"
	"github.com/kbukum/restbind/transport"
)

// Source yields the transport client of a call. Bound clients pass a
// function backed by their lazily built shared client.
type Source func(ctx context.Context) (transport.Client, error)

// Bound is an Executor attached to a base URI and a transport source.
// It is safe for concurrent use.
type Bound struct {
	*Executor
	base   *url.URL
	source Source
	// static is the resolved target of a plan without arguments.
	static *url.URL
}

// Bind attaches e to base, which must be absolute.
func (e *Executor) Bind(base *url.URL, source Source) (*Bound, error) {
	if base == nil || !base.IsAbs() {
		return nil, fmt.Errorf("executor: base URI %v must be absolute", base)
	}
	if source == nil {
		return nil, fmt.Errorf("executor: transport source is required")
	}
	b := &Bound{Executor: e, base: base, source: source}
	if target, ok := e.plan.Static(); ok {
		u, err := route.Resolve(base, target)
		if err != nil {
			return nil, errors.InvalidTemplate(e.plan.Template(), err.Error()).
				WithDetail("method", e.method.Name).WithCause(err)
		}
		b.static = u
	}
	return b, nil
}

// Call invokes the method with args in declaration order.
//
// The result depends on the return shape: a string (or the declared string
// type) for a value, *transport.Response for a raw response, nil for fire
// and forget, and *transport.Future for async methods. Async calls always
// return a nil error.
func (b *Bound) Call(ctx context.Context, args ...any) (any, error) {
	if b.method.Return.Async() {
		return b.CallAsync(ctx, args...), nil
	}
	return b.CallSync(ctx, args...)
}

// CallSync performs a blocking call. Argument problems are INVALID_ARGUMENT
// errors; transport failures are *errors.SyncError.
func (b *Bound) CallSync(ctx context.Context, args ...any) (any, error) {
	ctx, call := b.startCall(ctx, false)

	req, err := b.request(args)
	if err != nil {
		call.end(nil, err)
		return nil, err
	}
	client, err := b.source(ctx)
	if err != nil {
		err = errors.NewSyncError(b.method.Name, err)
		call.end(nil, err)
		return nil, err
	}
	resp, err := client.Send(ctx, req, b.handler)
	if err != nil {
		err = errors.NewSyncError(b.method.Name, err)
		call.end(resp, err)
		return nil, err
	}
	call.end(resp, nil)
	return b.mapResponse(resp), nil
}

// CallAsync starts a call and returns its Future. It never blocks on the
// exchange and never fails directly.
func (b *Bound) CallAsync(ctx context.Context, args ...any) *transport.Future {
	ctx, call := b.startCall(ctx, true)

	req, err := b.request(args)
	if err != nil {
		call.end(nil, err)
		return transport.Failed(err)
	}
	client, err := b.source(ctx)
	if err != nil {
		call.end(nil, err)
		return transport.Failed(err)
	}
	f := client.SendAsync(ctx, req, b.handler)
	f.Then(call.end)
	return f
}

func (b *Bound) mapResponse(resp *transport.Response) any {
	switch {
	case b.method.Return.Raw():
		return resp
	case !b.method.Return.HasValue():
		return nil
	case b.value != nil:
		return reflect.ValueOf(resp.Body).Convert(b.value).Interface()
	default:
		return resp.Body
	}
}

// request assembles the request of one call.
func (b *Bound) request(args []any) (*transport.Request, error) {
	m := b.method
	if len(args) != m.Arity() {
		return nil, errors.InvalidArgument(m.Name,
			fmt.Sprintf("expected %d arguments, got %d", m.Arity(), len(args)))
	}

	uri := b.static
	if uri == nil {
		target, err := b.plan.Build(args)
		if err != nil {
			return nil, invalidArgument(m, err)
		}
		if uri, err = route.Resolve(b.base, target); err != nil {
			return nil, invalidArgument(m, err)
		}
	}

	rb := transport.NewRequestBuilder(uri)
	for _, h := range m.Headers {
		rb.Header(h.Name, h.Value)
	}
	for _, h := range b.headers {
		v, err := h.text(args[h.index])
		if err != nil {
			return nil, invalidArgument(m, &route.ArgumentError{Param: h.name, Err: err})
		}
		rb.Header(h.name, v)
	}

	body, err := b.publish(rb, args)
	if err != nil {
		return nil, invalidArgument(m, err)
	}
	rb.Method(m.Verb, body)

	req, err := rb.Build()
	if err != nil {
		return nil, invalidArgument(m, err)
	}
	return req, nil
}

func invalidArgument(m *descriptor.Method, err error) error {
	return errors.InvalidArgument(m.Name, err.Error()).WithCause(err)
}

// call wraps the optional instruments of one call.
type call struct {
	c *observability.Call
}

func (b *Bound) startCall(ctx context.Context, async bool) (context.Context, call) {
	if b.inst == nil {
		return ctx, call{}
	}
	ctx, c := b.inst.StartCall(ctx, b.method.Name, b.method.Verb, b.plan.Template(), async)
	return ctx, call{c: c}
}

func (c call) end(resp *transport.Response, err error) {
	if c.c == nil {
		return
	}
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if err != nil {
		c.c.End(observability.OutcomeError, status, err)
		return
	}
	c.c.End(observability.OutcomeOK, status, nil)
}
