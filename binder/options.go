package binder

import (
	"github.com/kbukum/restbind/logger"
	"github.com/kbukum/restbind/observability"
	"github.com/kbukum/restbind/publisher"
	"github.com/kbukum/restbind/transport"
)

// TransportFactory creates the transport client of a bound Client.
type TransportFactory func() (transport.Client, error)

type options struct {
	registry    *publisher.Registry
	log         *logger.Logger
	factory     TransportFactory
	instruments *observability.Instruments
	transport   transport.Config
}

// Option configures Compile.
type Option func(*options)

// WithRegistry resolves body publishers from r instead of publisher.Default().
func WithRegistry(r *publisher.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithLogger sets the logger receiving bind-time warnings and timings.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTransport replaces the default HTTP transport. The factory runs at
// most once per successfully built Client.
func WithTransport(f TransportFactory) Option {
	return func(o *options) { o.factory = f }
}

// WithInstruments records a span and metrics for every call.
func WithInstruments(i *observability.Instruments) Option {
	return func(o *options) { o.instruments = i }
}

// WithTransportConfig configures the default HTTP transport.
func WithTransportConfig(cfg transport.Config) Option {
	return func(o *options) { o.transport = cfg }
}

// WithConfig applies the transport section of cfg.
func WithConfig(cfg Config) Option {
	return WithTransportConfig(cfg.Transport)
}

func (o *options) transportFactory() TransportFactory {
	if o.factory != nil {
		return o.factory
	}
	cfg, log := o.transport, o.log
	return func() (transport.Client, error) {
		return transport.NewHTTPClient(cfg, transport.WithLogger(log))
	}
}
