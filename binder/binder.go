package binder

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/restbind/descriptor"
	"github.com/kbukum/restbind/errors"
	"github.com/kbukum/restbind/executor"
	"github.com/kbukum/restbind/logger"
)

// Binder is a compiled declaration set. It is immutable and can be bound to
// any number of base URIs.
type Binder struct {
	names     []string
	executors map[string]*executor.Executor
	opts      options
}

// Compile extracts and compiles every declaration. It stops at the first
// failure and returns its *errors.AppError; no partial Binder is produced.
func Compile(decls []descriptor.Declaration, opts ...Option) (*Binder, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get(logger.ComponentName)
	}

	start := time.Now()
	b := &Binder{
		names:     make([]string, 0, len(decls)),
		executors: make(map[string]*executor.Executor, len(decls)),
		opts:      o,
	}
	for _, d := range decls {
		if _, dup := b.executors[d.Name]; dup {
			return nil, errors.DuplicateMethod(d.Name)
		}
		m, err := descriptor.Extract(d, o.log)
		if err != nil {
			return nil, err
		}
		e, err := executor.Compile(m, executor.Options{
			Registry:    o.registry,
			Log:         o.log,
			Instruments: o.instruments,
		})
		if err != nil {
			return nil, err
		}
		b.names = append(b.names, m.Name)
		b.executors[m.Name] = e
	}

	o.log.Info("methods compiled", logger.Merge(
		logger.DurationFields("compile", time.Since(start)),
		logger.Fields(logger.FieldCount, len(b.names)),
	))
	return b, nil
}

// Methods returns the method names in declaration order.
func (b *Binder) Methods() []string {
	return append([]string(nil), b.names...)
}

// Bind attaches every compiled method to baseURI, which must be absolute.
// Each call returns an independent Client with its own transport.
func (b *Binder) Bind(baseURI string) (*Client, error) {
	base, err := url.Parse(baseURI)
	if err != nil {
		return nil, fmt.Errorf("binder: invalid base URI %q: %w", baseURI, err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("binder: base URI %q must be absolute", baseURI)
	}

	c := newClient(base, b.opts.transportFactory(), b.opts.log)
	for _, name := range b.names {
		bound, err := b.executors[name].Bind(base, c.transport.Get)
		if err != nil {
			return nil, err
		}
		c.methods[name] = bound
	}
	c.names = b.names
	return c, nil
}

// Bind compiles decls and binds them to baseURI in one step.
func Bind(baseURI string, decls []descriptor.Declaration, opts ...Option) (*Client, error) {
	b, err := Compile(decls, opts...)
	if err != nil {
		return nil, err
	}
	return b.Bind(baseURI)
}
