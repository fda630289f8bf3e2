package binder

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/kbukum/restbind/descriptor"
	"github.com/kbukum/restbind/logger"
	"github.com/kbukum/restbind/observability"
)

// Open builds a ready client from cfg: a logger from cfg.Logging, the
// telemetry providers of cfg.Telemetry, call instruments, and the HTTP
// transport of cfg.Transport. opts are applied last and may override any of
// them. The returned function stops the transport and flushes telemetry.
func Open(ctx context.Context, cfg Config, decls []descriptor.Declaration, opts ...Option) (*Client, observability.ShutdownFunc, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("binder: %w", err)
	}

	log := logger.New(&cfg.Logging, cfg.Telemetry.ServiceName).WithComponent(logger.ComponentName)

	shutdown, err := observability.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return nil, nil, fmt.Errorf("binder: telemetry: %w", err)
	}
	inst, err := observability.NewInstruments(nil, nil)
	if err != nil {
		_ = shutdown(ctx)
		return nil, nil, fmt.Errorf("binder: telemetry: %w", err)
	}

	all := append([]Option{WithLogger(log), WithConfig(cfg), WithInstruments(inst)}, opts...)
	client, err := Bind(cfg.BaseURI, decls, all...)
	if err != nil {
		_ = shutdown(ctx)
		return nil, nil, err
	}
	return client, func(ctx context.Context) error {
		return stderrors.Join(client.Stop(ctx), shutdown(ctx))
	}, nil
}
