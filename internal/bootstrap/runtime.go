// Package bootstrap wires the process-wide dependencies shared by the CLI
// commands: logging, tracing, database, cache and the event publisher.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"board/internal/cache"
	"board/internal/config"
	"board/internal/database"
	"board/internal/events"
	"board/internal/middleware"
	"board/internal/observability"

	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// ApplySchema runs the configured schema policy after connecting.
	ApplySchema bool
	// Events connects the NATS publisher when NATS_URL is set.
	Events bool
	// Cache connects Redis when REDIS_URL is set.
	Cache bool
}

// Runtime holds the initialized dependencies. Close releases them in reverse
// order of acquisition.
type Runtime struct {
	Config    *config.Config
	DB        *gorm.DB
	Publisher events.Publisher

	closers []func(context.Context) error
}

// InitRuntime configures logging and tracing, connects the database and
// optionally the cache and event bus.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	rt := &Runtime{Config: cfg, Publisher: events.NopPublisher{}}

	logCloser := middleware.InitLogger(middleware.LogOptions{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Env:        cfg.Env,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	})
	rt.onClose(closeWith(logCloser))

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "board-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSamplerRatio,
	})
	if err != nil {
		return nil, rt.fail(ctx, fmt.Errorf("tracing init failed: %w", err))
	}
	rt.onClose(shutdownTracing)

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, rt.fail(ctx, fmt.Errorf("database connection failed: %w", err))
	}
	rt.DB = db
	rt.onClose(func(context.Context) error { return database.Close(db) })

	if opts.ApplySchema {
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			return nil, rt.fail(ctx, fmt.Errorf("schema apply failed: %w", err))
		}
	}

	if opts.Cache {
		// Init Redis (may result in nil client if unreachable)
		cache.InitRedis(cfg.RedisURL)
		rt.onClose(func(context.Context) error { return cache.Close() })
	}

	if opts.Events && cfg.NATSURL != "" {
		pub, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubjectPrefix)
		if err != nil {
			// Events are best effort; the API keeps serving without them.
			middleware.Logger.Warn("NATS unavailable, domain events disabled", slog.String("error", err.Error()))
		} else {
			rt.Publisher = pub
			rt.onClose(func(context.Context) error { return pub.Close() })
		}
	}

	return rt, nil
}

func (r *Runtime) onClose(fn func(context.Context) error) {
	r.closers = append(r.closers, fn)
}

func (r *Runtime) fail(ctx context.Context, err error) error {
	if cerr := r.Close(ctx); cerr != nil {
		return errors.Join(err, cerr)
	}
	return err
}

// Close releases every dependency, newest first, and joins their errors.
func (r *Runtime) Close(ctx context.Context) error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

func closeWith(c io.Closer) func(context.Context) error {
	return func(context.Context) error { return c.Close() }
}
