package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/scribe"
	"github.com/aretw0/scribe/internal/config"
	"github.com/aretw0/scribe/internal/dateformat"
	"github.com/aretw0/scribe/internal/host"
	"github.com/aretw0/scribe/pkg/adapters/redis"
	"github.com/aretw0/scribe/pkg/depth"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/observability"
)

// EngineOptions holds what the CLI commands need to build an engine.
type EngineOptions struct {
	Config *config.Config
	// Selection, when non-nil, is exposed as the active view's selection.
	Selection *string
	Debug     bool
	// Registerer, when non-nil, receives the engine's Prometheus collectors.
	Registerer prometheus.Registerer
	// Extra options are applied after the configured ones, e.g.
	// scribe.WithStore to replace the loam vault.
	Extra []scribe.Option
}

// Runtime is a constructed engine plus the resources it owns.
type Runtime struct {
	Engine *scribe.Engine
	Logger *slog.Logger
	close  []func() error
}

// Close releases resources opened for the engine, such as the Redis client.
func (r *Runtime) Close() error {
	var first error
	for _, fn := range r.close {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// CreateEngine initializes a Scribe engine with standard CLI conventions.
func CreateEngine(opts EngineOptions) (*Runtime, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	// 1. Logger & Hooks
	logger, err := createLogger(cfg.LogLevel, opts.Debug)
	if err != nil {
		return nil, err
	}
	rt := &Runtime{Logger: logger}

	engineOpts := []scribe.Option{scribe.WithLogger(logger)}
	if opts.Debug {
		engineOpts = append(engineOpts, scribe.WithInclusionHooks(createDebugHooks(logger)))
	}

	// 2. Depth scope
	guard, closer, err := createGuard(cfg)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		rt.close = append(rt.close, closer)
	}
	engineOpts = append(engineOpts, scribe.WithDepthGuard(guard))

	// 3. Date syntax and host capabilities
	format, err := dateformat.ForSyntax(dateformat.Syntax(cfg.DateSyntax))
	if err != nil {
		rt.Close()
		return nil, err
	}
	hostOpts := []host.Option{host.WithFilesystemPaths(cfg.Host.FilesystemPaths)}
	if opts.Selection != nil {
		hostOpts = append(hostOpts, host.WithSelection(*opts.Selection))
	}
	engineOpts = append(engineOpts,
		scribe.WithDateFormatter(format),
		scribe.WithHost(host.New(hostOpts...)),
	)

	// 4. Metrics
	if opts.Registerer != nil {
		metrics, err := observability.NewMetrics(opts.Registerer)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		engineOpts = append(engineOpts, scribe.WithMetrics(metrics))
	}

	engineOpts = append(engineOpts, opts.Extra...)

	// 5. Initialize
	engine, err := scribe.New(cfg.Vault, engineOpts...)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	rt.Engine = engine
	return rt, nil
}

// createGuard builds the depth guard for the configured scope. The returned
// closer, when non-nil, releases the guard's backend.
func createGuard(cfg *config.Config) (depth.Guard, func() error, error) {
	scope, err := depth.ParseScope(cfg.DepthScope)
	if err != nil {
		return nil, nil, err
	}

	switch scope {
	case depth.ScopeProcess:
		return depth.NewCounterGuard(domain.DepthLimit, depth.NewLocalCounter()), nil, nil
	case depth.ScopeRedis:
		client := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := client.Ping(context.Background()).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		counter := redis.NewCounter(client, redis.WithKey(cfg.Redis.Key), redis.WithTTL(cfg.Redis.TTL))
		return depth.NewCounterGuard(domain.DepthLimit, counter), client.Close, nil
	default:
		return depth.NewChainGuard(domain.DepthLimit), nil, nil
	}
}

func createDebugHooks(logger *slog.Logger) domain.InclusionHooks {
	return domain.InclusionHooks{
		OnInclusionEnter: func(ctx context.Context, e *domain.InclusionEvent) {
			logger.Debug("Enter Inclusion", "source", e.Source, "target", e.Target, "depth", e.Depth)
		},
		OnInclusionLeave: func(ctx context.Context, e *domain.InclusionEvent) {
			if e.Err != nil {
				logger.Debug("Leave Inclusion (Error)", "target", e.Target, "depth", e.Depth, "err", e.Err)
			} else {
				logger.Debug("Leave Inclusion", "target", e.Target, "depth", e.Depth)
			}
		},
	}
}
