package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/penpal-ai/database-service/pkg/cache"
	"github.com/penpal-ai/database-service/pkg/config"
	"github.com/penpal-ai/database-service/pkg/email"
	"github.com/penpal-ai/database-service/pkg/httpserver"
	"github.com/penpal-ai/database-service/pkg/logger"
	"github.com/penpal-ai/database-service/pkg/metrics"
	mongox "github.com/penpal-ai/database-service/pkg/mongo"
	"github.com/penpal-ai/database-service/pkg/notification"
	"github.com/penpal-ai/database-service/pkg/redis"
	"github.com/penpal-ai/database-service/pkg/serviceauth"
	"github.com/penpal-ai/database-service/svc/payment"
	"github.com/penpal-ai/database-service/svc/subscription"
	"github.com/penpal-ai/database-service/svc/user"
)

// drainTimeout bounds how long shutdown waits for pending confirmations.
const drainTimeout = 10 * time.Second

// App owns every long-lived dependency of the service.
type App struct {
	Config     Config
	Log        *slog.Logger
	HTTP       httpserver.Config
	Auth       serviceauth.Config
	Mongo      *mongo.Client
	DB         *mongo.Database
	Redis      *goredis.Client
	Metrics    *metrics.Recorder
	Dispatcher *subscription.Dispatcher

	Subscriptions *subscription.Service
	Payments      *payment.Service

	startedAt time.Time
	closeOnce sync.Once
}

// Configs bundles the per-package settings read from the environment.
type Configs struct {
	App          Config
	HTTP         httpserver.Config
	Mongo        mongox.Config
	Redis        redis.Config
	Cache        cache.Config
	Auth         serviceauth.Config
	Notification notification.Config
	Email        email.Config
}

// LoadConfigs reads every settings struct from the environment.
func LoadConfigs() (Configs, error) {
	var c Configs
	err := errors.Join(
		config.Load(&c.App),
		config.Load(&c.HTTP),
		config.Load(&c.Mongo),
		config.Load(&c.Redis),
		config.Load(&c.Cache),
		config.Load(&c.Auth),
		config.Load(&c.Notification),
		config.Load(&c.Email),
	)
	if err != nil {
		return Configs{}, err
	}
	return c, nil
}

// New connects to the backing stores and assembles the services.
// Close must be called when New succeeds.
func New(ctx context.Context, cfgs Configs, log *slog.Logger) (*App, error) {
	a := &App{
		Config:    cfgs.App,
		Log:       log,
		HTTP:      cfgs.HTTP,
		Auth:      cfgs.Auth,
		startedAt: time.Now(),
	}

	client, err := mongox.New(ctx, cfgs.Mongo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}
	a.Mongo = client
	a.DB = client.Database(cfgs.Mongo.Database)
	log.InfoContext(ctx, "connected to mongodb", slog.String("database", cfgs.Mongo.Database))

	if cfgs.Redis.Enabled() {
		rdb, err := redis.Connect(ctx, cfgs.Redis)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("%w: %w", ErrInit, err)
		}
		a.Redis = rdb
		log.InfoContext(ctx, "connected to redis")
	}

	rec, err := metrics.New(metrics.DefaultNamespace, prometheus.DefaultRegisterer)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}
	a.Metrics = rec

	c := a.newCache(cfgs.Cache)

	notifier, err := NewNotifier(cfgs.App.NotifierBackend, cfgs.Notification, cfgs.Email, rec, log)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}
	probeNotifier(ctx, notifier, log)

	a.Dispatcher = subscription.NewDispatcher(user.NewStore(a.DB), notifier, log)

	subOpts := []subscription.ServiceOption{
		subscription.WithLogger(log),
		subscription.WithDispatcher(a.Dispatcher),
	}
	if cfgs.App.StrictTransitions {
		subOpts = append(subOpts, subscription.WithTransitionPolicy(subscription.NewStrictPolicy()))
	}
	a.Subscriptions = subscription.NewService(
		subscription.NewCachedStore(subscription.NewMongoStore(a.DB), c),
		subOpts...,
	)
	a.Payments = payment.NewService(
		payment.NewCachedStore(payment.NewMongoStore(a.DB), c),
		payment.WithLogger(log),
	)

	return a, nil
}

func (a *App) newCache(cfg cache.Config) *cache.Cache {
	if !cfg.Enabled {
		a.Log.Info("read cache disabled")
		return nil
	}
	var backend cache.Backend = cache.NewLocal(cfg.LocalSize, cfg.TTL)
	kind := "local"
	if a.Redis != nil {
		backend = cache.NewRedis(a.Redis)
		kind = "redis"
	}
	a.Log.Info("read cache enabled", slog.String("backend", kind), slog.Duration("ttl", cfg.TTL))
	return cache.New(backend,
		cache.WithTTL(cfg.TTL),
		cache.WithKeyPrefix(cfg.KeyPrefix),
		cache.WithLogger(a.Log),
		cache.WithObserver(a.Metrics),
	)
}

// EnsureIndexes creates the subscription and payment indexes.
func (a *App) EnsureIndexes(ctx context.Context) error {
	subs, err := subscription.EnsureIndexes(ctx, a.DB)
	if err != nil {
		return err
	}
	payments, err := payment.EnsureIndexes(ctx, a.DB)
	if err != nil {
		return err
	}
	a.Log.InfoContext(ctx, "indexes ensured",
		slog.Any("subscriptions", subs),
		slog.Any("payments", payments),
	)
	return nil
}

// ReadinessChecks returns the probes behind /health/ready.
func (a *App) ReadinessChecks() map[string]func(context.Context) error {
	checks := map[string]func(context.Context) error{
		"mongodb": mongox.Healthcheck(a.Mongo),
	}
	if a.Redis != nil {
		checks["redis"] = redis.Healthcheck(a.Redis)
	}
	return checks
}

// Handler returns the HTTP surface of the service.
func (a *App) Handler() http.Handler {
	return NewRouter(RouterDeps{
		Config:          a.Config,
		Auth:            a.Auth,
		Log:             a.Log,
		Metrics:         a.Metrics,
		Subscriptions:   a.Subscriptions,
		Payments:        a.Payments,
		ReadinessChecks: a.ReadinessChecks(),
		StartedAt:       a.startedAt,
	})
}

// Serve runs the HTTP server until ctx is cancelled or a termination signal
// arrives, then drains pending confirmations and closes the connections.
func (a *App) Serve(ctx context.Context) error {
	srv := httpserver.NewFromConfig(a.HTTP,
		httpserver.WithLogger(a.Log),
		httpserver.WithStopHook(func() {
			a.Close(context.WithoutCancel(ctx))
		}),
	)
	return srv.Run(ctx, a.Handler())
}

// Close waits for in-flight confirmations and disconnects from the stores.
// Calls after the first are no-ops.
func (a *App) Close(ctx context.Context) {
	a.closeOnce.Do(func() { a.close(ctx) })
}

func (a *App) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, drainTimeout)
	defer cancel()

	if a.Dispatcher != nil {
		if err := a.Dispatcher.Wait(ctx); err != nil {
			a.Log.WarnContext(ctx, "pending confirmations abandoned", logger.Error(err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Log.ErrorContext(ctx, "failed to close redis", logger.Error(err))
		}
	}
	if a.Mongo != nil {
		if err := a.Mongo.Disconnect(ctx); err != nil {
			a.Log.ErrorContext(ctx, "failed to disconnect mongodb", logger.Error(err))
		}
	}
}
