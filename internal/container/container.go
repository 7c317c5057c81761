package container

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/workhive/workhive-api/internal/audit"
	auditstore "github.com/workhive/workhive-api/internal/audit/store"
	"github.com/workhive/workhive-api/internal/handlers"
	"github.com/workhive/workhive-api/internal/health"
	"github.com/workhive/workhive-api/internal/messaging"
	"github.com/workhive/workhive-api/internal/middleware"
	"github.com/workhive/workhive-api/internal/ratelimit"
	"github.com/workhive/workhive-api/internal/store"
	"github.com/workhive/workhive-api/internal/workspace"
	"go.uber.org/zap"
)

// Options is the service configuration surface. RedisAddr is the one knob
// the rate limiting subsystem cares about: empty means the distributed
// counter store is never constructed and counters are process-local, a
// fully supported mode.
type Options struct {
	Port         int    `default:"8888" help:"Port to listen on"                                  short:"p"`
	RedisAddr    string `default:""     help:"Redis address; empty disables distributed features" short:"r"`
	PostgresDSN  string `default:""     help:"Postgres DSN; empty uses in-memory storage"`
	LogFormat    string `default:"console" help:"Log format: console or json"`
	IDLength     int    `default:"12"   help:"Length of generated workspace ids"`
	CacheTTL     int    `default:"300"  help:"Workspace cache TTL in seconds"`
	AuditorGroup string `default:"auditor" help:"Consumer group for audit events"`
}

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the shared Redis client when an address is
// configured. With no address the service is not registered at all;
// dependents probe with do.Invoke and treat the error as "not configured".
func RedisPackage(injector *do.Injector) {
	opts := do.MustInvoke[*Options](injector)
	if opts.RedisAddr == "" {
		return
	}

	do.Provide(injector, func(_ *do.Injector) (*redis.Client, error) {
		return redis.NewClient(&redis.Options{Addr: opts.RedisAddr}), nil
	})
}

// PostgresPackage provides the pgx pool when a DSN is configured.
func PostgresPackage(injector *do.Injector) {
	opts := do.MustInvoke[*Options](injector)
	if opts.PostgresDSN == "" {
		return
	}

	do.Provide(injector, func(_ *do.Injector) (*pgxpool.Pool, error) {
		return pgxpool.New(context.Background(), opts.PostgresDSN)
	})
}

// WorkspacePackage provides the workspace repository: Postgres when
// configured, in-memory otherwise, with a Redis read cache layered on when
// available.
func WorkspacePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (workspace.Repository, error) {
		opts := do.MustInvoke[*Options](i)

		var repo workspace.Repository = store.NewWorkspaceMemoryStore()

		if pool, err := do.Invoke[*pgxpool.Pool](i); err == nil {
			repo = store.NewWorkspacePostgresStore(pool)
		}

		if client, err := do.Invoke[*redis.Client](i); err == nil {
			ttl := time.Duration(opts.CacheTTL) * time.Second
			repo = store.NewWorkspaceRedisCache(repo, client, ttl)
		}

		return repo, nil
	})
}

// RateLimitPackage provides the limiter with its counter stores: an
// always-on in-memory LRU store, and on top of it the distributed Redis
// store when configured. The Redis store gets a dedicated client so its
// shutdown does not tear down the shared one.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*ratelimit.Limiter, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		local := store.NewMemoryCounterStore()

		var primary store.ReadyCounterStore

		if opts.RedisAddr != "" {
			client := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
			counterStore := store.NewRedisCounterStore(client, logger)
			counterStore.Start(context.Background())
			do.ProvideValue(i, counterStore)
			// Instantiate so injector shutdown reaches the probe loop.
			_ = do.MustInvoke[*store.RedisCounterStore](i)

			primary = counterStore
		}

		fallback := store.NewFallbackCounterStore(primary, local, logger)

		return ratelimit.NewLimiter(fallback), nil
	})

	do.ProvideValue(injector, ratelimit.DefaultRegistry())
}

// AuditPackage provides the limit-exceeded event publisher. Without Redis
// there is no transport and the publish function stays nil; the middleware
// treats that as "no audit trail configured".
func AuditPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (messaging.Publish[audit.LimitExceededEvent], error) {
		client, err := do.Invoke[*redis.Client](i)
		if err != nil {
			return nil, nil
		}

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, watermill.NopLogger{})
		if err != nil {
			return nil, err
		}

		group := messaging.NewPublisherGroup(publisher)
		do.ProvideValue(i, group)
		_ = do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[audit.LimitExceededEvent](group.Publisher(), audit.TopicLimitExceeded), nil
	})
}

// ConsumerGroupPackage provides the audit event consumers for the auditor
// binary.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		client := do.MustInvoke[*redis.Client](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: opts.AuditorGroup,
		}, watermill.NopLogger{})
		if err != nil {
			return nil, err
		}

		var auditStore audit.Store = auditstore.NewNoop(logger)

		if pool, err := do.Invoke[*pgxpool.Pool](i); err == nil {
			auditStore = auditstore.NewPostgres(pool)
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(
			subscriber,
			audit.TopicLimitExceeded,
			audit.NewLimitExceededHandler(auditStore),
			logger,
		))

		return group, nil
	})
}

// HTTPPackage provides the router and the API with middleware and routes
// wired in.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)
		repo := do.MustInvoke[workspace.Repository](i)
		limiter := do.MustInvoke[*ratelimit.Limiter](i)
		registry := do.MustInvoke[ratelimit.Registry](i)
		publishExceeded := do.MustInvoke[messaging.Publish[audit.LimitExceededEvent]](i)

		api := humachi.New(router, huma.DefaultConfig("Workhive API", "1.0.0"))
		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.WorkspaceResolver(repo, logger),
			middleware.RateLimiter(limiter, registry, publishExceeded, logger),
		)

		newID, err := nanoid.Standard(opts.IDLength)
		if err != nil {
			return nil, err
		}

		wsHandler := handlers.NewWorkspaceHandler(repo, newID, logger)
		docHandler := handlers.NewDocumentHandler(repo, logger)
		authHandler := handlers.NewAuthHandler(repo, newID, logger)

		handlers.RegisterRoutes(api, wsHandler, docHandler, authHandler)
		health.RegisterRoutes(api, healthHandler(i))

		return api, nil
	})
}

func healthHandler(i *do.Injector) *health.Handler {
	var redisChecker, pgChecker health.Checker

	if client, err := do.Invoke[*redis.Client](i); err == nil {
		redisChecker = health.NewRedisChecker(client)
	}

	if pool, err := do.Invoke[*pgxpool.Pool](i); err == nil {
		pgChecker = health.NewPostgresChecker(pool)
	}

	return health.NewHandler(redisChecker, pgChecker)
}
