package server

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/iota-uz/deptemp/modules/core/presentation/controllers"
	"github.com/iota-uz/deptemp/pkg/application"
	"github.com/iota-uz/deptemp/pkg/configuration"
	"github.com/iota-uz/deptemp/pkg/constants"
	"github.com/iota-uz/deptemp/pkg/metrics"
	"github.com/iota-uz/deptemp/pkg/middleware"
	"github.com/iota-uz/deptemp/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration

	loggerOpts := middleware.DefaultLoggerOptions()
	if conf.RequestIDHeader != "" {
		loggerOpts.RequestIDHeader = conf.RequestIDHeader
	}

	// The logger middleware creates the root span for each request.
	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, loggerOpts),

		middleware.TracedMiddleware("database"),
		middleware.Provide(constants.AppKey, app),
	}
	if options.Pool != nil {
		middlewares = append(middlewares, middleware.Provide(constants.PoolKey, options.Pool))
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("cors"),
		middleware.Cors(conf.CORSAllowedOrigins...),
	)

	if conf.RateLimit.Enabled {
		var store limiter.Store
		var err error

		switch conf.RateLimit.Storage {
		case "redis":
			store, err = middleware.NewRedisStore(conf.RateLimit.RedisURL)
			if err != nil {
				options.Logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
				store = middleware.NewMemoryStore()
			}
		default:
			store = middleware.NewMemoryStore()
		}

		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: conf.RateLimit.GlobalRPS,
				Store:             store,
			}),
		)
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("workers"),
		middleware.LimitConcurrency(conf.Workers),
	)

	if conf.Prometheus.Enabled {
		middlewares = append(middlewares, metrics.Middleware())
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	app.RegisterMiddleware(middlewares...)

	serverInstance := server.NewHTTPServer(
		app,
		controllers.NotFound(),
		controllers.MethodNotAllowed(),
	)
	serverInstance.Gzip = conf.GzipEnabled
	return serverInstance, nil
}
