package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/sportsbet-api/external/oddsapi"
	"github.com/riskibarqy/sportsbet-api/external/sportmonks"
	"github.com/riskibarqy/sportsbet-api/internal/config"
	"github.com/riskibarqy/sportsbet-api/internal/domain/rawdata"
	"github.com/riskibarqy/sportsbet-api/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/sportsbet-api/internal/interfaces/httpapi"
	"github.com/riskibarqy/sportsbet-api/internal/observability"
	"github.com/riskibarqy/sportsbet-api/internal/platform/cache"
	"github.com/riskibarqy/sportsbet-api/internal/platform/logging"
	"github.com/riskibarqy/sportsbet-api/internal/platform/resilience"
	"github.com/riskibarqy/sportsbet-api/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const redisKeyPrefix = "sportsbet:"

// Server is the HTTP server plus the resources it owns.
type Server struct {
	HTTP    *http.Server
	closers []func(context.Context) error
}

// Shutdown stops the HTTP server first, then releases resources in reverse order.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.HTTP.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	srv := &Server{}
	cleanupOnErr := func(err error) (*Server, error) {
		for i := len(srv.closers) - 1; i >= 0; i-- {
			_ = srv.closers[i](context.Background())
		}
		return nil, err
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	store, err := newCacheStore(ctx, cfg, logger, srv)
	if err != nil {
		return cleanupOnErr(err)
	}

	archiver, err := newArchiver(ctx, cfg, logger, srv)
	if err != nil {
		return cleanupOnErr(err)
	}

	var (
		providerObserver sportmonks.RequestObserver
		cacheObserver    usecase.CacheObserver
		httpMetrics      httpapi.HTTPMetrics
		metricsRoute     http.Handler
	)
	if metrics != nil {
		providerObserver = metrics
		cacheObserver = metrics
		httpMetrics = metrics
		metricsRoute = metrics.Handler()
	}

	sportmonksClient := sportmonks.NewClient(sportmonks.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.SportMonksTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		FootballURL:    cfg.SportMonksFootballURL,
		CricketURL:     cfg.SportMonksCricketURL,
		FootballToken:  cfg.SportMonksFootballToken,
		CricketToken:   cfg.SportMonksCricketToken,
		Timeout:        cfg.SportMonksTimeout,
		MaxRetries:     cfg.SportMonksMaxRetries,
		RetryBackoff:   cfg.SportMonksRetryBackoff,
		Logger:         logger,
		CircuitBreaker: circuitBreakerConfig(cfg.SportMonksCircuit),
		Observer:       providerObserver,
		Archiver:       archiver,
	})
	oddsClient := oddsapi.NewClient(oddsapi.ClientConfig{
		BaseURL:        cfg.OddsAPIBaseURL,
		APIKey:         cfg.OddsAPIKey,
		Timeout:        cfg.OddsAPITimeout,
		Logger:         logger,
		CircuitBreaker: circuitBreakerConfig(cfg.OddsAPICircuit),
		Observer:       providerObserver,
		Archiver:       archiver,
	})
	if cfg.SportMonksFootballToken == "" {
		logger.Warn("sportmonks football token not configured, football routes will return empty lists")
	}
	if !oddsClient.Configured() {
		logger.Warn("the odds api key not configured, odds routes will fail")
	}

	footballSvc := usecase.NewFootballService(sportmonksClient, usecase.FootballServiceConfig{
		Cache:         store,
		CacheObserver: cacheObserver,
		Logger:        logger,
		FanOutWorkers: cfg.FanOutWorkers,
	})
	oddsSvc := usecase.NewOddsService(oddsClient, store, cacheObserver, logger)
	cricketSvc := usecase.NewCricketService(sportmonksClient, store, cacheObserver, logger)

	handler := httpapi.NewHandler(footballSvc, oddsSvc, cricketSvc, usecase.RetiredRoutes(cfg.APIBaseURL), logger).
		WithBreakers(map[string]httpapi.BreakerReporter{
			"sportmonks": sportmonksClient,
			"oddsapi":    oddsClient,
		})
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:            httpMetrics,
		MetricsHandler:     metricsRoute,
	})

	srv.HTTP = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return srv, nil
}

func newCacheStore(ctx context.Context, cfg config.Config, logger *logging.Logger, srv *Server) (cache.Store, error) {
	if !cfg.CacheEnabled {
		logger.Info("response cache disabled")
		return cache.Nop{}, nil
	}

	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect cache backend: %w", err)
		}
		srv.closers = append(srv.closers, func(context.Context) error {
			if err := rdb.Close(); err != nil {
				return fmt.Errorf("close redis: %w", err)
			}
			return nil
		})
		logger.Info("response cache enabled", "backend", cfg.CacheBackend, "ttl", cfg.CacheTTL.String())
		return cache.NewRedisStore(rdb, cfg.CacheTTL, redisKeyPrefix), nil
	default:
		logger.Info("response cache enabled", "backend", config.CacheBackendMemory, "ttl", cfg.CacheTTL.String())
		return cache.NewMemoryStore(cfg.CacheTTL), nil
	}
}

func newArchiver(ctx context.Context, cfg config.Config, logger *logging.Logger, srv *Server) (rawdata.Archiver, error) {
	if !cfg.ArchiveEnabled {
		return rawdata.NopArchiver{}, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	archiver := postgres.NewPayloadArchiver(postgres.NewPayloadRepository(db), postgres.PayloadArchiverConfig{
		Logger: logger,
	})
	srv.closers = append(srv.closers,
		func(context.Context) error {
			if err := db.Close(); err != nil {
				return fmt.Errorf("close db: %w", err)
			}
			return nil
		},
		func(ctx context.Context) error {
			if err := archiver.Close(ctx); err != nil {
				return fmt.Errorf("close payload archiver: %w", err)
			}
			return nil
		},
	)
	logger.Info("provider payload archive enabled", "db_name", dbNameFromURL(cfg.DBURL))
	return archiver, nil
}

func circuitBreakerConfig(cfg config.CircuitBreaker) resilience.CircuitBreakerConfig {
	return resilience.NormalizeCircuitBreakerConfig(resilience.CircuitBreakerConfig{
		Enabled:          cfg.Enabled,
		FailureThreshold: cfg.FailureCount,
		OpenTimeout:      cfg.OpenTimeout,
		HalfOpenMaxReq:   cfg.HalfOpenMaxReq,
	})
}
